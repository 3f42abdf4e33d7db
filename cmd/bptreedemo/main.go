package main

import (
	"fmt"

	"bptree/pkg/bptree"
)

func main() {
	t, err := bptree.New[int, string](4)
	if err != nil {
		fmt.Printf("failed to create tree: %v\n", err)
		return
	}

	for i := 0; i < 20; i++ {
		t.Insert(i, fmt.Sprintf("value-%d", i))
	}

	fmt.Printf("size=%d depth=%d\n", t.Len(), t.Depth())

	it, err := t.Range(bptree.Included(5), bptree.Excluded(15))
	if err != nil {
		fmt.Printf("failed to build range: %v\n", err)
		return
	}
	fmt.Println("range [5, 15):")
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		fmt.Printf("  %d -> %s\n", k, v)
	}

	for i := 0; i < 20; i += 3 {
		t.Remove(i)
	}
	fmt.Printf("after removals: size=%d depth=%d\n", t.Len(), t.Depth())

	if err := t.CheckInvariants(); err != nil {
		fmt.Printf("invariant check failed: %v\n", err)
		return
	}
	fmt.Println("invariants hold")

	stats := t.Stats()
	fmt.Printf("stats: %+v\n", stats)
}
