package bptree

import "bptree/pkg/arena"

// Iterator walks key/value pairs in ascending key order by following the
// leaf sibling chain, so a full or partial scan never re-descends the
// tree between steps.
type Iterator[K Ordered, V any] struct {
	tree   *Tree[K, V]
	leafID arena.Id
	idx    int
	upper  Bound[K]
	done   bool
}

// Iter returns an iterator over every pair in the tree, ascending.
func (t *Tree[K, V]) Iter() *Iterator[K, V] {
	return &Iterator[K, V]{tree: t, leafID: t.firstLeaf, idx: 0, upper: Unbounded[K]()}
}

// Range returns an iterator over the pairs whose keys fall within
// [low, high) as resolved by each Bound's kind. It returns ErrInvalidRange
// if low is strictly greater than high, or if both are bounded on the same
// key and either one is Excluded.
func (t *Tree[K, V]) Range(low, high Bound[K]) (*Iterator[K, V], error) {
	if err := validateRange(low, high); err != nil {
		return nil, err
	}
	leafID, idx := t.descendToLowerBound(low)
	return &Iterator[K, V]{tree: t, leafID: leafID, idx: idx, upper: high}, nil
}

// Next returns the next pair in ascending order, or false once exhausted.
func (it *Iterator[K, V]) Next() (K, V, bool) {
	if it.done {
		var zk K
		var zv V
		return zk, zv, false
	}
	for {
		leaf := it.tree.leaves.MustGet(it.leafID)
		if it.idx >= len(leaf.keys) {
			if leaf.next == arena.Null {
				it.done = true
				var zk K
				var zv V
				return zk, zv, false
			}
			it.leafID = leaf.next
			it.idx = 0
			continue
		}
		key := leaf.keys[it.idx]
		if it.upperExceeded(key) {
			it.done = true
			var zk K
			var zv V
			return zk, zv, false
		}
		val := leaf.values[it.idx]
		it.idx++
		return key, val, true
	}
}

func (it *Iterator[K, V]) upperExceeded(key K) bool {
	switch it.upper.kind {
	case included:
		return key > it.upper.key
	case excluded:
		return key >= it.upper.key
	default:
		return false
	}
}

// ReverseIterator walks key/value pairs in descending key order via the
// leaf chain's prev links. It is a supplemented feature: the core sibling
// chain is singly linked forward, but a reverse scan is common enough in
// ordered-map usage that the chain is threaded both ways (see node.go).
type ReverseIterator[K Ordered, V any] struct {
	tree   *Tree[K, V]
	leafID arena.Id
	idx    int
	lower  Bound[K]
	done   bool
}

// ReverseIter returns an iterator over every pair in the tree, descending.
func (t *Tree[K, V]) ReverseIter() *ReverseIterator[K, V] {
	leaf := t.leaves.MustGet(t.lastLeaf)
	return &ReverseIterator[K, V]{tree: t, leafID: t.lastLeaf, idx: len(leaf.keys) - 1, lower: Unbounded[K]()}
}

// RangeReverse is the descending counterpart of Range: it yields the
// pairs within [low, high) from the high end down.
func (t *Tree[K, V]) RangeReverse(low, high Bound[K]) (*ReverseIterator[K, V], error) {
	if err := validateRange(low, high); err != nil {
		return nil, err
	}
	leafID, idx := t.descendToUpperBound(high)
	return &ReverseIterator[K, V]{tree: t, leafID: leafID, idx: idx, lower: low}, nil
}

// Next returns the next pair in descending order, or false once exhausted.
func (it *ReverseIterator[K, V]) Next() (K, V, bool) {
	if it.done {
		var zk K
		var zv V
		return zk, zv, false
	}
	for {
		if it.idx < 0 {
			leaf := it.tree.leaves.MustGet(it.leafID)
			if leaf.prev == arena.Null {
				it.done = true
				var zk K
				var zv V
				return zk, zv, false
			}
			it.leafID = leaf.prev
			it.idx = len(it.tree.leaves.MustGet(it.leafID).keys) - 1
			continue
		}
		leaf := it.tree.leaves.MustGet(it.leafID)
		key := leaf.keys[it.idx]
		if it.lowerExceeded(key) {
			it.done = true
			var zk K
			var zv V
			return zk, zv, false
		}
		val := leaf.values[it.idx]
		it.idx--
		return key, val, true
	}
}

func (it *ReverseIterator[K, V]) lowerExceeded(key K) bool {
	switch it.lower.kind {
	case included:
		return key < it.lower.key
	case excluded:
		return key <= it.lower.key
	default:
		return false
	}
}

func validateRange[K Ordered](low, high Bound[K]) error {
	if low.isUnbounded() || high.isUnbounded() {
		return nil
	}
	if low.key > high.key {
		return newError(ErrInvalidRange, "range low bound is greater than high bound")
	}
	if low.key == high.key && (low.isExcluded() || high.isExcluded()) {
		return newError(ErrInvalidRange, "range low bound excludes its only candidate key")
	}
	return nil
}

// descendToLowerBound resolves low with a single top-down descent,
// returning the leaf and index of the first qualifying pair.
func (t *Tree[K, V]) descendToLowerBound(low Bound[K]) (arena.Id, int) {
	if low.isUnbounded() {
		return t.firstLeaf, 0
	}
	ref := t.root
	for !ref.isLeaf() {
		br := t.branches.MustGet(ref.id)
		ref = br.children[br.childIndexFor(low.key)]
	}
	leaf := t.leaves.MustGet(ref.id)
	idx, found := leaf.search(low.key)
	if found && low.isExcluded() {
		idx++
	}
	return ref.id, idx
}

// descendToUpperBound resolves high with a single top-down descent,
// returning the leaf and index of the last qualifying pair.
func (t *Tree[K, V]) descendToUpperBound(high Bound[K]) (arena.Id, int) {
	if high.isUnbounded() {
		leaf := t.leaves.MustGet(t.lastLeaf)
		return t.lastLeaf, len(leaf.keys) - 1
	}
	ref := t.root
	for !ref.isLeaf() {
		br := t.branches.MustGet(ref.id)
		ref = br.children[br.childIndexFor(high.key)]
	}
	leaf := t.leaves.MustGet(ref.id)
	idx, found := leaf.search(high.key)
	if !found || high.isExcluded() {
		idx--
	}
	return ref.id, idx
}
