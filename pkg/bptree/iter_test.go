package bptree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, capacity int, n int) *Tree[int, int] {
	t.Helper()
	tr, err := New[int, int](capacity)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		tr.Insert(i, i*i)
	}
	return tr
}

func collect(t *testing.T, it *Iterator[int, int]) []int {
	t.Helper()
	var keys []int
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	return keys
}

func collectReverse(t *testing.T, it *ReverseIterator[int, int]) []int {
	t.Helper()
	var keys []int
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		keys = append(keys, k)
	}
	return keys
}

func TestIterVisitsEveryKeyInOrder(t *testing.T) {
	tr := buildTree(t, 4, 100)
	keys := collect(t, tr.Iter())
	require.Len(t, keys, 100)
	for i, k := range keys {
		assert.Equal(t, i, k)
	}
}

func TestReverseIterVisitsEveryKeyDescending(t *testing.T) {
	tr := buildTree(t, 4, 100)
	keys := collectReverse(t, tr.ReverseIter())
	require.Len(t, keys, 100)
	for i, k := range keys {
		assert.Equal(t, 99-i, k)
	}
}

func TestRangeBoundCombinations(t *testing.T) {
	tr := buildTree(t, 4, 50)

	cases := []struct {
		name     string
		low      Bound[int]
		high     Bound[int]
		expected []int
	}{
		{"unbounded-unbounded", Unbounded[int](), Unbounded[int](), seq(0, 50)},
		{"included-included", Included(10), Included(15), seq(10, 16)},
		{"included-excluded", Included(10), Excluded(15), seq(10, 15)},
		{"excluded-included", Excluded(10), Included(15), seq(11, 16)},
		{"excluded-excluded", Excluded(10), Excluded(15), seq(11, 15)},
		{"unbounded-included", Unbounded[int](), Included(4), seq(0, 5)},
		{"included-unbounded", Included(45), Unbounded[int](), seq(45, 50)},
		{"below-range", Included(-10), Excluded(-5), nil},
		{"above-range", Included(500), Included(600), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it, err := tr.Range(tc.low, tc.high)
			require.NoError(t, err)
			keys := collect(t, it)
			assert.Equal(t, tc.expected, keys)
		})
	}
}

func TestRangeReverseBoundCombinations(t *testing.T) {
	tr := buildTree(t, 4, 50)

	it, err := tr.RangeReverse(Included(10), Excluded(15))
	require.NoError(t, err)
	keys := collectReverse(t, it)
	assert.Equal(t, []int{14, 13, 12, 11, 10}, keys)
}

func TestRangeInvalidBoundsReturnsError(t *testing.T) {
	tr := buildTree(t, 4, 20)

	_, err := tr.Range(Included(10), Included(5))
	require.Error(t, err)
	var treeErr *TreeError
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, ErrInvalidRange, treeErr.Kind)

	_, err = tr.Range(Excluded(5), Excluded(5))
	require.Error(t, err)
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, ErrInvalidRange, treeErr.Kind)

	_, err = tr.Range(Included(5), Excluded(5))
	require.Error(t, err)
	require.ErrorAs(t, err, &treeErr)
	assert.Equal(t, ErrInvalidRange, treeErr.Kind)
}

func TestRangeOnEmptyTree(t *testing.T) {
	tr, err := New[int, int](4)
	require.NoError(t, err)

	it, err := tr.Range(Unbounded[int](), Unbounded[int]())
	require.NoError(t, err)
	assert.Empty(t, collect(t, it))
}

func seq(lo, hi int) []int {
	if lo >= hi {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
