package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateGet(t *testing.T) {
	a := New[string]()

	id := a.Allocate("hello")
	v, ok := a.Get(id)
	require.True(t, ok)
	assert.Equal(t, "hello", *v)
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, a.FreeCount())
}

func TestFreeRecyclesSlot(t *testing.T) {
	a := New[int]()

	id1 := a.Allocate(1)
	id2 := a.Allocate(2)
	a.Free(id1)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, a.FreeCount())

	_, ok := a.Get(id1)
	assert.False(t, ok, "freed id must no longer resolve")

	id3 := a.Allocate(3)
	assert.Equal(t, id1, id3, "allocate should reuse the freed slot before growing")

	v2, ok := a.Get(id2)
	require.True(t, ok)
	assert.Equal(t, 2, *v2)
}

func TestDoubleFreePanics(t *testing.T) {
	a := New[int]()
	id := a.Allocate(1)
	a.Free(id)

	assert.Panics(t, func() {
		a.Free(id)
	})
}

func TestGetOutOfRange(t *testing.T) {
	a := New[int]()
	_, ok := a.Get(Id(42))
	assert.False(t, ok)
	_, ok = a.Get(Null)
	assert.False(t, ok)
}

func TestMustGetPanicsOnFreed(t *testing.T) {
	a := New[int]()
	id := a.Allocate(1)
	a.Free(id)

	assert.Panics(t, func() {
		a.MustGet(id)
	})
}

func TestFreeListOrderLIFO(t *testing.T) {
	a := New[int]()
	ids := make([]Id, 4)
	for i := range ids {
		ids[i] = a.Allocate(i)
	}

	a.Free(ids[1])
	a.Free(ids[2])

	// the most recently freed slot is reused first
	next := a.Allocate(100)
	assert.Equal(t, ids[2], next)

	next2 := a.Allocate(200)
	assert.Equal(t, ids[1], next2)
}

func TestReset(t *testing.T) {
	a := New[int]()
	a.Allocate(1)
	a.Allocate(2)
	a.Reset()

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 0, a.FreeCount())
	id := a.Allocate(9)
	assert.Equal(t, Id(0), id)
}
