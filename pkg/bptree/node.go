package bptree

import "bptree/pkg/arena"

// nodeKind tags a nodeRef so callers need not remember which arena a
// child belongs to, mirroring pkg/tree.Tree's Classic/CoW tag but applied
// per-node instead of per-tree.
type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindBranch
)

// nodeRef is a NodeId tagged with leaf-or-branch, per spec.md section 3.
type nodeRef struct {
	id   arena.Id
	kind nodeKind
}

var nilRef = nodeRef{id: arena.Null, kind: kindLeaf}

func (r nodeRef) isLeaf() bool { return r.kind == kindLeaf }
func (r nodeRef) valid() bool  { return r.id != arena.Null }

// leafNode holds an ordered run of keys and values as parallel slices
// (recommended by spec.md section 9 for cache locality on the read path,
// which only ever touches keys), plus the forward/backward sibling chain.
// prev is a supplemented feature (see SPEC_FULL.md) used for reverse
// iteration; it does not participate in any spec.md invariant beyond
// being the exact reverse of next.
type leafNode[K Ordered, V any] struct {
	keys   []K
	values []V
	next   arena.Id
	prev   arena.Id
}

func newLeaf[K Ordered, V any]() leafNode[K, V] {
	return leafNode[K, V]{next: arena.Null, prev: arena.Null}
}

// search returns the index of key if present, and the index at which it
// would need to be inserted to keep keys ascending otherwise.
func (n *leafNode[K, V]) search(key K) (idx int, found bool) {
	lo, hi := 0, len(n.keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if n.keys[mid] < key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(n.keys) && n.keys[lo] == key {
		return lo, true
	}
	return lo, false
}

func (n *leafNode[K, V]) insertAt(i int, k K, v V) {
	n.keys = append(n.keys, k)
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = k

	n.values = append(n.values, v)
	copy(n.values[i+1:], n.values[i:])
	n.values[i] = v
}

func (n *leafNode[K, V]) removeAt(i int) (K, V) {
	k, v := n.keys[i], n.values[i]
	n.keys = append(n.keys[:i], n.keys[i+1:]...)
	n.values = append(n.values[:i], n.values[i+1:]...)
	return k, v
}

func (n *leafNode[K, V]) isFull(capacity int) bool {
	return len(n.keys) >= capacity
}

func (n *leafNode[K, V]) isUnderfull(minKeys int) bool {
	return len(n.keys) < minKeys
}

// borrowLastFromLeft moves left's last pair onto the front of n, used
// when rebalancing pulls a key rightward from a donating left sibling.
func (n *leafNode[K, V]) borrowLastFromLeft(left *leafNode[K, V]) {
	i := len(left.keys) - 1
	k, v := left.removeAt(i)
	n.insertAt(0, k, v)
}

// borrowFirstFromRight moves right's first pair onto the end of n.
func (n *leafNode[K, V]) borrowFirstFromRight(right *leafNode[K, V]) {
	k, v := right.removeAt(0)
	n.insertAt(len(n.keys), k, v)
}

// mergeWithRight appends right's entries onto n. The caller is
// responsible for freeing right's arena slot and rewiring the sibling
// chain and parent afterwards.
func (n *leafNode[K, V]) mergeWithRight(right *leafNode[K, V]) {
	n.keys = append(n.keys, right.keys...)
	n.values = append(n.values, right.values...)
}

// branchNode holds separator keys and the NodeRefs they partition, per
// spec.md section 3: children[i] holds keys k with keys[i-1] <= k <
// keys[i].
type branchNode[K Ordered] struct {
	keys     []K
	children []nodeRef
}

func newBranch[K Ordered](leftChild, rightChild nodeRef, separator K) branchNode[K] {
	return branchNode[K]{
		keys:     []K{separator},
		children: []nodeRef{leftChild, rightChild},
	}
}

// childIndexFor returns the smallest i such that key < keys[i], or
// len(keys) if key is greater than or equal to every separator.
func (n *branchNode[K]) childIndexFor(key K) int {
	lo, hi := 0, len(n.keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if n.keys[mid] <= key {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (n *branchNode[K]) isFull(capacity int) bool {
	return len(n.keys) >= capacity
}

func (n *branchNode[K]) isUnderfull(minKeys int) bool {
	return len(n.keys) < minKeys
}

// insertChildAt inserts separator at key position i and ref at child
// position i+1, used when a non-full branch absorbs a child's split.
func (n *branchNode[K]) insertChildAt(i int, separator K, ref nodeRef) {
	n.keys = append(n.keys, separator)
	copy(n.keys[i+1:], n.keys[i:])
	n.keys[i] = separator

	n.children = append(n.children, nilRef)
	copy(n.children[i+2:], n.children[i+1:])
	n.children[i+1] = ref
}

// removeSeparatorAndChild removes the separator adjoining children[i] and
// the child itself, per spec.md section 4.3's remove_child policy:
// removing keys[i-1] when i > 0, else keys[0].
func (n *branchNode[K]) removeSeparatorAndChild(i int) {
	sepIdx := i - 1
	if i == 0 {
		sepIdx = 0
	}
	n.keys = append(n.keys[:sepIdx], n.keys[sepIdx+1:]...)
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// borrowLastFromLeft rotates left's last child onto the front of n
// through parentSeparator, and returns the new value that separator must
// take.
func (n *branchNode[K]) borrowLastFromLeft(left *branchNode[K], parentSeparator K) (newParentSeparator K) {
	lastKeyIdx := len(left.keys) - 1
	lastChildIdx := len(left.children) - 1

	rotatedKey := left.keys[lastKeyIdx]
	rotatedChild := left.children[lastChildIdx]

	left.keys = left.keys[:lastKeyIdx]
	left.children = left.children[:lastChildIdx]

	n.keys = append(n.keys, parentSeparator)
	copy(n.keys[1:], n.keys[:len(n.keys)-1])
	n.keys[0] = parentSeparator

	n.children = append(n.children, nilRef)
	copy(n.children[1:], n.children[:len(n.children)-1])
	n.children[0] = rotatedChild

	return rotatedKey
}

// borrowFirstFromRight is the mirror of borrowLastFromLeft.
func (n *branchNode[K]) borrowFirstFromRight(right *branchNode[K], parentSeparator K) (newParentSeparator K) {
	rotatedKey := right.keys[0]
	rotatedChild := right.children[0]

	right.keys = right.keys[1:]
	right.children = right.children[1:]

	n.keys = append(n.keys, parentSeparator)
	n.children = append(n.children, rotatedChild)

	return rotatedKey
}

// mergeWithRight absorbs right's keys and children into n, reinserting
// the parent separator between them. The caller frees right's arena slot
// and removes the separator/child from the parent afterwards.
func (n *branchNode[K]) mergeWithRight(right *branchNode[K], parentSeparator K) {
	n.keys = append(n.keys, parentSeparator)
	n.keys = append(n.keys, right.keys...)
	n.children = append(n.children, right.children...)
}
