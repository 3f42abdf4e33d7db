package bptree

import "bptree/pkg/arena"

// CheckInvariants walks the whole tree and returns the first structural
// violation it finds, or nil if the tree is well-formed. It is meant for
// tests and debugging, not the hot insert/remove/get path.
func (t *Tree[K, V]) CheckInvariants() error {
	depth := -1
	totalLeafKeys := 0
	prevLeafID := arena.Null
	var lastKeySeen *K

	var walk func(ref nodeRef, level int, lowBound, highBound *K) *TreeError
	walk = func(ref nodeRef, level int, lowBound, highBound *K) *TreeError {
		if ref.isLeaf() {
			leaf := t.leaves.MustGet(ref.id)
			if depth == -1 {
				depth = level
			} else if depth != level {
				return newCorruptError(int(ref.id), -1, "leaves are not at a uniform depth")
			}
			if err := checkLeafKeys[K, V](leaf, int(ref.id), lowBound, highBound); err != nil {
				return err
			}

			if prevLeafID != arena.Null {
				prevLeaf := t.leaves.MustGet(prevLeafID)
				if prevLeaf.next != ref.id {
					return newCorruptError(int(prevLeafID), -1, "leaf chain next pointer skips a leaf visited in-order")
				}
				if leaf.prev != prevLeafID {
					return newCorruptError(int(ref.id), -1, "leaf chain prev pointer does not match in-order traversal")
				}
			} else if leaf.prev != arena.Null {
				return newCorruptError(int(ref.id), -1, "first leaf in traversal order has a non-nil prev pointer")
			} else if ref.id != t.firstLeaf {
				return newCorruptError(int(ref.id), -1, "leaf chain traversal did not start at the tracked first leaf")
			}
			prevLeafID = ref.id
			totalLeafKeys += len(leaf.keys)

			if len(leaf.keys) > 0 {
				if lastKeySeen != nil && !(*lastKeySeen < leaf.keys[0]) {
					return newCorruptError(int(ref.id), -1, "keys are not strictly ascending across the leaf chain")
				}
				last := leaf.keys[len(leaf.keys)-1]
				lastKeySeen = &last
			}
			return nil
		}

		br := t.branches.MustGet(ref.id)
		if len(br.children) != len(br.keys)+1 {
			return newCorruptError(int(ref.id), -1, "branch child count does not match key count + 1")
		}
		for i := 1; i < len(br.keys); i++ {
			if !(br.keys[i-1] < br.keys[i]) {
				return newCorruptError(int(ref.id), i, "branch separators are not strictly ascending")
			}
		}
		for i, child := range br.children {
			childLow, childHigh := lowBound, highBound
			if i > 0 {
				k := br.keys[i-1]
				childLow = &k
			}
			if i < len(br.keys) {
				k := br.keys[i]
				childHigh = &k
			}
			if err := walk(child, level+1, childLow, childHigh); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(t.root, 0, nil, nil); err != nil {
		return err
	}
	if totalLeafKeys != t.size {
		return newCorruptError(-1, -1, "leaf key count does not match the tree's tracked size")
	}
	if prevLeafID != t.lastLeaf {
		return newCorruptError(int(prevLeafID), -1, "leaf chain traversal did not end at the tracked last leaf")
	}
	leaf := t.leaves.MustGet(t.lastLeaf)
	if leaf.next != arena.Null {
		return newCorruptError(int(t.lastLeaf), -1, "tracked last leaf has a non-nil next pointer")
	}

	return t.checkMinFill()
}

func checkLeafKeys[K Ordered, V any](leaf *leafNode[K, V], nodeID int, lowBound, highBound *K) *TreeError {
	if len(leaf.keys) != len(leaf.values) {
		return newCorruptError(nodeID, -1, "leaf key count and value count differ")
	}
	for i := 1; i < len(leaf.keys); i++ {
		if !(leaf.keys[i-1] < leaf.keys[i]) {
			return newCorruptError(nodeID, i, "leaf keys are not strictly ascending")
		}
	}
	if len(leaf.keys) == 0 {
		return nil
	}
	if lowBound != nil && leaf.keys[0] < *lowBound {
		return newCorruptError(nodeID, 0, "leaf key falls below its separator-implied lower bound")
	}
	if highBound != nil && !(leaf.keys[len(leaf.keys)-1] < *highBound) {
		return newCorruptError(nodeID, len(leaf.keys)-1, "leaf key falls at or above its separator-implied upper bound")
	}
	return nil
}

// checkMinFill walks the tree a second time, separately from the
// ordering/chain pass, so a min-fill violation is reported distinctly
// from a corrupt ordering even when both happen to be present.
func (t *Tree[K, V]) checkMinFill() *TreeError {
	var walk func(ref nodeRef, isRoot bool) *TreeError
	walk = func(ref nodeRef, isRoot bool) *TreeError {
		if ref.isLeaf() {
			leaf := t.leaves.MustGet(ref.id)
			if !isRoot && leaf.isUnderfull(t.cfg.minKeysLeaf()) {
				return newCorruptError(int(ref.id), -1, "leaf is below minimum fill")
			}
			return nil
		}

		br := t.branches.MustGet(ref.id)
		if isRoot {
			if len(br.keys) == 0 {
				return newCorruptError(int(ref.id), -1, "root branch has no separators; it should have collapsed")
			}
		} else if br.isUnderfull(t.cfg.minKeysBranch()) {
			return newCorruptError(int(ref.id), -1, "branch is below minimum fill")
		}
		for _, child := range br.children {
			if err := walk(child, false); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(t.root, true)
}
