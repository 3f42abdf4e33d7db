package bptree

import "cmp"

// Ordered is the key constraint for Tree: any type with a total order
// under <, <=, >, >=, as provided by the standard library's cmp package.
type Ordered = cmp.Ordered
