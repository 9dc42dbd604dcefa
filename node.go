package pvec

import "sync/atomic"

const (
	// bits is the number of index bits consumed per trie level.
	bits = 5
	// width is the slot count of every node and the capacity of the tail.
	width = 1 << bits
	mask  = width - 1
)

// edit is the owner cell shared by every node a transient creates or clones.
// A nil owner means all nodes tagged with the cell are frozen.
type edit struct {
	owner atomic.Pointer[Session]
}

// noEdit tags nodes built by persistent operations. Its owner is never set.
var noEdit = &edit{}

// node is a 32-slot trie node. Internal levels use children, level 0 uses
// values. Which one is in use is decided by the caller's depth, never by the
// node itself.
type node[T any] struct {
	edit     *edit
	children []*node[T]
	values   []T
}

func newBranch[T any](e *edit) *node[T] {
	return &node[T]{edit: e, children: make([]*node[T], width)}
}

func newLeaf[T any](e *edit, values []T) *node[T] {
	return &node[T]{edit: e, values: values}
}

// clone returns a shallow copy of n tagged with e. Children stay shared.
func (n *node[T]) clone(e *edit) *node[T] {
	c := &node[T]{edit: e}
	if n.children != nil {
		c.children = make([]*node[T], width)
		copy(c.children, n.children)
	}
	if n.values != nil {
		c.values = make([]T, width)
		copy(c.values, n.values)
	}
	return c
}

// newPath builds a left-leaning chain of branches of the given level that
// ends in leaf.
func newPath[T any](e *edit, level uint, leaf *node[T]) *node[T] {
	if level == 0 {
		return leaf
	}
	n := newBranch[T](e)
	n.children[0] = newPath(e, level-bits, leaf)
	return n
}

// tailoff returns the index of the first element held in the tail.
func tailoff(count int) int {
	if count < width {
		return 0
	}
	return ((count - 1) >> bits) << bits
}

// arrayFor returns the 32-element block holding index i. The caller has
// already validated i against count.
func arrayFor[T any](root *node[T], shift uint, count int, tail []T, i int) []T {
	if i >= tailoff(count) {
		return tail
	}
	n := root
	for level := shift; level > 0; level -= bits {
		n = n.children[(i>>level)&mask]
	}
	return n.values
}
