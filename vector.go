package pvec

import (
	"fmt"
	"iter"
	"strings"
)

// Vector is an immutable, indexed sequence with structural sharing.
//
// Elements live in a 32-way trie plus a tail holding the newest (at most 32)
// elements. Every update returns a new Vector; the receiver is never
// modified, so a Vector is safe for concurrent use by any number of
// goroutines. The zero Vector is an empty vector ready to use.
type Vector[T any] struct {
	count int
	shift uint
	root  *node[T]
	tail  []T
}

// Empty returns an empty vector.
func Empty[T any]() *Vector[T] {
	return &Vector[T]{
		shift: bits,
		root:  newBranch[T](noEdit),
		tail:  []T{},
	}
}

// Len returns the number of elements in the vector.
func (v *Vector[T]) Len() int {
	return v.count
}

// Get returns the element at index i.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.count {
		var zero T
		return zero, &IndexError{Op: "Get", Index: i, Len: v.count}
	}
	return v.arrayFor(i)[i&mask], nil
}

func (v *Vector[T]) arrayFor(i int) []T {
	return arrayFor(v.root, v.shift, v.count, v.tail, i)
}

// Set returns a vector with the element at index i replaced by x. Only the
// path from the root to the affected leaf is copied.
func (v *Vector[T]) Set(i int, x T) (*Vector[T], error) {
	if i < 0 || i >= v.count {
		return nil, &IndexError{Op: "Set", Index: i, Len: v.count}
	}

	if i >= tailoff(v.count) {
		tail := make([]T, len(v.tail))
		copy(tail, v.tail)
		tail[i&mask] = x
		return &Vector[T]{count: v.count, shift: v.shift, root: v.root, tail: tail}, nil
	}

	return &Vector[T]{
		count: v.count,
		shift: v.shift,
		root:  doSet(v.shift, v.root, i, x),
		tail:  v.tail,
	}, nil
}

func doSet[T any](level uint, n *node[T], i int, x T) *node[T] {
	c := n.clone(noEdit)
	if level == 0 {
		c.values[i&mask] = x
	} else {
		sub := (i >> level) & mask
		c.children[sub] = doSet(level-bits, n.children[sub], i, x)
	}
	return c
}

// Add returns a vector with x appended.
func (v *Vector[T]) Add(x T) *Vector[T] {
	// Room in tail?
	if v.count-tailoff(v.count) < width {
		tail := make([]T, len(v.tail)+1)
		copy(tail, v.tail)
		tail[len(v.tail)] = x
		return &Vector[T]{count: v.count + 1, shift: v.shift, root: v.root, tail: tail}
	}

	root, shift := v.root, v.shift
	if root == nil {
		root, shift = newBranch[T](noEdit), bits
	}

	// Full tail; push it into the trie.
	tailNode := newLeaf(noEdit, v.tail)
	if (v.count >> bits) > (1 << shift) {
		// Root overflow.
		grown := newBranch[T](noEdit)
		grown.children[0] = root
		grown.children[1] = newPath(noEdit, shift, tailNode)
		root = grown
		shift += bits
	} else {
		root = pushTail(v.count, shift, root, tailNode)
	}

	return &Vector[T]{count: v.count + 1, shift: shift, root: root, tail: []T{x}}
}

// pushTail path-copies the rightmost spine of parent and hangs tailNode at
// the first free slot. count is the element count before the push.
func pushTail[T any](count int, level uint, parent, tailNode *node[T]) *node[T] {
	sub := ((count - 1) >> level) & mask
	n := parent.clone(noEdit)

	switch child := parent.children[sub]; {
	case level == bits:
		n.children[sub] = tailNode
	case child != nil:
		n.children[sub] = pushTail(count, level-bits, child, tailNode)
	default:
		n.children[sub] = newPath(noEdit, level-bits, tailNode)
	}
	return n
}

// Pop returns a vector without its last element.
func (v *Vector[T]) Pop() (*Vector[T], error) {
	switch {
	case v.count == 0:
		return nil, ErrEmpty
	case v.count == 1:
		return Empty[T](), nil
	case v.count-tailoff(v.count) > 1:
		tail := make([]T, len(v.tail)-1)
		copy(tail, v.tail)
		return &Vector[T]{count: v.count - 1, shift: v.shift, root: v.root, tail: tail}, nil
	}

	// The tail holds a single element; the last leaf becomes the new tail.
	leaf := v.arrayFor(v.count - 2)
	tail := make([]T, len(leaf))
	copy(tail, leaf)

	root := popTail(v.count, v.shift, v.root)
	shift := v.shift
	if root == nil {
		root = newBranch[T](noEdit)
	}
	if shift > bits && root.children[1] == nil {
		root = root.children[0]
		shift -= bits
	}

	return &Vector[T]{count: v.count - 1, shift: shift, root: root, tail: tail}, nil
}

// popTail path-copies the rightmost spine of n without its last leaf. It
// returns nil when the subtree becomes empty.
func popTail[T any](count int, level uint, n *node[T]) *node[T] {
	sub := ((count - 2) >> level) & mask
	if level > bits {
		child := popTail(count, level-bits, n.children[sub])
		if child == nil && sub == 0 {
			return nil
		}
		c := n.clone(noEdit)
		c.children[sub] = child
		return c
	}
	if sub == 0 {
		return nil
	}
	c := n.clone(noEdit)
	c.children[sub] = nil
	return c
}

// AsTransient derives a transient owned by s. The vector itself is left
// untouched. It panics if s is nil.
func (v *Vector[T]) AsTransient(s *Session) *Transient[T] {
	if s == nil {
		panic("pvec: AsTransient called with nil session")
	}

	root, shift := v.root, v.shift
	if root == nil {
		root, shift = newBranch[T](noEdit), bits
	}

	e := &edit{}
	e.owner.Store(s)

	tail := make([]T, width)
	copy(tail, v.tail)

	t := &Transient[T]{
		count:   v.count,
		shift:   shift,
		root:    root.clone(e),
		tail:    tail,
		session: s,
		cloned:  1,
		opened:  now(),
	}

	s.logger.LogTransient(v.count)
	s.metrics.RecordTransient(v.count)

	return t
}

// All returns an iterator over index/element pairs in ascending order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for base := 0; base < v.count; base += width {
			block := v.arrayFor(base)
			for j := 0; j < width && base+j < v.count; j++ {
				if !yield(base+j, block[j]) {
					return
				}
			}
		}
	}
}

// Backward returns an iterator over index/element pairs in descending order.
func (v *Vector[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if v.count == 0 {
			return
		}
		for base := (v.count - 1) &^ mask; base >= 0; base -= width {
			block := v.arrayFor(base)
			for j := min(width, v.count-base) - 1; j >= 0; j-- {
				if !yield(base+j, block[j]) {
					return
				}
			}
		}
	}
}

// Values returns an iterator over the elements in ascending index order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.All() {
			if !yield(x) {
				return
			}
		}
	}
}

// ToSlice copies the elements into a new slice.
func (v *Vector[T]) ToSlice() []T {
	out := make([]T, 0, v.count)
	for base := 0; base < v.count; base += width {
		block := v.arrayFor(base)
		out = append(out, block[:min(width, v.count-base)]...)
	}
	return out
}

func (v *Vector[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, x)
	}
	sb.WriteByte(']')
	return sb.String()
}
