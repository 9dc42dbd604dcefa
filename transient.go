package pvec

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

var now = time.Now

// Transient is a single-owner mutable view of a Vector used to batch updates.
//
// Every method takes the caller's session and fails with ErrUsedByNonOwner
// when it is not the session the transient was derived with, or with
// ErrUsedAfterFreeze once Persistent has been called. Nodes are copied the
// first time a mutation touches them and mutated in place afterwards.
type Transient[T any] struct {
	count int
	shift uint
	root  *node[T]
	tail  []T

	session *Session
	cloned  int
	opened  time.Time
}

// ensureEditable is the ownership check run before any read or write.
func (t *Transient[T]) ensureEditable(s *Session, op string) error {
	owner := t.root.edit.owner.Load()
	if owner != nil && owner == s {
		return nil
	}

	err := &OwnershipError{Op: op, Owner: t.session.ID(), Caller: s.ID(), Kind: ErrUsedByNonOwner}
	if owner == nil {
		err.Kind = ErrUsedAfterFreeze
	}

	t.session.logger.LogViolation(op, err)
	t.session.metrics.RecordViolation(op, err)

	return err
}

// editable returns n itself when this transient already owns it, otherwise
// an owned copy.
func (t *Transient[T]) editable(n *node[T]) *node[T] {
	if n.edit == t.root.edit {
		return n
	}
	t.cloned++
	return n.clone(t.root.edit)
}

// Len returns the number of elements.
func (t *Transient[T]) Len(s *Session) (int, error) {
	if err := t.ensureEditable(s, "Len"); err != nil {
		return 0, err
	}
	return t.count, nil
}

// Get returns the element at index i.
func (t *Transient[T]) Get(s *Session, i int) (T, error) {
	var zero T
	if err := t.ensureEditable(s, "Get"); err != nil {
		return zero, err
	}
	if i < 0 || i >= t.count {
		return zero, &IndexError{Op: "Get", Index: i, Len: t.count}
	}
	return arrayFor(t.root, t.shift, t.count, t.tail, i)[i&mask], nil
}

// Conj appends x in place.
func (t *Transient[T]) Conj(s *Session, x T) error {
	if err := t.ensureEditable(s, "Conj"); err != nil {
		return err
	}

	// Room in tail?
	if t.count-tailoff(t.count) < width {
		t.tail[t.count&mask] = x
		t.count++
		return nil
	}

	// Full tail; the buffer itself becomes the new leaf.
	e := t.root.edit
	tailNode := newLeaf(e, t.tail)
	t.tail = make([]T, width)
	t.tail[0] = x

	if (t.count >> bits) > (1 << t.shift) {
		// Root overflow.
		root := newBranch[T](e)
		root.children[0] = t.root
		root.children[1] = newPath(e, t.shift, tailNode)
		t.root = root
		t.shift += bits
	} else {
		t.root = t.pushTail(t.shift, t.root, tailNode)
	}

	t.count++
	return nil
}

func (t *Transient[T]) pushTail(level uint, parent, tailNode *node[T]) *node[T] {
	n := t.editable(parent)
	sub := ((t.count - 1) >> level) & mask

	switch child := n.children[sub]; {
	case level == bits:
		n.children[sub] = tailNode
	case child != nil:
		n.children[sub] = t.pushTail(level-bits, child, tailNode)
	default:
		n.children[sub] = newPath(t.root.edit, level-bits, tailNode)
	}
	return n
}

// Set replaces the element at index i in place.
func (t *Transient[T]) Set(s *Session, i int, x T) error {
	if err := t.ensureEditable(s, "Set"); err != nil {
		return err
	}
	if i < 0 || i >= t.count {
		return &IndexError{Op: "Set", Index: i, Len: t.count}
	}
	t.set(i, x)
	return nil
}

// SetMany writes x at every index in idx. Either all indexes are in range
// and all are written, or nothing is written.
func (t *Transient[T]) SetMany(s *Session, idx *roaring.Bitmap, x T) error {
	if err := t.ensureEditable(s, "SetMany"); err != nil {
		return err
	}
	if idx == nil || idx.IsEmpty() {
		return nil
	}
	if last := int(idx.Maximum()); last >= t.count {
		return &IndexError{Op: "SetMany", Index: last, Len: t.count}
	}

	it := idx.Iterator()
	for it.HasNext() {
		t.set(int(it.Next()), x)
	}
	return nil
}

func (t *Transient[T]) set(i int, x T) {
	if i >= tailoff(t.count) {
		t.tail[i&mask] = x
		return
	}
	t.root = t.doSet(t.shift, t.root, i, x)
}

func (t *Transient[T]) doSet(level uint, n *node[T], i int, x T) *node[T] {
	c := t.editable(n)
	if level == 0 {
		c.values[i&mask] = x
	} else {
		sub := (i >> level) & mask
		c.children[sub] = t.doSet(level-bits, c.children[sub], i, x)
	}
	return c
}

// Pop removes the last element in place.
func (t *Transient[T]) Pop(s *Session) error {
	if err := t.ensureEditable(s, "Pop"); err != nil {
		return err
	}

	var zero T
	switch {
	case t.count == 0:
		return ErrEmpty
	case t.count == 1:
		t.tail[0] = zero
		t.count = 0
		return nil
	case (t.count-1)&mask > 0:
		// Pop within the tail.
		t.tail[(t.count-1)&mask] = zero
		t.count--
		return nil
	}

	tail := make([]T, width)
	copy(tail, arrayFor(t.root, t.shift, t.count, t.tail, t.count-2))

	root := t.popTail(t.shift, t.root)
	shift := t.shift
	if root == nil {
		root = newBranch[T](t.root.edit)
	}
	if shift > bits && root.children[1] == nil {
		root = t.editable(root.children[0])
		shift -= bits
	}

	t.root = root
	t.shift = shift
	t.tail = tail
	t.count--
	return nil
}

func (t *Transient[T]) popTail(level uint, n *node[T]) *node[T] {
	n = t.editable(n)
	sub := ((t.count - 2) >> level) & mask
	if level > bits {
		child := t.popTail(level-bits, n.children[sub])
		if child == nil && sub == 0 {
			return nil
		}
		n.children[sub] = child
		return n
	}
	if sub == 0 {
		return nil
	}
	n.children[sub] = nil
	return n
}

// Persistent freezes the transient and returns a vector sharing its trie.
// The transient cannot be used afterwards.
func (t *Transient[T]) Persistent(s *Session) (*Vector[T], error) {
	if err := t.ensureEditable(s, "Persistent"); err != nil {
		return nil, err
	}

	t.root.edit.owner.Store(nil)

	n := t.count - tailoff(t.count)
	tail := make([]T, n)
	copy(tail, t.tail[:n])
	t.tail = nil

	v := &Vector[T]{count: t.count, shift: t.shift, root: t.root, tail: tail}

	elapsed := now().Sub(t.opened)
	t.session.logger.LogFreeze(v.count, t.cloned, elapsed)
	t.session.metrics.RecordFreeze(v.count, t.cloned, elapsed)

	return v, nil
}
