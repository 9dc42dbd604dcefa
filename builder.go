package pvec

import "iter"

// Builder accumulates elements into a new Vector through a private transient.
// A Builder is single-use: after Build every call fails with
// ErrUsedAfterFreeze.
//
// Example:
//
//	b := pvec.NewBuilder[string](pvec.WithLogLevel(slog.LevelDebug))
//	_ = b.Add("a", "b", "c")
//	v, _ := b.Build()
type Builder[T any] struct {
	session   *Session
	transient *Transient[T]
}

// NewBuilder creates a builder for an initially empty vector. The options
// configure the builder's session.
func NewBuilder[T any](optFns ...Option) *Builder[T] {
	s := NewSession(optFns...)
	return &Builder[T]{
		session:   s,
		transient: Empty[T]().AsTransient(s),
	}
}

// Add appends items in order.
func (b *Builder[T]) Add(items ...T) error {
	for _, x := range items {
		if err := b.transient.Conj(b.session, x); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of elements added so far.
func (b *Builder[T]) Len() (int, error) {
	return b.transient.Len(b.session)
}

// Build freezes the builder into a vector.
func (b *Builder[T]) Build() (*Vector[T], error) {
	return b.transient.Persistent(b.session)
}

// From builds a vector holding items in order. It never materializes an
// intermediate vector.
func From[T any](items []T) *Vector[T] {
	b := NewBuilder[T]()
	_ = b.Add(items...)
	v, _ := b.Build()
	return v
}

// Of is the variadic form of From.
func Of[T any](items ...T) *Vector[T] {
	return From(items)
}

// Collect builds a vector from the values of seq.
func Collect[T any](seq iter.Seq[T]) *Vector[T] {
	b := NewBuilder[T]()
	for x := range seq {
		_ = b.Add(x)
	}
	v, _ := b.Build()
	return v
}
