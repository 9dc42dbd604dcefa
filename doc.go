// Package pvec provides an immutable, structurally shared vector and a
// single-owner transient for cheap batch construction.
//
// # Quick Start
//
//	v := pvec.Of(1, 2, 3)
//	w := v.Add(4)            // v is unchanged
//	w, _ = w.Set(0, 10)      // only the root-to-leaf path is copied
//	x, _ := w.Get(0)         // 10
//
// # Transients
//
// A transient batches appends and updates in place. It belongs to the
// Session it was derived with; every call names the caller's session and is
// rejected if it is not the owner:
//
//	s := pvec.NewSession()
//	t := pvec.Empty[int]().AsTransient(s)
//	for i := range 1000 {
//	    _ = t.Conj(s, i)
//	}
//	v, _ := t.Persistent(s) // t is frozen from here on
//
// Using t with another session fails with ErrUsedByNonOwner; using it after
// Persistent fails with ErrUsedAfterFreeze. Both wrap ErrOwnershipViolation.
//
// # Layout
//
// Elements are stored in a trie of 32-slot nodes addressed by 5-bit slices
// of the index, plus a tail buffer of the newest (at most 32) elements.
// Reads descend at most ceil(log32(n)) levels. Updates copy one node per
// level and share every other subtree with the source vector.
//
// # Concurrency
//
// Vectors are immutable and safe for concurrent reads. A transient is never
// locked; the ownership check fails fast instead. Nothing in this package
// starts goroutines or blocks.
package pvec
