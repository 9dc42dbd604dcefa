package pvec

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// Filter returns the set of indexes whose element satisfies pred.
//
// Index sets are 32-bit; elements beyond math.MaxUint32 are not visited.
func (v *Vector[T]) Filter(pred func(i int, x T) bool) *roaring.Bitmap {
	out := roaring.New()
	for i, x := range v.All() {
		if uint64(i) > math.MaxUint32 {
			break
		}
		if pred(i, x) {
			out.Add(uint32(i))
		}
	}
	return out
}

// Gather returns the elements at the indexes in idx, in ascending index
// order. It fails without reading anything if any index is out of range.
func (v *Vector[T]) Gather(idx *roaring.Bitmap) ([]T, error) {
	if idx == nil || idx.IsEmpty() {
		return []T{}, nil
	}
	if last := int(idx.Maximum()); last >= v.count {
		return nil, &IndexError{Op: "Gather", Index: last, Len: v.count}
	}

	out := make([]T, 0, idx.GetCardinality())

	// Consecutive indexes mostly share a block; resolve each block once.
	var block []T
	base := -1

	it := idx.Iterator()
	for it.HasNext() {
		i := int(it.Next())
		if b := i &^ mask; b != base {
			base = b
			block = v.arrayFor(i)
		}
		out = append(out, block[i&mask])
	}
	return out, nil
}
