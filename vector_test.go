package pvec

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/hupe1980/pvec/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boundarySizes crosses every interesting shape: empty, tail only, first
// push, full root at shift 5, root growth, second growth.
var boundarySizes = []int{0, 1, 31, 32, 33, 64, 65, 1024, 1025, 1056, 1057, 1088, 32*32*32 + 32, 32*32*32 + 33}

func foldAdd(n int) *Vector[int] {
	v := Empty[int]()
	for i := range n {
		v = v.Add(i)
	}
	return v
}

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func countNodes[T any](n *node[T], level uint) int {
	if n == nil {
		return 0
	}
	if level == 0 {
		return 1
	}
	c := 1
	for _, child := range n.children {
		c += countNodes(child, level-bits)
	}
	return c
}

func countLeafValues[T any](n *node[T], level uint) int {
	if n == nil {
		return 0
	}
	if level == 0 {
		return len(n.values)
	}
	c := 0
	for _, child := range n.children {
		c += countLeafValues(child, level-bits)
	}
	return c
}

func requireFrozen[T any](t *testing.T, n *node[T], level uint) {
	t.Helper()
	if n == nil {
		return
	}
	require.Nil(t, n.edit.owner.Load(), "reachable node still owned by a transient")
	if level == 0 {
		return
	}
	for _, child := range n.children {
		requireFrozen(t, child, level-bits)
	}
}

// requireInvariants checks the count/tail/trie relationship of v.
func requireInvariants[T any](t *testing.T, v *Vector[T]) {
	t.Helper()

	require.Equal(t, v.count-tailoff(v.count), len(v.tail), "tail length")
	require.Equal(t, tailoff(v.count), countLeafValues(v.root, v.shift), "elements in trie")
	require.Zero(t, v.shift%bits)
	requireFrozen(t, v.root, v.shift)
}

func requireContents(t *testing.T, v *Vector[int], n int) {
	t.Helper()

	require.Equal(t, n, v.Len())
	for i := range n {
		x, err := v.Get(i)
		require.NoError(t, err)
		require.Equal(t, i, x, "index %d", i)
	}
}

func TestVector_Empty(t *testing.T) {
	v := Empty[string]()

	assert.Equal(t, 0, v.Len())
	assert.Equal(t, uint(bits), v.shift)
	assert.NotNil(t, v.root)
	assert.Equal(t, "[]", v.String())
	requireInvariants(t, v)
}

func TestVector_Add(t *testing.T) {
	for _, n := range boundarySizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			v := foldAdd(n)
			requireContents(t, v, n)
			requireInvariants(t, v)

			w := v.Add(-1)
			assert.Equal(t, v.Len()+1, w.Len())
			x, err := w.Get(v.Len())
			require.NoError(t, err)
			assert.Equal(t, -1, x)

			// The source is untouched.
			requireContents(t, v, n)
		})
	}
}

func TestVector_AddGrowsShift(t *testing.T) {
	assert.Equal(t, uint(5), foldAdd(1056).shift)
	assert.Equal(t, uint(10), foldAdd(1057).shift)
	assert.Equal(t, uint(10), foldAdd(32*32*32+32).shift)
	assert.Equal(t, uint(15), foldAdd(32*32*32+33).shift)
}

func TestVector_Set(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for _, n := range []int{1, 31, 33, 100, 1057, 5000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			v := From(ints(n))

			for _, i := range rng.Ints(50, n) {
				w, err := v.Set(i, -i-1)
				require.NoError(t, err)
				requireInvariants(t, w)

				for j := range n {
					x, err := w.Get(j)
					require.NoError(t, err)
					if j == i {
						require.Equal(t, -i-1, x)
					} else {
						require.Equal(t, j, x)
					}
				}

				// The source still holds the old value.
				x, err := v.Get(i)
				require.NoError(t, err)
				require.Equal(t, i, x)
			}
		})
	}
}

func TestVector_SetSharesUntouchedSubtrees(t *testing.T) {
	v := foldAdd(2000)
	require.Equal(t, uint(10), v.shift)

	w, err := v.Set(100, -1)
	require.NoError(t, err)

	assert.NotSame(t, v.root, w.root)
	assert.Same(t, v.root.children[1], w.root.children[1])

	left, wleft := v.root.children[0], w.root.children[0]
	assert.NotSame(t, left, wleft)
	for j := range width {
		if j == 100>>bits {
			assert.NotSame(t, left.children[j], wleft.children[j])
			continue
		}
		assert.Same(t, left.children[j], wleft.children[j], "slot %d", j)
	}

	// The tail is shared by reference for trie updates.
	assert.Same(t, &v.tail[0], &w.tail[0])
}

func TestVector_SetInTailSharesRoot(t *testing.T) {
	v := foldAdd(100)

	w, err := v.Set(99, -1)
	require.NoError(t, err)

	assert.Same(t, v.root, w.root)
	assert.NotSame(t, &v.tail[0], &w.tail[0])

	x, _ := v.Get(99)
	assert.Equal(t, 99, x)
}

func TestVector_IndexOutOfRange(t *testing.T) {
	for _, n := range []int{0, 1, 1000} {
		v := foldAdd(n)

		for _, i := range []int{-1, n, n + 1, -1000} {
			t.Run(fmt.Sprintf("n=%d/i=%d", n, i), func(t *testing.T) {
				_, err := v.Get(i)
				require.ErrorIs(t, err, ErrIndexOutOfRange)

				var ie *IndexError
				require.ErrorAs(t, err, &ie)
				assert.Equal(t, "Get", ie.Op)
				assert.Equal(t, i, ie.Index)
				assert.Equal(t, n, ie.Len)

				w, err := v.Set(i, 1)
				require.ErrorIs(t, err, ErrIndexOutOfRange)
				assert.Nil(t, w)
			})
		}
	}
}

func TestVector_IndexErrorMessage(t *testing.T) {
	_, err := Of(1, 2, 3).Get(3)
	assert.EqualError(t, err, "pvec: Get: index 3 out of range [0, 3)")
}

func TestVector_Pop(t *testing.T) {
	for _, n := range boundarySizes[1:] {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			v := foldAdd(n)

			w, err := v.Pop()
			require.NoError(t, err)
			requireContents(t, w, n-1)
			requireInvariants(t, w)
			assert.Equal(t, foldAdd(n-1).shift, w.shift)

			// Source untouched.
			requireContents(t, v, n)
		})
	}
}

func TestVector_PopToEmpty(t *testing.T) {
	v := foldAdd(1100)
	for n := 1100; n > 0; n-- {
		var err error
		v, err = v.Pop()
		require.NoError(t, err)
		require.Equal(t, n-1, v.Len())
		if n%97 == 0 {
			requireContents(t, v, n-1)
			requireInvariants(t, v)
		}
	}

	_, err := v.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestVector_PopThenAdd(t *testing.T) {
	v := foldAdd(1057)
	v, err := v.Pop()
	require.NoError(t, err)
	v = v.Add(1056).Add(1057)
	requireContents(t, v, 1058)
	requireInvariants(t, v)
}

func TestVector_ZeroValue(t *testing.T) {
	var v Vector[int]
	assert.Equal(t, 0, v.Len())

	_, err := v.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	w := &v
	for i := range 100 {
		w = w.Add(i)
	}
	requireContents(t, w, 100)
	assert.Equal(t, 0, v.Len())

	s := NewSession()
	tr := v.AsTransient(s)
	for i := range 40 {
		require.NoError(t, tr.Conj(s, i))
	}
	frozen, err := tr.Persistent(s)
	require.NoError(t, err)
	requireContents(t, frozen, 40)
}

func TestVector_Iterators(t *testing.T) {
	v := foldAdd(70)

	var idx []int
	for i, x := range v.All() {
		require.Equal(t, i, x)
		idx = append(idx, i)
	}
	assert.Len(t, idx, 70)

	var back []int
	for i, x := range v.Backward() {
		require.Equal(t, i, x)
		back = append(back, i)
	}
	slices.Reverse(back)
	assert.Equal(t, idx, back)

	assert.Equal(t, idx, slices.Collect(v.Values()))
	assert.Equal(t, idx, v.ToSlice())

	// Early exit.
	n := 0
	for range v.All() {
		n++
		if n == 40 {
			break
		}
	}
	assert.Equal(t, 40, n)

	for range Empty[int]().Backward() {
		t.Fatal("unexpected element")
	}
}

func TestVector_String(t *testing.T) {
	assert.Equal(t, "[a b c]", Of("a", "b", "c").String())
}

func TestVector_Scenario(t *testing.T) {
	s := NewSession()
	tr := Empty[int]().AsTransient(s)
	for i := range 1000 {
		require.NoError(t, tr.Conj(s, i))
	}
	result, err := tr.Persistent(s)
	require.NoError(t, err)

	assert.Equal(t, 1000, result.Len())
	for _, i := range []int{0, 999, 500} {
		x, err := result.Get(i)
		require.NoError(t, err)
		assert.Equal(t, i, x)
	}

	updated, err := result.Set(500, -1)
	require.NoError(t, err)

	x, _ := updated.Get(500)
	assert.Equal(t, -1, x)
	x, _ = result.Get(500)
	assert.Equal(t, 500, x)
}

func TestVector_ErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmpty, ErrIndexOutOfRange))
	assert.False(t, errors.Is(ErrUsedAfterFreeze, ErrUsedByNonOwner))
	assert.True(t, errors.Is(ErrUsedAfterFreeze, ErrOwnershipViolation))
	assert.True(t, errors.Is(ErrUsedByNonOwner, ErrOwnershipViolation))
}
