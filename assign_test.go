// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignAffineAfterSource(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	h, err := NewAssign(2, 1, 0, false, 5, 2)
	require.NoError(t, err)
	res := d.Apply(h, d.FromVectors([][]int{{3, 0}, {0, 7}}))
	require.False(t, d.Errored(), d.Error())
	assert.Equal(t, [][]int{{0, 5}, {3, 11}}, collect(t, d, res))
}

func TestAssignIdentity(t *testing.T) {
	d, err := New(3)
	require.NoError(t, err)
	set := d.FromVectors([][]int{{1, 2, 3}, {0, 0, 0}, {5, 1, 5}})
	for tgt := 0; tgt < 3; tgt++ {
		for src := 0; src < 3; src++ {
			h, err := NewAssign(3, tgt, src, true, 0, 0)
			require.NoError(t, err)
			assert.True(t, Equal(h, Identity))
			assert.Equal(t, set, d.Apply(h, set))
		}
	}
}

// mirror reverses the coordinates of every vector in n.
func mirror(t *testing.T, d *DDD, n Node) Node {
	vecs := collect(t, d, n)
	for _, v := range vecs {
		for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
			v[i], v[j] = v[j], v[i]
		}
	}
	return d.FromVectors(vecs)
}

func TestAssignOrderIndependent(t *testing.T) {
	d, err := New(4)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(7))
	set := d.FromVectors(randomVectors(r, 4, 30, 5))
	for _, aug := range []bool{false, true} {
		// x3 := 3*x1 - 2, with the target after the source
		down, err := NewAssign(4, 3, 1, aug, -2, 3)
		require.NoError(t, err)
		// the same update on mirrored vectors has the target before the source
		up, err := NewAssign(4, 0, 2, aug, -2, 3)
		require.NoError(t, err)

		expected := d.Apply(down, set)
		actual := mirror(t, d, d.Apply(up, mirror(t, d, set)))
		require.False(t, d.Errored(), d.Error())
		assert.Equal(t, collect(t, d, expected), collect(t, d, actual))
	}
}

func TestAssignAgainstAction(t *testing.T) {
	const varnum = 4
	d, err := New(varnum)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(3))
	vecs := randomVectors(r, varnum, 40, 4)
	set := d.FromVectors(vecs)
	for tgt := 0; tgt < varnum; tgt++ {
		for src := 0; src < varnum; src++ {
			for _, aug := range []bool{false, true} {
				for _, mul := range []int{-1, 0, 2} {
					for _, inc := range []int{0, 3} {
						h, err := NewAssign(varnum, tgt, src, aug, inc, mul)
						require.NoError(t, err)
						u := Update{Target: tgt, Accumulate: aug, Constant: inc, Coefs: unit(varnum, src, mul)}
						a, err := NewAction(varnum, nil, []Update{u})
						require.NoError(t, err)

						res := d.Apply(h, set)
						require.False(t, d.Errored(), d.Error())
						assert.Equal(t, d.Apply(a, set), res, "assign %v", h)
						assert.Equal(t, bruteAction(t, nil, []Update{u}, vecs), collect(t, d, res), "assign %v", h)
					}
				}
			}
		}
	}
}

func TestAssignStates(t *testing.T) {
	// target before source
	h, err := NewAssign(3, 0, 2, false, 1, 2)
	require.NoError(t, err)
	s := h.Phi(0, 4)
	require.Equal(t, stepSkip, s.kind)
	assert.Equal(t, assignDeferred, s.next.(*assign).state)
	s = s.next.Phi(1, 5)
	require.Equal(t, stepLift, s.kind)
	assert.Equal(t, 5, s.value)
	s = s.next.Phi(2, 3)
	require.Equal(t, stepResolve, s.kind)
	assert.Equal(t, 0, s.level)
	assert.Equal(t, 7, s.pending)
	assert.True(t, Equal(s.next, Identity))

	// source before target
	h, err = NewAssign(3, 2, 0, true, 1, 2)
	require.NoError(t, err)
	s = h.Phi(0, 4)
	require.Equal(t, stepEmit, s.kind)
	assert.Equal(t, assignConstant, s.next.(*assign).state)
	s = s.next.Phi(2, 10)
	require.Equal(t, stepEmit, s.kind)
	assert.Equal(t, 19, s.value)

	// constant assignment
	h, err = NewAssign(3, 1, 0, false, 6, 0)
	require.NoError(t, err)
	assert.Equal(t, assignConstant, h.(*assign).state)
}

func TestAssignErrors(t *testing.T) {
	_, err := NewAssign(3, 3, 0, false, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidActionSpec)
	_, err = NewAssign(3, 0, -1, false, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidActionSpec)
}
