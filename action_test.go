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

func TestComparatorHolds(t *testing.T) {
	tests := []struct {
		cmp      Comparator
		value    int
		expected bool
	}{
		{EQ, 0, true},
		{EQ, 1, false},
		{NE, 0, false},
		{NE, -2, true},
		{LT, -1, true},
		{LT, 0, false},
		{GT, 1, true},
		{GT, 0, false},
		{LE, 0, true},
		{LE, 1, false},
		{GE, 0, true},
		{GE, -1, false},
	}
	for _, tt := range tests {
		actual, err := tt.cmp.Holds(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, actual, "%d %s 0", tt.value, tt.cmp)
	}

	_, err := Comparator(42).Holds(0)
	assert.ErrorIs(t, err, ErrUnknownComparator)
}

func TestParseComparator(t *testing.T) {
	for _, s := range []string{"==", "!=", "<", ">", "<=", ">="} {
		cmp, err := ParseComparator(s)
		require.NoError(t, err)
		assert.Equal(t, s, cmp.String())
	}
	cmp, err := ParseComparator("=")
	require.NoError(t, err)
	assert.Equal(t, EQ, cmp)

	_, err = ParseComparator("=<")
	assert.ErrorIs(t, err, ErrUnknownComparator)
}

func TestActionGuardedIncrement(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	// x0 - x1 == 0 ; x0 += 1
	h, err := NewAction(2,
		[]Guard{{Cmp: EQ, Constant: 0, Coefs: []int{1, -1}}},
		[]Update{{Target: 0, Accumulate: true, Constant: 1, Coefs: []int{0, 0}}})
	require.NoError(t, err)
	res := d.Apply(h, d.FromVectors([][]int{{2, 2}, {3, 4}}))
	require.False(t, d.Errored(), d.Error())
	assert.Equal(t, [][]int{{3, 2}}, collect(t, d, res))
}

func TestActionIdentityLaw(t *testing.T) {
	d, err := New(3)
	require.NoError(t, err)
	set := d.FromVectors([][]int{{0, 1, 2}, {4, 4, 4}, {1, 0, 7}})

	h, err := NewAction(3, nil, nil)
	require.NoError(t, err)
	assert.True(t, Equal(h, Identity))
	assert.Equal(t, set, d.Apply(h, set))

	// explicit identity updates are also recognized
	h, err = NewAction(3, nil, []Update{
		{Target: 1, Coefs: []int{0, 1, 0}},
		{Target: 2, Accumulate: true, Coefs: []int{0, 0, 0}},
	})
	require.NoError(t, err)
	assert.Equal(t, set, d.Apply(h, set))
}

func TestActionConstantGuards(t *testing.T) {
	h, err := NewAction(2, []Guard{{Cmp: LT, Constant: 1, Coefs: []int{0, 0}}}, nil)
	require.NoError(t, err)
	assert.True(t, Equal(h, Null))

	h, err = NewAction(2, []Guard{{Cmp: GE, Constant: 1, Coefs: []int{0, 0}}}, nil)
	require.NoError(t, err)
	assert.True(t, Equal(h, Identity))
}

func TestActionBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	cmps := []Comparator{EQ, NE, LT, GT, LE, GE}
	for trial := 0; trial < 200; trial++ {
		varnum := 1 + r.Intn(4)
		d, err := New(varnum, Cachesize(97))
		require.NoError(t, err)
		vecs := randomVectors(r, varnum, 1+r.Intn(20), 4)

		var guards []Guard
		for k := r.Intn(3); k > 0; k-- {
			guards = append(guards, Guard{
				Cmp:      cmps[r.Intn(len(cmps))],
				Constant: r.Intn(7) - 3,
				Coefs:    randomCoefs(r, varnum),
			})
		}
		var updates []Update
		for _, tgt := range r.Perm(varnum)[:r.Intn(varnum+1)] {
			updates = append(updates, Update{
				Target:     tgt,
				Accumulate: r.Intn(2) == 0,
				Constant:   r.Intn(7) - 3,
				Coefs:      randomCoefs(r, varnum),
			})
		}

		h, err := NewAction(varnum, guards, updates)
		require.NoError(t, err)
		res := d.Apply(h, d.FromVectors(vecs))
		require.False(t, d.Errored(), d.Error())
		assert.Equal(t, bruteAction(t, guards, updates, vecs), collect(t, d, res),
			"trial %d: %v", trial, h)
	}
}

func TestActionCanonical(t *testing.T) {
	build := func(constant int, cmp Comparator) Hom {
		h, err := NewAction(3,
			[]Guard{
				{Cmp: cmp, Constant: constant, Coefs: []int{1, 0, -1}},
				{Cmp: GE, Constant: 0, Coefs: []int{0, 1, 0}},
			},
			[]Update{{Target: 2, Constant: 1, Coefs: []int{1, 1, 0}}})
		require.NoError(t, err)
		return h
	}
	a, b := build(2, LT), build(2, LT)
	assert.True(t, Equal(a, b))
	assert.Equal(t, Hash(a), Hash(b))
	assert.False(t, Equal(a, build(3, LT)))
	assert.False(t, Equal(a, build(2, LE)))

	d, err := New(3)
	require.NoError(t, err)
	assert.Same(t, d.Canonical(a), d.Canonical(b))
	assert.Equal(t, 1, d.Homcount())

	// residual operators after the same prefix are shared
	sa := a.Phi(0, 1)
	sb := b.Phi(0, 1)
	assert.True(t, Equal(sa.next, sb.next))
	assert.False(t, Equal(sa.next, a.Phi(0, 2).next))

	// guard order is part of the key
	c, err := NewAction(3,
		[]Guard{
			{Cmp: GE, Constant: 0, Coefs: []int{0, 1, 0}},
			{Cmp: LT, Constant: 2, Coefs: []int{1, 0, -1}},
		},
		[]Update{{Target: 2, Constant: 1, Coefs: []int{1, 1, 0}}})
	require.NoError(t, err)
	assert.False(t, Equal(a, c))
}

func TestActionShortCircuit(t *testing.T) {
	// x0 > 5 is decided at level 0
	h, err := NewAction(3, []Guard{{Cmp: GT, Constant: -5, Coefs: []int{1, 0, 0}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, stepDrop, h.Phi(0, 2).kind)
	s := h.Phi(0, 7)
	assert.Equal(t, stepEmit, s.kind)
	assert.Equal(t, 7, s.value)
	assert.Empty(t, s.next.(*action).guards)
}

func TestActionSettle(t *testing.T) {
	// x0 := x2 - 1 ; x1 := 4 cannot be written before x2 is known
	h, err := NewAction(3, nil, []Update{
		{Target: 0, Constant: -1, Coefs: []int{0, 0, 1}},
		{Target: 1, Constant: 4, Coefs: []int{0, 0, 0}},
	})
	require.NoError(t, err)
	s := h.Phi(0, 3)
	require.Equal(t, stepSkip, s.kind)
	s = s.next.Phi(1, 8)
	require.Equal(t, stepSkip, s.kind)
	s = s.next.Phi(2, 6)
	require.Equal(t, stepSettle, s.kind)
	assert.Equal(t, 0, s.level)
	assert.Equal(t, []int{5, 4, 6}, s.values)
	// every level is written
	assert.Equal(t, stepFail, s.next.Phi(0, 1).kind)

	d, err := New(3)
	require.NoError(t, err)
	res := d.Apply(h, d.FromVectors([][]int{{3, 8, 6}, {0, 0, 0}, {1, 1, 6}}))
	require.False(t, d.Errored(), d.Error())
	assert.Equal(t, [][]int{{-1, 4, 0}, {5, 4, 6}}, collect(t, d, res))
}

func TestActionErrors(t *testing.T) {
	_, err := NewAction(2, []Guard{{Cmp: EQ, Coefs: []int{1}}}, nil)
	assert.ErrorIs(t, err, ErrInvalidActionSpec)

	_, err = NewAction(2, []Guard{{Cmp: Comparator(9), Coefs: []int{1, 0}}}, nil)
	assert.ErrorIs(t, err, ErrUnknownComparator)

	_, err = NewAction(2, nil, []Update{{Target: 2, Coefs: []int{0, 0}}})
	assert.ErrorIs(t, err, ErrInvalidActionSpec)

	_, err = NewAction(2, nil, []Update{{Target: 0, Coefs: []int{0, 0, 1}}})
	assert.ErrorIs(t, err, ErrInvalidActionSpec)

	_, err = NewAction(2, nil, []Update{
		{Target: 0, Coefs: []int{0, 1}},
		{Target: 0, Constant: 1, Coefs: []int{0, 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidActionSpec)

	_, err = NewAction(0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidActionSpec)
}

func TestActionWrongLevel(t *testing.T) {
	h, err := NewAction(2, nil, []Update{{Target: 0, Constant: 1, Coefs: []int{0, 0}}})
	require.NoError(t, err)
	s := h.Phi(2, 3)
	require.Equal(t, stepFail, s.kind)
	assert.EqualError(t, s.err, "action on level 2, beyond the last coordinate x1")

	s = h.Phi(0, 3)
	require.Equal(t, stepEmit, s.kind)
	s = s.next.Phi(0, 3)
	require.Equal(t, stepFail, s.kind)
	assert.EqualError(t, s.err, "action on level 0, coordinates up to x0 are already written")
}

func TestActionString(t *testing.T) {
	g := Guard{Cmp: LE, Constant: -3, Coefs: []int{2, -1, 0}}
	assert.Equal(t, "2*x0 - x1 - 3 <= 0", g.String())
	u := Update{Target: 1, Accumulate: true, Constant: 4, Coefs: []int{0, 0, 0}}
	assert.Equal(t, "x1 += 4", u.String())
}
