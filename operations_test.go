// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//********************************************************************************************

func TestPrimeGte(t *testing.T) {
	var primeTests = []struct {
		src, expected int
	}{
		{0, 3},
		{2, 3},
		{3, 3},
		{4, 5},
		{10000, 10007},
	}
	for _, tt := range primeTests {
		actual := primeGte(tt.src)
		if actual != tt.expected {
			t.Errorf("primeGte(%d): expected %d, actual %d", tt.src, tt.expected, actual)
		}
	}
}

//********************************************************************************************

func TestNew(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)
	_, err = New(2, Names("a", "b", "c"))
	assert.Error(t, err)

	d, err := New(3, Names("a"), Nodesize(100), Cachesize(50), Cacheratio(20))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Varnum())
	assert.Equal(t, "a", d.Name(0))
	assert.Equal(t, "x2", d.Name(2))
	assert.Equal(t, 3, d.Level(One))
	assert.Equal(t, 3, d.Level(Empty))
}

func TestVector(t *testing.T) {
	d, err := New(3)
	require.NoError(t, err)
	n := d.Vector(1, -2, 3)
	assert.Equal(t, 0, d.Level(n))
	assert.Equal(t, []Arc{{1, d.Arcs(n)[0].Child}}, d.Arcs(n))
	assert.Equal(t, n, d.Vector(1, -2, 3))
	assert.Equal(t, [][]int{{1, -2, 3}}, collect(t, d, n))
	assert.Equal(t, 3, d.Nodecount(n))

	// Arcs returns a copy
	arcs := d.Arcs(n)
	arcs[0].Value = 42
	assert.Equal(t, 1, d.Arcs(n)[0].Value)

	assert.Equal(t, Empty, d.Vector(1, 2))
	assert.True(t, d.Errored())
}

// TestOperations checks set operations against their definition on explicit
// sets of vectors.
func TestOperations(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	const varnum = 4
	d, err := New(varnum, Cachesize(31), Cacheratio(50))
	require.NoError(t, err)

	key := func(v []int) [varnum]int {
		var res [varnum]int
		copy(res[:], v)
		return res
	}
	for trial := 0; trial < 50; trial++ {
		left := randomVectors(r, varnum, 20, 3)
		right := randomVectors(r, varnum, 20, 3)
		l := d.FromVectors(left)
		rn := d.FromVectors(right)

		inleft := make(map[[varnum]int]bool)
		inright := make(map[[varnum]int]bool)
		for _, v := range left {
			inleft[key(v)] = true
		}
		for _, v := range right {
			inright[key(v)] = true
		}
		var union, inter, diff [][]int
		for _, v := range normalize(append(append([][]int(nil), left...), right...)) {
			union = append(union, v)
			if inleft[key(v)] && inright[key(v)] {
				inter = append(inter, v)
			}
			if inleft[key(v)] && !inright[key(v)] {
				diff = append(diff, v)
			}
		}
		assert.Equal(t, union, collect(t, d, d.Union(l, rn)))
		assert.Equal(t, inter, collect(t, d, d.Intersect(l, rn)))
		assert.Equal(t, diff, collect(t, d, d.Diff(l, rn)))
		assert.Equal(t, int64(len(union)), d.Count(d.Union(l, rn)).Int64())
		assert.True(t, d.Equal(d.Union(l, rn), d.Union(rn, l)))
		assert.Equal(t, l, d.Union(d.Diff(l, rn), d.Intersect(l, rn)))
	}
	require.False(t, d.Errored(), d.Error())
}

func TestOperationsTerminals(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	n := d.Vector(1, 1)
	assert.Equal(t, n, d.Union(n, Empty))
	assert.Equal(t, Empty, d.Intersect(n, Empty))
	assert.Equal(t, Empty, d.Diff(n, n))
	assert.Equal(t, Empty, d.Union())
	assert.Equal(t, int64(0), d.Count(Empty).Int64())

	assert.Equal(t, Empty, d.Intersect())
	assert.True(t, d.Errored())

	d, err = New(2)
	require.NoError(t, err)
	assert.Equal(t, Empty, d.Combine(n, Node(1000), OPunion))
	assert.True(t, d.Errored())
	assert.Equal(t, "unknown", Operator(7).String())
}

func TestAllvecStops(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	n := d.FromVectors([][]int{{0, 1}, {0, 2}, {1, 0}})
	stop := errors.New("stop")
	count := 0
	err = d.Allvec(n, func(v []int) error {
		count++
		if v[1] == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
	assert.Error(t, d.Allvec(Node(-1), func([]int) error { return nil }))
}

func TestAllnodes(t *testing.T) {
	d, err := New(2)
	require.NoError(t, err)
	n := d.FromVectors([][]int{{0, 1}, {1, 1}, {2, 3}})
	levels := make(map[int]int)
	err = d.Allnodes(func(id Node, level int, arcs []Arc) error {
		levels[level]++
		return nil
	}, n)
	require.NoError(t, err)
	// one root, two nodes at level 1 and the terminal One
	assert.Equal(t, map[int]int{0: 1, 1: 2, 2: 1}, levels)
	assert.Equal(t, 3, d.Nodecount(n))
}
