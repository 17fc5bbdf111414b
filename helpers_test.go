// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// collect returns the vectors in n, in lexicographic order.
func collect(t *testing.T, d *DDD, n Node) [][]int {
	t.Helper()
	var res [][]int
	err := d.Allvec(n, func(v []int) error {
		res = append(res, append([]int(nil), v...))
		return nil
	})
	require.NoError(t, err)
	return res
}

// normalize sorts vectors in lexicographic order and removes duplicates.
func normalize(vecs [][]int) [][]int {
	sort.Slice(vecs, func(i, j int) bool {
		return less(vecs[i], vecs[j])
	})
	var res [][]int
	for _, v := range vecs {
		if len(res) > 0 && equalInts(res[len(res)-1], v) {
			continue
		}
		res = append(res, v)
	}
	return res
}

func less(a, b []int) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k] < b[k]
		}
	}
	return false
}

// randomVectors returns count vectors of size varnum with values in [0, max).
func randomVectors(r *rand.Rand, varnum, count, max int) [][]int {
	res := make([][]int, count)
	for k := range res {
		res[k] = make([]int, varnum)
		for i := range res[k] {
			res[k][i] = r.Intn(max)
		}
	}
	return res
}

func randomCoefs(r *rand.Rand, varnum int) []int {
	res := make([]int, varnum)
	for i := range res {
		res[i] = r.Intn(5) - 2
	}
	return res
}

func dot(coefs, v []int) int {
	res := 0
	for i, c := range coefs {
		res += c * v[i]
	}
	return res
}

// bruteAction computes the image of vecs by a guarded update, one vector at a
// time.
func bruteAction(t *testing.T, guards []Guard, updates []Update, vecs [][]int) [][]int {
	t.Helper()
	var res [][]int
next:
	for _, v := range vecs {
		for _, g := range guards {
			ok, err := g.Cmp.Holds(dot(g.Coefs, v) + g.Constant)
			require.NoError(t, err)
			if !ok {
				continue next
			}
		}
		w := append([]int(nil), v...)
		for _, u := range updates {
			val := dot(u.Coefs, v) + u.Constant
			if u.Accumulate {
				val += v[u.Target]
			}
			w[u.Target] = val
		}
		res = append(res, w)
	}
	return normalize(res)
}

func unit(varnum, i, k int) []int {
	res := make([]int, varnum)
	res[i] = k
	return res
}
