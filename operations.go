// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
	"log"
	"math/big"
)

// Vector returns the node for the set containing only the vector values. The
// vector must have exactly Varnum coordinates; otherwise we set the error
// status and return Empty.
func (d *DDD) Vector(values ...int) Node {
	if len(values) != d.varnum {
		return d.seterror("wrong vector length (%d, expected %d) in call to Vector", len(values), d.varnum)
	}
	return d.chain(0, values)
}

// FromVectors returns the node for the set of all the vectors in vectors.
func (d *DDD) FromVectors(vectors [][]int) Node {
	res := Empty
	for _, v := range vectors {
		n := d.Vector(v...)
		if d.error != nil {
			return Empty
		}
		res = d.apply(OPunion, res, n)
	}
	return res
}

// Union returns the union of a sequence of nodes.
func (d *DDD) Union(n ...Node) Node {
	res := Empty
	for _, v := range n {
		res = d.Combine(res, v, OPunion)
	}
	return res
}

// Intersect returns the intersection of a (non-empty) sequence of nodes.
func (d *DDD) Intersect(n ...Node) Node {
	if len(n) == 0 {
		return d.seterror("empty sequence in call to Intersect")
	}
	res := n[0]
	for _, v := range n[1:] {
		res = d.Combine(res, v, OPinter)
	}
	return res
}

// Diff returns the set of vectors in left that are not in right.
func (d *DDD) Diff(left, right Node) Node {
	return d.Combine(left, right, OPdiff)
}

// Equal tests equality between nodes. Since nodes are unique, two nodes
// represent the same set if and only if they are equal.
func (d *DDD) Equal(left, right Node) bool {
	return left == right
}

// Combine performs the basic set operations with two operands, union,
// intersection and difference. Left and right are the operands and op is the
// requested operation and must be one of the following:
//
//	Identifier    Description
//
//	OPunion       set union
//	OPinter       set intersection
//	OPdiff        set difference
func (d *DDD) Combine(left, right Node, op Operator) Node {
	if d.checknode(left) != nil {
		return d.seterror("wrong operand in call to Combine %s(left: %d, right: ...)", op, left)
	}
	if d.checknode(right) != nil {
		return d.seterror("wrong operand in call to Combine %s(left: ..., right: %d)", op, right)
	}
	if d.error != nil {
		return Empty
	}
	return d.apply(op, left, right)
}

func (d *DDD) apply(op Operator, left, right Node) Node {
	switch op {
	case OPunion:
		if left == right || right == Empty {
			return left
		}
		if left == Empty {
			return right
		}
		if left > right {
			left, right = right, left
		}
	case OPinter:
		if left == right {
			return left
		}
		if left == Empty || right == Empty {
			return Empty
		}
		if left > right {
			left, right = right, left
		}
	case OPdiff:
		if left == right || left == Empty {
			return Empty
		}
		if right == Empty {
			return left
		}
	default:
		return d.seterror("unauthorized operation (%s) in apply", op)
	}

	if res, ok := d.matchapply(left, right, op); ok {
		return res
	}
	lvl := d.level(left)
	if rlvl := d.level(right); lvl != rlvl {
		if _DEBUG {
			log.Panicf("panic in apply(%d,%d,%s): levels %d and %d\n", left, right, op, lvl, rlvl)
		}
		return d.seterror("level mismatch in %s(%d, %d): %d and %d", op, left, right, lvl, rlvl)
	}
	// Two distinct nodes at the same level cannot both be terminals.
	if left < 2 || right < 2 {
		return d.seterror("level mismatch in %s(%d, %d)", op, left, right)
	}
	larcs := d.arcs(left)
	rarcs := d.arcs(right)
	arcs := make([]Arc, 0, len(larcs)+len(rarcs))
	i, j := 0, 0
	for i < len(larcs) && j < len(rarcs) {
		switch {
		case larcs[i].Value < rarcs[j].Value:
			if op != OPinter {
				arcs = append(arcs, larcs[i])
			}
			i++
		case larcs[i].Value > rarcs[j].Value:
			if op == OPunion {
				arcs = append(arcs, rarcs[j])
			}
			j++
		default:
			arcs = append(arcs, Arc{larcs[i].Value, d.apply(op, larcs[i].Child, rarcs[j].Child)})
			i++
			j++
		}
	}
	if op != OPinter {
		arcs = append(arcs, larcs[i:]...)
	}
	if op == OPunion {
		arcs = append(arcs, rarcs[j:]...)
	}
	res := d.makenode(lvl, arcs)
	if d.error != nil {
		return Empty
	}
	return d.setapply(left, right, op, res)
}

// ************************************************************

// Count returns the number of vectors in the set denoted by n. We return a
// result using arbitrary-precision arithmetic to avoid possible overflows. The
// result is zero (and we set the error flag of d) if there is an error.
func (d *DDD) Count(n Node) *big.Int {
	if d.checknode(n) != nil {
		d.seterror("wrong operand in call to Count (%d)", n)
		return big.NewInt(0)
	}
	memo := make(map[Node]*big.Int)
	return new(big.Int).Set(d.count(n, memo))
}

func (d *DDD) count(n Node, memo map[Node]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	// we use memo to memoize the value of count for each nodes
	if res, ok := memo[n]; ok {
		return res
	}
	res := big.NewInt(0)
	for _, a := range d.arcs(n) {
		res.Add(res, d.count(a.Child, memo))
	}
	memo[n] = res
	return res
}

// Allvec iterates through all the vectors in the set denoted by n and calls the
// function f on each of them, in lexicographic order. The slice passed to f is
// reused between calls, so f should copy it if needed. We stop and return an
// error if f returns an error at some point.
//
// The following is an example of a callback handler that collects all the
// vectors in a slice:
//
//	var res [][]int
//	d.Allvec(n, func(v []int) error {
//		res = append(res, append([]int(nil), v...))
//		return nil
//	})
func (d *DDD) Allvec(n Node, f func([]int) error) error {
	if d.checknode(n) != nil {
		return fmt.Errorf("wrong node in call to Allvec (%d)", n)
	}
	if n == Empty {
		return nil
	}
	prof := make([]int, d.varnum-int(d.level(n)))
	// the function does not create new nodes
	return d.allvec(n, prof, 0, f)
}

func (d *DDD) allvec(n Node, prof []int, k int, f func([]int) error) error {
	if n == One {
		return f(prof)
	}
	for _, a := range d.arcs(n) {
		prof[k] = a.Value
		if err := d.allvec(a.Child, prof, k+1, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies function f over all the nodes accessible from the nodes in
// the sequence n..., in depth-first order, each node being visited once. The
// parameters to function f are the id, the level and the arcs of each node
// (the slice must not be modified). The terminal One is visited, with a nil
// slice of arcs, but not Empty. We stop the computation and return an error
// if f returns an error at some point.
func (d *DDD) Allnodes(f func(id Node, level int, arcs []Arc) error, n ...Node) error {
	for _, v := range n {
		if d.checknode(v) != nil {
			return fmt.Errorf("wrong node in call to Allnodes (%d)", v)
		}
	}
	seen := make(map[Node]bool)
	for _, v := range n {
		if err := d.allnodes(v, seen, f); err != nil {
			return err
		}
	}
	return nil
}

func (d *DDD) allnodes(n Node, seen map[Node]bool, f func(Node, int, []Arc) error) error {
	if n == Empty || seen[n] {
		return nil
	}
	seen[n] = true
	if err := f(n, int(d.level(n)), d.arcs(n)); err != nil {
		return err
	}
	for _, a := range d.arcs(n) {
		if err := d.allnodes(a.Child, seen, f); err != nil {
			return err
		}
	}
	return nil
}

// Nodecount returns the number of non-terminal nodes reachable from n.
func (d *DDD) Nodecount(n Node) int {
	count := 0
	err := d.Allnodes(func(id Node, _ int, _ []Arc) error {
		if id > One {
			count++
		}
		return nil
	}, n)
	if err != nil {
		d.seterror("%s", err)
		return 0
	}
	return count
}
