// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import "fmt"

// Node is a reference to an element of a DDD. It represents the atomic unit of
// interactions and computations within a DDD. Nodes are only meaningful for
// the DDD that created them.
type Node int

const (
	// Empty is the constant for the empty set of vectors.
	Empty Node = 0
	// One is the accepting terminal. It stands for the set that contains only
	// the empty suffix, and it is the child of every arc at the last level.
	One Node = 1
)

// Arc is an outgoing edge of a node: the coordinate of the node takes the
// value Value and the rest of the vector is described by Child.
type Arc struct {
	Value int
	Child Node
}

func (a Arc) String() string {
	return fmt.Sprintf("%d->%d", a.Value, a.Child)
}

type ddnode struct {
	level int32 // Order of the coordinate in the DDD; varnum for terminals
	arcs  []Arc // Outgoing arcs, sorted by value, never to Empty
}

// ************************************************************

func (d *DDD) level(n Node) int32 {
	return d.nodes[n].level
}

func (d *DDD) arcs(n Node) []Arc {
	return d.nodes[n].arcs
}

func (d *DDD) checknode(n Node) error {
	if n < 0 || int(n) >= len(d.nodes) {
		return fmt.Errorf("illegal node (%d)", n)
	}
	return nil
}

// Level returns the level (the index of the coordinate) of node n. The two
// terminals are at level Varnum. We return -1 and set the error status if n
// is not a valid node.
func (d *DDD) Level(n Node) int {
	if err := d.checknode(n); err != nil {
		d.seterror("%s in call to Level", err)
		return -1
	}
	return int(d.level(n))
}

// Arcs returns a copy of the outgoing arcs of node n, sorted by value. The
// result is nil for terminals and invalid nodes.
func (d *DDD) Arcs(n Node) []Arc {
	if err := d.checknode(n); err != nil {
		d.seterror("%s in call to Arcs", err)
		return nil
	}
	if n < 2 {
		return nil
	}
	return append([]Arc(nil), d.arcs(n)...)
}
