// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"encoding/binary"
	"fmt"
	"log"
	"sort"
)

// DDD implements a (quasi-reduced) Data Decision Diagram: a shared
// representation of a set of integer vectors of fixed length Varnum. Each
// coordinate is associated with a level, in the interval [0..Varnum), and every
// path from a root to the terminal One visits every level exactly once, in
// increasing order.
//
// Nodes are stored in a table and made unique using a runtime hashmap. We hash
// the level and the list of arcs of a node to a string (we reuse a byte buffer
// to avoid allocations on lookups) and use the unique table to associate each
// key to a single node. Homomorphisms are made unique in the same way, using
// the key returned by their AppendKey method.
//
// A DDD is not safe for concurrent use.
type DDD struct {
	nodes      []ddnode         // List of all the DDD nodes. Terminals are always kept at index 0 and 1
	unique     map[string]Node  // Unicity table, used to associate each (level, arcs) to a single node
	hbuff      []byte           // Used to compute the key of nodes
	produced   int              // Total number of new nodes ever produced
	homs       []Hom            // Registry of canonical homomorphisms, indexed by their id
	homparts   [][]int          // Ids of the parts of composite homomorphisms
	homkeys    []string         // Structural keys of the homomorphisms in homs
	homids     map[uint64][]int // Unicity table for homomorphisms, indexed by the hash of their key
	kbuff      []byte           // Used to compute the key of homomorphisms
	setcache   cache            // Cache for union, intersection and difference
	homcache   cache            // Cache for homomorphism applications
	cachenodes int              // Size of the node table at the last cache resize
	cacheStat                   // Information about the caches
	error                       // Error status to help chain operations
	configs                     // Configurable parameters
}

// New returns a new DDD for vectors with varnum coordinates. Options can be
// used to set the initial size of the node table (Nodesize), a limit on its
// size (Maxnodesize), the size of the caches (Cachesize, Cacheratio) and the
// names of the coordinates (Names).
func New(varnum int, options ...func(*configs)) (*DDD, error) {
	if (varnum < 1) || (varnum > _MAXVAR) {
		return nil, fmt.Errorf("bad number of variable (%d)", varnum)
	}
	config := makeconfigs(varnum)
	for _, f := range options {
		f(config)
	}
	d := &DDD{configs: *config}
	if len(d.names) > varnum {
		return nil, fmt.Errorf("too many names (%d) for %d variables", len(d.names), varnum)
	}
	for k := len(d.names); k < varnum; k++ {
		d.names = append(d.names, fmt.Sprintf("x%d", k))
	}
	d.nodes = make([]ddnode, 2, d.nodesize)
	// Empty and One are not added to the unique table.
	d.nodes[Empty] = ddnode{level: int32(varnum)}
	d.nodes[One] = ddnode{level: int32(varnum)}
	d.unique = make(map[string]Node, d.nodesize)
	d.homids = make(map[uint64][]int)
	d.cacheinit()
	if _LOGLEVEL > 0 {
		log.Printf("set varnum to %d\n", varnum)
	}
	return d, nil
}

// Varnum returns the number of coordinates of the vectors in the DDD.
func (d *DDD) Varnum() int {
	return d.varnum
}

// Name returns the name of the coordinate at the given level.
func (d *DDD) Name(level int) string {
	if level < 0 || level >= d.varnum {
		return fmt.Sprintf("?%d", level)
	}
	return d.names[level]
}

// ************************************************************

// nodekey fills d.hbuff with the encoding of the pair (level, arcs).
func (d *DDD) nodekey(level int32, arcs []Arc) {
	d.hbuff = binary.AppendVarint(d.hbuff[:0], int64(level))
	for _, a := range arcs {
		d.hbuff = binary.AppendVarint(d.hbuff, int64(a.Value))
		d.hbuff = binary.AppendUvarint(d.hbuff, uint64(a.Child))
	}
}

// makenode returns the unique node with the given level and arcs. The slice
// arcs is owned by makenode after the call: we drop arcs leading to Empty and
// sort the rest by value. Values must be pairwise distinct. We return Empty if
// no arc remains.
func (d *DDD) makenode(level int32, arcs []Arc) Node {
	if _DEBUG {
		d.uniqueAccess++
	}
	k := 0
	for _, a := range arcs {
		if a.Child != Empty {
			arcs[k] = a
			k++
		}
	}
	arcs = arcs[:k]
	if k == 0 {
		return Empty
	}
	if k > 1 {
		sort.Slice(arcs, func(i, j int) bool { return arcs[i].Value < arcs[j].Value })
	}
	d.nodekey(level, arcs)
	if res, ok := d.unique[string(d.hbuff)]; ok {
		if _DEBUG {
			d.uniqueHit++
		}
		return res
	}
	if _DEBUG {
		d.uniqueMiss++
	}
	if d.maxnodesize > 0 && len(d.nodes) >= d.maxnodesize {
		return d.seterror("%w (%d nodes)", errMemory, d.maxnodesize)
	}
	res := Node(len(d.nodes))
	d.nodes = append(d.nodes, ddnode{level: level, arcs: append([]Arc(nil), arcs...)})
	d.unique[string(d.hbuff)] = res
	d.produced++
	d.cacheresize()
	return res
}

// chain returns the node for a single vector, whose first coordinate is at
// level first.
func (d *DDD) chain(first int32, values []int) Node {
	res := One
	for k := len(values) - 1; k >= 0; k-- {
		res = d.makenode(first+int32(k), []Arc{{values[k], res}})
	}
	return res
}
