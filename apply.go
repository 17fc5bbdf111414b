// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
	"log"

	"github.com/cespare/xxhash/v2"
)

// Apply returns the result of applying homomorphism h to the set n. We return
// Empty, and set the error status of d, if the computation fails.
//
// Results are memoized using the structural key of h, so that two equal
// homomorphisms (see Equal) share their results. The operators built for a
// given number of coordinates (NewAction, NewAssign, NewLinear) can only be
// applied to a DDD with the same Varnum.
func (d *DDD) Apply(h Hom, n Node) Node {
	if h == nil {
		return d.seterror("nil homomorphism in call to Apply")
	}
	if d.checknode(n) != nil {
		return d.seterror("wrong operand in call to Apply (%d)", n)
	}
	if d.error != nil {
		return Empty
	}
	if err := d.checksize(h); err != nil {
		return d.seterror("%w", err)
	}
	res := d.applyhom(d.intern(h), n)
	if d.error != nil {
		return Empty
	}
	if res != Empty && d.level(res) != d.level(n) {
		return d.seterror("result of %v at level %d, expected level %d", h, d.level(res), d.level(n))
	}
	return res
}

// checksize returns an error if h, or one of its parts, was built for vectors
// with a number of coordinates different from Varnum.
func (d *DDD) checksize(h Hom) error {
	switch h := h.(type) {
	case *composite:
		for _, p := range h.parts {
			if err := d.checksize(p); err != nil {
				return err
			}
		}
	case sized:
		if h.size() != d.varnum {
			return fmt.Errorf("%w: %v built for %d variables, applied with %d", ErrInvalidActionSpec, h, h.size(), d.varnum)
		}
	}
	return nil
}

// Canonical returns the instance of h kept in the registry of d. All the
// homomorphisms that are Equal to h have the same canonical instance.
func (d *DDD) Canonical(h Hom) Hom {
	return d.homs[d.intern(h)]
}

// Homcount returns the number of distinct homomorphisms registered in d.
func (d *DDD) Homcount() int {
	return len(d.homs)
}

// intern returns the id of h in the registry, adding it if needed. Parts of
// composite homomorphisms are interned first. The registry is indexed by the
// hash of the key (see Hash); keys are compared on collisions.
func (d *DDD) intern(h Hom) int {
	d.kbuff = h.AppendKey(d.kbuff[:0])
	hash := xxhash.Sum64(d.kbuff)
	for _, id := range d.homids[hash] {
		if d.homkeys[id] == string(d.kbuff) {
			return id
		}
	}
	key := string(d.kbuff)
	var parts []int
	if c, ok := h.(*composite); ok {
		parts = make([]int, len(c.parts))
		for k, p := range c.parts {
			parts[k] = d.intern(p)
		}
	}
	id := len(d.homs)
	d.homs = append(d.homs, h)
	d.homparts = append(d.homparts, parts)
	d.homkeys = append(d.homkeys, key)
	d.homids[hash] = append(d.homids[hash], id)
	return id
}

func (d *DDD) applyhom(id int, n Node) Node {
	if n == Empty || d.error != nil {
		return Empty
	}
	h := d.homs[id]
	switch h := h.(type) {
	case identity:
		return n
	case null:
		return Empty
	case *composite:
		return d.applycomposite(id, h.tag, n)
	}
	if n == One {
		return d.terminal(h)
	}
	if res, ok := d.matchhom(id, n); ok {
		return res
	}
	lvl := d.level(n)
	var emitted []Arc
	rest := Empty
	for _, a := range d.arcs(n) {
		s := h.Phi(int(lvl), a.Value)
		switch s.kind {
		case stepDrop:
			continue
		case stepEmit:
			sub := d.applyhom(d.intern(s.next), a.Child)
			if sub == Empty {
				continue
			}
			if d.level(sub) != lvl+1 {
				return d.badlevel(h, lvl, sub)
			}
			emitted = d.addarc(emitted, s.value, sub)
		case stepSkip:
			sub := d.applyhom(d.intern(s.next), a.Child)
			// the result also covers the current level, and the skipped ones
			if sub != Empty && (sub == One || d.level(sub) > lvl) {
				return d.badlevel(h, lvl, sub)
			}
			rest = d.apply(OPunion, rest, sub)
		case stepLift:
			sub := d.applyhom(d.intern(s.next), a.Child)
			rest = d.apply(OPunion, rest, d.lift(lvl, s.value, sub))
		case stepResolve:
			sub := d.applyhom(d.intern(s.next), a.Child)
			if sub != Empty && d.level(sub) != lvl+1 {
				return d.badlevel(h, lvl, sub)
			}
			sub = d.makenode(lvl, []Arc{{s.value, sub}})
			sub = d.makenode(int32(s.level), []Arc{{s.pending, sub}})
			rest = d.apply(OPunion, rest, sub)
		case stepSettle:
			if s.level+len(s.values) != int(lvl)+1 {
				return d.seterror("bad settle from level %d with %d values at level %d", s.level, len(s.values), lvl)
			}
			sub := d.applyhom(d.intern(s.next), a.Child)
			if sub != Empty && d.level(sub) != lvl+1 {
				return d.badlevel(h, lvl, sub)
			}
			for k := len(s.values) - 1; k >= 0; k-- {
				sub = d.makenode(int32(s.level+k), []Arc{{s.values[k], sub}})
			}
			rest = d.apply(OPunion, rest, sub)
		case stepFail:
			return d.seterror("%w (level %d, value %d)", s.err, lvl, a.Value)
		default:
			return d.seterror("unknown step in homomorphism (level %d, value %d)", lvl, a.Value)
		}
		if d.error != nil {
			return Empty
		}
	}
	res := rest
	if len(emitted) > 0 {
		res = d.apply(OPunion, d.makenode(lvl, emitted), rest)
	}
	if d.error != nil {
		return Empty
	}
	return d.sethom(id, n, res)
}

// badlevel records that the rule of h at level lvl produced a diagram that
// does not start at the expected level, which would break quasi-reduction.
func (d *DDD) badlevel(h Hom, lvl int32, sub Node) Node {
	return d.seterror("malformed result of %v below level %d (got level %d)", h, lvl, d.level(sub))
}

// addarc adds the arc (value, child) to arcs, taking the union of the children
// when value is already used.
func (d *DDD) addarc(arcs []Arc, value int, child Node) []Arc {
	for k := range arcs {
		if arcs[k].Value == value {
			arcs[k].Child = d.apply(OPunion, arcs[k].Child, child)
			return arcs
		}
	}
	return append(arcs, Arc{value, child})
}

// lift inserts value at level just below the root of sub, which must be the
// pending level of a write waiting for its value.
func (d *DDD) lift(level int32, value int, sub Node) Node {
	if sub == Empty {
		return Empty
	}
	top := d.level(sub)
	if sub == One || top >= level {
		return d.seterror("%w (lift at level %d)", errPending, level)
	}
	arcs := d.arcs(sub)
	res := make([]Arc, len(arcs))
	for k, a := range arcs {
		res[k] = Arc{a.Value, d.makenode(level, []Arc{{value, a.Child}})}
	}
	return d.makenode(top, res)
}

func (d *DDD) terminal(h Hom) Node {
	o := h.Terminal()
	switch o.kind {
	case outcomeAccept:
		if len(o.values) > d.varnum {
			return d.seterror("terminal suffix too long (%d values)", len(o.values))
		}
		return d.chain(int32(d.varnum-len(o.values)), o.values)
	case outcomeReject:
		return Empty
	}
	return d.seterror("%w", errPending)
}

func (d *DDD) applycomposite(id int, tag byte, n Node) Node {
	if res, ok := d.matchhom(id, n); ok {
		return res
	}
	parts := d.homparts[id]
	var res Node
	switch tag {
	case tagCompose:
		res = n
		for k := len(parts) - 1; k >= 0 && res != Empty; k-- {
			res = d.applyhom(parts[k], res)
		}
	case tagSum:
		res = Empty
		for _, p := range parts {
			res = d.apply(OPunion, res, d.applyhom(p, n))
		}
	case tagFixpoint:
		res = n
		for iter := 1; ; iter++ {
			next := d.applyhom(parts[0], res)
			if d.error != nil || next == res {
				break
			}
			if _LOGLEVEL > 0 {
				log.Printf("fixpoint iteration %d: %d nodes\n", iter, len(d.nodes))
			}
			res = next
		}
	default:
		return d.seterror("unknown composite homomorphism (%c)", tag)
	}
	if d.error != nil {
		return Empty
	}
	return d.sethom(id, n, res)
}
