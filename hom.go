// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hom is a homomorphism over DDD, that is a function from sets of vectors to
// sets of vectors that distributes over union. A Hom is defined by its action
// on each arc (level, value) of a node, given by Phi, and by its action on the
// terminal One, given by Terminal. Values implementing Hom must be immutable.
//
// Two homomorphisms with the same key (see AppendKey) must behave identically;
// a DDD keeps a single instance for each key and uses it to share the results
// of computations.
type Hom interface {
	// Phi returns the action of the homomorphism on the arc labelled with
	// value, from a node at the given level.
	Phi(level, value int) Step

	// Terminal returns the action of the homomorphism on the terminal One.
	Terminal() Outcome

	// AppendKey appends a structural encoding of the homomorphism to buf.
	// Encodings must be prefix-free between the different types of
	// homomorphisms.
	AppendKey(buf []byte) []byte
}

type stepKind uint8

const (
	stepDrop stepKind = iota
	stepEmit
	stepSkip
	stepLift
	stepResolve
	stepSettle
	stepFail
)

// Step is the result of Phi on one arc.
type Step struct {
	kind    stepKind
	value   int   // value written at the current level
	level   int   // level of a pending write (Resolve, Settle)
	pending int   // value of the pending write (Resolve)
	values  []int // values of the pending writes (Settle)
	next    Hom   // homomorphism applied to the child of the arc
	err     error
}

// Drop returns a Step stating that no vector going through this arc is kept.
func Drop() Step {
	return Step{kind: stepDrop}
}

// Emit returns a Step that writes value at the current level and applies next
// to the child of the arc.
func Emit(value int, next Hom) Step {
	return Step{kind: stepEmit, value: value, next: next}
}

// Skip returns a Step that writes nothing at the current level: the result of
// applying next to the child must describe the current level too. This is used
// by homomorphisms that rebuild their output at the terminal, or that need
// information found deeper to compute the value at the current level.
func Skip(next Hom) Step {
	return Step{kind: stepSkip, next: next}
}

// Lift returns a Step used while a write at a level above is still pending
// (after a Skip). The result of applying next to the child starts with the
// pending level; value is written at the current level, just below it.
func Lift(value int, next Hom) Step {
	return Step{kind: stepLift, value: value, next: next}
}

// Resolve returns a Step that fixes the value of the pending write at level to
// pending, writes value at the current level, and applies next to the child.
func Resolve(level, pending, value int, next Hom) Step {
	return Step{kind: stepResolve, level: level, pending: pending, value: value, next: next}
}

// Settle returns a Step that writes values at the levels first, first+1, ...
// up to the current level, then applies next to the child. It ends a sequence
// of Skip started at level first.
func Settle(first int, values []int, next Hom) Step {
	return Step{kind: stepSettle, level: first, values: values, next: next}
}

// Fail returns a Step that aborts the computation and sets the error status of
// the DDD to err.
func Fail(err error) Step {
	return Step{kind: stepFail, err: err}
}

type outcomeKind uint8

const (
	outcomeAccept outcomeKind = iota
	outcomeReject
	outcomePending
)

// Outcome is the result of a homomorphism on the terminal One.
type Outcome struct {
	kind   outcomeKind
	values []int
}

// Accept returns an Outcome that emits a single vector suffix, with values
// written at the last len(values) levels.
func Accept(values ...int) Outcome {
	return Outcome{kind: outcomeAccept, values: values}
}

// Reject returns an Outcome that emits nothing.
func Reject() Outcome {
	return Outcome{kind: outcomeReject}
}

// Pending returns an Outcome for homomorphisms that still wait for a value.
// Reaching the terminal in this state is an error.
func Pending() Outcome {
	return Outcome{kind: outcomePending}
}

// sized is implemented by the homomorphisms built for vectors with a given
// number of coordinates.
type sized interface {
	size() int
}

// ************************************************************

// Equal reports whether two homomorphisms have the same structural key, and
// are therefore represented by the same instance in a DDD.
func Equal(a, b Hom) bool {
	return bytes.Equal(a.AppendKey(nil), b.AppendKey(nil))
}

// Hash returns a hash of the structural key of h. Homomorphisms that are Equal
// have the same hash. A DDD uses the same hash to index its registry of
// homomorphisms.
func Hash(h Hom) uint64 {
	return xxhash.Sum64(h.AppendKey(nil))
}

// ************************************************************

// Key tags, one per type of homomorphism defined in the package.
const (
	tagIdentity byte = 'I'
	tagNull     byte = 'N'
	tagCompose  byte = 'C'
	tagSum      byte = 'S'
	tagFixpoint byte = 'F'
	tagAction   byte = 'A'
	tagAssign   byte = 'a'
	tagLinear   byte = 'L'
)

func appendInts(buf []byte, values []int) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(values)))
	for _, v := range values {
		buf = binary.AppendVarint(buf, int64(v))
	}
	return buf
}

// ************************************************************

type identity struct{}

// Identity is the homomorphism that returns its argument unchanged.
var Identity Hom = identity{}

func (identity) Phi(level, value int) Step {
	return Emit(value, Identity)
}

func (identity) Terminal() Outcome {
	return Accept()
}

func (identity) AppendKey(buf []byte) []byte {
	return append(buf, tagIdentity)
}

func (identity) String() string {
	return "id"
}

type null struct{}

// Null is the homomorphism that always returns the empty set.
var Null Hom = null{}

func (null) Phi(level, value int) Step {
	return Drop()
}

func (null) Terminal() Outcome {
	return Reject()
}

func (null) AppendKey(buf []byte) []byte {
	return append(buf, tagNull)
}

func (null) String() string {
	return "null"
}

// ************************************************************

// composite homomorphisms are evaluated directly by the DDD, using the results
// of their parts, and never through Phi.
type composite struct {
	tag   byte
	parts []Hom
}

func (c *composite) Phi(level, value int) Step {
	return Fail(errComposite)
}

func (c *composite) Terminal() Outcome {
	return Reject()
}

func (c *composite) AppendKey(buf []byte) []byte {
	buf = append(buf, c.tag)
	buf = binary.AppendUvarint(buf, uint64(len(c.parts)))
	for _, h := range c.parts {
		// parts are length-prefixed so that the encoding stays prefix-free
		sub := h.AppendKey(nil)
		buf = binary.AppendUvarint(buf, uint64(len(sub)))
		buf = append(buf, sub...)
	}
	return buf
}

// Compose returns the composition of a sequence of homomorphisms, applied from
// right to left: Compose(f, g) applied to a set s is f(g(s)).
func Compose(h ...Hom) Hom {
	parts := make([]Hom, 0, len(h))
	for _, v := range h {
		switch v := v.(type) {
		case identity:
			continue
		case null:
			return Null
		case *composite:
			if v.tag == tagCompose {
				parts = append(parts, v.parts...)
				continue
			}
		}
		parts = append(parts, v)
	}
	switch len(parts) {
	case 0:
		return Identity
	case 1:
		return parts[0]
	}
	return &composite{tag: tagCompose, parts: parts}
}

// Sum returns the homomorphism that computes the union of the results of each
// homomorphism in h.
func Sum(h ...Hom) Hom {
	parts := make([]Hom, 0, len(h))
	for _, v := range h {
		if _, ok := v.(null); ok {
			continue
		}
		parts = append(parts, v)
	}
	switch len(parts) {
	case 0:
		return Null
	case 1:
		return parts[0]
	}
	return &composite{tag: tagSum, parts: parts}
}

// Fixpoint returns the homomorphism that applies h until the result is stable.
// With h = Sum(Identity, t1, ..., tk), this computes the set of vectors
// reachable from its argument using the transitions t1 to tk.
func Fixpoint(h Hom) Hom {
	switch h.(type) {
	case identity:
		return Identity
	case null:
		return Null
	}
	return &composite{tag: tagFixpoint, parts: []Hom{h}}
}
