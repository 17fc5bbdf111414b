// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
	"strings"
)

// Comparator is the relation used in a linear guard to compare a linear
// expression with zero.
type Comparator int

const (
	EQ Comparator = iota // equal to zero
	NE                   // not equal to zero
	LT                   // less than zero
	GT                   // greater than zero
	LE                   // less or equal to zero
	GE                   // greater or equal to zero
)

var cmpnames = [6]string{
	EQ: "==",
	NE: "!=",
	LT: "<",
	GT: ">",
	LE: "<=",
	GE: ">=",
}

func (c Comparator) String() string {
	if c < 0 || int(c) >= len(cmpnames) {
		return fmt.Sprintf("cmp(%d)", int(c))
	}
	return cmpnames[c]
}

// Holds reports whether v <c> 0. We return an error wrapping
// ErrUnknownComparator if c is not a valid comparator.
func (c Comparator) Holds(v int) (bool, error) {
	switch c {
	case EQ:
		return v == 0, nil
	case NE:
		return v != 0, nil
	case LT:
		return v < 0, nil
	case GT:
		return v > 0, nil
	case LE:
		return v <= 0, nil
	case GE:
		return v >= 0, nil
	}
	return false, fmt.Errorf("%w (%d)", ErrUnknownComparator, int(c))
}

// ParseComparator returns the comparator with the given symbol. We accept
// both "=" and "==" for EQ.
func ParseComparator(s string) (Comparator, error) {
	if s == "=" {
		return EQ, nil
	}
	for k, name := range cmpnames {
		if name == s {
			return Comparator(k), nil
		}
	}
	return 0, fmt.Errorf("%w (%q)", ErrUnknownComparator, s)
}

// Guard is a linear constraint over the coordinates of a vector. It holds for
// vector x when Σ Coefs[i]*x[i] + Constant <Cmp> 0. Coefs must have one entry
// per coordinate.
type Guard struct {
	Cmp      Comparator
	Constant int
	Coefs    []int
}

func (g Guard) String() string {
	return linearString(g.Coefs, g.Constant) + " " + g.Cmp.String() + " 0"
}

// Update is an affine update of coordinate Target. Its new value is
// Σ Coefs[i]*x[i] + Constant, added to the old value when Accumulate is true.
// Coefs must have one entry per coordinate.
type Update struct {
	Target     int
	Accumulate bool
	Constant   int
	Coefs      []int
}

func (u Update) String() string {
	op := ":="
	if u.Accumulate {
		op = "+="
	}
	return fmt.Sprintf("x%d %s %s", u.Target, op, linearString(u.Coefs, u.Constant))
}

func linearString(coefs []int, constant int) string {
	var sb strings.Builder
	for i, c := range coefs {
		if c == 0 {
			continue
		}
		switch {
		case sb.Len() == 0 && c == 1:
		case sb.Len() == 0 && c == -1:
			sb.WriteString("-")
		case sb.Len() == 0:
			fmt.Fprintf(&sb, "%d*", c)
		case c == 1:
			sb.WriteString(" + ")
		case c == -1:
			sb.WriteString(" - ")
		case c < 0:
			fmt.Fprintf(&sb, " - %d*", -c)
		default:
			fmt.Fprintf(&sb, " + %d*", c)
		}
		fmt.Fprintf(&sb, "x%d", i)
	}
	switch {
	case sb.Len() == 0:
		fmt.Fprintf(&sb, "%d", constant)
	case constant < 0:
		fmt.Fprintf(&sb, " - %d", -constant)
	case constant > 0:
		fmt.Fprintf(&sb, " + %d", constant)
	}
	return sb.String()
}

// ************************************************************

// affine is the normalized form of an update: the new value of a coordinate
// is Σ coefs[i]*x[i] + constant.
type affine struct {
	constant int
	coefs    []int
}

// action is the residual state of a guarded update. Guards that were decided
// are removed. Coordinates before first are already written; updates holds
// the updates of coordinates first, first+1, ... up to the last one.
type action struct {
	varnum  int
	first   int
	guards  []Guard
	updates []affine
}

// NewAction returns the homomorphism that keeps the vectors satisfying all the
// guards, and applies the updates simultaneously to each of them. Coordinates
// without an update are unchanged. Guards that can be decided at construction
// (all coefficients are zero) are evaluated immediately, so the result may be
// Null or, with no guards and no updates, Identity.
//
// The homomorphism must be applied to sets of vectors with varnum
// coordinates, that is to nodes at level 0.
func NewAction(varnum int, guards []Guard, updates []Update) (Hom, error) {
	if varnum < 1 {
		return nil, fmt.Errorf("%w: bad number of variables (%d)", ErrInvalidActionSpec, varnum)
	}
	a := &action{varnum: varnum, updates: make([]affine, varnum)}
	for k := range a.updates {
		a.updates[k].coefs = make([]int, varnum)
		a.updates[k].coefs[k] = 1
	}
	for k, g := range guards {
		if len(g.Coefs) != varnum {
			return nil, fmt.Errorf("%w: guard %d has %d coefficients, expected %d", ErrInvalidActionSpec, k, len(g.Coefs), varnum)
		}
		if _, err := g.Cmp.Holds(0); err != nil {
			return nil, fmt.Errorf("guard %d: %w", k, err)
		}
		if iszero(g.Coefs) {
			if ok, _ := g.Cmp.Holds(g.Constant); !ok {
				return Null, nil
			}
			continue
		}
		a.guards = append(a.guards, Guard{Cmp: g.Cmp, Constant: g.Constant, Coefs: append([]int(nil), g.Coefs...)})
	}
	seen := make([]bool, varnum)
	for k, u := range updates {
		if u.Target < 0 || u.Target >= varnum {
			return nil, fmt.Errorf("%w: update %d has target %d outside [0, %d)", ErrInvalidActionSpec, k, u.Target, varnum)
		}
		if len(u.Coefs) != varnum {
			return nil, fmt.Errorf("%w: update %d has %d coefficients, expected %d", ErrInvalidActionSpec, k, len(u.Coefs), varnum)
		}
		if seen[u.Target] {
			return nil, fmt.Errorf("%w: several updates for target %d", ErrInvalidActionSpec, u.Target)
		}
		seen[u.Target] = true
		coefs := append([]int(nil), u.Coefs...)
		if u.Accumulate {
			coefs[u.Target]++
		}
		a.updates[u.Target] = affine{constant: u.Constant, coefs: coefs}
	}
	if len(a.guards) == 0 && a.isidentity() {
		return Identity, nil
	}
	return a, nil
}

func iszero(coefs []int) bool {
	for _, c := range coefs {
		if c != 0 {
			return false
		}
	}
	return true
}

func (a *action) isidentity() bool {
	for k, u := range a.updates {
		if u.constant != 0 {
			return false
		}
		for i, c := range u.coefs {
			if (i == k && c != 1) || (i != k && c != 0) {
				return false
			}
		}
	}
	return true
}

// substitute returns the coefficients and constant obtained after replacing
// coordinate level with value. The slice coefs is shared when unchanged.
func substitute(coefs []int, constant, level, value int) ([]int, int) {
	c := coefs[level]
	if c == 0 {
		return coefs, constant
	}
	res := append([]int(nil), coefs...)
	res[level] = 0
	return res, constant + c*value
}

// Phi substitutes value in every guard and update. The value of a coordinate
// is written as soon as its update, and the updates of all the coordinates
// before it, are constants; otherwise we skip the level and write it later,
// with Settle.
func (a *action) Phi(level, value int) Step {
	ready := level - a.first + 1
	if ready < 1 {
		return Fail(fmt.Errorf("action on level %d, coordinates up to x%d are already written", level, a.first-1))
	}
	if ready > len(a.updates) {
		return Fail(fmt.Errorf("action on level %d, beyond the last coordinate x%d", level, a.varnum-1))
	}
	guards := make([]Guard, 0, len(a.guards))
	for _, g := range a.guards {
		coefs, constant := substitute(g.Coefs, g.Constant, level, value)
		if iszero(coefs) {
			ok, err := g.Cmp.Holds(constant)
			if err != nil {
				return Fail(err)
			}
			if !ok {
				return Drop()
			}
			continue
		}
		guards = append(guards, Guard{Cmp: g.Cmp, Constant: constant, Coefs: coefs})
	}
	updates := make([]affine, len(a.updates))
	for k, u := range a.updates {
		updates[k].coefs, updates[k].constant = substitute(u.coefs, u.constant, level, value)
	}
	for _, u := range updates[:ready] {
		if !iszero(u.coefs) {
			return Skip(&action{varnum: a.varnum, first: a.first, guards: guards, updates: updates})
		}
	}
	next := &action{varnum: a.varnum, first: level + 1, guards: guards, updates: updates[ready:]}
	if ready == 1 {
		return Emit(updates[0].constant, next)
	}
	values := make([]int, ready)
	for k, u := range updates[:ready] {
		values[k] = u.constant
	}
	return Settle(a.first, values, next)
}

func (a *action) Terminal() Outcome {
	if len(a.guards) != 0 {
		return Pending()
	}
	values := make([]int, len(a.updates))
	for k, u := range a.updates {
		if !iszero(u.coefs) {
			return Pending()
		}
		values[k] = u.constant
	}
	return Accept(values...)
}

func (a *action) size() int {
	return a.varnum
}

func (a *action) AppendKey(buf []byte) []byte {
	buf = append(buf, tagAction)
	buf = appendInts(buf, []int{a.first, len(a.guards), len(a.updates)})
	for _, g := range a.guards {
		buf = append(buf, byte(g.Cmp))
		buf = appendInts(buf, []int{g.Constant})
		buf = appendInts(buf, g.Coefs)
	}
	for _, u := range a.updates {
		buf = appendInts(buf, []int{u.constant})
		buf = appendInts(buf, u.coefs)
	}
	return buf
}

func (a *action) String() string {
	var sb strings.Builder
	sb.WriteString("action[")
	for k, g := range a.guards {
		if k > 0 {
			sb.WriteString(" && ")
		}
		sb.WriteString(g.String())
	}
	sb.WriteString("]{")
	first := true
	for k, u := range a.updates {
		tgt := a.first + k
		c := make([]int, len(u.coefs))
		c[tgt] = 1
		if u.constant == 0 && equalInts(c, u.coefs) {
			continue
		}
		if !first {
			sb.WriteString("; ")
		}
		first = false
		fmt.Fprintf(&sb, "x%d := %s", tgt, linearString(u.coefs, u.constant))
	}
	sb.WriteString("}")
	return sb.String()
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if a[k] != b[k] {
			return false
		}
	}
	return true
}
