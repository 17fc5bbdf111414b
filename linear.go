// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
)

// linear evaluates tgt := Σ coefs[i]*x[i] + inc. Before tgt is reached we
// absorb the value of each coordinate in inc; when tgt is reached and some
// contributors are still ahead, we commit to a pending write at tgt that is
// resolved at the last contributing coordinate.
type linear struct {
	committing bool
	varnum     int
	tgt        int
	inc        int   // running constant
	coefs      []int // coefficients of the coordinates not yet visited
}

// NewLinear returns the homomorphism for the assignment tgt := Σ coefs[i]*x[i] +
// inc, where coefs has one entry per coordinate. With only zero coefficients
// this is a constant assignment; with coefs the unit vector of tgt and inc
// zero, this is Identity.
func NewLinear(varnum, tgt int, coefs []int, inc int) (Hom, error) {
	if tgt < 0 || tgt >= varnum {
		return nil, fmt.Errorf("%w: target %d outside [0, %d)", ErrInvalidActionSpec, tgt, varnum)
	}
	if len(coefs) != varnum {
		return nil, fmt.Errorf("%w: %d coefficients, expected %d", ErrInvalidActionSpec, len(coefs), varnum)
	}
	if iszero(coefs) {
		return &assign{state: assignConstant, varnum: varnum, tgt: tgt, inc: inc}, nil
	}
	if inc == 0 && coefs[tgt] == 1 {
		unit := make([]int, varnum)
		unit[tgt] = 1
		if equalInts(unit, coefs) {
			return Identity, nil
		}
	}
	return &linear{varnum: varnum, tgt: tgt, inc: inc, coefs: append([]int(nil), coefs...)}, nil
}

func (h *linear) Phi(level, value int) Step {
	coefs, inc := substitute(h.coefs, h.inc, level, value)
	done := iszero(coefs)
	switch {
	case h.committing:
		if done {
			return Resolve(h.tgt, inc, value, Identity)
		}
		return Lift(value, &linear{committing: true, varnum: h.varnum, tgt: h.tgt, inc: inc, coefs: coefs})
	case level < h.tgt:
		if done {
			return Emit(value, &assign{state: assignConstant, varnum: h.varnum, tgt: h.tgt, inc: inc})
		}
		return Emit(value, &linear{varnum: h.varnum, tgt: h.tgt, inc: inc, coefs: coefs})
	case level == h.tgt:
		if done {
			return Emit(inc, Identity)
		}
		return Skip(&linear{committing: true, varnum: h.varnum, tgt: h.tgt, inc: inc, coefs: coefs})
	}
	return Fail(fmt.Errorf("linear assignment to x%d still accumulating at level %d", h.tgt, level))
}

// Terminal is an error in every state: the target is either pending or was
// never visited.
func (h *linear) Terminal() Outcome {
	return Pending()
}

func (h *linear) size() int {
	return h.varnum
}

func (h *linear) AppendKey(buf []byte) []byte {
	state := byte(0)
	if h.committing {
		state = 1
	}
	buf = append(buf, tagLinear, state)
	buf = appendInts(buf, []int{h.tgt, h.inc})
	return appendInts(buf, h.coefs)
}

func (h *linear) String() string {
	return fmt.Sprintf("x%d := %s", h.tgt, linearString(h.coefs, h.inc))
}
