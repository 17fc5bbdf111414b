// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package daddy

import (
	"fmt"
)

// The assignment tgt := mul*src + inc (or tgt += mul*src + inc) is evaluated by
// a small state machine. The state depends on which of the two coordinates
// were already visited; once the value of tgt is written the remaining levels
// are copied using Identity.

type assignState byte

const (
	assignInitial  assignState = iota // neither tgt nor src visited
	assignConstant                    // src visited, value of tgt known
	assignDeferred                    // tgt visited before src, write pending
)

type assign struct {
	state  assignState
	varnum int
	tgt    int
	src    int
	aug    bool // accumulate on the old value of tgt
	inc    int  // constant part; in state assignConstant, the value to write
	mul    int
}

// NewAssign returns the homomorphism for the assignment tgt := mul*src + inc
// or, when accumulate is true, tgt += mul*src + inc, where tgt and src are
// coordinates (levels). The result is Identity when mul and inc are zero and
// accumulate is true.
func NewAssign(varnum, tgt, src int, accumulate bool, inc, mul int) (Hom, error) {
	if tgt < 0 || tgt >= varnum {
		return nil, fmt.Errorf("%w: target %d outside [0, %d)", ErrInvalidActionSpec, tgt, varnum)
	}
	if src < 0 || src >= varnum {
		return nil, fmt.Errorf("%w: source %d outside [0, %d)", ErrInvalidActionSpec, src, varnum)
	}
	if mul == 0 {
		if inc == 0 && accumulate {
			return Identity, nil
		}
		return &assign{state: assignConstant, varnum: varnum, tgt: tgt, aug: accumulate, inc: inc}, nil
	}
	return &assign{state: assignInitial, varnum: varnum, tgt: tgt, src: src, aug: accumulate, inc: inc, mul: mul}, nil
}

func (a *assign) Phi(level, value int) Step {
	switch a.state {
	case assignInitial:
		return a.initial(level, value)
	case assignConstant:
		return a.constant(level, value)
	case assignDeferred:
		return a.deferred(level, value)
	}
	return Fail(fmt.Errorf("unknown assignment state %d", a.state))
}

func (a *assign) initial(level, value int) Step {
	switch {
	case level == a.tgt && level == a.src:
		res := a.mul*value + a.inc
		if a.aug {
			res += value
		}
		return Emit(res, Identity)
	case level == a.src:
		return Emit(value, &assign{state: assignConstant, varnum: a.varnum, tgt: a.tgt, aug: a.aug, inc: a.mul*value + a.inc})
	case level == a.tgt:
		// the old value of tgt is folded into the constant part
		inc := a.inc
		if a.aug {
			inc += value
		}
		return Skip(&assign{state: assignDeferred, varnum: a.varnum, tgt: a.tgt, src: a.src, inc: inc, mul: a.mul})
	}
	return Emit(value, a)
}

func (a *assign) constant(level, value int) Step {
	if level != a.tgt {
		return Emit(value, a)
	}
	if a.aug {
		return Emit(value+a.inc, Identity)
	}
	return Emit(a.inc, Identity)
}

func (a *assign) deferred(level, value int) Step {
	if level != a.src {
		return Lift(value, a)
	}
	return Resolve(a.tgt, a.mul*value+a.inc, value, Identity)
}

// Terminal is only reached when the target level was never visited, or its
// write is still pending. Both are errors.
func (a *assign) Terminal() Outcome {
	return Pending()
}

func (a *assign) size() int {
	return a.varnum
}

func (a *assign) AppendKey(buf []byte) []byte {
	aug := 0
	if a.aug {
		aug = 1
	}
	buf = append(buf, tagAssign, byte(a.state))
	return appendInts(buf, []int{a.varnum, a.tgt, a.src, aug, a.inc, a.mul})
}

func (a *assign) String() string {
	op := ":="
	if a.aug {
		op = "+="
	}
	switch a.state {
	case assignConstant:
		return fmt.Sprintf("x%d %s %d", a.tgt, op, a.inc)
	case assignDeferred:
		return fmt.Sprintf("x%d := %d*x%d + %d (pending)", a.tgt, a.mul, a.src, a.inc)
	}
	return fmt.Sprintf("x%d %s %d*x%d + %d", a.tgt, op, a.mul, a.src, a.inc)
}
