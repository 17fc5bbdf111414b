// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/format"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"

	"github.com/dalzilio/daddy"
)

// Expression errors.
var (
	ErrSyntax          = errors.New("model: syntax error")
	ErrNotLinear       = errors.New("model: expression is not linear")
	ErrUnknownVariable = errors.New("model: unknown variable")
	ErrBadAssignment   = errors.New("model: invalid assignment")
	ErrBadGuard        = errors.New("model: invalid guard")
)

// Linear is the linear expression Σ Coefs[i]*x[i] + Constant.
type Linear struct {
	Coefs    []int
	Constant int
}

// IsConstant reports whether all the coefficients of l are zero.
func (l Linear) IsConstant() bool {
	for _, c := range l.Coefs {
		if c != 0 {
			return false
		}
	}
	return true
}

func (l Linear) scale(k int) Linear {
	res := Linear{Coefs: make([]int, len(l.Coefs)), Constant: k * l.Constant}
	for i, c := range l.Coefs {
		res.Coefs[i] = k * c
	}
	return res
}

func (l Linear) add(m Linear) Linear {
	res := Linear{Coefs: make([]int, len(l.Coefs)), Constant: l.Constant + m.Constant}
	for i := range l.Coefs {
		res.Coefs[i] = l.Coefs[i] + m.Coefs[i]
	}
	return res
}

// Assignment is a parsed assignment. Op is one of "=", "+=" or "-=".
type Assignment struct {
	Target int
	Op     string
	Expr   Linear
}

// Update returns the affine update for a, where "x -= e" is read as
// "x += -e".
func (a Assignment) Update() daddy.Update {
	e := a.Expr
	if a.Op == "-=" {
		e = e.scale(-1)
	}
	return daddy.Update{
		Target:     a.Target,
		Accumulate: a.Op != "=",
		Constant:   e.Constant,
		Coefs:      e.Coefs,
	}
}

// Scope maps the names of variables to their coordinates.
type Scope struct {
	names []string
	index map[string]int
}

// NewScope returns a scope for the given variables, in level order.
func NewScope(names []string) *Scope {
	s := &Scope{names: names, index: make(map[string]int, len(names))}
	for k, n := range names {
		s.index[n] = k
	}
	return s
}

// Len returns the number of variables in s.
func (s *Scope) Len() int {
	return len(s.names)
}

func (s *Scope) constant(v int) Linear {
	return Linear{Coefs: make([]int, len(s.names)), Constant: v}
}

// ParseExpr parses a linear expression built from integers, variables, +, -,
// parentheses and multiplication by a constant.
func (s *Scope) ParseExpr(src string) (Linear, error) {
	e, err := parser.ParseExpr("expr", src)
	if err != nil {
		return Linear{}, fmt.Errorf("%w in %q: %v", ErrSyntax, src, err)
	}
	return s.linear(e)
}

func (s *Scope) linear(e ast.Expr) (Linear, error) {
	switch e := e.(type) {
	case *ast.BasicLit:
		if e.Kind != token.INT {
			break
		}
		v, err := strconv.ParseInt(strings.ReplaceAll(e.Value, "_", ""), 0, 64)
		if err != nil {
			return Linear{}, fmt.Errorf("%w: bad integer %s", ErrSyntax, e.Value)
		}
		return s.constant(int(v)), nil
	case *ast.Ident:
		k, ok := s.index[e.Name]
		if !ok {
			return Linear{}, fmt.Errorf("%w %q", ErrUnknownVariable, e.Name)
		}
		res := s.constant(0)
		res.Coefs[k] = 1
		return res, nil
	case *ast.ParenExpr:
		return s.linear(e.X)
	case *ast.UnaryExpr:
		if e.Op != token.SUB && e.Op != token.ADD {
			break
		}
		x, err := s.linear(e.X)
		if err != nil || e.Op == token.ADD {
			return x, err
		}
		return x.scale(-1), nil
	case *ast.BinaryExpr:
		if e.Op != token.ADD && e.Op != token.SUB && e.Op != token.MUL {
			break
		}
		x, err := s.linear(e.X)
		if err != nil {
			return Linear{}, err
		}
		y, err := s.linear(e.Y)
		if err != nil {
			return Linear{}, err
		}
		switch {
		case e.Op == token.ADD:
			return x.add(y), nil
		case e.Op == token.SUB:
			return x.add(y.scale(-1)), nil
		case x.IsConstant():
			return y.scale(x.Constant), nil
		case y.IsConstant():
			return x.scale(y.Constant), nil
		}
	}
	return Linear{}, fmt.Errorf("%w: %s", ErrNotLinear, describe(e))
}

var comparators = map[token.Token]daddy.Comparator{
	token.EQL: daddy.EQ,
	token.NEQ: daddy.NE,
	token.LSS: daddy.LT,
	token.GTR: daddy.GT,
	token.LEQ: daddy.LE,
	token.GEQ: daddy.GE,
}

// ParseGuard parses a conjunction of linear comparisons, such as
// "x + y <= 4 && z != 0", into one guard per comparison.
func (s *Scope) ParseGuard(src string) ([]daddy.Guard, error) {
	e, err := parser.ParseExpr("guard", src)
	if err != nil {
		return nil, fmt.Errorf("%w in %q: %v", ErrSyntax, src, err)
	}
	return s.guards(e, nil)
}

func (s *Scope) guards(e ast.Expr, res []daddy.Guard) ([]daddy.Guard, error) {
	switch e := e.(type) {
	case *ast.ParenExpr:
		return s.guards(e.X, res)
	case *ast.BinaryExpr:
		if e.Op == token.LAND {
			res, err := s.guards(e.X, res)
			if err != nil {
				return nil, err
			}
			return s.guards(e.Y, res)
		}
		cmp, ok := comparators[e.Op]
		if !ok {
			break
		}
		x, err := s.linear(e.X)
		if err != nil {
			return nil, err
		}
		y, err := s.linear(e.Y)
		if err != nil {
			return nil, err
		}
		diff := x.add(y.scale(-1))
		return append(res, daddy.Guard{Cmp: cmp, Constant: diff.Constant, Coefs: diff.Coefs}), nil
	}
	return nil, fmt.Errorf("%w: %s is not a comparison", ErrBadGuard, describe(e))
}

var assignRegex = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9_]*)\s*(\+=|-=|=)([^=].*)$`)

// ParseAssign parses an assignment "x = e", "x += e" or "x -= e".
func (s *Scope) ParseAssign(src string) (Assignment, error) {
	m := assignRegex.FindStringSubmatch(src)
	if m == nil {
		return Assignment{}, fmt.Errorf("%w: %q (wrong structure)", ErrBadAssignment, src)
	}
	k, ok := s.index[m[1]]
	if !ok {
		return Assignment{}, fmt.Errorf("%w %q in assignment %q", ErrUnknownVariable, m[1], src)
	}
	e, err := s.ParseExpr(m[3])
	if err != nil {
		return Assignment{}, fmt.Errorf("assignment %q: %w", src, err)
	}
	return Assignment{Target: k, Op: m[2], Expr: e}, nil
}

func describe(e ast.Expr) string {
	b, err := format.Node(e)
	if err != nil {
		return fmt.Sprintf("%T", e)
	}
	return strconv.Quote(string(b))
}
