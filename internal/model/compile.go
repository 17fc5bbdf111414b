// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dalzilio/daddy"
)

// Strategy selects how transitions are compiled into homomorphisms.
type Strategy string

const (
	// StrategyAuto uses the dedicated assignment operators for transitions
	// with a single assignment, and the general action otherwise.
	StrategyAuto Strategy = "auto"
	// StrategyAction compiles every transition into a single action.
	StrategyAction Strategy = "action"
)

// ValidStrategies lists the accepted values for a Strategy.
var ValidStrategies = []Strategy{StrategyAuto, StrategyAction}

// ParseStrategy returns the strategy with name s.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range ValidStrategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid strategy %q (valid: %v)", s, ValidStrategies)
}

// Kind describes the operator used for a compiled transition.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindNull     Kind = "null"
	KindAssign   Kind = "assign"
	KindLinear   Kind = "linear"
	KindAction   Kind = "action"
)

// Compiled is a transition together with its homomorphism.
type Compiled struct {
	Name    string
	Kind    Kind
	Guarded bool
	Hom     daddy.Hom
}

type config struct {
	strategy  Strategy
	logger    *slog.Logger
	cachesize int
	maxnodes  int
}

// Option configures Compile.
type Option func(*config)

// WithStrategy sets the compilation strategy. The default is StrategyAuto.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithLogger sets the logger used during compilation and state space
// exploration. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCachesize sets the initial size of the operation caches.
func WithCachesize(size int) Option {
	return func(c *config) {
		c.cachesize = size
	}
}

// WithMaxnodes bounds the number of nodes in the decision diagram; 0 means no
// limit.
func WithMaxnodes(n int) Option {
	return func(c *config) {
		c.maxnodes = n
	}
}

// System is a compiled model: a decision diagram with one level per variable,
// the initial state and one homomorphism per transition.
type System struct {
	Model       *Model
	DDD         *daddy.DDD
	Scope       *Scope
	Initial     daddy.Node
	Transitions []Compiled
	logger      *slog.Logger
}

// Compile builds the decision diagram and the homomorphisms for model m.
func Compile(m *Model, opts ...Option) (*System, error) {
	c := &config{
		strategy: StrategyAuto,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	if _, err := ParseStrategy(string(c.strategy)); err != nil {
		return nil, err
	}
	d, err := daddy.New(len(m.Variables),
		daddy.Names(m.Names()...),
		daddy.Cachesize(c.cachesize),
		daddy.Maxnodesize(c.maxnodes))
	if err != nil {
		return nil, err
	}
	s := &System{
		Model:   m,
		DDD:     d,
		Scope:   NewScope(m.Names()),
		Initial: d.Vector(m.Init()...),
		logger:  c.logger,
	}
	for _, t := range m.Transitions {
		ct, err := s.compile(t, c.strategy)
		if err != nil {
			return nil, fmt.Errorf("transition %q: %w", t.Name, err)
		}
		s.logger.Debug("compiled transition",
			"name", ct.Name,
			"kind", ct.Kind,
			"guarded", ct.Guarded,
			"hom", ct.Hom)
		s.Transitions = append(s.Transitions, ct)
	}
	return s, nil
}

func (s *System) compile(t Transition, strategy Strategy) (Compiled, error) {
	n := s.Scope.Len()
	var guards []daddy.Guard
	for _, src := range t.Guard {
		g, err := s.Scope.ParseGuard(src)
		if err != nil {
			return Compiled{}, err
		}
		guards = append(guards, g...)
	}
	assigns := make([]Assignment, 0, len(t.Assign))
	seen := make(map[int]bool, len(t.Assign))
	for _, src := range t.Assign {
		a, err := s.Scope.ParseAssign(src)
		if err != nil {
			return Compiled{}, err
		}
		if seen[a.Target] {
			return Compiled{}, fmt.Errorf("%w: variable %q assigned twice", ErrBadAssignment, s.Scope.names[a.Target])
		}
		seen[a.Target] = true
		assigns = append(assigns, a)
	}

	if strategy == StrategyAction || len(assigns) != 1 {
		updates := make([]daddy.Update, len(assigns))
		for k, a := range assigns {
			updates[k] = a.Update()
		}
		h, err := daddy.NewAction(n, guards, updates)
		if err != nil {
			return Compiled{}, err
		}
		return Compiled{Name: t.Name, Kind: kindOf(h, KindAction), Guarded: len(guards) != 0, Hom: h}, nil
	}

	h, kind, err := single(n, assigns[0].Update())
	if err != nil {
		return Compiled{}, err
	}
	if len(guards) != 0 {
		g, err := daddy.NewAction(n, guards, nil)
		if err != nil {
			return Compiled{}, err
		}
		if daddy.Equal(h, daddy.Identity) {
			// only the guard is left
			kind = KindAction
		}
		h = daddy.Compose(h, g)
	}
	return Compiled{Name: t.Name, Kind: kindOf(h, kind), Guarded: len(guards) != 0, Hom: h}, nil
}

// single compiles one update with the cheapest operator: the two-coordinate
// assignment when the right-hand side reads at most one other variable, the
// linear assignment otherwise.
func single(n int, u daddy.Update) (daddy.Hom, Kind, error) {
	var src []int
	for i, c := range u.Coefs {
		if c != 0 {
			src = append(src, i)
		}
	}
	switch len(src) {
	case 0:
		h, err := daddy.NewAssign(n, u.Target, u.Target, u.Accumulate, u.Constant, 0)
		return h, KindAssign, err
	case 1:
		h, err := daddy.NewAssign(n, u.Target, src[0], u.Accumulate, u.Constant, u.Coefs[src[0]])
		return h, KindAssign, err
	}
	coefs := append([]int(nil), u.Coefs...)
	if u.Accumulate {
		coefs[u.Target]++
	}
	h, err := daddy.NewLinear(n, u.Target, coefs, u.Constant)
	return h, KindLinear, err
}

func kindOf(h daddy.Hom, def Kind) Kind {
	switch {
	case daddy.Equal(h, daddy.Identity):
		return KindIdentity
	case daddy.Equal(h, daddy.Null):
		return KindNull
	}
	return def
}
