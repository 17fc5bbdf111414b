// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package model

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/dalzilio/daddy"
)

// Result is the outcome of a state space exploration.
type Result struct {
	Reachable  daddy.Node
	States     *big.Int
	Nodes      int
	Iterations int
	Elapsed    time.Duration
}

// Step returns the homomorphism for one step of the system: the union of
// Identity with all the transitions.
func (s *System) Step() daddy.Hom {
	h := make([]daddy.Hom, 0, len(s.Transitions)+1)
	h = append(h, daddy.Identity)
	for _, t := range s.Transitions {
		h = append(h, t.Hom)
	}
	return daddy.Sum(h...)
}

// Reach computes the set of reachable states by applying Step until the set
// stops growing. The context is checked between iterations.
func (s *System) Reach(ctx context.Context) (*Result, error) {
	start := time.Now()
	step := s.Step()
	r := s.Initial
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := s.DDD.Apply(step, r)
		if err := s.DDD.Err(); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", iter, err)
		}
		if s.logger.Enabled(ctx, slog.LevelDebug) {
			s.logger.Debug("reachability iteration",
				"iteration", iter,
				"states", s.DDD.Count(next),
				"nodes", s.DDD.Nodecount(next))
		}
		if next == r {
			return s.result(r, iter, start), nil
		}
		r = next
	}
}

// ReachFixpoint computes the same set as Reach, using a single application
// of Fixpoint(Step()). Saturation happens inside the diagram, so there are no
// intermediate sets to report.
func (s *System) ReachFixpoint() (*Result, error) {
	start := time.Now()
	r := s.DDD.Apply(daddy.Fixpoint(s.Step()), s.Initial)
	if err := s.DDD.Err(); err != nil {
		return nil, err
	}
	return s.result(r, 1, start), nil
}

func (s *System) result(r daddy.Node, iter int, start time.Time) *Result {
	res := &Result{
		Reachable:  r,
		States:     s.DDD.Count(r),
		Nodes:      s.DDD.Nodecount(r),
		Iterations: iter,
		Elapsed:    time.Since(start),
	}
	s.logger.Info("state space computed",
		"states", res.States,
		"nodes", res.Nodes,
		"iterations", res.Iterations,
		"elapsed", res.Elapsed)
	return res
}

// Violation records the reachable states that break a variable bound.
type Violation struct {
	Variable string
	Bound    string // "min" or "max"
	Limit    int
	States   *big.Int
	Example  []int
}

func (v Violation) String() string {
	op := "<"
	if v.Bound == "max" {
		op = ">"
	}
	return fmt.Sprintf("%s %s %d in %s states (e.g. %v)", v.Variable, op, v.Limit, v.States, v.Example)
}

var errFound = errors.New("found")

// Check returns the violations of the variable bounds declared in the model,
// in the set of states r.
func (s *System) Check(r daddy.Node) ([]Violation, error) {
	n := s.Scope.Len()
	var res []Violation
	for k, v := range s.Model.Variables {
		if v.Min != nil {
			// x - min < 0
			viol, err := s.violation(r, k, "min", *v.Min, daddy.Guard{Cmp: daddy.LT, Constant: -*v.Min, Coefs: unit(n, k, 1)})
			if err != nil {
				return nil, err
			}
			if viol != nil {
				res = append(res, *viol)
			}
		}
		if v.Max != nil {
			// x - max > 0
			viol, err := s.violation(r, k, "max", *v.Max, daddy.Guard{Cmp: daddy.GT, Constant: -*v.Max, Coefs: unit(n, k, 1)})
			if err != nil {
				return nil, err
			}
			if viol != nil {
				res = append(res, *viol)
			}
		}
	}
	return res, nil
}

func (s *System) violation(r daddy.Node, k int, bound string, limit int, g daddy.Guard) (*Violation, error) {
	h, err := daddy.NewAction(s.Scope.Len(), []daddy.Guard{g}, nil)
	if err != nil {
		return nil, err
	}
	bad := s.DDD.Apply(h, r)
	if err := s.DDD.Err(); err != nil {
		return nil, err
	}
	if bad == daddy.Empty {
		return nil, nil
	}
	v := &Violation{
		Variable: s.Scope.names[k],
		Bound:    bound,
		Limit:    limit,
		States:   s.DDD.Count(bad),
	}
	err = s.DDD.Allvec(bad, func(vec []int) error {
		v.Example = append([]int(nil), vec...)
		return errFound
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	s.logger.Warn("bound violated", "variable", v.Variable, "bound", bound, "limit", limit, "states", v.States)
	return v, nil
}

func unit(n, k, c int) []int {
	res := make([]int, n)
	res[k] = c
	return res
}
