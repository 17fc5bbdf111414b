// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dalzilio/daddy/internal/model"
)

// ModelOptions holds the flags shared by the commands that explore a model.
type ModelOptions struct {
	Strategy  string
	MaxNodes  int
	CacheSize int
	Fixpoint  bool
}

func addModelFlags(cmd *cobra.Command, o *ModelOptions) {
	cmd.Flags().StringVarP(&o.Strategy, "strategy", "s", string(model.StrategyAuto), "compilation strategy (auto|action)")
	cmd.Flags().IntVar(&o.MaxNodes, "max-nodes", 0, "maximal number of nodes in the diagram (0 for no limit)")
	cmd.Flags().IntVar(&o.CacheSize, "cache-size", 0, "initial size of the operation caches (0 for the default)")
	cmd.Flags().BoolVar(&o.Fixpoint, "fixpoint", false, "saturate with a single fixpoint instead of breadth-first iterations")
}

// session is a loaded and explored model.
type session struct {
	system *model.System
	result *model.Result
	logger *slog.Logger
}

// explore loads, compiles and explores the model in path. Errors are
// reported with formatter and returned as ExitError values.
func explore(cmd *cobra.Command, root *RootOptions, o *ModelOptions, formatter *OutputFormatter, path string) (*session, error) {
	logger := newLogger(root, cmd.ErrOrStderr())

	strategy, err := model.ParseStrategy(o.Strategy)
	if err != nil {
		return nil, formatter.Error(ErrCodeGeneric, "bad flag", err)
	}
	m, err := model.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, formatter.Error(ErrCodeNotFound, "model not found", err)
		}
		return nil, formatter.Error(ErrCodeModel, "invalid model", err)
	}
	logger.Info("model loaded", "name", m.Name, "variables", len(m.Variables), "transitions", len(m.Transitions))

	s, err := model.Compile(m,
		model.WithStrategy(strategy),
		model.WithLogger(logger),
		model.WithCachesize(o.CacheSize),
		model.WithMaxnodes(o.MaxNodes))
	if err != nil {
		return nil, formatter.Error(ErrCodeCompile, "compilation failed", err)
	}

	var res *model.Result
	if o.Fixpoint {
		res, err = s.ReachFixpoint()
	} else {
		res, err = s.Reach(cmd.Context())
	}
	if err != nil {
		return nil, formatter.Error(ErrCodeExplore, "exploration failed", err)
	}
	if root.Verbose {
		logger.Debug("diagram statistics", "stats", s.DDD.Stats())
	}
	return &session{system: s, result: res, logger: logger}, nil
}
