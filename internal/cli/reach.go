// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TransitionInfo describes how a transition was compiled.
type TransitionInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Guarded bool   `json:"guarded"`
}

// ReachResult is the output of the reach command. States is a decimal
// string since state counts can overflow 64 bits.
type ReachResult struct {
	Model       string           `json:"model"`
	States      string           `json:"states"`
	Nodes       int              `json:"nodes"`
	Iterations  int              `json:"iterations"`
	ElapsedMS   int64            `json:"elapsed_ms"`
	Transitions []TransitionInfo `json:"transitions"`
}

func (r ReachResult) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "model:       %s\n", r.Model)
	fmt.Fprintf(&sb, "states:      %s\n", r.States)
	fmt.Fprintf(&sb, "nodes:       %d\n", r.Nodes)
	fmt.Fprintf(&sb, "iterations:  %d\n", r.Iterations)
	fmt.Fprintf(&sb, "transitions:")
	for _, t := range r.Transitions {
		guard := ""
		if t.Guarded {
			guard = "+guard"
		}
		fmt.Fprintf(&sb, " %s(%s%s)", t.Name, t.Kind, guard)
	}
	return sb.String()
}

// NewReachCommand creates the reach command.
func NewReachCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelOptions{}
	cmd := &cobra.Command{
		Use:   "reach <model.yaml>",
		Short: "Compute the number of reachable states of a model",
		Long: `Compute the set of states reachable from the initial state of a model
and report its size, together with the number of nodes in the diagram.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReach(rootOpts, opts, args[0], cmd)
		},
	}
	addModelFlags(cmd, opts)
	return cmd
}

func runReach(root *RootOptions, opts *ModelOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout()}
	sess, err := explore(cmd, root, opts, formatter, path)
	if err != nil {
		return err
	}
	res := ReachResult{
		Model:      sess.system.Model.Name,
		States:     sess.result.States.String(),
		Nodes:      sess.result.Nodes,
		Iterations: sess.result.Iterations,
		ElapsedMS:  sess.result.Elapsed.Milliseconds(),
	}
	for _, t := range sess.system.Transitions {
		res.Transitions = append(res.Transitions, TransitionInfo{Name: t.Name, Kind: string(t.Kind), Guarded: t.Guarded})
	}
	return formatter.Success(res)
}
