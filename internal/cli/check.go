// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ViolationInfo is a violated bound, as reported by the check command.
type ViolationInfo struct {
	Variable string `json:"variable"`
	Bound    string `json:"bound"`
	Limit    int    `json:"limit"`
	States   string `json:"states"`
	Example  []int  `json:"example"`
}

// CheckResult is the output of the check command.
type CheckResult struct {
	Model      string          `json:"model"`
	States     string          `json:"states"`
	Valid      bool            `json:"valid"`
	Violations []ViolationInfo `json:"violations,omitempty"`
}

func (r CheckResult) String() string {
	if r.Valid {
		return fmt.Sprintf("✓ all bounds hold in the %s reachable states of %s", r.States, r.Model)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "✗ %d bound(s) violated in %s\n", len(r.Violations), r.Model)
	for _, v := range r.Violations {
		op := "<"
		if v.Bound == "max" {
			op = ">"
		}
		fmt.Fprintf(&sb, "\n  %s %s %d in %s state(s), e.g. %v", v.Variable, op, v.Limit, v.States, v.Example)
	}
	return sb.String()
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelOptions{}
	cmd := &cobra.Command{
		Use:   "check <model.yaml>",
		Short: "Check the variable bounds of a model",
		Long: `Compute the reachable states of a model and check that every variable
stays within its declared min and max bounds. The command exits with
status 1 when a bound is violated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, opts, args[0], cmd)
		},
	}
	addModelFlags(cmd, opts)
	return cmd
}

func runCheck(root *RootOptions, opts *ModelOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: root.Format, Writer: cmd.OutOrStdout()}
	sess, err := explore(cmd, root, opts, formatter, path)
	if err != nil {
		return err
	}
	viol, err := sess.system.Check(sess.result.Reachable)
	if err != nil {
		return formatter.Error(ErrCodeExplore, "bound checking failed", err)
	}
	res := CheckResult{
		Model:  sess.system.Model.Name,
		States: sess.result.States.String(),
		Valid:  len(viol) == 0,
	}
	for _, v := range viol {
		res.Violations = append(res.Violations, ViolationInfo{
			Variable: v.Variable,
			Bound:    v.Bound,
			Limit:    v.Limit,
			States:   v.States.String(),
			Example:  v.Example,
		})
	}
	if !res.Valid {
		return formatter.Failure(ErrCodeBounds, fmt.Sprintf("%d bound(s) violated", len(viol)), res)
	}
	return formatter.Success(res)
}
