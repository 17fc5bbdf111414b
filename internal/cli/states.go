// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// StatesResult is the output of the states command.
type StatesResult struct {
	Variables []string `json:"variables"`
	States    [][]int  `json:"states"`
	Truncated bool     `json:"truncated,omitempty"`
}

func (r StatesResult) String() string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, v := range r.Variables {
		fmt.Fprintf(tw, "%s\t", v)
	}
	fmt.Fprintln(tw)
	for _, s := range r.States {
		for _, v := range s {
			fmt.Fprintf(tw, "%d\t", v)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
	if r.Truncated {
		sb.WriteString("...\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

var errLimit = errors.New("limit reached")

// NewStatesCommand creates the states command.
func NewStatesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelOptions{}
	var limit int
	var nodes bool
	cmd := &cobra.Command{
		Use:   "states <model.yaml>",
		Short: "List the reachable states of a model",
		Long: `Compute the reachable states of a model and list them in lexicographic
order. With --nodes, print the nodes of the diagram instead.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			sess, err := explore(cmd, rootOpts, opts, formatter, args[0])
			if err != nil {
				return err
			}
			d, r := sess.system.DDD, sess.result.Reachable
			if nodes {
				if err := d.Fprint(cmd.OutOrStdout(), r); err != nil {
					return formatter.Error(ErrCodeGeneric, "cannot print diagram", err)
				}
				return nil
			}
			res := StatesResult{Variables: sess.system.Model.Names(), States: [][]int{}}
			err = d.Allvec(r, func(v []int) error {
				if limit > 0 && len(res.States) == limit {
					res.Truncated = true
					return errLimit
				}
				res.States = append(res.States, append([]int(nil), v...))
				return nil
			})
			if err != nil && !errors.Is(err, errLimit) {
				return formatter.Error(ErrCodeGeneric, "cannot list states", err)
			}
			return formatter.Success(res)
		},
	}
	addModelFlags(cmd, opts)
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "maximal number of states to list (0 for no limit)")
	cmd.Flags().BoolVar(&nodes, "nodes", false, "print the nodes of the diagram")
	return cmd
}
