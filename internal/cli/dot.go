// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"github.com/spf13/cobra"
)

// DotResult is the output of the dot command when the graph is written to a
// file.
type DotResult struct {
	File  string `json:"file"`
	Nodes int    `json:"nodes"`
}

func (r DotResult) String() string {
	return "wrote " + r.File
}

// NewDotCommand creates the dot command.
func NewDotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ModelOptions{}
	var output string
	cmd := &cobra.Command{
		Use:   "dot <model.yaml>",
		Short: "Print the diagram of the reachable states in DOT format",
		Long: `Compute the reachable states of a model and print the decision diagram
in the DOT format of GraphViz. Without --output the graph is written on the
standard output, whatever the output format.`,
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
			if output == "" {
				if err := d.WriteDot(cmd.OutOrStdout(), r); err != nil {
					return formatter.Error(ErrCodeGeneric, "cannot print diagram", err)
				}
				return nil
			}
			if err := d.FPrintDot(output, r); err != nil {
				return formatter.Error(ErrCodeGeneric, "cannot write diagram", err)
			}
			return formatter.Success(DotResult{File: output, Nodes: sess.result.Nodes})
		},
	}
	addModelFlags(cmd, opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
