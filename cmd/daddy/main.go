// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command daddy computes the reachable states of transition systems over
// integer variables, described in YAML files.
package main

import (
	"fmt"
	"os"

	"github.com/dalzilio/daddy/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
