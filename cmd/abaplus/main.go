// Command abaplus is the CLI entry point for the ABA+ reasoning engine: it
// wires internal/parse, internal/pipeline, and internal/server behind four
// mitchellh/cli subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

const appName = "abaplus"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  appName,
		Level: hclog.LevelFromString(os.Getenv("ABAPLUS_LOG_LEVEL")),
	})

	ui := &cli.BasicUi{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Reader:      os.Stdin,
	}

	c := cli.NewCLI(appName, version)
	c.Args = args
	c.Commands = map[string]cli.CommandFactory{
		"analyze": func() (cli.Command, error) {
			return &pipelineCommand{ui: ui, logger: logger, mode: "analyze"}, nil
		},
		"atomic": func() (cli.Command, error) {
			return &pipelineCommand{ui: ui, logger: logger, mode: "transform_atomic"}, nil
		},
		"non-circular": func() (cli.Command, error) {
			return &pipelineCommand{ui: ui, logger: logger, mode: "transform_non_circular"}, nil
		},
		"serve": func() (cli.Command, error) {
			return &serveCommand{ui: ui, logger: logger}, nil
		},
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}
