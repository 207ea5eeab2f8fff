package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/arg-systems/abaplus/internal/framework"
	"github.com/arg-systems/abaplus/internal/parse"
	"github.com/arg-systems/abaplus/internal/pipeline"
)

// pipelineCommand implements the analyze/atomic/non-circular subcommands:
// read a framework file (or stdin), parse it, run one pipeline.Mode, and
// print the result.
type pipelineCommand struct {
	ui     cli.Ui
	logger hclog.Logger
	mode   pipeline.Mode
}

func (c *pipelineCommand) Synopsis() string {
	switch c.mode {
	case pipeline.TransformAtomic:
		return "Apply the atomic rewrite and print the resulting framework"
	case pipeline.TransformNonCircular:
		return "Apply the non-circular rewrite and print the resulting framework"
	default:
		return "Run the full ABA+ pipeline and print arguments and attacks"
	}
}

func (c *pipelineCommand) Help() string {
	return fmt.Sprintf(`Usage: %s %s [-human] [path]

  Reads a framework in the line-oriented surface format (spec.md §6) from
  path, or from stdin if path is omitted, and prints the resulting report
  as JSON. Pass -human for a plain-text summary instead.
`, appName, c.mode)
}

func (c *pipelineCommand) Run(args []string) int {
	flags := flag.NewFlagSet(string(c.mode), flag.ContinueOnError)
	human := flags.Bool("human", false, "print a human-readable summary instead of JSON")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	text, err := readInput(flags.Args())
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	fw, err := parse.Parse(text)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	if *human {
		c.ui.Output(renderHuman(fw))
		return 0
	}

	result, err := pipeline.Run(context.Background(), fw, c.mode, c.logger)
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	c.ui.Output(string(encoded))

	if !result.Success {
		return 1
	}
	return 0
}

// readInput reads the framework text from args[0] if present, else stdin.
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %q: %w", args[0], err)
	}
	return string(data), nil
}

// renderHuman renders fw the way the original Flask app's ABAFramework
// __str__ did: language, assumptions, contraries, preferences, rules.
func renderHuman(fw *framework.Framework) string {
	var b strings.Builder
	fmt.Fprintf(&b, "L: %s\n", joinLiterals(fw.Language()))
	fmt.Fprintf(&b, "A: %s\n", joinLiterals(fw.Assumptions()))
	for a, c := range fw.Contraries() {
		fmt.Fprintf(&b, "C(%s): %s\n", a, c)
	}
	for _, p := range fw.Preferences() {
		fmt.Fprintf(&b, "PREF: %s > %s\n", p.Better, p.Worse)
	}
	for _, r := range fw.Rules() {
		if r.IsFact() {
			fmt.Fprintf(&b, "[%s]: %s\n", r.Name, r.Conclusion)
			continue
		}
		fmt.Fprintf(&b, "[%s]: %s <- %s\n", r.Name, r.Conclusion, joinLiterals(r.Premises))
	}
	return b.String()
}

func joinLiterals(lits []framework.Literal) string {
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
