package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/arg-systems/abaplus/internal/server"
)

// serveCommand starts the HTTP adapter (internal/server).
type serveCommand struct {
	ui     cli.Ui
	logger hclog.Logger
}

func (c *serveCommand) Synopsis() string {
	return "Serve the ABA+ pipeline over HTTP"
}

func (c *serveCommand) Help() string {
	return fmt.Sprintf(`Usage: %s serve [-addr ":8080"]

  Starts the HTTP adapter exposing POST /process.
`, appName)
}

func (c *serveCommand) Run(args []string) int {
	flags := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := flags.String("addr", ":8080", "listen address")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	router := server.New(c.logger)
	c.logger.Info("listening", "addr", *addr)
	if err := http.ListenAndServe(*addr, router); err != nil {
		c.ui.Error(err.Error())
		return 1
	}
	return 0
}
