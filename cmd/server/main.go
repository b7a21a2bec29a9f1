// Command trustform serves the trusted-user and gateway configuration API.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
)

var (
	buildVersion = "dev"
	buildCommit  = "none"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// newRootCmd runs the server when no subcommand is given.
func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "trustform",
		Short:        "Trusted-user registry and gateway configuration service",
		Version:      buildVersion + " (" + buildCommit + ")",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(
		serve,
		newMigrateCmd(),
		newRulesCmd(),
		newCheckCmd(),
	)
	return root
}
