package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/converge/internal/app"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what changes converge would make",
	Long: `Plan loads your configuration and shows what changes would be made.

Probe commands still run, since they decide whether a package is
missing, but nothing is installed or written.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	opts, err := runnerOptions(cmd)
	if err != nil {
		return err
	}
	opts.DryRun = true
	_, err = app.NewRunner(opts).Run(cmd.Context())
	return err
}
