package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/converge/internal/app"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply configuration changes to this host",
	Long: `Apply prints the plan, asks for confirmation and makes the changes.

This command:
1. Loads the configuration and resolves every entry
2. Prints each entry's pending changes (or OK)
3. Asks once: only an exact "Y" continues
4. Installs packages and writes files, entry by entry

Running converge without a subcommand is the same as apply.
Use --dry-run to stop after the plan and --yes to skip the prompt.`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	opts, err := runnerOptions(cmd)
	if err != nil {
		return err
	}
	_, err = app.NewRunner(opts).Run(cmd.Context())
	return err
}
