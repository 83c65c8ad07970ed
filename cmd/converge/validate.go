package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/converge/internal/app"
	"github.com/felixgeelhaar/converge/internal/domain/entry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration without applying",
	Long: `Validate loads the configuration and resolves every entry without
running probes or touching the host.

It catches unknown keys, bad package specs or URLs, unbound variables
in target paths and missing source files. With --json it also lists the
action (create, update, none) each managed file would take.

Examples:
  converge validate
  converge validate --config hosts/web.yaml
  converge validate --json`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

var validateJSON bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output results as JSON")
}

// validationEntry is the JSON view of one loaded entry.
type validationEntry struct {
	Name    string           `json:"name"`
	Install string           `json:"install,omitempty"`
	Files   []validationFile `json:"files,omitempty"`
}

// validationFile shows the action computed when the file step was built.
type validationFile struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Action string `json:"action"`
}

type validationOutput struct {
	Valid   bool              `json:"valid"`
	Entries []validationEntry `json:"entries,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	opts, err := runnerOptions(cmd)
	if err != nil {
		return err
	}

	entries, err := app.NewRunner(opts).Load()
	out := cmd.OutOrStdout()
	if validateJSON {
		if jsonErr := outputValidationJSON(out, entries, err); jsonErr != nil {
			return jsonErr
		}
		return err
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Configuration valid: %d %s\n", len(entries), plural(len(entries), "entry", "entries"))
	return nil
}

func outputValidationJSON(w io.Writer, entries []*entry.Entry, loadErr error) error {
	output := validationOutput{Valid: loadErr == nil}
	if loadErr != nil {
		output.Error = formatError(loadErr)
	}
	for _, e := range entries {
		item := validationEntry{Name: e.Name()}
		if step := e.Install(); step != nil {
			item.Install = step.Config().PackageSpec()
		}
		for _, f := range e.Files() {
			item.Files = append(item.Files, validationFile{
				Source: f.Source(),
				Target: f.Target(),
				Action: f.Action().String(),
			})
		}
		output.Entries = append(output.Entries, item)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("failed to encode validation result: %w", err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
