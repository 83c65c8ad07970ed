package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/converge/internal/adapters/logging"
	"github.com/felixgeelhaar/converge/internal/adapters/reposcan"
	"github.com/felixgeelhaar/converge/internal/app"
	"github.com/felixgeelhaar/converge/internal/domain/config"
	"github.com/felixgeelhaar/converge/internal/domain/compiler"
	"github.com/felixgeelhaar/converge/internal/ports"
	"github.com/felixgeelhaar/converge/internal/provider/install"
)

var (
	// Global flags
	cfgFile         string
	verbose         bool
	yesFlag         bool
	dryRunFlag      bool
	strictFlag      bool
	logFormat       string
	logLevel        string
	packageTool     string
	privilegePrefix string
	tempDir         string
	reposDir        string
)

var rootCmd = &cobra.Command{
	Use:   "converge",
	Short: "Reconcile packages and files with a declarative config",
	Long: `Converge brings a dnf-based host in line with a YAML configuration.

Each entry can install a package when a probe command fails and sync
configuration files into place. Converge prints what it would change,
asks once for confirmation, then applies:
  Load → Plan → Confirm → Apply`,
	Args:          cobra.NoArgs,
	RunE:          runApply,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command and prints any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printErrorTo(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&yesFlag, "yes", "y", false, "apply without asking for confirmation")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "print the plan without applying it")
	flags.BoolVar(&strictFlag, "strict", false, "fail when a file is left unsynced")
	flags.StringVar(&logFormat, "log-format", string(logging.FormatText), "log format (text, json)")
	flags.StringVar(&logLevel, "log-level", ports.LevelInfo.String(), "minimum log level (debug, info, warn, error)")
	flags.StringVar(&packageTool, "package-tool", install.DefaultTool, "package manager used for installs")
	flags.StringVar(&privilegePrefix, "privilege-prefix", install.DefaultPrefix, "command prefix for privileged operations (empty disables)")
	flags.StringVar(&tempDir, "temp-dir", "", "directory for downloaded packages (default: system temp dir)")
	flags.StringVar(&reposDir, "repos-dir", reposcan.DefaultDir, "directory holding *.repo definitions")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// runnerOptions assembles app options from the global flags.
func runnerOptions(cmd *cobra.Command) (app.Options, error) {
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return app.Options{}, err
	}
	level := ports.ParseLevel(logLevel)
	if verbose {
		level = ports.LevelDebug
	}

	return app.Options{
		ConfigPath: cfgFile,
		Input:      cmd.InOrStdin(),
		Output:     cmd.OutOrStdout(),
		Logger: logging.NewConsoleLogger(
			logging.WithOutput(cmd.ErrOrStderr()),
			logging.WithLevel(level),
			logging.WithFormat(format),
			logging.WithTimestamp(false),
		),
		Repos:           reposcan.NewScanner(reposDir),
		PackageTool:     packageTool,
		PrivilegePrefix: privilegePrefix,
		TempDir:         tempDir,
		AssumeYes:       yesFlag,
		DryRun:          dryRunFlag,
		Strict:          strictFlag,
	}, nil
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}

	var stepErr *compiler.StepError
	if errors.As(err, &stepErr) {
		if verbose {
			return fmt.Sprintf("%s\n\nTechnical details: %s", err.Error(), stepErr.Format())
		}
		if stepErr.Suggestion != "" {
			return fmt.Sprintf("%s\n\nSuggestion: %s", err.Error(), stepErr.Suggestion)
		}
	}
	return err.Error()
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	// Complete --config with YAML files
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman readable lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	_ = rootCmd.RegisterFlagCompletionFunc("repos-dir", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	})
}
