package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"podbatch/config"
	"podbatch/internal/logging"
	"podbatch/internal/ui"
)

// Version is overridden at build time with -ldflags "-X podbatch/cmd.Version=...".
var Version = "0.3.0"

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "podbatch",
		Short: "Fetch a batch of podcasts totalling a set number of hours",
		Long: `podbatch fetches a batch of audio files from a remote folder and puts them
into the destination directory. Files are taken in filename order until their
total running time reaches the batch length set in the config file.

Files whose audio cannot be read are moved to the quarantine directory.
Fetched files are deleted from the remote once they are safely in place.`,
		Example: `  # Fetch the configured number of hours
  podbatch

  # Fetch two hours and show each step
  podbatch --hours 2 --verbose

  # Preview what would be fetched
  podbatch --dry-run

  # Print the run result as JSON
  podbatch --json`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(isVerbose(cmd))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the config file (default: $PODBATCH_CONFIG or user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "Print the result as JSON")
	rootCmd.Flags().IntP("hours", "H", 0, "Hours per batch (overrides batch_hours from the config file)")
	rootCmd.Flags().BoolP("dry-run", "n", false, "List the files that would be fetched without transferring anything")
	rootCmd.Flags().BoolP("version", "V", false, "Print the version number")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

func isVerbose(cmd *cobra.Command) bool {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return verbose
}

func wantsJSON(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func configPath(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return path
	}
	return config.DefaultPath()
}

// errConfigCreated stops a run after a default config file was written.
var errConfigCreated = errors.New("default configuration created")

// loadConfig reads and validates the config file. When the file does not
// exist yet a default one is written for the user to edit.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath(cmd)

	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrConfigNotFound) {
		if err := config.CreateConfigFile(path); err != nil {
			return nil, err
		}
		reporter(cmd).Warn("Created a default config file at %s; edit it and run again", path)
		return nil, errConfigCreated
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded config", "path", path, "backend", cfg.Podcasts.Backend)
	return cfg, nil
}

func reporter(cmd *cobra.Command) *ui.Reporter {
	var out io.Writer = cmd.OutOrStdout()
	if wantsJSON(cmd) {
		out = cmd.ErrOrStderr()
	}
	return ui.NewReporter(out, isVerbose(cmd))
}

// handled reports whether err only signals an early, successful stop.
func handled(err error) bool {
	return errors.Is(err, errConfigCreated)
}

func wrapCmdErr(name string, err error) error {
	if err == nil || handled(err) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
