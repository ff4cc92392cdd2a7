package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomicstack/superspace/internal/app"
	"github.com/atomicstack/superspace/internal/config"
	"github.com/atomicstack/superspace/internal/logging"
)

// StartHook observes the resolved configuration once logging is set up.
type StartHook func(cfg config.Config)

type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// ExitCode maps an error returned by Execute to a process exit status: 2 for
// bad flags or settings, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}

// IsReported reports whether err has already been shown to the front-end
// and needs no further printing.
func IsReported(err error) bool {
	var startup *app.StartupError
	return errors.As(err, &startup)
}

// NewRootCmd creates the root cobra command with all subcommands.
func NewRootCmd(onStart StartHook) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "superspace",
		Short: "Keystroke-driven launcher engine",
		Long: "superspace reads one keystroke per line on stdin and writes the launcher " +
			"state as one JSON message per line on stdout.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolve(cmd, onStart)
			if err != nil {
				return err
			}
			return app.Run(cfg.App, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	config.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.AddCommand(newTUICmd(onStart))
	return rootCmd
}

func newTUICmd(onStart StartHook) *cobra.Command {
	var width, height int
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Drive the launcher interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if width < 0 || height < 0 {
				return &usageError{err: errors.New("width and height must be >= 0")}
			}
			cfg, err := resolve(cmd, onStart)
			if err != nil {
				return err
			}
			return app.RunTUI(cfg.App, width, height)
		},
	}
	tuiCmd.Flags().IntVar(&width, "width", 0, "viewport width in cells (0 uses terminal width)")
	tuiCmd.Flags().IntVar(&height, "height", 0, "viewport height in rows (0 uses terminal height)")
	return tuiCmd
}

// resolve loads the configuration from the parsed flags and the process
// environment, then configures logging.
func resolve(cmd *cobra.Command, onStart StartHook) (config.Config, error) {
	cfg, err := config.FromFlags(cmd.Flags(), os.Environ())
	if err != nil {
		return config.Config{}, &usageError{err: err}
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if onStart != nil {
		onStart(cfg)
	}
	return cfg, nil
}
