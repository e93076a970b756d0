package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/memoform/internal/infra/logger"
	"github.com/aalvaropc/memoform/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	debug      bool
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "memoform",
		Short:        "memoform: a memoized Fibonacci form for the terminal",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts)
			if err != nil {
				return err
			}

			// The TUI always logs; without a workspace the log lands under cwd.
			logRoot := ws.root
			if logRoot == "" {
				logRoot = ws.cwd
			}
			cleanup := setupLogging(logRoot, opts.debug)
			defer cleanup()

			deps := tui.Deps{
				Config:        ws.cfg,
				WorkspaceRoot: ws.root,
				Logger:        logger.L(),
				Debug:         opts.debug,
			}
			if logger.IsReady() == nil {
				deps.LogPath = logger.Path()
				deps.LogSince = logger.InitTime()
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .memoform/logs/memoform.log")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to memoform.yaml (optional; autodetected if omitted)")

	cmd.AddCommand(
		evalCmd(opts),
		replayCmd(opts),
		scriptsCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

func setupLogging(root string, debug bool) func() {
	cleanup, err := logger.Setup(logger.Config{
		Root:  root,
		Debug: debug,
	})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}

// logBanner describes the active log file, or returns "" when logging is off.
func logBanner() string {
	if logger.IsReady() != nil {
		return ""
	}
	return fmt.Sprintf("log: %s (since %s)", logger.Path(), logger.InitTime().Format(time.RFC3339))
}
