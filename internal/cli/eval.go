package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/infra/logger"
	"github.com/aalvaropc/memoform/internal/usecase"
)

func evalCmd(opts *rootOptions) *cobra.Command {
	var fib string
	var name string
	var format string

	c := &cobra.Command{
		Use:   "eval",
		Short: "Fill the form once and print the result (no TUI)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts)
			if err != nil {
				return err
			}
			if ws.root != "" {
				defer setupLogging(ws.root, opts.debug)()
				if b := logBanner(); opts.debug && b != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), b)
				}
			}

			uc := usecase.NewEvaluate(ws.cfg, logger.L())
			snap, err := uc.Execute(cmd.Context(), fib, name)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap, format)
		},
	}

	c.Flags().StringVarP(&fib, "fib", "f", "", "Fibonacci field text (raw, as typed)")
	c.Flags().StringVarP(&name, "name", "n", "", "Name field text")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printSnapshot(w io.Writer, s domain.Snapshot, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "pretty", "":
		fmt.Fprintf(w, "Fib:   %q -> %s\n", s.FibInput, displayOrDash(s.FibDisplay))
		if s.FibError != "" {
			fmt.Fprintf(w, "       %s\n", s.FibError)
		}
		fmt.Fprintf(w, "Name:  %s\n", displayOrDash(s.Name))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func displayOrDash(s string) string {
	if s == "" {
		return "(blank)"
	}
	return s
}
