package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/memoform/internal/domain"
	"github.com/aalvaropc/memoform/internal/infra/logger"
	"github.com/aalvaropc/memoform/internal/usecase"
	"github.com/aalvaropc/memoform/internal/usecase/selector"
)

type replayReport struct {
	Script    string            `json:"script"`
	Path      string            `json:"path"`
	Snapshots []domain.Snapshot `json:"snapshots"`
	Final     *domain.Snapshot  `json:"final,omitempty"`
	Selected  map[string]string `json:"selected,omitempty"`
}

func replayCmd(opts *rootOptions) *cobra.Command {
	var script string
	var format string
	var selects []string

	c := &cobra.Command{
		Use:   "replay",
		Short: "Replay a YAML script of input events against a fresh form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := selector.ParseRules(selects)
			if err != nil {
				return err
			}

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

			path, err := resolveScriptPath(ws, script)
			if err != nil {
				return err
			}

			uc := usecase.NewReplayScript(ws.scripts, ws.cfg, logger.L())
			sc, snaps, err := uc.Execute(cmd.Context(), path)
			if err != nil {
				return err
			}

			report := replayReport{Script: sc.Name, Path: path, Snapshots: snaps}
			if len(snaps) > 0 {
				last := snaps[len(snaps)-1]
				report.Final = &last
			}

			var results []domain.SelectResult
			if len(rules) > 0 {
				doc, err := json.Marshal(report)
				if err != nil {
					return err
				}
				report.Selected, results = selector.Apply(doc, rules)
			}

			if err := printReplay(cmd.OutOrStdout(), report, results, format); err != nil {
				return err
			}

			if fails := countSelectFailures(results); fails > 0 {
				return fmt.Errorf("select failed (%d failed rule(s))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&script, "script", "s", "", "Script name (under scripts/) or path (required)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringArrayVar(&selects, "select", nil, "JSONPath selection over the report, as name=$.path (repeatable)")

	_ = c.MarkFlagRequired("script")
	return c
}

func printReplay(w io.Writer, r replayReport, results []domain.SelectResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "pretty", "":
		printPrettyReplay(w, r, results)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReplay(w io.Writer, r replayReport, results []domain.SelectResult) {
	fmt.Fprintf(w, "Script: %s\n", r.Script)
	fmt.Fprintf(w, "Path:   %s\n", r.Path)
	fmt.Fprintf(w, "Events: %d\n\n", len(r.Snapshots))

	for _, s := range r.Snapshots {
		mark := "✓"
		if !s.FibValid {
			mark = "·"
		}
		fmt.Fprintf(w, "%3d  %-4s  fib=%-10q %s %-22s name=%q  [%d computed / %d hits]\n",
			s.Step, s.Field, s.FibInput, mark, displayOrDash(s.FibDisplay), s.Name, s.Computations, s.CacheHits)
	}

	if len(results) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Selected:")
		names := make([]string, 0, len(r.Selected))
		for k := range r.Selected {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(w, "  - %s = %s\n", k, r.Selected[k])
		}
		for _, res := range results {
			if !res.Success {
				fmt.Fprintf(w, "  ✗ %s\n", res.Message)
			}
		}
	}
}

func countSelectFailures(in []domain.SelectResult) int {
	n := 0
	for _, r := range in {
		if !r.Success {
			n++
		}
	}
	return n
}
