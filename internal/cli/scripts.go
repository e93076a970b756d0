package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func scriptsCmd(opts *rootOptions) *cobra.Command {
	c := &cobra.Command{
		Use:   "scripts",
		Short: "Manage replay scripts in a workspace",
	}

	c.AddCommand(scriptsListCmd(opts))
	return c
}

func scriptsListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List replay scripts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts)
			if err != nil {
				return err
			}
			if ws.root == "" {
				return fmt.Errorf("no workspace found (run `memoform init` first)")
			}

			refs, err := ws.scripts.ListScripts(ws.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(refs) == 0 {
				fmt.Fprintln(out, "(no scripts found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			for _, r := range refs {
				rel, _ := filepath.Rel(ws.root, r.Path)
				fmt.Fprintf(out, "- %s  (%s)\n", r.Name, rel)
			}
			return nil
		},
	}
}
