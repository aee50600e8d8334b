package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/usecase"
)

func listsCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "lists",
		Short: "List card lists in the workspace lists dir",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := requireWorkspace(workspace)
			if err != nil {
				return err
			}

			dir := filepath.Join(ws.root, ws.cfg.Paths.ListsDir)
			names, err := listFiles(dir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "(no lists found)")
				return nil
			}

			fmt.Fprintf(out, "Workspace: %s\n\n", ws.root)
			uc := usecase.NewValidateList(ws.lists)
			for _, name := range names {
				rep, err := uc.ExecuteFile(cmd.Context(), filepath.Join(dir, name))
				if err != nil {
					fmt.Fprintf(out, "- %s  (unreadable: %s)\n", name, domain.KindOf(err))
					continue
				}
				fmt.Fprintf(out, "- %s  (%d entries", name, len(rep.Entries))
				if n := len(rep.Malformed); n > 0 {
					fmt.Fprintf(out, ", %d malformed", n)
				}
				fmt.Fprintln(out, ")")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

// listFiles returns the .txt files directly under dir, sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &domain.OpError{Op: "cli.lists", Kind: domain.KindIO, Path: dir, Err: err}
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".txt") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}
