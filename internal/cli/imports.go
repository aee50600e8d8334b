package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func importsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "imports",
		Short: "Inspect saved imports",
	}

	c.AddCommand(importsListCmd())
	c.AddCommand(importsShowCmd())
	return c
}

func importsListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved imports, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := requireWorkspace(workspace)
			if err != nil {
				return err
			}

			entries, err := ws.store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "(no imports saved)")
				return nil
			}

			for _, e := range entries {
				fmt.Fprintf(out, "- %s  %s  (%d cards, %d failed)\n", e.ID, e.Source, e.Cards, e.Failures)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func importsShowCmd() *cobra.Command {
	var (
		workspace string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved import",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format, formatJSON, formatResult, formatPretty); err != nil {
				return err
			}

			ws, err := requireWorkspace(workspace)
			if err != nil {
				return err
			}

			res, err := ws.store.Load(args[0])
			if err != nil {
				return err
			}
			return printImport(cmd.OutOrStdout(), res, args[0], format)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&format, "format", formatResult, "Output format: json|result|pretty")
	return cmd
}
