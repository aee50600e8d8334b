package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/usecase"
)

func parseCmd() *cobra.Command {
	var (
		workspace string
		file      string
		text      string
		format    string
	)

	c := &cobra.Command{
		Use:   "parse",
		Short: "Parse a card list without looking anything up",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatJSON, formatPretty); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			in, err := readInput(file, text, cmd.InOrStdin())
			if err != nil {
				return err
			}

			uc := usecase.NewValidateList(ws.lists)
			var rep usecase.ValidationReport
			if in.path != "" {
				rep, err = uc.ExecuteFile(cmd.Context(), in.path)
			} else {
				rep, err = uc.Execute(cmd.Context(), in.text)
			}
			if err != nil {
				return err
			}

			if format == formatPretty {
				printPrettyReport(cmd.OutOrStdout(), rep)
			} else if err := writeJSON(cmd.OutOrStdout(), rep); err != nil {
				return err
			}

			if n := len(rep.Malformed); n > 0 {
				return fmt.Errorf("%d malformed line(s)", n)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&file, "file", "f", "", "List file")
	c.Flags().StringVarP(&text, "text", "t", "", "List text, one entry per line")
	c.Flags().StringVar(&format, "format", formatJSON, "Output format: json|pretty")

	c.MarkFlagsMutuallyExclusive("file", "text")
	return c
}

func printPrettyReport(w io.Writer, rep usecase.ValidationReport) {
	if len(rep.Entries) == 0 {
		fmt.Fprintln(w, "(no entries)")
		return
	}

	rows := make([][]string, 0, len(rep.Entries))
	for _, e := range rep.Entries {
		name := e.Name
		if name == "" {
			name = failStyle.Render("(missing name)")
		}
		rows = append(rows, []string{strconv.Itoa(e.Line), strconv.Itoa(e.Quantity), name})
	}
	fmt.Fprintln(w, newTable("LINE", "QTY", "NAME").Rows(rows...).String())
}
