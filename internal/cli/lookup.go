package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/logger"
	"github.com/aalvaropc/cardlist/internal/usecase"
	"github.com/aalvaropc/cardlist/internal/usecase/parse"
)

func lookupCmd() *cobra.Command {
	var (
		workspace   string
		catalogPath string
	)

	c := &cobra.Command{
		Use:   "lookup <entry>",
		Short: "Resolve a single entry, e.g. `cardlist lookup 4 Lightning Bolt`",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			e, ok := parse.Line(strings.Join(args, " "))
			if !ok {
				return &domain.OpError{Op: "cli.lookup", Kind: domain.KindMalformedLine, Err: domain.ErrEmptyName}
			}
			e.Line = 1

			lookup, err := newLookup(ws.cfg, catalogPath, logger.L())
			if err != nil {
				return err
			}

			uc := usecase.NewResolveList(lookup, nil, nil, usecase.WithLogger(logger.L()))
			o := uc.ResolveEntry(cmd.Context(), e)
			if o.Failure != nil {
				_ = writeJSON(cmd.OutOrStdout(), o.Failure)
				return &domain.OpError{Op: "cli.lookup", Kind: o.Failure.Kind, Err: errors.New(o.Failure.Message)}
			}
			return writeJSON(cmd.OutOrStdout(), o.Card)
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVar(&catalogPath, "catalog", "", "Resolve offline from a Scryfall bulk-data JSON file")
	return c
}
