package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/config"
	"github.com/aalvaropc/cardlist/internal/infra/logger"
	"github.com/aalvaropc/cardlist/internal/ports"
	"github.com/aalvaropc/cardlist/internal/ui/tui"
	"github.com/aalvaropc/cardlist/internal/usecase"
)

func importCmd() *cobra.Command {
	var (
		workspace   string
		file        string
		text        string
		policy      string
		concurrency int
		catalogPath string
		format      string
		noSave      bool
		withTUI     bool
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Resolve a card list into cards with colors and images",
		Long: "Resolve a card list (one \"<quantity> <name>\" per line) through Scryfall or a local bulk-data catalog.\n" +
			"The list comes from --file, --text or stdin.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format, formatJSON, formatResult, formatPretty); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			cfg := ws.cfg
			if cmd.Flags().Changed("policy") {
				p, err := domain.ParsePolicy(policy)
				if err != nil {
					return &domain.OpError{Op: "cli.flags", Kind: domain.KindInvalidConfig, Err: err}
				}
				cfg.Resolve.Policy = p
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Resolve.Concurrency = concurrency
			}
			if err := config.Validate("", cfg); err != nil {
				return err
			}

			in, err := readInput(file, text, cmd.InOrStdin())
			if err != nil {
				return err
			}

			log := logger.L()
			lookup, err := newLookup(cfg, catalogPath, log)
			if err != nil {
				return err
			}

			var store ports.ImportStore
			if ws.store != nil && !noSave {
				store = ws.store
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			run := func(ctx context.Context, progress func(domain.EntryOutcome)) (domain.ImportResult, string, error) {
				uc := usecase.NewResolveList(lookup, ws.lists, store,
					usecase.WithPolicy(cfg.Resolve.Policy),
					usecase.WithConcurrency(cfg.Resolve.Concurrency),
					usecase.WithLogger(log),
					usecase.WithProgress(progress),
				)

				if in.path != "" {
					return uc.ExecuteFile(ctx, in.path)
				}
				return uc.Execute(ctx, in.source, in.text)
			}

			var (
				res domain.ImportResult
				id  string
			)
			if withTUI {
				total, terr := in.entries(ws)
				if terr != nil {
					return terr
				}
				res, id, err = tui.Run(ctx, tui.Deps{
					Source: in.source,
					Total:  total,
					Run:    run,
					Output: cmd.ErrOrStderr(),
					Logger: log,
				})
			} else {
				res, id, err = run(ctx, nil)
			}

			if res.ID != "" {
				if perr := printImport(cmd.OutOrStdout(), res, id, format); perr != nil {
					return perr
				}
				if id != "" && format != formatPretty {
					fmt.Fprintf(cmd.ErrOrStderr(), "Saved import: %s\n", id)
				}
			}
			if err != nil {
				return err
			}

			if fails := countFailures(res); fails > 0 {
				return fmt.Errorf("import failed (%d unresolved entr(ies))", fails)
			}
			return nil
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().StringVarP(&file, "file", "f", "", "List file (relative paths are also tried under the workspace lists dir)")
	c.Flags().StringVarP(&text, "text", "t", "", "List text, one entry per line")
	c.Flags().StringVar(&policy, "policy", "", "Failure policy: continue|fail_fast (overrides cardlist.yaml)")
	c.Flags().IntVar(&concurrency, "concurrency", 1, "Lookups in flight (overrides cardlist.yaml)")
	c.Flags().StringVar(&catalogPath, "catalog", "", "Resolve offline from a Scryfall bulk-data JSON file")
	c.Flags().StringVar(&format, "format", formatJSON, "Output format: json|result|pretty")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the import under imports/")
	c.Flags().BoolVar(&withTUI, "tui", false, "Show live progress on the terminal")

	c.MarkFlagsMutuallyExclusive("file", "text")
	return c
}
