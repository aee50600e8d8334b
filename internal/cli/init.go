package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/infra/fsworkspace"
	"github.com/aalvaropc/cardlist/internal/usecase"
)

func initCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a workspace (cardlist.yaml, lists/, imports/)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(path, force); err != nil {
				return err
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", abs)
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", ".", "Directory to initialize")
	c.Flags().BoolVar(&force, "force", false, "Overwrite existing template files")
	return c
}
