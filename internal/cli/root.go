package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/cardlist/internal/infra/logger"
	"github.com/aalvaropc/cardlist/internal/infra/workspacefinder"
)

func Execute() {
	st := &rootState{}
	cmd := newRoot(st)
	err := cmd.Execute()
	st.closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// rootState carries what the persistent hooks set up for the whole invocation.
type rootState struct {
	debug   bool
	cleanup func() error
}

func newRootCmd() *cobra.Command {
	return newRoot(&rootState{})
}

func newRoot(st *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:               "cardlist",
		Short:             "cardlist: resolve card lists against Scryfall",
		SilenceUsage:      true,
		PersistentPreRunE: st.setupLogging,
	}

	cmd.PersistentFlags().BoolVar(&st.debug, "debug", false, "enable verbose logging to .cardlist/logs/cardlist.log")

	cmd.AddCommand(importCmd())
	cmd.AddCommand(parseCmd())
	cmd.AddCommand(lookupCmd())
	cmd.AddCommand(listsCmd())
	cmd.AddCommand(importsCmd())
	cmd.AddCommand(initCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

// setupLogging writes logs inside the workspace the command runs against.
// Outside a workspace nothing is written to disk.
func (st *rootState) setupLogging(cmd *cobra.Command, _ []string) error {
	start := ""
	if f := cmd.Flags().Lookup("workspace"); f != nil {
		start = strings.TrimSpace(f.Value.String())
	}
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			wd = "."
		}
		start = wd
	}
	start, _ = filepath.Abs(start)

	root, found, err := workspacefinder.NewFinder().Locate(start)
	if err != nil || !found {
		return nil
	}

	st.closeLog()
	cleanup, err := logger.Setup(logger.Config{
		Root:   root,
		Debug:  st.debug,
		Stderr: st.debug,
	})
	if err != nil {
		// Logging is best effort; the command itself can still run.
		return nil
	}
	st.cleanup = cleanup
	return nil
}

func (st *rootState) closeLog() {
	if st.cleanup != nil {
		_ = st.cleanup()
		st.cleanup = nil
	}
}
