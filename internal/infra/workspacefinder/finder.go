package workspacefinder

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/config"
	"github.com/aalvaropc/cardlist/internal/ports"
)

// Finder locates a workspace root by searching upward for cardlist.yaml.
type Finder struct {
	ConfigFile string // defaults to "cardlist.yaml"
}

func NewFinder() *Finder {
	return &Finder{ConfigFile: config.FileName}
}

var _ ports.WorkspaceLocator = (*Finder)(nil)

func (f *Finder) FindRoot(startDir string) (string, error) {
	if startDir == "" {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "workspacefinder.findroot",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}

	// If user passes a file path, use its directory.
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	cur := filepath.Clean(abs)
	for {
		cfgPath := filepath.Join(cur, f.ConfigFile)
		if _, err := os.Stat(cfgPath); err == nil {
			return cur, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root.
			return "", &domain.OpError{
				Op:   "workspacefinder.findroot",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}

// Locate is FindRoot for commands that also work outside a workspace: when no
// cardlist.yaml is found it returns the absolute startDir and found=false.
func (f *Finder) Locate(startDir string) (root string, found bool, err error) {
	root, err = f.FindRoot(startDir)
	if err == nil {
		return root, true, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return "", false, err
	}

	abs, absErr := filepath.Abs(startDir)
	if absErr != nil {
		return "", false, absErr
	}
	return abs, false, nil
}
