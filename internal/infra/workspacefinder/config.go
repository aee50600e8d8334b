package workspacefinder

import (
	"path/filepath"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/infra/config"
)

// LoadConfig loads cardlist.yaml from the workspace root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	return config.LoadFile(filepath.Join(root, config.FileName))
}
