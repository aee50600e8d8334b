package usecase

import (
	"strings"

	"github.com/aalvaropc/cardlist/internal/domain"
	"github.com/aalvaropc/cardlist/internal/ports"
)

// InitWorkspace scaffolds cardlist.yaml, an example list and the ignore rules
// for local import artifacts.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute initializes root. An empty root means the current directory.
func (uc *InitWorkspace) Execute(root string, force bool) error {
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root}, force)
}
