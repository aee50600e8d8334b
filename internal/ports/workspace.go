package ports

import "github.com/aalvaropc/cardlist/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
