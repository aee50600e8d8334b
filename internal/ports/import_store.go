package ports

import "github.com/aalvaropc/cardlist/internal/domain"

// ImportStore persists import results.
type ImportStore interface {
	SaveImport(res domain.ImportResult) (id string, err error)
}
