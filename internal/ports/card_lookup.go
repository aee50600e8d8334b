package ports

import (
	"context"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// CardLookup resolves a card name to the service's single best record.
// Failures should carry a domain.OpError kind (lookup_not_found, lookup_transport, lookup_service).
type CardLookup interface {
	LookupByName(ctx context.Context, name string) (domain.CardRecord, error)
}
