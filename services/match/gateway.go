package match

import (
	"context"

	"github.com/piresc/taxigo/internal/pkg/models"
)

// RouteProvider fetches routes from an external directions service. When
// the provider fails or times out the matcher falls back to a
// deterministic straight-line estimate.
type RouteProvider interface {
	FetchRoute(ctx context.Context, start, end models.Location) (*models.Route, error)
}
