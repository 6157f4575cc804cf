package interfaces

import (
	"context"

	"go-content-cache/internal/models"
)

//go:generate mockgen -package=mock -source=generator.go -destination=mock/generator.go

// PageGenerator produces the payload for one page. A terminal "no such
// entity" answer from the origin is reported as *models.QueryError with kind
// NotFound; transient upstream trouble is absorbed into a degraded payload
// rather than an error wherever a fallback source exists.
type PageGenerator interface {
	Generate(ctx context.Context, key models.PageKey) (*models.GeneratedPage, error)
}
