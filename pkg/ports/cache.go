package ports

import (
	"context"

	"github.com/aretw0/attlookup/pkg/domain"
)

// ResultCache memoizes finished lookups.
type ResultCache interface {
	// Get returns the cached results for key, or domain.ErrCacheMiss.
	Get(ctx context.Context, key string) ([]domain.Result, error)

	// Set stores results under key, replacing any previous entry.
	Set(ctx context.Context, key string, results []domain.Result) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
