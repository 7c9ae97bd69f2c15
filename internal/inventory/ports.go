package inventory

import (
	"context"
	"time"

	"github.com/fahari-app/inventory-service/pkg/search"
)

// Cache is the slice of the Redis client the ledger uses: list-result
// caching and the per-variant modification lock.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// Searcher is the full-text index for variant search. Implementations
// may be absent at runtime; the usecase falls back to the database.
type Searcher interface {
	CreateIndex(ctx context.Context, name, mapping string) error
	Index(ctx context.Context, index, id string, doc interface{}) error
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, query map[string]interface{}) (*search.Result, error)
}
