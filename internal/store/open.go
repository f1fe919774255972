package store

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// MemoryPath selects the in-process Memory store instead of SQLite.
const MemoryPath = "memory"

// Open returns the store for path: MemoryPath for the Memory store, otherwise
// an SQLite database (":memory:" for a throwaway SQLite database).
func Open(ctx context.Context, path string, logger hclog.Logger) (Store, error) {
	if path == MemoryPath {
		logger.Debug("using in-memory palette store")
		return NewMemory(), nil
	}
	return OpenSQLite(ctx, path, WithLogger(logger.Named("store")))
}
