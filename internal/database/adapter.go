package database

import (
	"context"

	"github.com/Rana718/winegen/internal/types"
)

// Adapter is a table sink and source. Implementations never alter an
// existing table's shape: CreateTable is only called for absent tables and
// InsertRows only appends.
type Adapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	TableExists(ctx context.Context, name string) (bool, error)
	CreateTable(ctx context.Context, table *types.Table) error
	InsertRows(ctx context.Context, table *types.Table) (int64, error)
	ReadTable(ctx context.Context, name string) (*types.Table, error)
}
