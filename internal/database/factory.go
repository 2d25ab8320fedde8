package database

import (
	"fmt"
	"strings"

	"github.com/Rana718/winegen/internal/database/mysql"
	"github.com/Rana718/winegen/internal/database/postgres"
	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/types"
)

// NewAdapter returns an unconnected adapter for provider. schema is only
// used by postgres and may be empty.
func NewAdapter(provider, schema string) (Adapter, error) {
	switch strings.ToLower(provider) {
	case "postgresql", "postgres":
		return postgres.New(schema), nil
	case "mysql":
		return mysql.New(), nil
	case "sqlite", "sqlite3":
		return sqlite.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported database provider %q", types.ErrInvalidConfig, provider)
	}
}
