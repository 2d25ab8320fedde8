package database

import (
	"context"
	"fmt"

	"github.com/Rana718/winegen/internal/database/common"
	"github.com/Rana718/winegen/internal/types"
)

// Append writes table into a same-named table, creating it first when it does
// not exist. Existing rows are kept.
func Append(ctx context.Context, a Adapter, table *types.Table, target string) (types.Summary, error) {
	summary := types.Summary{Table: table.Name, Duplicates: table.DuplicateCount(), Target: target}
	if err := common.ValidateTable(table); err != nil {
		return summary, err
	}

	exists, err := a.TableExists(ctx, table.Name)
	if err != nil {
		return summary, fmt.Errorf("%w: failed to check table %s: %v", types.ErrResource, table.Name, err)
	}
	if !exists {
		if err := a.CreateTable(ctx, table); err != nil {
			return summary, fmt.Errorf("%w: failed to create table %s: %v", types.ErrResource, table.Name, err)
		}
	}

	n, err := a.InsertRows(ctx, table)
	if err != nil {
		return summary, fmt.Errorf("%w: failed to append to %s: %v", types.ErrResource, table.Name, err)
	}
	summary.Rows = int(n)
	return summary, nil
}

// Rename returns a shallow copy of table under a new name.
func Rename(table *types.Table, name string) *types.Table {
	return &types.Table{Name: name, Columns: table.Columns, Rows: table.Rows}
}

// RawTables maps the embedded tables to the warehouse landing tables.
var RawTables = []struct {
	Source string
	Target string
}{
	{"products", "PRODUCTS_RAW"},
	{"consumers", "CONSUMERS_RAW"},
	{"orders", "ORDERS_RAW"},
}

// Transfer reads every RawTables source from src, then appends each to its
// landing table in dst. Nothing is written unless all sources are readable.
func Transfer(ctx context.Context, src, dst Adapter, target string) ([]types.Summary, error) {
	tables := make([]*types.Table, 0, len(RawTables))
	for _, m := range RawTables {
		table, err := src.ReadTable(ctx, m.Source)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Rename(table, m.Target))
	}

	summaries := make([]types.Summary, 0, len(tables))
	for _, table := range tables {
		summary, err := Append(ctx, dst, table, target)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
