// Package seeder runs the generate, duplicate and write steps for every
// dataset the CLI produces.
package seeder

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rana718/winegen/internal/config"
	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/duplicate"
	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/generator"
	"github.com/Rana718/winegen/internal/randsrc"
	"github.com/Rana718/winegen/internal/types"
	"go.uber.org/zap"
)

// Table and file names of the generated datasets.
const (
	CustomersTable = "customers"
	WinesTable     = "wines"
	OrdersTable    = "wine_orders"
	EventsTable    = "orders_events"

	WarehouseCustomers = "CUSTOMERS"
	WarehouseWines     = "WINES"
	WarehouseOrders    = "ORDERS"

	// WarehouseDir is the sub-directory of out_dir the warehouse tables are
	// written to.
	WarehouseDir = "warehouse"
)

type Seeder struct {
	cfg    *config.Config
	asOf   time.Time
	logger *zap.Logger
}

type Option func(*Seeder)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// New validates cfg before anything is generated or written.
func New(cfg *config.Config, opts ...Option) (*Seeder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	asOf, err := cfg.ReferenceTime()
	if err != nil {
		return nil, err
	}

	s := &Seeder{cfg: cfg, asOf: asOf, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Seeder) ReferenceTime() time.Time {
	return s.asOf
}

// Job sizes one generated dataset.
type Job struct {
	Count int
	// DupRatio is the fraction of rows re-appended as duplicates. Zero
	// disables injection.
	DupRatio float64
	// WineMax and CustMax bound the foreign ids of order datasets. Zero
	// uses the configured wine and customer counts.
	WineMax int
	CustMax int
}

func (j Job) check() error {
	if j.DupRatio == 0 {
		return nil
	}
	return duplicate.Validate(j.Count, j.DupRatio)
}

func (s *Seeder) withDefaults(j Job) Job {
	if j.WineMax == 0 {
		j.WineMax = s.cfg.Wines
	}
	if j.CustMax == 0 {
		j.CustMax = s.cfg.Customers
	}
	return j
}

// source returns a fresh random source for one dataset. Datasets never
// share a source, so each one is reproducible on its own.
func (s *Seeder) source() *randsrc.Source {
	return randsrc.New(s.cfg.Seed)
}

// dirty injects duplicates with the source that generated the table.
func (s *Seeder) dirty(src *randsrc.Source, table *types.Table, ratio float64) error {
	if ratio == 0 {
		return nil
	}
	d, err := duplicate.InjectTable(src, table, ratio)
	if err != nil {
		return err
	}
	s.logger.Debug("injected duplicates", zap.String("table", table.Name), zap.Int("duplicates", d), zap.Int("rows", table.Len()))
	return nil
}

// CustomerTable generates the customers.csv dataset: shop layout with messy
// registration dates.
func (s *Seeder) CustomerTable(job Job) (*types.Table, error) {
	if err := job.check(); err != nil {
		return nil, err
	}
	src := s.source()
	customers, err := generator.Customers(src, generator.CustomerOptions{Count: job.Count, AsOf: s.asOf})
	if err != nil {
		return nil, err
	}
	table := generator.CustomerTable(CustomersTable, generator.CustomerShop, customers)
	return table, s.dirty(src, table, job.DupRatio)
}

// WineTable generates the wine catalog.
func (s *Seeder) WineTable(job Job) (*types.Table, error) {
	if err := job.check(); err != nil {
		return nil, err
	}
	src := s.source()
	wines, err := generator.Wines(src, generator.WineOptions{Count: job.Count, Layout: generator.WineCatalog})
	if err != nil {
		return nil, err
	}
	table := generator.WineTable(WinesTable, generator.WineCatalog, wines)
	return table, s.dirty(src, table, job.DupRatio)
}

// OrderTable generates plain orders over the last year.
func (s *Seeder) OrderTable(job Job) (*types.Table, error) {
	return s.orders(OrdersTable, generator.OrderWarehouse, job)
}

// EventTable generates the order event feed: messy dates and prices.
func (s *Seeder) EventTable(job Job) (*types.Table, error) {
	return s.orders(EventsTable, generator.OrderEvent, job)
}

func (s *Seeder) orders(name string, layout generator.OrderLayout, job Job) (*types.Table, error) {
	job = s.withDefaults(job)
	if err := job.check(); err != nil {
		return nil, err
	}
	src := s.source()
	orders, err := generator.Orders(src, generator.OrderOptions{
		Count:   job.Count,
		WineMax: job.WineMax,
		CustMax: job.CustMax,
		Layout:  layout,
		AsOf:    s.asOf,
	})
	if err != nil {
		return nil, err
	}
	table := generator.OrderTable(name, layout, orders)
	return table, s.dirty(src, table, job.DupRatio)
}

// Bundle generates the products, consumers and orders tables of the
// embedded database. Orders reference the generated product and consumer
// ids. No duplicates are injected since ids are primary keys there.
func (s *Seeder) Bundle() ([]*types.Table, error) {
	g := NewDependencyGraph()
	g.Add(&dataset{Name: "products", build: func(map[string]*types.Table) (*types.Table, error) {
		wines, err := generator.Wines(s.source(), generator.WineOptions{Count: s.cfg.Products, Layout: generator.WineProduct})
		if err != nil {
			return nil, err
		}
		return generator.WineTable("products", generator.WineProduct, wines), nil
	}})
	g.Add(&dataset{Name: "consumers", build: func(map[string]*types.Table) (*types.Table, error) {
		consumers, err := generator.Customers(s.source(), generator.CustomerOptions{
			Count:  s.cfg.Consumers,
			Layout: generator.CustomerConsumer,
			AsOf:   s.asOf,
		})
		if err != nil {
			return nil, err
		}
		return generator.CustomerTable("consumers", generator.CustomerConsumer, consumers), nil
	}})
	g.Add(&dataset{Name: "orders", Dependencies: []string{"products", "consumers"}, build: func(built map[string]*types.Table) (*types.Table, error) {
		orders, err := generator.Orders(s.source(), generator.OrderOptions{
			Count:   s.cfg.Sales,
			WineMax: built["products"].Len(),
			CustMax: built["consumers"].Len(),
			Layout:  generator.OrderSale,
			AsOf:    s.asOf,
		})
		if err != nil {
			return nil, err
		}
		return generator.OrderTable("orders", generator.OrderSale, orders), nil
	}})
	return s.build(g)
}

// Warehouse generates the CUSTOMERS, WINES and ORDERS warehouse tables with
// one seed. Orders reference the generated customer and wine ids.
func (s *Seeder) Warehouse() ([]*types.Table, error) {
	g := NewDependencyGraph()
	g.Add(&dataset{Name: WarehouseCustomers, build: func(map[string]*types.Table) (*types.Table, error) {
		customers, err := generator.Customers(s.source(), generator.CustomerOptions{
			Count:  s.cfg.Warehouse.Customers,
			Layout: generator.CustomerWarehouse,
			AsOf:   s.asOf,
		})
		if err != nil {
			return nil, err
		}
		return generator.CustomerTable(WarehouseCustomers, generator.CustomerWarehouse, customers), nil
	}})
	g.Add(&dataset{Name: WarehouseWines, build: func(map[string]*types.Table) (*types.Table, error) {
		wines, err := generator.Wines(s.source(), generator.WineOptions{Count: s.cfg.Wines, Layout: generator.WineCatalog})
		if err != nil {
			return nil, err
		}
		return generator.WineTable(WarehouseWines, generator.WineCatalog, wines), nil
	}})
	g.Add(&dataset{Name: WarehouseOrders, Dependencies: []string{WarehouseCustomers, WarehouseWines}, build: func(built map[string]*types.Table) (*types.Table, error) {
		orders, err := generator.Orders(s.source(), generator.OrderOptions{
			Count:   s.cfg.Orders,
			WineMax: built[WarehouseWines].Len(),
			CustMax: built[WarehouseCustomers].Len(),
			Layout:  generator.OrderWarehouse,
			AsOf:    s.asOf,
		})
		if err != nil {
			return nil, err
		}
		return generator.OrderTable(WarehouseOrders, generator.OrderWarehouse, orders), nil
	}})
	return s.build(g)
}

func (s *Seeder) build(g *DependencyGraph) ([]*types.Table, error) {
	tables, err := g.Build()
	if err != nil {
		return nil, err
	}
	s.logger.Debug("built datasets", zap.Strings("order", g.GetOrder()))
	return tables, nil
}

type Output struct {
	Format     export.Format
	Provenance bool
	// Pace is slept between JSONL lines.
	Pace time.Duration
}

func (o Output) options() export.Options {
	return export.Options{Provenance: o.Provenance, Pace: o.Pace}
}

// Path returns where a table lands in dir for out's format.
func (o Output) Path(dir string, table *types.Table) string {
	return filepath.Join(dir, strings.ToLower(table.Name)+o.Format.Ext())
}

// Write writes table to path, swapping the extension for out's format.
func (s *Seeder) Write(ctx context.Context, table *types.Table, path string, out Output) (types.Summary, error) {
	path = export.SwapExt(path, out.Format)
	summary, err := export.WriteFile(ctx, table, path, out.Format, out.options())
	if err != nil {
		return summary, err
	}
	s.logger.Info("wrote table",
		zap.String("table", summary.Table),
		zap.Int("rows", summary.Rows),
		zap.Int("duplicates", summary.Duplicates),
		zap.String("path", summary.Target),
		zap.String("format", string(out.Format)),
	)
	return summary, nil
}

// WriteEvents writes the event feed and a CSV snapshot next to it. The
// snapshot is skipped when the feed itself is CSV.
func (s *Seeder) WriteEvents(ctx context.Context, table *types.Table, path string, out Output) ([]types.Summary, error) {
	summary, err := s.Write(ctx, table, path, out)
	if err != nil {
		return nil, err
	}
	summaries := []types.Summary{summary}
	if out.Format == export.CSV {
		return summaries, nil
	}

	snapshot := Output{Format: export.CSV, Provenance: out.Provenance}
	summary, err = s.Write(ctx, table, path, snapshot)
	if err != nil {
		return summaries, err
	}
	return append(summaries, summary), nil
}

// WriteAll writes every table into dir, one file per table.
func (s *Seeder) WriteAll(ctx context.Context, tables []*types.Table, dir string, out Output) ([]types.Summary, error) {
	summaries := make([]types.Summary, 0, len(tables))
	for _, table := range tables {
		summary, err := s.Write(ctx, table, out.Path(dir, table), out)
		if err != nil {
			return summaries, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ReadBundle reads the bundle CSVs of dir, keyed by embedded table name.
// Every file must exist before anything is loaded.
func ReadBundle(dir string) (map[string]*types.Table, error) {
	tables := make(map[string]*types.Table, len(sqlite.Seeds))
	for _, sd := range sqlite.Seeds {
		table, err := export.ReadCSV(filepath.Join(dir, sd.File), sd.Table)
		if err != nil {
			return nil, fmt.Errorf("%w (run 'winegen generate bundle' first)", err)
		}
		tables[sd.Table] = table
	}
	return tables, nil
}
