package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Rana718/winegen/internal/backup"
	"github.com/Rana718/winegen/internal/database"
	"github.com/Rana718/winegen/internal/database/sqlite"
	"github.com/Rana718/winegen/internal/seeder"
	"github.com/Rana718/winegen/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load generated data into a database",
}

var loadSQLiteCmd = &cobra.Command{
	Use:   "sqlite",
	Short: "Reload products, consumers and orders into the embedded database",
	Long: `
Create the products, consumers and orders tables in the embedded SQLite
database if needed, empty them and load the bundle CSVs. Every CSV must be
present; otherwise nothing is changed.

The database file comes from WINEGEN_DB_PATH (see database.path_env) or
database.path. With --backup, rows already in those tables are first
written as JSONL under <out-dir>/backup. With --restore, the tables are
reloaded from such a backup directory instead of the CSVs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		ctx := cmd.Context()

		var inputs map[string]*types.Table
		if restore, _ := cmd.Flags().GetString("restore"); restore != "" {
			inputs, err = restoreInputs(restore)
		} else {
			inputs, err = seeder.ReadBundle(stringFlag(cmd, "dir", r.cfg.OutDir))
		}
		if err != nil {
			return err
		}

		db := sqlite.New()
		path := stringFlag(cmd, "db", r.cfg.DatabasePath())
		if err := db.Connect(ctx, path); err != nil {
			return fmt.Errorf("%w: failed to open %s: %v", types.ErrResource, path, err)
		}
		defer db.Close()

		if backupOn, _ := cmd.Flags().GetBool("backup"); backupOn {
			saved, err := backup.NewBackupManager(db, filepath.Join(r.cfg.OutDir, "backup"), backup.WithLogger(r.log)).CreateBackup(ctx, seedTables())
			if err != nil {
				return err
			}
			if saved != "" {
				color.Yellow("💾 Previous contents saved to %s", saved)
			}
		}

		summaries, err := db.Reload(ctx, inputs)
		if err != nil {
			return err
		}
		for _, s := range summaries {
			color.Green("✅ Loaded %s (%d rows)", s.Table, s.Rows)
			r.log.Info("loaded table", zap.String("table", s.Table), zap.Int("rows", s.Rows), zap.String("db", s.Target))
		}
		color.Cyan("🗄️  SQLite ready at %s", path)
		return nil
	},
}

var loadWarehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Append data to the warehouse",
	Long: `
Append the embedded products, consumers and orders tables to the
PRODUCTS_RAW, CONSUMERS_RAW and ORDERS_RAW warehouse tables. With --direct,
generate the CUSTOMERS, WINES and ORDERS tables and append them instead.

Missing tables are created; existing rows are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		ctx := cmd.Context()

		direct, _ := cmd.Flags().GetBool("direct")
		var tables []*types.Table
		if direct {
			// generate before connecting so bad counts fail fast
			if tables, err = r.seeder.Warehouse(); err != nil {
				return err
			}
		}

		warehouse, err := connectWarehouse(ctx, r)
		if err != nil {
			return err
		}
		defer warehouse.Close()
		target := r.cfg.Warehouse.Provider

		var summaries []types.Summary
		if direct {
			for _, table := range tables {
				s, err := database.Append(ctx, warehouse, table, target)
				if err != nil {
					return err
				}
				summaries = append(summaries, s)
			}
		} else {
			db := sqlite.New()
			path := stringFlag(cmd, "db", r.cfg.DatabasePath())
			if err := db.Connect(ctx, path); err != nil {
				return fmt.Errorf("%w: failed to open %s: %v", types.ErrResource, path, err)
			}
			defer db.Close()

			if summaries, err = database.Transfer(ctx, db, warehouse, target); err != nil {
				return err
			}
		}

		for _, s := range summaries {
			color.Green("✅ %s: %d rows loaded", s.Table, s.Rows)
			r.log.Info("appended table", zap.String("table", s.Table), zap.Int("rows", s.Rows), zap.String("target", s.Target))
		}
		return nil
	},
}

func seedTables() []string {
	names := make([]string, len(sqlite.Seeds))
	for i, sd := range sqlite.Seeds {
		names[i] = sd.Table
	}
	return names
}

// restoreInputs reads a backup directory for Reload. Tables the backup has
// no file for were empty and are restored empty.
func restoreInputs(dir string) (map[string]*types.Table, error) {
	inputs, err := backup.ReadBackup(dir, seedTables())
	if err != nil {
		return nil, err
	}
	for _, sd := range sqlite.Seeds {
		if _, ok := inputs[sd.Table]; !ok {
			inputs[sd.Table] = types.NewTable(sd.Table, sd.Columns...)
		}
	}
	return inputs, nil
}

func connectWarehouse(ctx context.Context, r *run) (database.Adapter, error) {
	url, err := r.cfg.GetWarehouseURL()
	if err != nil {
		return nil, err
	}
	adapter, err := database.NewAdapter(r.cfg.Warehouse.Provider, r.cfg.Warehouse.Schema)
	if err != nil {
		return nil, err
	}
	if err := adapter.Connect(ctx, url); err != nil {
		return nil, fmt.Errorf("%w: failed to connect to warehouse: %v", types.ErrResource, err)
	}
	if err := adapter.Ping(ctx); err != nil {
		adapter.Close()
		return nil, fmt.Errorf("%w: failed to connect to warehouse: %v", types.ErrResource, err)
	}
	return adapter, nil
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.AddCommand(loadSQLiteCmd, loadWarehouseCmd)

	loadSQLiteCmd.Flags().String("dir", "", "directory holding the bundle CSVs (default <out-dir>)")
	loadSQLiteCmd.Flags().String("db", "", "SQLite file (default from config)")
	loadSQLiteCmd.Flags().Bool("backup", false, "save current table contents before reloading")
	loadSQLiteCmd.Flags().String("restore", "", "backup directory to reload from instead of the CSVs")

	loadWarehouseCmd.Flags().Bool("direct", false, "generate and append CUSTOMERS, WINES and ORDERS")
	loadWarehouseCmd.Flags().String("db", "", "SQLite file to read from (default from config)")
}
