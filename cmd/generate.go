package cmd

import (
	"path/filepath"

	"github.com/Rana718/winegen/internal/export"
	"github.com/Rana718/winegen/internal/seeder"
	"github.com/Rana718/winegen/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate synthetic datasets",
	Long: `
Generate one of the wine shop datasets. Counts, ratio and seed default to
the configuration; flags override them for a single run.

Examples:
  winegen generate customers --n 150 --dup-ratio 0.05
  winegen generate events --count 60 --sleep 0.5
  winegen generate bundle --out data
  winegen generate warehouse --format parquet`,
}

var generateCustomersCmd = &cobra.Command{
	Use:   "customers",
	Short: "Generate customers.csv with mixed date formats and duplicates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}

		table, err := r.seeder.CustomerTable(seeder.Job{
			Count:    intFlag(cmd, "n", r.cfg.Customers),
			DupRatio: floatFlag(cmd, "dup-ratio", r.cfg.DupRatio),
		})
		if err != nil {
			return err
		}
		path := stringFlag(cmd, "out", filepath.Join(r.cfg.OutDir, seeder.CustomersTable+".csv"))
		summary, err := r.seeder.Write(cmd.Context(), table, path, out)
		if err != nil {
			return err
		}
		printSummaries([]types.Summary{summary})
		return nil
	},
}

var generateWinesCmd = &cobra.Command{
	Use:   "wines",
	Short: "Generate the wine catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}

		dupRatio, _ := cmd.Flags().GetFloat64("dup-ratio")
		table, err := r.seeder.WineTable(seeder.Job{
			Count:    intFlag(cmd, "n", r.cfg.Wines),
			DupRatio: dupRatio,
		})
		if err != nil {
			return err
		}
		path := stringFlag(cmd, "out", filepath.Join(r.cfg.OutDir, seeder.WinesTable+".csv"))
		summary, err := r.seeder.Write(cmd.Context(), table, path, out)
		if err != nil {
			return err
		}
		printSummaries([]types.Summary{summary})
		return nil
	},
}

var generateOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Generate plain orders over the last year",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}

		dupRatio, _ := cmd.Flags().GetFloat64("dup-ratio")
		table, err := r.seeder.OrderTable(seeder.Job{
			Count:    intFlag(cmd, "count", r.cfg.Orders),
			DupRatio: dupRatio,
			WineMax:  intFlag(cmd, "wine-max", r.cfg.Wines),
			CustMax:  intFlag(cmd, "cust-max", r.cfg.Customers),
		})
		if err != nil {
			return err
		}
		path := stringFlag(cmd, "out", filepath.Join(r.cfg.OutDir, seeder.OrdersTable+".csv"))
		summary, err := r.seeder.Write(cmd.Context(), table, path, out)
		if err != nil {
			return err
		}
		printSummaries([]types.Summary{summary})
		return nil
	},
}

var generateEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Generate order events as JSONL with mixed date and price formats",
	Long: `
Generate the order event feed. Each event carries an ORD-<year>-<seq> id, a
date and a total price in mixed formats. A CSV snapshot is written next to
the feed.

--sleep pauses between written lines, to replay the feed as a slow stream.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}
		sleep, _ := cmd.Flags().GetFloat64("sleep")
		if out.Pace, err = secondsToDuration(sleep); err != nil {
			return err
		}

		table, err := r.seeder.EventTable(seeder.Job{
			Count:    intFlag(cmd, "count", r.cfg.Events),
			DupRatio: floatFlag(cmd, "dup-ratio", r.cfg.DupRatio),
			WineMax:  intFlag(cmd, "wine-max", r.cfg.Wines),
			CustMax:  intFlag(cmd, "cust-max", r.cfg.Customers),
		})
		if err != nil {
			return err
		}
		path := stringFlag(cmd, "out", filepath.Join(r.cfg.OutDir, seeder.EventsTable+".jsonl"))
		if out.Pace > 0 {
			color.Cyan("🐢 Streaming %d events, one every %s", table.Len(), out.Pace)
		}
		summaries, err := r.seeder.WriteEvents(cmd.Context(), table, path, out)
		if err != nil {
			return err
		}
		printSummaries(summaries)
		return nil
	},
}

var generateBundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Generate products, consumers and orders for the embedded database",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}

		tables, err := r.seeder.Bundle()
		if err != nil {
			return err
		}
		dir := stringFlag(cmd, "out", r.cfg.OutDir)
		summaries, err := r.seeder.WriteAll(cmd.Context(), tables, dir, out)
		if err != nil {
			return err
		}
		printSummaries(summaries)
		if out.Format != export.CSV {
			color.Yellow("⚠️  winegen load sqlite reads CSV; rerun with --format csv to load this bundle")
		}
		return nil
	},
}

var generateWarehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Generate the CUSTOMERS, WINES and ORDERS warehouse tables",
	Long: `
Generate the warehouse tables with one seed. Orders reference the generated
customer and wine ids. Use 'winegen load warehouse --direct' to append them
to the warehouse without writing files.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newRun()
		if err != nil {
			return err
		}
		defer r.close()
		out, err := outputFrom(cmd)
		if err != nil {
			return err
		}

		tables, err := r.seeder.Warehouse()
		if err != nil {
			return err
		}
		dir := stringFlag(cmd, "out", filepath.Join(r.cfg.OutDir, seeder.WarehouseDir))
		summaries, err := r.seeder.WriteAll(cmd.Context(), tables, dir, out)
		if err != nil {
			return err
		}
		printSummaries(summaries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.AddCommand(generateCustomersCmd, generateWinesCmd, generateOrdersCmd,
		generateEventsCmd, generateBundleCmd, generateWarehouseCmd)

	generateCustomersCmd.Flags().Int("n", 150, "number of unique customers")
	generateCustomersCmd.Flags().Float64("dup-ratio", 0.05, "fraction of duplicates to append")
	generateCustomersCmd.Flags().String("out", "", "output file (default <out-dir>/customers.csv)")
	addOutputFlags(generateCustomersCmd, export.CSV)

	generateWinesCmd.Flags().Int("n", 500, "number of wines")
	generateWinesCmd.Flags().Float64("dup-ratio", 0, "fraction of duplicates to append (0 disables)")
	generateWinesCmd.Flags().String("out", "", "output file (default <out-dir>/wines.csv)")
	addOutputFlags(generateWinesCmd, export.CSV)

	generateOrdersCmd.Flags().Int("count", 100, "number of orders")
	generateOrdersCmd.Flags().Float64("dup-ratio", 0, "fraction of duplicates to append (0 disables)")
	generateOrdersCmd.Flags().Int("wine-max", 500, "highest wine id referenced")
	generateOrdersCmd.Flags().Int("cust-max", 150, "highest customer id referenced")
	generateOrdersCmd.Flags().String("out", "", "output file (default <out-dir>/wine_orders.csv)")
	addOutputFlags(generateOrdersCmd, export.CSV)

	generateEventsCmd.Flags().Int("count", 60, "number of unique events")
	generateEventsCmd.Flags().Float64("dup-ratio", 0.05, "fraction of duplicates to append")
	generateEventsCmd.Flags().Int("wine-max", 500, "highest wine id referenced")
	generateEventsCmd.Flags().Int("cust-max", 150, "highest customer id referenced")
	generateEventsCmd.Flags().String("out", "", "output file (default <out-dir>/orders_events.jsonl)")
	generateEventsCmd.Flags().Float64("sleep", 0, "seconds to sleep between events (demo streaming)")
	addOutputFlags(generateEventsCmd, export.JSONL)

	generateBundleCmd.Flags().String("out", "", "output directory (default <out-dir>)")
	addOutputFlags(generateBundleCmd, export.CSV)

	generateWarehouseCmd.Flags().String("out", "", "output directory (default <out-dir>/warehouse)")
	addOutputFlags(generateWarehouseCmd, export.CSV)
}
