package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/Rana718/winegen/internal/inspect"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv>",
	Short: "Report row, duplicate and format counts of a generated CSV",
	Long: `
Read a generated CSV and report:
- row and column counts
- duplicates by business key and by whole record
- rows flagged by the is_duplicate column, when present
- which date and price formats each column holds

The file is only read; nothing is cleaned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		report, err := inspect.File(args[0], key)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(report)
		return nil
	},
}

func printReport(r *inspect.Report) {
	color.Cyan("📋 %s: %d rows, %d columns", r.Table, r.Rows, r.Columns)
	fmt.Printf("   duplicate %s values: %d\n", r.KeyColumn, r.KeyDuplicates)
	fmt.Printf("   identical records:    %d\n", r.ExactDuplicates)
	if r.Flagged > 0 {
		fmt.Printf("   flagged duplicates:   %d\n", r.Flagged)
	}

	if len(r.Nulls) > 0 {
		cols := make([]string, 0, len(r.Nulls))
		for col := range r.Nulls {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		fmt.Println()
		color.Cyan("🕳️  Empty values")
		for _, col := range cols {
			fmt.Printf("   %-20s %d\n", col, r.Nulls[col])
		}
	}

	for _, f := range r.Formats {
		fmt.Println()
		color.Cyan("🧮 %s (%s formats)", f.Column, f.Kind)
		for _, name := range f.SortedCounts() {
			fmt.Printf("   %-12s %d\n", name, f.Counts[name])
		}
		if f.Unknown > 0 {
			color.Yellow("   %-12s %d", "unknown", f.Unknown)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("key", "", "business key column (default first column)")
	inspectCmd.Flags().Bool("json", false, "print the report as JSON")
}
