package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE...",
		Short: "Load statements and report what was ingested",
		Long: `Load one or more statement files into a single ledger and report, per source,
how many rows were read, kept, dropped (with reasons) or removed as duplicates.

Nothing is stored; every command re-reads its sources.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	result, err := loadLedger(cmd, args)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	sources := export.Table{
		Name:   "sources",
		Header: []string{"source", "kind", "seen", "transactions", "dropped", "duplicates", "drop_reasons"},
	}
	for _, s := range result.Sources {
		sources.Rows = append(sources.Rows, []any{
			s.Source, string(s.Kind), s.Seen, s.Transactions, s.Dropped, s.Duplicates, formatReasons(s.DropReasons),
		})
	}
	printTables(w, sources)

	totals := aggregate.ComputeTotals(result.Ledger)
	summary := fmt.Sprintf("  • Transactions: %d\n", result.Ledger.Len()) +
		fmt.Sprintf("  • Dropped rows: %d\n", result.Dropped()) +
		fmt.Sprintf("  • Duplicates: %d\n", result.Duplicates) +
		fmt.Sprintf("  • Income: %s\n", aggregate.Money(totals.Income)) +
		fmt.Sprintf("  • Expense: %s\n", aggregate.Money(totals.Expense)) +
		fmt.Sprintf("  • Net: %s", aggregate.Money(totals.Net))
	fmt.Fprintln(w, cli.RenderBox("Import Complete", summary))
	return nil
}

func formatReasons(reasons map[string]int) string {
	if len(reasons) == 0 {
		return ""
	}
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, reasons[k])
	}
	return strings.Join(parts, ", ")
}
