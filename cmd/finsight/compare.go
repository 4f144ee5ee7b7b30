package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/compare"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/Veraticus/finsight/internal/pipeline"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare FILE...",
		Short: "Compare two years by category, or selected months with --months",
		Long: `With --years A,B, show each category's net in both years and the change in
total net from A to B. With --months, show each selected month's net and its
difference from the previous selected month.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCompare,
	}
	cmd.Flags().IntSlice("years", nil, "two years to compare (e.g. 2023,2024)")
	return cmd
}

func runCompare(cmd *cobra.Command, args []string) error {
	years, _ := cmd.Flags().GetIntSlice("years")
	if len(years) != 0 && len(years) != 2 {
		return common.NewUserError("--years takes exactly two years", common.ErrInvalidConfig)
	}

	ledger, analysis, err := analyzeSources(cmd, args)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(years) == 2 {
		c := compare.Years(ledger, years[0], years[1])
		printTables(w, export.YearComparisonTable(c))
		content := fmt.Sprintf("  • %d net: %s\n", c.YearA, aggregate.Money(c.A.Net)) +
			fmt.Sprintf("  • %d net: %s\n", c.YearB, aggregate.Money(c.B.Net)) +
			fmt.Sprintf("  • Difference: %s\n", aggregate.Money(c.Difference)) +
			fmt.Sprintf("  • Change: %s", c.Change)
		fmt.Fprintln(w, cli.RenderBox(strconv.Itoa(c.YearA)+" vs "+strconv.Itoa(c.YearB), content))
		return nil
	}

	if err := analysis.Err(pipeline.ComponentCompare); err != nil {
		return err
	}
	if analysis.Months == nil {
		return common.NewUserError("nothing to compare: pass --years A,B or --months YYYY-MM,YYYY-MM", common.ErrInvalidConfig)
	}
	if !reportInsufficient(w, analysis.Months.Insufficient) {
		return nil
	}

	printTables(w, export.ComparedMonthsTable(analysis.Months))
	labels := make([]string, len(analysis.Months.Months))
	for i, m := range analysis.Months.Months {
		labels[i] = m.Month.String()
	}
	fmt.Fprintln(w, cli.FormatInfo("Compared "+strings.Join(labels, ", ")))
	return nil
}
