package main

import (
	"fmt"

	"github.com/Veraticus/finsight/internal/aggregate"
	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/pipeline"
	"github.com/spf13/cobra"
)

// aggregateCmd builds a command that prints part of the aggregate report.
func aggregateCmd(use, short string, render func(cmd *cobra.Command, ledger *model.Ledger, report *aggregate.Report) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " FILE...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, analysis, err := analyzeSources(cmd, args)
			if err != nil {
				return err
			}
			if err := analysis.Err(pipeline.ComponentAggregate); err != nil {
				return err
			}
			return render(cmd, ledger, analysis.Aggregates)
		},
	}
}

func overviewCmd() *cobra.Command {
	return aggregateCmd("overview", "Show the overview snapshot",
		func(cmd *cobra.Command, _ *model.Ledger, r *aggregate.Report) error {
			printTables(cmd.OutOrStdout(), export.OverviewTable(r.Overview))
			return nil
		})
}

func monthlyCmd() *cobra.Command {
	return aggregateCmd("monthly", "Show the month-by-month income, expense and savings summary",
		func(cmd *cobra.Command, _ *model.Ledger, r *aggregate.Report) error {
			printTables(cmd.OutOrStdout(), export.MonthlySummaryTable(r.Summary))
			return nil
		})
}

func yearlyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yearly FILE...",
		Short: "Show yearly totals with year-over-year change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, analysis, err := analyzeSources(cmd, args)
			if err != nil {
				return err
			}
			if err := analysis.Err(pipeline.ComponentAggregate); err != nil {
				return err
			}
			printTables(cmd.OutOrStdout(), export.YearlyTable(analysis.YearOverYear, analysis.Aggregates.Yearly))
			return nil
		},
	}
	return cmd
}

func categoriesCmd() *cobra.Command {
	cmd := aggregateCmd("categories", "Show category totals, or one month's breakdown with --month",
		func(cmd *cobra.Command, ledger *model.Ledger, r *aggregate.Report) error {
			w := cmd.OutOrStdout()
			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				printTables(w, export.CategoriesTable(r.Categories))
				return nil
			}

			m, err := model.ParseMonth(month)
			if err != nil {
				return common.NewUserError("invalid --month", err)
			}
			printTables(w, export.DrilldownTable(m, aggregate.Drilldown(ledger, m)))
			return nil
		})
	cmd.Flags().String("month", "", "break down a single month (YYYY-MM)")
	return cmd
}

func highlightsCmd() *cobra.Command {
	return aggregateCmd("highlights", "Show the best and worst months and the expense trend",
		func(cmd *cobra.Command, _ *model.Ledger, r *aggregate.Report) error {
			h := r.Highlights
			direction := "decreasing"
			if r.Trend.Increasing() {
				direction = "increasing"
			}
			content := fmt.Sprintf("  • Highest spending: %s\n", extremum(h.WorstSpend)) +
				fmt.Sprintf("  • Lowest spending: %s\n", extremum(h.BestSpend)) +
				fmt.Sprintf("  • Best savings: %s\n", extremum(h.BestSaving)) +
				fmt.Sprintf("  • Worst savings: %s\n", extremum(h.WorstSaving)) +
				fmt.Sprintf("  • Expense trend: %s (%s)", direction, aggregate.Money(r.Trend.Change))
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.ChartIcon+" Highlights ("+r.Overview.Year.String()+")", content))
			return nil
		})
}

func insightsCmd() *cobra.Command {
	return aggregateCmd("insights", "Show the insights summary",
		func(cmd *cobra.Command, _ *model.Ledger, r *aggregate.Report) error {
			printTables(cmd.OutOrStdout(), export.InsightsTable(aggregate.Insights(r.Overview)))
			return nil
		})
}

func extremum(e aggregate.Extremum) string {
	if e.Month.IsZero() {
		return e.Label()
	}
	return fmt.Sprintf("%s (%s)", e.Label(), aggregate.Money(e.Value))
}
