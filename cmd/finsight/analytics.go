package main

import (
	"fmt"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/pipeline"
	"github.com/spf13/cobra"
)

func anomaliesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "anomalies FILE...",
		Short: "Flag unusual transactions with an isolation forest",
		Long: `Score every transaction of the selected year with an isolation forest over
amount, day, month and the most frequent categories. The expected anomaly
share is set with --contamination; lower scores are more anomalous.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, analysis, err := analyzeSources(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			r := analysis.Anomalies
			if r == nil {
				return analysis.Err(pipeline.ComponentAnomaly)
			}
			if !reportInsufficient(w, r.Insufficient) {
				return nil
			}

			printTables(w, export.AnomaliesTable(r))
			fmt.Fprintln(w, cli.FormatInfo(fmt.Sprintf("%d of %d transactions flagged (contamination %.3f)",
				len(r.Anomalies()), len(r.Entries), r.Contamination)))
			return nil
		},
	}
}

func clustersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clusters FILE...",
		Short: "Group transactions or months with k-means",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, analysis, err := analyzeSources(cmd, args)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			r := analysis.Clusters
			if r == nil {
				return analysis.Err(pipeline.ComponentCluster)
			}
			if !reportInsufficient(w, r.Insufficient) {
				return nil
			}

			if r.Mode == model.ClusterMonths {
				printTables(w, export.MonthlyClustersTable(r))
				return nil
			}

			printTables(w, export.ClusterSummaryTable(r))
			for _, s := range r.Samples {
				sample := export.Table{
					Name:   fmt.Sprintf("cluster %d: largest transactions", s.Cluster),
					Header: []string{"date", "description", "category", "actual_amount"},
				}
				for _, t := range s.Transactions {
					sample.Rows = append(sample.Rows, []any{t.Date, t.Description, t.Category, t.ActualAmount()})
				}
				printTables(w, sample)
			}
			return nil
		},
	}
}
