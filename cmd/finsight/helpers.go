package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/Veraticus/finsight/internal/export"
	"github.com/Veraticus/finsight/internal/ingest"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// displayLimit caps rows printed per table unless --all is given.
const displayLimit = 25

func addAnalysisFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("kind", "", "source kind override (csv, spreadsheet, document-text, ofx)")
	flags.StringP("year", "y", "All", "year to analyze, or All")
	flags.Float64("contamination", 0.05, "expected anomaly share (0.001-0.2)")
	flags.IntP("clusters", "k", 3, "number of clusters (2-6)")
	flags.Bool("absolute", true, "use absolute amounts for anomaly features")
	flags.StringSlice("months", nil, "months to compare (YYYY-MM, comma-separated)")
	flags.String("cluster-by", "transactions", "cluster granularity (transactions, months)")
	flags.String("strategy", "keyword", "income classification strategy (keyword, pattern)")
	flags.StringSlice("income-keywords", nil, "income vocabulary for the keyword strategy")
	flags.Bool("all", false, "print every row instead of the first 25")

	_ = viper.BindPFlag("import.kind", flags.Lookup("kind"))
	_ = viper.BindPFlag(config.KeyYear, flags.Lookup("year"))
	_ = viper.BindPFlag(config.KeyContamination, flags.Lookup("contamination"))
	_ = viper.BindPFlag(config.KeyClusters, flags.Lookup("clusters"))
	_ = viper.BindPFlag(config.KeyAbsolute, flags.Lookup("absolute"))
	_ = viper.BindPFlag(config.KeyMonths, flags.Lookup("months"))
	_ = viper.BindPFlag(config.KeyClusterBy, flags.Lookup("cluster-by"))
	_ = viper.BindPFlag(config.KeyStrategy, flags.Lookup("strategy"))
	_ = viper.BindPFlag(config.KeyIncomeKeywords, flags.Lookup("income-keywords"))
	_ = viper.BindPFlag("output.all", flags.Lookup("all"))
}

// openSources reads every path argument as a statement source.
func openSources(paths []string) ([]ingest.Source, error) {
	if len(paths) == 0 {
		return nil, common.NewUserError("no statement files given", common.ErrNoTransactions)
	}

	var kind ingest.Kind
	if name := viper.GetString("import.kind"); name != "" {
		k, err := ingest.ParseKind(name)
		if err != nil {
			return nil, common.NewUserError("invalid --kind", err)
		}
		kind = k
	}

	sources := make([]ingest.Source, 0, len(paths))
	for _, path := range paths {
		src, err := ingest.OpenFile(config.ExpandPath(path), kind)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// loadLedger runs the pipeline over the path arguments.
func loadLedger(cmd *cobra.Command, paths []string) (*pipeline.Result, error) {
	sources, err := openSources(paths)
	if err != nil {
		return nil, err
	}

	classifier, err := config.LoadClassifier()
	if err != nil {
		return nil, common.NewUserError("invalid classification settings", err)
	}

	progress := cli.NewProgress(cmd.ErrOrStderr(), len(sources), "Loading sources...")
	result, err := pipeline.New(classifier, pipeline.WithProgress(progress.Step)).
		Run(cmd.Context(), sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}
	progress.Finish()

	if result.Ledger.Len() == 0 {
		return nil, common.NewUserError("no usable transactions found", common.ErrNoTransactions)
	}
	return result, nil
}

// analyzeSources loads the sources and runs every analytics component.
func analyzeSources(cmd *cobra.Command, paths []string) (*model.Ledger, *pipeline.Analysis, error) {
	filter, err := config.LoadFilter()
	if err != nil {
		return nil, nil, common.NewUserError("invalid analysis settings", err)
	}

	result, err := loadLedger(cmd, paths)
	if err != nil {
		return nil, nil, err
	}

	analysis, err := pipeline.Analyze(result.Ledger, filter)
	if err != nil {
		return nil, nil, err
	}
	common.LogDebug("analysis complete", common.Fields{
		"year":          filter.Year.String(),
		"contamination": filter.Contamination,
		"clusters":      filter.ClusterCount,
		"cluster_by":    string(filter.ClusterMode),
		"months":        len(filter.SelectedMonths()),
	})
	for component, cerr := range analysis.Errors {
		common.LogError(cerr, "analysis component failed", common.Fields{"component": component})
	}
	return result.Ledger, analysis, nil
}

// reportInsufficient warns when a component lacked data and returns false
// when there is nothing to print.
func reportInsufficient(w io.Writer, insufficient *common.InsufficientDataError) bool {
	if insufficient != nil {
		fmt.Fprintln(w, cli.FormatWarning(insufficient.Error()))
		return false
	}
	return true
}

func printTables(w io.Writer, tables ...export.Table) {
	limit := displayLimit
	if viper.GetBool("output.all") {
		limit = 0
	}
	for _, t := range tables {
		fmt.Fprintln(w, cli.RenderTable(t, limit))
		fmt.Fprintln(w)
	}
	slog.Debug("rendered tables", "count", len(tables))
}
