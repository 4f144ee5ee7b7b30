package config

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/classification"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/spf13/viper"
)

// Viper keys read by the analysis loaders.
const (
	KeyYear           = "analysis.year"
	KeyContamination  = "analysis.contamination"
	KeyClusters       = "analysis.clusters"
	KeyAbsolute       = "analysis.absolute"
	KeyMonths         = "analysis.months"
	KeyClusterBy      = "analysis.cluster_by"
	KeyStrategy       = "classification.strategy"
	KeyIncomeKeywords = "classification.income_keywords"
	KeyExportDir      = "export.dir"
)

// SetDefaults registers the analysis defaults with viper.
func SetDefaults() {
	d := model.DefaultFilter()
	viper.SetDefault(KeyYear, d.Year.String())
	viper.SetDefault(KeyContamination, d.Contamination)
	viper.SetDefault(KeyClusters, d.ClusterCount)
	viper.SetDefault(KeyAbsolute, d.UseAbsoluteAmount)
	viper.SetDefault(KeyClusterBy, string(d.ClusterMode))
	viper.SetDefault(KeyStrategy, string(classification.StrategyKeyword))
	viper.SetDefault(KeyExportDir, ".")
}

// LoadFilter builds and validates the analysis filter from configuration.
// Unset keys fall back to model.DefaultFilter.
func LoadFilter() (model.Filter, error) {
	filter := model.DefaultFilter()

	year, err := model.ParseYearFilter(viper.GetString(KeyYear))
	if err != nil {
		return filter, err
	}
	filter.Year = year

	if viper.IsSet(KeyContamination) {
		filter.Contamination = viper.GetFloat64(KeyContamination)
	}
	if viper.IsSet(KeyClusters) {
		filter.ClusterCount = viper.GetInt(KeyClusters)
	}
	if viper.IsSet(KeyAbsolute) {
		filter.UseAbsoluteAmount = viper.GetBool(KeyAbsolute)
	}
	if v := viper.GetString(KeyClusterBy); v != "" {
		filter.ClusterMode = model.ClusterMode(strings.ToLower(strings.TrimSpace(v)))
	}

	months, err := parseMonths(viper.GetStringSlice(KeyMonths))
	if err != nil {
		return filter, err
	}
	if len(months) > 0 {
		filter = filter.WithSelectedMonths(months)
	}

	if err := filter.Validate(); err != nil {
		return filter, err
	}
	return filter, nil
}

// LoadClassifier builds the configured income classifier.
func LoadClassifier() (classification.Classifier, error) {
	strategy := classification.Strategy(strings.ToLower(viper.GetString(KeyStrategy)))
	return classification.New(strategy, viper.GetStringSlice(KeyIncomeKeywords))
}

func parseMonths(values []string) ([]model.Month, error) {
	var months []model.Month
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := model.ParseMonth(part)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
			}
			months = append(months, m)
		}
	}
	return months, nil
}
