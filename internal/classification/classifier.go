// Package classification decides the income/expense polarity of transactions.
package classification

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
)

// Classifier decides whether a transaction is income from its text fields.
type Classifier interface {
	IsIncome(description, category string) bool
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(description, category string) bool

// IsIncome implements Classifier.
func (f ClassifierFunc) IsIncome(description, category string) bool {
	return f(description, category)
}

// Strategy names a built-in classifier.
type Strategy string

// Built-in strategies.
const (
	StrategyKeyword Strategy = "keyword"
	StrategyPattern Strategy = "pattern"
)

// New builds the classifier for a strategy. Keywords only apply to the
// keyword strategy; an empty list means DefaultIncomeKeywords.
func New(strategy Strategy, keywords []string) (Classifier, error) {
	switch strategy {
	case StrategyKeyword, "":
		if len(keywords) == 0 {
			keywords = DefaultIncomeKeywords
		}
		return NewKeywordClassifier(keywords), nil
	case StrategyPattern:
		return NewPatternClassifier(DefaultPatterns())
	default:
		return nil, fmt.Errorf("%w: unknown classification strategy %q", common.ErrInvalidConfig, strategy)
	}
}

// Classify returns a new ledger in which every transaction carries its
// polarity and signed amount.
func Classify(txns []model.Transaction, c Classifier) *model.Ledger {
	classified := make([]model.Transaction, len(txns))
	income := 0
	for i, t := range txns {
		classified[i] = t.Classify(c.IsIncome(t.Description, t.Category))
		if classified[i].IsIncome() {
			income++
		}
	}

	slog.Debug("classified transactions",
		"total", len(classified),
		"income", income,
		"expense", len(classified)-income)

	return model.NewLedger(classified)
}
