package classification

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// PatternType represents the type of transaction pattern.
type PatternType string

const (
	// PatternTypeIncome represents income transactions.
	PatternTypeIncome PatternType = "income"
	// PatternTypeExpense represents expense transactions.
	PatternTypeExpense PatternType = "expense"
	// PatternTypeTransfer represents transfer transactions.
	PatternTypeTransfer PatternType = "transfer"
)

// Pattern represents a transaction classification pattern.
type Pattern struct {
	Name     string
	Type     PatternType
	Regex    string
	Priority int // Higher priority patterns are checked first
}

type compiledPattern struct {
	regex *regexp.Regexp
	Pattern
}

// Match represents a pattern match result.
type Match struct {
	PatternName string
	Type        PatternType
}

// PatternClassifier classifies with word-bounded regular expressions checked
// in priority order. The first matching pattern decides; only income
// patterns make a transaction income.
type PatternClassifier struct {
	patterns []compiledPattern
}

// NewPatternClassifier compiles the patterns case-insensitively.
func NewPatternClassifier(patterns []Pattern) (*PatternClassifier, error) {
	compiled := make([]compiledPattern, 0, len(patterns))

	for _, p := range patterns {
		regexStr := p.Regex
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %s: %w", p.Name, err)
		}

		compiled = append(compiled, compiledPattern{Pattern: p, regex: regex})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &PatternClassifier{patterns: compiled}, nil
}

// Match returns the highest-priority pattern matching the description or
// category, or nil.
func (pc *PatternClassifier) Match(description, category string) *Match {
	searchText := description + " " + category

	for _, p := range pc.patterns {
		if p.regex.MatchString(searchText) {
			return &Match{PatternName: p.Name, Type: p.Type}
		}
	}
	return nil
}

// IsIncome implements Classifier.
func (pc *PatternClassifier) IsIncome(description, category string) bool {
	m := pc.Match(description, category)
	return m != nil && m.Type == PatternTypeIncome
}

// PatternCount returns the number of loaded patterns.
func (pc *PatternClassifier) PatternCount() int {
	return len(pc.patterns)
}
