package classification

import "strings"

// DefaultIncomeKeywords is the vocabulary that marks a transaction as income.
//
// Matching is by substring, so compound phrases over-trigger: "credit card
// payment" contains "credit" and is classified as income. PatternClassifier
// avoids that case; the keyword strategy keeps the plain behavior.
var DefaultIncomeKeywords = []string{
	"salary", "income", "refund", "profit", "credit",
	"interest", "cashback", "deposit", "received",
}

// KeywordClassifier marks a transaction as income when any keyword occurs
// in its description or its category, case-insensitively.
type KeywordClassifier struct {
	keywords []string
}

// NewKeywordClassifier lower-cases and copies the keyword list.
func NewKeywordClassifier(keywords []string) *KeywordClassifier {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &KeywordClassifier{keywords: lowered}
}

// IsIncome implements Classifier.
func (k *KeywordClassifier) IsIncome(description, category string) bool {
	return k.matches(strings.ToLower(description)) || k.matches(strings.ToLower(category))
}

// Keywords returns the active vocabulary.
func (k *KeywordClassifier) Keywords() []string {
	out := make([]string, len(k.keywords))
	copy(out, k.keywords)
	return out
}

func (k *KeywordClassifier) matches(text string) bool {
	for _, kw := range k.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
