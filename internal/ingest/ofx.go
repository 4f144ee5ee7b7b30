package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tags at end of line that are missing their closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// ofxCategories maps OFX transaction types onto category labels. Types not
// listed use their own name.
var ofxCategories = map[string]string{
	"INT":       "Interest",
	"DIV":       "Dividend",
	"DEP":       "Deposit",
	"DIRECTDEP": "Deposit",
	"FEE":       "Bank Fees",
	"SRVCHG":    "Bank Fees",
	"ATM":       "Cash & ATM",
	"CHECK":     "Check",
}

// OFXExtractor reads OFX/QFX bank and credit card statements.
type OFXExtractor struct{}

// Extract implements Extractor.
func (e *OFXExtractor) Extract(ctx context.Context, src Source) (*Extraction, error) {
	content := preprocessOFX(string(src.Data))

	resp, err := ofxgo.ParseResponse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	ext := newExtraction(src)
	ext.Columns = []string{FieldDate, FieldDescription, FieldAmount, FieldCategory}

	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			ext.addOFXTransactions(stmt.BankTranList.Transactions)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			ext.addOFXTransactions(stmt.BankTranList.Transactions)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Debug("parsed OFX file",
		"source", src.Name,
		"transactions", len(ext.Records),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return ext, nil
}

func (e *Extraction) addOFXTransactions(txns []ofxgo.Transaction) {
	for _, tx := range txns {
		e.Seen++
		if tx.DtPosted.IsZero() {
			e.drop(reasonNoDate)
			continue
		}

		trnType := fmt.Sprintf("%v", tx.TrnType)
		category, ok := ofxCategories[trnType]
		if !ok {
			category = trnType
		}

		e.Records = append(e.Records, RawRecord{
			FieldDate:        tx.DtPosted.Format("2006-01-02"),
			FieldDescription: payeeName(tx),
			FieldAmount:      tx.TrnAmt.FloatString(2),
			FieldCategory:    category,
		})
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// payeeName prefers the PAYEE aggregate, then NAME, then MEMO when NAME is generic.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
