// Package normalize maps raw extracted records onto the canonical
// transaction schema.
package normalize

import (
	"strings"

	"github.com/Veraticus/finsight/internal/common"
)

// Field is a canonical transaction field.
type Field string

// Canonical fields, in resolution order.
const (
	FieldDate        Field = "date"
	FieldAmount      Field = "amount"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
)

var canonicalFields = []Field{FieldDate, FieldAmount, FieldDescription, FieldCategory}

// AliasTable lists, per canonical field, the header names accepted for it
// in priority order. Headers are compared lower-cased and trimmed.
//
// Priority follows the alias list, not the source column order: given the
// headers "credit,amount", FieldAmount resolves to "amount".
type AliasTable struct {
	Aliases map[Field][]string
	Version string
}

// DefaultAliases is the built-in alias table.
var DefaultAliases = AliasTable{
	Version: "1",
	Aliases: map[Field][]string{
		FieldDate:        {"date", "transaction_date", "timestamp", "time"},
		FieldAmount:      {"amount", "amt", "value", "txn_amount", "debit", "credit"},
		FieldDescription: {"description", "details", "remark", "narration", "desc"},
		FieldCategory:    {"category", "type", "label", "tag"},
	},
}

// Mapping records which source column feeds each canonical field. Optional
// fields with no matching column are absent.
type Mapping map[Field]string

// Resolve picks a source column for every canonical field. For each field
// the aliases are checked in order and the first one present wins. Date and
// amount are mandatory.
func (a AliasTable) Resolve(columns []string) (Mapping, error) {
	byName := make(map[string]string, len(columns))
	for _, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, dup := byName[key]; !dup {
			byName[key] = col
		}
	}

	mapping := make(Mapping, len(canonicalFields))
	for _, field := range canonicalFields {
		for _, alias := range a.Aliases[field] {
			if col, ok := byName[alias]; ok {
				mapping[field] = col
				break
			}
		}
	}

	var missing []string
	for _, field := range []Field{FieldDate, FieldAmount} {
		if _, ok := mapping[field]; !ok {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, &common.SchemaError{Missing: missing, Columns: columns}
	}

	return mapping, nil
}
