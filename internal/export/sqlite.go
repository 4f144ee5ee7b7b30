package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// WriteSQLite writes each table into its own SQL table of the database at
// path, replacing tables of the same name.
func WriteSQLite(ctx context.Context, path string, tables []Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	used := make(map[string]bool, len(tables))
	for _, t := range tables {
		name := uniqueIdentifier(Identifier(t.Name), used)
		if err := writeSQLTable(ctx, tx, name, t); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func writeSQLTable(ctx context.Context, tx *sql.Tx, name string, t Table) error {
	columns := make([]string, len(t.Header))
	seen := make(map[string]bool, len(t.Header))
	for i, h := range t.Header {
		columns[i] = uniqueIdentifier(Identifier(h), seen)
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = fmt.Sprintf("%q %s", col, columnType(t, i))
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %q", name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %q (%s)", name, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	if len(columns) == 0 {
		return nil
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = fmt.Sprintf("%q", col)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %q (%s) VALUES (%s)",
		name, strings.Join(quoted, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %s: %w", name, err)
	}
	defer func() { _ = stmt.Close() }()

	for r, row := range t.Rows {
		args := make([]any, len(columns))
		for i := range columns {
			if i < len(row) {
				args[i] = nativeCell(row[i])
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to insert row %d into %s: %w", r+1, name, err)
		}
	}
	return nil
}

// columnType picks REAL or INTEGER when every value of the column has that
// type, TEXT otherwise.
func columnType(t Table, col int) string {
	kind := ""
	for _, row := range t.Rows {
		if col >= len(row) {
			continue
		}
		var k string
		switch row[col].(type) {
		case float64:
			k = "REAL"
		case int, bool:
			k = "INTEGER"
		default:
			return "TEXT"
		}
		if kind != "" && kind != k {
			return "TEXT"
		}
		kind = k
	}
	if kind == "" {
		return "TEXT"
	}
	return kind
}

// Identifier lower-cases a name and replaces everything but letters and
// digits with underscores.
func Identifier(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	id := strings.Trim(b.String(), "_")
	if id == "" {
		return "col"
	}
	if unicode.IsDigit(rune(id[0])) {
		id = "t_" + id
	}
	return id
}

// FileName is Identifier for file names.
func FileName(name string) string {
	return Identifier(name)
}

func uniqueIdentifier(id string, used map[string]bool) string {
	name := id
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s_%d", id, n)
	}
	used[name] = true
	return name
}
