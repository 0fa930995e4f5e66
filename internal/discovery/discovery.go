// Package discovery finds the economy table of an unknown database by naming
// conventions alone.
//
// The resolver is a pure function over table names and a column lister, so it
// runs the same against fixtures and against a live session. The first
// keyword-matching table, in enumeration order, that has both a player name
// column and a balance column wins; later tables are not inspected.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// ErrSchemaNotFound is returned when no table qualifies.
var ErrSchemaNotFound = errors.New("no economy table found")

// Candidates are the naming conventions discovery matches against.
// Column lists are ordered by priority. All entries are lower case.
type Candidates struct {
	NameColumns    []string
	BalanceColumns []string
	TableKeywords  []string
}

// DefaultCandidates returns the built-in conventions of common economy plugins.
func DefaultCandidates() Candidates {
	return NewCandidates(constants.DefaultNameColumns, constants.DefaultBalanceColumns, constants.DefaultTableKeywords)
}

// NewCandidates builds lower-cased candidate lists.
func NewCandidates(nameColumns, balanceColumns, tableKeywords []string) Candidates {
	return Candidates{
		NameColumns:    utils.LowerAll(nameColumns),
		BalanceColumns: utils.LowerAll(balanceColumns),
		TableKeywords:  utils.LowerAll(tableKeywords),
	}
}

// Schema is the discovered table with its name and balance columns.
// Column names keep the casing reported by the database.
type Schema struct {
	Table         string
	NameColumn    string
	BalanceColumn string
}

// ColumnLister returns the column names of a table.
type ColumnLister func(ctx context.Context, table string) ([]string, error)

// Source enumerates tables and their columns. *database.Session implements it.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	ListColumns(ctx context.Context, table string) ([]string, error)
}

// Discover enumerates the tables of src and resolves the economy schema.
// A failure to enumerate is returned as is; it is not a not-found answer.
func Discover(ctx context.Context, src Source, c Candidates) (Schema, error) {
	tables, err := src.ListTables(ctx)
	if err != nil {
		return Schema{}, fmt.Errorf("failed to enumerate tables: %w", err)
	}
	return Resolve(ctx, tables, src.ListColumns, c)
}

// Resolve returns the first table of tables that matches a keyword and has
// both a candidate name column and a candidate balance column.
// Tables whose columns cannot be listed are skipped.
func Resolve(ctx context.Context, tables []string, lister ColumnLister, c Candidates) (Schema, error) {
	shortlist := Shortlist(tables, c.TableKeywords)

	for _, table := range shortlist {
		if err := ctx.Err(); err != nil {
			return Schema{}, err
		}

		columns, err := lister(ctx, table)
		if err != nil {
			log.Debug().Err(err).Str("table", table).Msg("Skipping table, columns unavailable")
			continue
		}

		nameCol, balanceCol, ok := ResolveColumns(columns, c)
		if !ok {
			log.Debug().Str("table", table).Strs("columns", columns).Msg("Table lacks name or balance column")
			continue
		}

		log.Debug().
			Str("table", table).
			Str("name_column", nameCol).
			Str("balance_column", balanceCol).
			Msg("Economy table discovered")

		return Schema{Table: table, NameColumn: nameCol, BalanceColumn: balanceCol}, nil
	}

	return Schema{}, ErrSchemaNotFound
}

// Shortlist keeps the tables whose lower-cased name contains a keyword, preserving order.
func Shortlist(tables, keywords []string) []string {
	var out []string
	for _, table := range tables {
		if utils.ContainsAny(strings.ToLower(table), keywords) {
			out = append(out, table)
		}
	}
	return out
}

// ResolveColumns picks the highest priority name and balance candidates present in columns.
// The returned names are the entries of columns, not the candidates.
func ResolveColumns(columns []string, c Candidates) (nameColumn, balanceColumn string, ok bool) {
	byLower := make(map[string]string, len(columns))
	for _, col := range columns {
		lower := strings.ToLower(col)
		if _, seen := byLower[lower]; !seen {
			byLower[lower] = col
		}
	}

	nameColumn = firstPresent(c.NameColumns, byLower)
	balanceColumn = firstPresent(c.BalanceColumns, byLower)
	return nameColumn, balanceColumn, nameColumn != "" && balanceColumn != ""
}

func firstPresent(candidates []string, columns map[string]string) string {
	for _, candidate := range candidates {
		if col, ok := columns[candidate]; ok {
			return col
		}
	}
	return ""
}
