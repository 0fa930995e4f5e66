package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// Session is one request's connection to the economy database.
type Session struct {
	db      SQLDatabase
	dialect Dialect

	closeOnce sync.Once
	closeErr  error
}

// NewSession wraps an open database handle.
func NewSession(db SQLDatabase, dialect Dialect) *Session {
	return &Session{db: db, dialect: dialect}
}

// Dialect returns the SQL dialect of the session.
func (s *Session) Dialect() Dialect {
	return s.dialect
}

// Query runs a query and logs it with its duration.
func (s *Session) Query(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	utils.LogDBQuery(query, args, time.Since(start), err)
	return rows, err
}

// QueryRow runs a single row query. Errors surface on Scan.
func (s *Session) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := s.db.QueryRowContext(ctx, query, args...)
	utils.LogDBQuery(query, args, time.Since(start), nil)
	return row
}

// ListTables returns the table names of the current database in server order.
func (s *Session) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.Query(ctx, s.dialect.ListTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables, err := firstColumn(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read table names: %w", err)
	}
	return tables, nil
}

// ListColumns returns the column names of table in declaration order.
func (s *Session) ListColumns(ctx context.Context, table string) ([]string, error) {
	query, args := s.dialect.ListColumnsQuery(table)
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := firstColumn(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	return columns, nil
}

// Close releases the connection. Further calls return the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.db == nil {
			return
		}
		s.closeErr = s.db.Close()
		if s.closeErr != nil {
			log.Warn().Err(s.closeErr).Msg("Failed to close database session")
		}
	})
	return s.closeErr
}

// ScanRowMap reads the current row into a column name to value map.
// Driver []byte values are copied since the driver may reuse the buffer.
func ScanRowMap(rows *sql.Rows) (map[string]interface{}, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	rowValues := make([]interface{}, len(columns))
	rowPointers := make([]interface{}, len(columns))
	for i := range rowValues {
		rowPointers[i] = &rowValues[i]
	}

	if err := rows.Scan(rowPointers...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	rowMap := make(map[string]interface{}, len(columns))
	for i, colName := range columns {
		if b, ok := rowValues[i].([]byte); ok {
			rowValues[i] = append([]byte(nil), b...)
		}
		rowMap[colName] = rowValues[i]
	}

	return rowMap, nil
}

// firstColumn collects the first column of every row as text. The listing
// statements of some servers return extra columns that are ignored.
func firstColumn(rows *sql.Rows) ([]string, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("listing returned no columns")
	}

	var values []string
	for rows.Next() {
		var first sql.NullString
		dest := make([]interface{}, len(columns))
		dest[0] = &first
		for i := 1; i < len(columns); i++ {
			dest[i] = new(sql.RawBytes)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if first.Valid {
			values = append(values, first.String)
		}
	}

	return values, rows.Err()
}
