package database

import (
	"fmt"
	"strings"

	// Drivers register themselves with database/sql
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// Dialect captures the SQL differences between the supported servers.
type Dialect interface {
	// Name is the configuration name of the dialect.
	Name() string

	// DriverName is the database/sql driver name.
	DriverName() string

	// QuoteIdentifier quotes a table or column name for interpolation.
	QuoteIdentifier(name string) string

	// Placeholder returns the bind parameter marker for the n-th argument, starting at 1.
	Placeholder(n int) string

	// DecimalType is the exact numeric type balances are cast to.
	DecimalType() string

	// ListTablesQuery lists the tables of the current database, one name in the first column.
	ListTablesQuery() string

	// ListColumnsQuery lists the columns of table, one name in the first column.
	ListColumnsQuery(table string) (string, []interface{})
}

// DialectFor returns the dialect registered under driver.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case constants.DriverMySQL, "mariadb", "":
		return MySQLDialect{}, nil
	case constants.DriverPostgres, "postgresql":
		return PostgresDialect{}, nil
	case constants.DriverSQLite, "sqlite3":
		return SQLiteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// CastDecimal wraps expr in a cast to the dialect's exact numeric type.
func CastDecimal(d Dialect, expr string) string {
	return fmt.Sprintf("CAST(%s AS %s)", expr, d.DecimalType())
}

func quoteWith(name, quote string) string {
	return quote + strings.ReplaceAll(name, quote, quote+quote) + quote
}

// MySQLDialect covers MySQL and MariaDB.
type MySQLDialect struct{}

func (MySQLDialect) Name() string                       { return constants.DriverMySQL }
func (MySQLDialect) DriverName() string                 { return "mysql" }
func (MySQLDialect) QuoteIdentifier(name string) string { return quoteWith(name, "`") }
func (MySQLDialect) Placeholder(int) string             { return "?" }
func (MySQLDialect) DecimalType() string                { return "DECIMAL(65,2)" }
func (MySQLDialect) ListTablesQuery() string            { return "SHOW TABLES" }

func (d MySQLDialect) ListColumnsQuery(table string) (string, []interface{}) {
	// SHOW COLUMNS is DESCRIBE; the first column is the field name
	return "SHOW COLUMNS FROM " + d.QuoteIdentifier(table), nil
}

// PostgresDialect covers PostgreSQL through lib/pq. Tables are read from the current schema.
type PostgresDialect struct{}

func (PostgresDialect) Name() string                       { return constants.DriverPostgres }
func (PostgresDialect) DriverName() string                 { return "postgres" }
func (PostgresDialect) QuoteIdentifier(name string) string { return quoteWith(name, `"`) }
func (PostgresDialect) Placeholder(n int) string           { return fmt.Sprintf("$%d", n) }
func (PostgresDialect) DecimalType() string                { return "NUMERIC" }

func (PostgresDialect) ListTablesQuery() string {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name"
}

func (PostgresDialect) ListColumnsQuery(table string) (string, []interface{}) {
	return "SELECT column_name FROM information_schema.columns " +
		"WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position", []interface{}{table}
}

// SQLiteDialect covers SQLite files through modernc.org/sqlite.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() string                       { return constants.DriverSQLite }
func (SQLiteDialect) DriverName() string                 { return "sqlite" }
func (SQLiteDialect) QuoteIdentifier(name string) string { return quoteWith(name, `"`) }
func (SQLiteDialect) Placeholder(int) string             { return "?" }
func (SQLiteDialect) DecimalType() string                { return "NUMERIC" }

func (SQLiteDialect) ListTablesQuery() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
}

func (SQLiteDialect) ListColumnsQuery(table string) (string, []interface{}) {
	return "SELECT name FROM pragma_table_info(?) ORDER BY cid", []interface{}{table}
}
