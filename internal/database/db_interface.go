// Package database opens the per-request connections of the bridge and hides
// the SQL differences between the supported servers behind a Dialect.
package database

import (
	"context"
	"database/sql"
)

// SQLDatabase is the subset of *sql.DB a Session uses. Tests substitute sqlmock.
type SQLDatabase interface {
	// Close closes the database, releasing any open resources.
	Close() error

	// PingContext verifies a connection to the database is still alive.
	PingContext(ctx context.Context) error

	// QueryContext executes a query that returns rows.
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

	// QueryRowContext executes a query that is expected to return at most one row.
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Compile-time check that sql.DB implements SQLDatabase.
var _ SQLDatabase = (*sql.DB)(nil)

// Connector opens a dedicated session for a single request.
type Connector interface {
	Connect(ctx context.Context) (*Session, error)
}

// Compile-time check that DriverConnector implements Connector.
var _ Connector = (*DriverConnector)(nil)
