package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/config"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// DriverConnector opens sessions against the configured database.
// It holds no connection itself; every Connect dials anew.
type DriverConnector struct {
	settings config.DatabaseSettings
	dialect  Dialect
	dsn      string

	// open is sql.Open outside of tests
	open func(driverName, dsn string) (*sql.DB, error)
}

// NewConnector creates a connector for the configured driver.
func NewConnector(settings config.DatabaseSettings) (*DriverConnector, error) {
	dialect, err := DialectFor(settings.Driver)
	if err != nil {
		return nil, err
	}

	if settings.ConnectTimeout <= 0 {
		settings.ConnectTimeout = constants.DBConnectionTimeout
	}

	log.Info().
		Str("driver", settings.Driver).
		Str("host", settings.Host).
		Int("port", settings.Port).
		Str("database", settings.Name).
		Str("user", settings.User).
		Msg("Database connector configured")

	return &DriverConnector{
		settings: settings,
		dialect:  dialect,
		dsn:      settings.DSN(),
		open:     sql.Open,
	}, nil
}

// Dialect returns the dialect of the configured driver.
func (c *DriverConnector) Dialect() Dialect {
	return c.dialect
}

// Connect opens a single connection and verifies it. The caller must Close the session.
func (c *DriverConnector) Connect(ctx context.Context) (*Session, error) {
	db, err := c.open(c.dialect.DriverName(), c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One request, one connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, c.settings.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close database after ping failure")
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return NewSession(db, c.dialect), nil
}

// HealthCheck connects, runs a trivial query and disconnects.
func (c *DriverConnector) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBHealthCheckTimeout)
	defer cancel()

	session, err := c.Connect(ctx)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	defer session.Close()

	var result int
	if err := session.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query test failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("database returned unexpected result: %d", result)
	}

	return nil
}
