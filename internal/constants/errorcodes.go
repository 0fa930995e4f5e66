// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling and messaging.
// The not-found bodies are plain text because the dashboard only looks at the status.
package constants

// User-Facing Messages define the bodies returned to the dashboard.
const (
	// MsgNoEconomyTable is returned when discovery finds no qualifying table.
	MsgNoEconomyTable = "No table"

	// MsgPlayerNotFound is returned when a lookup matches no row.
	MsgPlayerNotFound = "Not found"

	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgServiceUnhealthy is returned by the health endpoint when the database is unreachable.
	MsgServiceUnhealthy = "Service is not healthy"

	// MsgRateLimited is returned when a client exceeds its request budget.
	MsgRateLimited = "Rate limit exceeded. Please try again later."
)

// Advisor Messages are returned in place of generated advice.
const (
	// MsgAdvisorDisabled is returned when no provider or API key is configured.
	MsgAdvisorDisabled = "The advisor is disabled (no API key configured)."

	// MsgAdvisorFallback is returned when the provider answers with no text.
	MsgAdvisorFallback = "Keep farming to grow your empire!"

	// MsgAdvisorUnavailable is returned when the provider call fails.
	MsgAdvisorUnavailable = "The void energy is disturbing my predictions right now. Come back later!"
)

// Database Error Codes the error parser recognises.
const (
	// MySQLErrNoSuchTable is raised when a table vanished between enumeration and query.
	MySQLErrNoSuchTable = 1146

	// MySQLErrBadField is raised when a column vanished between discovery and query.
	MySQLErrBadField = 1054

	// PGErrUndefinedTable is the PostgreSQL code for a missing table.
	PGErrUndefinedTable = "42P01"

	// PGErrUndefinedColumn is the PostgreSQL code for a missing column.
	PGErrUndefinedColumn = "42703"
)

// Logger Constants define values used for structured logging.
const (
	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
