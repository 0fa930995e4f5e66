// Package constants provides shared constant values used throughout the application.
//
// The defaults.go file defines default values and limits used throughout the application.
// These constants provide fallback settings for configuration values that were not
// supplied through the config file or the environment.
package constants

// Default Configuration Values define fallback settings when not specified in configuration.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 3000

	// DefaultServerHost binds the bridge to all interfaces.
	DefaultServerHost = "0.0.0.0"

	// DefaultAppName is reported in logs and on the version endpoint.
	DefaultAppName = "voidnest-economy-bridge"

	// DefaultAppVersion is used when no version is configured or injected at build time.
	DefaultAppVersion = "2.2.1"

	// DefaultDBDriver is the database dialect used when none is configured.
	DefaultDBDriver = DriverMySQL

	// DefaultDBPort is the default MySQL/MariaDB port.
	DefaultDBPort = 3306

	// DefaultPostgresPort is the default PostgreSQL port.
	DefaultPostgresPort = 5432

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultRateLimitPerMinute is the default per-IP request budget.
	DefaultRateLimitPerMinute = 120

	// CORSMaxAge is how long, in seconds, browsers may cache a preflight answer.
	CORSMaxAge = 300
)

// Environment Types define the recognized application running environments.
const (
	// EnvDevelopment identifies a development environment with debugging features enabled.
	EnvDevelopment = "development"

	// EnvTesting identifies a testing environment for automated tests.
	EnvTesting = "testing"

	// EnvProduction identifies a production environment with optimized settings.
	EnvProduction = "production"
)

// Database Drivers name the dialects the bridge can talk to.
const (
	// DriverMySQL covers MySQL and MariaDB, the usual backends of economy plugins.
	DriverMySQL = "mysql"

	// DriverPostgres covers PostgreSQL.
	DriverPostgres = "postgres"

	// DriverSQLite covers file based SQLite databases.
	DriverSQLite = "sqlite"
)

// Advisor Providers name the supported text generation backends.
const (
	// AdvisorProviderNone disables the advisor.
	AdvisorProviderNone = "none"

	// AdvisorProviderOpenAI targets any OpenAI-compatible chat completion endpoint.
	AdvisorProviderOpenAI = "openai"

	// AdvisorProviderAnthropic targets the Anthropic messages API.
	AdvisorProviderAnthropic = "anthropic"

	// DefaultAdvisorMaxTokens bounds the length of generated advice.
	DefaultAdvisorMaxTokens = 400
)

// Player Name Limits bound the accepted path parameter.
const (
	// MaxPlayerNameLength is the longest identifier accepted by the lookup endpoints.
	// Minecraft names are at most 16 characters, UUIDs with dashes 36.
	MaxPlayerNameLength = 64
)

// Request Limits bound client supplied metadata.
const (
	// MaxRequestIDLength is the longest X-Request-ID header reused as is.
	MaxRequestIDLength = 128
)
