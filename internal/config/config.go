// Package config loads the bridge configuration from a YAML file and the environment.
//
// Values are resolved in three layers: the optional config file, environment
// variables named by the `env` struct tags, and finally built-in defaults. The
// result is validated once at startup and treated as immutable afterwards.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App       AppSettings       `yaml:"app"`
	Database  DatabaseSettings  `yaml:"database"`
	Server    ServerSettings    `yaml:"server"`
	Logging   LoggingSettings   `yaml:"logging"`
	CORS      CORSSettings      `yaml:"cors"`
	RateLimit RateLimitSettings `yaml:"rate_limit"`
	Discovery DiscoverySettings `yaml:"discovery"`
	Advisor   AdvisorSettings   `yaml:"advisor"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains the connection parameters of the economy database.
// They are fixed for the lifetime of the process; requests never carry them.
type DatabaseSettings struct {
	Driver         string        `yaml:"driver" env:"DB_DRIVER" validate:"oneof=mysql postgres sqlite"`
	Host           string        `yaml:"host" env:"DB_HOST" validate:"required_unless=Driver sqlite"`
	Port           int           `yaml:"port" env:"DB_PORT" validate:"gte=0,lte=65535"`
	Name           string        `yaml:"name" env:"DB_NAME" validate:"required_unless=Driver sqlite"`
	User           string        `yaml:"user" env:"DB_USER" validate:"required_unless=Driver sqlite"`
	Password       string        `yaml:"password" env:"DB_PASSWORD"`
	Path           string        `yaml:"path" env:"DB_PATH" validate:"required_if=Driver sqlite"`
	SSLMode        string        `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	// HideErrors replaces database error text in 500 responses with a generic message.
	HideErrors bool `yaml:"hide_errors" env:"SERVER_HIDE_ERRORS"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json console"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
}

// RateLimitSettings controls the per-IP request budget. A non-positive rate disables it.
type RateLimitSettings struct {
	RequestsPerMinute float64 `yaml:"requests_per_minute" env:"RATE_LIMIT_PER_MINUTE"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST" validate:"min=0"`
}

// DiscoverySettings overrides the naming conventions used to find the economy table.
type DiscoverySettings struct {
	NameColumns    []string `yaml:"name_columns" env:"DISCOVERY_NAME_COLUMNS" validate:"min=1,dive,required"`
	BalanceColumns []string `yaml:"balance_columns" env:"DISCOVERY_BALANCE_COLUMNS" validate:"min=1,dive,required"`
	TableKeywords  []string `yaml:"table_keywords" env:"DISCOVERY_TABLE_KEYWORDS" validate:"min=1,dive,required"`
}

// AdvisorSettings configures the optional financial advice generator.
type AdvisorSettings struct {
	Provider  string        `yaml:"provider" env:"ADVISOR_PROVIDER" validate:"oneof=none openai anthropic"`
	APIKey    string        `yaml:"api_key" env:"ADVISOR_API_KEY"`
	Model     string        `yaml:"model" env:"ADVISOR_MODEL"`
	BaseURL   string        `yaml:"base_url" env:"ADVISOR_BASE_URL"`
	MaxTokens int           `yaml:"max_tokens" env:"ADVISOR_MAX_TOKENS" validate:"min=0"`
	Timeout   time.Duration `yaml:"timeout" env:"ADVISOR_TIMEOUT"`
}

// DSN returns the driver specific data source name for the configured database.
func (dbs *DatabaseSettings) DSN() string {
	switch dbs.Driver {
	case constants.DriverPostgres:
		sslMode := dbs.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password='%s' dbname=%s sslmode=%s connect_timeout=%d",
			dbs.Host, dbs.Port, dbs.User, strings.ReplaceAll(dbs.Password, "'", `\'`), dbs.Name, sslMode,
			int(dbs.ConnectTimeout.Seconds()),
		)
	case constants.DriverSQLite:
		return "file:" + dbs.Path + "?mode=ro"
	default:
		mc := mysql.NewConfig()
		mc.User = dbs.User
		mc.Passwd = dbs.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(dbs.Host, strconv.Itoa(dbs.Port))
		mc.DBName = dbs.Name
		mc.Timeout = dbs.ConnectTimeout
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN()
	}
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return net.JoinHostPort(ss.Host, strconv.Itoa(ss.Port))
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = constants.DefaultAppVersion
	}

	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	config.Database.Driver = strings.ToLower(config.Database.Driver)
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	if config.Database.Port == 0 {
		switch config.Database.Driver {
		case constants.DriverMySQL:
			config.Database.Port = constants.DefaultDBPort
		case constants.DriverPostgres:
			config.Database.Port = constants.DefaultPostgresPort
		}
	}
	if config.Database.ConnectTimeout == 0 {
		config.Database.ConnectTimeout = constants.DBConnectionTimeout
	}

	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	config.Logging.Level = strings.ToLower(config.Logging.Level)
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// The dashboard is served from another origin
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	if config.RateLimit.RequestsPerMinute == 0 {
		config.RateLimit.RequestsPerMinute = constants.DefaultRateLimitPerMinute
	}

	config.Discovery.NameColumns = lowerList(config.Discovery.NameColumns, constants.DefaultNameColumns)
	config.Discovery.BalanceColumns = lowerList(config.Discovery.BalanceColumns, constants.DefaultBalanceColumns)
	config.Discovery.TableKeywords = lowerList(config.Discovery.TableKeywords, constants.DefaultTableKeywords)

	config.Advisor.Provider = strings.ToLower(config.Advisor.Provider)
	if config.Advisor.Provider == "" {
		config.Advisor.Provider = constants.AdvisorProviderNone
	}
	if config.Advisor.MaxTokens == 0 {
		config.Advisor.MaxTokens = constants.DefaultAdvisorMaxTokens
	}
	if config.Advisor.Timeout == 0 {
		config.Advisor.Timeout = constants.DefaultAdvisorTimeout
	}
}

// lowerList returns values lower-cased and trimmed, or a copy of fallback when values is empty.
func lowerList(values, fallback []string) []string {
	if len(values) == 0 {
		return append([]string(nil), fallback...)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	if err := validator.New().Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	// An advisor without a key silently degrades to the disabled message; say so once.
	if config.Advisor.Provider != constants.AdvisorProviderNone && config.Advisor.APIKey == "" {
		log.Warn().Str("provider", config.Advisor.Provider).Msg("Advisor provider set without API key, advisor disabled")
		config.Advisor.Provider = constants.AdvisorProviderNone
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	logCfg := *config

	if logCfg.Database.Password != "" {
		logCfg.Database.Password = constants.LogRedactedValue
	}
	if logCfg.Advisor.APIKey != "" {
		logCfg.Advisor.APIKey = constants.LogRedactedValue
	}

	log.Info().
		Str("environment", logCfg.App.Environment).
		Str("version", logCfg.App.Version).
		Str("server", logCfg.Server.ServerAddress()).
		Str("db_driver", logCfg.Database.Driver).
		Str("db_host", logCfg.Database.Host).
		Int("db_port", logCfg.Database.Port).
		Str("db_name", logCfg.Database.Name).
		Str("advisor", logCfg.Advisor.Provider).
		Str("log_level", logCfg.Logging.Level).
		Msg("Configuration loaded")
}
