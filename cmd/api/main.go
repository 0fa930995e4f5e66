// Package main is the entry point of the Voidnest economy bridge, a small
// read-only HTTP API that exposes the balances stored by a Minecraft economy
// plugin to the server's web dashboard.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/voidnest-bridge/internal/config"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/handlers"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/server"
	"github.com/yasinhessnawi1/voidnest-bridge/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is a non-fatal condition, the environment
	// may already carry the configuration
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println("Warning: .env file couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		logLevel    string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.StringVar(&logLevel, "log-level", "", "Override the configured log level")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Voidnest Economy Bridge\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Bootstrap logger until the configured one is installed
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Override version from build if available (not in dev mode)
	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	if logLevel != "" {
		if err := utils.SetLogLevel(logLevel); err != nil {
			log.Fatal().Err(err).Msg("Invalid -log-level")
		}
	}

	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Str("driver", cfg.Database.Driver).
		Str("log_level", utils.GetLogLevel()).
		Msg("Starting Voidnest economy bridge")

	utils.InitValidator()

	srv, err := server.NewServer(cfg, handlers.BuildInfo{
		Version:     cfg.App.Version,
		Commit:      commit,
		BuildDate:   buildDate,
		Environment: cfg.App.Environment,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Blocks until termination
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
