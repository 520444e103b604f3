package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-redact-mcp/internal/config"
	"github.com/ironsheep/image-redact-mcp/internal/logging"
	"github.com/ironsheep/image-redact-mcp/internal/photocache"
	"github.com/ironsheep/image-redact-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("redact-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("redact-mcp - MCP server for photo redaction")
			fmt.Println()
			fmt.Println("Usage: redact-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Configuration is read from $REDACT_MCP_CONFIG, .config.yaml or config.yaml.")
			fmt.Println("A .env file in the working directory is loaded first.")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  REDACT_MCP_CONFIG=path          Config file to load")
			fmt.Println("  REDACT_MCP_LOG_LEVEL=debug      Log level (debug, info, warn, error)")
			fmt.Println("  REDACT_MCP_CACHE_BACKEND=sqlite Photo cache backend (memory or sqlite)")
			fmt.Println("  REDACT_MCP_SQLITE_PATH=path     SQLite database for the photo cache")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Logs go to stderr (stdout is for MCP protocol)
	boot := logging.New(os.Stderr, os.Getenv(config.EnvLogLevel), "console")

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		boot.Warn().Err(err).Msg("failed to load .env")
	}

	cfg, cfgPath, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Str("path", cfgPath).Msg("invalid configuration")
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Str("config", cfgPath).
		Msg("Redact MCP Server starting")

	photos, closePhotos, err := openPhotoCache(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open photo cache")
	}
	defer closePhotos()

	srv := server.New(cfg, logger, photos)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("server error")
		closePhotos()
		os.Exit(1)
	}
}

// openPhotoCache builds the configured photo cache backend. The returned
// close function is safe to call more than once.
func openPhotoCache(cfg *config.Config, logger zerolog.Logger) (photocache.Cache, func(), error) {
	switch cfg.Cache.Backend {
	case "sqlite":
		c, err := photocache.OpenSQLite(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug().Str("path", cfg.Cache.SQLitePath).Msg("using sqlite photo cache")
		closed := false
		return c, func() {
			if closed {
				return
			}
			closed = true
			if err := c.Close(); err != nil {
				logger.Warn().Err(err).Msg("failed to close photo cache")
			}
		}, nil
	default:
		return photocache.NewMemoryCache(), func() {}, nil
	}
}
