// Package cmd implements the interactions-api command line: the HTTP
// service and one-shot queries against the same catalog.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/giygas/interactions-api/config"
	"github.com/giygas/interactions-api/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile         string
	catalogPath     string
	catalogEncoding string
	jsonOutput      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "interactions-api",
	Short: "Check drug interactions and suggest medications for symptoms",
	Long: `interactions-api resolves misspelled drug and symptom names against a
small curated catalog, reports known pairwise interactions and suggests
medications for a symptom.

Run "serve" for the HTTP API, or use the query commands directly.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (.json, .yaml or .toml); overrides CATALOG_PATH")
	rootCmd.PersistentFlags().StringVar(&catalogEncoding, "encoding", "", "catalog file encoding; overrides CATALOG_ENCODING")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print query results as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the env file, then the environment, then applies flags
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	if catalogPath != "" {
		os.Setenv("CATALOG_PATH", catalogPath)
	}
	if catalogEncoding != "" {
		os.Setenv("CATALOG_ENCODING", catalogEncoding)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// initQueryLogging keeps one-shot commands quiet unless something goes wrong
func initQueryLogging(cfg *config.Config) {
	level := logging.ParseLogLevel(cfg.LogLevel)
	if level < slog.LevelWarn {
		level = slog.LevelWarn
	}
	logging.InitLoggerWithOptions(logging.Options{Level: level})
}
