// tuxgo is the game host: it owns the window, the script VM and the save
// store, and runs the frame loop.
//
// Usage:
//
//	tuxgo run                   - Open the window and run the game (default)
//	tuxgo modes                 - Print the desktop mode and computed window spec
//	tuxgo exec FILE [NAME...]   - Run a script and dump the named globals
//	tuxgo saves [--delete SLOT] - List or delete save slots
//
// Global flags:
//
//	--config <path>  - Configuration file (default: config/tuxgo.toml, or $TUXGO_CONFIG)
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tuxgo/tuxgo/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/tuxgo.toml"

var flagConfig string

func init() {
	// Both window backends must stay on the main OS thread.
	runtime.LockOSThread()

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the configuration file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(savesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "tuxgo",
	Short:         "TuxGo game host",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGame,
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if p := os.Getenv("TUXGO_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

// setup loads the configuration and builds the logger every command shares.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
