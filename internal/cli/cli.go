// Package cli implements the designpanel command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/designpanel/pkg/buildinfo"
	"github.com/matzehuels/designpanel/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "designpanel"

	// configFile is the file name looked up in the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Designpanel drags a block around a fixed-size panel",
		Long:         `Designpanel hosts a draggable, keyboard-nudgeable block confined to a panel. It runs interactively in the terminal, replays scripted input, serves the panel over HTTP and draws its state machine.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (TOML or YAML)")

	// Register all subcommands
	root.AddCommand(c.runCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.diagramCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// configFilePath returns --config, or the user config file when it exists,
// or "" for the defaults.
func (c *CLI) configFilePath() string {
	if c.configPath != "" {
		return c.configPath
	}
	return userConfigFile()
}

// loadConfig loads and validates the config file chosen by configFilePath.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	path := c.configFilePath()
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, "", err
	}
	c.applyLogLevel(cfg)
	return cfg, path, nil
}

// applyLogLevel lowers the logger level when the config asks for more detail
// than the flags did.
func (c *CLI) applyLogLevel(cfg *config.Config) {
	if lvl := cfg.LogLevel(); c.Logger.GetLevel() > lvl {
		c.SetLogLevel(lvl)
	}
}

// userConfigFile returns the user config file if it exists, else "".
func userConfigFile() string {
	dir, err := configDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, configFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/designpanel/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
