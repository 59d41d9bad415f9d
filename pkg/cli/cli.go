// Package cli provides the command-line interface for reportview.
package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/reportview/pkg/config"
	"github.com/devicelab-dev/reportview/pkg/logger"
	"github.com/devicelab-dev/reportview/pkg/viewer"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Log debug output to stderr",
		EnvVars: []string{"REPORTVIEW_VERBOSE"},
	},
	&cli.StringFlag{
		Name:    "log-file",
		Usage:   "Append logs to this file",
		EnvVars: []string{"REPORTVIEW_LOG_FILE"},
	},
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to .reportview.yaml (default: look in the current directory)",
		EnvVars: []string{"REPORTVIEW_CONFIG"},
	},
}

// Execute runs the CLI.
func Execute() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "reportview",
		Usage:   "Render and drive interactive test reports",
		Version: Version,
		Description: `reportview produces a self-contained HTML report from a test manifest
and drives its viewer controls (tabs, filters, image comparison) without a browser.

Examples:
  reportview render -o report.html results.yaml
  reportview apply --search math --diff-format svg -o filtered.html report.html
  reportview script report.html check.js
  reportview serve --listen 127.0.0.1:8787 report.html`,
		Flags: GlobalFlags,
		Commands: []*cli.Command{
			renderCommand,
			applyCommand,
			scriptCommand,
			serveCommand,
		},
		After: func(c *cli.Context) error {
			logger.Close()
			return nil
		},
	}
}

// Helpers to read a flag from the current or a parent context. Global flags
// live in the root context when a subcommand runs.
func getString(c *cli.Context, name string) string {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.String(name)
		}
	}
	return c.String(name)
}

func getBool(c *cli.Context, name string) bool {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx.Bool(name)
		}
	}
	return c.Bool(name)
}

// setupLogging routes the logger per the global flags. With useDefault, logs
// go to the default log file when neither flag is given.
func setupLogging(c *cli.Context, useDefault bool) {
	if getBool(c, "verbose") {
		logger.SetLevel(logger.LevelDebug)
	}

	logPath := getString(c, "log-file")
	switch {
	case logPath != "":
	case getBool(c, "verbose"):
		logger.SetOutput(os.Stderr)
		return
	case useDefault:
		logPath = config.DefaultLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return
		}
	default:
		return
	}

	if err := logger.Init(logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize logger: %v\n", err)
	}
}

// loadWorkspaceConfig loads --config, or .reportview.yaml from the working
// directory.
func loadWorkspaceConfig(c *cli.Context) (*config.Config, error) {
	if path := getString(c, "config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.LoadFromDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadReport(path string) (*viewer.App, error) {
	f, err := os.Open(path) //#nosec G304 -- user-provided report
	if err != nil {
		return nil, err
	}
	defer f.Close()

	app, err := viewer.Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return app, nil
}

// writeReport renders app to path, or to stdout for "" and "-".
func writeReport(c *cli.Context, app *viewer.App, path string) error {
	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if path == "" || path == "-" {
		_, err := c.App.Writer.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //#nosec G306 -- report is meant to be shared
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("wrote %s", path)
	return nil
}
