package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/reportview/pkg/logger"
	"github.com/devicelab-dev/reportview/pkg/report"
)

var renderCommand = &cli.Command{
	Name:      "render",
	Usage:     "Produce an HTML report from a test manifest",
	ArgsUsage: "<manifest.yaml|manifest.json>",
	Description: `Render a test manifest into a self-contained HTML report.

Image paths in the manifest are resolved against the manifest's directory
and embedded as data URLs unless --embed-assets=false.

Examples:
  reportview render results.yaml
  reportview render -o out/report.html --title "Nightly" results.json`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file (default: <manifest>.html)",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "Report title (overrides manifest and config)",
		},
		&cli.BoolFlag{
			Name:  "embed-assets",
			Usage: "Inline image files as data URLs",
			Value: true,
		},
	},
	Action: runRender,
}

func runRender(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one manifest file is required")
	}
	setupLogging(c, false)

	manifestPath := c.Args().First()
	m, err := report.ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	cfg, err := loadWorkspaceConfig(c)
	if err != nil {
		return err
	}

	title := c.String("title")
	if title == "" && m.Title == "" {
		title = cfg.Title
	}

	out := c.String("output")
	if out == "" {
		out = strings.TrimSuffix(manifestPath, filepath.Ext(manifestPath)) + ".html"
	}

	logger.Info("rendering %d tests from %s", len(m.Tests), manifestPath)
	err = report.GenerateHTML(m, report.HTMLConfig{
		OutputPath:  out,
		Title:       title,
		EmbedAssets: c.Bool("embed-assets"),
		AssetDir:    filepath.Dir(manifestPath),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Report: %s\n", out)
	return nil
}
