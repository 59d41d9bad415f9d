package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/reportview/pkg/config"
	"github.com/devicelab-dev/reportview/pkg/logger"
	"github.com/devicelab-dev/reportview/pkg/viewer"
)

var applyCommand = &cli.Command{
	Name:      "apply",
	Usage:     "Apply view settings to a report and write the result",
	ArgsUsage: "<report.html>",
	Description: `Load a report, apply the workspace config and then the flags, and write
the resulting document. Flags override config values.

Examples:
  reportview apply --search math -o math.html report.html
  reportview apply --format svg --format pdf report.html
  reportview apply --diff-format html --image-mode blend --collapse slow-test report.html`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "search",
			Usage: "Show only tests whose name contains this text",
		},
		&cli.StringSliceFlag{
			Name:  "format",
			Usage: "Show only tests with this output format (repeatable)",
		},
		&cli.StringFlag{
			Name:  "diff-format",
			Usage: "Select this output-format tab in every report that has it",
		},
		&cli.StringFlag{
			Name:  "image-mode",
			Usage: "Image view mode for every widget (side-by-side, blend, difference)",
		},
		&cli.StringSliceFlag{
			Name:  "expand",
			Usage: "Expand these reports (repeatable)",
		},
		&cli.StringSliceFlag{
			Name:  "collapse",
			Usage: "Collapse these reports (repeatable)",
		},
	},
	Action: runApply,
}

func runApply(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one report file is required")
	}
	setupLogging(c, false)

	cfg, err := loadWorkspaceConfig(c)
	if err != nil {
		return err
	}
	mergeFlags(c, cfg)

	app, err := loadReport(c.Args().First())
	if err != nil {
		return err
	}
	if err := applyConfig(app, cfg); err != nil {
		return err
	}
	return writeReport(c, app, c.String("output"))
}

// mergeFlags copies the view flags that were set over cfg.
func mergeFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("search") {
		cfg.Search = c.String("search")
	}
	if c.IsSet("format") {
		cfg.Formats = c.StringSlice("format")
	}
	if c.IsSet("diff-format") {
		cfg.DiffFormat = c.String("diff-format")
	}
	if c.IsSet("image-mode") {
		cfg.ImageMode = c.String("image-mode")
	}
	if c.IsSet("expand") {
		cfg.Expand = c.StringSlice("expand")
	}
	if c.IsSet("collapse") {
		cfg.Collapse = c.StringSlice("collapse")
	}
}

// applyConfig drives app to the view state cfg describes, as the matching
// sequence of user events.
func applyConfig(app *viewer.App, cfg *config.Config) error {
	var events []viewer.Event
	if cfg.DiffFormat != "" {
		events = append(events, viewer.Event{Type: viewer.EventGlobalFormat, Value: cfg.DiffFormat})
	}
	if cfg.ImageMode != "" {
		events = append(events, viewer.Event{Type: viewer.EventGlobalImageMode, Value: cfg.ImageMode})
	}
	for _, f := range cfg.Formats {
		events = append(events, viewer.Event{Type: viewer.EventFilterFormat, Value: f, Checked: true})
	}
	if cfg.Search != "" {
		events = append(events, viewer.Event{Type: viewer.EventSearch, Value: cfg.Search})
	}

	for _, ev := range events {
		if err := app.Dispatch(ev); err != nil {
			return fmt.Errorf("apply %s: %w", ev.Type, err)
		}
	}

	for _, name := range cfg.Expand {
		if err := setExpanded(app, name, true); err != nil {
			return err
		}
	}
	for _, name := range cfg.Collapse {
		if err := setExpanded(app, name, false); err != nil {
			return err
		}
	}
	logger.Info("applied view: %d events, %d expanded, %d collapsed",
		len(events), len(cfg.Expand), len(cfg.Collapse))
	return nil
}

func setExpanded(app *viewer.App, name string, expanded bool) error {
	r := app.Report(name)
	if r == nil {
		return fmt.Errorf("%w: report %q", viewer.ErrUnknownTarget, name)
	}
	r.SetExpanded(expanded)
	return nil
}
