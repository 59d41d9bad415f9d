package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/reportview/pkg/jsengine"
)

var scriptCommand = &cli.Command{
	Name:      "script",
	Usage:     "Run a JavaScript file against a report",
	ArgsUsage: "<report.html> <script.js>",
	Description: `Run a script with a "viewer" global bound to the loaded report.
Console output is printed; with -o the resulting document is written.

Examples:
  reportview script report.html check.js
  reportview script -o report.html report.html collapse-passing.js`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the resulting document here",
		},
	},
	Action: runScript,
}

func runScript(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("a report file and a script file are required")
	}
	setupLogging(c, false)

	app, err := loadReport(c.Args().Get(0))
	if err != nil {
		return err
	}
	src, err := os.ReadFile(c.Args().Get(1)) //#nosec G304 -- user-provided script
	if err != nil {
		return err
	}

	engine := jsengine.New(app)
	defer engine.Close()

	runErr := engine.RunScript(string(src))
	for _, line := range engine.Console() {
		fmt.Fprintln(c.App.Writer, line)
	}
	if runErr != nil {
		return runErr
	}

	if out := c.String("output"); out != "" {
		return writeReport(c, app, out)
	}
	return nil
}
