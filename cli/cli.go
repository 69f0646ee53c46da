package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "seqbench"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Micro-benchmark harness comparing sequence representations",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "run",
		Usage:  "Run the configured benchmark matrix and record the report",
		Action: app.run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file with the benchmark selection",
			},
			&cli.StringSliceFlag{
				Name:  "subject",
				Usage: "Subject to run (repeatable; default: all registered)",
			},
			&cli.StringSliceFlag{
				Name:  "operation",
				Usage: "Operation to run (repeatable; default: all)",
			},
			&cli.IntSliceFlag{
				Name:  "size",
				Usage: "Input size to run (repeatable; default: 1000, 10000, 100000)",
			},
			&cli.StringFlag{
				Name:  "kind",
				Usage: "Element kind: primitive-numeric or boxed-pair",
			},
			&cli.IntFlag{
				Name:  "warmup",
				Usage: "Warm-up iterations per tuple",
			},
			&cli.IntFlag{
				Name:  "iterations",
				Usage: "Measured iterations per tuple",
			},
			&cli.Int64Flag{
				Name:  "seed",
				Usage: "Workload generator seed",
			},
			&cli.BoolFlag{
				Name:  "gc-between-iterations",
				Usage: "Force a full collection before every measured iteration",
			},
			&cli.StringFlag{
				Name:  "timeout",
				Usage: "Whole-report deadline; tuples not started by then are skipped (e.g. 10m)",
			},
			&cli.BoolFlag{
				Name:  "profile",
				Usage: "Capture a CPU profile of the run as an artifact",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the machine-readable record stream instead of tables",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previous benchmark runs",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:            "view",
		Usage:           "View a recorded run from history",
		ArgsUsage:       "[ID|INDEX]",
		Action:          app.view,
		SkipFlagParsing: true,
		Description: `View a recorded benchmark run from history.

Arguments:
  0           View last run (default)
  -1          View 2nd last run
  -2          View 3rd last run
  <hex-id>    View run matching the hex ID prefix

Examples:
  seqbench view           # View last run's report
  seqbench view -1        # View 2nd last run's report
  seqbench view abc123    # View run with ID starting with abc123
  seqbench view 0 -- -top # Open the run's CPU profile in go tool pprof

Any arguments after the ID are passed to go tool pprof against the
run's CPU profile artifact.`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
