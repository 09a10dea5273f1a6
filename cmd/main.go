package main

import (
	"context"
	"os"

	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Global flags are read by [Runner.Configure].
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tunebox",
		Usage:   "Music library with local accounts, favorites and listening history",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database path (overrides database.path)",
			},
			&cli.BoolFlag{
				Name:  "ephemeral",
				Usage: "Use an in-memory database that is discarded on exit",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.Configure,
		Commands: r.register(),
		Writer:   r.output,
	}
}
