// Package main is the entry point for the rewind plan replayer.
package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/dshills/rewind/internal/replay"
	"github.com/dshills/rewind/script"
)

func main() {
	app := &cli.App{
		Name:  "rewind-replay",
		Usage: "Execute a scripted command plan and prove it unwinds",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "defs",
				Usage: "Lua file registering command definitions (repeatable)",
			},
			&cli.StringFlag{
				Name:     "plan",
				Usage:    "Lua file setting the seed and plan globals (required)",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log output file (defaults to stderr)",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "History limit, 0 for unbounded",
			},
			&cli.BoolFlag{
				Name:  "undo-all",
				Usage: "Unwind the full history after the plan",
			},
			&cli.BoolFlag{
				Name:  "verify",
				Usage: "Check the unwound document against the seed (implies --undo-all)",
			},
			&cli.DurationFlag{
				Name:  "call-timeout",
				Usage: "Bound each Lua call (e.g., 5s)",
			},
		},
		Action: runReplay,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReplay(c *cli.Context) error {
	logger, err := buildLogger(c.String("log-file"))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	hostOpts := []script.HostOption{script.WithLogger(logger)}
	if d := c.Duration("call-timeout"); d > 0 {
		hostOpts = append(hostOpts, script.WithCallTimeout(d))
	}
	host := script.NewHost(hostOpts...)
	defer host.Close()

	for _, path := range c.StringSlice("defs") {
		if err := host.LoadFile(path); err != nil {
			return err
		}
	}
	if err := host.LoadFile(c.String("plan")); err != nil {
		return err
	}

	opts := []replay.RunnerOption{replay.WithLogger(logger)}
	if n := c.Int("limit"); n > 0 {
		opts = append(opts, replay.WithLimit(n))
	}
	if c.Bool("verify") {
		opts = append(opts, replay.WithVerify())
	} else if c.Bool("undo-all") {
		opts = append(opts, replay.WithUnwind())
	}

	report, err := replay.NewRunner(host, opts...).Run()
	if err != nil {
		return err
	}

	fmt.Printf("executed %d, undone %d\n", report.Executed, report.Undone)
	fmt.Println("final document:")
	keys := make([]string, 0, len(report.Final))
	for k := range report.Final {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %v\n", k, report.Final[k])
	}

	if c.Bool("verify") {
		if !report.Verified {
			return errors.New("verification failed: document does not match the seed")
		}
		fmt.Println("verified: document restored to the seed")
	}
	return nil
}

func buildLogger(logFile string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if logFile != "" {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	}
	return cfg.Build()
}
