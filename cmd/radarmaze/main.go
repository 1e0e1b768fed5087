// Command radarmaze rasterizes maze descriptions, runs headless
// explorations and serves explorer sessions over HTTP.
//
//	radarmaze build   -maze room.yaml [-resolution 5] [-format text|binary|preview] [-o out]
//	radarmaze explore -maze room.yaml [-range 30] [-angle-step 3] [-max-steps 100000] [-exit]
//	radarmaze serve   [-config radarmaze.yaml] [-env .env] [-maze room.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/radarmaze/config"
	"github.com/katalvlaran/radarmaze/explorer"
	"github.com/katalvlaran/radarmaze/mazefile"
	"github.com/katalvlaran/radarmaze/server"
)

var errUsage = errors.New("usage: radarmaze build|explore|serve [flags]")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "build":
		return runBuild(args[1:], stdout)
	case "explore":
		return runExplore(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stderr)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func runBuild(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	mazePath := fs.String("maze", "", "maze description (JSON or YAML)")
	resolution := fs.Float64("resolution", 0, "scale factor; 0 uses the document's")
	format := fs.String("format", "text", "output format: text, binary or preview")
	out := fs.String("o", "", "output file; stdout when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mazePath == "" {
		return fmt.Errorf("%w: build needs -maze", errUsage)
	}

	desc, err := mazefile.Load(*mazePath)
	if err != nil {
		return err
	}
	grid, start, err := desc.Build(*resolution)
	if err != nil {
		return err
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "text":
		err = grid.WriteText(w)
	case "binary":
		err = grid.WriteBinary(w)
	case "preview":
		fmt.Fprintf(w, "%dx%d, start %v, %d walls\n", grid.Height(), grid.Width(), start, grid.CountOccupied())
		_, err = io.WriteString(w, grid.Preview(60, 120))
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}

	return err
}

func runExplore(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	mazePath := fs.String("maze", "", "maze description (JSON or YAML)")
	resolution := fs.Float64("resolution", 0, "scale factor; 0 uses the document's")
	rng := fs.Int("range", explorer.DefaultRadarRange, "radar range in cells")
	angleStep := fs.Int("angle-step", explorer.DefaultAngleStep, "degrees between rays")
	threshold := fs.Int("exit-threshold", explorer.DefaultExitThreshold, "minimum distance from start to an exit")
	maxSteps := fs.Int("max-steps", 100000, "step budget")
	toExit := fs.Bool("exit", false, "navigate to the nearest exit after exploring")
	verbose := fs.Bool("v", false, "log state transitions")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mazePath == "" {
		return fmt.Errorf("%w: explore needs -maze", errUsage)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	desc, err := mazefile.Load(*mazePath)
	if err != nil {
		return err
	}
	grid, start, err := desc.Build(*resolution)
	if err != nil {
		return err
	}
	e, err := explorer.New(grid, start,
		explorer.WithRadarRange(*rng),
		explorer.WithAngleStep(*angleStep),
		explorer.WithExitThreshold(*threshold),
		explorer.WithLogger(logger))
	if err != nil {
		return err
	}

	if err = e.StartExploration(); err != nil {
		return err
	}
	if _, err = e.Run(*maxSteps); err != nil {
		return err
	}
	snap := e.Snapshot()
	fmt.Fprintf(stdout, "grid %dx%d, start %v\n", grid.Height(), grid.Width(), start)
	fmt.Fprintf(stdout, "state %s after %d moves, at %v\n", snap.State, snap.Moves, snap.Position)
	fmt.Fprintf(stdout, "explored %d cells, %d frontiers left\n", snap.ExploredCount, snap.Frontiers)
	fmt.Fprintf(stdout, "exits %d: %v\n", len(snap.Exits), snap.Exits)

	if !*toExit || snap.State != explorer.Done || len(snap.Exits) == 0 {
		return nil
	}
	path, err := e.GoToNearestExit()
	if err != nil {
		return err
	}
	if path == nil {
		fmt.Fprintln(stdout, "no exit reachable")
		return nil
	}
	if _, err = e.Run(path.Len()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exit path %d cells: %v\n", path.Len(), path)
	fmt.Fprintf(stdout, "at %v after %d moves\n", e.Position(), e.Moves())

	return nil
}

func runServe(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "YAML config file")
	envFile := fs.String("env", ".env", "dotenv file; ignored when absent")
	mazePath := fs.String("maze", "", "default maze; overrides the config")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath, *envFile)
	if err != nil {
		return err
	}
	if *mazePath != "" {
		cfg.Maze.Path = *mazePath
	}
	logger := cfg.Logger(stderr)

	var desc *mazefile.Description
	if cfg.Maze.Path != "" {
		if desc, err = mazefile.Load(cfg.Maze.Path); err != nil {
			return err
		}
		logger.Info("default maze loaded", slog.String("path", cfg.Maze.Path), slog.Int("segments", len(desc.Segments)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, logger, desc).ListenAndServe(ctx)
}
