// Command tis100 runs a TIS assembly program on the grid emulator.
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

	"github.com/tebeka/atexit"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/tis100/api"
	"github.com/sarchlab/tis100/debugger"
	"github.com/sarchlab/tis100/parse"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

func main() {
	debug := flag.Bool("debug", false, "run the interactive step-debugger instead of the free-running loop")
	dumpState := flag.String("dump-state", "", "write a YAML snapshot of final grid state to this path")
	logLevel := flag.String("log-level", "warn", "diagnostic log level: debug|info|warn|error")
	maxTicks := flag.Int("max-ticks", 0, "stop after this many ticks (0 = unbounded)")
	flag.Parse()

	if err := run(*debug, *dumpState, *logLevel, *maxTicks, flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func run(debug bool, dumpStatePath, logLevel string, maxTicks int, args []string) error {
	level, ok := logLevels[logLevel]
	if !ok {
		return fmt.Errorf("tis100: invalid --log-level %q", logLevel)
	}
	if maxTicks < 0 {
		return fmt.Errorf("tis100: --max-ticks must be non-negative, got %d", maxTicks)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if len(args) < 1 {
		return errors.New("tis100: no program path provided")
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("tis100: %w", err)
	}

	defs, err := parse.Parse(string(source))
	if err != nil {
		logger.Error("parse failed", slog.Any("err", err))
		return err
	}

	driver, err := api.DriverBuilder{}.
		WithLogger(logger).
		WithStdin(os.Stdin).
		WithStdout(os.Stdout).
		Build(defs)
	if err != nil {
		logger.Error("failed to assemble grid", slog.Any("err", err))
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	var runErr error
	if debug {
		runErr = runDebugger(driver)
	} else {
		runErr = driver.Run(ctx, maxTicks)
	}

	if dumpStatePath != "" {
		if err := dumpState(driver, dumpStatePath); err != nil {
			return err
		}
	}

	return exitError(runErr)
}

func runDebugger(d *api.Driver) error {
	return debugger.Run(d.Grid())
}

// exitError translates Run's halting error into the CLI's exit-code
// contract: a clean EOF or a cancelled context is success, anything else
// is a failure to report.
func exitError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, io.EOF):
		return nil
	default:
		return err
	}
}

func dumpState(d *api.Driver, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tis100: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	return enc.Encode(d.Snapshot())
}
