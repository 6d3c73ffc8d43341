// Package api is the CLI-facing collaborator: it turns parsed node
// definitions and a pair of I/O streams into a runnable Grid.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/config"
	"github.com/sarchlab/tis100/console"
	"github.com/sarchlab/tis100/core"
	"github.com/sarchlab/tis100/parse"
)

// Driver owns an assembled Grid and drives its run loop.
type Driver struct {
	grid *config.Grid
}

// DriverBuilder builds a Driver from parsed node definitions, wiring every
// console node kind the program uses to the configured stdin/stdout.
type DriverBuilder struct {
	logger *slog.Logger
	stdin  io.Reader
	stdout io.Writer
}

// WithLogger sets the structured logger the Grid traces ticks through.
func (b DriverBuilder) WithLogger(logger *slog.Logger) DriverBuilder {
	b.logger = logger
	return b
}

// WithStdin sets the stream console_in/number_console_in nodes read from.
func (b DriverBuilder) WithStdin(r io.Reader) DriverBuilder {
	b.stdin = r
	return b
}

// WithStdout sets the stream console_out/number_console_out nodes write to.
func (b DriverBuilder) WithStdout(w io.Writer) DriverBuilder {
	b.stdout = w
	return b
}

// Build assembles defs into a Grid. A position claimed by two node
// definitions is a placement conflict (spec.md §7); Build recovers the
// resulting panic from config.Grid.AddNode and reports it as an error.
func (b DriverBuilder) Build(defs []parse.NodeDef) (driver *Driver, err error) {
	defer func() {
		if r := recover(); r != nil {
			driver = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	g := config.GridBuilder{}.WithLogger(b.logger).Build()

	byteSource := console.NewStdinBytes(b.stdin)
	lineSource := console.NewStdinLines(b.stdin)
	byteSink := console.NewStdoutBytes(b.stdout)
	lineSink := console.NewStdoutLines(b.stdout)

	for _, def := range defs {
		g.AddNode(buildNode(def, byteSource, lineSource, byteSink, lineSink))
	}

	return &Driver{grid: g}, nil
}

func buildNode(
	def parse.NodeDef,
	byteSource *console.StdinBytes,
	lineSource *console.StdinLines,
	byteSink *console.StdoutBytes,
	lineSink *console.StdoutLines,
) cgra.Node {
	switch def.Kind {
	case parse.KindConsoleIn:
		return core.NewByteInNode(def.Position, byteSource)
	case parse.KindConsoleOut:
		return core.NewByteOutNode(def.Position, byteSink)
	case parse.KindNumberConsoleIn:
		return core.NewNumberInNode(def.Position, lineSource, lineSink)
	case parse.KindNumberConsoleOut:
		return core.NewNumberOutNode(def.Position, lineSink)
	default:
		b := core.ComputeNodeBuilder{}.
			WithPosition(def.Position).
			WithInstructions(def.Instructions)
		if def.Accumulator != nil {
			b = b.WithAccumulator(*def.Accumulator)
		}
		if def.Backup != nil {
			b = b.WithBackup(*def.Backup)
		}
		return b.Build()
	}
}

// Run steps the grid until ctx is cancelled, an input source halts, or
// the configured tick bound is reached.
func (d *Driver) Run(ctx context.Context, maxTicks int) error {
	return d.grid.Run(ctx, maxTicks)
}

// Snapshot reports the current state of every node, for --dump-state.
func (d *Driver) Snapshot() []config.NodeSnapshot {
	return d.grid.Snapshot()
}

// Grid exposes the underlying grid, for the interactive debugger which
// needs to single-step (Grid.Step) rather than free-run.
func (d *Driver) Grid() *config.Grid {
	return d.grid
}
