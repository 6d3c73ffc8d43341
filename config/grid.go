// Package config builds and schedules a grid of nodes: the Grid type is
// the scheduler the parser and the CLI both hand their parsed program to.
package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarchlab/tis100/cgra"
)

// haltable is implemented by I/O source nodes that can observe a read
// error (typically io.EOF) while lazily producing a value. The Grid polls
// it after every tick to decide whether Run should stop cleanly.
type haltable interface {
	Err() error
}

// Grid owns every node and drives the three-phase tick (spec §4.3, §4.5).
type Grid struct {
	nodes  map[cgra.Position]cgra.Node
	logger *slog.Logger
	ticks  int
}

// GridBuilder builds a Grid.
type GridBuilder struct {
	logger *slog.Logger
}

// WithLogger sets the structured logger used for tick-level tracing. A nil
// logger (the zero value) falls back to slog.Default().
func (b GridBuilder) WithLogger(logger *slog.Logger) GridBuilder {
	b.logger = logger
	return b
}

// Build creates an empty Grid.
func (b GridBuilder) Build() *Grid {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Grid{nodes: make(map[cgra.Position]cgra.Node), logger: logger}
}

// AddNode places n on the grid, cross-linking it with any already-placed
// neighbors in all four directions. It panics if a node already occupies
// n's position (spec §4.5).
func (g *Grid) AddNode(n cgra.Node) {
	pos := n.Position()
	if _, exists := g.nodes[pos]; exists {
		panic(fmt.Sprintf("config: a node already occupies position %s", pos))
	}

	for _, dir := range cgra.Directions() {
		neighborPos := pos.InDirection(dir)
		neighbor, ok := g.nodes[neighborPos]
		if !ok {
			continue
		}
		neighbor.SetNeighbor(dir.Opposite(), n)
		n.SetNeighbor(dir, neighbor)
	}

	g.nodes[pos] = n
}

// Ticks reports how many times Step has run.
func (g *Grid) Ticks() int { return g.ticks }

// Step runs exactly one tick over every node: phase A (Step), phase B
// (HandleGive), and phase C (PostHandleGive / re-tick the partner /
// PostPostHandleGive), in that order. Node visitation order within a
// phase does not affect the result: the tie-break rule in package cgra
// makes interest registration commutative across readers, so a plain map
// range (order is unspecified, as in the reference's own hash map) is
// safe here.
func (g *Grid) Step() {
	g.ticks++
	tickLog := g.logger.With(slog.Int("tick", g.ticks))

	for _, n := range g.nodes {
		n.Step()
	}
	tickLog.Debug("phase A complete")

	for _, n := range g.nodes {
		n.HandleGive()
	}
	tickLog.Debug("phase B complete")

	for _, n := range g.nodes {
		pos, ok := n.PostHandleGive()
		if !ok {
			continue
		}
		if partner, ok := g.nodes[pos]; ok {
			partner.Step()
		}
		n.PostPostHandleGive()
	}
	tickLog.Debug("phase C complete")
}

// Halted reports whether any I/O source node has hit a read error
// (typically io.EOF), which the CLI run loop treats as a clean shutdown
// signal (spec.md §6, exit code 0).
func (g *Grid) Halted() error {
	for _, n := range g.nodes {
		h, ok := n.(haltable)
		if !ok {
			continue
		}
		if err := h.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Run steps the grid until ctx is cancelled, a node halts (Halted returns
// non-nil), or maxTicks is reached (0 means unbounded). It returns the
// halting error, if any was observed, or ctx.Err() on cancellation.
func (g *Grid) Run(ctx context.Context, maxTicks int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		g.Step()

		if err := g.Halted(); err != nil {
			return err
		}

		if maxTicks > 0 && g.ticks >= maxTicks {
			return nil
		}
	}
}
