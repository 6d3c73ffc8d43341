package config

import (
	"sort"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/core"
)

// NodeSnapshot is a point-in-time, serializable view of one node (spec
// §9/diagnostics). It is a diagnostic export, never a save/restore format:
// there is no corresponding "load snapshot" operation.
type NodeSnapshot struct {
	Position cgra.Position `yaml:"position"`
	Kind     string        `yaml:"kind"`

	Accumulator *int16 `yaml:"accumulator,omitempty"`
	Backup      *int16 `yaml:"backup,omitempty"`
	Ptr         *int   `yaml:"ptr,omitempty"`

	Give     string  `yaml:"give"`
	GivingTo *string `yaml:"giving_to,omitempty"`
}

// Snapshot captures every node's position, kind, registers (compute
// nodes only), and port state. Nodes are ordered by position (Y then X)
// so two snapshots of the same grid state compare equal structurally.
func (g *Grid) Snapshot() []NodeSnapshot {
	out := make([]NodeSnapshot, 0, len(g.nodes))
	for pos, n := range g.nodes {
		out = append(out, snapshotNode(pos, n))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position.Y != out[j].Position.Y {
			return out[i].Position.Y < out[j].Position.Y
		}
		return out[i].Position.X < out[j].Position.X
	})
	return out
}

func snapshotNode(pos cgra.Position, n cgra.Node) NodeSnapshot {
	s := NodeSnapshot{
		Position: pos,
		Give:     n.Give().String(),
	}

	if dir, ok := n.GivingTo(); ok {
		name := dir.Name()
		s.GivingTo = &name
	}

	switch c := n.(type) {
	case *core.ComputeNode:
		s.Kind = "compute"
		acc := c.Accumulator().Value()
		bak := c.Backup().Value()
		ptr := c.Ptr()
		s.Accumulator = &acc
		s.Backup = &bak
		s.Ptr = &ptr
	case *core.ByteInNode:
		s.Kind = "console_in"
	case *core.ByteOutNode:
		s.Kind = "console_out"
	case *core.NumberInNode:
		s.Kind = "number_console_in"
	case *core.NumberOutNode:
		s.Kind = "number_console_out"
	default:
		s.Kind = "unknown"
	}

	return s
}
