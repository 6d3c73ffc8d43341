package core

import (
	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/instr"
	"github.com/sarchlab/tis100/number"
)

// ComputeNode interprets a short instruction program against two scalar
// registers, cooperating with the port protocol for blocking reads and
// writes. It implements cgra.Node.
type ComputeNode struct {
	neighbors
	portState

	position     cgra.Position
	instructions []instr.Instruction
	ptr          int

	accumulator number.Number
	backup      number.Number
	last        *cgra.Direction
}

// ComputeNodeBuilder builds a ComputeNode.
type ComputeNodeBuilder struct {
	position     cgra.Position
	instructions []instr.Instruction
	accumulator  number.Number
	backup       number.Number
}

// WithPosition sets the node's grid position.
func (b ComputeNodeBuilder) WithPosition(p cgra.Position) ComputeNodeBuilder {
	b.position = p
	return b
}

// WithInstructions sets the node's program.
func (b ComputeNodeBuilder) WithInstructions(insts []instr.Instruction) ComputeNodeBuilder {
	b.instructions = insts
	return b
}

// WithAccumulator sets the initial accumulator value.
func (b ComputeNodeBuilder) WithAccumulator(n number.Number) ComputeNodeBuilder {
	b.accumulator = n
	return b
}

// WithBackup sets the initial backup value.
func (b ComputeNodeBuilder) WithBackup(n number.Number) ComputeNodeBuilder {
	b.backup = n
	return b
}

// Build creates the ComputeNode.
func (b ComputeNodeBuilder) Build() *ComputeNode {
	return &ComputeNode{
		neighbors:    newNeighbors(),
		position:     b.position,
		instructions: b.instructions,
		accumulator:  b.accumulator,
		backup:       b.backup,
	}
}

// Position implements cgra.Node.
func (c *ComputeNode) Position() cgra.Position { return c.position }

// Accumulator returns the current accumulator value (for snapshots/tests).
func (c *ComputeNode) Accumulator() number.Number { return c.accumulator }

// Backup returns the current backup value (for snapshots/tests).
func (c *ComputeNode) Backup() number.Number { return c.backup }

// Ptr returns the current program pointer (for snapshots/tests).
func (c *ComputeNode) Ptr() int { return c.ptr }

func (c *ComputeNode) getRegister(reg instr.Register) (number.Number, bool) {
	switch reg.Kind {
	case instr.Accumulator:
		return c.accumulator, true

	case instr.Nil:
		return number.Zero, true

	case instr.DirectionReg:
		neighbor, ok := c.neighbor(reg.Direction)
		if !ok {
			return number.Number{}, false
		}
		return cgra.ReadFrom(reg.Direction, neighbor)

	case instr.Any:
		return cgra.ReadAny(c.links)

	case instr.Last:
		if c.last == nil {
			return number.Zero, true
		}
		return c.getRegister(instr.Dir(*c.last))

	default:
		return number.Number{}, false
	}
}

func (c *ComputeNode) resolve(src instr.RegisterOrNumber) (number.Number, bool) {
	if !src.IsRegister {
		return src.Number, true
	}
	return c.getRegister(src.Register)
}

// setRegister writes v into reg and reports whether the write staged a
// port offer (true) rather than completing immediately (false).
func (c *ComputeNode) setRegister(reg instr.Register, v number.Number) bool {
	switch reg.Kind {
	case instr.Accumulator:
		c.accumulator = v
		return false

	case instr.Nil:
		return false

	case instr.DirectionReg, instr.Any:
		c.stage(v)
		return true

	case instr.Last:
		if c.last != nil {
			c.stage(v)
			return true
		}
		return false

	default:
		return false
	}
}

// Step implements cgra.Node (spec §4.3, per-tick step / phase A). A value
// staged by a phase C re-step is still waiting for HandleGive, so the Move
// that produced it is not run again.
func (c *ComputeNode) Step() {
	if len(c.instructions) == 0 || c.give != cgra.GivingNone || c.hasValue {
		return
	}

	if c.ptr >= len(c.instructions) {
		c.ptr = 0
	}

	inst := c.instructions[c.ptr]
	skipAdvance := false

	switch inst.Op {
	case instr.Noop:

	case instr.Move:
		v, ok := c.resolve(inst.Src)
		if !ok {
			return
		}
		skipAdvance = c.setRegister(inst.Dst, v)

	case instr.Swap:
		c.accumulator, c.backup = c.backup, c.accumulator

	case instr.Save:
		c.backup = c.accumulator

	case instr.Add:
		v, ok := c.resolve(inst.Src)
		if !ok {
			return
		}
		c.accumulator = c.accumulator.Add(v)

	case instr.Subtract:
		v, ok := c.resolve(inst.Src)
		if !ok {
			return
		}
		c.accumulator = c.accumulator.Sub(v)

	case instr.Negate:
		c.accumulator = c.accumulator.Neg()

	case instr.Jump:
		c.ptr = inst.Target
		skipAdvance = true

	case instr.JumpEqualZero:
		if c.accumulator.IsZero() {
			c.ptr = inst.Target
			skipAdvance = true
		}

	case instr.JumpNotZero:
		if !c.accumulator.IsZero() {
			c.ptr = inst.Target
			skipAdvance = true
		}

	case instr.JumpGreaterThanZero:
		if c.accumulator.Compare(number.Zero) > 0 {
			c.ptr = inst.Target
			skipAdvance = true
		}

	case instr.JumpLessThanZero:
		if c.accumulator.Compare(number.Zero) < 0 {
			c.ptr = inst.Target
			skipAdvance = true
		}

	case instr.JumpRelative:
		v, ok := c.resolve(inst.Src)
		if !ok {
			return
		}
		skipAdvance = true
		next := c.ptr + int(v.Value())
		if next < 0 {
			next = 0
		}
		c.ptr = next
	}

	if !skipAdvance {
		c.ptr++
	}
}

// HandleGive implements cgra.Node (spec §4.3, phase B commit).
func (c *ComputeNode) HandleGive() {
	if c.give != cgra.GivingNone || !c.hasValue {
		return
	}

	// The staged value can only have come from the Move at ptr; Step left
	// ptr unchanged for exactly this reason.
	inst := c.instructions[c.ptr]
	if inst.Op != instr.Move {
		return
	}

	switch inst.Dst.Kind {
	case instr.DirectionReg:
		c.give = cgra.GivingDirection
		c.giveDir = inst.Dst.Direction
		c.ptr++

	case instr.Any:
		c.give = cgra.GivingAny
		c.ptr++

	case instr.Last:
		if c.last != nil {
			c.give = cgra.GivingDirection
			c.giveDir = *c.last
			c.ptr++
		}
	}
}

// PostHandleGive implements cgra.Node (spec §4.3, phase C release).
func (c *ComputeNode) PostHandleGive() (cgra.Position, bool) {
	if !c.hasGivingTo {
		return cgra.Position{}, false
	}

	if c.give == cgra.GivingAny {
		d := c.givingTo
		c.last = &d
	}
	c.give = cgra.GivingGiven

	return c.position.InDirection(c.givingTo), true
}

// PostPostHandleGive implements cgra.Node.
func (c *ComputeNode) PostPostHandleGive() {
	c.clearGiving()
}
