package cgra

import "github.com/sarchlab/tis100/number"

// Giving is the four-valued tag every node's port carries.
type Giving int

const (
	// GivingNone means the node has nothing staged to offer.
	GivingNone Giving = iota
	// GivingAny means the node is offering its pending value to whichever
	// neighbor claims it first, tie-broken by direction order.
	GivingAny
	// GivingDirection means the node is offering only towards one neighbor.
	GivingDirection
	// GivingGiven means a reader has claimed the offer; the value is
	// available through TakeGiveValue until the reader takes it.
	GivingGiven
)

func (g Giving) String() string {
	switch g {
	case GivingNone:
		return "None"
	case GivingAny:
		return "Any"
	case GivingDirection:
		return "Direction"
	case GivingGiven:
		return "Given"
	default:
		return "Invalid"
	}
}

// Node is the capability every grid occupant exposes to the scheduler and
// to its neighbors. Compute nodes and the four I/O node kinds all
// implement it; the scheduler never type-switches on the concrete kind.
type Node interface {
	Position() Position
	SetNeighbor(dir Direction, n Node)

	// Give reports the current offer state.
	Give() Giving
	// GiveDirection reports the direction an offer is restricted to; only
	// meaningful when Give() == GivingDirection.
	GiveDirection() Direction
	// GivingTo reports the neighbor direction bound to the current offer,
	// once a reader has registered interest.
	GivingTo() (Direction, bool)
	// SetGivingTo records dir as the neighbor bound to the current offer,
	// replacing any direction recorded before. The tie-break (keep the
	// smaller direction) is applied by ReadFrom/ReadAny, which only call it
	// when dir wins.
	SetGivingTo(dir Direction)
	// TakeGiveValue consumes and clears the pending value. Only valid to
	// call when Give() == GivingGiven.
	TakeGiveValue() number.Number

	// Step advances the node's own local state by one tick (phase A):
	// a compute node attempts one instruction; an I/O writer node polls
	// its neighbors; an I/O reader node does nothing.
	Step()
	// HandleGive commits a staged write into an offer (phase B).
	HandleGive()
	// PostHandleGive completes a claimed transfer (phase C): if a reader
	// has registered, flips the offer to Given and returns the reader's
	// position so the scheduler can re-step it within the same tick.
	PostHandleGive() (Position, bool)
	// PostPostHandleGive clears the offer after the reader has consumed
	// the value (end of phase C for this node).
	PostPostHandleGive()
}
