// Package core implements the four node kinds that plug into the grid: the
// compute node interpreter and the four I/O node variants, all sharing the
// port/transfer protocol defined in package cgra.
package core

import (
	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/number"
)

// neighbors holds the (at most) four directional links every node kind
// carries. Links are non-owning: the grid is the sole owner of nodes.
type neighbors struct {
	links map[cgra.Direction]cgra.Node
}

func newNeighbors() neighbors {
	return neighbors{links: make(map[cgra.Direction]cgra.Node, 4)}
}

// SetNeighbor implements part of cgra.Node.
func (n *neighbors) SetNeighbor(dir cgra.Direction, node cgra.Node) {
	n.links[dir] = node
}

func (n *neighbors) neighbor(dir cgra.Direction) (cgra.Node, bool) {
	node, ok := n.links[dir]
	return node, ok
}

// portState is the DirectionGiving state machine (spec §3, §4.2) that
// compute nodes embed. The two console-in nodes keep their own offer
// bookkeeping (sourceNode, io.go), and console-out nodes never offer, so
// neither embeds it.
type portState struct {
	give    cgra.Giving
	giveDir cgra.Direction

	hasGivingTo bool
	givingTo    cgra.Direction

	hasValue bool
	value    number.Number
}

func (p *portState) Give() cgra.Giving { return p.give }

func (p *portState) GiveDirection() cgra.Direction { return p.giveDir }

func (p *portState) GivingTo() (cgra.Direction, bool) {
	return p.givingTo, p.hasGivingTo
}

func (p *portState) SetGivingTo(dir cgra.Direction) {
	p.givingTo = dir
	p.hasGivingTo = true
}

func (p *portState) TakeGiveValue() number.Number {
	v := p.value
	p.hasValue = false
	p.value = number.Number{}
	return v
}

func (p *portState) stage(v number.Number) {
	p.hasValue = true
	p.value = v
}

func (p *portState) clearGiving() {
	p.give = cgra.GivingNone
	p.hasGivingTo = false
}
