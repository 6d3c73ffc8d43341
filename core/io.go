package core

import (
	"strings"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/console"
	"github.com/sarchlab/tis100/number"
)

// sink nodes (console_out, number_console_out) never offer a value: Give
// is always None, and the give/giving_to/take-value side of cgra.Node is
// a fixed no-op surface that every sink embeds.
type sinkPort struct{}

func (sinkPort) Give() cgra.Giving                   { return cgra.GivingNone }
func (sinkPort) GiveDirection() cgra.Direction        { return cgra.Up }
func (sinkPort) GivingTo() (cgra.Direction, bool)     { return cgra.Up, false }
func (sinkPort) SetGivingTo(cgra.Direction)           {}
func (sinkPort) TakeGiveValue() number.Number         { panic("tis100: sink node never gives a value") }
func (sinkPort) HandleGive()                          {}
func (sinkPort) PostHandleGive() (cgra.Position, bool) { return cgra.Position{}, false }
func (sinkPort) PostPostHandleGive()                  {}

// ByteOutNode is the console_out node: each tick it reads from all four
// neighbors (spec §4.4) and prints consumed values in [0,256) as raw
// bytes, silently dropping anything outside that range.
type ByteOutNode struct {
	neighbors
	sinkPort

	position cgra.Position
	sink     console.ByteSink
}

// NewByteOutNode builds a console_out node writing to sink.
func NewByteOutNode(position cgra.Position, sink console.ByteSink) *ByteOutNode {
	return &ByteOutNode{neighbors: newNeighbors(), position: position, sink: sink}
}

// Position implements cgra.Node.
func (n *ByteOutNode) Position() cgra.Position { return n.position }

// Step implements cgra.Node.
func (n *ByteOutNode) Step() {
	for _, dir := range cgra.Directions() {
		neighbor, ok := n.neighbor(dir)
		if !ok {
			continue
		}
		v, ok := cgra.ReadFrom(dir, neighbor)
		if !ok {
			continue
		}
		b := v.Value()
		if b >= 0 && b < 256 {
			n.sink.WriteByte(byte(b))
		}
	}
}

// NumberOutNode is the number_console_out node: identical reader
// behavior to ByteOutNode, printing each consumed value as a decimal
// line instead of a raw byte (spec §4.4).
type NumberOutNode struct {
	neighbors
	sinkPort

	position cgra.Position
	sink     console.LineSink
}

// NewNumberOutNode builds a number_console_out node writing to sink.
func NewNumberOutNode(position cgra.Position, sink console.LineSink) *NumberOutNode {
	return &NumberOutNode{neighbors: newNeighbors(), position: position, sink: sink}
}

// Position implements cgra.Node.
func (n *NumberOutNode) Position() cgra.Position { return n.position }

// Step implements cgra.Node.
func (n *NumberOutNode) Step() {
	for _, dir := range cgra.Directions() {
		neighbor, ok := n.neighbor(dir)
		if !ok {
			continue
		}
		v, ok := cgra.ReadFrom(dir, neighbor)
		if !ok {
			continue
		}
		n.sink.WriteLine(console.FormatInt(int(v.Value())))
	}
}

// sourceNode is the give/giving_to bookkeeping shared by ByteInNode and
// NumberInNode: both start (and, after every handoff, reset) at
// DirectionGiving::Any, and both produce their value lazily, only once a
// neighbor has actually registered interest.
//
// The underlying read happens in postHandleGive, not in TakeGiveValue: a
// source that has hit EOF must never transition to Given, because
// cgra.ReadFrom's GivingGiven case has no way to report a read failure
// back to the caller, and a fabricated zero value would otherwise be
// forwarded downstream for up to a tick before Grid.Halted notices the
// error. Declining the handoff instead leaves the requesting neighbor
// permanently blocked, which Halted catches on the very next poll.
type sourceNode struct {
	give        cgra.Giving
	hasGivingTo bool
	givingTo    cgra.Direction
	lastErr     error
	pending     number.Number
}

func newSourceNode() sourceNode {
	return sourceNode{give: cgra.GivingAny}
}

func (s *sourceNode) Give() cgra.Giving             { return s.give }
func (s *sourceNode) GiveDirection() cgra.Direction { return cgra.Up }

func (s *sourceNode) GivingTo() (cgra.Direction, bool) {
	return s.givingTo, s.hasGivingTo
}

func (s *sourceNode) SetGivingTo(dir cgra.Direction) {
	s.givingTo = dir
	s.hasGivingTo = true
}

func (s *sourceNode) HandleGive() {}

// TakeGiveValue implements cgra.Node, returning the value postHandleGive
// already produced for this handoff.
func (s *sourceNode) TakeGiveValue() number.Number { return s.pending }

func (s *sourceNode) postHandleGive(pos cgra.Position, produce func() (number.Number, error)) (cgra.Position, bool) {
	if !s.hasGivingTo {
		return cgra.Position{}, false
	}

	v, err := produce()
	if err != nil {
		s.lastErr = err
		s.hasGivingTo = false
		return cgra.Position{}, false
	}

	s.pending = v
	s.give = cgra.GivingGiven
	return pos.InDirection(s.givingTo), true
}

func (s *sourceNode) PostPostHandleGive() {
	s.give = cgra.GivingAny
	s.hasGivingTo = false
}

// Err reports the last read error (typically io.EOF) a source node hit
// while producing a value, if any.
func (s *sourceNode) Err() error { return s.lastErr }

// ByteInNode is the console_in node: yields the bytes of stdin one at a
// time, in order (spec §4.4).
type ByteInNode struct {
	neighbors
	sourceNode

	position cgra.Position
	source   console.ByteSource
}

// NewByteInNode builds a console_in node reading from source.
func NewByteInNode(position cgra.Position, source console.ByteSource) *ByteInNode {
	return &ByteInNode{neighbors: newNeighbors(), sourceNode: newSourceNode(), position: position, source: source}
}

// Position implements cgra.Node.
func (n *ByteInNode) Position() cgra.Position { return n.position }

// Step implements cgra.Node. console_in never steps.
func (n *ByteInNode) Step() {}

// PostHandleGive implements cgra.Node, pulling the next byte.
func (n *ByteInNode) PostHandleGive() (cgra.Position, bool) {
	return n.postHandleGive(n.position, func() (number.Number, error) {
		b, err := n.source.ReadByte()
		if err != nil {
			return number.Zero, err
		}
		return number.From(int16(b)), nil
	})
}

// NumberInNode is the number_console_in node: reads and parses one
// decimal integer line per requested value (spec §4.4). It prints no
// prompt before reading; a line that does not parse is reported through
// sink and the next line is read.
type NumberInNode struct {
	neighbors
	sourceNode

	position cgra.Position
	source   console.LineSource
	sink     console.LineSink // re-prompt message target; nil is silent
}

// NewNumberInNode builds a number_console_in node reading from source. sink
// may be nil, in which case invalid-input messages are dropped rather than
// printed.
func NewNumberInNode(position cgra.Position, source console.LineSource, sink console.LineSink) *NumberInNode {
	return &NumberInNode{neighbors: newNeighbors(), sourceNode: newSourceNode(), position: position, source: source, sink: sink}
}

// Position implements cgra.Node.
func (n *NumberInNode) Position() cgra.Position { return n.position }

// Step implements cgra.Node. number_console_in never steps.
func (n *NumberInNode) Step() {}

// PostHandleGive implements cgra.Node, reading and parsing lines until it
// gets a valid integer or the source itself fails.
func (n *NumberInNode) PostHandleGive() (cgra.Position, bool) {
	return n.postHandleGive(n.position, func() (number.Number, error) {
		for {
			line, err := n.source.ReadLine()
			if err != nil {
				return number.Zero, err
			}

			v, err := number.Parse(strings.TrimSpace(line))
			if err != nil {
				if n.sink != nil {
					n.sink.WriteLine("Please enter a valid integer")
				}
				continue
			}
			return v, nil
		}
	})
}
