// Package parse turns TIS assembly source text into the node definitions
// the scheduler consumes. It never constructs a Grid itself; callers feed
// its output to config.Grid/core constructors.
package parse

import (
	"fmt"
	"strings"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/instr"
	"github.com/sarchlab/tis100/number"
)

// SyntaxError is returned for any malformed source: a bad token, a
// redefined or undefined label, a trailing label, or a missing/duplicated
// position in a settings line. Line is a 1-based source line number: the
// offending body line for instruction and label-definition errors, and
// the node block's header line for settings errors and undefined labels.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Kind tags the shape of a parsed node definition.
type Kind int

const (
	KindCompute Kind = iota
	KindConsoleIn
	KindConsoleOut
	KindNumberConsoleIn
	KindNumberConsoleOut
)

// NodeDef is one parsed node block: a position, a kind, optional initial
// registers (compute only), and a resolved instruction list (compute
// only). Special I/O kinds never carry Accumulator/Backup/Instructions.
type NodeDef struct {
	Position cgra.Position
	Kind     Kind

	Accumulator *number.Number
	Backup      *number.Number

	Instructions []instr.Instruction
}

var specialKinds = map[string]Kind{
	"console_in":         KindConsoleIn,
	"console_out":        KindConsoleOut,
	"number_console_in":  KindNumberConsoleIn,
	"number_console_out": KindNumberConsoleOut,
}

// Parse parses a whole source file into its node definitions, in the
// order their blocks appear. It never partially constructs a grid: the
// first syntax error encountered aborts parsing for the whole file.
func Parse(source string) ([]NodeDef, error) {
	lines := strings.Split(strings.ToLower(source), "\n")

	var defs []NodeDef
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], "@") {
			i++
			continue
		}

		headerLine := i + 1
		settings := stripComment(lines[i][1:])
		i++

		bodyStart := i
		for i < len(lines) && !strings.HasPrefix(lines[i], "@") {
			i++
		}
		body := lines[bodyStart:i]

		def, err := parseBlock(headerLine, settings, body)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return defs, nil
}

func parseBlock(headerLine int, settings string, body []string) (NodeDef, error) {
	pos, acc, bak, special, err := parseSettings(headerLine, settings)
	if err != nil {
		return NodeDef{}, err
	}

	if special != "" {
		if acc != nil {
			return NodeDef{}, &SyntaxError{Line: headerLine, Msg: "special nodes don't have an accumulator"}
		}
		if bak != nil {
			return NodeDef{}, &SyntaxError{Line: headerLine, Msg: "special nodes don't have a backup"}
		}
		return NodeDef{Position: pos, Kind: specialKinds[special]}, nil
	}

	instructions, err := parseCode(headerLine, body)
	if err != nil {
		return NodeDef{}, err
	}

	return NodeDef{
		Position:     pos,
		Kind:         KindCompute,
		Accumulator:  acc,
		Backup:       bak,
		Instructions: instructions,
	}, nil
}
