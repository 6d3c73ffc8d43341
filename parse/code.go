package parse

import (
	"strconv"
	"strings"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/instr"
	"github.com/sarchlab/tis100/number"
)

// pendingJump is a not-yet-resolved jump: index is the jump's position in
// the instruction list, label names the target before label resolution.
type pendingJump struct {
	index int
	label string
}

// parseCode parses a node body into a resolved instruction list. It is a
// two-pass process: the first pass walks each line, collecting
// instructions and recording label definitions by the instruction index
// that follows them; the second pass resolves every jump's label
// reference against that table.
func parseCode(headerLine int, body []string) ([]instr.Instruction, error) {
	var out []instr.Instruction
	var pending []pendingJump
	labels := make(map[string]int)

	trailingLabel := false
	trailingLabelLine := headerLine

	for offset, raw := range body {
		lineNo := headerLine + 1 + offset
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, rest, hasLabel := splitLabel(line)
		if hasLabel {
			if _, dup := labels[label]; dup {
				return nil, &SyntaxError{Line: lineNo, Msg: "label already defined: " + label}
			}
			labels[label] = len(out)
			rest = strings.TrimSpace(rest)
			if rest == "" {
				trailingLabel = true
				trailingLabelLine = lineNo
				continue
			}
		}

		trailingLabel = false
		inst, jump, err := parseLine(lineNo, rest)
		if err != nil {
			return nil, err
		}
		if jump != nil {
			jump.index = len(out)
			pending = append(pending, *jump)
		}
		out = append(out, inst)
	}

	if trailingLabel {
		return nil, &SyntaxError{Line: trailingLabelLine, Msg: "trailing label"}
	}

	for _, j := range pending {
		target, ok := labels[j.label]
		if !ok {
			return nil, &SyntaxError{Line: headerLine, Msg: "undefined label: " + j.label}
		}
		out[j.index].Target = target
	}

	return out, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// splitLabel recognizes a leading "identifier:" token. The remainder of
// the line (possibly empty) is returned unparsed.
func splitLabel(line string) (label, rest string, ok bool) {
	i := strings.IndexByte(line, ':')
	if i < 0 {
		return "", line, false
	}
	name := line[:i]
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", line, false
	}
	return name, line[i+1:], true
}

// parseLine parses one instruction line (mnemonic + operands, case
// insensitive). If the mnemonic is a jump with a label target, inst
// carries the jump opcode with Target still unset and jump carries the
// unresolved reference; otherwise jump is nil.
func parseLine(lineNo int, line string) (inst instr.Instruction, jump *pendingJump, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return instr.Instruction{}, nil, &SyntaxError{Line: lineNo, Msg: "empty instruction"}
	}

	mnemonic := strings.ToLower(fields[0])
	args := fields[1:]

	switch mnemonic {
	case "nop":
		return requireArgs(lineNo, mnemonic, args, 0, instr.Instruction{Op: instr.Noop})
	case "swp":
		return requireArgs(lineNo, mnemonic, args, 0, instr.Instruction{Op: instr.Swap})
	case "sav":
		return requireArgs(lineNo, mnemonic, args, 0, instr.Instruction{Op: instr.Save})
	case "neg":
		return requireArgs(lineNo, mnemonic, args, 0, instr.Instruction{Op: instr.Negate})

	case "mov":
		if len(args) != 2 {
			return instr.Instruction{}, nil, wrongArity(lineNo, mnemonic, 2, len(args))
		}
		src, err := parseRegisterOrNumber(lineNo, args[0])
		if err != nil {
			return instr.Instruction{}, nil, err
		}
		dst, err := parseRegister(lineNo, args[1])
		if err != nil {
			return instr.Instruction{}, nil, err
		}
		return instr.Instruction{Op: instr.Move, Src: src, Dst: dst}, nil, nil

	case "add", "sub", "jro":
		if len(args) != 1 {
			return instr.Instruction{}, nil, wrongArity(lineNo, mnemonic, 1, len(args))
		}
		src, err := parseRegisterOrNumber(lineNo, args[0])
		if err != nil {
			return instr.Instruction{}, nil, err
		}
		op := instr.Add
		switch mnemonic {
		case "sub":
			op = instr.Subtract
		case "jro":
			op = instr.JumpRelative
		}
		return instr.Instruction{Op: op, Src: src}, nil, nil

	case "jmp", "jez", "jnz", "jgz", "jlz":
		if len(args) != 1 {
			return instr.Instruction{}, nil, wrongArity(lineNo, mnemonic, 1, len(args))
		}
		op := map[string]instr.Opcode{
			"jmp": instr.Jump,
			"jez": instr.JumpEqualZero,
			"jnz": instr.JumpNotZero,
			"jgz": instr.JumpGreaterThanZero,
			"jlz": instr.JumpLessThanZero,
		}[mnemonic]
		return instr.Instruction{Op: op}, &pendingJump{label: strings.ToLower(args[0])}, nil

	default:
		return instr.Instruction{}, nil, &SyntaxError{Line: lineNo, Msg: "unknown mnemonic: " + mnemonic}
	}
}

func requireArgs(lineNo int, mnemonic string, args []string, want int, inst instr.Instruction) (instr.Instruction, *pendingJump, error) {
	if len(args) != want {
		return instr.Instruction{}, nil, wrongArity(lineNo, mnemonic, want, len(args))
	}
	return inst, nil, nil
}

func wrongArity(lineNo int, mnemonic string, want, got int) error {
	return &SyntaxError{Line: lineNo, Msg: mnemonic + ": expected " + strconv.Itoa(want) + " operand(s), got " + strconv.Itoa(got)}
}

func parseRegister(lineNo int, tok string) (instr.Register, error) {
	rn, err := parseRegisterOrNumber(lineNo, tok)
	if err != nil {
		return instr.Register{}, err
	}
	if rn.IsRegister {
		return rn.Register, nil
	}
	return instr.Register{}, &SyntaxError{Line: lineNo, Msg: "expected a register, got a number: " + tok}
}

func parseRegisterOrNumber(lineNo int, tok string) (instr.RegisterOrNumber, error) {
	switch strings.ToLower(tok) {
	case "up":
		return instr.RegOperand(instr.Dir(cgra.Up)), nil
	case "down":
		return instr.RegOperand(instr.Dir(cgra.Down)), nil
	case "left":
		return instr.RegOperand(instr.Dir(cgra.Left)), nil
	case "right":
		return instr.RegOperand(instr.Dir(cgra.Right)), nil
	case "any":
		return instr.RegOperand(instr.Register{Kind: instr.Any}), nil
	case "last":
		return instr.RegOperand(instr.Register{Kind: instr.Last}), nil
	case "acc":
		return instr.RegOperand(instr.Register{Kind: instr.Accumulator}), nil
	case "nil":
		return instr.RegOperand(instr.Register{Kind: instr.Nil}), nil
	}

	if !isSignedInt(tok) {
		return instr.RegisterOrNumber{}, &SyntaxError{Line: lineNo, Msg: "bad operand: " + tok}
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return instr.RegisterOrNumber{}, &SyntaxError{Line: lineNo, Msg: "bad operand: " + tok}
	}
	return instr.NumOperand(number.From(v)), nil
}
