package parse

import (
	"strconv"
	"strings"

	"github.com/sarchlab/tis100/cgra"
	"github.com/sarchlab/tis100/number"
)

// parseSettings parses a node block's header line: comma-separated
// tokens, in any order. The first two bare integers are x and y, in that
// order (other tokens may sit between them); acc:N and bak:N are
// optional; a special-node identifier excludes both.
func parseSettings(headerLine int, settings string) (pos cgra.Position, acc, bak *number.Number, special string, err error) {
	tokens := strings.Split(settings, ",")

	posSet := false
	var pendingX *int64
	var pendingXTok string

	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}

		switch {
		case isSpecialIdentifier(tok):
			if special != "" {
				err = &SyntaxError{Line: headerLine, Msg: "special node already set"}
				return
			}
			special = tok

		case strings.HasPrefix(tok, "acc:"):
			if acc != nil {
				err = &SyntaxError{Line: headerLine, Msg: "accumulator already set"}
				return
			}
			var v int64
			v, err = parseSettingInt(headerLine, tok[len("acc:"):])
			if err != nil {
				return
			}
			n := number.From(v)
			acc = &n

		case strings.HasPrefix(tok, "bak:"):
			if bak != nil {
				err = &SyntaxError{Line: headerLine, Msg: "backup already set"}
				return
			}
			var v int64
			v, err = parseSettingInt(headerLine, tok[len("bak:"):])
			if err != nil {
				return
			}
			n := number.From(v)
			bak = &n

		case isSignedInt(tok):
			var v int64
			v, err = parseSettingInt(headerLine, tok)
			if err != nil {
				return
			}
			switch {
			case pendingX != nil:
				x := *pendingX
				pos = cgra.NewPosition(int32(x), int32(v))
				posSet = true
				pendingX = nil
			case posSet:
				err = &SyntaxError{Line: headerLine, Msg: "position already set"}
				return
			default:
				pendingX = &v
				pendingXTok = tok
			}

		default:
			err = &SyntaxError{Line: headerLine, Msg: "invalid settings token: " + tok}
			return
		}
	}

	if pendingX != nil {
		err = &SyntaxError{Line: headerLine, Msg: "position missing y coordinate after " + pendingXTok}
		return
	}
	if !posSet {
		err = &SyntaxError{Line: headerLine, Msg: "no position provided"}
		return
	}

	return
}

func isSpecialIdentifier(tok string) bool {
	_, ok := specialKinds[tok]
	return ok
}

func isSignedInt(tok string) bool {
	i := 0
	if len(tok) > 0 && tok[0] == '-' {
		i = 1
	}
	if i == len(tok) {
		return false
	}
	for ; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}

func parseSettingInt(headerLine int, s string) (int64, error) {
	v, convErr := strconv.ParseInt(s, 10, 32)
	if convErr != nil {
		return 0, &SyntaxError{Line: headerLine, Msg: "bad operand: " + s}
	}
	return v, nil
}
