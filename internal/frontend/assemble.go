package frontend

import (
	"fmt"
	"strings"

	"github.com/keurnel/assembler/architecture/x86_64"
	"github.com/keurnel/assembler/internal/asm"
	"github.com/keurnel/assembler/internal/codepage"
	"github.com/keurnel/assembler/internal/debugcontext"
)

// LineError wraps any lower-level error (syntax, type, name, value) with the
// offending line number and original source text, per spec §4.10's closing
// paragraph: "All exceptions are wrapped with line number and original line
// text."
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, strings.TrimSpace(e.Text), e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func lineErr(line int, text string, err error) *LineError {
	return &LineError{Line: line, Text: text, Err: err}
}

// Assemble runs the full two-pass textual front-end of spec §4.10 over
// source and returns the resulting program in the form internal/codepage's
// Compile expects. nativeBits selects the process bitness (32 or 64), which
// controls which recipes are eligible; calling-convention aliases are not
// added here and come in only through extra. extra supplies caller-defined
// symbols (constants, pre-bound registers) layered under the register and
// label namespace; pass nil for none.
//
// Diagnostics are also recorded into dbg as they are produced, in addition
// to being returned as the first error encountered — dbg may be nil if the
// caller has no use for the running log.
func Assemble(source string, nativeBits int, extra map[string]any, dbg *debugcontext.DebugContext) ([]codepage.Line, error) {
	if dbg != nil {
		dbg.SetPhase("frontend")
	}

	lines, err := clean(source)
	if err != nil {
		if dbg != nil {
			dbg.Error(dbg.Loc(lineOf(err), 0), err.Error())
		}
		return nil, err
	}

	namespace := map[string]any{}
	for k, v := range extra {
		namespace[k] = v
	}

	var program []codepage.Line
	for _, ln := range lines {
		if ln.Label != "" {
			program = append(program, codepage.LabelLine(ln.Label))
		}
		if ln.Remainder == "" {
			continue
		}

		instr, err := encodeLine(ln.Remainder, nativeBits, namespace)
		if err != nil {
			wrapped := lineErr(ln.LineNo, ln.Text, err)
			if dbg != nil {
				dbg.Error(dbg.Loc(ln.LineNo, 0), err.Error()).WithSnippet(ln.Text)
			}
			return nil, wrapped
		}
		program = append(program, codepage.InstrLine(instr))
	}
	return program, nil
}

func lineOf(err error) int {
	if le, ok := err.(*LineError); ok {
		return le.Line
	}
	return 0
}

// encodeLine implements spec §4.10's second pass for one instruction line:
// split mnemonic from operands, resolve each operand's expression against
// the namespace, re-apply any width prefix, and force encoding immediately
// so errors surface here rather than later.
func encodeLine(remainder string, nativeBits int, namespace map[string]any) (*x86_64.Instruction, error) {
	mnemonic, operandText := splitMnemonic(remainder)
	lname := strings.ToLower(mnemonic)
	m, ok := x86_64.Table[lname]
	if !ok {
		return nil, &asm.NameError{Name: mnemonic, Message: "unknown mnemonic"}
	}

	var args []any
	if strings.TrimSpace(operandText) != "" {
		for _, raw := range splitOperands(operandText) {
			arg, err := evalOperand(raw, namespace)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}

	if isRelBranch(m) && len(args) == 1 {
		if n, ok := args[0].(int64); ok {
			args[0] = x86_64.Rel(n)
		}
	}

	return x86_64.NewInstruction(nativeBits, lname, args...)
}

func isRelBranch(m *asm.Mnemonic) bool {
	for _, r := range m.Recipes {
		if len(r.Encoding) == 1 && r.Encoding[0] == asm.EncRelative {
			return true
		}
	}
	return false
}

// evalOperand strips an optional width prefix, evaluates the remaining
// expression, and re-applies the width override to a Pointer result.
func evalOperand(raw string, namespace map[string]any) (any, error) {
	width, rest := stripWidthPrefix(raw)
	if rest == "" {
		return nil, &syntaxError{msg: "empty operand"}
	}

	p, err := newParser(rest, namespace)
	if err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if width == 0 {
		return val, nil
	}
	ptr, ok := val.(x86_64.Pointer)
	if !ok {
		return nil, &syntaxError{msg: "width prefix may only be applied to a memory operand"}
	}
	switch width {
	case 8:
		return x86_64.Byte(ptr), nil
	case 16:
		return x86_64.Word(ptr), nil
	case 32:
		return x86_64.Dword(ptr), nil
	case 64:
		return x86_64.Qword(ptr), nil
	default:
		return ptr, nil
	}
}

func stripWidthPrefix(s string) (width int, rest string) {
	trimmed := strings.TrimSpace(s)
	lower := strings.ToLower(trimmed)
	prefixes := []struct {
		prefix string
		width  int
	}{
		{"byte ptr", 8}, {"word ptr", 16}, {"dword ptr", 32}, {"qword ptr", 64},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.width, strings.TrimSpace(trimmed[len(p.prefix):])
		}
	}
	for _, p := range prefixes {
		kw := strings.TrimSuffix(p.prefix, " ptr")
		if strings.HasPrefix(lower, kw) {
			if rest := strings.TrimSpace(trimmed[len(kw):]); strings.HasPrefix(rest, "[") {
				return p.width, rest
			}
		}
	}
	return 0, trimmed
}

func splitMnemonic(s string) (mnemonic, rest string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], strings.TrimSpace(s[idx+1:])
}

// splitOperands splits s on top-level commas, i.e. commas outside any
// bracket nesting (there is never more than one level in this grammar, but
// depth-tracking costs nothing and is exact).
func splitOperands(s string) []string {
	var out []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}
