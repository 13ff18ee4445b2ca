package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// Recipe is a single entry of a mnemonic's signature table: the operand-type
// tuple it accepts, the opcode template that produced it, and the per-operand
// encoding roles that route each argument into the opcode, ModR/M, or
// immediate bytes.
//
// The opcode template is parsed exactly once, at table-construction time,
// into the structured fields below (RexW, OpcodeBytes, EmbedReg, ExtDigit);
// the string form that ships in source is documentation only and is never
// re-parsed during encoding.
type Recipe struct {
	Operands  []OperandType
	Encoding  []string
	Allowed64 bool
	Allowed32 bool

	Template string

	RexW        bool
	OpcodeBytes []byte
	EmbedReg    bool
	ExtDigit    int // 0-7, or -1 when the recipe has no opcode-extension digit
}

// Encoding role identifiers used in Recipe.Encoding.
const (
	EncOpcodeReg = "opcode+rd"  // register embedded in the low 3 bits of the last opcode byte
	EncModRMReg  = "modrm:reg"  // operand occupies the ModR/M reg field
	EncModRMRM   = "modrm:r/m"  // operand occupies the ModR/M r/m field (register or memory)
	EncImmediate = "imm"        // operand is encoded as a trailing immediate
	EncRelative  = "rel"        // operand reserves trailing bytes for a relative-branch displacement, resolved by the branch subclass
	EncNone      = "none"       // operand contributes no bytes of its own
)

// NewRecipe parses an opcode template string such as "REX.W + 81 /0" or
// "B8+rd" into a Recipe. Tokens are separated by whitespace and/or '+':
// two hex digits are a literal opcode byte, "REX.W" requires the REX.W bit,
// "/N" (0-7) is a ModR/M opcode-extension digit, "/r" is a no-op documentation
// marker (the real ModR/M:reg routing comes from encoding), and a
// "rb"/"rw"/"rd"/"rq" token marks the previous opcode byte as carrying an
// embedded register in its low 3 bits.
func NewRecipe(operands []OperandType, template string, encoding []string, allowed64, allowed32 bool) Recipe {
	r := Recipe{
		Operands:  operands,
		Encoding:  encoding,
		Allowed64: allowed64,
		Allowed32: allowed32,
		Template:  template,
		ExtDigit:  -1,
	}

	for _, raw := range strings.FieldsFunc(template, func(c rune) bool { return c == ' ' || c == '+' }) {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		switch {
		case tok == "REX.W":
			r.RexW = true
		case tok == "/r":
			// documentation only; routing comes from Encoding.
		case strings.HasPrefix(tok, "/"):
			digit, err := strconv.Atoi(tok[1:])
			if err != nil || digit < 0 || digit > 7 {
				panic(fmt.Sprintf("asm: invalid opcode-extension token %q in template %q", tok, template))
			}
			r.ExtDigit = digit
		case tok == "rb" || tok == "rw" || tok == "rd" || tok == "rq":
			r.EmbedReg = true
		default:
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				panic(fmt.Sprintf("asm: invalid opcode template token %q in template %q", tok, template))
			}
			r.OpcodeBytes = append(r.OpcodeBytes, byte(b))
		}
	}

	if len(r.OpcodeBytes) == 0 {
		panic(fmt.Sprintf("asm: opcode template %q produced no opcode bytes", template))
	}
	if r.ExtDigit >= 0 && r.EmbedReg {
		panic(fmt.Sprintf("asm: template %q cannot combine an opcode extension digit with an embedded register", template))
	}

	return r
}

// Signature renders the recipe's operand tags joined for diagnostics and for
// use as an exact-match cache key, e.g. "r32,imm32".
func (r Recipe) Signature() string {
	tags := make([]string, len(r.Operands))
	for i, o := range r.Operands {
		tags[i] = o.Identifier
	}
	return strings.Join(tags, ",")
}
