package x86_64

import "github.com/keurnel/assembler/internal/asm"

func fitsSigned(v int64, bits int) bool {
	switch bits {
	case 8:
		return v >= -128 && v <= 127
	case 16:
		return v >= -32768 && v <= 32767
	case 32:
		return v >= -2147483648 && v <= 2147483647
	default:
		return true
	}
}

// EncodeBranch assembles a relative-branch instruction (JMP, CALL, Jcc) that
// takes a single Label or RelTarget operand, per spec §4.7. A Label target
// produces a deferred fill of "<label> - next_instr_addr", resolved once the
// enclosing program's label offsets are known; a RelTarget packs its
// displacement directly as target - instruction_length, since the
// instruction's own length is already fixed once its recipe is chosen.
func EncodeBranch(m *asm.Mnemonic, nativeBits int, target any) (*asm.Code, error) {
	recipe, classified, err := SelectRecipe(m, []any{target}, nativeBits)
	if err != nil {
		return nil, err
	}
	if len(recipe.Encoding) != 1 || recipe.Encoding[0] != asm.EncRelative {
		return nil, asm.NewTypeError(m.Name, "recipe %s is not a relative-branch form", recipe.Signature())
	}
	width := recipe.Operands[0].Size / 8

	var rex byte
	if recipe.RexW {
		rex |= RexBitW
	}
	body := append([]byte(nil), recipe.OpcodeBytes...)
	relOffset := len(body)
	body = append(body, make([]byte, width)...)

	prefixLen := 0
	if rex != 0 {
		prefixLen = 1
	}
	totalLen := prefixLen + len(body)

	_ = classified
	switch v := target.(type) {
	case Label:
		code := asm.NewCode(body)
		if rex != 0 {
			code = code.Prepend([]byte{BuildRex(rex)})
		}
		code.Replace(prefixLen+relOffset, asm.FillExpr{Label: string(v), RelativeTo: "next_instr_addr"}, width)
		return code, nil

	case RelTarget:
		disp := v.Value - int64(totalLen)
		if !fitsSigned(disp, width*8) {
			return nil, &asm.ValueError{Message: "relative branch target does not fit in the matched opcode form"}
		}
		copy(body[relOffset:relOffset+width], packImmediate(disp, width*8))
		code := asm.NewCode(body)
		if rex != 0 {
			code = code.Prepend([]byte{BuildRex(rex)})
		}
		return code, nil

	default:
		return nil, asm.NewTypeError(m.Name, "branch target must be a Label or a Rel value")
	}
}
