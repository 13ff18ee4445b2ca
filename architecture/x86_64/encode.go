package x86_64

import (
	"encoding/binary"

	"github.com/keurnel/assembler/internal/asm"
)

// packImmediate packs v as a signed little-endian integer of the given bit
// width. Width is always one of 8/16/32/64, taken from the matched recipe's
// declared operand size, not from the argument's minimal width.
func packImmediate(v int64, bits int) []byte {
	switch bits {
	case 8:
		return []byte{byte(int8(v))}
	case 16:
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(v)))
		return buf
	case 32:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
		return buf
	default:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint64(buf, uint64(v))
		return buf
	}
}

// rmValue converts a classified operand into the `rm` argument ModRMSIB
// expects: a Register for register/xmm/st operands, a Pointer for memory
// operands.
func rmValue(a classifiedArg) any {
	if a.kind == kindMem {
		return *a.ptr
	}
	return *a.reg
}

// encode assembles one instruction's bytes given the recipe SelectRecipe
// already chose and the classified argument list, per spec §4.6: legacy
// prefixes, REX, opcode (with embedded register or ModR/M+SIB as the recipe
// requires), displacement, then immediate — in that order.
func encode(mnemonic string, recipe *asm.Recipe, classified []classifiedArg, nativeBits int) (*asm.Code, error) {
	var prefixes []Prefix
	var rex byte
	if recipe.RexW {
		rex |= RexBitW
	}

	opcode := append([]byte(nil), recipe.OpcodeBytes...)
	var modrmBody []byte
	var imm []byte

	haveModRM := false
	var regSlot any
	var rmSlot any

	if recipe.ExtDigit >= 0 {
		regSlot = recipe.ExtDigit
	}

	for i, role := range recipe.Encoding {
		if i >= len(classified) {
			break
		}
		arg := classified[i]
		switch role {
		case asm.EncOpcodeReg:
			if arg.reg == nil {
				return nil, asm.NewTypeError(mnemonic, "operand %d must be a register for embedded-register encoding", i+1)
			}
			if len(opcode) == 0 {
				return nil, asm.NewTypeError(mnemonic, "embedded-register recipe has no opcode byte to embed into")
			}
			opcode[len(opcode)-1] |= arg.reg.Field()
			if arg.reg.NeedsRex() {
				rex |= RexBitB
			}

		case asm.EncModRMReg:
			regSlot = *arg.reg
			haveModRM = true

		case asm.EncModRMRM:
			rmSlot = rmValue(arg)
			haveModRM = true

		case asm.EncImmediate:
			width := recipe.Operands[i].Size
			imm = append(imm, packImmediate(arg.imm, width)...)

		case asm.EncNone:
			// relative-branch targets and other no-byte operands; see branch.go.

		default:
			return nil, asm.NewTypeError(mnemonic, "unknown encoding role %q", role)
		}

		if arg.kind == kindMem && arg.ptr != nil {
			if nativeBits == 64 && arg.ptr.countRegs() > 0 && anyRegWidth(arg.ptr, 32) {
				prefixes = append(prefixes, PrefixAddressSize)
			}
			if nativeBits == 32 && arg.ptr.countRegs() > 0 && anyRegWidth(arg.ptr, 16) {
				prefixes = append(prefixes, PrefixAddressSize)
			}
		}
		if (arg.kind == kindReg || arg.kind == kindMem) && arg.size == 16 {
			prefixes = append(prefixes, PrefixOperandSize)
		}
	}

	if haveModRM {
		if regSlot == nil {
			regSlot = 0
		}
		rexBits, body, err := ModRMSIB(regSlot, rmSlot, nativeBits)
		if err != nil {
			return nil, asm.NewTypeError(mnemonic, "%s", err)
		}
		rex |= rexBits
		modrmBody = body
	}

	// A mandatory SSE prefix byte (66/F2/F3) leading the opcode template
	// must precede REX, not follow it, so it is pulled out of the opcode
	// bytes here rather than folded into the legacy-prefix list above.
	var mandatory []byte
	if len(opcode) > 0 && (opcode[0] == 0x66 || opcode[0] == 0xF2 || opcode[0] == 0xF3) {
		mandatory = opcode[:1]
		opcode = opcode[1:]
	}

	out := opcode
	out = append(out, modrmBody...)
	out = append(out, imm...)

	code := asm.NewCode(out)
	if rex != 0 {
		code = code.Prepend([]byte{BuildRex(rex)})
	}
	code = code.Prepend(mandatory)
	code = code.Prepend(prefixBytes(dedupPrefixes(prefixes)))
	return code, nil
}

func anyRegWidth(p *Pointer, width int) bool {
	for _, r := range p.regs() {
		if r.Width == width {
			return true
		}
	}
	return false
}

func dedupPrefixes(in []Prefix) []Prefix {
	seen := map[Prefix]bool{}
	var out []Prefix
	for _, p := range in {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return sortPrefixes(out)
}

func prefixBytes(prefixes []Prefix) []byte {
	out := make([]byte, len(prefixes))
	for i, p := range prefixes {
		out[i] = byte(p)
	}
	return out
}

// Encode classifies args against m's signature table, selects the matching
// recipe, and emits the instruction's bytes as a Code buffer (with no
// pending fills — plain, non-branch instructions never need a deferred
// value). nativeBits is the target's address width (32 or 64).
func Encode(m *asm.Mnemonic, nativeBits int, args ...any) (*asm.Code, error) {
	recipe, classified, err := SelectRecipe(m, args, nativeBits)
	if err != nil {
		return nil, err
	}
	return encode(m.Name, recipe, classified, nativeBits)
}
