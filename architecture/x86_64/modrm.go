package x86_64

import (
	"encoding/binary"
	"sort"

	"github.com/keurnel/assembler/internal/asm"
)

// ModR/M mod field values.
const (
	modInd   byte = 0x00 // [r/m], or SIB/disp32-only forms
	modInd8  byte = 0x40 // [r/m + disp8]
	modInd32 byte = 0x80 // [r/m + disp32]
	modDir   byte = 0xC0 // direct register addressing
)

// REX extension bits, to be OR'd into the instruction's REX byte by the
// caller; see spec §4.2's closing paragraph.
const (
	RexBitB byte = 0x1
	RexBitX byte = 0x2
	RexBitR byte = 0x4
	RexBitW byte = 0x8
)

// BuildRex turns a set of W/R/X/B bits into a REX prefix byte, or 0 if no
// bit is set (meaning no REX byte should be emitted at all).
func BuildRex(bits byte) byte {
	if bits == 0 {
		return 0
	}
	return 0x40 | bits
}

func modRegRM(mod, reg, rm byte) byte {
	return mod | (reg&0x7)<<3 | (rm & 0x7)
}

func mkSIB(scaleBits, index, base byte) byte {
	return (scaleBits&0x3)<<6 | (index&0x7)<<3 | (base & 0x7)
}

// noBase is the canonical "no base register" placeholder used when a SIB
// byte's base field must hold the literal code 0b101 (disp32 follows)
// without contributing a REX.B bit — mirrors the reference assembler's use
// of a non-REX rbp stand-in for this case.
var noBase = Register{Name: "(none)", Class: ClassGP, Width: 64, Encoding: 5}

// ModRMSIB computes the ModR/M byte, optional SIB byte, optional
// displacement, and the REX-extension bits contributed by the "reg" slot
// (a Register or an int opcode-extension digit 0-7) and the "r/m" slot
// (a Register or a Pointer). nativeBits is the process/target bitness (32
// or 64), used for Pointer address-width validation.
func ModRMSIB(reg any, rm any, nativeBits int) (rexBits byte, code []byte, err error) {
	var regField byte
	var regRex byte
	switch v := reg.(type) {
	case Register:
		regField = v.Field()
		if v.NeedsRex() {
			regRex = RexBitR
		}
	case int:
		if v < 0 || v > 7 {
			return 0, nil, &asm.TypeError{Message: "opcode extension digit must be 0-7"}
		}
		regField = byte(v)
	default:
		return 0, nil, &asm.TypeError{Message: "ModR/M reg slot must be a Register or an opcode-extension digit"}
	}

	switch r := rm.(type) {
	case Register:
		code = []byte{modRegRM(modDir, regField, r.Field())}
		if r.NeedsRex() {
			rexBits |= RexBitB
		}
		return rexBits | regRex, code, nil
	case Pointer:
		prex, body, perr := r.modrmSIB(regField, nativeBits)
		if perr != nil {
			return 0, nil, perr
		}
		return regRex | prex, body, nil
	default:
		return 0, nil, &asm.TypeError{Message: "ModR/M r/m slot must be a Register or a Pointer"}
	}
}

func packDisp(v int64) (disp []byte, mod byte, err error) {
	if v == 0 {
		return nil, modInd, nil
	}
	if v >= -128 && v <= 127 {
		return []byte{byte(int8(v))}, modInd8, nil
	}
	if v >= -2147483648 && v <= 2147483647 {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
		return buf, modInd32, nil
	}
	return nil, 0, &asm.ValueError{Message: "pointer displacement does not fit in 32 bits"}
}

func disp32(v int64) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(int32(v)))
	return buf
}

func isStackPointer(r *Register) bool {
	return r != nil && (r.Name == "rsp" || r.Name == "esp" || r.Name == "sp")
}

// modrmSIB implements spec §4.2's r/m-is-Pointer cases, translated from the
// reference assembler's displacement/SIB special-casing (disp-only forms,
// *sp-as-base, *bp-as-base forced disp8, *sp rejected as SIB index, base/
// index reordering to match standard assembler output).
func (p Pointer) modrmSIB(regField byte, nativeBits int) (rexBits byte, code []byte, err error) {
	if err := p.checkArch(nativeBits); err != nil {
		return 0, nil, err
	}
	if p.Reg1 != nil && p.Reg2 != nil && p.Reg1.Width != p.Reg2.Width {
		return 0, nil, &asm.TypeError{Message: "cannot compile pointer from registers of different width"}
	}
	if (p.Reg1 != nil && p.Reg1.Width == 16) || (p.Reg2 != nil && p.Reg2.Width == 16) {
		return p.modrm16(regField)
	}

	disp, mod, derr := packDisp(p.Disp)
	if derr != nil {
		return 0, nil, derr
	}

	if p.Scale == 0 {
		regs := p.regs()
		switch len(regs) {
		case 0:
			if !p.HasDisp && !p.HasLabel {
				return 0, nil, &asm.TypeError{Message: "cannot encode an empty pointer"}
			}
			d := disp32(p.Disp)
			if nativeBits == 32 {
				modrm := modRegRM(modInd, regField, 0b101)
				return 0, append([]byte{modrm}, d...), nil
			}
			modrm := modRegRM(modInd, regField, 0b100)
			sib := mkSIB(0, RSP.Field(), noBase.Field())
			return 0, append([]byte{modrm, sib}, d...), nil

		case 1:
			r := regs[0]
			if r.Field() == 0b100 {
				modrm := modRegRM(mod, regField, 0b100)
				sib := mkSIB(0, RSP.Field(), r.Field())
				out := append([]byte{modrm, sib}, disp...)
				if r.NeedsRex() {
					rexBits |= RexBitB
				}
				return rexBits, out, nil
			}
			if r.Field() == 0b101 && len(disp) == 0 {
				modrm := modRegRM(modInd8, regField, r.Field())
				if r.NeedsRex() {
					rexBits |= RexBitB
				}
				return rexBits, []byte{modrm, 0x00}, nil
			}
			modrm := modRegRM(mod, regField, r.Field())
			if r.NeedsRex() {
				rexBits |= RexBitB
			}
			return rexBits, append([]byte{modrm}, disp...), nil

		default: // two registers
			index, base := regs[1], regs[0] // reversed from algebraic order, matching GNU output
			if isStackPointer(index) {
				if isStackPointer(base) {
					return 0, nil, &asm.TypeError{Message: "cannot encode two stack-pointer registers in an effective address"}
				}
				index, base = base, index
			} else if base.Field() == 0b101 && len(disp) == 0 {
				mod = modInd8
				disp = []byte{0x00}
			}
			modrm := modRegRM(mod, regField, 0b100)
			sib := mkSIB(0, index.Field(), base.Field())
			if index.NeedsRex() {
				rexBits |= RexBitX
			}
			if base.NeedsRex() {
				rexBits |= RexBitB
			}
			return rexBits, append([]byte{modrm, sib}, disp...), nil
		}
	}

	// Scaled index present: Reg1 is the index, Reg2 (if any) is the base.
	byts := map[int]byte{1: 0, 2: 1, 4: 2, 8: 3}[p.Scale]
	index := p.Reg1
	base := p.Reg2
	if index == nil {
		return 0, nil, &asm.TypeError{Message: "SIB scale requires an index register"}
	}
	if index.Field() == 0b100 && !index.NeedsRex() {
		return 0, nil, &asm.TypeError{Message: "register " + index.Name + " cannot be used as a SIB index"}
	}
	if base != nil && base.Field() == 0b101 && len(disp) == 0 {
		mod = modInd8
		disp = []byte{0x00}
	}
	baseField := noBase.Field()
	baseRex := false
	if base == nil {
		mod = modInd
		disp = disp32(p.Disp)
	} else {
		baseField = base.Field()
		baseRex = base.NeedsRex()
	}
	modrm := modRegRM(mod, regField, 0b100)
	sib := mkSIB(byts, index.Field(), baseField)
	if index.NeedsRex() {
		rexBits |= RexBitX
	}
	if baseRex {
		rexBits |= RexBitB
	}
	return rexBits, append([]byte{modrm, sib}, disp...), nil
}

var modrm16Table = map[[2]string]byte{
	{"bx", "si"}: 0b000,
	{"bx", "di"}: 0b001,
	{"bp", "si"}: 0b010,
	{"bp", "di"}: 0b011,
	{"si", ""}:   0b100,
	{"di", ""}:   0b101,
	{"bp", ""}:   0b110,
	{"bx", ""}:   0b111,
}

// modrm16 implements the fixed 16-bit addressing table of spec §4.2's
// closing paragraph.
func (p Pointer) modrm16(regField byte) (rexBits byte, code []byte, err error) {
	if p.Scale != 0 {
		return 0, nil, &asm.TypeError{Message: "scale is not valid in 16-bit addressing mode"}
	}
	names := []string{}
	for _, r := range p.regs() {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	var key [2]string
	switch len(names) {
	case 0:
		key = [2]string{"", ""}
	case 1:
		key = [2]string{names[0], ""}
	case 2:
		key = [2]string{names[0], names[1]}
	}
	rm, ok := modrm16Table[key]
	if !ok {
		return 0, nil, &asm.TypeError{Message: "invalid 16-bit effective address"}
	}

	if !p.HasDisp || p.Disp == 0 {
		if key == [2]string{"bp", ""} {
			return 0, []byte{modRegRM(modInd8, regField, rm), 0x00}, nil
		}
		return 0, []byte{modRegRM(modInd, regField, rm)}, nil
	}

	if key == ([2]string{"", ""}) {
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, uint16(int16(p.Disp)))
		return 0, append([]byte{modRegRM(modInd, regField, rm)}, buf...), nil
	}
	if p.Disp >= -128 && p.Disp <= 127 {
		return 0, []byte{modRegRM(modInd8, regField, rm), byte(int8(p.Disp))}, nil
	}
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, uint16(int16(p.Disp)))
	return 0, append([]byte{modRegRM(modInd32, regField, rm)}, buf...), nil
}
