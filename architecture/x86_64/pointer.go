package x86_64

import (
	"fmt"

	"github.com/keurnel/assembler/internal/asm"
)

// Label names a zero-length marker position in a program. A Label value
// used in operand arithmetic (Label.Plus) yields a Pointer referencing that
// name; the name resolves to an absolute address only once a Code page has
// placed the program in memory.
type Label string

// Plus attaches an integer displacement to a label reference.
func (l Label) Plus(disp int64) Pointer {
	return Pointer{Label: string(l), HasLabel: true, Disp: disp, HasDisp: disp != 0}
}

// Minus is Plus with the displacement's sign flipped.
func (l Label) Minus(disp int64) Pointer {
	return l.Plus(-disp)
}

// Pointer is the effective-address value: up to two participating
// registers (Reg1 may additionally carry Scale; Reg2 never does), a signed
// displacement, an optional label reference, and an optional data-width
// override. Fields mirror the algebra of spec §4.1 directly; which register
// ultimately lands in the ModR/M base slot versus the SIB index slot is
// decided at encode time (see modrm.go), not fixed here.
type Pointer struct {
	Reg1  *Register // may carry Scale
	Scale int       // 0 (unset), 1, 2, 4, or 8
	Reg2  *Register // never scaled

	Disp    int64
	HasDisp bool

	Label    string
	HasLabel bool

	Width int // 0 means unspecified; else 8/16/32/64
}

// Of builds a Pointer directly from a register, wrapping it as a bare
// `[reg]` address with no displacement or scale.
func Of(r Register) Pointer {
	reg := r
	return Pointer{Reg1: &reg}
}

// Byte, Word, Dword, and Qword attach an explicit data-width override to a
// Pointer, mirroring the textual front-end's `byte ptr` / `word ptr` /
// `dword ptr` / `qword ptr` prefixes.
func Byte(p Pointer) Pointer  { p.Width = 8; return p }
func Word(p Pointer) Pointer  { p.Width = 16; return p }
func Dword(p Pointer) Pointer { p.Width = 32; return p }
func Qword(p Pointer) Pointer { p.Width = 64; return p }

func (p Pointer) regs() []*Register {
	var out []*Register
	if p.Reg1 != nil {
		out = append(out, p.Reg1)
	}
	if p.Reg2 != nil {
		out = append(out, p.Reg2)
	}
	return out
}

func (p Pointer) countRegs() int { return len(p.regs()) }

// Plus merges another value into the Pointer per spec §4.1's table:
// Register (fills the first empty base/index slot), int (accumulates into
// Disp), Pointer (componentwise merge), or Label (attaches, rejecting a
// second label). The result does not depend on which side of the original
// addition the receiver was on.
func (p Pointer) Plus(x any) (Pointer, error) {
	out := p
	switch v := x.(type) {
	case Register:
		reg := v
		if out.Reg1 == nil {
			out.Reg1 = &reg
		} else if out.Reg2 == nil {
			out.Reg2 = &reg
		} else {
			return Pointer{}, &asm.TypeError{Message: "pointer cannot incorporate more than two registers"}
		}
		return out, nil

	case int:
		return out.plusInt(int64(v)), nil
	case int64:
		return out.plusInt(v), nil

	case Label:
		if out.HasLabel {
			return Pointer{}, &asm.TypeError{Message: "pointer cannot reference more than one label"}
		}
		out.Label = string(v)
		out.HasLabel = true
		return out, nil

	case Pointer:
		y := out
		var err error
		if v.HasDisp {
			y = y.plusInt(v.Disp)
		}
		if v.Reg2 != nil {
			y, err = y.Plus(*v.Reg2)
			if err != nil {
				return Pointer{}, err
			}
		}
		if v.Reg1 != nil && v.Scale == 0 {
			y, err = y.Plus(*v.Reg1)
			if err != nil {
				return Pointer{}, err
			}
		} else if v.Reg1 != nil && v.Scale != 0 {
			if y.Scale != 0 {
				return Pointer{}, &asm.TypeError{Message: "pointer can only hold one scaled register"}
			}
			if y.Reg1 != nil {
				if y.Reg2 != nil {
					return Pointer{}, &asm.TypeError{Message: "pointer cannot incorporate more than two registers"}
				}
				y.Reg2 = y.Reg1
			}
			r := *v.Reg1
			y.Reg1 = &r
			y.Scale = v.Scale
		}
		if v.HasLabel {
			y, err = y.Plus(Label(v.Label))
			if err != nil {
				return Pointer{}, err
			}
		}
		return y, nil

	default:
		return Pointer{}, &asm.TypeError{Message: fmt.Sprintf("cannot add %T to pointer", x)}
	}
}

func (p Pointer) plusInt(disp int64) Pointer {
	out := p
	out.Disp += disp
	out.HasDisp = true
	return out
}

// Scaled attaches a scale factor (1, 2, 4, or 8) to reg, producing a Pointer
// with reg occupying the scale-eligible slot.
func Scaled(reg Register, scale int) (Pointer, error) {
	if scale != 1 && scale != 2 && scale != 4 && scale != 8 {
		return Pointer{}, &asm.TypeError{Message: "register scale must be 1, 2, 4, or 8"}
	}
	r := reg
	return Pointer{Reg1: &r, Scale: scale}, nil
}

// RegPlus combines two registers into a base+index Pointer.
func RegPlus(a, b Register) (Pointer, error) {
	return Of(a).Plus(b)
}

// checkArch rejects participating registers narrower than half the native
// address width (no 16-bit-only GP registers under a 64-bit program, etc.),
// per spec §3's Pointer invariants.
func (p Pointer) checkArch(nativeBits int) error {
	for _, r := range p.regs() {
		if r.Width < nativeBits/2 {
			return &asm.TypeError{Message: fmt.Sprintf("invalid register %q for pointer on a %d-bit target", r.Name, nativeBits)}
		}
	}
	return nil
}

// String renders a debug form such as "dword ptr [0x10 + rax]", used only in
// diagnostics and CodePage.Dump — never in the encoding path.
func (p Pointer) String() string {
	s := "["
	first := true
	emit := func(part string) {
		if !first {
			s += " + "
		}
		s += part
		first = false
	}
	if p.HasDisp {
		emit(fmt.Sprintf("0x%x", p.Disp))
	}
	if p.HasLabel {
		emit(":" + p.Label)
	}
	if p.Reg1 != nil {
		if p.Scale != 0 {
			emit(fmt.Sprintf("%d*%s", p.Scale, p.Reg1.Name))
		} else {
			emit(p.Reg1.Name)
		}
	}
	if p.Reg2 != nil {
		emit(p.Reg2.Name)
	}
	s += "]"
	if p.Width == 0 {
		return s
	}
	prefix := map[int]string{8: "byte", 16: "word", 32: "dword", 64: "qword"}[p.Width]
	return prefix + " ptr " + s
}
