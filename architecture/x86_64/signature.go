package x86_64

import (
	"fmt"
	"strings"

	"github.com/keurnel/assembler/internal/asm"
)

// Label marks a relative-branch target by name; see branch.go. RelTarget
// marks one by a precomputed numeric displacement, supplied directly by a
// caller that already knows the destination offset.
type RelTarget struct{ Value int64 }

// Rel wraps a numeric relative-branch target.
func Rel(n int64) RelTarget { return RelTarget{Value: n} }

type argKind int

const (
	kindReg argKind = iota
	kindMem
	kindImm
	kindRel
	kindXMM
	kindSt0
	kindSti
)

// classifiedArg is one call argument, tagged per spec §4.4: registers keep
// their exact width, memory operands keep the Pointer's declared width (0 if
// unspecified), and immediates are tagged at the width a SIGNED packing
// requires. size never shrinks below that signed requirement: an opcode
// form narrower than it would sign-extend the immediate into the wrong
// value (e.g. 200 sign-extended from a byte is -56), so only a wider or
// exactly-equal candidate may treat the value as an exact fit. When the
// value is non-negative and also fits a narrower *unsigned* packing,
// unsigned is set and unsignedSize records that narrower width — a hint
// checkMode may use to accept an otherwise too-narrow candidate, but only
// weakly, and only when nothing wider is available.
type classifiedArg struct {
	kind         argKind
	size         int
	unsigned     bool
	unsignedSize int

	reg *Register
	ptr *Pointer
	imm int64
}

func minimalSignedBits(v int64) int {
	switch {
	case v >= -128 && v <= 127:
		return 8
	case v >= -32768 && v <= 32767:
		return 16
	case v >= -2147483648 && v <= 2147483647:
		return 32
	default:
		return 64
	}
}

func minimalUnsignedBits(v int64) int {
	switch {
	case v >= 0 && v <= 0xFF:
		return 8
	case v >= 0 && v <= 0xFFFF:
		return 16
	case v >= 0 && v <= 0xFFFFFFFF:
		return 32
	default:
		return 64
	}
}

func classifyArg(a any) (classifiedArg, error) {
	switch v := a.(type) {
	case Register:
		switch v.Class {
		case ClassXMM:
			r := v
			return classifiedArg{kind: kindXMM, size: 128, reg: &r}, nil
		case ClassST:
			r := v
			if r.Name == "st(0)" {
				return classifiedArg{kind: kindSt0, size: 80, reg: &r}, nil
			}
			return classifiedArg{kind: kindSti, size: 80, reg: &r}, nil
		default:
			r := v
			return classifiedArg{kind: kindReg, size: r.Width, reg: &r}, nil
		}

	case Pointer:
		p := v
		return classifiedArg{kind: kindMem, size: p.Width, ptr: &p}, nil

	case Label:
		return classifiedArg{kind: kindRel}, nil
	case RelTarget:
		return classifiedArg{kind: kindRel, size: minimalSignedBits(v.Value), imm: v.Value}, nil

	case int:
		return classifyImm(int64(v)), nil
	case int8:
		return classifyImm(int64(v)), nil
	case int16:
		return classifyImm(int64(v)), nil
	case int32:
		return classifyImm(int64(v)), nil
	case int64:
		return classifyImm(v), nil
	case uint:
		return classifyImm(int64(v)), nil
	case uint8:
		return classifyImm(int64(v)), nil
	case uint16:
		return classifyImm(int64(v)), nil
	case uint32:
		return classifyImm(int64(v)), nil
	case uint64:
		return classifyImm(int64(v)), nil

	case []byte:
		return classifyImmBytes(v)
	case string:
		return classifyImmBytes([]byte(v))

	default:
		return classifiedArg{}, &asm.TypeError{Message: fmt.Sprintf("unsupported argument type %T", a)}
	}
}

func classifyImm(v int64) classifiedArg {
	signed := minimalSignedBits(v)
	arg := classifiedArg{kind: kindImm, size: signed, imm: v}
	if v >= 0 {
		if u := minimalUnsignedBits(v); u < signed {
			arg.unsigned = true
			arg.unsignedSize = u
		}
	}
	return arg
}

// classifyImmBytes tags a fixed-width byte-string immediate (spec §3/§4.4):
// its length, not its numeric value, fixes the packed width, so there is no
// signed/unsigned ambiguity to resolve the way classifyImm resolves one.
func classifyImmBytes(b []byte) (classifiedArg, error) {
	switch len(b) {
	case 1, 2, 4, 8:
		var v uint64
		for i := len(b) - 1; i >= 0; i-- {
			v = v<<8 | uint64(b[i])
		}
		return classifiedArg{kind: kindImm, size: len(b) * 8, imm: int64(v)}, nil
	default:
		return classifiedArg{}, &asm.TypeError{Message: fmt.Sprintf("byte-string immediate must be 1, 2, 4, or 8 bytes long, got %d", len(b))}
	}
}

type matchStrength int

const (
	matchNone matchStrength = iota
	// matchWeakUnsigned accepts a candidate narrower than the value's true
	// signed requirement, on the strength of the unsigned-packing hint
	// alone. It ranks below matchWeak: a widening match that honors the
	// real signed requirement is always preferred when one exists.
	matchWeakUnsigned
	matchWeak
	matchStrong
)

// checkMode decides whether classified accepts candidate, per spec §4.5's
// per-operand acceptance table. A strong match means the candidate is an
// exact fit (same kind and width); a weak match means the candidate would
// require widening (a small immediate into a larger immediate slot, an
// unspecified-width memory operand against a sized mem slot, and so on).
func checkMode(candidate asm.OperandType, arg classifiedArg) matchStrength {
	switch candidate.Type {
	case "reg":
		if arg.kind == kindReg && arg.size == candidate.Size {
			return matchStrong
		}
		return matchNone

	case "regmem":
		if arg.kind == kindReg && arg.size == candidate.Size {
			return matchStrong
		}
		if arg.kind == kindMem {
			if arg.size == 0 {
				return matchWeak
			}
			if arg.size == candidate.Size {
				return matchStrong
			}
		}
		return matchNone

	case "mem":
		if arg.kind != kindMem {
			return matchNone
		}
		if candidate.Size == 0 {
			return matchStrong
		}
		if arg.size == 0 {
			return matchWeak
		}
		if arg.size == candidate.Size {
			return matchStrong
		}
		return matchNone

	case "imm":
		if arg.kind != kindImm {
			return matchNone
		}
		if arg.size == candidate.Size {
			return matchStrong
		}
		if arg.size < candidate.Size {
			return matchWeak
		}
		// arg.size > candidate.Size: the candidate is too narrow to hold
		// the value at its true signed requirement. It may still be
		// usable if the value also has a narrower unsigned-only packing
		// that happens to match this candidate's width exactly — but
		// only as a last-resort fallback, never in preference to a wider
		// signed-correct form.
		if arg.unsigned && arg.unsignedSize == candidate.Size {
			return matchWeakUnsigned
		}
		return matchNone

	case "rel":
		if arg.kind != kindRel {
			return matchNone
		}
		if arg.size == 0 {
			return matchWeak
		}
		if arg.size > candidate.Size {
			return matchNone
		}
		if arg.size == candidate.Size {
			return matchStrong
		}
		return matchWeak

	case "xmm":
		if arg.kind == kindXMM {
			return matchStrong
		}
		return matchNone

	case "xmmmem":
		if arg.kind == kindXMM {
			return matchStrong
		}
		if arg.kind == kindMem {
			if arg.size == 0 {
				return matchWeak
			}
			if arg.size == candidate.Size {
				return matchStrong
			}
		}
		return matchNone

	case "st0":
		if arg.kind == kindSt0 {
			return matchStrong
		}
		return matchNone

	case "sti":
		if arg.kind == kindSti {
			return matchStrong
		}
		if arg.kind == kindSt0 {
			return matchWeak
		}
		return matchNone

	default:
		return matchNone
	}
}

// exactTag renders the canonical, unambiguous interpretation of a classified
// argument, used only to probe Mnemonic.ExactMatch's cache. It deliberately
// favors the narrowest, most literal reading (registers as "r<N>", never
// "r/m<N>"; sized memory as "m<N>"); recipes that only accept the wider
// regmem/xmmmem/rel forms simply miss the cache and fall through to the
// full per-candidate scan below, which is unaffected by this choice.
func exactTag(a classifiedArg) string {
	switch a.kind {
	case kindReg:
		return fmt.Sprintf("r%d", a.size)
	case kindMem:
		if a.size == 0 {
			return "m"
		}
		return fmt.Sprintf("m%d", a.size)
	case kindImm:
		return fmt.Sprintf("imm%d", a.size)
	case kindRel:
		if a.size == 0 {
			return "rel"
		}
		return fmt.Sprintf("rel%d", a.size)
	case kindXMM:
		return "xmm"
	case kindSt0:
		return "st(0)"
	case kindSti:
		return "st(i)"
	default:
		return "?"
	}
}

func bitnessOK(r *asm.Recipe, nativeBits int) bool {
	if nativeBits == 64 {
		return r.Allowed64
	}
	return r.Allowed32
}

// SelectRecipe classifies args and picks the first matching Recipe from m,
// per spec §4.5: bitness filtering, then an exact-match cache probe, then a
// declaration-order scan preferring an all-strong match over a match that
// needed at least one weak (widening) acceptance.
func SelectRecipe(m *asm.Mnemonic, args []any, nativeBits int) (*asm.Recipe, []classifiedArg, error) {
	classified := make([]classifiedArg, len(args))
	tags := make([]string, len(args))
	for i, a := range args {
		c, err := classifyArg(a)
		if err != nil {
			return nil, nil, asm.NewTypeError(m.Name, "operand %d: %s", i+1, err)
		}
		classified[i] = c
		tags[i] = exactTag(c)
	}

	if r, ok := m.ExactMatch(strings.Join(tags, ",")); ok && bitnessOK(r, nativeBits) {
		return r, classified, nil
	}

	var weak *asm.Recipe
	var weakLevel matchStrength
	for i := range m.Recipes {
		r := &m.Recipes[i]
		if !bitnessOK(r, nativeBits) || len(r.Operands) != len(classified) {
			continue
		}
		accepted := true
		// level is the weakest per-operand match found for this recipe;
		// a recipe is only as good as its worst-matching operand.
		level := matchStrong
		for j, op := range r.Operands {
			match := checkMode(op, classified[j])
			if match == matchNone {
				accepted = false
				break
			}
			if match < level {
				level = match
			}
		}
		if !accepted {
			continue
		}
		if level == matchStrong {
			return r, classified, nil
		}
		if weak == nil || level > weakLevel {
			weak = r
			weakLevel = level
		}
	}
	if weak != nil {
		return weak, classified, nil
	}
	return nil, nil, asm.NewTypeError(m.Name, "no matching form for operand signature (%s)", strings.Join(tags, ","))
}
