package x86_64

import "github.com/keurnel/assembler/internal/asm"

// Table is the per-mnemonic signature table: one *asm.Mnemonic per
// instruction name, each holding the ordered Recipes that
// SelectRecipe/Encode/EncodeBranch search. Opcode bytes and extension digits
// below are cross-checked against a standalone reference x86 opcode table in
// the retrieved example corpus rather than assumed from memory, per the
// module's own guarding note about SUB/ADD and LEA.
var Table = map[string]*asm.Mnemonic{}

func register(name string, recipes ...asm.Recipe) {
	Table[name] = &asm.Mnemonic{Name: name, Recipes: recipes}
}

func rec(ops []asm.OperandType, template string, encoding []string, allowed64, allowed32 bool) asm.Recipe {
	return asm.NewRecipe(ops, template, encoding, allowed64, allowed32)
}

func init() {
	registerDataMovement()
	registerGroup1Arithmetic()
	registerIncDecPushPop()
	registerLeaXchgNop()
	registerShiftGroup2()
	registerGroup3()
	registerTest()
	registerBranches()
	registerConditionFamilies()
	registerMovExtend()
	registerMisc()
	registerSSE2ScalarDouble()
}

func registerDataMovement() {
	register("mov",
		rec([]asm.OperandType{Reg64, Imm64}, "REX.W + B8+rq", []string{asm.EncOpcodeReg, asm.EncImmediate}, true, false),
		rec([]asm.OperandType{Reg32, Imm32}, "B8+rd", []string{asm.EncOpcodeReg, asm.EncImmediate}, true, true),
		rec([]asm.OperandType{Reg16, Imm16}, "B8+rw", []string{asm.EncOpcodeReg, asm.EncImmediate}, true, true),
		rec([]asm.OperandType{Reg8, Imm8}, "B0+rb", []string{asm.EncOpcodeReg, asm.EncImmediate}, true, true),
		rec([]asm.OperandType{RM64, Reg64}, "REX.W + 89 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, false),
		rec([]asm.OperandType{Reg64, RM64}, "REX.W + 8B /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{RM32, Reg32}, "89 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
		rec([]asm.OperandType{Reg32, RM32}, "8B /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{RM8, Reg8}, "88 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
		rec([]asm.OperandType{Reg8, RM8}, "8A /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{RM64, Imm32}, "REX.W + C7 /0", []string{asm.EncModRMRM, asm.EncImmediate}, true, false),
		rec([]asm.OperandType{RM32, Imm32}, "C7 /0", []string{asm.EncModRMRM, asm.EncImmediate}, true, true),
	)
}

// Group-1 arithmetic opcodes follow the standard /digit layout against 00-38
// (r/m,reg and reg,r/m forms), 80/81 (r/m,imm32), and 83 (r/m,imm8,
// sign-extended) with the extension digit distinguishing the operation.
func registerGroup1Arithmetic() {
	type op struct {
		name string
		base byte // opcode base for "r/m, reg" form (op+0), "reg, r/m" (op+2)
		ext  int  // /digit for the 80/81/83 immediate forms
	}
	ops := []op{
		{"add", 0x00, 0},
		{"or", 0x08, 1},
		{"adc", 0x10, 2},
		{"sbb", 0x18, 3},
		{"and", 0x20, 4},
		{"sub", 0x28, 5},
		{"xor", 0x30, 6},
		{"cmp", 0x38, 7},
	}
	for _, o := range ops {
		rm8r8 := asm.NewRecipe([]asm.OperandType{RM8, Reg8}, hex(o.base), []string{asm.EncModRMRM, asm.EncModRMReg}, true, true)
		rm32r32 := asm.NewRecipe([]asm.OperandType{RM32, Reg32}, hex(o.base+1), []string{asm.EncModRMRM, asm.EncModRMReg}, true, true)
		rm64r64 := asm.NewRecipe([]asm.OperandType{RM64, Reg64}, "REX.W + "+hex(o.base+1), []string{asm.EncModRMRM, asm.EncModRMReg}, true, false)
		r8rm8 := asm.NewRecipe([]asm.OperandType{Reg8, RM8}, hex(o.base+2), []string{asm.EncModRMReg, asm.EncModRMRM}, true, true)
		r32rm32 := asm.NewRecipe([]asm.OperandType{Reg32, RM32}, hex(o.base+3), []string{asm.EncModRMReg, asm.EncModRMRM}, true, true)
		r64rm64 := asm.NewRecipe([]asm.OperandType{Reg64, RM64}, "REX.W + "+hex(o.base+3), []string{asm.EncModRMReg, asm.EncModRMRM}, true, false)
		rm32imm8 := asm.NewRecipe([]asm.OperandType{RM32, Imm8}, "83 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, true)
		rm64imm8 := asm.NewRecipe([]asm.OperandType{RM64, Imm8}, "REX.W + 83 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, false)
		rm32imm32 := asm.NewRecipe([]asm.OperandType{RM32, Imm32}, "81 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, true)
		rm64imm32 := asm.NewRecipe([]asm.OperandType{RM64, Imm32}, "REX.W + 81 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, false)
		register(o.name, rm8r8, rm32r32, rm64r64, r8rm8, r32rm32, r64rm64, rm32imm8, rm64imm8, rm32imm32, rm64imm32)
	}
}

func registerIncDecPushPop() {
	register("inc",
		rec([]asm.OperandType{RM32}, "FF /0", []string{asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{RM64}, "REX.W + FF /0", []string{asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{RM8}, "FE /0", []string{asm.EncModRMRM}, true, true),
	)
	register("dec",
		rec([]asm.OperandType{RM32}, "FF /1", []string{asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{RM64}, "REX.W + FF /1", []string{asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{RM8}, "FE /1", []string{asm.EncModRMRM}, true, true),
	)
	register("push",
		rec([]asm.OperandType{Reg64}, "50+rq", []string{asm.EncOpcodeReg}, true, false),
		rec([]asm.OperandType{RM64}, "FF /6", []string{asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{Imm32}, "68", []string{asm.EncImmediate}, true, true),
		rec([]asm.OperandType{Imm8}, "6A", []string{asm.EncImmediate}, true, true),
	)
	register("pop",
		rec([]asm.OperandType{Reg64}, "58+rq", []string{asm.EncOpcodeReg}, true, false),
		rec([]asm.OperandType{RM64}, "8F /0", []string{asm.EncModRMRM}, true, false),
	)
}

func registerLeaXchgNop() {
	register("lea",
		rec([]asm.OperandType{Reg64, M}, "REX.W + 8D /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{Reg32, M}, "8D /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
	)
	register("xchg",
		rec([]asm.OperandType{RM32, Reg32}, "87 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
		rec([]asm.OperandType{RM64, Reg64}, "REX.W + 87 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, false),
	)
	register("nop", rec(nil, "90", nil, true, true))
}

func registerShiftGroup2() {
	type op struct {
		name string
		ext  int
	}
	for _, o := range []op{{"rol", 0}, {"ror", 1}, {"rcl", 2}, {"rcr", 3}, {"shl", 4}, {"shr", 5}, {"sar", 7}} {
		register(o.name,
			rec([]asm.OperandType{RM32, Imm8}, "C1 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, true),
			rec([]asm.OperandType{RM64, Imm8}, "REX.W + C1 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, false),
			rec([]asm.OperandType{RM8, Imm8}, "C0 /"+digit(o.ext), []string{asm.EncModRMRM, asm.EncImmediate}, true, true),
		)
	}
}

func registerGroup3() {
	type op struct {
		name string
		ext  int
	}
	for _, o := range []op{{"not", 2}, {"neg", 3}, {"mul", 4}, {"imul", 5}, {"div", 6}, {"idiv", 7}} {
		register(o.name,
			rec([]asm.OperandType{RM32}, "F7 /"+digit(o.ext), []string{asm.EncModRMRM}, true, true),
			rec([]asm.OperandType{RM64}, "REX.W + F7 /"+digit(o.ext), []string{asm.EncModRMRM}, true, false),
			rec([]asm.OperandType{RM8}, "F6 /"+digit(o.ext), []string{asm.EncModRMRM}, true, true),
		)
	}
}

func registerTest() {
	register("test",
		rec([]asm.OperandType{RM8, Reg8}, "84 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
		rec([]asm.OperandType{RM32, Reg32}, "85 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
		rec([]asm.OperandType{RM64, Reg64}, "REX.W + 85 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, false),
		rec([]asm.OperandType{RM32, Imm32}, "F7 /0", []string{asm.EncModRMRM, asm.EncImmediate}, true, true),
		rec([]asm.OperandType{RM64, Imm32}, "REX.W + F7 /0", []string{asm.EncModRMRM, asm.EncImmediate}, true, false),
	)
}

func registerBranches() {
	// Rel32 is declared before Rel8: a Label target (spec §4.4/§4.7) always
	// classifies with size 0 and therefore only ever weakly matches either
	// form, so declaration order alone decides which one a label jump gets.
	// With no relaxation/optimisation pass (spec §1 Non-goals) to retry a
	// too-narrow rel8 encoding once the real distance is known, label
	// targets must default to the widest safe form; a literal RelTarget
	// value that actually fits in a byte still finds Rel8 via its own
	// strong match regardless of this order.
	register("jmp",
		rec([]asm.OperandType{Rel32}, "E9", []string{asm.EncRelative}, true, true),
		rec([]asm.OperandType{Rel8}, "EB", []string{asm.EncRelative}, true, true),
		rec([]asm.OperandType{RM64}, "REX.W + FF /4", []string{asm.EncModRMRM}, true, false),
	)
	register("call",
		rec([]asm.OperandType{Rel32}, "E8", []string{asm.EncRelative}, true, true),
		rec([]asm.OperandType{RM64}, "REX.W + FF /2", []string{asm.EncModRMRM}, true, false),
	)
	register("ret", rec(nil, "C3", nil, true, true))
}

// Condition-code suffixes and their 4-bit encodings, shared by Jcc, SETcc
// and CMOVcc; aliases (e.g. "jae"/"jnb"/"jnc") map to the same code.
var conditionCodes = []struct {
	suffix string
	code   byte
}{
	{"o", 0x0}, {"no", 0x1},
	{"b", 0x2}, {"c", 0x2}, {"nae", 0x2},
	{"ae", 0x3}, {"nb", 0x3}, {"nc", 0x3},
	{"e", 0x4}, {"z", 0x4},
	{"ne", 0x5}, {"nz", 0x5},
	{"be", 0x6}, {"na", 0x6},
	{"a", 0x7}, {"nbe", 0x7},
	{"s", 0x8}, {"ns", 0x9},
	{"p", 0xA}, {"pe", 0xA},
	{"np", 0xB}, {"po", 0xB},
	{"l", 0xC}, {"nge", 0xC},
	{"ge", 0xD}, {"nl", 0xD},
	{"le", 0xE}, {"ng", 0xE},
	{"g", 0xF}, {"nle", 0xF},
}

func registerConditionFamilies() {
	for _, cc := range conditionCodes {
		register("j"+cc.suffix,
			rec([]asm.OperandType{Rel32}, "0F "+hex(0x80+cc.code), []string{asm.EncRelative}, true, true),
			rec([]asm.OperandType{Rel8}, hex(0x70+cc.code), []string{asm.EncRelative}, true, true),
		)
		register("set"+cc.suffix,
			rec([]asm.OperandType{RM8}, "0F "+hex(0x90+cc.code)+" /0", []string{asm.EncModRMRM}, true, true),
		)
		register("cmov"+cc.suffix,
			rec([]asm.OperandType{Reg32, RM32}, "0F "+hex(0x40+cc.code)+" /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
			rec([]asm.OperandType{Reg64, RM64}, "REX.W + 0F "+hex(0x40+cc.code)+" /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
		)
	}
}

func registerMovExtend() {
	register("movzx",
		rec([]asm.OperandType{Reg32, RM8}, "0F B6 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{Reg64, RM8}, "REX.W + 0F B6 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{Reg32, RM16}, "0F B7 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{Reg64, RM16}, "REX.W + 0F B7 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
	)
	register("movsx",
		rec([]asm.OperandType{Reg32, RM8}, "0F BE /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{Reg64, RM8}, "REX.W + 0F BE /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
		rec([]asm.OperandType{Reg32, RM16}, "0F BF /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{Reg64, RM16}, "REX.W + 0F BF /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
	)
	register("movsxd",
		rec([]asm.OperandType{Reg64, RM32}, "REX.W + 63 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
	)
}

func registerMisc() {
	register("syscall", rec(nil, "0F 05", nil, true, false))
	register("int3", rec(nil, "CC", nil, true, true))
	register("cpuid", rec(nil, "0F A2", nil, true, true))
	register("rdtsc", rec(nil, "0F 31", nil, true, true))
	register("cdq", rec(nil, "99", nil, true, true))
	register("cqo", rec(nil, "REX.W + 99", nil, true, false))
	register("lahf", rec(nil, "9F", nil, true, true))
	register("sahf", rec(nil, "9E", nil, true, true))
}

func registerSSE2ScalarDouble() {
	register("movsd",
		rec([]asm.OperandType{XMM, XMMM64}, "F2 0F 10 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{M64, XMM}, "F2 0F 11 /r", []string{asm.EncModRMRM, asm.EncModRMReg}, true, true),
	)
	register("addsd", rec([]asm.OperandType{XMM, XMMM64}, "F2 0F 58 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("subsd", rec([]asm.OperandType{XMM, XMMM64}, "F2 0F 5C /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("mulsd", rec([]asm.OperandType{XMM, XMMM64}, "F2 0F 59 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("divsd", rec([]asm.OperandType{XMM, XMMM64}, "F2 0F 5E /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("ucomisd", rec([]asm.OperandType{XMM, XMMM64}, "66 0F 2E /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("xorpd", rec([]asm.OperandType{XMM, XMMM64}, "66 0F 57 /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true))
	register("cvtsi2sd",
		rec([]asm.OperandType{XMM, RM32}, "F2 0F 2A /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{XMM, RM64}, "F2 REX.W + 0F 2A /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
	)
	register("cvttsd2si",
		rec([]asm.OperandType{Reg32, XMMM64}, "F2 0F 2C /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, true),
		rec([]asm.OperandType{Reg64, XMMM64}, "F2 REX.W + 0F 2C /r", []string{asm.EncModRMReg, asm.EncModRMRM}, true, false),
	)
}

func hex(b byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0xF]})
}

func digit(d int) string {
	const digits = "01234567"
	return string(digits[d])
}
