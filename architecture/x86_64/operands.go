package x86_64

import "github.com/keurnel/assembler/internal/asm"

// Operand-type tags, per spec §4.3's vocabulary. Each is an
// asm.OperandType recipe slot: Identifier is the tag used in signature
// matching, Type classifies the slot's acceptance rule (see
// checkMode in signature.go), Size is the operand width in bits (0 for
// width-unspecified `m`).
var (
	Reg8  = asm.OperandType{Identifier: "r8", Type: "reg", Size: 8}
	Reg16 = asm.OperandType{Identifier: "r16", Type: "reg", Size: 16}
	Reg32 = asm.OperandType{Identifier: "r32", Type: "reg", Size: 32}
	Reg64 = asm.OperandType{Identifier: "r64", Type: "reg", Size: 64}

	RM8  = asm.OperandType{Identifier: "r/m8", Type: "regmem", Size: 8}
	RM16 = asm.OperandType{Identifier: "r/m16", Type: "regmem", Size: 16}
	RM32 = asm.OperandType{Identifier: "r/m32", Type: "regmem", Size: 32}
	RM64 = asm.OperandType{Identifier: "r/m64", Type: "regmem", Size: 64}

	M    = asm.OperandType{Identifier: "m", Type: "mem", Size: 0}
	M8   = asm.OperandType{Identifier: "m8", Type: "mem", Size: 8}
	M16  = asm.OperandType{Identifier: "m16", Type: "mem", Size: 16}
	M32  = asm.OperandType{Identifier: "m32", Type: "mem", Size: 32}
	M64  = asm.OperandType{Identifier: "m64", Type: "mem", Size: 64}
	M80  = asm.OperandType{Identifier: "m80", Type: "mem", Size: 80}

	Imm8  = asm.OperandType{Identifier: "imm8", Type: "imm", Size: 8}
	Imm16 = asm.OperandType{Identifier: "imm16", Type: "imm", Size: 16}
	Imm32 = asm.OperandType{Identifier: "imm32", Type: "imm", Size: 32}
	Imm64 = asm.OperandType{Identifier: "imm64", Type: "imm", Size: 64}

	Rel8  = asm.OperandType{Identifier: "rel8", Type: "rel", Size: 8}
	Rel16 = asm.OperandType{Identifier: "rel16", Type: "rel", Size: 16}
	Rel32 = asm.OperandType{Identifier: "rel32", Type: "rel", Size: 32}

	XMM    = asm.OperandType{Identifier: "xmm", Type: "xmm", Size: 128}
	XMMM64 = asm.OperandType{Identifier: "xmm/m64", Type: "xmmmem", Size: 64}

	St0 = asm.OperandType{Identifier: "st(0)", Type: "st0", Size: 80}
	Sti = asm.OperandType{Identifier: "st(i)", Type: "sti", Size: 80}
)

// OperandCounts enumerates the operand-count arities this encoder supports.
var OperandCounts = []int{0, 1, 2, 3}
