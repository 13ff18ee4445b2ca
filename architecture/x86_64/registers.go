package x86_64

// Class classifies a Register per the data model's `class` attribute.
type Class int

const (
	ClassGP Class = iota
	ClassMMX
	ClassXMM
	ClassST
	ClassSegment
	ClassControl
	ClassDebug
)

// Register is an immutable entry in the fixed catalogue of named machine
// registers. Two Register values with the same Name are equal; the
// catalogue below is the single source of truth referenced by name lookups
// (RegistersByName) and by every Pointer/ModR/M/SIB computation.
type Register struct {
	Name     string
	Class    Class
	Width    int  // bits: 8, 16, 32, 64, 80 (x87), or 128 (xmm)
	Encoding byte // 0-15; the low 3 bits are the ModR/M/SIB field value
}

// Field returns the 3-bit value that goes into a ModR/M or SIB field.
func (r Register) Field() byte { return r.Encoding & 0x7 }

// NeedsRex reports whether encoding this register requires the REX
// extension bit (R, X, or B, depending on which slot it occupies).
func (r Register) NeedsRex() bool { return r.Encoding&0x8 != 0 }

// String renders the register's assembly-syntax name.
func (r Register) String() string { return r.Name }

// General Purpose Registers - 64-bit
var (
	RAX = Register{Name: "rax", Class: ClassGP, Width: 64, Encoding: 0}
	RCX = Register{Name: "rcx", Class: ClassGP, Width: 64, Encoding: 1}
	RDX = Register{Name: "rdx", Class: ClassGP, Width: 64, Encoding: 2}
	RBX = Register{Name: "rbx", Class: ClassGP, Width: 64, Encoding: 3}
	RSP = Register{Name: "rsp", Class: ClassGP, Width: 64, Encoding: 4}
	RBP = Register{Name: "rbp", Class: ClassGP, Width: 64, Encoding: 5}
	RSI = Register{Name: "rsi", Class: ClassGP, Width: 64, Encoding: 6}
	RDI = Register{Name: "rdi", Class: ClassGP, Width: 64, Encoding: 7}
	R8  = Register{Name: "r8", Class: ClassGP, Width: 64, Encoding: 8}
	R9  = Register{Name: "r9", Class: ClassGP, Width: 64, Encoding: 9}
	R10 = Register{Name: "r10", Class: ClassGP, Width: 64, Encoding: 10}
	R11 = Register{Name: "r11", Class: ClassGP, Width: 64, Encoding: 11}
	R12 = Register{Name: "r12", Class: ClassGP, Width: 64, Encoding: 12}
	R13 = Register{Name: "r13", Class: ClassGP, Width: 64, Encoding: 13}
	R14 = Register{Name: "r14", Class: ClassGP, Width: 64, Encoding: 14}
	R15 = Register{Name: "r15", Class: ClassGP, Width: 64, Encoding: 15}
)

// General Purpose Registers - 32-bit
var (
	EAX  = Register{Name: "eax", Class: ClassGP, Width: 32, Encoding: 0}
	ECX  = Register{Name: "ecx", Class: ClassGP, Width: 32, Encoding: 1}
	EDX  = Register{Name: "edx", Class: ClassGP, Width: 32, Encoding: 2}
	EBX  = Register{Name: "ebx", Class: ClassGP, Width: 32, Encoding: 3}
	ESP  = Register{Name: "esp", Class: ClassGP, Width: 32, Encoding: 4}
	EBP  = Register{Name: "ebp", Class: ClassGP, Width: 32, Encoding: 5}
	ESI  = Register{Name: "esi", Class: ClassGP, Width: 32, Encoding: 6}
	EDI  = Register{Name: "edi", Class: ClassGP, Width: 32, Encoding: 7}
	R8D  = Register{Name: "r8d", Class: ClassGP, Width: 32, Encoding: 8}
	R9D  = Register{Name: "r9d", Class: ClassGP, Width: 32, Encoding: 9}
	R10D = Register{Name: "r10d", Class: ClassGP, Width: 32, Encoding: 10}
	R11D = Register{Name: "r11d", Class: ClassGP, Width: 32, Encoding: 11}
	R12D = Register{Name: "r12d", Class: ClassGP, Width: 32, Encoding: 12}
	R13D = Register{Name: "r13d", Class: ClassGP, Width: 32, Encoding: 13}
	R14D = Register{Name: "r14d", Class: ClassGP, Width: 32, Encoding: 14}
	R15D = Register{Name: "r15d", Class: ClassGP, Width: 32, Encoding: 15}
)

// General Purpose Registers - 16-bit
var (
	AX   = Register{Name: "ax", Class: ClassGP, Width: 16, Encoding: 0}
	CX   = Register{Name: "cx", Class: ClassGP, Width: 16, Encoding: 1}
	DX   = Register{Name: "dx", Class: ClassGP, Width: 16, Encoding: 2}
	BX   = Register{Name: "bx", Class: ClassGP, Width: 16, Encoding: 3}
	SP   = Register{Name: "sp", Class: ClassGP, Width: 16, Encoding: 4}
	BP   = Register{Name: "bp", Class: ClassGP, Width: 16, Encoding: 5}
	SI   = Register{Name: "si", Class: ClassGP, Width: 16, Encoding: 6}
	DI   = Register{Name: "di", Class: ClassGP, Width: 16, Encoding: 7}
	R8W  = Register{Name: "r8w", Class: ClassGP, Width: 16, Encoding: 8}
	R9W  = Register{Name: "r9w", Class: ClassGP, Width: 16, Encoding: 9}
	R10W = Register{Name: "r10w", Class: ClassGP, Width: 16, Encoding: 10}
	R11W = Register{Name: "r11w", Class: ClassGP, Width: 16, Encoding: 11}
	R12W = Register{Name: "r12w", Class: ClassGP, Width: 16, Encoding: 12}
	R13W = Register{Name: "r13w", Class: ClassGP, Width: 16, Encoding: 13}
	R14W = Register{Name: "r14w", Class: ClassGP, Width: 16, Encoding: 14}
	R15W = Register{Name: "r15w", Class: ClassGP, Width: 16, Encoding: 15}
)

// General Purpose Registers - 8-bit (low byte, REX-addressable)
var (
	AL   = Register{Name: "al", Class: ClassGP, Width: 8, Encoding: 0}
	CL   = Register{Name: "cl", Class: ClassGP, Width: 8, Encoding: 1}
	DL   = Register{Name: "dl", Class: ClassGP, Width: 8, Encoding: 2}
	BL   = Register{Name: "bl", Class: ClassGP, Width: 8, Encoding: 3}
	SPL  = Register{Name: "spl", Class: ClassGP, Width: 8, Encoding: 4}
	BPL  = Register{Name: "bpl", Class: ClassGP, Width: 8, Encoding: 5}
	SIL  = Register{Name: "sil", Class: ClassGP, Width: 8, Encoding: 6}
	DIL  = Register{Name: "dil", Class: ClassGP, Width: 8, Encoding: 7}
	R8B  = Register{Name: "r8b", Class: ClassGP, Width: 8, Encoding: 8}
	R9B  = Register{Name: "r9b", Class: ClassGP, Width: 8, Encoding: 9}
	R10B = Register{Name: "r10b", Class: ClassGP, Width: 8, Encoding: 10}
	R11B = Register{Name: "r11b", Class: ClassGP, Width: 8, Encoding: 11}
	R12B = Register{Name: "r12b", Class: ClassGP, Width: 8, Encoding: 12}
	R13B = Register{Name: "r13b", Class: ClassGP, Width: 8, Encoding: 13}
	R14B = Register{Name: "r14b", Class: ClassGP, Width: 8, Encoding: 14}
	R15B = Register{Name: "r15b", Class: ClassGP, Width: 8, Encoding: 15}
)

// General Purpose Registers - 8-bit (high byte, legacy, no REX)
var (
	AH = Register{Name: "ah", Class: ClassGP, Width: 8, Encoding: 4}
	CH = Register{Name: "ch", Class: ClassGP, Width: 8, Encoding: 5}
	DH = Register{Name: "dh", Class: ClassGP, Width: 8, Encoding: 6}
	BH = Register{Name: "bh", Class: ClassGP, Width: 8, Encoding: 7}
)

// Segment Registers
var (
	ES = Register{Name: "es", Class: ClassSegment, Width: 16, Encoding: 0}
	CS = Register{Name: "cs", Class: ClassSegment, Width: 16, Encoding: 1}
	SS = Register{Name: "ss", Class: ClassSegment, Width: 16, Encoding: 2}
	DS = Register{Name: "ds", Class: ClassSegment, Width: 16, Encoding: 3}
	FS = Register{Name: "fs", Class: ClassSegment, Width: 16, Encoding: 4}
	GS = Register{Name: "gs", Class: ClassSegment, Width: 16, Encoding: 5}
)

// Control Registers
var (
	CR0 = Register{Name: "cr0", Class: ClassControl, Width: 64, Encoding: 0}
	CR2 = Register{Name: "cr2", Class: ClassControl, Width: 64, Encoding: 2}
	CR3 = Register{Name: "cr3", Class: ClassControl, Width: 64, Encoding: 3}
	CR4 = Register{Name: "cr4", Class: ClassControl, Width: 64, Encoding: 4}
	CR8 = Register{Name: "cr8", Class: ClassControl, Width: 64, Encoding: 8}
)

// Debug Registers
var (
	DR0 = Register{Name: "dr0", Class: ClassDebug, Width: 64, Encoding: 0}
	DR1 = Register{Name: "dr1", Class: ClassDebug, Width: 64, Encoding: 1}
	DR2 = Register{Name: "dr2", Class: ClassDebug, Width: 64, Encoding: 2}
	DR3 = Register{Name: "dr3", Class: ClassDebug, Width: 64, Encoding: 3}
	DR6 = Register{Name: "dr6", Class: ClassDebug, Width: 64, Encoding: 6}
	DR7 = Register{Name: "dr7", Class: ClassDebug, Width: 64, Encoding: 7}
)

// MMX Registers
var (
	MM0 = Register{Name: "mm0", Class: ClassMMX, Width: 64, Encoding: 0}
	MM1 = Register{Name: "mm1", Class: ClassMMX, Width: 64, Encoding: 1}
	MM2 = Register{Name: "mm2", Class: ClassMMX, Width: 64, Encoding: 2}
	MM3 = Register{Name: "mm3", Class: ClassMMX, Width: 64, Encoding: 3}
	MM4 = Register{Name: "mm4", Class: ClassMMX, Width: 64, Encoding: 4}
	MM5 = Register{Name: "mm5", Class: ClassMMX, Width: 64, Encoding: 5}
	MM6 = Register{Name: "mm6", Class: ClassMMX, Width: 64, Encoding: 6}
	MM7 = Register{Name: "mm7", Class: ClassMMX, Width: 64, Encoding: 7}
)

// XMM Registers (128-bit SSE/SSE2)
var (
	XMM0  = Register{Name: "xmm0", Class: ClassXMM, Width: 128, Encoding: 0}
	XMM1  = Register{Name: "xmm1", Class: ClassXMM, Width: 128, Encoding: 1}
	XMM2  = Register{Name: "xmm2", Class: ClassXMM, Width: 128, Encoding: 2}
	XMM3  = Register{Name: "xmm3", Class: ClassXMM, Width: 128, Encoding: 3}
	XMM4  = Register{Name: "xmm4", Class: ClassXMM, Width: 128, Encoding: 4}
	XMM5  = Register{Name: "xmm5", Class: ClassXMM, Width: 128, Encoding: 5}
	XMM6  = Register{Name: "xmm6", Class: ClassXMM, Width: 128, Encoding: 6}
	XMM7  = Register{Name: "xmm7", Class: ClassXMM, Width: 128, Encoding: 7}
	XMM8  = Register{Name: "xmm8", Class: ClassXMM, Width: 128, Encoding: 8}
	XMM9  = Register{Name: "xmm9", Class: ClassXMM, Width: 128, Encoding: 9}
	XMM10 = Register{Name: "xmm10", Class: ClassXMM, Width: 128, Encoding: 10}
	XMM11 = Register{Name: "xmm11", Class: ClassXMM, Width: 128, Encoding: 11}
	XMM12 = Register{Name: "xmm12", Class: ClassXMM, Width: 128, Encoding: 12}
	XMM13 = Register{Name: "xmm13", Class: ClassXMM, Width: 128, Encoding: 13}
	XMM14 = Register{Name: "xmm14", Class: ClassXMM, Width: 128, Encoding: 14}
	XMM15 = Register{Name: "xmm15", Class: ClassXMM, Width: 128, Encoding: 15}
)

// x87 FPU stack registers. ST encodes its stack-relative position 0-7; there
// is no REX-extended form.
var (
	ST0 = Register{Name: "st(0)", Class: ClassST, Width: 80, Encoding: 0}
	ST1 = Register{Name: "st(1)", Class: ClassST, Width: 80, Encoding: 1}
	ST2 = Register{Name: "st(2)", Class: ClassST, Width: 80, Encoding: 2}
	ST3 = Register{Name: "st(3)", Class: ClassST, Width: 80, Encoding: 3}
	ST4 = Register{Name: "st(4)", Class: ClassST, Width: 80, Encoding: 4}
	ST5 = Register{Name: "st(5)", Class: ClassST, Width: 80, Encoding: 5}
	ST6 = Register{Name: "st(6)", Class: ClassST, Width: 80, Encoding: 6}
	ST7 = Register{Name: "st(7)", Class: ClassST, Width: 80, Encoding: 7}
)

// ST returns the x87 stack register at position i (0-7).
func ST(i int) Register {
	switch i {
	case 0:
		return ST0
	case 1:
		return ST1
	case 2:
		return ST2
	case 3:
		return ST3
	case 4:
		return ST4
	case 5:
		return ST5
	case 6:
		return ST6
	case 7:
		return ST7
	default:
		panic("x86_64: st(i) requires 0 <= i < 8")
	}
}

// RegistersByName looks up a catalogue entry by its assembly-syntax name, as
// used by the textual front-end.
var RegistersByName = map[string]Register{
	"rax": RAX, "rcx": RCX, "rdx": RDX, "rbx": RBX,
	"rsp": RSP, "rbp": RBP, "rsi": RSI, "rdi": RDI,
	"r8": R8, "r9": R9, "r10": R10, "r11": R11,
	"r12": R12, "r13": R13, "r14": R14, "r15": R15,

	"eax": EAX, "ecx": ECX, "edx": EDX, "ebx": EBX,
	"esp": ESP, "ebp": EBP, "esi": ESI, "edi": EDI,
	"r8d": R8D, "r9d": R9D, "r10d": R10D, "r11d": R11D,
	"r12d": R12D, "r13d": R13D, "r14d": R14D, "r15d": R15D,

	"ax": AX, "cx": CX, "dx": DX, "bx": BX,
	"sp": SP, "bp": BP, "si": SI, "di": DI,
	"r8w": R8W, "r9w": R9W, "r10w": R10W, "r11w": R11W,
	"r12w": R12W, "r13w": R13W, "r14w": R14W, "r15w": R15W,

	"al": AL, "cl": CL, "dl": DL, "bl": BL,
	"spl": SPL, "bpl": BPL, "sil": SIL, "dil": DIL,
	"r8b": R8B, "r9b": R9B, "r10b": R10B, "r11b": R11B,
	"r12b": R12B, "r13b": R13B, "r14b": R14B, "r15b": R15B,

	"ah": AH, "ch": CH, "dh": DH, "bh": BH,

	"es": ES, "cs": CS, "ss": SS, "ds": DS, "fs": FS, "gs": GS,

	"cr0": CR0, "cr2": CR2, "cr3": CR3, "cr4": CR4, "cr8": CR8,

	"dr0": DR0, "dr1": DR1, "dr2": DR2, "dr3": DR3, "dr6": DR6, "dr7": DR7,

	"mm0": MM0, "mm1": MM1, "mm2": MM2, "mm3": MM3,
	"mm4": MM4, "mm5": MM5, "mm6": MM6, "mm7": MM7,

	"xmm0": XMM0, "xmm1": XMM1, "xmm2": XMM2, "xmm3": XMM3,
	"xmm4": XMM4, "xmm5": XMM5, "xmm6": XMM6, "xmm7": XMM7,
	"xmm8": XMM8, "xmm9": XMM9, "xmm10": XMM10, "xmm11": XMM11,
	"xmm12": XMM12, "xmm13": XMM13, "xmm14": XMM14, "xmm15": XMM15,

	"st(0)": ST0, "st(1)": ST1, "st(2)": ST2, "st(3)": ST3,
	"st(4)": ST4, "st(5)": ST5, "st(6)": ST6, "st(7)": ST7,
}
