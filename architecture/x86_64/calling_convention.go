package x86_64

import "runtime"

// ArgInt returns the integer/pointer argument register for position n (0-based)
// of the host platform's C calling convention. ArgFloat is the equivalent for
// floating-point arguments passed in XMM registers. Both return the zero
// Register and false once n exceeds the convention's register-passed slots;
// a full implementation would spill the remainder to the stack, which this
// assembler's target programs (short leaf routines) never need.
func ArgInt(n int) (Register, bool) {
	regs := argIntRegisters()
	if n < 0 || n >= len(regs) {
		return Register{}, false
	}
	return regs[n], true
}

func ArgFloat(n int) (Register, bool) {
	regs := argFloatRegisters()
	if n < 0 || n >= len(regs) {
		return Register{}, false
	}
	return regs[n], true
}

func argIntRegisters() []Register {
	if runtime.GOOS == "windows" {
		return []Register{RCX, RDX, R8, R9}
	}
	return []Register{RDI, RSI, RDX, RCX, R8, R9}
}

func argFloatRegisters() []Register {
	if runtime.GOOS == "windows" {
		return []Register{XMM0, XMM1, XMM2, XMM3}
	}
	return []Register{XMM0, XMM1, XMM2, XMM3, XMM4, XMM5, XMM6, XMM7}
}

// ReturnInt and ReturnFloat name the registers that carry a routine's return
// value under the same convention.
func ReturnInt() Register   { return RAX }
func ReturnFloat() Register { return XMM0 }
