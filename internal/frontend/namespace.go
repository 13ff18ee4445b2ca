package frontend

import (
	"runtime"

	"github.com/keurnel/assembler/architecture/x86_64"
)

// registerAliases is the identifier namespace's register half: every name
// in x86_64.RegistersByName, plus bracket-free spellings of the x87 stack
// registers (st0..st7) since the lexer does not tokenise parentheses and
// the catalogue's canonical names ("st(0)"..) are written for diagnostics,
// not for this grammar.
var registerAliases = buildRegisterAliases()

func buildRegisterAliases() map[string]x86_64.Register {
	out := make(map[string]x86_64.Register, len(x86_64.RegistersByName)+8)
	for name, reg := range x86_64.RegistersByName {
		out[name] = reg
	}
	for i := 0; i < 8; i++ {
		out[stAliasName(i)] = x86_64.ST(i)
	}
	return out
}

func stAliasName(i int) string {
	return "st" + string(rune('0'+i))
}

// CallingConventionSymbols returns the standard calling-convention register
// aliases spec §6 names (argi0.., argf0..), keyed to the host OS's actual
// convention. Merge the result into Assemble's extra-symbols map so a
// program can write `mov rax, argi0` instead of naming a fixed register.
func CallingConventionSymbols() map[string]any {
	out := map[string]any{}
	windows := runtime.GOOS == "windows"
	var ints, floats []x86_64.Register
	if windows {
		ints = []x86_64.Register{x86_64.RCX, x86_64.RDX, x86_64.R8, x86_64.R9}
		floats = []x86_64.Register{x86_64.XMM0, x86_64.XMM1, x86_64.XMM2, x86_64.XMM3}
	} else {
		ints = []x86_64.Register{x86_64.RDI, x86_64.RSI, x86_64.RDX, x86_64.RCX, x86_64.R8, x86_64.R9}
		floats = []x86_64.Register{x86_64.XMM0, x86_64.XMM1, x86_64.XMM2, x86_64.XMM3, x86_64.XMM4, x86_64.XMM5, x86_64.XMM6, x86_64.XMM7}
	}
	for i, r := range ints {
		out["argi"+string(rune('0'+i))] = r
	}
	for i, r := range floats {
		out["argf"+string(rune('0'+i))] = r
	}
	return out
}
