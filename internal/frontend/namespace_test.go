package frontend

import (
	"testing"

	"github.com/keurnel/assembler/architecture/x86_64"
)

func TestRegisterAliasesIncludeBracketFreeST(t *testing.T) {
	for i := 0; i < 8; i++ {
		got, ok := registerAliases[stAliasName(i)]
		if !ok {
			t.Fatalf("missing alias for st%d", i)
		}
		if got != x86_64.ST(i) {
			t.Errorf("st%d alias = %+v, want %+v", i, got, x86_64.ST(i))
		}
	}
}

func TestRegisterAliasesIncludeCatalogue(t *testing.T) {
	if got, ok := registerAliases["rax"]; !ok || got != x86_64.RAX {
		t.Errorf("registerAliases[\"rax\"] = %+v, ok=%v", got, ok)
	}
}

func TestCallingConventionSymbolsHasFirstIntArg(t *testing.T) {
	extra := CallingConventionSymbols()
	if _, ok := extra["argi0"]; !ok {
		t.Fatal("expected argi0 to be defined")
	}
	if _, ok := extra["argf0"]; !ok {
		t.Fatal("expected argf0 to be defined")
	}
}
