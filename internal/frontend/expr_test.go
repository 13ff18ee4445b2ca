package frontend

import (
	"testing"

	"github.com/keurnel/assembler/architecture/x86_64"
)

func mustParse(t *testing.T, text string, namespace map[string]any) any {
	t.Helper()
	p, err := newParser(text, namespace)
	if err != nil {
		t.Fatalf("newParser(%q): %v", text, err)
	}
	v, err := p.parseExpr()
	if err != nil {
		t.Fatalf("parseExpr(%q): %v", text, err)
	}
	return v
}

func TestParseExprPlainNumber(t *testing.T) {
	v := mustParse(t, "0x2a", nil)
	if v.(int64) != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestParseExprRegisterArithmetic(t *testing.T) {
	v := mustParse(t, "rax + 4", nil)
	p, ok := v.(x86_64.Pointer)
	if !ok {
		t.Fatalf("got %T, want x86_64.Pointer", v)
	}
	if p.Reg1 == nil || *p.Reg1 != x86_64.RAX || p.Disp != 4 {
		t.Errorf("got %+v", p)
	}
}

func TestParseExprNegativeDisplacement(t *testing.T) {
	v := mustParse(t, "rax - 4", nil)
	p := v.(x86_64.Pointer)
	if p.Disp != -4 {
		t.Errorf("Disp = %d, want -4", p.Disp)
	}
}

func TestParseExprScaledIndex(t *testing.T) {
	v := mustParse(t, "rdx*4", nil)
	p, ok := v.(x86_64.Pointer)
	if !ok {
		t.Fatalf("got %T, want x86_64.Pointer", v)
	}
	if p.Scale != 4 || p.Reg1 == nil || *p.Reg1 != x86_64.RDX {
		t.Errorf("got %+v", p)
	}
}

func TestParseExprInvalidScaleRejected(t *testing.T) {
	p, err := newParser("rdx*3", nil)
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected an error for an invalid scale factor")
	}
}

func TestParseExprBracketedEffectiveAddress(t *testing.T) {
	v := mustParse(t, "[rcx + rdx*4 + 8]", nil)
	p, ok := v.(x86_64.Pointer)
	if !ok {
		t.Fatalf("got %T, want x86_64.Pointer", v)
	}
	if p.Reg2 == nil || *p.Reg2 != x86_64.RCX {
		t.Errorf("Reg2 = %v, want rcx", p.Reg2)
	}
	if p.Reg1 == nil || *p.Reg1 != x86_64.RDX || p.Scale != 4 {
		t.Errorf("Reg1/Scale = %v/%d, want rdx/4", p.Reg1, p.Scale)
	}
	if p.Disp != 8 {
		t.Errorf("Disp = %d, want 8", p.Disp)
	}
}

func TestParseExprUnknownIdentBecomesForwardLabel(t *testing.T) {
	v := mustParse(t, "my_label", nil)
	lbl, ok := v.(x86_64.Label)
	if !ok {
		t.Fatalf("got %T, want x86_64.Label", v)
	}
	if string(lbl) != "my_label" {
		t.Errorf("got %q, want %q", lbl, "my_label")
	}
}

func TestParseExprNamespaceOverridesForwardLabel(t *testing.T) {
	v := mustParse(t, "argi0", map[string]any{"argi0": x86_64.RDI})
	reg, ok := v.(x86_64.Register)
	if !ok || reg != x86_64.RDI {
		t.Fatalf("got %v, want rdi", v)
	}
}

func TestParseExprTrailingGarbageRejected(t *testing.T) {
	p, err := newParser("rax 4", nil)
	if err != nil {
		t.Fatalf("newParser: %v", err)
	}
	if _, err := p.parseExpr(); err == nil {
		t.Fatal("expected an error for trailing tokens")
	}
}
