package x86_64

import "testing"

func TestPointerPlusRegisterFillsSlots(t *testing.T) {
	p, err := Of(RCX).Plus(RDX)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if p.Reg1 == nil || *p.Reg1 != RCX {
		t.Fatalf("Reg1 = %v, want rcx", p.Reg1)
	}
	if p.Reg2 == nil || *p.Reg2 != RDX {
		t.Fatalf("Reg2 = %v, want rdx", p.Reg2)
	}
}

func TestPointerPlusThirdRegisterFails(t *testing.T) {
	p, err := Of(RCX).Plus(RDX)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if _, err := p.Plus(RBX); err == nil {
		t.Fatal("expected an error adding a third register")
	}
}

func TestPointerPlusIntAccumulatesDisp(t *testing.T) {
	p, err := Of(RAX).Plus(8)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	p, err = p.Plus(4)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if !p.HasDisp || p.Disp != 12 {
		t.Fatalf("Disp = %d (HasDisp=%v), want 12", p.Disp, p.HasDisp)
	}
}

func TestPointerPlusLabelRejectsSecond(t *testing.T) {
	p, err := Of(RAX).Plus(Label("loop"))
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if _, err := p.Plus(Label("other")); err == nil {
		t.Fatal("expected an error attaching a second label")
	}
}

func TestScaledRejectsInvalidFactor(t *testing.T) {
	if _, err := Scaled(RDX, 3); err == nil {
		t.Fatal("expected an error for scale 3")
	}
	for _, s := range []int{1, 2, 4, 8} {
		p, err := Scaled(RDX, s)
		if err != nil {
			t.Fatalf("Scaled(rdx, %d): %v", s, err)
		}
		if p.Scale != s {
			t.Errorf("Scale = %d, want %d", p.Scale, s)
		}
	}
}

// TestPointerCommutativity covers spec §8 scenario (f): [rcx + rdx*4 + 8]
// must be reachable, and equivalent, regardless of term order.
func TestPointerCommutativity(t *testing.T) {
	scaled, err := Scaled(RDX, 4)
	if err != nil {
		t.Fatalf("Scaled: %v", err)
	}

	a, err := Of(RCX).Plus(scaled)
	if err != nil {
		t.Fatalf("a: %v", err)
	}
	a, err = a.Plus(8)
	if err != nil {
		t.Fatalf("a: %v", err)
	}

	b, err := Pointer{Disp: 8, HasDisp: true}.Plus(RCX)
	if err != nil {
		t.Fatalf("b: %v", err)
	}
	b, err = b.Plus(scaled)
	if err != nil {
		t.Fatalf("b: %v", err)
	}

	if a.Reg1 == nil || b.Reg1 == nil || *a.Reg1 != *b.Reg1 {
		t.Errorf("Reg1 mismatch: a=%v b=%v", a.Reg1, b.Reg1)
	}
	if a.Reg2 == nil || b.Reg2 == nil || *a.Reg2 != *b.Reg2 {
		t.Errorf("Reg2 mismatch: a=%v b=%v", a.Reg2, b.Reg2)
	}
	if a.Scale != b.Scale || a.Disp != b.Disp {
		t.Errorf("scale/disp mismatch: a=(%d,%d) b=(%d,%d)", a.Scale, a.Disp, b.Scale, b.Disp)
	}
}

func TestPointerCheckArchRejectsNarrowRegister(t *testing.T) {
	p := Of(AX)
	if err := p.checkArch(64); err == nil {
		t.Fatal("expected 16-bit register to be rejected on a 64-bit target")
	}
	if err := Of(EAX).checkArch(64); err != nil {
		t.Errorf("32-bit register should be valid on a 64-bit target: %v", err)
	}
}

func TestPointerStringWidthPrefix(t *testing.T) {
	p := Dword(Of(RAX))
	want := "dword ptr [rax]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestLabelPlusMinus(t *testing.T) {
	p := Label("top").Plus(4)
	if p.Label != "top" || p.Disp != 4 {
		t.Fatalf("Label.Plus: got %+v", p)
	}
	m := Label("top").Minus(4)
	if m.Disp != -4 {
		t.Fatalf("Label.Minus: got %+v", m)
	}
}
