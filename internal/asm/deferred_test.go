package asm

import "testing"

func TestFillExprEvalRelative(t *testing.T) {
	symbols := map[string]int64{"loop_top": 0x1000, "next_instr_addr": 0x1005}
	f := FillExpr{Label: "loop_top", RelativeTo: "next_instr_addr"}
	got, err := f.Eval(symbols)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != -5 {
		t.Errorf("got %d, want -5", got)
	}
}

func TestFillExprEvalUndefinedSymbol(t *testing.T) {
	_, err := FillExpr{Label: "nowhere"}.Eval(map[string]int64{})
	if err == nil {
		t.Fatal("expected an undefined-symbol error")
	}
}

func TestCodeReplaceAndCompile(t *testing.T) {
	c := NewCode([]byte{0xE9, 0x00, 0x00, 0x00, 0x00})
	c.Replace(1, FillExpr{Label: "target", RelativeTo: "next_instr_addr"}, 4)
	out, err := c.Compile(map[string]int64{"target": 100, "next_instr_addr": 5})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []byte{0xE9, 95, 0, 0, 0}
	if string(out) != string(want) {
		t.Errorf("got % X, want % X", out, want)
	}
}

func TestCodeCompileOverflowRejected(t *testing.T) {
	c := NewCode([]byte{0x00})
	c.Replace(0, FillExpr{Label: "big"}, 1)
	if _, err := c.Compile(map[string]int64{"big": 1000}); err == nil {
		t.Fatal("expected a too-large-for-width error")
	}
}

func TestCodePrependShiftsFillOffsets(t *testing.T) {
	c := NewCode([]byte{0x00, 0x00})
	c.Replace(0, FillExpr{Label: "x"}, 1)
	c = c.Prepend([]byte{0xFF})
	out, err := c.Compile(map[string]int64{"x": 7})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []byte{0xFF, 7, 0x00}
	if string(out) != string(want) {
		t.Errorf("got % X, want % X", out, want)
	}
}

func TestCodeConcatShiftsSecondBufferFills(t *testing.T) {
	a := NewCode([]byte{0xAA})
	b := NewCode([]byte{0x00})
	b.Replace(0, FillExpr{Label: "y"}, 1)
	combined := a.Concat(b)
	out, err := combined.Compile(map[string]int64{"y": 9})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	want := []byte{0xAA, 9}
	if string(out) != string(want) {
		t.Errorf("got % X, want % X", out, want)
	}
}

func TestCodeOriginalUnaffectedByCompile(t *testing.T) {
	c := NewCode([]byte{0x00})
	c.Replace(0, FillExpr{Label: "z"}, 1)
	if _, err := c.Compile(map[string]int64{"z": 5}); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if c.Bytes[0] != 0x00 {
		t.Errorf("Compile mutated the original buffer: %v", c.Bytes)
	}
}
