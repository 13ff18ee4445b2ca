package asm

import "testing"

func TestNewRecipeParsesRexWAndExtDigit(t *testing.T) {
	r := NewRecipe(nil, "REX.W + 81 /5", []string{EncModRMRM, EncImmediate}, true, false)
	if !r.RexW {
		t.Error("expected RexW")
	}
	if r.ExtDigit != 5 {
		t.Errorf("ExtDigit = %d, want 5", r.ExtDigit)
	}
	if string(r.OpcodeBytes) != string([]byte{0x81}) {
		t.Errorf("OpcodeBytes = % X, want [81]", r.OpcodeBytes)
	}
}

func TestNewRecipeParsesEmbeddedRegister(t *testing.T) {
	r := NewRecipe(nil, "B8+rd", []string{EncOpcodeReg, EncImmediate}, true, true)
	if !r.EmbedReg {
		t.Error("expected EmbedReg")
	}
	if string(r.OpcodeBytes) != string([]byte{0xB8}) {
		t.Errorf("OpcodeBytes = % X, want [B8]", r.OpcodeBytes)
	}
}

func TestNewRecipeRejectsExtDigitWithEmbedReg(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic combining an extension digit with an embedded register")
		}
	}()
	NewRecipe(nil, "B8+rd /3", nil, true, true)
}

func TestRecipeSignature(t *testing.T) {
	r := NewRecipe([]OperandType{{Identifier: "r32"}, {Identifier: "imm32"}}, "B8+rd", nil, true, true)
	if got := r.Signature(); got != "r32,imm32" {
		t.Errorf("Signature() = %q, want %q", got, "r32,imm32")
	}
}

func TestMnemonicExactMatch(t *testing.T) {
	r32imm32 := NewRecipe([]OperandType{{Identifier: "r32"}, {Identifier: "imm32"}}, "B8+rd", nil, true, true)
	r64imm64 := NewRecipe([]OperandType{{Identifier: "r64"}, {Identifier: "imm64"}}, "REX.W + B8+rd", nil, true, false)
	m := &Mnemonic{Name: "mov", Recipes: []Recipe{r32imm32, r64imm64}}

	got, ok := m.ExactMatch("r32,imm32")
	if !ok {
		t.Fatal("expected a cache hit for \"r32,imm32\"")
	}
	if got.Template != "B8+rd" {
		t.Errorf("got recipe with template %q", got.Template)
	}

	if _, ok := m.ExactMatch("r16,imm16"); ok {
		t.Error("expected a cache miss for an undeclared signature")
	}
}
