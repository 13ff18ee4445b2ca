package x86_64

import "testing"

// TestEncodeMovImmediate covers spec §8 scenario (a): mov eax, 0xdeadbeef
// must encode to B8 EF BE AD DE.
func TestEncodeMovImmediate(t *testing.T) {
	code, err := Encode(Table["mov"], 64, EAX, int64(0xdeadbeef))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0xB8, 0xEF, 0xBE, 0xAD, 0xDE}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

func TestEncodeMovRegToReg(t *testing.T) {
	code, err := Encode(Table["mov"], 64, ECX, EAX)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x89, modRegRM(modDir, EAX.Field(), ECX.Field())}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

func TestEncodeMovRequiresRexWFor64Bit(t *testing.T) {
	code, err := Encode(Table["mov"], 64, RAX, int64(1))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if code.Bytes[0] != 0x48 {
		t.Errorf("expected a REX.W prefix byte 0x48, got %02X", code.Bytes[0])
	}
}

func TestEncodeRet(t *testing.T) {
	code, err := Encode(Table["ret"], 64)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(code.Bytes) != string([]byte{0xC3}) {
		t.Errorf("got % X, want [C3]", code.Bytes)
	}
}

func TestEncodeMovMemoryOperand(t *testing.T) {
	ptr, err := Of(RCX).Plus(20)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	code, err := Encode(Table["mov"], 64, EAX, Dword(ptr))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(code.Bytes) < 3 {
		t.Fatalf("expected opcode+modrm+disp8, got % X", code.Bytes)
	}
	if code.Bytes[0] != 0x8B {
		t.Errorf("opcode = %02X, want 8B (mov r32, r/m32)", code.Bytes[0])
	}
}

func TestEncodeBranchLabelProducesDeferredFill(t *testing.T) {
	code, err := EncodeBranch(Table["jmp"], 64, Label("loop_top"))
	if err != nil {
		t.Fatalf("EncodeBranch: %v", err)
	}
	if len(code.Bytes) != 5 {
		t.Fatalf("expected a 5-byte rel32 jmp form (E9 + 4 bytes), got % X", code.Bytes)
	}
	if code.Bytes[0] != 0xE9 {
		t.Errorf("opcode = %02X, want E9", code.Bytes[0])
	}
}

func TestEncodeBranchRelTargetFitsInByte(t *testing.T) {
	code, err := EncodeBranch(Table["jmp"], 64, Rel(10))
	if err != nil {
		t.Fatalf("EncodeBranch: %v", err)
	}
	if code.Bytes[0] != 0xEB {
		t.Errorf("opcode = %02X, want EB (rel8 jmp)", code.Bytes[0])
	}
}

func TestEncodeBranchRelTargetTooFarForByteUsesRel32(t *testing.T) {
	code, err := EncodeBranch(Table["jmp"], 64, Rel(100000))
	if err != nil {
		t.Fatalf("EncodeBranch: %v", err)
	}
	if code.Bytes[0] != 0xE9 {
		t.Errorf("opcode = %02X, want E9 (rel32 jmp)", code.Bytes[0])
	}
}

// TestEncodeAddWideImmediatePrefersSignCorrectForm guards against a value
// that fits a narrower *unsigned* byte but not a signed one: the 83 /0 form
// sign-extends its immediate, so picking it for 200 would silently encode
// -56 (0xC8 read as a signed byte) instead of 200.
func TestEncodeAddWideImmediatePrefersSignCorrectForm(t *testing.T) {
	code, err := Encode(Table["add"], 64, EAX, int64(200))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x81, modRegRM(modDir, 0, EAX.Field()), 0xC8, 0x00, 0x00, 0x00}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

// TestEncodeMovWideUnsignedImmediateUsesImm64Form covers the same ambiguity
// at the mov r64, imm64 boundary: 0xFFFFFFFF fits 32 unsigned bits but
// requires 64 signed bits, and must not collapse into the sign-extending
// C7 /0 rm32 form.
func TestEncodeMovWideUnsignedImmediateUsesImm64Form(t *testing.T) {
	code, err := Encode(Table["mov"], 64, RAX, int64(0xFFFFFFFF))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0x48, 0xB8, 0xFF, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

// TestEncodeMovAlFallsBackToUnsignedByteImmediate checks the other side of
// the same fix: when the destination is only 8 bits wide and no wider form
// exists, the narrower unsigned packing must still be accepted rather than
// rejected outright.
func TestEncodeMovAlFallsBackToUnsignedByteImmediate(t *testing.T) {
	code, err := Encode(Table["mov"], 64, AL, int64(200))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0xB0, 0xC8}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

func TestEncodeByteStringImmediate(t *testing.T) {
	code, err := Encode(Table["mov"], 64, EAX, []byte{0xEF, 0xBE, 0xAD, 0xDE})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := []byte{0xB8, 0xEF, 0xBE, 0xAD, 0xDE}
	if string(code.Bytes) != string(want) {
		t.Errorf("got % X, want % X", code.Bytes, want)
	}
}

func TestEncodeByteStringImmediateRejectsInvalidLength(t *testing.T) {
	if _, err := Encode(Table["mov"], 64, EAX, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected an error for a 3-byte immediate")
	}
}
