package x86_64

import "testing"

func TestModRMSIBRegisterDirect(t *testing.T) {
	rex, code, err := ModRMSIB(RAX, RCX, 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if rex != 0 {
		t.Errorf("rex = %#x, want 0", rex)
	}
	want := byte(modDir | (RAX.Field() << 3) | RCX.Field())
	if len(code) != 1 || code[0] != want {
		t.Errorf("code = % X, want [%02X]", code, want)
	}
}

func TestModRMSIBRegisterDirectRexExtended(t *testing.T) {
	rex, code, err := ModRMSIB(R8, R9, 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if rex&RexBitR == 0 {
		t.Error("expected RexBitR for r8 in reg slot")
	}
	if rex&RexBitB == 0 {
		t.Error("expected RexBitB for r9 in r/m slot")
	}
	if len(code) != 1 {
		t.Fatalf("code = % X, want 1 byte", code)
	}
}

func TestModRMSIBOpcodeExtensionDigit(t *testing.T) {
	_, code, err := ModRMSIB(5, RAX, 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	want := byte(modDir | (5 << 3) | RAX.Field())
	if code[0] != want {
		t.Errorf("code[0] = %02X, want %02X", code[0], want)
	}
}

func TestModRMSIBInvalidExtensionDigit(t *testing.T) {
	if _, _, err := ModRMSIB(8, RAX, 64); err == nil {
		t.Fatal("expected an error for an extension digit > 7")
	}
}

func TestModRMSIBBareRegisterPointer(t *testing.T) {
	_, code, err := ModRMSIB(RAX, Of(RCX), 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	want := byte(modInd | (RAX.Field() << 3) | RCX.Field())
	if len(code) != 1 || code[0] != want {
		t.Errorf("code = % X, want [%02X]", code, want)
	}
}

func TestModRMSIBRbpBaseForcesDisp8(t *testing.T) {
	_, code, err := ModRMSIB(RAX, Of(RBP), 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if len(code) != 2 || code[1] != 0x00 {
		t.Errorf("code = % X, want 2 bytes with a zero disp8", code)
	}
}

func TestModRMSIBRspBaseEmitsSIB(t *testing.T) {
	_, code, err := ModRMSIB(RAX, Of(RSP), 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if len(code) != 2 {
		t.Fatalf("code = % X, want modrm+sib (2 bytes)", code)
	}
	modrm := code[0]
	if modrm&0x7 != 0b100 {
		t.Errorf("modrm r/m field = %03b, want 100 (SIB follows)", modrm&0x7)
	}
}

func TestModRMSIBDispOnlyNoBase(t *testing.T) {
	p := Pointer{Disp: 0x1000, HasDisp: true}
	_, code, err := ModRMSIB(RAX, p, 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code = % X, want modrm+sib+disp32 (6 bytes)", code)
	}
}

func TestModRMSIBTwoStackPointersRejected(t *testing.T) {
	p, err := Of(RSP).Plus(RSP)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if _, _, err := ModRMSIB(RAX, p, 64); err == nil {
		t.Fatal("expected an error for two stack-pointer registers")
	}
}

func TestModRMSIBScaledIndexRejectsRspIndex(t *testing.T) {
	scaled, err := Scaled(RSP, 4)
	if err != nil {
		t.Fatalf("Scaled: %v", err)
	}
	if _, _, err := ModRMSIB(RAX, scaled, 64); err == nil {
		t.Fatal("expected rsp to be rejected as a SIB index")
	}
}

func TestModRMSIBScaledIndexEncodesSIBByte(t *testing.T) {
	scaled, err := Scaled(RDX, 4)
	if err != nil {
		t.Fatalf("Scaled: %v", err)
	}
	p, err := Of(RCX).Plus(scaled)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	p, err = p.Plus(8)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	_, code, err := ModRMSIB(RAX, p, 64)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if len(code) != 3 {
		t.Fatalf("code = % X, want modrm+sib+disp8 (3 bytes)", code)
	}
	sib := code[1]
	if sib>>6 != 2 {
		t.Errorf("SIB scale bits = %d, want 2 (factor 4)", sib>>6)
	}
}

func TestModRMSIBMismatchedRegisterWidthRejected(t *testing.T) {
	p, err := Of(RAX).Plus(EDX)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	if _, _, err := ModRMSIB(RAX, p, 64); err == nil {
		t.Fatal("expected an error mixing 64-bit and 32-bit registers in one pointer")
	}
}

func TestBuildRex(t *testing.T) {
	if BuildRex(0) != 0 {
		t.Error("BuildRex(0) should omit the REX byte entirely")
	}
	if got := BuildRex(RexBitW); got != 0x48 {
		t.Errorf("BuildRex(RexBitW) = %#x, want 0x48", got)
	}
}

func TestModrm16Addressing(t *testing.T) {
	p, err := Of(BX).Plus(SI)
	if err != nil {
		t.Fatalf("Plus: %v", err)
	}
	_, code, err := ModRMSIB(AL, p, 32)
	if err != nil {
		t.Fatalf("ModRMSIB: %v", err)
	}
	if len(code) != 1 || code[0]&0x7 != 0b000 {
		t.Errorf("code = % X, want rm field 000 for [bx+si]", code)
	}
}
