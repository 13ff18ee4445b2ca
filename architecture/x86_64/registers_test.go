package x86_64

import "testing"

func TestRegisterField(t *testing.T) {
	cases := []struct {
		reg  Register
		want byte
	}{
		{RAX, 0},
		{R8, 0},
		{R15, 7},
		{ESP, 4},
	}
	for _, c := range cases {
		if got := c.reg.Field(); got != c.want {
			t.Errorf("%s.Field() = %d, want %d", c.reg.Name, got, c.want)
		}
	}
}

func TestRegisterNeedsRex(t *testing.T) {
	if RAX.NeedsRex() {
		t.Error("rax should not need REX")
	}
	if !R8.NeedsRex() {
		t.Error("r8 should need REX")
	}
	if SPL.NeedsRex() {
		t.Error("spl has no REX extension bit (encoding 4)")
	}
}

func TestSTHelper(t *testing.T) {
	for i := 0; i < 8; i++ {
		got := ST(i)
		if got.Encoding != byte(i) {
			t.Errorf("ST(%d).Encoding = %d, want %d", i, got.Encoding, i)
		}
		if got.Class != ClassST {
			t.Errorf("ST(%d).Class = %v, want ClassST", i, got.Class)
		}
	}
}

func TestSTHelperPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected ST(8) to panic")
		}
	}()
	ST(8)
}

func TestRegistersByNameCoversCatalogue(t *testing.T) {
	for _, r := range []Register{RAX, EAX, AX, AL, AH, R12B, XMM15, MM0, ST0, CR0, DR0, FS} {
		got, ok := RegistersByName[r.Name]
		if !ok {
			t.Fatalf("RegistersByName missing %q", r.Name)
		}
		if got != r {
			t.Errorf("RegistersByName[%q] = %+v, want %+v", r.Name, got, r)
		}
	}
}
