package frontend

import "testing"

func TestLexerTokenizesBracketedExpression(t *testing.T) {
	l := newLexer("[rcx + rdx*4 - 8]")
	var kinds []tokenKind
	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if tok.kind == tokEOF {
			break
		}
		kinds = append(kinds, tok.kind)
	}
	want := []tokenKind{tokLBracket, tokIdent, tokPlus, tokIdent, tokStar, tokNumber, tokMinus, tokNumber, tokRBracket}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestLexerHexBinOctalLiterals(t *testing.T) {
	cases := map[string]int64{
		"0xFF": 255,
		"0b101": 5,
		"0o17":  15,
		"42":    42,
	}
	for src, want := range cases {
		l := newLexer(src)
		tok, err := l.next()
		if err != nil {
			t.Fatalf("%s: next: %v", src, err)
		}
		if tok.kind != tokNumber || tok.num != want {
			t.Errorf("%s: got kind=%v num=%d, want %d", src, tok.kind, tok.num, want)
		}
	}
}

func TestLexerRejectsUnexpectedCharacter(t *testing.T) {
	l := newLexer("@")
	if _, err := l.next(); err == nil {
		t.Fatal("expected an error for '@'")
	}
}

func TestLexerIdentAllowsDotAndUnderscore(t *testing.T) {
	l := newLexer("_my.label_1")
	tok, err := l.next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tok.kind != tokIdent || tok.literal != "_my.label_1" {
		t.Errorf("got %+v", tok)
	}
}
