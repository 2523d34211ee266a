package lexer

import "testing"

func collectTypes(input string) []TokenType {
	l := New(input, 0, "")
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			return types
		}
	}
}

func TestNextTokenPunctuation(t *testing.T) {
	input := `$a = 1 + 2 * 3;`
	want := []TokenType{VARIABLE, ASSIGN, INTEGER, PLUS, INTEGER, ASTERISK, INTEGER, SEMICOLON, EOF}
	got := collectTypes(input)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNextTokenMaximalMunch(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"===", IDENTICAL},
		{"!==", NOT_IDENTICAL},
		{"<=>", SPACESHIP},
		{"??=", COALESCE_ASSIGN},
		{"?->", NULLSAFE_OPERATOR},
		{"...", ELLIPSIS},
		{"**", POWER},
		{"**=", POWER_ASSIGN},
		{"->", OBJECT_OPERATOR},
		{"::", PAAMAYIM_NEKUDOTAYIM},
		{"??", COALESCE},
		{"<=", LE},
		{"<", LT},
	}
	for _, tt := range tests {
		l := New(tt.input, 0, "")
		got := l.NextToken()
		if got.Type != tt.want {
			t.Errorf("%q: got %s, want %s", tt.input, got.Type, tt.want)
		}
	}
}

func TestNextTokenKeywordsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"if", "IF", "If", "iF"} {
		l := New(input, 0, "")
		got := l.NextToken()
		if got.Type != IF {
			t.Errorf("%q: got %s, want IF", input, got.Type)
		}
		if got.Literal != input {
			t.Errorf("%q: literal was altered to %q", input, got.Literal)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"123", INTEGER},
		{"0x1A", INTEGER},
		{"0b1010", INTEGER},
		{"0o777", INTEGER},
		{"0755", INTEGER},
		{"1.5", FLOAT},
		{"1.5e10", FLOAT},
		{"1e-3", FLOAT},
		{".5", FLOAT},
	}
	for _, tt := range tests {
		l := New(tt.input, 0, "")
		got := l.NextToken()
		if got.Type != tt.want {
			t.Errorf("%q: got %s, want %s", tt.input, got.Type, tt.want)
		}
		if got.Literal != tt.input {
			t.Errorf("%q: literal %q", tt.input, got.Literal)
		}
	}
}

func TestNextTokenSpanIsByteOffset(t *testing.T) {
	input := `  $x`
	l := New(input, 10, "")
	tok := l.NextToken()
	if tok.Type != VARIABLE {
		t.Fatalf("got %s", tok.Type)
	}
	if tok.Span.Lo != 12 || tok.Span.Hi != 14 {
		t.Errorf("got span %+v, want {12 14}", tok.Span)
	}
}

func TestNextTokenCloseTagConsumesNewline(t *testing.T) {
	input := "1?>\nrest"
	l := New(input, 0, "")
	l.NextToken() // 1
	closeTok := l.NextToken()
	if closeTok.Type != CLOSE_TAG {
		t.Fatalf("got %s", closeTok.Type)
	}
	if l.pos != len("1?>\n") {
		t.Errorf("newline after ?> was not consumed, pos=%d", l.pos)
	}
}

func TestNextTokenComments(t *testing.T) {
	input := "// line comment\n/* block\ncomment */42"
	l := New(input, 0, "")
	tok := l.NextToken()
	if tok.Type != INTEGER || tok.Literal != "42" {
		t.Errorf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextTokenHeredoc(t *testing.T) {
	input := "<<<EOT\nhello\nEOT"
	l := New(input, 0, "")
	tok := l.NextToken()
	if tok.Type != HEREDOC {
		t.Fatalf("got %s", tok.Type)
	}
	if tok.Literal != "hello" {
		t.Errorf("got body %q", tok.Literal)
	}
}

func TestNextTokenNowdoc(t *testing.T) {
	input := "<<<'EOT'\nhello $x\nEOT"
	l := New(input, 0, "")
	tok := l.NextToken()
	if tok.Type != NOWDOC {
		t.Fatalf("got %s", tok.Type)
	}
	if tok.Literal != "hello $x" {
		t.Errorf("got body %q", tok.Literal)
	}
}
