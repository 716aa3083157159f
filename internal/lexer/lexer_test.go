package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := `DECLARE x : INTEGER
x <- 5 + 3 * 2
OUTPUT x`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{DECLARE, "DECLARE"},
		{IDENT, "x"},
		{COLON, ":"},
		{INTEGER, "INTEGER"},
		{IDENT, "x"},
		{ASSIGN, "<-"},
		{NUMBER, "5"},
		{PLUS, "+"},
		{NUMBER, "3"},
		{ASTERISK, "*"},
		{NUMBER, "2"},
		{OUTPUT, "OUTPUT"},
		{IDENT, "x"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("test[%d] - tokentype wrong. expected=%s, got=%s (%q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("test[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input        string
		expectedType TokenType
	}{
		{"<-", ASSIGN},
		{"<>", NEQ},
		{"<=", LTE},
		{">=", GTE},
		{"<", LT},
		{">", GT},
		{"=", EQ},
		{"^", CARET},
		{"&", STRCOMB},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Errorf("input %q: expected %s, got %s", tt.input, tt.expectedType, tok.Type)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "IF WHILE FOR BYREF BYVAL myVar"
	expected := []TokenType{IF, WHILE, FOR, BYREF, BYVAL, IDENT, EOF}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token[%d]: expected %s, got %s (%q)", i, want, tok.Type, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input   string
		literal string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"0", "0"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != NUMBER || tok.Literal != tt.literal {
			t.Errorf("input %q: got type=%s literal=%q", tt.input, tok.Type, tok.Literal)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello world"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("expected STRING, got %s", tok.Type)
	}
	if tok.Literal != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", tok.Literal)
	}
}

func TestUnterminatedStringProducesError(t *testing.T) {
	l := New(`"never closed`)
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatalf("expected an error for unterminated string literal")
	}
}

func TestIllegalCharacterAccumulatesError(t *testing.T) {
	l := New("x @ y")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected exactly one lex error, got %d", len(l.Errors()))
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "x <- 1 // this is a comment\nOUTPUT x"
	l := New(input)
	var types []TokenType
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == EOF {
			break
		}
	}
	for _, typ := range types {
		if typ == ILLEGAL {
			t.Fatalf("comment leaked an illegal token")
		}
	}
	want := []TokenType{IDENT, ASSIGN, NUMBER, OUTPUT, IDENT, EOF}
	if len(types) != len(want) {
		t.Fatalf("expected %d tokens with the comment skipped, got %d: %v", len(want), len(types), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("token[%d]: expected %s, got %s", i, want[i], types[i])
		}
	}
}

func TestTokenizeReturnsAllTokens(t *testing.T) {
	tokens, errs := Tokenize("DECLARE n : INTEGER")
	if len(errs) != 0 {
		t.Fatalf("unexpected lex errors: %v", errs)
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("expected token stream to end with EOF, got %v", tokens)
	}
}
