package tkom

import (
	"reflect"
	"strings"
	"testing"
)

func toks(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(strings.NewReader(src))
	var out []Token
	for {
		tok := lex.Next()
		out = append(out, tok)
		if tok.Type == EOF {
			return out
		}
	}
}

func typesWithoutEOF(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	end := len(tokens)
	if tokens[end-1].Type == EOF {
		end--
	}
	out := make([]TokenType, 0, end)
	for i := 0; i < end; i++ {
		out = append(out, tokens[i].Type)
	}
	return out
}

func wantTypes(t *testing.T, src string, want []TokenType) []Token {
	t.Helper()
	got := toks(t, src)
	gotTypes := typesWithoutEOF(got)
	if !reflect.DeepEqual(gotTypes, want) {
		t.Fatalf("\nsource:\n%s\nwant types:\n%v\ngot types:\n%v\n", src, want, gotTypes)
	}
	return got
}

func Test_Lexer_SimpleAssignment(t *testing.T) {
	got := wantTypes(t, "x = 5", []TokenType{SPACE, IDENTIFIER, ASSIGN, INTEGER})
	if got[0].Width() != 0 {
		t.Fatalf("leading space width = %d, want 0", got[0].Width())
	}
	if got[1].Lexeme != "x" {
		t.Fatalf("identifier lexeme = %q", got[1].Lexeme)
	}
	if got[3].Literal.(int64) != 5 {
		t.Fatalf("integer literal = %v", got[3].Literal)
	}
}

func Test_Lexer_EveryLineStartsWithSpaceToken(t *testing.T) {
	got := wantTypes(t, "a = 1\n  b = 2\n\nc = 3",
		[]TokenType{
			SPACE, IDENTIFIER, ASSIGN, INTEGER, NEWLINE,
			SPACE, IDENTIFIER, ASSIGN, INTEGER, NEWLINE,
			SPACE, NEWLINE,
			SPACE, IDENTIFIER, ASSIGN, INTEGER,
		})
	if got[0].Width() != 0 || got[5].Width() != 2 || got[10].Width() != 0 {
		t.Fatalf("space widths = %d, %d, %d", got[0].Width(), got[5].Width(), got[10].Width())
	}
}

func Test_Lexer_TabsCountAsOne(t *testing.T) {
	got := wantTypes(t, "\t\ta = 1", []TokenType{SPACE, IDENTIFIER, ASSIGN, INTEGER})
	if got[0].Width() != 2 {
		t.Fatalf("tab indent width = %d, want 2", got[0].Width())
	}
}

func Test_Lexer_Keywords(t *testing.T) {
	wantTypes(t, "if else while for in break continue def return True False None",
		[]TokenType{SPACE, IF, ELSE, WHILE, FOR, IN, BREAK, CONTINUE, DEF, RETURN, TRUE, FALSE, NONE})
}

func Test_Lexer_KeywordPrefixStaysIdentifier(t *testing.T) {
	got := wantTypes(t, "iffy formula Noneish", []TokenType{SPACE, IDENTIFIER, IDENTIFIER, IDENTIFIER})
	if got[1].Lexeme != "iffy" || got[2].Lexeme != "formula" || got[3].Lexeme != "Noneish" {
		t.Fatalf("lexemes = %q %q %q", got[1].Lexeme, got[2].Lexeme, got[3].Lexeme)
	}
}

func Test_Lexer_Operators_LongestMatch(t *testing.T) {
	wantTypes(t, "= == + += - -= > >= < <= !=",
		[]TokenType{SPACE, ASSIGN, EQUAL, ADD, ADD_ASSIGN, SUB, SUB_ASSIGN,
			GREATER, GREATER_EQ, LESS, LESS_EQ, NOT_EQUAL})
}

func Test_Lexer_Punctuation(t *testing.T) {
	wantTypes(t, "( ) [ ] : , * / ^",
		[]TokenType{SPACE, OPEN_BRACKET, CLOSE_BRACKET, OPEN_SQUARE, CLOSE_SQUARE,
			COLON, COMMA, MULT_OP, DIV_OP, EXP_OP})
}

func Test_Lexer_Integers(t *testing.T) {
	got := wantTypes(t, "0 42 0x2A", []TokenType{SPACE, INTEGER, INTEGER, INTEGER})
	if got[1].Literal.(int64) != 0 || got[2].Literal.(int64) != 42 || got[3].Literal.(int64) != 42 {
		t.Fatalf("integer literals = %v %v %v", got[1].Literal, got[2].Literal, got[3].Literal)
	}
}

func Test_Lexer_InvalidNumberMixes(t *testing.T) {
	for _, src := range []string{"12ab", "0xZZ", "0x", "9a.1"} {
		got := toks(t, src)
		if got[1].Type != INVALID {
			t.Fatalf("%q: token type = %v, want invalid", src, got[1].Type)
		}
		if got[1].Literal.(string) != src {
			t.Fatalf("%q: invalid payload = %q, want full lexeme", src, got[1].Literal)
		}
	}
}

func Test_Lexer_Reals(t *testing.T) {
	got := wantTypes(t, "123.6 9. .5", []TokenType{SPACE, REAL, REAL, REAL})
	if got[1].Literal.(float64) != 123.6 {
		t.Fatalf("real literal = %v", got[1].Literal)
	}
	if got[2].Literal.(float64) != 9.0 {
		t.Fatalf("real literal = %v", got[2].Literal)
	}
	if got[3].Literal.(float64) != 0.5 {
		t.Fatalf("real literal = %v", got[3].Literal)
	}
}

func Test_Lexer_BareDotIsInvalid(t *testing.T) {
	got := toks(t, ".")
	if got[1].Type != INVALID {
		t.Fatalf("token type = %v, want invalid", got[1].Type)
	}
}

func Test_Lexer_Strings(t *testing.T) {
	got := wantTypes(t, `x = "hello world"`, []TokenType{SPACE, IDENTIFIER, ASSIGN, STRING})
	if got[3].Literal.(string) != "hello world" {
		t.Fatalf("string payload = %q", got[3].Literal)
	}
}

func Test_Lexer_StringNoEscapeProcessing(t *testing.T) {
	got := toks(t, `"a\nb"`)
	if got[1].Type != STRING || got[1].Literal.(string) != `a\nb` {
		t.Fatalf("string payload = %q, want raw backslash-n", got[1].Literal)
	}
}

func Test_Lexer_UnterminatedString(t *testing.T) {
	got := toks(t, "\"abc\nx")
	if got[1].Type != INVALID || got[1].Literal.(string) != "abc" {
		t.Fatalf("token = %v %q, want invalid with partial content", got[1].Type, got[1].Literal)
	}
	// the newline is left for the next token
	if got[2].Type != NEWLINE {
		t.Fatalf("token after unterminated string = %v, want newline", got[2].Type)
	}
}

func Test_Lexer_InvalidGraphicRun(t *testing.T) {
	got := toks(t, "@foo!")
	if got[1].Type != INVALID || got[1].Lexeme != "@foo!" {
		t.Fatalf("token = %v %q, want one greedy invalid run", got[1].Type, got[1].Lexeme)
	}
}

func Test_Lexer_BareBangIsInvalid(t *testing.T) {
	got := toks(t, "! x")
	if got[1].Type != INVALID || got[1].Lexeme != "!" {
		t.Fatalf("token = %v %q", got[1].Type, got[1].Lexeme)
	}
	if got[2].Type != IDENTIFIER {
		t.Fatalf("token after bang = %v", got[2].Type)
	}
}

func Test_Lexer_Comments(t *testing.T) {
	wantTypes(t, "a = 1 # trailing comment\n# whole line\nb = 2",
		[]TokenType{
			SPACE, IDENTIFIER, ASSIGN, INTEGER, NEWLINE,
			SPACE, NEWLINE,
			SPACE, IDENTIFIER, ASSIGN, INTEGER,
		})
}

func Test_Lexer_Positions(t *testing.T) {
	got := toks(t, "x = 5\n  y = 6")
	find := func(lex string) Token {
		t.Helper()
		for _, tok := range got {
			if tok.Lexeme == lex {
				return tok
			}
		}
		t.Fatalf("token %q not found", lex)
		return Token{}
	}
	x := find("x")
	if x.Line != 1 || x.Col != 0 {
		t.Fatalf("x at %d:%d, want 1:0", x.Line, x.Col)
	}
	eq := find("=")
	if eq.Line != 1 || eq.Col != 2 {
		t.Fatalf("= at %d:%d, want 1:2", eq.Line, eq.Col)
	}
	y := find("y")
	if y.Line != 2 || y.Col != 2 {
		t.Fatalf("y at %d:%d, want 2:2", y.Line, y.Col)
	}
}

func Test_Lexer_PositionsMonotonic(t *testing.T) {
	src := "a = 1\nif a > 0:\n  print(a)\n# done\nb = [1, 2.5, \"x\"]\n"
	prevLine, prevCol := 0, -1
	for _, tok := range toks(t, src) {
		if tok.Line < prevLine || (tok.Line == prevLine && tok.Col < prevCol) {
			t.Fatalf("position went backwards at %v (%d:%d after %d:%d)",
				tok.Type, tok.Line, tok.Col, prevLine, prevCol)
		}
		prevLine, prevCol = tok.Line, tok.Col
	}
}

func Test_Lexer_EOFIdempotent(t *testing.T) {
	lex := NewLexer(strings.NewReader("x"))
	var last Token
	for i := 0; i < 10; i++ {
		last = lex.Next()
	}
	if last.Type != EOF {
		t.Fatalf("lexer did not settle on eof: %v", last.Type)
	}
	if lex.Next().Type != EOF {
		t.Fatalf("eof not idempotent")
	}
}
