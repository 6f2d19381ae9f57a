package tkom

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Lexer scans a source character stream into tokens. It never fails: lexical
// errors surface as INVALID tokens and refusing them is the parser's job.
// After the input is exhausted the lexer keeps returning EOF tokens.
type Lexer struct {
	in          *bufio.Reader
	atLineStart bool
	line        int // 1-based
	col         int // 0-based column within line

	// position of the current token's first character
	tokLine int
	tokCol  int
}

// NewLexer creates a lexer reading from in.
func NewLexer(in io.Reader) *Lexer {
	return &Lexer{
		in:          bufio.NewReader(in),
		atLineStart: true,
		line:        1,
	}
}

func (l *Lexer) peek() (byte, bool) {
	b, err := l.in.Peek(1)
	if err != nil {
		return 0, false
	}
	return b[0], true
}

func (l *Lexer) advance() (byte, bool) {
	ch, err := l.in.ReadByte()
	if err != nil {
		return 0, false
	}
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) markStart() {
	l.tokLine = l.line
	l.tokCol = l.col
}

func (l *Lexer) makeToken(tt TokenType, lexeme string, lit interface{}) Token {
	return Token{
		Type:    tt,
		Lexeme:  lexeme,
		Literal: lit,
		Line:    l.tokLine,
		Col:     l.tokCol,
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

func isInlineSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

// isGraphic reports whether b extends an INVALID run: any printable
// non-whitespace byte.
func isGraphic(b byte) bool { return b > ' ' && b != 0x7f }

// Next returns the next token. The start of every logical line, including the
// first and blank lines, produces a SPACE token whose payload counts the
// leading whitespace characters, one per character regardless of tabs.
func (l *Lexer) Next() Token {
	if l.atLineStart {
		l.atLineStart = false
		return l.scanLeadingSpace()
	}

	l.skipInlineSpace()

	for {
		l.markStart()
		ch, ok := l.peek()
		if !ok {
			return l.makeToken(EOF, "", nil)
		}

		switch {
		case ch == '\n':
			l.advance()
			l.atLineStart = true
			return l.makeToken(NEWLINE, "", nil)
		case ch == '#':
			l.skipComment()
			continue
		case isDigit(ch) || ch == '.':
			return l.scanNumber()
		case isAlpha(ch):
			return l.scanIdentifier()
		case ch == '"':
			return l.scanString()
		default:
			return l.scanPunct()
		}
	}
}

func (l *Lexer) skipInlineSpace() {
	for {
		ch, ok := l.peek()
		if !ok || !isInlineSpace(ch) {
			return
		}
		l.advance()
	}
}

// skipComment discards a '#' comment body up to (not including) the newline.
func (l *Lexer) skipComment() {
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return
		}
		l.advance()
	}
}

func (l *Lexer) scanLeadingSpace() Token {
	l.markStart()
	count := 0
	for {
		ch, ok := l.peek()
		if !ok || !isInlineSpace(ch) {
			break
		}
		count++
		l.advance()
	}
	return l.makeToken(SPACE, strings.Repeat(" ", count), count)
}

// scanIdentifier reads [A-Za-z_][A-Za-z0-9_]* and reclassifies keywords.
func (l *Lexer) scanIdentifier() Token {
	var b strings.Builder
	for {
		ch, ok := l.peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		b.WriteByte(ch)
		l.advance()
	}
	lex := b.String()
	if tt, ok := keywords[lex]; ok {
		return l.makeToken(tt, lex, nil)
	}
	return l.makeToken(IDENTIFIER, lex, lex)
}

// scanNumber reads a greedy alphanumeric run with at most one '.' and
// validates it as a decimal integer, a hex integer or a real. A run that
// mixes letters without forming a valid hex literal becomes one INVALID
// token carrying the whole lexeme.
func (l *Lexer) scanNumber() Token {
	var b strings.Builder
	sawDot := false

	for {
		ch, ok := l.peek()
		if !ok {
			break
		}
		if ch == '.' && !sawDot {
			sawDot = true
			b.WriteByte(ch)
			l.advance()
			continue
		}
		if !isAlphaNum(ch) {
			break
		}
		b.WriteByte(ch)
		l.advance()
	}
	lex := b.String()

	if sawDot {
		if realValid(lex) {
			if v, err := strconv.ParseFloat(lex, 64); err == nil {
				return l.makeToken(REAL, lex, v)
			}
		}
		return l.makeToken(INVALID, lex, lex)
	}
	if len(lex) > 2 && lex[:2] == "0x" {
		digits := lex[2:]
		if hexValid(digits) {
			if v, err := strconv.ParseInt(digits, 16, 64); err == nil {
				return l.makeToken(INTEGER, lex, v)
			}
		}
		return l.makeToken(INVALID, lex, lex)
	}
	if decimalValid(lex) {
		if v, err := strconv.ParseInt(lex, 10, 64); err == nil {
			return l.makeToken(INTEGER, lex, v)
		}
	}
	return l.makeToken(INVALID, lex, lex)
}

// realValid accepts digit* '.' digit* with at least one digit on either side.
func realValid(lex string) bool {
	dot := strings.IndexByte(lex, '.')
	if dot < 0 || len(lex) < 2 {
		return false
	}
	for i := 0; i < len(lex); i++ {
		if i != dot && !isDigit(lex[i]) {
			return false
		}
	}
	return true
}

func decimalValid(lex string) bool {
	if len(lex) == 0 {
		return false
	}
	for i := 0; i < len(lex); i++ {
		if !isDigit(lex[i]) {
			return false
		}
	}
	return true
}

func hexValid(digits string) bool {
	if len(digits) == 0 {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return false
		}
	}
	return true
}

// scanString reads a double-quoted literal with no escape processing. A
// newline or EOF before the closing quote yields INVALID with the partial
// content as payload; the newline is left for the next token.
func (l *Lexer) scanString() Token {
	l.advance() // opening quote
	var b strings.Builder
	for {
		ch, ok := l.peek()
		if !ok || ch == '\n' {
			return l.makeToken(INVALID, b.String(), b.String())
		}
		l.advance()
		if ch == '"' {
			content := b.String()
			return l.makeToken(STRING, `"`+content+`"`, content)
		}
		b.WriteByte(ch)
	}
}

// scanPunct reads single-character punctuation or an operator with an
// optional '=' suffix (longest match). Unknown graphic characters are
// consumed greedily into one INVALID run.
func (l *Lexer) scanPunct() Token {
	ch, _ := l.peek()
	if tt, ok := singlePunct[ch]; ok {
		l.advance()
		return l.makeToken(tt, string(ch), nil)
	}

	l.advance()
	lex := string(ch)
	if next, ok := l.peek(); ok && next == '=' {
		if _, known := multiCharOperators[lex+"="]; known {
			l.advance()
			lex += "="
		}
	}
	if tt, ok := multiCharOperators[lex]; ok {
		return l.makeToken(tt, lex, nil)
	}
	return l.scanInvalidRun(lex)
}

func (l *Lexer) scanInvalidRun(start string) Token {
	var b strings.Builder
	b.WriteString(start)
	for {
		ch, ok := l.peek()
		if !ok || !isGraphic(ch) {
			break
		}
		b.WriteByte(ch)
		l.advance()
	}
	lex := b.String()
	return l.makeToken(INVALID, lex, lex)
}
