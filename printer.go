package tkom

import (
	"fmt"
	"io"
)

// DumpTokens lexes the reader to exhaustion and writes one table row per
// token: position, kind and payload. This is the debug surface of the
// original scanner driver, handy when a program tokenizes surprisingly.
func DumpTokens(in io.Reader, out io.Writer) {
	fmt.Fprintf(out, "%5s | %4s | %-10s | %s\n", "LINE", "COL", "TOKEN", "VALUE")
	lex := NewLexer(in)
	for {
		tok := lex.Next()
		fmt.Fprintf(out, "%5d | %4d | %-10s | %s\n", tok.Line, tok.Col, tok.Type, tokenPayload(tok))
		if tok.Type == EOF {
			return
		}
	}
}

func tokenPayload(tok Token) string {
	switch lit := tok.Literal.(type) {
	case nil:
		return ""
	case int:
		return fmt.Sprintf("%d", lit)
	case int64:
		return fmt.Sprintf("%d", lit)
	case float64:
		return Real(lit).String()
	case string:
		return lit
	default:
		return fmt.Sprintf("%v", lit)
	}
}
