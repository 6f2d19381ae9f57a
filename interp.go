package tkom

import (
	"fmt"
	"io"
	"strings"
)

// Program wires the lexer-parser-evaluator pipeline to an input stream
// carrying source text and an output stream receiving print output. Both
// streams are borrowed and never closed.
type Program struct {
	in  io.Reader
	out io.Writer
}

// NewProgram creates a program reading source from in and writing to out.
func NewProgram(in io.Reader, out io.Writer) *Program {
	return &Program{in: in, out: out}
}

// Run parses the source until EOF and evaluates it against a fresh global
// scope. The returned error is a *ParseError or *RuntimeError; evaluation
// is single-threaded and side effects occur in strict program order.
func (p *Program) Run() error {
	code, err := Parse(p.in)
	if err != nil {
		return err
	}
	return ExecProtected(code, NewGlobalScope(p.out))
}

// ExecuteIn parses the program's source and evaluates it in the provided
// scope, so a REPL can keep state across inputs.
func (p *Program) ExecuteIn(ctx *Scope) error {
	code, err := Parse(p.in)
	if err != nil {
		return err
	}
	return ExecProtected(code, ctx)
}

// Parse consumes the reader and returns the root code block.
func Parse(in io.Reader) (*CodeBlock, error) {
	return NewParser(in).Parse()
}

// ParseSource parses a source string.
func ParseSource(src string) (*CodeBlock, error) {
	return Parse(strings.NewReader(src))
}

// ParseSourceInteractive parses a source string in interactive mode, where
// running out of input inside an open construct yields an error for which
// IsIncomplete reports true.
func ParseSourceInteractive(src string) (*CodeBlock, error) {
	return NewInteractiveParser(strings.NewReader(src)).Parse()
}

// ExecProtected evaluates a code block in ctx, converting the evaluator's
// internal panic signalling back into an error. Faults outside the runtime
// taxonomy surface as UnexpectedError.
func ExecProtected(code *CodeBlock, ctx *Scope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rt, ok := r.(*RuntimeError); ok {
				err = rt
				return
			}
			err = &RuntimeError{Kind: ErrUnexpected, Msg: fmt.Sprintf("Unexpected error: %v.", r)}
		}
	}()
	code.Exec(ctx)
	return nil
}
