package tkom

import "fmt"

// ParseErrKind identifies the fixed parse-error taxonomy. Every parse error
// is fatal: the parser aborts and surfaces it to the driver.
type ParseErrKind int

const (
	ErrUnexpectedToken ParseErrKind = iota
	ErrExpectedCodeBlock
	ErrUnexpectedAfterReturn
	ErrIncorrectExpression
	ErrInvalidCompareExpression
	ErrInvalidFunctionCall
	ErrNoEndOfSlice
	ErrInvalidListElement
	ErrInvalidAssign
	ErrInvalidForLoop
	ErrIndentNotMatch

	// ErrIncomplete replaces any other kind when an interactive parse runs
	// out of input inside an open construct, so a REPL can keep reading.
	ErrIncomplete
)

var parseErrDetails = map[ParseErrKind]string{
	ErrUnexpectedToken:       "Token type invalid or unexpected here.",
	ErrExpectedCodeBlock:     "Expected a new code block, but indent is incorrect or block is empty.",
	ErrUnexpectedAfterReturn: "Unexpected token after 'return'.",
	ErrIncorrectExpression:   "Expression needs a right side.",
	ErrInvalidCompareExpression: "Invalid compare expression. Possible reasons:\n\t" +
		" (-) no compare operator,\n\t" +
		" (-) no right side of compare,\n\t" +
		" (-) invalid token after expression: expected is ':' or new line.",
	ErrInvalidFunctionCall: "Unexpected token inside function call arguments.",
	ErrNoEndOfSlice:        "Expected ']' as end of slice.",
	ErrInvalidListElement:  "Expected an expression as element of list, but no one found.",
	ErrInvalidAssign:       "Assign operation needs an expression on the right side.",
	ErrInvalidForLoop: "Invalid for loop declaration. Possible reasons:\n\t" +
		" (-) no range to iterate on,\n\t" +
		" (-) no ':' after range.",
	ErrIndentNotMatch: "Indentation width does not match any open code block.",
	ErrIncomplete:     "Unexpected end of input inside an open construct.",
}

// ParseError is a fatal, positioned syntax error naming the offending token.
type ParseError struct {
	Kind ParseErrKind
	Tok  Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Error on line %d column %d: %s\n\t%s",
		e.Tok.Line, e.Tok.Col, e.Tok.Lexeme, parseErrDetails[e.Kind])
}

// IsIncomplete reports whether err is an interactive-parse continuation
// signal rather than a real syntax error.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == ErrIncomplete
}

// RuntimeErrKind identifies the fixed runtime-error taxonomy. All runtime
// errors are fatal at the point of occurrence; the evaluator never recovers.
type RuntimeErrKind int

const (
	ErrReadNotAssignVariable RuntimeErrKind = iota
	ErrOutOfRange
	ErrNotList
	ErrFunctionNotDeclared
	ErrOperandsTypesNotCompatible
	ErrUnexpected
	ErrIterableExpected
	ErrTypesNotComparable
	ErrParametersCountNotExpected
	ErrTypeNotExpected
)

// RuntimeError is an execution-time failure. Line information is not wired
// through the evaluator, which the message prefix makes explicit.
type RuntimeError struct {
	Kind RuntimeErrKind
	Msg  string
}

func (e *RuntimeError) Error() string {
	return "Error on line <TODO>:\n\t" + e.Msg
}

// failRuntime signals a runtime error; the driver recovers it at the top
// level. Evaluation code paths never continue past a failure.
func failRuntime(kind RuntimeErrKind, msg string) {
	panic(&RuntimeError{Kind: kind, Msg: msg})
}

func failReadNotAssign(name string) {
	failRuntime(ErrReadNotAssignVariable,
		"Variable '"+name+"' never assign, but try to get value.")
}

func failNotList(tag ValueTag) {
	failRuntime(ErrNotList,
		"Value of type '"+tag.String()+"' is not a list and cannot be sliced.")
}

func failOutOfRange(index, size int) {
	failRuntime(ErrOutOfRange,
		fmt.Sprintf("Slice bound %d is out of range for list of size %d.", index, size))
}

func failFunctionNotDeclared(name string) {
	failRuntime(ErrFunctionNotDeclared, "Function '"+name+"' is not declared.")
}

func failOperandsNotCompatible(left, right ValueTag, op ExprOp) {
	failRuntime(ErrOperandsTypesNotCompatible,
		fmt.Sprintf("Types '%s' and '%s' are not compatible with operator '%s'.",
			left, right, op))
}

func failIterableExpected(tag ValueTag) {
	failRuntime(ErrIterableExpected,
		"For loop expected a list to iterate on, got '"+tag.String()+"'.")
}

func failTypesNotComparable(left, right ValueTag) {
	failRuntime(ErrTypesNotComparable,
		fmt.Sprintf("Values of types '%s' and '%s' cannot be compared.", left, right))
}

func failParametersCount(name string, given, expected int) {
	failRuntime(ErrParametersCountNotExpected,
		fmt.Sprintf("Function '%s' called with %d parameters, expected %d.",
			name, given, expected))
}

func failTypeNotExpected(want string) {
	failRuntime(ErrTypeNotExpected, "Expected type '"+want+"' of parameter.")
}
