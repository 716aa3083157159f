package parser

import "github.com/example/pseudo/internal/lexer"

// parseError is raised via panic/recover to unwind out of deeply nested
// parse functions the moment a production can't match; Parse recovers it
// and returns it as a *errors.Error of kind SyntaxError.
type parseError struct {
	message string
	pos     lexer.Position
}

func (e *parseError) Error() string {
	return e.message
}
