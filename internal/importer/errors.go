package importer

import (
	"errors"
	"fmt"
)

// Parse failure kinds. Match them with errors.Is.
var (
	ErrInvalidQueryFormat     = errors.New("invalid query format")
	ErrInvalidDimensionFormat = errors.New("invalid dimension format")
	ErrInvalidInteger         = errors.New("invalid integer")
	ErrInvalidShapeID         = errors.New("invalid shape id")
	ErrDuplicateShapeID       = errors.New("duplicate shape id")
	ErrUnknownShape           = errors.New("count given for unknown shape")
)

// ParseError reports where parsing failed and the text that caused it.
type ParseError struct {
	Line     int    // 1-based input line, 0 when not tied to a line
	Fragment string // offending line or token
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Fragment)
	}
	return fmt.Sprintf("%v: %q", e.Err, e.Fragment)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(line int, fragment string, err error) *ParseError {
	return &ParseError{Line: line, Fragment: fragment, Err: err}
}
