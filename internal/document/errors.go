package document

import (
	"errors"
	"fmt"
)

// ErrParse matches every error returned when a resume cannot be read.
var ErrParse = errors.New("document parse failed")

// ParseError describes why a document could not be turned into text.
type ParseError struct {
	Format  Format
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse %s document: %s: %v", e.Format, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse %s document: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
