package process

import (
	"errors"
	"fmt"
)

// ParseError represents a structural mismatch in a block's payload: an
// unknown line code, a pattern that did not match, or a vote/text grammar
// violation. Parse errors are recoverable at block granularity - the driver
// logs them and continues with the next block.
type ParseError struct {
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string { return e.Message }

// parseErrorf creates a ParseError with a formatted message.
func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// IsParseError returns true if the error is a structural parse error.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
