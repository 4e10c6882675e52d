package mermaid

import "errors"

// Error classes surfaced to tool callers. Concrete failures wrap one of these
// with %w so errors.Is can classify them.
var (
	ErrInvalidParams = errors.New("invalid params")
	ErrInternal      = errors.New("internal error")
)

// JSON-RPC codes matching the two error classes.
const (
	CodeInvalidParams = -32602
	CodeInternalError = -32603
)

// Code maps an error onto its JSON-RPC code. Unclassified errors count as
// internal.
func Code(err error) int {
	if errors.Is(err, ErrInvalidParams) {
		return CodeInvalidParams
	}
	return CodeInternalError
}
