package kismetdc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error-kind taxonomy. Use errors.Is against these;
// DecodeError carries the offset at which the failure occurred.
var (
	// ErrTruncated is returned when a read would exceed the script buffer.
	// Per spec, an out-of-range read is a fatal programming error — the
	// caller has violated an opcode's documented layout.
	ErrTruncated = errors.New("kismetdc: truncated read")

	// ErrMalformedStream is returned when a variable-length list is not
	// terminated by its sentinel opcode, or a SwitchValue count does not
	// match the remaining bytes.
	ErrMalformedStream = errors.New("kismetdc: malformed stream")

	// ErrUnknownOpcode is returned when an opcode byte outside the
	// documented table is encountered in a sub-expression slot. At the top
	// level ParseAll does not return it: it stops after the Unknown and
	// returns the expressions parsed so far, with no way to resume past it.
	ErrUnknownOpcode = errors.New("kismetdc: unknown opcode")

	// ErrUnresolvedRef is raised only by explicit lookups performed by a
	// formatter/emitter; the core IR itself carries the bare address and
	// never fails because of it.
	ErrUnresolvedRef = errors.New("kismetdc: unresolved reference")
)

// DecodeError wraps one of the sentinel errors above with the byte offset
// at which it occurred.
type DecodeError struct {
	Offset BytecodeOffset
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(offset BytecodeOffset, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}
