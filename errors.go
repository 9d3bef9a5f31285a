package pclrt

import "errors"

// Input conditions. Primitives never return these; they are recorded for
// Runtime.Err while the primitive returns a zero value.
//
// There is no buffer overrun condition. ReadString cannot store outside the
// bounds it is given, so there is nothing to detect.
var (
	// ErrMalformedInput means the next token did not have the lexical shape
	// the primitive expects, or its value does not fit the result type.
	ErrMalformedInput = errors.New("pclrt: malformed input")
	// ErrEndOfStream means the input channel had no more data.
	ErrEndOfStream = errors.New("pclrt: end of stream")
)
