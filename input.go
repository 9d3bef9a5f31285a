package pclrt

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/zephyrtronium/pclrt/internal/scan"
)

// scanErr records a scanner error as an input condition.
func (rt *Runtime) scanErr(err error) {
	if err == scan.ErrSyntax {
		err = ErrMalformedInput
	}
	rt.setReadErr(err)
}

// readInteger implements ReadInteger without tracing.
func (rt *Runtime) readInteger() Integer {
	tok, err := rt.sc.Integer()
	if err != nil {
		rt.scanErr(err)
		return 0
	}
	// The token is a valid decimal, so the only possible error is range, in
	// which case ParseInt has already saturated the value.
	n, err := strconv.ParseInt(string(tok), 10, 32)
	if err != nil {
		rt.setReadErr(fmt.Errorf("%w: %s out of range", ErrMalformedInput, tok))
	}
	if err := rt.sc.Delimiter(); err != nil {
		rt.setReadErr(err)
	}
	return Integer(n)
}

// ReadInteger is an input primitive.
//
// readInteger skips whitespace and reads an optional sign and decimal digits,
// then consumes one following whitespace character if there is one. If no
// digits are present, the result is 0 and the first byte that is not part of
// a token is left unread. Values beyond the range of Integer saturate.
func (rt *Runtime) ReadInteger() Integer {
	rt.beginInput()
	n := rt.readInteger()
	rt.Trace("readInteger", n)
	return n
}

// ReadBoolean is an input primitive.
//
// readBoolean reads an integer token as ReadInteger does and returns True if
// it is nonzero and False otherwise.
func (rt *Runtime) ReadBoolean() Boolean {
	rt.beginInput()
	b := False
	if rt.readInteger() != 0 {
		b = True
	}
	rt.Trace("readBoolean", b)
	return b
}

// ReadChar is an input primitive.
//
// readChar consumes exactly one character, whitespace included, and returns
// it. At end of stream it returns EOF, and rt.EOF reports true.
func (rt *Runtime) ReadChar() Char {
	rt.beginInput()
	c, err := rt.in.ReadByte()
	if err != nil {
		rt.setReadErr(err)
		c = EOF
	}
	rt.Trace("readChar", c)
	return c
}

// ReadReal is an input primitive.
//
// readReal skips whitespace and reads an optional sign, digits with an
// optional decimal point, and an optional exponent, then consumes one
// following whitespace character if there is one. If no digits are present,
// the result is 0. Magnitudes too large for Real become infinities and are
// recorded as malformed input, as out-of-range integers are.
func (rt *Runtime) ReadReal() Real {
	rt.beginInput()
	x := rt.readReal()
	rt.Trace("readReal", x)
	return x
}

func (rt *Runtime) readReal() Real {
	tok, err := rt.sc.Real()
	if err != nil {
		rt.scanErr(err)
		return 0
	}
	// The token is well formed, so the only possible error is range, and
	// ParseFloat has already produced the infinity or zero that strtod would.
	x, err := strconv.ParseFloat(string(tok), 64)
	if err != nil && math.IsInf(x, 0) {
		rt.setReadErr(fmt.Errorf("%w: %s out of range", ErrMalformedInput, tok))
	}
	if err := rt.sc.Delimiter(); err != nil {
		rt.setReadErr(err)
	}
	return Real(x)
}

// ReadString is an input primitive.
//
// readString reads a line into buf, where size is the capacity the program
// declared for it. The capacity actually used is the smaller of size and
// len(buf). Reading stops after capacity-1 characters, at end of stream, or
// after a newline, which is consumed but not stored. Every other character,
// carriage returns included, is stored as read. The stored characters are
// always followed by a NUL terminator inside the capacity.
//
// The result is the stored characters without the terminator. If the
// capacity is not positive, nothing is read or written and the result is
// nil. A capacity of 1 stores only the terminator and reads nothing.
func (rt *Runtime) ReadString(size Integer, buf []byte) []byte {
	rt.beginInput()
	capacity := len(buf)
	if int64(size) < int64(capacity) {
		capacity = int(size)
	}
	if capacity <= 0 {
		rt.Trace("readString", nil, size)
		return nil
	}
	// Every store below is to buf[n] with n < capacity <= len(buf).
	buf = buf[:capacity]
	n := 0
	for n < capacity-1 {
		c, err := rt.in.ReadByte()
		if err != nil {
			// A partial line at end of stream is still a successful read.
			if n == 0 || err != io.EOF {
				rt.setReadErr(err)
			} else {
				rt.eof = true
			}
			break
		}
		if c == '\n' {
			break
		}
		buf[n] = c
		n++
	}
	buf[n] = 0
	rt.Trace("readString", buf[:n], size)
	return buf[:n]
}
