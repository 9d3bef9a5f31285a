package abi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/zephyrtronium/pclrt"
)

// Value is an argument to or result of a primitive. Only the field matching
// Kind is meaningful.
type Value struct {
	Kind Kind
	// Int holds Integer values.
	Int pclrt.Integer
	// Real holds Real values.
	Real pclrt.Real
	// Byte holds Boolean and Char values.
	Byte byte
	// Bytes holds String, Buffer, and Packed values. A nil String result
	// means the primitive produced a NULL pointer.
	Bytes []byte
}

// IntegerValue returns an Integer Value.
func IntegerValue(n pclrt.Integer) Value {
	return Value{Kind: Integer, Int: n}
}

// RealValue returns a Real Value.
func RealValue(x pclrt.Real) Value {
	return Value{Kind: Real, Real: x}
}

// BooleanValue returns a Boolean Value.
func BooleanValue(b pclrt.Boolean) Value {
	return Value{Kind: Boolean, Byte: byte(b)}
}

// CharValue returns a Char Value.
func CharValue(c pclrt.Char) Value {
	return Value{Kind: Char, Byte: c}
}

// BytesValue returns a String, Buffer, or Packed Value.
func BytesValue(k Kind, b []byte) Value {
	return Value{Kind: k, Bytes: b}
}

// String renders the value as text: numbers in their usual Go formats,
// booleans as true or false, characters as themselves, and byte sequences up
// to any NUL. Void renders as the empty string.
func (v Value) String() string {
	switch v.Kind {
	case Integer:
		return strconv.FormatInt(int64(v.Int), 10)
	case Real:
		return strconv.FormatFloat(float64(v.Real), 'g', -1, 64)
	case Boolean:
		return pclrt.Boolean(v.Byte).String()
	case Char:
		return string([]byte{v.Byte})
	case String, Buffer, Packed:
		b := v.Bytes
		if k := bytes.IndexByte(b, 0); k >= 0 {
			b = b[:k]
		}
		return string(b)
	}
	return ""
}

// ParseValue converts text to a Value of kind k. Integers and reals use Go
// literal syntax; booleans are true, false, or an integer; characters are a
// single byte, a quoted Go character literal, or #n for the code n. Strings
// and packed sequences are the text itself. For a Buffer, the text is the
// size of a new zeroed buffer to allocate.
func ParseValue(k Kind, s string) (Value, error) {
	switch k {
	case Integer:
		n, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return Value{}, fmt.Errorf("abi: bad integer %q: %w", s, err)
		}
		return IntegerValue(pclrt.Integer(n)), nil
	case Real:
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("abi: bad real %q: %w", s, err)
		}
		return RealValue(pclrt.Real(x)), nil
	case Boolean:
		switch strings.ToLower(s) {
		case "true":
			return BooleanValue(pclrt.True), nil
		case "false":
			return BooleanValue(pclrt.False), nil
		}
		n, err := strconv.ParseInt(s, 0, 8)
		if err != nil {
			return Value{}, fmt.Errorf("abi: bad boolean %q: %w", s, err)
		}
		return BooleanValue(pclrt.Boolean(n)), nil
	case Char:
		return parseChar(s)
	case String, Packed:
		return BytesValue(k, []byte(s)), nil
	case Buffer:
		n, err := strconv.ParseUint(s, 0, 31)
		if err != nil {
			return Value{}, fmt.Errorf("abi: bad buffer size %q: %w", s, err)
		}
		return BytesValue(Buffer, make([]byte, n)), nil
	}
	return Value{}, fmt.Errorf("abi: cannot parse a %v value", k)
}

func parseChar(s string) (Value, error) {
	switch {
	case len(s) == 1:
		return CharValue(s[0]), nil
	case len(s) > 1 && s[0] == '#':
		n, err := strconv.ParseUint(s[1:], 0, 8)
		if err != nil {
			return Value{}, fmt.Errorf("abi: bad character code %q: %w", s, err)
		}
		return CharValue(pclrt.Char(n)), nil
	case len(s) > 2 && s[0] == '\'':
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" || s[len(s)-1] != '\'' || r > 0xff {
			return Value{}, fmt.Errorf("abi: bad character literal %q", s)
		}
		return CharValue(pclrt.Char(r)), nil
	}
	return Value{}, fmt.Errorf("abi: bad character %q", s)
}
