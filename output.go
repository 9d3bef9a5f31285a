package pclrt

import (
	"bytes"
	"math"
	"strconv"
)

// emit appends b to the output channel.
func (rt *Runtime) emit(b []byte) {
	if _, err := rt.out.Write(b); err != nil {
		rt.setWriteErr(err)
		return
	}
	if rt.autoFlush {
		rt.Flush()
	}
}

// emitByte appends c to the output channel.
func (rt *Runtime) emitByte(c byte) {
	if err := rt.out.WriteByte(c); err != nil {
		rt.setWriteErr(err)
		return
	}
	if rt.autoFlush {
		rt.Flush()
	}
}

// WriteInteger is an output primitive.
//
// writeInteger writes n in decimal, with a leading - if it is negative.
func (rt *Runtime) WriteInteger(n Integer) {
	rt.emit(strconv.AppendInt(rt.scratch[:0], int64(n), 10))
	rt.Trace("writeInteger", nil, n)
}

// WriteBoolean is an output primitive.
//
// writeBoolean writes true if b is nonzero and false otherwise.
func (rt *Runtime) WriteBoolean(b Boolean) {
	rt.emit(append(rt.scratch[:0], b.String()...))
	rt.Trace("writeBoolean", nil, b)
}

// WriteChar is an output primitive.
//
// writeChar writes c unchanged.
func (rt *Runtime) WriteChar(c Char) {
	rt.emitByte(c)
	rt.Trace("writeChar", nil, c)
}

// WriteReal is an output primitive.
//
// writeReal writes x in fixed-point notation with six digits after the
// point. Non-finite values are written as nan, inf, or -inf, as C's printf
// writes them.
func (rt *Runtime) WriteReal(x Real) {
	rt.emit(AppendReal(rt.scratch[:0], x))
	rt.Trace("writeReal", nil, x)
}

// WriteString is an output primitive.
//
// writeString writes the bytes of s up to, but not including, the first NUL.
// If s has no NUL, all of it is written.
func (rt *Runtime) WriteString(s []byte) {
	if k := bytes.IndexByte(s, 0); k >= 0 {
		s = s[:k]
	}
	rt.emit(s)
	rt.Trace("writeString", nil, s)
}

// WritePacked is an output primitive.
//
// writePacked writes exactly n characters from codes, unchanged. Nothing is
// written if n is not positive. If codes has fewer than n characters, only
// those are written.
func (rt *Runtime) WritePacked(n Integer, codes ...Char) {
	if n <= 0 {
		codes = nil
	} else if int64(n) < int64(len(codes)) {
		codes = codes[:n]
	}
	rt.emit(codes)
	rt.Trace("writePacked", nil, n, codes)
}

// WriteLine is an output primitive.
//
// writeLine writes a single newline.
func (rt *Runtime) WriteLine() {
	rt.emitByte('\n')
	rt.Trace("writeLine", nil)
}

// AppendReal appends the text writeReal produces for x to b.
func AppendReal(b []byte, x Real) []byte {
	f := float64(x)
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return append(b, "-nan"...)
		}
		return append(b, "nan"...)
	case math.IsInf(f, 1):
		return append(b, "inf"...)
	case math.IsInf(f, -1):
		return append(b, "-inf"...)
	}
	return strconv.AppendFloat(b, f, 'f', 6, 64)
}
