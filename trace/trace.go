// Package trace records calls to runtime primitives, one line per call.
package trace

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gitlab.com/variadico/lctime"
)

// DefaultTime is the strftime layout used when none is configured.
const DefaultTime = "%H:%M:%S"

// Tracer writes call records to a writer. A line has the form
//
//	15:04:05 writeInteger(42)
//	15:04:05 readInteger() = 42
//
// where the leading timestamp is formatted with a strftime layout and
// omitted if the layout is empty. Write errors are ignored.
type Tracer struct {
	w      io.Writer
	layout string
	// Now returns the time to stamp. It defaults to time.Now.
	Now func() time.Time

	b strings.Builder
}

// New creates a Tracer writing to w with the given strftime layout.
func New(w io.Writer, layout string) *Tracer {
	return &Tracer{w: w, layout: layout, Now: time.Now}
}

// Call records a call of the primitive name with the given arguments. If
// result is nil, the record has no result.
func (t *Tracer) Call(name string, result interface{}, args ...interface{}) {
	t.b.Reset()
	if t.layout != "" {
		t.b.WriteString(lctime.Strftime(t.layout, t.Now()))
		t.b.WriteByte(' ')
	}
	t.b.WriteString(name)
	t.b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			t.b.WriteString(", ")
		}
		t.b.WriteString(Format(arg))
	}
	t.b.WriteByte(')')
	if result != nil {
		t.b.WriteString(" = ")
		t.b.WriteString(Format(result))
	}
	t.b.WriteByte('\n')
	io.WriteString(t.w, t.b.String())
}

// Format renders a primitive argument or result. Characters are quoted as
// character literals and byte slices as string literals; anything else uses
// its String method or default format.
func Format(v interface{}) string {
	switch v := v.(type) {
	case byte:
		return strconv.QuoteRuneToASCII(rune(v))
	case []byte:
		return strconv.QuoteToASCII(string(v))
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}
