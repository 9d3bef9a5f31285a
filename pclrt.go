package pclrt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"golang.org/x/text/encoding"

	"github.com/zephyrtronium/pclrt/charset"
	"github.com/zephyrtronium/pclrt/internal/scan"
	"github.com/zephyrtronium/pclrt/trace"
)

// Integer is the PCL integer type, a 32-bit signed integer.
type Integer int32

// Real is the PCL real type, an IEEE 754 double.
type Real float64

// Boolean is the PCL boolean type. It occupies a single byte; zero is false
// and any other value is true.
type Boolean uint8

// Boolean constants as the code generator materializes them.
const (
	False Boolean = 0
	True  Boolean = 1
)

// Bool reports whether b is true.
func (b Boolean) Bool() bool {
	return b != 0
}

// String returns "true" or "false".
func (b Boolean) String() string {
	if b != 0 {
		return "true"
	}
	return "false"
}

// Char is the PCL character type, a single byte. It is an alias so that
// character buffers are plain byte slices.
type Char = byte

// EOF is the character ReadChar returns at end of stream. It is the value C
// produces for (char)EOF, so it is also a valid character; use Runtime.EOF to
// tell them apart.
const EOF Char = 0xff

// Runtime is the I/O context shared by the input and output primitives. It
// stands in for the process-wide standard streams, which compiled programs
// use implicitly.
type Runtime struct {
	in  *bufio.Reader
	sc  scan.Scanner
	out *bufio.Writer
	// dst is the caller's writer, under out and any charset transform.
	dst io.Writer
	// xlate finishes the charset transform between out and dst, if there is
	// one.
	xlate io.Closer

	autoFlush bool
	tracer    *trace.Tracer

	// err is the condition from the most recent input primitive, or a sticky
	// write error.
	err     error
	writing bool
	// eof is set when the most recent input primitive reached end of stream.
	eof bool

	// scratch is reused for number formatting.
	scratch [64]byte
}

// An Option configures a Runtime.
type Option func(*Runtime)

// WithAutoFlush sets whether the Runtime flushes output after every output
// primitive. By default, output is buffered until Flush, Close, or the next
// input primitive.
func WithAutoFlush(on bool) Option {
	return func(rt *Runtime) {
		rt.autoFlush = on
	}
}

// WithTrace makes the Runtime report every primitive call to t. A nil t
// disables tracing.
func WithTrace(t *trace.Tracer) Option {
	return func(rt *Runtime) {
		rt.tracer = t
	}
}

// WithCharset translates between the program's single-byte character set and
// UTF-8 on the host side. Input is encoded into enc before primitives see it,
// and output is decoded from enc before it reaches the writer. A nil enc
// leaves bytes untouched, which is the default.
func WithCharset(enc encoding.Encoding) Option {
	return func(rt *Runtime) {
		if enc == nil {
			return
		}
		w := charset.Writer(rt.dst, enc)
		rt.out = bufio.NewWriter(w)
		rt.xlate = w
		rt.in = bufio.NewReader(charset.Reader(rt.in, enc))
	}
}

// New creates a Runtime reading from in and writing to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Runtime {
	rt := &Runtime{
		in:  bufio.NewReader(in),
		out: bufio.NewWriter(out),
		dst: out,
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.sc = scan.Scanner{R: rt.in}
	return rt
}

// Std creates a Runtime on the process's standard input and output. Output is
// flushed after every primitive when standard output is a terminal; opts are
// applied after that default.
func Std(opts ...Option) *Runtime {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	return New(os.Stdin, os.Stdout, append([]Option{WithAutoFlush(interactive)}, opts...)...)
}

// Flush writes any buffered output to the underlying writer.
func (rt *Runtime) Flush() error {
	if err := rt.out.Flush(); err != nil {
		rt.setWriteErr(err)
		return rt.err
	}
	return nil
}

// Close flushes output and finishes any charset translation. It does not
// close the underlying reader or writer.
func (rt *Runtime) Close() error {
	err := rt.Flush()
	if rt.xlate == nil {
		return err
	}
	if cerr := rt.xlate.Close(); cerr != nil && err == nil {
		rt.setWriteErr(cerr)
		err = rt.err
	}
	return err
}

// Err returns the condition recorded by the most recent input primitive, or
// the first write error since the last ClearErr. Input conditions are
// ErrMalformedInput and ErrEndOfStream, possibly wrapped; any other error
// comes from the underlying streams.
func (rt *Runtime) Err() error {
	return rt.err
}

// ClearErr discards any recorded condition, including a sticky write error.
// The output buffer itself stays failed once its writer has failed.
func (rt *Runtime) ClearErr() {
	rt.err = nil
	rt.writing = false
	rt.eof = false
}

// EOF reports whether the most recent input primitive reached end of stream.
// It is the equivalent of C's feof.
func (rt *Runtime) EOF() bool {
	return rt.eof
}

// Trace reports a primitive call to the Runtime's tracer, if it has one. The
// input and output primitives trace themselves; hosts use this for the pure
// primitives, which have no Runtime. It is safe to call on a nil Runtime.
func (rt *Runtime) Trace(name string, result interface{}, args ...interface{}) {
	if rt == nil || rt.tracer == nil {
		return
	}
	rt.tracer.Call(name, result, args...)
}

// setWriteErr records a write error. Write errors are sticky: input
// primitives do not clear them.
func (rt *Runtime) setWriteErr(err error) {
	if rt.writing {
		return
	}
	rt.err = fmt.Errorf("pclrt: write: %w", err)
	rt.writing = true
}

// beginInput resets the input condition and makes pending output visible
// before blocking on input.
func (rt *Runtime) beginInput() {
	if rt.out.Buffered() > 0 {
		rt.Flush()
	}
	if !rt.writing {
		rt.err = nil
	}
	rt.eof = false
}

// setReadErr records an input condition.
func (rt *Runtime) setReadErr(err error) {
	if err == io.EOF {
		rt.eof = true
		err = ErrEndOfStream
	} else if !errors.Is(err, ErrMalformedInput) {
		err = fmt.Errorf("pclrt: read: %w", err)
	}
	if !rt.writing {
		rt.err = err
	}
}
