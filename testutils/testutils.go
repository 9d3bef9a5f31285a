// Package testutils provides utilities for testing the PCL runtime in Go.
package testutils

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/zephyrtronium/pclrt"
)

// Runtime returns a Runtime reading input and writing to the returned buffer.
// Output stays buffered until the Runtime is flushed; use Output to read it.
func Runtime(input string, opts ...pclrt.Option) (*pclrt.Runtime, *bytes.Buffer) {
	var out bytes.Buffer
	return pclrt.New(strings.NewReader(input), &out, opts...), &out
}

// Output flushes rt and returns everything written to out so far. The test
// fails if flushing does.
func Output(t *testing.T, rt *pclrt.Runtime, out *bytes.Buffer) string {
	t.Helper()
	if err := rt.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	return out.String()
}

// A CountingReader counts the bytes read through it. Runtimes buffer their
// input, so N is an upper bound on what primitives consumed; wrap it in a
// one-byte reader such as iotest.OneByteReader to make it exact enough to
// detect a primitive that reads when it must not.
type CountingReader struct {
	R io.Reader
	N int
}

// Read reads from the underlying reader and adds to the count.
func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.R.Read(p)
	r.N += n
	return n, err
}

// A RuntimeTestCase is a test case that runs primitives against fresh input
// and checks the complete output.
type RuntimeTestCase struct {
	// Input is the text of the input channel.
	Input string
	// Run calls primitives on the Runtime.
	Run func(t *testing.T, rt *pclrt.Runtime)
	// Output is the exact text the output channel must hold afterward.
	Output string
}

// TestFunc returns a test function for the test case.
func (c RuntimeTestCase) TestFunc(opts ...pclrt.Option) func(*testing.T) {
	return func(t *testing.T) {
		rt, out := Runtime(c.Input, opts...)
		c.Run(t, rt)
		if err := rt.Close(); err != nil {
			t.Errorf("close failed: %v", err)
		}
		if got := out.String(); got != c.Output {
			t.Errorf("wrong output: want %q, have %q", c.Output, got)
		}
	}
}

// FailWriter is a writer that always fails with Err.
type FailWriter struct {
	Err error
}

// Write returns 0 and w.Err.
func (w FailWriter) Write(p []byte) (int, error) {
	return 0, w.Err
}
