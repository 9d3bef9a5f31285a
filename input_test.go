package pclrt_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/zephyrtronium/pclrt"
	"github.com/zephyrtronium/pclrt/testutils"
)

func TestReadInteger(t *testing.T) {
	cases := map[string]struct {
		in   string
		want pclrt.Integer
		err  error
		// next is the character after the token and its delimiter.
		next pclrt.Char
	}{
		"plain":     {"42\n", 42, nil, pclrt.EOF},
		"spaces":    {" \t\n -17 x", -17, nil, 'x'},
		"plus":      {"+5", 5, nil, pclrt.EOF},
		"adjacent":  {"12abc", 12, nil, 'a'},
		"one delim": {"12\n\nx", 12, nil, '\n'},
		"letters":   {"abc", 0, pclrt.ErrMalformedInput, 'a'},
		"sign only": {"-x", 0, pclrt.ErrMalformedInput, 'x'},
		"empty":     {"", 0, pclrt.ErrEndOfStream, pclrt.EOF},
		"blank":     {"  \n", 0, pclrt.ErrEndOfStream, pclrt.EOF},
		"overflow":  {"99999999999 ", math.MaxInt32, pclrt.ErrMalformedInput, pclrt.EOF},
		"underflow": {"-99999999999", math.MinInt32, pclrt.ErrMalformedInput, pclrt.EOF},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rt, _ := testutils.Runtime(c.in)
			if got := rt.ReadInteger(); got != c.want {
				t.Errorf("wrong result: want %d, have %d", c.want, got)
			}
			if err := rt.Err(); !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, have %v", c.err, err)
			}
			if got := rt.ReadChar(); got != c.next {
				t.Errorf("wrong next char: want %q, have %q", c.next, got)
			}
		})
	}
}

// TestIntegerRoundTrip tests that writing an integer and reading it back
// produces the same value.
func TestIntegerRoundTrip(t *testing.T) {
	cases := []pclrt.Integer{0, 1, -1, 42, 1000000, -987654321, math.MaxInt32, math.MinInt32}
	for i := int64(math.MinInt32); i <= math.MaxInt32; i += 104729 * 97 {
		cases = append(cases, pclrt.Integer(i))
	}
	for _, n := range cases {
		rt, out := testutils.Runtime("")
		rt.WriteInteger(n)
		text := testutils.Output(t, rt, out)
		rt, _ = testutils.Runtime(text)
		if got := rt.ReadInteger(); got != n {
			t.Errorf("%d round tripped through %q as %d", n, text, got)
		}
		if err := rt.Err(); err != nil {
			t.Errorf("%d: unexpected error %v", n, err)
		}
	}
}

func TestReadBoolean(t *testing.T) {
	cases := map[string]struct {
		in   string
		want pclrt.Boolean
	}{
		"zero":     {"0", pclrt.False},
		"one":      {"1", pclrt.True},
		"negative": {"-3", pclrt.True},
		"large":    {"256", pclrt.True},
		"word":     {"true", pclrt.False},
		"empty":    {"", pclrt.False},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rt, _ := testutils.Runtime(c.in)
			if got := rt.ReadBoolean(); got != c.want {
				t.Errorf("wrong result: want %v, have %v", c.want, got)
			}
		})
	}
}

func TestReadChar(t *testing.T) {
	rt, _ := testutils.Runtime(" a\n\xff")
	want := []pclrt.Char{' ', 'a', '\n', 0xff}
	for i, w := range want {
		if got := rt.ReadChar(); got != w {
			t.Errorf("char %d: want %q, have %q", i, w, got)
		}
		if rt.EOF() {
			t.Errorf("char %d: EOF before end of stream", i)
		}
	}
	// A real 0xff byte and end of stream share a value; EOF tells them apart.
	if got := rt.ReadChar(); got != pclrt.EOF {
		t.Errorf("wrong char at end of stream: %q", got)
	}
	if !rt.EOF() {
		t.Error("EOF not reported")
	}
	if err := rt.Err(); !errors.Is(err, pclrt.ErrEndOfStream) {
		t.Errorf("wrong error at end of stream: %v", err)
	}
}

func TestReadReal(t *testing.T) {
	cases := map[string]struct {
		in   string
		want float64
		err  error
		next pclrt.Char
	}{
		"plain":        {"3.5\n", 3.5, nil, pclrt.EOF},
		"integer":      {"7 x", 7, nil, 'x'},
		"leading dot":  {"-.5", -0.5, nil, pclrt.EOF},
		"trailing dot": {"5.;", 5, nil, ';'},
		"exponent":     {"1e3", 1000, nil, pclrt.EOF},
		"signed exp":   {"2.5E-1 ", 0.25, nil, pclrt.EOF},
		"bare e":       {"2e", 2, nil, 'e'},
		"bare e sign":  {"2e+x", 2, nil, 'e'},
		"dot":          {". ", 0, pclrt.ErrMalformedInput, ' '},
		"letters":      {"pi", 0, pclrt.ErrMalformedInput, 'p'},
		"empty":        {"", 0, pclrt.ErrEndOfStream, pclrt.EOF},
		"huge":         {"1e400", math.Inf(1), pclrt.ErrMalformedInput, pclrt.EOF},
		"neg huge":     {"-1e400 ", math.Inf(-1), pclrt.ErrMalformedInput, pclrt.EOF},
		"tiny":         {"-1e-400", 0, nil, pclrt.EOF},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rt, _ := testutils.Runtime(c.in)
			if got := float64(rt.ReadReal()); got != c.want {
				t.Errorf("wrong result: want %g, have %g", c.want, got)
			}
			if err := rt.Err(); !errors.Is(err, c.err) {
				t.Errorf("wrong error: want %v, have %v", c.err, err)
			}
			if got := rt.ReadChar(); got != c.next {
				t.Errorf("wrong next char: want %q, have %q", c.next, got)
			}
		})
	}
}

func TestReadString(t *testing.T) {
	cases := map[string]struct {
		in   string
		size pclrt.Integer
		// want holds the results of successive reads.
		want []string
	}{
		"line":      {"hello\nworld\n", 10, []string{"hello", "world"}},
		"bounded":   {"hello\n", 4, []string{"hel", "lo"}},
		"exact":     {"abc\n", 4, []string{"abc", ""}},
		"crlf":      {"hi\r\nyo\r\n", 10, []string{"hi\r", "yo\r"}},
		"lone cr":   {"a\rb\n", 10, []string{"a\rb"}},
		"blank":     {"\n\nx", 10, []string{"", "", "x"}},
		"no final":  {"abc", 10, []string{"abc"}},
		"spaces":    {"  a b  \n", 10, []string{"  a b  "}},
		"size two":  {"xyz\n", 2, []string{"x", "y", "z", ""}},
		"nul input": {"a\x00b\n", 10, []string{"a\x00b"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			rt, _ := testutils.Runtime(c.in)
			for i, w := range c.want {
				buf := bytes.Repeat([]byte{'#'}, int(c.size))
				got := rt.ReadString(c.size, buf)
				if string(got) != w {
					t.Errorf("read %d: want %q, have %q", i, w, got)
				}
				if buf[len(got)] != 0 {
					t.Errorf("read %d: no terminator after %q", i, got)
				}
				if err := rt.Err(); err != nil {
					t.Errorf("read %d: unexpected error %v", i, err)
				}
			}
		})
	}
}

// TestReadStringCapacity tests that readString never stores outside the
// capacity and does not read input when it has no room for characters.
func TestReadStringCapacity(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		r := &testutils.CountingReader{R: iotest.OneByteReader(strings.NewReader("abc\n"))}
		rt := pclrt.New(r, nil)
		buf := []byte{'#'}
		if got := rt.ReadString(0, buf); got != nil {
			t.Errorf("wrong result: %q", got)
		}
		if buf[0] != '#' {
			t.Errorf("buffer modified: %q", buf)
		}
		if r.N != 0 {
			t.Errorf("consumed %d bytes", r.N)
		}
	})
	t.Run("negative", func(t *testing.T) {
		r := &testutils.CountingReader{R: iotest.OneByteReader(strings.NewReader("abc\n"))}
		rt := pclrt.New(r, nil)
		buf := []byte{'#'}
		if got := rt.ReadString(-5, buf); got != nil {
			t.Errorf("wrong result: %q", got)
		}
		if buf[0] != '#' || r.N != 0 {
			t.Errorf("buffer %q after consuming %d bytes", buf, r.N)
		}
	})
	t.Run("one", func(t *testing.T) {
		r := &testutils.CountingReader{R: iotest.OneByteReader(strings.NewReader("abc\n"))}
		rt := pclrt.New(r, nil)
		buf := []byte{'#', '#'}
		got := rt.ReadString(1, buf)
		if got == nil || len(got) != 0 {
			t.Errorf("wrong result: %q", got)
		}
		if buf[0] != 0 || buf[1] != '#' {
			t.Errorf("wrong buffer: %q", buf)
		}
		if r.N != 0 {
			t.Errorf("consumed %d bytes", r.N)
		}
	})
	t.Run("guard", func(t *testing.T) {
		rt, _ := testutils.Runtime("abcdefghij\n")
		buf := bytes.Repeat([]byte{'#'}, 8)
		got := rt.ReadString(4, buf)
		if string(got) != "abc" {
			t.Errorf("wrong result: %q", got)
		}
		if string(buf) != "abc\x00####" {
			t.Errorf("wrote outside capacity: %q", buf)
		}
	})
	t.Run("short buffer", func(t *testing.T) {
		rt, _ := testutils.Runtime("abcdefghij\n")
		buf := make([]byte, 3)
		got := rt.ReadString(100, buf)
		if string(got) != "ab" || buf[2] != 0 {
			t.Errorf("wrong result %q in %q", got, buf)
		}
	})
}

func TestReadStringEOF(t *testing.T) {
	rt, _ := testutils.Runtime("tail")
	buf := make([]byte, 10)
	if got := rt.ReadString(10, buf); string(got) != "tail" {
		t.Errorf("wrong partial line: %q", got)
	}
	if err := rt.Err(); err != nil {
		t.Errorf("partial line reported error %v", err)
	}
	if !rt.EOF() {
		t.Error("partial line at end of stream did not set EOF")
	}
	got := rt.ReadString(10, buf)
	if len(got) != 0 || buf[0] != 0 {
		t.Errorf("wrong result at end of stream: %q", got)
	}
	if err := rt.Err(); !errors.Is(err, pclrt.ErrEndOfStream) {
		t.Errorf("wrong error at end of stream: %v", err)
	}
}

// TestInputClearsCondition tests that each input primitive replaces the
// condition left by the previous one.
func TestInputClearsCondition(t *testing.T) {
	rt, _ := testutils.Runtime("x 5")
	rt.ReadInteger()
	if !errors.Is(rt.Err(), pclrt.ErrMalformedInput) {
		t.Fatalf("wrong error: %v", rt.Err())
	}
	if c := rt.ReadChar(); c != 'x' {
		t.Fatalf("wrong char: %q", c)
	}
	if err := rt.Err(); err != nil {
		t.Errorf("error not cleared: %v", err)
	}
	if n := rt.ReadInteger(); n != 5 {
		t.Errorf("wrong integer: %d", n)
	}
}

// TestInputFlushesOutput tests that pending output is visible before an input
// primitive reads.
func TestInputFlushesOutput(t *testing.T) {
	rt, out := testutils.Runtime("3\n")
	rt.WriteString([]byte("n? "))
	if out.Len() != 0 {
		t.Fatalf("output flushed early: %q", out.String())
	}
	rt.ReadInteger()
	if out.String() != "n? " {
		t.Errorf("prompt not flushed: %q", out.String())
	}
}

func TestEchoLine(t *testing.T) {
	testutils.RuntimeTestCase{
		Input: "hithere\n",
		Run: func(t *testing.T, rt *pclrt.Runtime) {
			buf := make([]byte, 20)
			rt.WriteString(rt.ReadString(20, buf))
		},
		Output: "hithere",
	}.TestFunc()(t)
}

func TestEchoInteger(t *testing.T) {
	testutils.RuntimeTestCase{
		Input: "42\n",
		Run: func(t *testing.T, rt *pclrt.Runtime) {
			rt.WriteInteger(rt.ReadInteger())
		},
		Output: "42",
	}.TestFunc()(t)
}
