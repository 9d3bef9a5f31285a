package pclrt_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/zephyrtronium/pclrt"
	"github.com/zephyrtronium/pclrt/testutils"
	"github.com/zephyrtronium/pclrt/trace"
)

func TestBoolean(t *testing.T) {
	cases := map[pclrt.Boolean]struct {
		b bool
		s string
	}{
		pclrt.False: {false, "false"},
		pclrt.True:  {true, "true"},
		0xff:        {true, "true"},
	}
	for v, c := range cases {
		if v.Bool() != c.b {
			t.Errorf("%d.Bool() = %t", v, v.Bool())
		}
		if v.String() != c.s {
			t.Errorf("%d.String() = %q", v, v.String())
		}
	}
}

func TestCharset(t *testing.T) {
	rt, out := testutils.Runtime("é\n", pclrt.WithCharset(charmap.ISO8859_1))
	c := rt.ReadChar()
	if c != 0xe9 {
		t.Errorf("input not encoded: have %#x", c)
	}
	rt.WriteChar(c)
	rt.WriteString([]byte("\xa3 \xff"))
	if err := rt.Close(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "é£ ÿ" {
		t.Errorf("output not decoded: have %q", got)
	}
}

func TestCharsetReplacement(t *testing.T) {
	rt, _ := testutils.Runtime("€x", pclrt.WithCharset(charmap.ISO8859_1))
	if c := rt.ReadChar(); c != 0x1a {
		t.Errorf("unrepresentable character read as %#x", c)
	}
	if c := rt.ReadChar(); c != 'x' {
		t.Errorf("wrong char after replacement: %q", c)
	}
}

func TestTrace(t *testing.T) {
	var log bytes.Buffer
	tr := trace.New(&log, "")
	rt, _ := testutils.Runtime("7 z", pclrt.WithTrace(tr))
	rt.WriteInteger(rt.ReadInteger())
	rt.WriteChar(rt.ReadChar())
	rt.WriteString([]byte("hi\x00x"))
	rt.WriteBoolean(pclrt.True)
	rt.Trace("pi", pclrt.Pi())
	want := strings.Join([]string{
		"readInteger() = 7",
		"writeInteger(7)",
		"readChar() = 'z'",
		"writeChar('z')",
		`writeString("hi")`,
		"writeBoolean(true)",
		"pi() = 3.141592653589793",
		"",
	}, "\n")
	if got := log.String(); got != want {
		t.Errorf("wrong trace:\nwant %q\nhave %q", want, got)
	}
}

func TestTraceTimestamp(t *testing.T) {
	var log bytes.Buffer
	tr := trace.New(&log, trace.DefaultTime)
	tr.Now = func() time.Time { return time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC) }
	rt, _ := testutils.Runtime("", pclrt.WithTrace(tr))
	rt.WriteLine()
	if got := log.String(); got != "09:05:07 writeLine()\n" {
		t.Errorf("wrong trace: %q", got)
	}
}

// TestTraceNil tests that tracing through a nil Runtime does nothing.
func TestTraceNil(t *testing.T) {
	var rt *pclrt.Runtime
	rt.Trace("ln", pclrt.Real(0), pclrt.Real(1))
}

// TestCloseKeepsWriter tests that Close leaves the caller's writer usable.
func TestCloseKeepsWriter(t *testing.T) {
	var out bytes.Buffer
	rt := pclrt.New(strings.NewReader(""), &out, pclrt.WithCharset(charmap.Windows1252))
	rt.WriteString([]byte("a"))
	if err := rt.Close(); err != nil {
		t.Fatal(err)
	}
	out.WriteString("b")
	if out.String() != "ab" {
		t.Errorf("wrong output: %q", out.String())
	}
}
