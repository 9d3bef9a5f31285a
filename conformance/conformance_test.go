package conformance_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/zephyrtronium/pclrt/abi"
	"github.com/zephyrtronium/pclrt/conformance"
)

// TestSuites runs every suite in testdata.
func TestSuites(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no suites")
	}
	reg := abi.Default()
	for _, file := range files {
		s, err := conformance.LoadFile(file)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(filepath.Base(file), func(t *testing.T) {
			for _, c := range s.Cases {
				t.Run(c.Name, func(t *testing.T) {
					r := c.Run(reg)
					if r.Err != nil {
						t.Errorf("%v (output %q)", r.Err, r.Output)
					}
				})
			}
		})
	}
}

// TestFailures tests that the runner reports cases that should fail.
func TestFailures(t *testing.T) {
	src := `
cases:
- name: wrong output
  calls:
  - op: writeInteger
    args: [1]
  output: "2"
- name: wrong result
  input: "5"
  calls:
  - op: readInteger
    want: "6"
- name: wrong error
  input: ""
  calls:
  - op: readInteger
  err: "pclrt: malformed input"
- name: unknown op
  calls:
  - op: writeln
- name: bad reference
  calls:
  - op: writeInteger
    args: [$3]
- name: wrong kind reference
  input: "2.5"
  calls:
  - op: readReal
  - op: writeInteger
    args: [$0]
`
	s, err := conformance.Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]error{
		"wrong output":         conformance.ErrFailed,
		"wrong result":         conformance.ErrFailed,
		"wrong error":          conformance.ErrFailed,
		"unknown op":           abi.ErrUnknown,
		"bad reference":        nil,
		"wrong kind reference": abi.ErrArgs,
	}
	for _, r := range s.Run(abi.Default()) {
		if r.Err == nil {
			t.Errorf("%s: passed", r.Name)
			continue
		}
		if w := want[r.Name]; w != nil && !errors.Is(r.Err, w) {
			t.Errorf("%s: wrong error %v", r.Name, r.Err)
		}
	}
}

func TestParseStrict(t *testing.T) {
	if _, err := conformance.Parse([]byte("cases:\n- name: x\n  expect: y\n")); err == nil {
		t.Error("unknown field accepted")
	}
}
