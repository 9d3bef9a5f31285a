// Package conformance runs end-to-end cases against the runtime primitives.
//
// A case supplies the text of the input channel, a script of primitive calls,
// and the exact text the output channel must hold afterward. Cases are
// written in YAML:
//
//	cases:
//	- name: echo an integer
//	  input: "42\n"
//	  calls:
//	  - op: readInteger
//	    want: "42"
//	  - op: writeInteger
//	    args: [$0]
//	  output: "42"
//
// An argument of the form $N is the result of call N of the same case, which
// must have the parameter's kind. Other arguments are parsed with
// abi.ParseValue. A call's want, if present, is compared with the text of its
// result as abi.Value.String renders it.
package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/pclrt"
	"github.com/zephyrtronium/pclrt/abi"
)

// ErrFailed means a case's results or output differed from its expectations.
var ErrFailed = errors.New("conformance: case failed")

// Suite is a list of cases, as stored in a file.
type Suite struct {
	Cases []Case `yaml:"cases"`
}

// Case is one end-to-end scenario.
type Case struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Calls  []Call `yaml:"calls"`
	Output string `yaml:"output"`
	// Err, if set, is the text Runtime.Err must have after the last call.
	Err string `yaml:"err,omitempty"`
}

// Call is one primitive invocation in a case.
type Call struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args,flow,omitempty"`
	Want *string  `yaml:"want,omitempty"`
}

// Result is the outcome of running a case.
type Result struct {
	Name string
	// Output is everything the case wrote.
	Output string
	// Err is nil if the case passed. Otherwise it wraps ErrFailed for a
	// mismatch, or describes why the case could not run.
	Err error
}

// Parse decodes a suite from YAML.
func Parse(b []byte) (Suite, error) {
	var s Suite
	if err := yaml.UnmarshalStrict(b, &s); err != nil {
		return Suite{}, fmt.Errorf("conformance: %w", err)
	}
	return s, nil
}

// Load reads and decodes a suite.
func Load(r io.Reader) (Suite, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Suite{}, fmt.Errorf("conformance: %w", err)
	}
	return Parse(b)
}

// LoadFile reads and decodes the suite in the named file.
func LoadFile(path string) (Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return Suite{}, fmt.Errorf("conformance: %w", err)
	}
	defer f.Close()
	s, err := Load(f)
	if err != nil {
		return Suite{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Run runs every case in the suite with reg.
func (s Suite) Run(reg *abi.Registry) []Result {
	r := make([]Result, len(s.Cases))
	for i, c := range s.Cases {
		r[i] = c.Run(reg)
	}
	return r
}

// Run runs the case against a fresh Runtime using reg to dispatch calls.
func (c Case) Run(reg *abi.Registry) Result {
	var out bytes.Buffer
	rt := pclrt.New(strings.NewReader(c.Input), &out)
	res := Result{Name: c.Name}
	results := make([]abi.Value, 0, len(c.Calls))
	for i, call := range c.Calls {
		v, err := c.call(reg, rt, call, results)
		if err != nil {
			rt.Flush()
			res.Output = out.String()
			res.Err = fmt.Errorf("call %d (%s): %w", i, call.Op, err)
			return res
		}
		if call.Want != nil && v.String() != *call.Want {
			rt.Flush()
			res.Output = out.String()
			res.Err = fmt.Errorf("%w: call %d (%s) = %q, want %q", ErrFailed, i, call.Op, v.String(), *call.Want)
			return res
		}
		results = append(results, v)
	}
	if c.Err != "" {
		got := "<nil>"
		if err := rt.Err(); err != nil {
			got = err.Error()
		}
		if got != c.Err {
			res.Err = fmt.Errorf("%w: err = %q, want %q", ErrFailed, got, c.Err)
		}
	}
	if err := rt.Close(); err != nil && res.Err == nil {
		res.Err = err
	}
	res.Output = out.String()
	if res.Err == nil && res.Output != c.Output {
		res.Err = fmt.Errorf("%w: output %q, want %q", ErrFailed, res.Output, c.Output)
	}
	return res
}

func (c Case) call(reg *abi.Registry, rt *pclrt.Runtime, call Call, results []abi.Value) (abi.Value, error) {
	p, ok := reg.Lookup(call.Op)
	if !ok {
		return abi.Value{}, fmt.Errorf("%w: %s", abi.ErrUnknown, call.Op)
	}
	if len(call.Args) != len(p.Params) {
		return abi.Value{}, fmt.Errorf("%w: %d arguments, want %d", abi.ErrArgs, len(call.Args), len(p.Params))
	}
	args := make([]abi.Value, len(call.Args))
	for i, a := range call.Args {
		v, err := argument(a, p.Params[i], results)
		if err != nil {
			return abi.Value{}, err
		}
		args[i] = v
	}
	return reg.Call(rt, call.Op, args...)
}

// argument resolves one argument of a call.
func argument(a string, k abi.Kind, results []abi.Value) (abi.Value, error) {
	if len(a) < 2 || a[0] != '$' {
		return abi.ParseValue(k, a)
	}
	n, err := strconv.Atoi(a[1:])
	if err != nil {
		return abi.ParseValue(k, a)
	}
	if n < 0 || n >= len(results) {
		return abi.Value{}, fmt.Errorf("%s refers to a call that has not happened", a)
	}
	v := results[n]
	if v.Kind != k {
		// A string result can feed a string parameter of any flavor, which
		// is how generated code passes a buffer it just filled.
		if !isBytes(v.Kind) || !isBytes(k) {
			return abi.Value{}, fmt.Errorf("%w: %s is %v, want %v", abi.ErrArgs, a, v.Kind, k)
		}
		v.Kind = k
	}
	return v, nil
}

func isBytes(k abi.Kind) bool {
	return k == abi.String || k == abi.Buffer || k == abi.Packed
}
