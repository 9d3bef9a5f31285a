// Package config reads host configuration for the PCL runtime from the
// environment and an optional YAML file. The primitives themselves never
// consult configuration; only the entry points that build a Runtime on the
// process streams do.
package config

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/pclrt"
	"github.com/zephyrtronium/pclrt/charset"
	"github.com/zephyrtronium/pclrt/trace"
)

// Environment variables. PCLRT_CONFIG names a YAML file whose keys match the
// yaml tags of Config; the other variables override the file.
const (
	EnvConfig    = "PCLRT_CONFIG"
	EnvCharset   = "PCLRT_CHARSET"
	EnvTrace     = "PCLRT_TRACE"
	EnvTraceTime = "PCLRT_TRACE_TIME"
	EnvAutoFlush = "PCLRT_AUTOFLUSH"
)

// Config is the host configuration.
type Config struct {
	// Charset is the program character set, by any name charset.Lookup
	// accepts. Empty means bytes pass through unchanged.
	Charset string `yaml:"charset"`
	// Trace is where to write the primitive call trace: empty for none,
	// "stderr", "stdout", or a file path to append to.
	Trace string `yaml:"trace"`
	// TraceTime is the strftime layout for trace timestamps. Nil means
	// trace.DefaultTime; an empty string omits timestamps.
	TraceTime *string `yaml:"trace_time"`
	// AutoFlush forces flushing after every output primitive on or off. Nil
	// leaves the choice to the entry point.
	AutoFlush *bool `yaml:"autoflush"`
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return FromEnv(os.LookupEnv)
}

// FromEnv reads configuration using env to look up variables.
func FromEnv(env func(string) (string, bool)) (Config, error) {
	var c Config
	if path, ok := env(EnvConfig); ok && path != "" {
		b, err := ioutil.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := yaml.UnmarshalStrict(b, &c); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if v, ok := env(EnvCharset); ok {
		c.Charset = v
	}
	if v, ok := env(EnvTrace); ok {
		c.Trace = v
	}
	if v, ok := env(EnvTraceTime); ok {
		c.TraceTime = &v
	}
	if v, ok := env(EnvAutoFlush); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvAutoFlush, err)
		}
		c.AutoFlush = &b
	}
	return c, nil
}

// Options converts the configuration to Runtime options. The returned closer
// releases the trace file, if one was opened; it is never nil.
func (c Config) Options() ([]pclrt.Option, io.Closer, error) {
	var opts []pclrt.Option
	closer := io.Closer(nopCloser{})
	enc, err := charset.Lookup(c.Charset)
	if err != nil {
		return nil, closer, fmt.Errorf("config: %w", err)
	}
	if enc != nil {
		opts = append(opts, pclrt.WithCharset(enc))
	}
	if c.AutoFlush != nil {
		opts = append(opts, pclrt.WithAutoFlush(*c.AutoFlush))
	}
	var w io.Writer
	switch c.Trace {
	case "":
	case "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(c.Trace, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return nil, closer, fmt.Errorf("config: trace: %w", err)
		}
		w, closer = f, f
	}
	if w != nil {
		layout := trace.DefaultTime
		if c.TraceTime != nil {
			layout = *c.TraceTime
		}
		opts = append(opts, pclrt.WithTrace(trace.New(w, layout)))
	}
	return opts, closer, nil
}

// Std builds a Runtime on the process streams from the configuration. The
// returned function closes the Runtime and then any trace file.
func (c Config) Std() (*pclrt.Runtime, func() error, error) {
	opts, closer, err := c.Options()
	if err != nil {
		return nil, nil, err
	}
	rt := pclrt.Std(opts...)
	done := func() error {
		err := rt.Close()
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
		return err
	}
	return rt, done, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
