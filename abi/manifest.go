package abi

import (
	_ "embed" // manifest
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"reflect"
	"strings"

	"gopkg.in/yaml.v2"
)

// Version is the ABI version this package implements. The compiler front end
// refuses manifests with a different version.
const Version = "1"

// ErrMismatch means a registry and a manifest disagree.
var ErrMismatch = errors.New("abi: registry does not match manifest")

// Manifest is the machine-readable description of the primitive ABI that the
// compiler front end consumes.
type Manifest struct {
	Version    string      `yaml:"version"`
	Primitives []Signature `yaml:"primitives"`
}

//go:embed abi.yaml
var embedded []byte

// Embedded returns the manifest compiled into the package, which is the
// contract generated code is built against.
func Embedded() Manifest {
	m, err := ParseManifest(embedded)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseManifest decodes a YAML manifest. Unknown fields are errors.
func ParseManifest(b []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("abi: bad manifest: %w", err)
	}
	if m.Version != Version {
		return Manifest{}, fmt.Errorf("abi: manifest version %q, want %q", m.Version, Version)
	}
	return m, nil
}

// LoadManifest reads and decodes a YAML manifest.
func LoadManifest(r io.Reader) (Manifest, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Manifest{}, fmt.Errorf("abi: reading manifest: %w", err)
	}
	return ParseManifest(b)
}

// Marshal encodes the manifest as YAML.
func (m Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Lookup returns the signature with the given name.
func (m Manifest) Lookup(name string) (Signature, bool) {
	for _, s := range m.Primitives {
		if s.Name == name {
			return s, true
		}
	}
	return Signature{}, false
}

// Manifest describes the registry's primitives.
func (r *Registry) Manifest() Manifest {
	return Manifest{Version: Version, Primitives: r.Signatures()}
}

// Verify checks that the registry implements exactly the primitives in m,
// with the same parameters, results, and providers. Documentation is not
// compared. The returned error lists every difference.
func (r *Registry) Verify(m Manifest) error {
	var diffs []string
	seen := make(map[string]bool, len(m.Primitives))
	for _, want := range m.Primitives {
		seen[want.Name] = true
		p, ok := r.prims[want.Name]
		if !ok {
			diffs = append(diffs, "missing "+want.Name)
			continue
		}
		got := p.Signature
		if !sameKinds(got.Params, want.Params) {
			diffs = append(diffs, fmt.Sprintf("%s params %v, manifest has %v", want.Name, got.Params, want.Params))
		}
		if got.Result != want.Result {
			diffs = append(diffs, fmt.Sprintf("%s result %v, manifest has %v", want.Name, got.Result, want.Result))
		}
		if got.Exported() != want.Exported() {
			diffs = append(diffs, fmt.Sprintf("%s provider %q, manifest has %q", want.Name, got.Provider, want.Provider))
		}
	}
	for _, name := range r.order {
		if !seen[name] {
			diffs = append(diffs, "extra "+name)
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s", ErrMismatch, strings.Join(diffs, "; "))
	}
	return nil
}

func sameKinds(a, b []Kind) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
