package abi

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"

	"github.com/zephyrtronium/contains"

	"github.com/zephyrtronium/pclrt"
)

// Registry errors.
var (
	// ErrDuplicate means a primitive name or implementation is already
	// registered.
	ErrDuplicate = errors.New("abi: duplicate primitive")
	// ErrUnknown means no primitive has the requested name.
	ErrUnknown = errors.New("abi: unknown primitive")
	// ErrArgs means a call's arguments do not match the primitive's
	// parameters.
	ErrArgs = errors.New("abi: wrong arguments")
)

// Provider names the library that supplies a primitive's C symbol.
const (
	// ProviderRuntime is the default: the symbol comes from libpclrt.
	ProviderRuntime = "pclrt"
	// ProviderLibc means the C library already defines a compatible
	// function under the same name, so libpclrt must not export it.
	ProviderLibc = "libc"
)

// Signature describes one primitive at the ABI boundary.
type Signature struct {
	Name   string `yaml:"name"`
	Params []Kind `yaml:"params,flow"`
	Result Kind   `yaml:"result"`
	// Provider is ProviderRuntime or ProviderLibc. Empty means
	// ProviderRuntime.
	Provider string `yaml:"provider,omitempty"`
	Doc      string `yaml:"doc,omitempty"`
}

// Exported reports whether libpclrt defines the primitive's symbol.
func (s Signature) Exported() bool {
	return s.Provider == "" || s.Provider == ProviderRuntime
}

// A Func implements a primitive. The registry checks argument kinds before
// calling it, so it may index args without checking.
type Func func(rt *pclrt.Runtime, args []Value) Value

// A Primitive is a signature bound to its implementation.
type Primitive struct {
	Signature
	Fn Func
	// impl is the name of Fn's Go function, for diagnostics.
	impl string
}

// Impl returns the name of the Go function implementing the primitive.
func (p *Primitive) Impl() string {
	return p.impl
}

// Registry maps primitive names to implementations. Each name and each
// implementation may be registered only once, so an alias of one primitive
// under two names is rejected.
type Registry struct {
	prims map[string]*Primitive
	order []string
	impls contains.Set
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{prims: make(map[string]*Primitive)}
}

// Register adds a primitive.
func (r *Registry) Register(p Primitive) error {
	if p.Fn == nil {
		return fmt.Errorf("abi: %s has no implementation", p.Name)
	}
	if _, ok := r.prims[p.Name]; ok {
		return fmt.Errorf("%w: name %s", ErrDuplicate, p.Name)
	}
	u := reflect.ValueOf(p.Fn).Pointer()
	p.impl = runtime.FuncForPC(u).Name()
	if !r.impls.Add(u) {
		return fmt.Errorf("%w: %s reuses %s", ErrDuplicate, p.Name, p.impl)
	}
	r.prims[p.Name] = &p
	r.order = append(r.order, p.Name)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Primitive) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the primitive with the given name.
func (r *Registry) Lookup(name string) (*Primitive, bool) {
	p, ok := r.prims[name]
	return p, ok
}

// Names returns the names of all registered primitives in registration
// order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Call invokes the named primitive on rt after checking the arguments
// against its signature.
func (r *Registry) Call(rt *pclrt.Runtime, name string, args ...Value) (Value, error) {
	p, ok := r.prims[name]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	if len(args) != len(p.Params) {
		return Value{}, fmt.Errorf("%w: %s takes %d arguments, got %d", ErrArgs, name, len(p.Params), len(args))
	}
	for i, k := range p.Params {
		if args[i].Kind != k {
			return Value{}, fmt.Errorf("%w: argument %d of %s must be %v, not %v", ErrArgs, i, name, k, args[i].Kind)
		}
	}
	return p.Fn(rt, args), nil
}

// Signatures returns the signatures of all registered primitives in
// registration order.
func (r *Registry) Signatures() []Signature {
	s := make([]Signature, 0, len(r.order))
	for _, name := range r.order {
		s = append(s, r.prims[name].Signature)
	}
	return s
}
