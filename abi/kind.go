package abi

import "fmt"

// Kind is the type of a primitive parameter or result at the ABI boundary.
type Kind uint8

// Kinds. The zero Kind is Void, which only appears as a result.
const (
	Void Kind = iota
	Integer
	Real
	Boolean
	Char
	// String is a pointer to NUL-terminated characters the primitive only
	// reads, or, as a result, characters the primitive produced.
	String
	// Buffer is a pointer to caller storage the primitive writes into. Its
	// capacity is passed separately.
	Buffer
	// Packed is a sequence of characters whose count is passed separately.
	// In C the characters are the variadic arguments after the count.
	Packed
)

var kindNames = [...]string{
	Void:    "void",
	Integer: "integer",
	Real:    "real",
	Boolean: "boolean",
	Char:    "char",
	String:  "string",
	Buffer:  "buffer",
	Packed:  "packed",
}

// String returns the name of the kind as it appears in manifests.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind with the given manifest name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return Void, fmt.Errorf("abi: unknown kind %q", s)
}

// CType returns the C type generated code uses for the kind. Void results are
// a char pointer that is always NULL, which is what the PCL code generator
// expects of procedures.
func (k Kind) CType() string {
	switch k {
	case Void, String, Buffer:
		return "char *"
	case Integer:
		return "int32_t"
	case Real:
		return "double"
	case Boolean:
		return "int8_t"
	case Char:
		return "char"
	case Packed:
		return "..."
	}
	panic("abi: invalid kind " + k.String())
}

// MarshalYAML encodes the kind by name.
func (k Kind) MarshalYAML() (interface{}, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("abi: invalid kind %d", k)
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a kind name.
func (k *Kind) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	v, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = v
	return nil
}
