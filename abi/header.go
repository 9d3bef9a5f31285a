package abi

import (
	"fmt"
	"strings"
)

// CHeader renders m as a C header declaring every primitive libpclrt
// exports. Primitives the C library provides are listed in a comment, since
// their declarations come from the system headers included at the top.
func CHeader(m Manifest) string {
	var b strings.Builder
	b.WriteString("/* Code generated by pclrt header. DO NOT EDIT. */\n\n")
	b.WriteString("#ifndef PCLRT_H\n#define PCLRT_H\n\n")
	b.WriteString("#include <stdint.h>\n#include <stdlib.h>\n#include <math.h>\n\n")
	fmt.Fprintf(&b, "#define PCLRT_ABI_VERSION %q\n\n", m.Version)
	var extern []Signature
	for _, s := range m.Primitives {
		if !s.Exported() {
			extern = append(extern, s)
			continue
		}
		if s.Doc != "" {
			fmt.Fprintf(&b, "/* %s */\n", s.Doc)
		}
		b.WriteString(Declaration(s))
		b.WriteString(";\n")
	}
	if len(extern) > 0 {
		b.WriteString("\n/* Provided by the C library:\n")
		for _, s := range extern {
			fmt.Fprintf(&b, " *   %s\n", Declaration(s))
		}
		b.WriteString(" */\n")
	}
	b.WriteString("\n#endif /* PCLRT_H */\n")
	return b.String()
}

// Declaration renders the C prototype of s without a trailing semicolon.
func Declaration(s Signature) string {
	params := "void"
	if len(s.Params) > 0 {
		p := make([]string, len(s.Params))
		for i, k := range s.Params {
			p[i] = k.CType()
		}
		params = strings.Join(p, ", ")
	}
	ret := s.Result.CType()
	if !strings.HasSuffix(ret, "*") {
		ret += " "
	}
	return ret + s.Name + "(" + params + ")"
}
