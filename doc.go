/*
Package pclrt implements the runtime support library for programs compiled
from PCL, a small Pascal-like procedural language.

Compiled PCL programs have no I/O or conversion facilities of their own.
Instead, the code generator emits calls to a fixed set of builtin primitives,
and the behavior of those primitives is the observable semantics of the
language for console input, console output, and numeric conversion. This
package provides those primitives as Go methods and functions; the cgo layer
in cmd/libpclrt exports them under the exact C symbol names that generated
code links against, and package abi describes them in machine-readable form.

Primitives fall into three groups.

Output primitives convert a scalar or character sequence to text and append it
to the output channel:

	rt.WriteInteger(42)     // 42
	rt.WriteBoolean(1)      // true
	rt.WriteChar('x')       // x
	rt.WriteReal(0.5)       // 0.500000
	rt.WriteString(s)       // bytes of s up to the first NUL
	rt.WritePacked(2, 'h', 'i')

None of them append a newline. Newline policy belongs to the program, which
can call WriteLine or write a '\n' character itself.

Input primitives read a token from the input channel and convert it:

	n := rt.ReadInteger()
	b := rt.ReadBoolean()
	c := rt.ReadChar()
	x := rt.ReadReal()
	s := rt.ReadString(size, buf)

Malformed numeric input yields zero rather than an error, since compiled
programs have no way to handle one. The condition is still recorded and is
available from Runtime.Err for hosts and tests. ReadString never stores more
than size bytes into buf, terminator included, regardless of what the input
stream contains.

Conversion and math primitives are pure package-level functions: Ln, Arctan,
Pi, Trunc2, Round2, Chr, Ord, and the supplementary Abs, Fabs, Sqrt, Sin,
Cos, Tan, and Exp.

The standard input and output streams are never used implicitly. A Runtime
is created around whatever reader and writer the host supplies, so tests can
drive primitives with in-memory streams:

	var out bytes.Buffer
	rt := pclrt.New(strings.NewReader("42\n"), &out)
	rt.WriteInteger(rt.ReadInteger())
	rt.Flush()

Std creates a Runtime on the process streams.

A Runtime is not safe for concurrent use. Compiled PCL programs are
single-threaded, and interleaved reads or writes from multiple goroutines have
no defined order.
*/
package pclrt
