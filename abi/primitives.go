package abi

import (
	"github.com/zephyrtronium/pclrt"
)

var void = Value{}

// Default returns a registry holding every PCL primitive, in the order of
// the embedded manifest.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range builtins {
		r.MustRegister(p)
	}
	return r
}

func prim(name string, fn Func, result Kind, params ...Kind) Primitive {
	return Primitive{Signature: Signature{Name: name, Params: params, Result: result}, Fn: fn}
}

func libc(p Primitive) Primitive {
	p.Provider = ProviderLibc
	return p
}

var builtins = []Primitive{
	prim("writeInteger", writeInteger, Void, Integer),
	prim("writeBoolean", writeBoolean, Void, Boolean),
	prim("writeChar", writeChar, Void, Char),
	prim("writeReal", writeReal, Void, Real),
	prim("writeString", writeString, Void, String),
	prim("writePacked", writePacked, Void, Integer, Packed),
	prim("writeLine", writeLine, Void),

	prim("readInteger", readInteger, Integer),
	prim("readBoolean", readBoolean, Boolean),
	prim("readChar", readChar, Char),
	prim("readReal", readReal, Real),
	prim("readString", readString, String, Integer, Buffer),

	prim("ln", ln, Real, Real),
	prim("arctan", arctan, Real, Real),
	prim("pi", pi, Real),
	prim("trunc2", trunc2, Integer, Real),
	prim("round2", round2, Integer, Real),
	prim("chr", chr, Char, Integer),
	prim("ord", ord, Integer, Char),

	libc(prim("abs", abs, Integer, Integer)),
	libc(prim("fabs", fabs, Real, Real)),
	libc(prim("sqrt", sqrt, Real, Real)),
	libc(prim("sin", sin, Real, Real)),
	libc(prim("cos", cos, Real, Real)),
	libc(prim("tan", tan, Real, Real)),
	libc(prim("exp", exp, Real, Real)),
}

func writeInteger(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteInteger(args[0].Int)
	return void
}

func writeBoolean(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteBoolean(pclrt.Boolean(args[0].Byte))
	return void
}

func writeChar(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteChar(args[0].Byte)
	return void
}

func writeReal(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteReal(args[0].Real)
	return void
}

func writeString(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteString(args[0].Bytes)
	return void
}

func writePacked(rt *pclrt.Runtime, args []Value) Value {
	rt.WritePacked(args[0].Int, args[1].Bytes...)
	return void
}

func writeLine(rt *pclrt.Runtime, args []Value) Value {
	rt.WriteLine()
	return void
}

func readInteger(rt *pclrt.Runtime, args []Value) Value {
	return IntegerValue(rt.ReadInteger())
}

func readBoolean(rt *pclrt.Runtime, args []Value) Value {
	return BooleanValue(rt.ReadBoolean())
}

func readChar(rt *pclrt.Runtime, args []Value) Value {
	return CharValue(rt.ReadChar())
}

func readReal(rt *pclrt.Runtime, args []Value) Value {
	return RealValue(rt.ReadReal())
}

func readString(rt *pclrt.Runtime, args []Value) Value {
	return BytesValue(String, rt.ReadString(args[0].Int, args[1].Bytes))
}

func ln(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Ln(args[0].Real)
	rt.Trace("ln", r, args[0].Real)
	return RealValue(r)
}

func arctan(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Arctan(args[0].Real)
	rt.Trace("arctan", r, args[0].Real)
	return RealValue(r)
}

func pi(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Pi()
	rt.Trace("pi", r)
	return RealValue(r)
}

func trunc2(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Trunc2(args[0].Real)
	rt.Trace("trunc2", r, args[0].Real)
	return IntegerValue(r)
}

func round2(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Round2(args[0].Real)
	rt.Trace("round2", r, args[0].Real)
	return IntegerValue(r)
}

func chr(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Chr(args[0].Int)
	rt.Trace("chr", r, args[0].Int)
	return CharValue(r)
}

func ord(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Ord(args[0].Byte)
	rt.Trace("ord", r, args[0].Byte)
	return IntegerValue(r)
}

func abs(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Abs(args[0].Int)
	rt.Trace("abs", r, args[0].Int)
	return IntegerValue(r)
}

func fabs(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Fabs(args[0].Real)
	rt.Trace("fabs", r, args[0].Real)
	return RealValue(r)
}

func sqrt(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Sqrt(args[0].Real)
	rt.Trace("sqrt", r, args[0].Real)
	return RealValue(r)
}

func sin(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Sin(args[0].Real)
	rt.Trace("sin", r, args[0].Real)
	return RealValue(r)
}

func cos(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Cos(args[0].Real)
	rt.Trace("cos", r, args[0].Real)
	return RealValue(r)
}

func tan(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Tan(args[0].Real)
	rt.Trace("tan", r, args[0].Real)
	return RealValue(r)
}

func exp(rt *pclrt.Runtime, args []Value) Value {
	r := pclrt.Exp(args[0].Real)
	rt.Trace("exp", r, args[0].Real)
	return RealValue(r)
}
