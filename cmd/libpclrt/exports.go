// exports.go provides the C symbols that PCL generated code links against.
// Build with: go build -buildmode=c-archive -o libpclrt.a .
// and link the program with libpclrt.a -lm -lpthread.
//
// Only primitives the manifest marks as provided by pclrt are exported here,
// with writePacked defined in packed.c since cgo cannot export a variadic
// function. abs, fabs, sqrt, sin, cos, tan, and exp resolve to the C library.
package main

/*
#include <stdint.h>
#include <string.h>
*/
import "C"

import (
	"log"
	"sync"
	"unsafe"

	"github.com/zephyrtronium/pclrt"
	"github.com/zephyrtronium/pclrt/config"
)

func main() {}

var (
	// mu serializes primitives. Generated programs are single-threaded, but
	// a C host embedding them may not be.
	mu     sync.Mutex
	rt     *pclrt.Runtime
	rtOnce sync.Once
)

// host returns the process-wide Runtime, creating it on first use. There is
// no hook that runs when a C program exits, so output is flushed after every
// primitive unless the configuration explicitly turns that off.
func host() *pclrt.Runtime {
	rtOnce.Do(func() {
		c, err := config.Load()
		if err != nil {
			log.Printf("pclrt: ignoring configuration: %v", err)
			c = config.Config{}
		}
		if c.AutoFlush == nil {
			on := true
			c.AutoFlush = &on
		}
		// The trace file, if any, stays open for the life of the process.
		opts, _, err := c.Options()
		if err != nil {
			log.Printf("pclrt: ignoring configuration: %v", err)
			opts = []pclrt.Option{pclrt.WithAutoFlush(true)}
		}
		rt = pclrt.Std(opts...)
	})
	return rt
}

//export writeInteger
func writeInteger(n C.int32_t) *C.char {
	mu.Lock()
	defer mu.Unlock()
	host().WriteInteger(pclrt.Integer(n))
	return nil
}

//export writeBoolean
func writeBoolean(b C.int8_t) *C.char {
	mu.Lock()
	defer mu.Unlock()
	host().WriteBoolean(pclrt.Boolean(b))
	return nil
}

//export writeChar
func writeChar(c C.char) *C.char {
	mu.Lock()
	defer mu.Unlock()
	host().WriteChar(pclrt.Char(c))
	return nil
}

//export writeReal
func writeReal(x C.double) *C.char {
	mu.Lock()
	defer mu.Unlock()
	host().WriteReal(pclrt.Real(x))
	return nil
}

//export writeString
func writeString(s *C.char) *C.char {
	mu.Lock()
	defer mu.Unlock()
	if s != nil {
		host().WriteString(C.GoBytes(unsafe.Pointer(s), C.int(C.strlen(s))))
	}
	return nil
}

// pclrtWritePacked receives the characters that the variadic writePacked in
// packed.c collected.
//
//export pclrtWritePacked
func pclrtWritePacked(n C.int32_t, codes *C.char) {
	mu.Lock()
	defer mu.Unlock()
	if n > 0 && codes != nil {
		host().WritePacked(pclrt.Integer(n), C.GoBytes(unsafe.Pointer(codes), C.int(n))...)
	}
}

//export writeLine
func writeLine() *C.char {
	mu.Lock()
	defer mu.Unlock()
	host().WriteLine()
	return nil
}

//export readInteger
func readInteger() C.int32_t {
	mu.Lock()
	defer mu.Unlock()
	return C.int32_t(host().ReadInteger())
}

//export readBoolean
func readBoolean() C.int8_t {
	mu.Lock()
	defer mu.Unlock()
	return C.int8_t(host().ReadBoolean())
}

//export readChar
func readChar() C.char {
	mu.Lock()
	defer mu.Unlock()
	c := host().ReadChar()
	return C.char(c)
}

//export readReal
func readReal() C.double {
	mu.Lock()
	defer mu.Unlock()
	return C.double(host().ReadReal())
}

// readString fills buf in place. The Go slice over buf has length size, so
// the runtime cannot store past the capacity the program declared.
//
//export readString
func readString(size C.int32_t, buf *C.char) *C.char {
	mu.Lock()
	defer mu.Unlock()
	if size <= 0 || buf == nil {
		host().ReadString(0, nil)
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(size))
	if host().ReadString(pclrt.Integer(size), b) == nil {
		return nil
	}
	return buf
}

//export ln
func ln(x C.double) C.double {
	r := pclrt.Ln(pclrt.Real(x))
	trace("ln", r, pclrt.Real(x))
	return C.double(r)
}

//export arctan
func arctan(x C.double) C.double {
	r := pclrt.Arctan(pclrt.Real(x))
	trace("arctan", r, pclrt.Real(x))
	return C.double(r)
}

//export pi
func pi() C.double {
	r := pclrt.Pi()
	trace("pi", r)
	return C.double(r)
}

//export trunc2
func trunc2(x C.double) C.int32_t {
	r := pclrt.Trunc2(pclrt.Real(x))
	trace("trunc2", r, pclrt.Real(x))
	return C.int32_t(r)
}

//export round2
func round2(x C.double) C.int32_t {
	r := pclrt.Round2(pclrt.Real(x))
	trace("round2", r, pclrt.Real(x))
	return C.int32_t(r)
}

//export chr
func chr(n C.int32_t) C.char {
	r := pclrt.Chr(pclrt.Integer(n))
	trace("chr", r, pclrt.Integer(n))
	return C.char(r)
}

//export ord
func ord(c C.char) C.int32_t {
	r := pclrt.Ord(pclrt.Char(c))
	trace("ord", r, pclrt.Char(c))
	return C.int32_t(r)
}

// trace reports a pure primitive to the host Runtime's tracer. Pure
// primitives never create the Runtime, so a program that only does math
// neither loads configuration nor touches the standard streams.
func trace(name string, result interface{}, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if rt != nil {
		rt.Trace(name, result, args...)
	}
}
