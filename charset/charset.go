// Package charset translates between the single-byte character sets PCL
// programs work in and the UTF-8 text of the host terminal.
package charset

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrUnknown is returned by Lookup for names it does not recognize.
var ErrUnknown = errors.New("charset: unknown character set")

// Names lists the canonical names Lookup accepts, in a stable order.
var Names = []string{"raw", "latin1", "latin9", "cp1252", "cp437", "koi8r"}

// Lookup returns the encoding for a character set name. Names are case
// insensitive, and common aliases are accepted. The names "", "raw", and
// "binary" select no translation, for which Lookup returns a nil encoding.
func Lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "raw", "binary":
		return nil, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15", "iso8859-15":
		return charmap.ISO8859_15, nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252, nil
	case "cp437", "ibm437":
		return charmap.CodePage437, nil
	case "koi8r", "koi8-r":
		return charmap.KOI8R, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Reader returns a reader producing the bytes of r, which is UTF-8, in enc.
// Characters enc cannot represent become its replacement byte. A nil enc
// returns r itself.
func Reader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return transform.NewReader(r, encoding.ReplaceUnsupported(enc.NewEncoder()))
}

// Writer returns a writer that decodes bytes in enc and writes them to w as
// UTF-8. Closing it finishes the translation but does not close w. A nil enc
// writes bytes through unchanged.
func Writer(w io.Writer, enc encoding.Encoding) io.WriteCloser {
	if enc == nil {
		return nopCloser{w}
	}
	return transform.NewWriter(w, enc.NewDecoder())
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
