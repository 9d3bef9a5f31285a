// Package scan reads numeric tokens from a buffered byte stream with the
// lexical rules of C's scanf conversions.
package scan

import (
	"bufio"
	"errors"
	"io"
)

// ErrSyntax means the bytes at the cursor do not begin a token of the
// requested kind. Bytes consumed before the mismatch stay consumed, as they
// do with scanf; the mismatching byte itself is left unread.
var ErrSyntax = errors.New("scan: no digits")

// Scanner reads tokens from R. The zero value is not usable; R must be set.
type Scanner struct {
	R *bufio.Reader
	// tok is reused between tokens.
	tok []byte
}

// IsSpace reports whether c is whitespace in the C locale.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// SkipSpace consumes whitespace up to the next other byte. It returns io.EOF
// if the stream ends first.
func (s *Scanner) SkipSpace() error {
	for {
		c, err := s.R.ReadByte()
		if err != nil {
			return err
		}
		if !IsSpace(c) {
			return s.R.UnreadByte()
		}
	}
}

// Delimiter consumes the next byte if it is whitespace. End of stream is not
// an error here; the token before it is already complete.
func (s *Scanner) Delimiter() error {
	c, err := s.R.ReadByte()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if IsSpace(c) {
		return nil
	}
	return s.R.UnreadByte()
}

// Integer skips whitespace and reads an optional sign followed by decimal
// digits. The returned token is valid until the next call.
func (s *Scanner) Integer() ([]byte, error) {
	if err := s.SkipSpace(); err != nil {
		return nil, err
	}
	s.tok = s.tok[:0]
	if err := s.sign(); err != nil {
		return nil, err
	}
	n, err := s.digits()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrSyntax
	}
	return s.tok, nil
}

// Real skips whitespace and reads an optional sign, a mantissa of digits
// with an optional decimal point, and an optional exponent. The mantissa
// needs at least one digit, before or after the point. An exponent marker is
// only consumed when digits follow it. The returned token is valid until
// the next call.
func (s *Scanner) Real() ([]byte, error) {
	if err := s.SkipSpace(); err != nil {
		return nil, err
	}
	s.tok = s.tok[:0]
	if err := s.sign(); err != nil {
		return nil, err
	}
	n, err := s.digits()
	if err != nil {
		return nil, err
	}
	if ok, err := s.accept('.'); err != nil {
		return nil, err
	} else if ok {
		m, err := s.digits()
		if err != nil {
			return nil, err
		}
		n += m
	}
	if n == 0 {
		return nil, ErrSyntax
	}
	if err := s.exponent(); err != nil {
		return nil, err
	}
	return s.tok, nil
}

// sign consumes a leading + or -.
func (s *Scanner) sign() error {
	if ok, err := s.accept('-'); ok || err != nil {
		return err
	}
	_, err := s.accept('+')
	return err
}

// accept consumes the next byte if it is c.
func (s *Scanner) accept(c byte) (bool, error) {
	b, err := s.R.ReadByte()
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	if b != c {
		return false, s.R.UnreadByte()
	}
	s.tok = append(s.tok, b)
	return true, nil
}

// digits consumes a run of decimal digits and returns how many it read.
func (s *Scanner) digits() (int, error) {
	n := 0
	for {
		c, err := s.R.ReadByte()
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if !isDigit(c) {
			return n, s.R.UnreadByte()
		}
		s.tok = append(s.tok, c)
		n++
	}
}

// exponent consumes e or E, an optional sign, and digits, but only if the
// whole sequence is present. It looks ahead rather than consuming so that a
// trailing "e" stays in the stream, and it never peeks further than it must,
// so it cannot block on a line that has already ended.
func (s *Scanner) exponent() error {
	k := 0
	for {
		p, err := s.R.Peek(k + 1)
		if len(p) <= k {
			if err == io.EOF {
				return nil
			}
			return err
		}
		c := p[k]
		switch {
		case k == 0 && (c == 'e' || c == 'E'):
		case k == 1 && (c == '+' || c == '-'):
		case k > 0 && isDigit(c):
			s.tok = append(s.tok, p[:k]...)
			if _, err := s.R.Discard(k); err != nil {
				return err
			}
			_, err = s.digits()
			return err
		default:
			return nil
		}
		k++
	}
}
