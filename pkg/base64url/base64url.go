// Package base64url encodes bytes with the URL-safe base64 alphabet
// (RFC 4648 §5) and no padding.
//
// It is the text form of serialized param graphs: blobs are embedded as
// string literals in generated code, so the alphabet must survive any
// quoting context and the length must be as small as possible.
//
// Encoding emits 4 symbols per 3-byte group and 3 or 2 symbols for a
// trailing group of 2 or 1 bytes. Decoding accepts any length that Encode
// can produce and drops the zero bits synthesized by the final symbol.
package base64url

import (
	"github.com/matzehuels/paramgraph/pkg/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// invalid marks table entries outside the alphabet.
const invalid = 0xFF

// lookup maps ASCII code points to 6-bit values.
var lookup = func() [128]byte {
	var t [128]byte
	for i := range t {
		t[i] = invalid
	}
	for i := 0; i < len(alphabet); i++ {
		t[alphabet[i]] = byte(i)
	}
	return t
}()

// EncodedLen returns the length of the encoding of n bytes.
func EncodedLen(n int) int {
	return n/3*4 + (n%3*8+5)/6
}

// DecodedLen returns the number of bytes encoded by n symbols.
func DecodedLen(n int) int {
	return n * 3 / 4
}

// Encode returns the unpadded base64url encoding of b.
func Encode(b []byte) string {
	out := make([]byte, EncodedLen(len(b)))
	o := 0
	i := 0
	for ; i+3 <= len(b); i += 3 {
		v := uint(b[i])<<16 | uint(b[i+1])<<8 | uint(b[i+2])
		out[o] = alphabet[v>>18&0x3F]
		out[o+1] = alphabet[v>>12&0x3F]
		out[o+2] = alphabet[v>>6&0x3F]
		out[o+3] = alphabet[v&0x3F]
		o += 4
	}

	switch len(b) - i {
	case 2:
		v := uint(b[i])<<16 | uint(b[i+1])<<8
		out[o] = alphabet[v>>18&0x3F]
		out[o+1] = alphabet[v>>12&0x3F]
		out[o+2] = alphabet[v>>6&0x3F]
	case 1:
		v := uint(b[i]) << 16
		out[o] = alphabet[v>>18&0x3F]
		out[o+1] = alphabet[v>>12&0x3F]
	}
	return string(out)
}

// Decode returns the bytes encoded by s.
//
// Symbols outside the alphabet and a lone trailing symbol (which cannot carry
// a whole byte) are rejected with an INVALID_ENCODING error.
func Decode(s string) ([]byte, error) {
	if len(s)%4 == 1 {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "invalid length %d", len(s))
	}

	out := make([]byte, DecodedLen(len(s)))
	var acc uint
	bits := 0
	o := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 128 || lookup[c] == invalid {
			return nil, errors.New(errors.ErrCodeInvalidEncoding, "invalid symbol %q at %d", c, i)
		}
		acc = acc<<6 | uint(lookup[c])
		bits += 6
		if bits >= 8 {
			bits -= 8
			out[o] = byte(acc >> bits)
			o++
			acc &= 1<<bits - 1
		}
	}
	return out, nil
}
