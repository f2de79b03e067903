/*
Package steg hides text inside the pixel data of an uncompressed 24-bit BMP
using least significant bit steganography.

The message is encoded as UTF-8 and terminated by a single zero byte. Each
bit of the result, most significant bit first, replaces the least significant
bit of one pixel byte. Pixel bytes are visited in storage order, row by row,
skipping the padding at the end of each row, so a BMP can hold one message
byte for every eight pixel bytes. Padding, the header and every pixel byte
after the message are left untouched.
*/
package steg

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bodgit/bmpsteg/bmp"
)

const terminator = 0x00

// Capacity returns the maximum number of bytes that can be embedded in the
// BMP in b, including the terminating zero byte.
func Capacity(b []byte) (int, error) {
	g, err := bmp.Parse(b)
	if err != nil {
		return 0, err
	}
	return capacity(g), nil
}

// isBlank also treats a byte order mark as whitespace
func isBlank(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func capacity(g bmp.Geometry) int {
	return g.PixelBytes() / 8
}

// Embed returns a copy of the BMP in b with message hidden in the pixel data.
// The input is not modified.
func Embed(b []byte, message string) ([]byte, error) {
	if strings.TrimFunc(message, isBlank) == "" {
		return nil, ValidationError("message is empty")
	}
	if strings.IndexByte(message, terminator) >= 0 {
		return nil, ValidationError("message contains a zero byte")
	}

	g, err := bmp.Parse(b)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 0, len(message)+1)
	payload = append(payload, message...)
	payload = append(payload, terminator)

	if max := capacity(g); len(payload) > max {
		return nil, &CapacityError{Max: max, Needed: len(payload)}
	}

	dst := make([]byte, len(b))
	copy(dst, b)

	c := newCursor(g, len(dst))
	for _, p := range payload {
		for bit := 7; bit >= 0; bit-- {
			i, _ := c.next()
			dst[i] = dst[i]&^1 | p>>uint(bit)&1
		}
	}

	return dst, nil
}

// Extract recovers a message previously hidden with Embed. Bits are read
// until a zero byte is assembled or the pixel data runs out; in the latter
// case whatever was assembled is returned. The BMP may be truncated.
func Extract(b []byte) (string, error) {
	h, err := bmp.ParseHeader(b)
	if err != nil {
		return "", err
	}

	var (
		msg []byte
		cur byte
		n   int
	)

	c := newCursor(h.Geometry(), len(b))
	for i, ok := c.next(); ok; i, ok = c.next() {
		cur = cur<<1 | b[i]&1
		if n++; n < 8 {
			continue
		}
		if cur == terminator {
			break
		}
		msg = append(msg, cur)
		cur, n = 0, 0
	}

	if !utf8.Valid(msg) {
		return "", DecodeError("message is not valid UTF-8")
	}

	return string(msg), nil
}
