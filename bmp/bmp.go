/*
Package bmp implements the minimal BMP header handling needed to work on the
pixel data of uncompressed 24-bit bitmaps in place.

The file is expected to start with the 14 byte file header followed by the 40
byte BITMAPINFOHEADER. Only the signature, pixel data offset, width, height,
bit depth and compression fields are interpreted; everything else is treated
as an opaque prefix and left untouched. Pixels are stored as B, G, R byte
triplets and each row is padded with zero bytes to a multiple of 4 bytes.
Row order is never changed.
*/
package bmp

import (
	"encoding/binary"
)

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	// HeaderSize is the combined length of the file and info headers
	HeaderSize = fileHeaderLen + infoHeaderLen

	// BytesPerPixel is the number of bytes used by each 24-bit pixel
	BytesPerPixel = 3

	signature = 0x4d42 // "BM" read little-endian
	bitDepth  = 24
	biRGB     = 0
)

// Offsets of the interpreted header fields
const (
	offsetSignature   = 0
	offsetDataOffset  = 10
	offsetWidth       = 18
	offsetHeight      = 22
	offsetBitCount    = 28
	offsetCompression = 30
)

// FormatError reports that the input is not a BMP at all.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

// UnsupportedFormatError reports that the input is a BMP but uses a bit depth
// or compression other than uncompressed 24-bit.
type UnsupportedFormatError string

func (e UnsupportedFormatError) Error() string {
	return "bmp: unsupported format: " + string(e)
}

// Header holds the fields of a BMP header that are needed to address the
// pixel data.
type Header struct {
	Offset       uint32 // Offset of the pixel data from the start of the file
	Width        uint32
	Height       uint32 // Number of rows, regardless of storage direction
	BitsPerPixel uint16
	Compression  uint32
}

// ParseHeader validates the first HeaderSize bytes of b and returns the
// decoded header. Only uncompressed 24-bit images are accepted.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, FormatError("not a BMP")
	}
	if binary.LittleEndian.Uint16(b[offsetSignature:]) != signature {
		return Header{}, FormatError("not a BMP")
	}

	h := Header{
		Offset:       binary.LittleEndian.Uint32(b[offsetDataOffset:]),
		Width:        binary.LittleEndian.Uint32(b[offsetWidth:]),
		BitsPerPixel: binary.LittleEndian.Uint16(b[offsetBitCount:]),
		Compression:  binary.LittleEndian.Uint32(b[offsetCompression:]),
	}

	// A negative height marks a top-down bitmap
	height := int32(binary.LittleEndian.Uint32(b[offsetHeight:]))
	if height < 0 {
		height = -height
	}
	h.Height = uint32(height)

	if h.BitsPerPixel != bitDepth || h.Compression != biRGB {
		return Header{}, UnsupportedFormatError("only 24-bit uncompressed BMP files are supported")
	}

	// Pixel data never overlaps the headers
	if h.Offset < HeaderSize {
		return Header{}, FormatError("bad pixel data offset")
	}

	return h, nil
}

// Geometry returns the raster layout described by the header.
func (h Header) Geometry() Geometry {
	stride := int(h.Width) * BytesPerPixel
	return Geometry{
		Offset:     int(h.Offset),
		Width:      int(h.Width),
		Height:     int(h.Height),
		RowStride:  stride,
		RowPadding: (4 - stride%4) % 4,
	}
}

// Geometry describes where the pixel bytes live within a BMP buffer.
type Geometry struct {
	Offset     int
	Width      int
	Height     int
	RowStride  int // Pixel bytes per row, excluding padding
	RowPadding int // Zero bytes appended to each row
}

// RowSize returns the length of a row including padding.
func (g Geometry) RowSize() int {
	return g.RowStride + g.RowPadding
}

// Size returns the length of the whole pixel region.
func (g Geometry) Size() int {
	return g.RowSize() * g.Height
}

// PixelBytes returns the number of pixel bytes, excluding any padding.
func (g Geometry) PixelBytes() int {
	return g.RowStride * g.Height
}

// Fits reports whether a buffer of length n holds the entire pixel region.
func (g Geometry) Fits(n int) bool {
	if g.Offset > n {
		return false
	}
	if g.RowSize() == 0 || g.Height == 0 {
		return true
	}
	return g.Height <= (n-g.Offset)/g.RowSize()
}

// PixelOffset returns the position in the buffer of the first byte (blue) of
// the pixel at column x of stored row y.
func (g Geometry) PixelOffset(x, y int) int {
	return g.Offset + y*g.RowSize() + x*BytesPerPixel
}

// Parse is a convenience that parses the header of b and checks the pixel
// region is fully present.
func Parse(b []byte) (Geometry, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return Geometry{}, err
	}
	g := h.Geometry()
	if !g.Fits(len(b)) {
		return Geometry{}, FormatError("truncated pixel data")
	}
	return g, nil
}
