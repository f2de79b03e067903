package bmp

import (
	"encoding/binary"
	"errors"
)

const pixelsPerMeter = 2835 // 72 DPI

var errBadSize = errors.New("bmp: width and height must be positive")

// New returns a complete 24-bit uncompressed BMP of the given size with
// every pixel set to black. Rows are stored bottom-up as is conventional.
func New(width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, errBadSize
	}

	g := Geometry{
		Offset:     HeaderSize,
		Width:      width,
		Height:     height,
		RowStride:  width * BytesPerPixel,
		RowPadding: (4 - width*BytesPerPixel%4) % 4,
	}

	b := make([]byte, HeaderSize+g.Size())

	// File header
	binary.LittleEndian.PutUint16(b[offsetSignature:], signature)
	binary.LittleEndian.PutUint32(b[2:], uint32(len(b)))
	binary.LittleEndian.PutUint32(b[offsetDataOffset:], HeaderSize)

	// BITMAPINFOHEADER
	binary.LittleEndian.PutUint32(b[fileHeaderLen:], infoHeaderLen)
	binary.LittleEndian.PutUint32(b[offsetWidth:], uint32(width))
	binary.LittleEndian.PutUint32(b[offsetHeight:], uint32(height))
	binary.LittleEndian.PutUint16(b[26:], 1) // Planes
	binary.LittleEndian.PutUint16(b[offsetBitCount:], bitDepth)
	binary.LittleEndian.PutUint32(b[offsetCompression:], biRGB)
	binary.LittleEndian.PutUint32(b[34:], uint32(g.Size()))
	binary.LittleEndian.PutUint32(b[38:], pixelsPerMeter)
	binary.LittleEndian.PutUint32(b[42:], pixelsPerMeter)

	return b, nil
}
