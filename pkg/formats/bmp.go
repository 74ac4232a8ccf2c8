// Package formats provides parsers and writers for terrain file formats.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// BMP format errors.
var (
	ErrTruncatedBMPData     = errors.New("truncated BMP data")
	ErrInvalidBMPDimensions = errors.New("invalid BMP dimensions")
)

// bmpHeaderSize is the number of header bytes consumed before seeking to the
// pixel data: 10 skipped, 4-byte pixel offset, 4 skipped, 4-byte width,
// 4-byte height.
const bmpHeaderSize = 26

// BMP represents a parsed uncompressed 24-bit bitmap used as a heightmap.
//
// Pixels holds the raw BGR triples exactly as stored in the file: bottom-up
// row order, 3 bytes per pixel. Heightmap files carry no row padding, so
// rows are read as contiguous width*3 byte runs.
type BMP struct {
	Width       int32
	Height      int32
	PixelOffset uint32
	Pixels      []byte // BGR triples, bottom-up row order as stored
}

// ParseBMP parses an uncompressed bottom-up bitmap from raw bytes.
//
// Only the fields a heightmap needs are read: the pixel-data offset at byte
// 10 and the width/height at bytes 18 and 22, all little-endian. Returns
// ErrTruncatedBMPData if the stream ends before the header or the declared
// pixel data, and ErrInvalidBMPDimensions for non-positive width or height.
func ParseBMP(data []byte) (*BMP, error) {
	if len(data) < bmpHeaderSize {
		return nil, fmt.Errorf("%w: header", ErrTruncatedBMPData)
	}

	offset := binary.LittleEndian.Uint32(data[10:14])
	width := int32(binary.LittleEndian.Uint32(data[18:22]))
	height := int32(binary.LittleEndian.Uint32(data[22:26]))

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBMPDimensions, width, height)
	}

	if uint64(offset) < bmpHeaderSize || uint64(offset) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: pixel offset %d", ErrTruncatedBMPData, offset)
	}

	pixelLen := uint64(width) * uint64(height) * 3
	if uint64(len(data))-uint64(offset) < pixelLen {
		return nil, fmt.Errorf("%w: pixel data", ErrTruncatedBMPData)
	}

	return &BMP{
		Width:       width,
		Height:      height,
		PixelOffset: offset,
		Pixels:      data[offset : uint64(offset)+pixelLen],
	}, nil
}

// ParseBMPFile parses a BMP file from disk.
func ParseBMPFile(path string) (*BMP, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading BMP file: %w", err)
	}
	return ParseBMP(data)
}

// PixelBGR returns the blue, green and red bytes of the pixel at the given
// file coordinates. Row 0 is the first stored row, which in a bottom-up
// bitmap is the bottom of the image.
func (b *BMP) PixelBGR(col, row int) (blue, green, red uint8) {
	i := (row*int(b.Width) + col) * 3
	return b.Pixels[i], b.Pixels[i+1], b.Pixels[i+2]
}
