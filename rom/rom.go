// Package rom reads and writes Chip16 ROM images.
//
// A ROM is a 16-byte header followed by the program image:
//
//	0x00 magic "CH16"
//	0x04 reserved
//	0x05 format version (major << 4 | minor)
//	0x06 image size, little-endian 32-bit
//	0x0a start address, little-endian 16-bit
//	0x0c CRC32 (IEEE) of the image, little-endian 32-bit
//
// Files without the magic are raw images, loaded at 0 and started at 0.
package rom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	HEADER_SIZE = 16
	MAGIC       = "CH16"
	VERSION     = uint8(0x11) // Version 1.1
	IMAGE_LIMIT = 0x10000
)

// Header is the ROM header.
type Header struct {
	Magic    [4]uint8
	Reserved uint8
	Version  uint8
	Size     uint32
	Start    uint16
	Crc32    uint32
}

// Rom is a parsed ROM.
type Rom struct {
	Header
	Raw   bool    // Set if the file had no header.
	Image []uint8 // Program image, loaded at 0.
}

// New creates a ROM for an image, starting execution at start.
func New(image []uint8, start uint16) (rom *Rom, err error) {
	if len(image) > IMAGE_LIMIT {
		err = ErrImageTooLarge
		return
	}

	rom = &Rom{
		Header: Header{
			Version: VERSION,
			Size:    uint32(len(image)),
			Start:   start,
			Crc32:   crc32.ChecksumIEEE(image),
		},
		Image: image,
	}
	copy(rom.Magic[:], MAGIC)

	return
}

// Parse decodes a ROM file.
func Parse(data []uint8) (rom *Rom, err error) {
	if !bytes.HasPrefix(data, []uint8(MAGIC)) {
		if len(data) > IMAGE_LIMIT {
			err = ErrImageTooLarge
			return
		}
		rom = &Rom{Raw: true, Image: data}
		rom.Size = uint32(len(data))
		rom.Crc32 = crc32.ChecksumIEEE(data)
		return
	}

	if len(data) < HEADER_SIZE {
		err = ErrHeaderShort
		return
	}

	rom = &Rom{}
	err = binary.Read(bytes.NewReader(data[:HEADER_SIZE]), binary.LittleEndian, &rom.Header)
	if err != nil {
		return
	}

	rom.Image = data[HEADER_SIZE:]
	if uint32(len(rom.Image)) != rom.Size {
		err = ErrSizeMismatch{Header: rom.Size, Image: len(rom.Image)}
		return
	}
	if len(rom.Image) > IMAGE_LIMIT {
		err = ErrImageTooLarge
		return
	}

	crc := crc32.ChecksumIEEE(rom.Image)
	if crc != rom.Crc32 {
		err = ErrCrcMismatch{Header: rom.Crc32, Image: crc}
		return
	}

	return
}

// Read decodes a ROM from a reader.
func Read(in io.Reader) (rom *Rom, err error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return
	}

	return Parse(data)
}

// Bytes encodes the ROM with its header.
func (rom *Rom) Bytes() []uint8 {
	var buf bytes.Buffer
	buf.Grow(HEADER_SIZE + len(rom.Image))
	// Writes to a bytes.Buffer do not fail.
	_ = binary.Write(&buf, binary.LittleEndian, &rom.Header)
	buf.Write(rom.Image)
	return buf.Bytes()
}

// WriteTo writes the encoded ROM.
func (rom *Rom) WriteTo(out io.Writer) (n int64, err error) {
	written, err := out.Write(rom.Bytes())
	n = int64(written)
	return
}

// String describes the ROM header.
func (rom *Rom) String() string {
	if rom.Raw {
		return fmt.Sprintf("raw image size=%d (CRC32=%#08x)", rom.Size, rom.Crc32)
	}
	return fmt.Sprintf("%s version=%d.%d size=%d start=%#04x (CRC32=%#08x)",
		string(rom.Magic[:]), rom.Version>>4, rom.Version&0xf, rom.Size, rom.Start, rom.Crc32)
}
