// Package urf implements Apple's URF/UNIRAST file and page headers.
package urf

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/printraster/rasterpress/internal/raster/canvas"
)

// SyncWord is the 8-byte ASCII file magic, including the trailing NUL.
const SyncWord = "UNIRAST\x00"

// HeaderSize is the fixed, test-enforced size of the URF page header.
const HeaderSize = 32

const (
	colorSpaceSgray    uint8 = 0
	duplexNoDuplex     uint8 = 1
	qualityDefault     uint8 = 0
	mediaTypeAutomatic uint8 = 0
	mediaPositionAuto  uint8 = 0
)

// WriteFileHeader writes the 8-byte sync word followed by the big-endian
// page count.
func WriteFileHeader(pageCount uint32, w io.Writer) error {
	if _, err := io.WriteString(w, SyncWord); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, pageCount)
}

// WritePageHeader serializes the bit-exact 32-byte URF page header for c.
// HWResolution takes the cross-feed (width) DPI, per §4.4.
func WritePageHeader(c canvas.Canvas, w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)

	buf.WriteByte(byte(c.BPP))
	buf.WriteByte(colorSpaceSgray)
	buf.WriteByte(duplexNoDuplex)
	buf.WriteByte(qualityDefault)
	buf.WriteByte(mediaTypeAutomatic)
	buf.WriteByte(mediaPositionAuto)
	buf.Write(make([]byte, 6)) // Reserved1

	_ = binary.Write(&buf, binary.BigEndian, uint32(c.WidthPx))
	_ = binary.Write(&buf, binary.BigEndian, uint32(c.HeightPx))
	_ = binary.Write(&buf, binary.BigEndian, uint32(c.DPIWidth))
	buf.Write(make([]byte, 8)) // Reserved2

	if buf.Len() != HeaderSize {
		panic("urf: page header size drift")
	}

	_, err := w.Write(buf.Bytes())
	return err
}
