// Package pwg implements the PWG-Raster (PWG 5102.4) sync word and bit-exact
// 1796-byte page header.
package pwg

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/printraster/rasterpress/internal/raster/canvas"
)

// SyncWord is the 4-byte file magic written once per output stream.
const SyncWord = "RaS2"

// HeaderSize is the fixed, test-enforced size of the PWG page header.
const HeaderSize = 1796

// Enumerated value spaces (PWG 5102.4), represented as named constants over
// the fixed-width integer the wire form stores them as.
const (
	whenNever          uint32 = 0
	edgeShortEdgeFirst uint32 = 0
	mediaPositionAuto  uint32 = 0
	orientationPortrait uint32 = 0
	colorOrderChunky   uint32 = 0
	colorSpaceSgray    uint32 = 18
	printQualityDefault uint32 = 0
)

const (
	pwgRasterName  = "PwgRaster"
	isoA4Name      = "iso_a4_210x297mm"
	alternatePrimary uint32 = 0x00FFFFFF
)

// Options carries the page-level fields the caller may override; zero values
// fall back to the documented PWG defaults.
type Options struct {
	// TotalPageCount overrides the "1" default when a caller knows the true
	// page count (0 means "unknown" per the PWG spec but the default
	// implementation always writes 1 unless this is set).
	TotalPageCount uint32
}

// WriteFileHeader writes the 4-byte PWG sync word.
func WriteFileHeader(w io.Writer) error {
	_, err := io.WriteString(w, SyncWord)
	return err
}

// WritePageHeader serializes the bit-exact 1796-byte PWG page header for c,
// using opts to fill caller-overridable fields. All multi-byte integers are
// big-endian; the record is padded field-by-field over an in-memory buffer
// so it never depends on a packed struct's in-memory layout.
func WritePageHeader(c canvas.Canvas, opts Options, w io.Writer) error {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)

	writeCString(&buf, pwgRasterName)
	writeCString(&buf, "") // MediaColor
	writeCString(&buf, "") // MediaType
	writeCString(&buf, "") // PrintContentOptimize
	writeZero(&buf, 12)    // Reserved1

	writeU32(&buf, whenNever) // CutMedia
	writeU32(&buf, 0)         // Duplex (false)
	writeU32(&buf, uint32(c.DPIHeight)) // HWResolutionFeed
	writeU32(&buf, uint32(c.DPIWidth))  // HWResolutionCrossFeed
	writeZero(&buf, 16)                 // Reserved2

	writeU32(&buf, 0)                  // InsertSheet
	writeU32(&buf, whenNever)          // Jog
	writeU32(&buf, edgeShortEdgeFirst) // LeadingEdge
	writeZero(&buf, 12)                // Reserved3

	writeU32(&buf, mediaPositionAuto) // MediaPosition
	writeU32(&buf, 0)                 // MediaWeight
	writeZero(&buf, 8)                // Reserved4

	writeU32(&buf, 1)                   // NumCopies
	writeU32(&buf, orientationPortrait) // Orientation
	writeZero(&buf, 4)                  // Reserved5

	widthPts, heightPts := c.PageSizePoints()
	writeU32(&buf, widthPts)  // PageSizeWidthPts
	writeU32(&buf, heightPts) // PageSizeHeightPts
	writeZero(&buf, 8)        // Reserved6

	writeU32(&buf, 0) // Tumble
	writeU32(&buf, uint32(c.WidthPx))
	writeU32(&buf, uint32(c.HeightPx))
	writeZero(&buf, 4) // Reserved7

	writeU32(&buf, uint32(c.BPP)) // BitsPerColor
	writeU32(&buf, uint32(c.BPP)) // BitsPerPixel
	writeU32(&buf, uint32(c.BytesPerLine))
	writeU32(&buf, colorOrderChunky)
	writeU32(&buf, colorSpaceSgray)
	writeZero(&buf, 16) // Reserved8

	writeU32(&buf, 1)  // NumColors
	writeZero(&buf, 28) // Reserved9

	totalPages := opts.TotalPageCount
	if totalPages == 0 {
		totalPages = 1
	}
	writeU32(&buf, totalPages)
	writeI32(&buf, 1) // CrossFeedTransform
	writeI32(&buf, 1) // FeedTransform
	writeU32(&buf, 0) // ImageBoxLeft
	writeU32(&buf, 0) // ImageBoxTop
	writeU32(&buf, 0) // ImageBoxRight
	writeU32(&buf, 0) // ImageBoxBottom
	writeU32(&buf, alternatePrimary)
	writeU32(&buf, printQualityDefault)
	writeZero(&buf, 20) // Reserved10

	writeU32(&buf, 0) // VendorIdentifier
	writeU32(&buf, 0) // VendorLength
	writeZero(&buf, 1088) // VendorData
	writeZero(&buf, 64)   // Reserved11

	writeCString(&buf, "")        // RenderingIntent
	writeCString(&buf, isoA4Name) // PageSizeName

	if buf.Len() != HeaderSize {
		panic("pwg: page header size drift")
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// writeCString writes a fixed 64-byte buffer: up to 63 bytes of s followed
// by a NUL terminator, the rest zero-padded. If s is 64 bytes or longer it is
// truncated to 63 bytes and NUL-terminated (§9 open question, resolved to
// truncate-plus-NUL).
func writeCString(buf *bytes.Buffer, s string) {
	b := make([]byte, 64)
	raw := []byte(s)
	if len(raw) > 63 {
		raw = raw[:63]
	}
	copy(b, raw)
	b[len(raw)] = 0
	buf.Write(b)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func writeI32(buf *bytes.Buffer, v int32) {
	_ = binary.Write(buf, binary.BigEndian, v)
}

func writeZero(buf *bytes.Buffer, n int) {
	buf.Write(make([]byte, n))
}
