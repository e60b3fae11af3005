package urf

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/printraster/rasterpress/internal/raster/canvas"
)

func TestWritePageHeaderIsExactly32Bytes(t *testing.T) {
	c, err := canvas.New(300, 300, canvas.Gray)
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePageHeader(c, &buf); err != nil {
		t.Fatalf("WritePageHeader: %v", err)
	}
	if buf.Len() != HeaderSize {
		t.Fatalf("len = %d, want %d", buf.Len(), HeaderSize)
	}
}

func TestWriteFileHeaderSyncWordAndPageCount(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFileHeader(3, &buf); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	raw := buf.Bytes()
	if string(raw[:8]) != "UNIRAST\x00" {
		t.Fatalf("sync word = %q, want %q", raw[:8], "UNIRAST\x00")
	}
	if got := binary.BigEndian.Uint32(raw[8:12]); got != 3 {
		t.Fatalf("page count = %d, want 3", got)
	}
}

func TestPageHeaderFields(t *testing.T) {
	c, err := canvas.New(400, 600, canvas.Gray)
	if err != nil {
		t.Fatalf("canvas.New: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePageHeader(c, &buf); err != nil {
		t.Fatalf("WritePageHeader: %v", err)
	}
	raw := buf.Bytes()

	if raw[0] != 8 {
		t.Errorf("BitsPerPixel = %d, want 8", raw[0])
	}

	width := binary.BigEndian.Uint32(raw[12:16])
	height := binary.BigEndian.Uint32(raw[16:20])
	hwRes := binary.BigEndian.Uint32(raw[20:24])
	if width != uint32(c.WidthPx) {
		t.Errorf("Width = %d, want %d", width, c.WidthPx)
	}
	if height != uint32(c.HeightPx) {
		t.Errorf("Height = %d, want %d", height, c.HeightPx)
	}
	if hwRes != 400 {
		t.Errorf("HWResolution = %d, want 400 (cross-feed DPI)", hwRes)
	}
}
