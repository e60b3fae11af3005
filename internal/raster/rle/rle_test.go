package rle

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestSingleLineCanonicalEncodings(t *testing.T) {
	cases := []struct {
		line []byte
		want []byte
	}{
		{[]byte{0x8F, 0x78, 0xF7}, []byte{0xFE, 0x8F, 0x78, 0xF7}},
		{[]byte{0x76, 0x77, 0x67}, []byte{0xFE, 0x76, 0x77, 0x67}},
		{[]byte{0x77, 0x77, 0x77}, []byte{0x02, 0x77}},
		{[]byte{0x8E, 0x38, 0xE3}, []byte{0xFE, 0x8E, 0x38, 0xE3}},
		{[]byte{0xFF, 0xFF, 0xFF}, []byte{0x02, 0xFF}},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		if err := compressLine(c.line, &buf); err != nil {
			t.Fatalf("compressLine(%x): %v", c.line, err)
		}
		if !bytes.Equal(buf.Bytes(), c.want) {
			t.Errorf("compressLine(% X) = % X, want % X", c.line, buf.Bytes(), c.want)
		}
	}
}

func TestCanonicalPWG1BPPExample(t *testing.T) {
	bitmap := []byte{
		0x8F, 0x78, 0xF7,
		0x76, 0x77, 0x67,
		0x77, 0x77, 0x77,
		0x77, 0x77, 0x77,
		0x77, 0x77, 0x77,
		0x77, 0x77, 0x77,
		0x8E, 0x38, 0xE3,
		0xFF, 0xFF, 0xFF,
	}

	want := []byte{
		0x00, 0xFE, 0x8F, 0x78, 0xF7,
		0x00, 0xFE, 0x76, 0x77, 0x67,
		0x03, 0x02, 0x77,
		0x00, 0xFE, 0x8E, 0x38, 0xE3,
		0x00, 0x02, 0xFF,
	}

	var buf bytes.Buffer
	if err := Compress(bitmap, 23, 1, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("Compress() = % X, want % X", buf.Bytes(), want)
	}
}

func TestLine257RepeatsSplitsIntoTwoOuterChunks(t *testing.T) {
	bytesPerLine := 3
	line := []byte{0xAA, 0xBB, 0xCC}
	bitmap := bytes.Repeat(line, 257)

	var buf bytes.Buffer
	if err := Compress(bitmap, 24, 1, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}

	decoded, err := decodeReference(buf.Bytes(), bytesPerLine)
	if err != nil {
		t.Fatalf("decodeReference: %v", err)
	}
	if !bytes.Equal(decoded, bitmap) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(decoded), len(bitmap))
	}

	// First outer chunk header is 255 (256 repeats), second is 0 (1 repeat).
	if buf.Bytes()[0] != 0xFF {
		t.Errorf("first outer header = %#x, want 0xff", buf.Bytes()[0])
	}
}

func TestScanline129IdenticalBytesTailIsLiteralNotRepeat(t *testing.T) {
	line := bytes.Repeat([]byte{0x42}, 129)

	var buf bytes.Buffer
	if err := compressLine(line, &buf); err != nil {
		t.Fatalf("compressLine: %v", err)
	}

	// First packet: repeat header 127 (128 copies), value 0x42.
	got := buf.Bytes()
	if got[0] != 127 || got[1] != 0x42 {
		t.Fatalf("first packet = % X, want [7F 42]", got[:2])
	}
	// Second packet: a length-1 literal, not a repeated-run packet: header
	// byte is 257-1 truncated to a uint8, i.e. 0x00, followed by the single
	// byte — see DESIGN.md for why 0x00 rather than 0xFF is the only value
	// that doesn't desync the decoder.
	if got[2] != 0x00 || got[3] != 0x42 {
		t.Fatalf("second packet = % X, want [00 42]", got[2:4])
	}
	if len(got) != 4 {
		t.Fatalf("len(got) = %d, want 4", len(got))
	}

	decoded, _, err := decodeLine(got, 129)
	if err != nil {
		t.Fatalf("decodeLine: %v", err)
	}
	if !bytes.Equal(decoded, line) {
		t.Fatalf("round trip mismatch")
	}
}

func TestScanline129DistinctBytesTwoLiteralPackets(t *testing.T) {
	line := make([]byte, 129)
	for i := range line {
		line[i] = byte(i) // all distinct
	}

	var buf bytes.Buffer
	if err := compressLine(line, &buf); err != nil {
		t.Fatalf("compressLine: %v", err)
	}

	got := buf.Bytes()
	if got[0] != 0x81 { // 257-128
		t.Fatalf("first header = %#x, want 0x81", got[0])
	}
	secondHeaderOffset := 1 + 128
	if got[secondHeaderOffset] != 0x00 { // 257-1 truncated
		t.Fatalf("second header = %#x, want 0x00", got[secondHeaderOffset])
	}

	decoded, _, err := decodeLine(got, 129)
	if err != nil {
		t.Fatalf("decodeLine: %v", err)
	}
	if !bytes.Equal(decoded, line) {
		t.Fatalf("round trip mismatch")
	}
}

func TestRoundTripRandomBitmaps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 50; trial++ {
		width := 1 + rng.Intn(600)
		bpp := []int{1, 8, 24}[rng.Intn(3)]
		bytesPerLine := (width*bpp + 7) / 8
		lines := 1 + rng.Intn(20)

		bitmap := make([]byte, lines*bytesPerLine)
		// Bias toward runs so the compressor's both code paths get exercised.
		for i := range bitmap {
			if i > 0 && rng.Intn(3) != 0 {
				bitmap[i] = bitmap[i-1]
			} else {
				bitmap[i] = byte(rng.Intn(256))
			}
		}

		var buf bytes.Buffer
		if err := Compress(bitmap, width, bpp, &buf); err != nil {
			t.Fatalf("Compress: %v", err)
		}

		decoded, err := decodeReference(buf.Bytes(), bytesPerLine)
		if err != nil {
			t.Fatalf("decodeReference: %v", err)
		}
		if !bytes.Equal(decoded, bitmap) {
			t.Fatalf("trial %d: round trip mismatch (width=%d bpp=%d lines=%d)", trial, width, bpp, lines)
		}
	}
}

func TestEmptyInputProducesEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Compress(nil, 100, 8, &buf); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %d bytes", buf.Len())
	}
}

// decodeReference is a minimal reference decoder for the two-level RLE
// stream, used only to verify the round-trip property: it does not need to
// be efficient, only correct against the same packet semantics rle.Compress
// writes (outer header k-1 -> k line repeats; inner header <=127 -> repeat
// of header+1 copies of the following byte, header>127 -> literal of
// 257-header following bytes).
func decodeReference(data []byte, bytesPerLine int) ([]byte, error) {
	var out []byte
	i := 0
	for i < len(data) {
		lineRepeat := int(data[i]) + 1
		i++

		line, n, err := decodeLine(data[i:], bytesPerLine)
		if err != nil {
			return nil, err
		}
		i += n

		for r := 0; r < lineRepeat; r++ {
			out = append(out, line...)
		}
	}
	return out, nil
}

func decodeLine(data []byte, bytesPerLine int) ([]byte, int, error) {
	line := make([]byte, 0, bytesPerLine)
	i := 0
	for len(line) < bytesPerLine {
		header := data[i]
		i++
		if header <= 127 {
			count := int(header) + 1
			b := data[i]
			i++
			for k := 0; k < count; k++ {
				line = append(line, b)
			}
		} else {
			count := 257 - int(header)
			line = append(line, data[i:i+count]...)
			i += count
		}
	}
	return line, i, nil
}
