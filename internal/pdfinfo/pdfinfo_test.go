package pdfinfo

import (
	"os"
	"testing"
)

// blankPDF builds a minimal single-page PDF with the given MediaBox, mirroring
// the fixture used by the end-to-end integration test.
func blankPDF(width, height int) string {
	return "%PDF-1.4\n" +
		"1 0 obj<</Type/Catalog/Pages 2 0 R>>endobj\n" +
		"2 0 obj<</Type/Pages/Kids[3 0 R]/Count 1>>endobj\n" +
		"3 0 obj<</Type/Page/Parent 2 0 R/MediaBox[0 0 " +
		itoa(width) + " " + itoa(height) + "]>>endobj\n" +
		"trailer<</Root 1 0 R>>\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func writeTempPDF(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "pdfinfo-*.pdf")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(contents); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	return f.Name()
}

func TestInspectPortraitPage(t *testing.T) {
	path := writeTempPDF(t, blankPDF(595, 842))

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.PageCount != 1 {
		t.Fatalf("PageCount = %d, want 1", info.PageCount)
	}
	if len(info.Landscape) != 1 || info.Landscape[0] {
		t.Errorf("Landscape = %v, want [false]", info.Landscape)
	}
}

func TestInspectLandscapePage(t *testing.T) {
	path := writeTempPDF(t, blankPDF(842, 595))

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(info.Landscape) != 1 || !info.Landscape[0] {
		t.Errorf("Landscape = %v, want [true]", info.Landscape)
	}
}

func TestInspectRejectsMissingFile(t *testing.T) {
	if _, err := Inspect("/nonexistent/path/does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
