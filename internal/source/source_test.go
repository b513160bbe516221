package source

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 12, 8))
	img.SetGray(3, 3, color.Gray{Y: 255})
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("Save %s failed: %v", path, err)
	}
}

// writeTestPDF writes a one-page PDF of widthPt x heightPt points with a black
// square filling the middle half of the page.
func writeTestPDF(t *testing.T, path string, widthPt, heightPt int) {
	t.Helper()
	content := fmt.Sprintf("0 0 0 rg %d %d %d %d re f", widthPt/4, heightPt/4, widthPt/2, heightPt/2)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d %d] /Contents 4 0 R /Resources << >> >>", widthPt, heightPt),
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%EOF\n", len(objects)+1, xref)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Write %s failed: %v", path, err)
	}
}

func TestFitzPDFSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	writeTestPDF(t, path, 72, 144)

	src, err := Open(path, 1, 20, 72)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if _, ok := src.(*FitzPDFSource); !ok {
		t.Fatalf("Expected *FitzPDFSource, got %T", src)
	}
	if src.Count() != 1 {
		t.Fatalf("Expected 1 page, got %d", src.Count())
	}
	if src.Tag(0) != 1 {
		t.Errorf("Expected tag 1, got %d", src.Tag(0))
	}
	if src.Name(0) != path+"#1" {
		t.Errorf("Expected %s#1, got %s", path, src.Name(0))
	}

	img, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 72 || img.Bounds().Dy() != 144 {
		t.Errorf("Expected 72x144 at 72 dpi, got %v", img.Bounds())
	}

	b := img.Bounds()
	if r, _, _, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA(); r > 0x4000 {
		t.Errorf("Expected dark page centre, got %#x", r)
	}
	if r, _, _, _ := img.At(b.Min.X+1, b.Min.Y+1).RGBA(); r < 0xc000 {
		t.Errorf("Expected light page corner, got %#x", r)
	}
}

func TestFitzPDFSourceScalesWithDPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	writeTestPDF(t, path, 72, 144)

	src, err := NewFitzPDFSource(path, 144)
	if err != nil {
		t.Fatalf("NewFitzPDFSource failed: %v", err)
	}
	defer src.Close()

	img, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 144 || img.Bounds().Dy() != 288 {
		t.Errorf("Expected 144x288 at 144 dpi, got %v", img.Bounds())
	}

	if _, err := src.Load(1); err == nil {
		t.Error("Expected error for a page past the end")
	}
}

func TestFitzPDFSourceMissingFile(t *testing.T) {
	if _, err := NewFitzPDFSource(filepath.Join(t.TempDir(), "missing.pdf"), 72); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNumberedSource(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "test1.jpg"))
	writeTestImage(t, filepath.Join(dir, "test2.jpg"))

	src, err := NewNumberedSource(dir, 1, 3)
	if err != nil {
		t.Fatalf("NewNumberedSource failed: %v", err)
	}
	defer src.Close()

	if src.Count() != 3 {
		t.Fatalf("Expected 3 items, got %d", src.Count())
	}
	if src.Tag(1) != 2 {
		t.Errorf("Expected tag 2, got %d", src.Tag(1))
	}
	if filepath.Base(src.Name(2)) != "test3.jpg" {
		t.Errorf("Expected test3.jpg, got %s", src.Name(2))
	}

	img, err := src.Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 12 || img.Bounds().Dy() != 8 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	if _, err := src.Load(2); err == nil {
		t.Error("Expected error for missing test3.jpg")
	}
}

func TestNumberedSourceInvalidRange(t *testing.T) {
	if _, err := NewNumberedSource(".", 5, 2); err == nil {
		t.Error("Expected error, got nil")
	}
}

func TestImageSourceDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "b.png"))
	writeTestImage(t, filepath.Join(dir, "a.jpg"))
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644)

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatalf("NewImageSource failed: %v", err)
	}

	if src.Count() != 2 {
		t.Fatalf("Expected 2 images, got %d", src.Count())
	}
	if filepath.Base(src.Name(0)) != "a.jpg" {
		t.Errorf("Expected sorted order, got %s first", src.Name(0))
	}
	if src.Tag(0) != 1 {
		t.Errorf("Expected tag 1, got %d", src.Tag(0))
	}
}

func TestOpenSelectsSource(t *testing.T) {
	src, err := Open("", 1, 20, 300)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := src.(*NumberedSource); !ok {
		t.Errorf("Expected *NumberedSource, got %T", src)
	}
	if src.Count() != 20 {
		t.Errorf("Expected 20 items, got %d", src.Count())
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.png"), 1, 1, 300); err == nil {
		t.Error("Expected error for missing file")
	}
}
