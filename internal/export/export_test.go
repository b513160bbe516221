package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ivlev/ocrprep/internal/analyzer"
)

func testSet(n int) *analyzer.CandidateSet {
	set := analyzer.NewCandidateSet(32)
	for i := 0; i < n; i++ {
		patch := make([]float64, 32*32)
		for j := range patch {
			patch[j] = float64(j%32) / 31
		}
		set.Append(patch, analyzer.BBox{MinRow: i, MinCol: i, MaxRow: i + 5, MaxCol: i + 5})
	}
	return set
}

func TestCandidateFileName(t *testing.T) {
	tests := []struct {
		tag, i int
		want   string
	}{
		{1, 0, "image10.jpg"},
		{3, 12, "image312.jpg"},
		{20, 5, "image205.jpg"},
	}

	for _, tt := range tests {
		if got := CandidateFileName(tt.tag, tt.i); got != tt.want {
			t.Errorf("CandidateFileName(%d, %d) = %s, want %s", tt.tag, tt.i, got, tt.want)
		}
	}
}

func TestSaveCandidates(t *testing.T) {
	dir := t.TempDir()
	w := NewJPEGWriter(dir, 90)

	paths, err := w.SaveCandidates(testSet(3), 7)
	if err != nil {
		t.Fatalf("SaveCandidates failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("Expected 3 files, got %d", len(paths))
	}

	for i, p := range paths {
		if filepath.Base(p) != CandidateFileName(7, i) {
			t.Errorf("Unexpected name %s", p)
		}
		img, err := imaging.Open(p)
		if err != nil {
			t.Fatalf("Open %s failed: %v", p, err)
		}
		if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
			t.Errorf("Expected 32x32, got %v", img.Bounds())
		}
	}
}

func TestSaveCandidatesEmptySet(t *testing.T) {
	dir := t.TempDir()
	paths, err := NewJPEGWriter(dir, 90).SaveCandidates(analyzer.NewCandidateSet(32), 1)
	if err != nil {
		t.Fatalf("SaveCandidates failed: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("Expected no files, got %d", len(paths))
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected empty directory, got %d entries", len(entries))
	}
}

func TestSaveCandidatesWriteError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does", "not", "exist")

	_, err := NewJPEGWriter(missing, 90).SaveCandidates(testSet(1), 1)
	if err == nil {
		t.Fatal("Expected write error, got nil")
	}
	t.Logf("Got expected error: %v", err)
}
