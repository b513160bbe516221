package manifest

import (
	"path/filepath"

	"github.com/ivlev/ocrprep/internal/analyzer"
)

const Version = "1.0"

// Manifest records what was extracted from one input image
type Manifest struct {
	Version    string  `yaml:"version"`
	Input      string  `yaml:"input"`
	Tag        int     `yaml:"tag"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Threshold  float64 `yaml:"threshold"` // Otsu threshold of the denoised image
	PatchSize  int     `yaml:"patch_size"`
	Candidates []Entry `yaml:"candidates"`
}

// Entry is one written candidate
type Entry struct {
	Index int           `yaml:"index"`
	File  string        `yaml:"file"`
	BBox  analyzer.BBox `yaml:"bbox"` // un-expanded region box
}

// New builds a manifest from an extraction result and the files written for it.
// files may be shorter than the set if the export stopped early.
func New(input string, tag int, mask *analyzer.Mask, set *analyzer.CandidateSet, files []string) *Manifest {
	m := &Manifest{
		Version:    Version,
		Input:      input,
		Tag:        tag,
		Width:      mask.Width,
		Height:     mask.Height,
		Threshold:  mask.Threshold,
		PatchSize:  set.Size,
		Candidates: make([]Entry, 0, len(files)),
	}
	for i, f := range files {
		m.Candidates = append(m.Candidates, Entry{
			Index: i,
			File:  filepath.Base(f),
			BBox:  set.Coordinates[i],
		})
	}
	return m
}
