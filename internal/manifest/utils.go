package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"
)

var manifestName = regexp.MustCompile(`^image\d+\.yaml$`)

// Path returns the manifest path for input tag inside dir
func Path(dir string, tag int) string {
	return filepath.Join(dir, fmt.Sprintf("image%d.yaml", tag))
}

// FindLatestManifest finds the most recently modified image<N>.yaml in dir.
// Other YAML files (such as a saved config) are ignored, and so are entries
// that vanish while the directory is scanned.
func FindLatestManifest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read manifest directory: %w", err)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var manifests []candidate
	for _, entry := range entries {
		if entry.IsDir() || !manifestName.MatchString(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		manifests = append(manifests, candidate{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	if len(manifests) == 0 {
		return "", fmt.Errorf("no manifest files found in %s", dir)
	}

	// Newest first; equal times fall back to the name so the pick is stable
	sort.Slice(manifests, func(i, j int) bool {
		if !manifests[i].modTime.Equal(manifests[j].modTime) {
			return manifests[i].modTime.After(manifests[j].modTime)
		}
		return manifests[i].path > manifests[j].path
	})

	return manifests[0].path, nil
}

// Summary is a one-line description of m for the CLI report
func (m *Manifest) Summary() string {
	return fmt.Sprintf("%s (tag %d, %dx%d, threshold %.4f): %d candidates of %dx%d",
		m.Input, m.Tag, m.Width, m.Height, m.Threshold, len(m.Candidates), m.PatchSize, m.PatchSize)
}
