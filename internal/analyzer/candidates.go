package analyzer

// CandidateSet holds fixed-size patches in a single contiguous buffer with a
// parallel list of source bounding boxes.
type CandidateSet struct {
	Size        int       // patch side length
	Fullscale   []float64 // Len() * Size * Size values, row-major per patch
	Coordinates []BBox    // un-expanded region boxes, one per patch
}

// NewCandidateSet returns an empty set of size x size patches.
func NewCandidateSet(size int) *CandidateSet {
	return &CandidateSet{
		Size:        size,
		Fullscale:   []float64{},
		Coordinates: []BBox{},
	}
}

// Append adds a patch. It panics if the patch does not hold Size*Size values.
func (s *CandidateSet) Append(patch []float64, box BBox) {
	if len(patch) != s.Size*s.Size {
		panic("analyzer: patch size mismatch")
	}
	s.Fullscale = append(s.Fullscale, patch...)
	s.Coordinates = append(s.Coordinates, box)
}

// Len returns the number of candidates.
func (s *CandidateSet) Len() int {
	return len(s.Coordinates)
}

// Shape returns (count, size, size).
func (s *CandidateSet) Shape() (int, int, int) {
	return s.Len(), s.Size, s.Size
}

// Patch returns the i-th patch as a Size*Size slice sharing the set's buffer.
func (s *CandidateSet) Patch(i int) []float64 {
	n := s.Size * s.Size
	return s.Fullscale[i*n : (i+1)*n : (i+1)*n]
}

// Flattened returns one row of Size*Size values per candidate. The rows share
// the Fullscale buffer.
func (s *CandidateSet) Flattened() [][]float64 {
	rows := make([][]float64, s.Len())
	for i := range rows {
		rows[i] = s.Patch(i)
	}
	return rows
}
