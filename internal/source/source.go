package source

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Source yields the input images of a batch.
type Source interface {
	Count() int
	Tag(index int) int     // number used in output file names
	Name(index int) string // human-readable origin of the item
	Load(index int) (image.Image, error)
	Close() error
}

// FitzPDFSource renders the pages of a scanned PDF.
type FitzPDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewFitzPDFSource(path string, dpi int) (*FitzPDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &FitzPDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *FitzPDFSource) Count() int {
	return f.doc.NumPage()
}

func (f *FitzPDFSource) Tag(index int) int {
	return index + 1
}

func (f *FitzPDFSource) Name(index int) string {
	return fmt.Sprintf("%s#%d", f.path, index+1)
}

func (f *FitzPDFSource) Load(index int) (image.Image, error) {
	// A separate document per call keeps concurrent loads independent.
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(f.dpi))
}

func (f *FitzPDFSource) Close() error {
	return f.doc.Close()
}
