package engine

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/ocrprep/internal/analyzer"
	"github.com/ivlev/ocrprep/internal/config"
	"github.com/ivlev/ocrprep/internal/export"
	"github.com/ivlev/ocrprep/internal/manifest"
	"github.com/ivlev/ocrprep/internal/raster"
	"github.com/ivlev/ocrprep/internal/source"
)

// Result summarizes one processed input.
type Result struct {
	Tag   int
	Input string
	Set   *analyzer.CandidateSet
	Files []string
}

type SegmentationProject struct {
	Config    *config.Config
	Source    source.Source
	Writer    export.CandidateWriter
	Extractor *analyzer.Extractor

	results []Result
}

func NewSegmentationProject(cfg *config.Config, src source.Source, w export.CandidateWriter) (*SegmentationProject, error) {
	interp, err := raster.NewInterpolator(cfg.Interpolation)
	if err != nil {
		return nil, err
	}

	ex := analyzer.NewExtractor()
	ex.MinArea = cfg.MinArea
	ex.Margin = cfg.Margin
	ex.PatchSize = cfg.PatchSize
	ex.Interpolator = interp
	ex.Out = os.Stdout

	return &SegmentationProject{
		Config:    cfg,
		Source:    src,
		Writer:    w,
		Extractor: ex,
	}, nil
}

// Results returns the per-input results of the last Run in source order.
func (p *SegmentationProject) Results() []Result {
	return p.results
}

// Run processes every input: load -> preprocess -> extract -> save. The first
// failure cancels inputs that have not started yet and is returned.
func (p *SegmentationProject) Run(ctx context.Context) error {
	startTime := time.Now()

	count := p.Source.Count()
	if count == 0 {
		return fmt.Errorf("source contains no images")
	}

	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Println("--- [OCR PREPROCESSING] ---")
	fmt.Printf("[*] Inputs: %d | Output: %s | Workers: %d\n", count, p.Config.OutputDir, p.Config.Workers)
	fmt.Printf("[*] Min area: %d | Margin: %d | Patch: %dx%d\n", p.Config.MinArea, p.Config.Margin, p.Config.PatchSize, p.Config.PatchSize)
	fmt.Println("---------------------------")

	p.results = make([]Result, count)
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Config.Workers)

	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := p.processItem(i)
			if err != nil {
				return err
			}
			p.results[i] = res
			fmt.Printf("[>] Ready: %d/%d %s (%d candidates)\n", done.Add(1), count, res.Input, res.Set.Len())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	total := 0
	for _, r := range p.results {
		total += r.Set.Len()
	}
	fmt.Printf("[*] %d candidates from %d inputs in %.2fs\n", total, count, time.Since(startTime).Seconds())
	return nil
}

func (p *SegmentationProject) processItem(i int) (Result, error) {
	name := p.Source.Name(i)
	tag := p.Source.Tag(i)

	img, err := p.Source.Load(i)
	if err != nil {
		return Result{}, fmt.Errorf("input %s: %w", name, err)
	}

	gray := raster.FromImage(img)
	mask, set, err := p.Segment(gray)
	if err != nil {
		return Result{}, fmt.Errorf("input %s: %w", name, err)
	}

	files, err := p.Writer.SaveCandidates(set, tag)
	if err != nil {
		return Result{}, fmt.Errorf("input %s: %w", name, err)
	}

	if p.Config.WriteManifest {
		m := manifest.New(name, tag, mask, set, files)
		if err := manifest.WriteManifest(m, manifest.Path(p.Config.OutputDir, tag)); err != nil {
			return Result{}, fmt.Errorf("input %s: write manifest: %w", name, err)
		}
	}

	return Result{Tag: tag, Input: name, Set: set, Files: files}, nil
}

// Segment runs preprocessing and candidate extraction on a grayscale image.
func (p *SegmentationProject) Segment(img *raster.Image) (*analyzer.Mask, *analyzer.CandidateSet, error) {
	mask, err := analyzer.Preprocess(img, analyzer.PreprocessOptions{
		DenoiseWeight: p.Config.DenoiseWeight,
		ClosingSize:   p.Config.ClosingSize,
	})
	if err != nil {
		return nil, nil, err
	}

	set, err := p.Extractor.Extract(img, mask)
	if err != nil {
		return nil, nil, err
	}
	return mask, set, nil
}
