package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/ivlev/ocrprep/internal/config"
	"github.com/ivlev/ocrprep/internal/engine"
	"github.com/ivlev/ocrprep/internal/export"
	"github.com/ivlev/ocrprep/internal/manifest"
	"github.com/ivlev/ocrprep/internal/source"
	"github.com/ivlev/ocrprep/internal/system"
)

func main() {
	startTime := time.Now()
	system.InitResourceLimits()

	def := config.DefaultConfig()

	configPtr := flag.String("config", "ocrprep.yaml", "YAML config file (ignored if missing)")
	inputPtr := flag.String("input", def.InputPath, "Image, directory of images or scanned PDF (empty: test<N>.jpg in the working directory)")
	outputPtr := flag.String("output", def.OutputDir, "Directory for image<N><i>.jpg files")
	firstPtr := flag.Int("first", def.FirstIndex, "First N of the test<N>.jpg set")
	lastPtr := flag.Int("last", def.LastIndex, "Last N of the test<N>.jpg set")
	workersPtr := flag.Int("workers", def.Workers, "Inputs processed at once")
	minAreaPtr := flag.Int("min-area", def.MinArea, "Regions with area <= this are dropped as noise")
	marginPtr := flag.Int("margin", def.Margin, "Pixels added around each region before cropping")
	patchPtr := flag.Int("patch", def.PatchSize, "Side length of the resampled candidates")
	interpPtr := flag.String("interp", def.Interpolation, "Resampling: bilinear, nearest, approx-bilinear, catmull-rom")
	qualityPtr := flag.Int("quality", def.JPEGQuality, "JPEG quality 1-100")
	dpiPtr := flag.Int("dpi", def.DPI, "DPI for PDF pages")
	manifestPtr := flag.Bool("manifest", def.WriteManifest, "Write image<N>.yaml with candidate coordinates")
	statsPtr := flag.Bool("stats", def.ShowStats, "Print resource usage at the end")
	lastManifestPtr := flag.Bool("last-manifest", false, "Print the newest image<N>.yaml in the output directory and exit")

	flag.Parse()

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	// Flags given on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputPath = *inputPtr
		case "output":
			cfg.OutputDir = *outputPtr
		case "first":
			cfg.FirstIndex = *firstPtr
		case "last":
			cfg.LastIndex = *lastPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "min-area":
			cfg.MinArea = *minAreaPtr
		case "margin":
			cfg.Margin = *marginPtr
		case "patch":
			cfg.PatchSize = *patchPtr
		case "interp":
			cfg.Interpolation = *interpPtr
		case "quality":
			cfg.JPEGQuality = *qualityPtr
		case "dpi":
			cfg.DPI = *dpiPtr
		case "manifest":
			cfg.WriteManifest = *manifestPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	_ = cfg.Validate()

	if *lastManifestPtr {
		path, err := manifest.FindLatestManifest(cfg.OutputDir)
		if err != nil {
			log.Fatalf("[-] Manifest error: %v", err)
		}
		m, err := manifest.ReadManifest(path)
		if err != nil {
			log.Fatalf("[-] Manifest error: %v", err)
		}
		fmt.Printf("[*] %s\n", path)
		fmt.Printf("[+] %s\n", m.Summary())
		return
	}

	src, err := source.Open(cfg.InputPath, cfg.FirstIndex, cfg.LastIndex, cfg.DPI)
	if err != nil {
		log.Fatalf("[-] Source error: %v", err)
	}
	defer src.Close()

	writer := export.NewJPEGWriter(cfg.OutputDir, cfg.JPEGQuality)
	writer.AutoContrast = cfg.AutoContrast

	project, err := engine.NewSegmentationProject(cfg, src, writer)
	if err != nil {
		log.Fatalf("[-] Setup error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := project.Run(ctx); err != nil {
		stop()
		src.Close()
		log.Fatalf("[-] Run error: %v", err)
	}

	if cfg.ShowStats {
		stats, err := system.CollectStats(startTime)
		if err != nil {
			log.Printf("[!] Could not collect stats: %v", err)
		} else {
			fmt.Printf("[*] %s\n", stats)
		}
	}

	fmt.Printf("[+++] Done! Candidates written to: %s\n", cfg.OutputDir)
}
