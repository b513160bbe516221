package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ivlev/ocrprep/internal/classifier"
)

func main() {
	urlPtr := flag.String("url", getEnv("INFERENCE_URL", "http://localhost:5000/predict"), "Inference service endpoint")
	sizePtr := flag.Int("size", classifier.DefaultInputSize, "Model input side length")
	batchPtr := flag.Int("batch", classifier.DefaultBatchSize, "Images per request")
	timeoutPtr := flag.Duration("timeout", 30*time.Second, "Request timeout")
	healthPtr := flag.Bool("health", false, "Only check that the service is up")

	flag.Parse()

	model := classifier.NewModelAdapter(*urlPtr, &http.Client{Timeout: *timeoutPtr})
	model.InputSize = *sizePtr
	model.BatchSize = *batchPtr

	ctx := context.Background()

	if *healthPtr {
		if err := model.CheckHealth(ctx); err != nil {
			log.Fatalf("[-] %v", err)
		}
		fmt.Println("[+] Inference service is healthy")
		return
	}

	if flag.NArg() == 0 {
		log.Fatalf("[-] Usage: ocrpredict [flags] image.jpg [image.jpg ...]")
	}

	images := make([]image.Image, 0, flag.NArg())
	for _, path := range flag.Args() {
		img, err := classifier.LoadImage(path)
		if err != nil {
			log.Fatalf("[-] %v", err)
		}
		images = append(images, img)
	}

	classes, err := model.Predict(ctx, images)
	if err != nil {
		log.Fatalf("[-] Prediction error: %v", err)
	}

	for i, path := range flag.Args() {
		fmt.Printf("%s\t%d\n", path, classes[i])
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
