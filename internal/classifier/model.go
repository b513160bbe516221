package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/disintegration/imaging"
)

const (
	DefaultInputSize = 150
	DefaultBatchSize = 10
)

// ModelAdapter sends images to an inference service that hosts the
// pre-trained network and returns predicted class indices.
type ModelAdapter struct {
	inferenceURL string
	client       *http.Client
	InputSize    int // images are resized to InputSize x InputSize before upload
	BatchSize    int // images per request
}

func NewModelAdapter(inferenceURL string, client *http.Client) *ModelAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &ModelAdapter{
		inferenceURL: inferenceURL,
		client:       client,
		InputSize:    DefaultInputSize,
		BatchSize:    DefaultBatchSize,
	}
}

// LoadImage opens an image file for prediction.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}

// Prepare resizes img to size x size with nearest-neighbour sampling.
func Prepare(img image.Image, size int) image.Image {
	return imaging.Resize(img, size, size, imaging.NearestNeighbor)
}

// Predict returns one class index per image, in input order.
func (m *ModelAdapter) Predict(ctx context.Context, images []image.Image) ([]int, error) {
	batch := m.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	classes := make([]int, 0, len(images))
	for start := 0; start < len(images); start += batch {
		end := start + batch
		if end > len(images) {
			end = len(images)
		}
		got, err := m.predictBatch(ctx, images[start:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d: %w", start, end-1, err)
		}
		classes = append(classes, got...)
	}
	return classes, nil
}

func (m *ModelAdapter) predictBatch(ctx context.Context, images []image.Image) ([]int, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("batch_size", strconv.Itoa(len(images))); err != nil {
		return nil, fmt.Errorf("write batch size: %w", err)
	}
	for i, img := range images {
		part, err := writer.CreateFormFile("file", fmt.Sprintf("image%d.jpg", i))
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if err := imaging.Encode(part, Prepare(img, m.InputSize), imaging.JPEG, imaging.JPEGQuality(95)); err != nil {
			return nil, fmt.Errorf("encode image %d: %w", i, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.inferenceURL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Classes []int `json:"classes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Classes) != len(images) {
		return nil, fmt.Errorf("expected %d classes, got %d", len(images), len(result.Classes))
	}

	return result.Classes, nil
}

// healthURL returns the /health endpoint at the root of the inference host.
func healthURL(inferenceURL string) (string, error) {
	u, err := url.Parse(inferenceURL)
	if err != nil {
		return "", fmt.Errorf("parse inference url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("inference url %q has no scheme or host", inferenceURL)
	}
	return (&url.URL{Scheme: u.Scheme, User: u.User, Host: u.Host, Path: "/health"}).String(), nil
}

// CheckHealth checks that the inference service is reachable
func (m *ModelAdapter) CheckHealth(ctx context.Context) error {
	target, err := healthURL(m.inferenceURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml service unhealthy: %d", resp.StatusCode)
	}

	return nil
}
