//go:build dlib
// +build dlib

package landmarks

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	face "github.com/Kagami/go-face"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// DlibDetector использует детектор лиц и shape predictor dlib через go-face.
// Recognizer не потокобезопасен.
type DlibDetector struct {
	mu  sync.Mutex
	rec *face.Recognizer
}

// NewDlibDetector загружает модели dlib из modelDir.
func NewDlibDetector(modelDir string) (*DlibDetector, error) {
	rec, err := face.NewRecognizer(modelDir)
	if err != nil {
		return nil, fmt.Errorf("error creating NewRecognizer: %w", err)
	}
	return &DlibDetector{rec: rec}, nil
}

// DetectLandmarks возвращает точки формы и углы рамки первого лица.
func (d *DlibDetector) DetectLandmarks(ctx context.Context, img image.Image) ([]entity.Landmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// go-face принимает только JPEG.
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode for recognizer: %w", err)
	}

	d.mu.Lock()
	faces, err := d.rec.Recognize(buf.Bytes())
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("error recognizing image: %w", err)
	}
	if len(faces) == 0 {
		return nil, nil
	}

	first := faces[0]
	rect := first.Rectangle.Sub(img.Bounds().Min)
	points := make([]image.Point, 0, len(first.Shapes)+2)
	for _, p := range first.Shapes {
		points = append(points, p.Sub(img.Bounds().Min))
	}
	points = append(points, rect.Min, rect.Max)

	b := img.Bounds()
	return normalise(points, b.Dx(), b.Dy()), nil
}

func (d *DlibDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rec.Close()
	return nil
}

var _ port.LandmarkDetector = (*DlibDetector)(nil)
