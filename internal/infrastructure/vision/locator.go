package vision

import (
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// Locator находит первое лицо на изображении и вырезает его с фиксированным отступом.
type Locator struct {
	detector port.LandmarkDetector
	margin   int
}

// NewLocator создаёт локатор поверх общего детектора.
func NewLocator(detector port.LandmarkDetector) *Locator {
	return &Locator{
		detector: detector,
		margin:   entity.FaceMargin,
	}
}

// LocateFace запускает детектор на RGB-копии img и вырезает лицо из исходного img.
func (l *Locator) LocateFace(ctx context.Context, img image.Image) (image.Image, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, entity.ErrEmptyImage
	}

	// Детектору нужны RGB-пиксели независимо от цветовой модели.
	rgb := imaging.Clone(img)

	landmarks, err := l.detector.DetectLandmarks(ctx, rgb)
	if err != nil {
		return nil, fmt.Errorf("detect landmarks: %w", err)
	}
	if len(landmarks) == 0 {
		return nil, entity.ErrNoFaceDetected
	}

	box := entity.BoundingBoxFromLandmarks(landmarks, bounds.Dx(), bounds.Dy(), l.margin)
	if box.Empty() {
		return nil, entity.ErrNoFaceDetected
	}

	return imaging.Crop(img, box.Rect(bounds.Min)), nil
}

var _ port.FaceLocator = (*Locator)(nil)
