package port

import (
	"context"
	"image"

	"avatar-ai/internal/domain/entity"
)

// LandmarkDetector интерфейс модели ключевых точек лица.
//
// DetectLandmarks возвращает точки первого найденного лица на RGB-изображении
// или nil без ошибки, если лица нет.
type LandmarkDetector interface {
	DetectLandmarks(ctx context.Context, img image.Image) ([]entity.Landmark, error)

	// Close освобождает модель
	Close() error
}

// FaceLocator интерфейс поиска и вырезания лица
type FaceLocator interface {
	// LocateFace возвращает entity.ErrNoFaceDetected, если лицо не найдено
	LocateFace(ctx context.Context, img image.Image) (image.Image, error)
}

// ImageDecoder интерфейс декодера загрузок
type ImageDecoder interface {
	// DecodeImage оборачивает ошибки в entity.ErrUndecodableImage
	DecodeImage(data []byte) (image.Image, error)
}
