package vision

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// Decoder читает JPEG, PNG, GIF, BMP, TIFF и WebP.
type Decoder struct{}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// DecodeImage декодирует загрузку, применяет EXIF-ориентацию и убирает прозрачность.
func (d *Decoder) DecodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %w", entity.ErrUndecodableImage, entity.ErrEmptyImage)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUndecodableImage, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %w", entity.ErrUndecodableImage, entity.ErrEmptyImage)
	}

	return flatten(img), nil
}

// flatten кладёт изображение с прозрачностью на белый фон.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}

var _ port.ImageDecoder = (*Decoder)(nil)
