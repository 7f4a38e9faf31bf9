//go:build !dlib
// +build !dlib

package landmarks

import (
	"context"
	"errors"
	"image"

	"avatar-ai/internal/domain/entity"
)

var errDlibDisabled = errors.New("dlib build tag is not enabled")

type DlibDetector struct{}

// NewDlibDetector возвращает ошибку, если сборка без тега dlib.
func NewDlibDetector(modelDir string) (*DlibDetector, error) {
	_ = modelDir
	return nil, errDlibDisabled
}

func (d *DlibDetector) DetectLandmarks(ctx context.Context, img image.Image) ([]entity.Landmark, error) {
	_ = ctx
	_ = img
	return nil, errDlibDisabled
}

func (d *DlibDetector) Close() error {
	return nil
}
