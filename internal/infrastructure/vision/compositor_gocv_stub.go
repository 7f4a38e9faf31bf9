//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"
	"image"
)

var errGoCVDisabled = errors.New("gocv build tag is not enabled")

type GoCVCompositor struct{}

// NewGoCVCompositor возвращает ошибку, если сборка без тега gocv.
func NewGoCVCompositor() (*GoCVCompositor, error) {
	return nil, errGoCVDisabled
}

// ComposeAvatar возвращает ошибку, если сборка без тега gocv.
func (c *GoCVCompositor) ComposeAvatar(ctx context.Context, face image.Image) ([]byte, error) {
	_ = ctx
	_ = face
	return nil, errGoCVDisabled
}
