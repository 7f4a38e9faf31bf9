//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// GoCVCompositor рисует аватары примитивами OpenCV.
type GoCVCompositor struct{}

// NewGoCVCompositor создаёт компоновщик на OpenCV.
func NewGoCVCompositor() (*GoCVCompositor, error) {
	return &GoCVCompositor{}, nil
}

func (c *GoCVCompositor) ComposeAvatar(ctx context.Context, face image.Image) ([]byte, error) {
	_ = ctx
	if face.Bounds().Empty() {
		return nil, entity.ErrEmptyImage
	}

	// ImageToMatRGB отдаёт Mat в порядке BGR, цвета ниже заданы так же.
	src, err := gocv.ImageToMatRGB(face)
	if err != nil {
		return nil, fmt.Errorf("convert face: %w", err)
	}
	defer src.Close()
	if src.Empty() {
		return nil, entity.ErrEmptyImage
	}

	canvas := gocv.NewMatWithSizeFromScalar(whiteScalar(), entity.CanvasHeight, entity.CanvasWidth, gocv.MatTypeCV8UC3)
	defer canvas.Close()

	dim := minInt(src.Rows(), src.Cols())
	square := src.Region(image.Rect(0, 0, dim, dim))
	defer square.Close()

	small := gocv.NewMat()
	defer small.Close()
	gocv.Resize(square, &small, image.Pt(entity.FaceSize, entity.FaceSize), 0, 0, gocv.InterpolationLinear)

	mask := gocv.NewMatWithSize(entity.FaceSize, entity.FaceSize, gocv.MatTypeCV8UC1)
	defer mask.Close()
	mask.SetTo(gocv.NewScalar(0, 0, 0, 0))
	centre := image.Pt(entity.FaceSize/2, entity.FaceSize/2)
	gocv.Circle(&mask, centre, entity.FaceRadius, entity.Background, -1)

	roi := canvas.Region(entity.FaceRect())
	if roi.Rows() == entity.FaceSize && roi.Cols() == entity.FaceSize {
		if err := pasteMasked(small, mask, &roi); err != nil {
			roi.Close()
			return nil, err
		}
	}
	roi.Close()

	body := gocv.NewPointsVectorFromPoints([][]image.Point{entity.BodyPolygon()})
	defer body.Close()
	gocv.FillPoly(&canvas, body, entity.BodyColor)
	gocv.Ellipse(&canvas,
		image.Pt(entity.CenterX, entity.ShouldersY),
		image.Pt(entity.ShouldersRadX, entity.ShouldersRadY),
		0, 0, 360, entity.BodyColor, -1)

	buf, err := gocv.IMEncode(gocv.PNGFileExt, canvas)
	if err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// pasteMasked оставляет пиксели лица внутри маски, остальное заливает белым
// и копирует результат в roi.
func pasteMasked(face, mask gocv.Mat, roi *gocv.Mat) error {
	masked := gocv.NewMat()
	defer masked.Close()
	gocv.BitwiseAndWithMask(face, face, &masked, mask)
	if masked.Empty() {
		return errors.New("masking produced an empty face")
	}

	inverse := gocv.NewMat()
	defer inverse.Close()
	gocv.BitwiseNot(mask, &inverse)

	white := gocv.NewMatWithSizeFromScalar(whiteScalar(), entity.FaceSize, entity.FaceSize, gocv.MatTypeCV8UC3)
	defer white.Close()
	white.CopyToWithMask(&masked, inverse)

	masked.CopyTo(roi)
	return nil
}

func whiteScalar() gocv.Scalar {
	return gocv.NewScalar(255, 255, 255, 0)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

var _ port.AvatarComposer = (*GoCVCompositor)(nil)
