package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// ellipseSegments число сторон многоугольника для плеч
const ellipseSegments = 96

// Compositor рисует аватары средствами чистого Go.
type Compositor struct{}

func NewCompositor() *Compositor {
	return &Compositor{}
}

// ComposeAvatar кладёт круглое лицо на белый холст, дорисовывает тело и возвращает PNG.
func (c *Compositor) ComposeAvatar(ctx context.Context, face image.Image) ([]byte, error) {
	_ = ctx
	if face.Bounds().Empty() {
		return nil, entity.ErrEmptyImage
	}

	canvas := image.NewRGBA(image.Rect(0, 0, entity.CanvasWidth, entity.CanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(entity.Background), image.Point{}, draw.Src)

	pasteFace(canvas, circularFace(face))
	drawBody(canvas)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

// squareCrop оставляет левый верхний квадрат со стороной по меньшему измерению.
func squareCrop(img image.Image) image.Image {
	b := img.Bounds()
	dim := min(b.Dx(), b.Dy())
	return imaging.Crop(img, image.Rect(b.Min.X, b.Min.Y, b.Min.X+dim, b.Min.Y+dim))
}

// circleMask возвращает маску size x size с закрашенным кругом в центре.
func circleMask(size, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size, size))
	c := size / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-c, y-c
			if dx*dx+dy*dy <= radius*radius {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

// circularFace приводит лицо к размеру аватара и заливает белым всё вне круга.
func circularFace(face image.Image) *image.NRGBA {
	small := imaging.Resize(squareCrop(face), entity.FaceSize, entity.FaceSize, imaging.Linear)
	small = flatten(small).(*image.NRGBA)
	mask := circleMask(entity.FaceSize, entity.FaceRadius)

	white := color.NRGBAModel.Convert(entity.Background).(color.NRGBA)
	b := small.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if mask.AlphaAt(x-b.Min.X, y-b.Min.Y).A == 0 {
				small.SetNRGBA(x, y, white)
			}
		}
	}
	return small
}

// pasteFace записывает лицо в его место на холсте.
// Лицо неверного размера не вставляется.
func pasteFace(canvas *image.RGBA, face image.Image) {
	dst := entity.FaceRect()
	fb := face.Bounds()
	if !dst.In(canvas.Bounds()) || fb.Dx() != dst.Dx() || fb.Dy() != dst.Dy() {
		return
	}
	draw.Draw(canvas, dst, face, fb.Min, draw.Src)
}

// drawBody рисует трапецию туловища, затем эллипс плеч поверх неё.
func drawBody(canvas *image.RGBA) {
	trapezoid := make([][2]float32, 0, 4)
	for _, p := range entity.BodyPolygon() {
		trapezoid = append(trapezoid, pixelCentre(float64(p.X), float64(p.Y)))
	}
	fillPolygon(canvas, trapezoid, entity.BodyColor)

	fillPolygon(canvas, ellipsePolygon(
		float64(entity.CenterX), float64(entity.ShouldersY),
		float64(entity.ShouldersRadX), float64(entity.ShouldersRadY),
	), entity.BodyColor)
}

func ellipsePolygon(cx, cy, rx, ry float64) [][2]float32 {
	pts := make([][2]float32, 0, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		t := 2 * math.Pi * float64(i) / ellipseSegments
		pts = append(pts, pixelCentre(cx+rx*math.Cos(t), cy+ry*math.Sin(t)))
	}
	return pts
}

func pixelCentre(x, y float64) [2]float32 {
	return [2]float32{float32(x + 0.5), float32(y + 0.5)}
}

// fillPolygon закрашивает пиксели, покрытые многоугольником хотя бы наполовину.
// Края получаются жёсткими, как у вставки лица.
func fillPolygon(dst *image.RGBA, pts [][2]float32, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(pts[0][0], pts[0][1])
	for _, p := range pts[1:] {
		z.LineTo(p[0], p[1])
	}
	z.ClosePath()

	coverage := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	z.Draw(coverage, coverage.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if coverage.AlphaAt(x, y).A >= 0x80 {
				dst.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
			}
		}
	}
}

var _ port.AvatarComposer = (*Compositor)(nil)
