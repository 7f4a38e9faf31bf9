package vision

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"avatar-ai/internal/domain/entity"
)

func TestDecoder_PNGAndJPEG(t *testing.T) {
	src := solidImage(30, 20, color.RGBA{R: 90, G: 120, B: 200, A: 255})

	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	img, err := NewDecoder().DecodeImage(pngBuf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 30, img.Bounds().Dx())
	require.Equal(t, 20, img.Bounds().Dy())

	var jpgBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpgBuf, src, nil))
	img, err = NewDecoder().DecodeImage(jpgBuf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 30, img.Bounds().Dx())
}

func TestDecoder_Garbage(t *testing.T) {
	_, err := NewDecoder().DecodeImage([]byte("definitely not an image"))
	require.ErrorIs(t, err, entity.ErrUndecodableImage)

	_, err = NewDecoder().DecodeImage(nil)
	require.ErrorIs(t, err, entity.ErrUndecodableImage)
	require.ErrorIs(t, err, entity.ErrEmptyImage)
}

func TestDecoder_TransparentPNGIsFlattened(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	src.SetNRGBA(10, 10, color.NRGBA{R: 200, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := NewDecoder().DecodeImage(buf.Bytes())
	require.NoError(t, err)

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			require.Equal(t, uint32(0xffff), a, "pixel %d,%d", x, y)
		}
	}
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBAModel.Convert(img.At(0, 0)))
	require.Equal(t, color.RGBA{R: 200, A: 255}, color.RGBAModel.Convert(img.At(10, 10)))
}
