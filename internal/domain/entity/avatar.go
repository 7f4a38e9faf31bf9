package entity

import (
	"errors"
	"image"
	"image/color"
)

// Геометрия холста аватара.
const (
	CanvasWidth  = 280
	CanvasHeight = 400

	FaceSize    = 140 // сторона квадрата лица
	FaceRadius  = 68  // радиус круга лица
	FaceOffsetY = 30  // верх квадрата лица на холсте
	CenterX     = 140 // вертикальная ось фигуры

	BodyTop       = 175
	BodyBottom    = 370
	BodyTopHalf   = 50 // полуширина трапеции на BodyTop
	BodyBaseHalf  = 45 // полуширина трапеции на BodyBottom
	ShouldersY    = 165
	ShouldersRadX = 55
	ShouldersRadY = 25
)

var (
	// Background цвет холста
	Background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// BodyColor светло-серый цвет тела
	BodyColor = color.RGBA{R: 224, G: 228, B: 232, A: 255}
)

// FaceRect место квадрата лица на холсте.
func FaceRect() image.Rectangle {
	return image.Rect(CenterX-FaceSize/2, FaceOffsetY, CenterX+FaceSize/2, FaceOffsetY+FaceSize)
}

// BodyPolygon возвращает вершины трапеции в порядке обхода.
func BodyPolygon() []image.Point {
	return []image.Point{
		{X: CenterX - BodyTopHalf, Y: BodyTop},
		{X: CenterX + BodyTopHalf, Y: BodyTop},
		{X: CenterX + BodyBaseHalf, Y: BodyBottom},
		{X: CenterX - BodyBaseHalf, Y: BodyBottom},
	}
}

// Ошибки обработки аватара.
var (
	ErrInvalidContentType = errors.New("content type is not an image")
	ErrUndecodableImage   = errors.New("image could not be decoded")
	ErrNoFaceDetected     = errors.New("no face detected")
	ErrEmptyImage         = errors.New("empty image")
	ErrUploadTooLarge     = errors.New("upload exceeds size limit")
)

// Сообщения об ошибках для пользователя.
const (
	MsgInvalidContentType = "Kun bilder tillatt"
	MsgUndecodableImage   = "Kunne ikke lese bildet"
	MsgNoFaceDetected     = "Ingen fjes funnet. Prøv et tydeligere selfie."
)

// AvatarResult результат одного запроса аватара.
// Заполнено ровно одно из полей AvatarBase64 и Error.
type AvatarResult struct {
	Success      bool    `json:"success"`
	AvatarBase64 *string `json:"avatar_base64"`
	Error        *string `json:"error"`
}

// AvatarSucceeded создаёт успешный результат с PNG в base64.
func AvatarSucceeded(b64 string) *AvatarResult {
	return &AvatarResult{Success: true, AvatarBase64: &b64}
}

// AvatarFailed создаёт результат с ошибкой.
func AvatarFailed(msg string) *AvatarResult {
	return &AvatarResult{Success: false, Error: &msg}
}
