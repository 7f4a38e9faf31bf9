package entity

import "image"

// FaceMargin отступ в пикселях вокруг ключевых точек
const FaceMargin = 20

// Landmark ключевая точка лица в долях размера изображения (x и y в [0,1]).
type Landmark struct {
	X float64
	Y float64
}

// BoundingBox прямоугольник в пикселях, x2/y2 не включаются.
type BoundingBox struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// BoundingBoxFromLandmarks строит по нормированным точкам рамку в пикселях
// с отступом margin, обрезанную по кадру width x height.
// Координаты отбрасывают дробную часть.
func BoundingBoxFromLandmarks(landmarks []Landmark, width, height, margin int) BoundingBox {
	if len(landmarks) == 0 {
		return BoundingBox{}
	}

	minX, minY := int(landmarks[0].X*float64(width)), int(landmarks[0].Y*float64(height))
	maxX, maxY := minX, minY
	for _, lm := range landmarks[1:] {
		x := int(lm.X * float64(width))
		y := int(lm.Y * float64(height))
		minX = min(minX, x)
		maxX = max(maxX, x)
		minY = min(minY, y)
		maxY = max(maxY, y)
	}

	return BoundingBox{
		X1: max(0, minX-margin),
		Y1: max(0, minY-margin),
		X2: min(width, maxX+margin),
		Y2: min(height, maxY+margin),
	}
}

// Width отрицательна у вырожденной рамки.
func (b BoundingBox) Width() int {
	return b.X2 - b.X1
}

func (b BoundingBox) Height() int {
	return b.Y2 - b.Y1
}

// Empty сообщает, что у рамки нет площади, в том числе после обрезки по кадру.
func (b BoundingBox) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Rect возвращает рамку как image.Rectangle со смещением origin.
func (b BoundingBox) Rect(origin image.Point) image.Rectangle {
	return image.Rect(b.X1, b.Y1, b.X2, b.Y2).Add(origin)
}
