package landmarks

import (
	"image"

	"avatar-ai/internal/domain/entity"
)

// normalise переводит пиксельные точки кадра width x height в координаты [0,1].
func normalise(points []image.Point, width, height int) []entity.Landmark {
	if width <= 0 || height <= 0 || len(points) == 0 {
		return nil
	}
	out := make([]entity.Landmark, 0, len(points))
	for _, p := range points {
		out = append(out, entity.Landmark{
			X: float64(p.X) / float64(width),
			Y: float64(p.Y) / float64(height),
		})
	}
	return out
}
