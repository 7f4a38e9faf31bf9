package landmarks

import (
	"context"
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
)

// PigoConfig настройки каскадного детектора
type PigoConfig struct {
	FacefinderPath string  // каскад лиц, обязателен
	PuplocPath     string  // каскад зрачков, необязателен
	MinSize        int     // минимальная сторона лица в пикселях
	MaxSize        int     // максимальная сторона лица, 0 = большая сторона кадра
	ShiftFactor    float64 // шаг окна
	ScaleFactor    float64 // шаг масштаба окна
	IoUThreshold   float64 // порог кластеризации
	MinScore       float32 // детекции ниже порога отбрасываются
}

// DefaultPigoConfig возвращает настройки по умолчанию.
func DefaultPigoConfig() PigoConfig {
	return PigoConfig{
		FacefinderPath: "cascade/facefinder",
		MinSize:        20,
		ShiftFactor:    0.1,
		ScaleFactor:    1.1,
		IoUThreshold:   0.2,
		MinScore:       5.0,
	}
}

// PigoDetector ищет лицо с лучшей оценкой и возвращает углы его рамки,
// а при загруженном каскаде зрачков ещё и оба зрачка.
type PigoDetector struct {
	cfg        PigoConfig
	mu         sync.Mutex
	classifier *pigo.Pigo
	puploc     *pigo.PuplocCascade
}

func NewPigoDetector(cfg PigoConfig) (*PigoDetector, error) {
	data, err := os.ReadFile(cfg.FacefinderPath)
	if err != nil {
		return nil, fmt.Errorf("read face cascade: %w", err)
	}
	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack face cascade: %w", err)
	}

	d := &PigoDetector{cfg: cfg, classifier: classifier}

	if cfg.PuplocPath != "" {
		data, err := os.ReadFile(cfg.PuplocPath)
		if err != nil {
			return nil, fmt.Errorf("read pupil cascade: %w", err)
		}
		plc, err := pigo.NewPuplocCascade().UnpackCascade(data)
		if err != nil {
			return nil, fmt.Errorf("unpack pupil cascade: %w", err)
		}
		d.puploc = plc
	}

	return d, nil
}

func (d *PigoDetector) DetectLandmarks(ctx context.Context, img image.Image) ([]entity.Landmark, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := img.Bounds()
	cols, rows := b.Dx(), b.Dy()
	if cols == 0 || rows == 0 {
		return nil, entity.ErrEmptyImage
	}

	params := pigo.ImageParams{
		Pixels: pigo.RgbToGrayscale(imaging.Clone(img)),
		Rows:   rows,
		Cols:   cols,
		Dim:    cols,
	}
	maxSize := d.cfg.MaxSize
	if maxSize <= 0 {
		maxSize = max(cols, rows)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	dets := d.classifier.RunCascade(pigo.CascadeParams{
		MinSize:     d.cfg.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.cfg.ShiftFactor,
		ScaleFactor: d.cfg.ScaleFactor,
		ImageParams: params,
	}, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.cfg.IoUThreshold)

	best, ok := bestDetection(dets, d.cfg.MinScore)
	if !ok {
		return nil, nil
	}

	half := best.Scale / 2
	points := []image.Point{
		{X: best.Col - half, Y: best.Row - half},
		{X: best.Col + half, Y: best.Row + half},
	}
	if d.puploc != nil {
		points = append(points, d.pupils(best, params)...)
	}

	return normalise(points, cols, rows), nil
}

// pupils запускает каскад зрачков от типичного положения глаз в рамке лица.
func (d *PigoDetector) pupils(det pigo.Detection, params pigo.ImageParams) []image.Point {
	scale := float32(det.Scale)
	var out []image.Point
	for _, side := range []float32{-1, 1} {
		seed := pigo.Puploc{
			Row:      det.Row - int(0.075*scale),
			Col:      det.Col + int(side*0.175*scale),
			Scale:    scale * 0.25,
			Perturbs: 50,
		}
		eye := d.puploc.RunDetector(seed, params, 0.0, false)
		if eye != nil && eye.Row > 0 && eye.Col > 0 {
			out = append(out, image.Pt(eye.Col, eye.Row))
		}
	}
	return out
}

// bestDetection выбирает детекцию с наибольшей оценкой не ниже minScore.
func bestDetection(dets []pigo.Detection, minScore float32) (pigo.Detection, bool) {
	var best pigo.Detection
	found := false
	for _, det := range dets {
		if det.Q < minScore {
			continue
		}
		if !found || det.Q > best.Q {
			best = det
			found = true
		}
	}
	return best, found
}

func (d *PigoDetector) Close() error {
	return nil
}

var _ port.LandmarkDetector = (*PigoDetector)(nil)
