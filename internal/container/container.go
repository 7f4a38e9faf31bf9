package container

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"avatar-ai/config"
	app "avatar-ai/internal/application"
	"avatar-ai/internal/domain/port"
	"avatar-ai/internal/infrastructure/landmarks"
	"avatar-ai/internal/infrastructure/vision"
)

type Container struct {
	AvatarService *app.AvatarService
	Detector      port.LandmarkDetector
}

func New(detector port.LandmarkDetector, composer port.AvatarComposer, maxConcurrent int64, log *logrus.Logger) *Container {
	avatarService := app.NewAvatarService(
		vision.NewDecoder(),
		vision.NewLocator(detector),
		composer,
		maxConcurrent,
		log,
	)

	return &Container{
		AvatarService: avatarService,
		Detector:      detector,
	}
}

// Build создаёт детектор и компоновщик из cfg один раз на всё время работы.
// Детектор закрывает вызывающий.
func Build(cfg *config.Config, log *logrus.Logger) (*Container, error) {
	detector, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}

	composer, err := NewComposer(cfg)
	if err != nil {
		_ = detector.Close()
		return nil, err
	}

	return New(detector, composer, cfg.MaxConcurrency, log), nil
}

func NewDetector(cfg *config.Config) (port.LandmarkDetector, error) {
	switch cfg.Detector {
	case "dlib":
		d, err := landmarks.NewDlibDetector(cfg.DlibModelDir)
		if err != nil {
			return nil, fmt.Errorf("dlib detector: %w", err)
		}
		return d, nil
	case "pigo", "":
		pc := landmarks.DefaultPigoConfig()
		pc.FacefinderPath = cfg.FacefinderCascade
		pc.PuplocPath = cfg.PuplocCascade
		pc.MinScore = float32(cfg.MinDetectionScore)
		d, err := landmarks.NewPigoDetector(pc)
		if err != nil {
			return nil, fmt.Errorf("pigo detector: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", cfg.Detector)
	}
}

func NewComposer(cfg *config.Config) (port.AvatarComposer, error) {
	switch cfg.Compositor {
	case "gocv":
		c, err := vision.NewGoCVCompositor()
		if err != nil {
			return nil, fmt.Errorf("gocv compositor: %w", err)
		}
		return c, nil
	case "native", "":
		return vision.NewCompositor(), nil
	default:
		return nil, fmt.Errorf("unknown compositor %q", cfg.Compositor)
	}
}
