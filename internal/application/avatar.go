package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"avatar-ai/internal/domain/entity"
	"avatar-ai/internal/domain/port"
	"avatar-ai/internal/infrastructure/logging"
)

// AvatarService прогоняет загрузку через декодирование, поиск лица и компоновку.
type AvatarService struct {
	decoder  port.ImageDecoder
	locator  port.FaceLocator
	composer port.AvatarComposer
	sem      *semaphore.Weighted
	log      *logrus.Logger
}

// NewAvatarService создаёт сервис, maxConcurrent ограничивает число одновременных обработок.
func NewAvatarService(decoder port.ImageDecoder, locator port.FaceLocator, composer port.AvatarComposer, maxConcurrent int64, log *logrus.Logger) *AvatarService {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AvatarService{
		decoder:  decoder,
		locator:  locator,
		composer: composer,
		sem:      semaphore.NewWeighted(maxConcurrent),
		log:      log,
	}
}

// IsImageContentType проверяет, что заявленный тип загрузки похож на изображение.
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

// Render возвращает PNG-аватар для байтов загрузки.
// Паника внутри обработки возвращается как ошибка.
func (s *AvatarService) Render(ctx context.Context, data []byte) (out []byte, err error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for pipeline slot: %w", err)
	}
	defer s.sem.Release(1)

	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("avatar pipeline panic: %v", r)
		}
	}()

	img, err := s.decoder.DecodeImage(data)
	if err != nil {
		return nil, err
	}

	face, err := s.locator.LocateFace(ctx, img)
	if err != nil {
		return nil, err
	}

	return s.composer.ComposeAvatar(ctx, face)
}

// Generate обрабатывает одну загрузку. Ошибкой возвращается только неверный
// тип содержимого, всё остальное попадает в результат.
func (s *AvatarService) Generate(ctx context.Context, contentType string, data []byte) (*entity.AvatarResult, error) {
	if !IsImageContentType(contentType) {
		return nil, entity.ErrInvalidContentType
	}

	avatar, err := s.Render(ctx, data)
	if err != nil {
		s.logFailure(ctx, err)
		return entity.AvatarFailed(FailureMessage(err)), nil
	}

	return entity.AvatarSucceeded(base64.StdEncoding.EncodeToString(avatar)), nil
}

// FailureMessage переводит ошибку обработки в текст для пользователя.
func FailureMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrUndecodableImage):
		return entity.MsgUndecodableImage
	case errors.Is(err, entity.ErrNoFaceDetected):
		return entity.MsgNoFaceDetected
	default:
		return err.Error()
	}
}

func (s *AvatarService) logFailure(ctx context.Context, err error) {
	entry := logging.Entry(ctx, s.log).WithError(err)
	if errors.Is(err, entity.ErrUndecodableImage) || errors.Is(err, entity.ErrNoFaceDetected) {
		entry.Info("avatar not generated")
		return
	}
	entry.Error("avatar pipeline failed")
}
