package port

import (
	"context"
	"image"
)

// AvatarComposer интерфейс компоновщика аватара
type AvatarComposer interface {
	// ComposeAvatar возвращает аватар в PNG
	ComposeAvatar(ctx context.Context, face image.Image) ([]byte, error)
}
