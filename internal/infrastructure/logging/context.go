package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// RequestIDKey поле лога с идентификатором запроса
const RequestIDKey = "request_id"

type requestIDKey struct{}

// WithRequestID сохраняет идентификатор запроса в ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID возвращает идентификатор из WithRequestID или "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Entry возвращает запись лога с идентификатором запроса из ctx, если он есть.
func Entry(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if id := RequestID(ctx); id != "" {
		entry = entry.WithField(RequestIDKey, id)
	}
	return entry
}
