package logging

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(Options{Level: "debug"})
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger, err = NewLogger(Options{})
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := NewLogger(Options{Level: "loud"})
	require.Error(t, err)
}

func TestNewLogger_File(t *testing.T) {
	file := filepath.Join(t.TempDir(), "avatar.log")
	logger, err := NewLogger(Options{File: file})
	require.NoError(t, err)

	logger.WithField("request_id", "abc").Info("avatar generated")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), "avatar generated")
	require.Contains(t, string(data), "abc")
}

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	require.Equal(t, "req-1", RequestID(ctx))
	require.Equal(t, "", RequestID(context.Background()))

	entry := Entry(ctx, logrus.New())
	require.Equal(t, "req-1", entry.Data[RequestIDKey])

	entry = Entry(context.Background(), logrus.New())
	require.NotContains(t, entry.Data, RequestIDKey)
}
