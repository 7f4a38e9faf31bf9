package main

import (
	"context"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"avatar-ai/config"
	"avatar-ai/internal/api/telegram"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	return &config.Config{
		HTTPAddr:          addr,
		Detector:          "pigo",
		FacefinderCascade: filepath.Join("..", "cascade", "facefinder"),
		MinDetectionScore: 5,
		Compositor:        "native",
		MaxUploadBytes:    1 << 20,
		MaxConcurrency:    1,
		CORSOrigins:       []string{"*"},
	}
}

func TestRun_BotErrorStopsBeforeServing(t *testing.T) {
	errAuth := errors.New("unauthorized")
	orig := newBot
	newBot = func(string, telegram.AvatarRenderer, *logrus.Logger) (*telegram.Bot, error) {
		return nil, errAuth
	}
	t.Cleanup(func() { newBot = orig })

	cfg := testConfig(t)
	cfg.TelegramToken = "bad-token"

	err := run(context.Background(), cfg, logrus.New())
	require.ErrorIs(t, err, errAuth)

	// сервер не запускался, адрес свободен
	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	require.NoError(t, err)
	require.NoError(t, ln.Close())
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, logrus.New()) }()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", cfg.HTTPAddr)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRun_BuildError(t *testing.T) {
	cfg := testConfig(t)
	cfg.FacefinderCascade = filepath.Join(t.TempDir(), "missing")

	err := run(context.Background(), cfg, logrus.New())
	require.Error(t, err)
}
