package main

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Notifuse/emailcomposer/config"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: "test",
		Version:     config.VERSION,
		ConsoleDir:  t.TempDir(),
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 0,
		},
		Render: config.RenderConfig{
			LayoutFormat: emailtemplate.FormatHTML,
		},
		Storage: config.StorageConfig{
			Driver:        "local",
			UploadDir:     t.TempDir(),
			UploadBaseURL: "/uploads/",
			MaxUploadSize: 1 << 20,
		},
	}
}

// fakeSignals delivers os.Interrupt on the first registered channel
func fakeSignals(t *testing.T) {
	original := signalNotify
	t.Cleanup(func() { signalNotify = original })

	var calls int32
	signalNotify = func(c chan<- os.Signal, sig ...os.Signal) {
		if atomic.AddInt32(&calls, 1) == 1 {
			go func() {
				time.Sleep(100 * time.Millisecond)
				c <- os.Interrupt
			}()
		}
	}
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	fakeSignals(t)

	done := make(chan error, 1)
	go func() {
		done <- runServer(createTestConfig(t), logger.NewTestLogger(t))
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("runServer did not return after the shutdown signal")
	}
}

func TestRunServer_InitializationFailure(t *testing.T) {
	cfg := createTestConfig(t)
	cfg.Render.LayoutPath = filepath.Join(t.TempDir(), "missing.html")

	err := runServer(cfg, logger.NewTestLogger(t))
	require.Error(t, err)
}
