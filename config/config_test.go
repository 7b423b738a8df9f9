package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
)

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg = &Config{Environment: "production"}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())

	cfg = &Config{Environment: "staging"}
	assert.False(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.False(t, cfg.Server.SSL.Enabled)
	assert.Equal(t, "*", cfg.Server.CORSAllowOrigin)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, VERSION, cfg.Version)

	assert.Empty(t, cfg.Render.LayoutPath)
	assert.Equal(t, emailtemplate.FormatHTML, cfg.Render.LayoutFormat)
	assert.Equal(t, 5*time.Second, cfg.Render.Timeout)
	assert.Equal(t, emailtemplate.DefaultMaxTemplateSize, cfg.Render.MaxTemplateSize)
	assert.Equal(t, int64(4), cfg.Render.MaxConcurrent)

	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "/uploads/", cfg.Storage.UploadBaseURL)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxUploadSize)

	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "emailcomposer-api", cfg.Tracing.ServiceName)
	assert.Equal(t, "none", cfg.Tracing.TraceExporter)
	assert.Equal(t, "localhost:8126", cfg.Tracing.DatadogAgentAddress)
	assert.Equal(t, "us-west-2", cfg.Tracing.XRayRegion)
	assert.Empty(t, cfg.Tracing.StackdriverProjectID)
}

func TestLoadWithOptions_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("CORS_ALLOW_ORIGIN", "https://console.example.com")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("LAYOUT_PATH", "/etc/composer/layout.mjml")
	t.Setenv("LAYOUT_FORMAT", "MJML")
	t.Setenv("RENDER_TIMEOUT", "2s")
	t.Setenv("RENDER_MAX_CONCURRENT", "8")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("S3_BUCKET", "email-images")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_FORCE_PATH_STYLE", "true")
	t.Setenv("UPLOAD_MAX_SIZE", "1024")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_TRACE_EXPORTER", "zipkin")
	t.Setenv("TRACING_METRICS_EXPORTER", "prometheus,stackdriver")
	t.Setenv("TRACING_STACKDRIVER_PROJECT_ID", "composer-prod")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "https://console.example.com", cfg.Server.CORSAllowOrigin)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "/etc/composer/layout.mjml", cfg.Render.LayoutPath)
	assert.Equal(t, emailtemplate.FormatMJML, cfg.Render.LayoutFormat)
	assert.Equal(t, 2*time.Second, cfg.Render.Timeout)
	assert.Equal(t, int64(8), cfg.Render.MaxConcurrent)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "email-images", cfg.Storage.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
	assert.Equal(t, "http://minio:9000", cfg.Storage.S3.Endpoint)
	assert.True(t, cfg.Storage.S3.ForcePathStyle)
	assert.Equal(t, int64(1024), cfg.Storage.MaxUploadSize)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "zipkin", cfg.Tracing.TraceExporter)
	assert.Equal(t, "prometheus,stackdriver", cfg.Tracing.MetricsExporter)
	assert.Equal(t, "composer-prod", cfg.Tracing.StackdriverProjectID)
}

func TestLoadWithOptions_Invalid(t *testing.T) {
	t.Run("layout format", func(t *testing.T) {
		t.Setenv("LAYOUT_FORMAT", "handlebars")
		_, err := LoadWithOptions(LoadOptions{})
		assert.ErrorIs(t, err, emailtemplate.ErrUnsupportedLayoutFormat)
	})

	t.Run("storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "ftp")
		_, err := LoadWithOptions(LoadOptions{})
		assert.Error(t, err)
	})

	t.Run("s3 without bucket", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "s3")
		_, err := LoadWithOptions(LoadOptions{})
		assert.ErrorContains(t, err, "S3_BUCKET")
	})
}

func TestLoadWithOptions_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVER_PORT=7070\nLOG_LEVEL=debug\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.test"})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadWithOptions_MissingEnvFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = LoadWithOptions(LoadOptions{EnvFile: ".env"})
	assert.NoError(t, err)
}
