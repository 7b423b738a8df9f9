package service

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// FileLayoutSource reads the layout document once and serves it for the
// rest of the process. An empty path serves the built-in layout.
type FileLayoutSource struct {
	path   string
	format emailtemplate.Format
	logger logger.Logger

	once   sync.Once
	layout emailtemplate.Layout
	err    error
}

func NewFileLayoutSource(path string, format emailtemplate.Format, logger logger.Logger) *FileLayoutSource {
	return &FileLayoutSource{
		path:   path,
		format: format,
		logger: logger,
	}
}

func (s *FileLayoutSource) Layout(ctx context.Context) (emailtemplate.Layout, error) {
	s.once.Do(s.load)
	return s.layout, s.err
}

func (s *FileLayoutSource) load() {
	if s.path == "" {
		s.layout = emailtemplate.DefaultLayout(s.format)
		s.logger.WithField("format", string(s.format)).Info("Using built-in layout")
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.err = fmt.Errorf("failed to read layout %s: %w", s.path, err)
		return
	}

	layout := emailtemplate.NewLayout(string(data), s.format)
	if err := layout.Validate(); err != nil {
		s.err = fmt.Errorf("invalid layout %s: %w", s.path, err)
		return
	}

	s.layout = layout
	s.logger.WithFields(map[string]interface{}{
		"path":   s.path,
		"format": string(s.format),
		"bytes":  len(data),
	}).Info("Layout loaded")
}
