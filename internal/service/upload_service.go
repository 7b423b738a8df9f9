package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/Notifuse/emailcomposer/pkg/storage"
	"github.com/Notifuse/emailcomposer/pkg/tracing"
)

const (
	DefaultMaxUploadSize = 10 << 20
	sniffLen             = 512
)

// UploadService stores images and points image sections at them
type UploadService struct {
	session   *domain.Session
	storage   storage.FileStorage
	maxSize   int64
	keyPrefix string
	logger    logger.Logger
}

func NewUploadService(session *domain.Session, fileStorage storage.FileStorage, maxSize int64, keyPrefix string, logger logger.Logger) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return &UploadService{
		session:   session,
		storage:   fileStorage,
		maxSize:   maxSize,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// MaxSize is the largest accepted file in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// UploadImage stores the file and sets it as the section URL. Any failure
// returns the composition as it was before the call.
func (s *UploadService) UploadImage(ctx context.Context, req domain.UploadImageRequest) (composition domain.Composition, url string, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "UploadService", "UploadImage")
	defer func() { tracing.EndSpan(span, err) }()

	current := s.session.Snapshot()

	if req.SectionID == "" {
		return current, "", domain.NewValidationError("section_id is required")
	}
	if req.Body == nil {
		return current, "", domain.NewValidationError("file is required")
	}

	section, ok := current.Sections.Get(req.SectionID)
	if !ok {
		return current, "", &domain.ErrSectionNotFound{ID: req.SectionID}
	}
	if section.Type != domain.SectionKindImage {
		return current, "", domain.NewValidationError(fmt.Sprintf("section %s is a %s section, images go to image sections", section.ID, section.Type))
	}
	if req.Size > s.maxSize {
		return current, "", domain.NewValidationError(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxSize))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(req.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return current, "", domain.NewValidationError("file is empty")
		}
		return current, "", fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	mimeType, err := storage.DetectImageType(head, req.Filename)
	if err != nil {
		return current, "", domain.NewValidationError(fmt.Sprintf("file is not a supported image: %v", err))
	}

	body := &sizeLimitedReader{
		r:   io.MultiReader(bytes.NewReader(head), req.Body),
		max: s.maxSize,
	}
	key := storage.ObjectKey(s.keyPrefix, mimeType)

	url, err = s.storage.Save(ctx, key, mimeType, body)
	if body.exceeded {
		return current, "", domain.NewValidationError(fmt.Sprintf("file exceeds maximum size of %d bytes", s.maxSize))
	}
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"section_id": req.SectionID,
			"key":        key,
		}).Error(fmt.Sprintf("Failed to store upload: %v", err))
		return current, "", &domain.ErrUploadFailed{SectionID: req.SectionID, Err: err}
	}
	url = storage.AbsoluteURL(req.PublicOrigin, url)

	composition, err = s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		// the section may have been removed while the file was stored
		if c.Sections.IndexOf(req.SectionID) < 0 {
			return c, &domain.ErrSectionNotFound{ID: req.SectionID}
		}
		return c.WithSections(c.Sections.Update(req.SectionID, domain.SectionFieldURL, url)), nil
	})
	if err != nil {
		return composition, "", err
	}

	s.logger.WithFields(map[string]interface{}{
		"section_id": req.SectionID,
		"url":        url,
		"mime_type":  mimeType,
		"bytes":      body.read,
	}).Info("Image uploaded")
	return composition, url, nil
}

// sizeLimitedReader fails once more than max bytes have been read
type sizeLimitedReader struct {
	r        io.Reader
	max      int64
	read     int64
	exceeded bool
}

func (l *sizeLimitedReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.max {
		l.exceeded = true
		return n, storage.ErrFileTooLarge
	}
	return n, err
}
