package domain

import (
	"context"
	"io"

	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
)

//go:generate mockgen -destination mocks/mock_editor_service.go -package mocks github.com/Notifuse/emailcomposer/internal/domain EditorService
//go:generate mockgen -destination mocks/mock_render_service.go -package mocks github.com/Notifuse/emailcomposer/internal/domain RenderService
//go:generate mockgen -destination mocks/mock_upload_service.go -package mocks github.com/Notifuse/emailcomposer/internal/domain UploadService
//go:generate mockgen -destination mocks/mock_snapshot_service.go -package mocks github.com/Notifuse/emailcomposer/internal/domain SnapshotService
//go:generate mockgen -destination mocks/mock_layout_source.go -package mocks github.com/Notifuse/emailcomposer/internal/domain LayoutSource

// EditorService applies editing operations to the session composition
type EditorService interface {
	// GetComposition returns the current composition
	GetComposition(ctx context.Context) Composition

	// UpdateSettings sets the scalar fields present in settings
	UpdateSettings(ctx context.Context, settings CompositionSettings) (Composition, error)

	// Reset restores the default composition
	Reset(ctx context.Context) Composition

	// AddSection appends a new section of the given kind
	AddSection(ctx context.Context, kind SectionKind) (Composition, Section, error)

	// UpdateSection replaces one field of a section. Unknown ids are ignored.
	UpdateSection(ctx context.Context, id string, field SectionField, value string) (Composition, error)

	// RemoveSection drops a section. Unknown ids are ignored.
	RemoveSection(ctx context.Context, id string) (Composition, error)

	// ReorderSections moves the section at from to position to
	ReorderSections(ctx context.Context, from, to int) (Composition, error)

	// Preview renders the approximate document of the given composition, or
	// of the session composition when nil
	Preview(ctx context.Context, composition *Composition) (string, error)
}

// RenderResult is a rendered document ready for download
type RenderResult struct {
	HTML        string
	Filename    string
	ContentType string
	Images      int
	Links       int
}

const (
	RenderFilename    = "emailTemplate.html"
	RenderContentType = "text/html; charset=utf-8"
)

// RenderService produces the authoritative document
type RenderService interface {
	// Render evaluates the layout against the composition. No partial
	// document is returned on error.
	Render(ctx context.Context, composition Composition) (*RenderResult, error)
}

// UploadImageRequest carries one uploaded file for an image section
type UploadImageRequest struct {
	SectionID string
	Filename  string
	Size      int64
	Body      io.Reader

	// PublicOrigin resolves storage URLs that carry no host, e.g.
	// "https://composer.example.com". Empty keeps them as returned.
	PublicOrigin string
}

// UploadService stores images and points sections at them
type UploadService interface {
	// UploadImage stores the file and sets the section URL. A failed upload
	// leaves the composition unchanged.
	UploadImage(ctx context.Context, req UploadImageRequest) (Composition, string, error)
}

// SnapshotAck acknowledges a logged composition snapshot
type SnapshotAck struct {
	Logged   bool   `json:"logged"`
	Title    string `json:"title"`
	Sections int    `json:"sections"`
}

// SnapshotService logs composition snapshots. Nothing is read back.
type SnapshotService interface {
	Log(ctx context.Context, raw []byte) (*SnapshotAck, error)
}

// LayoutSource supplies the layout document both renderers consume
type LayoutSource interface {
	Layout(ctx context.Context) (emailtemplate.Layout, error)
}
