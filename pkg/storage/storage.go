// Package storage persists uploaded files and returns the public URL they
// are served from.
package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -destination mocks/mock_file_storage.go -package mocks github.com/Notifuse/emailcomposer/pkg/storage FileStorage

var (
	ErrInvalidConfig      = errors.New("invalid storage configuration")
	ErrInvalidKey         = errors.New("invalid object key")
	ErrFileTooLarge       = errors.New("file size exceeds maximum allowed size")
	ErrMIMETypeNotAllowed = errors.New("MIME type is not allowed")
	ErrFailedToWriteFile  = errors.New("failed to write file")
	ErrUploadFailed       = errors.New("upload failed")
)

// FileStorage stores one object and returns a dereferenceable URL for it
type FileStorage interface {
	Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

var imageExtensions = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/bmp":     ".bmp",
	"image/svg+xml": ".svg",
}

// DetectImageType sniffs the leading bytes of a file. It returns the MIME
// type when it is an image type accepted for email bodies.
func DetectImageType(head []byte, filename string) (string, error) {
	mimeType := http.DetectContentType(head)
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	// svg sniffs as text, trust the extension only for xml-looking content
	if strings.EqualFold(path.Ext(filename), ".svg") &&
		(mimeType == "text/xml" || mimeType == "text/plain") {
		mimeType = "image/svg+xml"
	}

	if _, ok := imageExtensions[mimeType]; !ok {
		return "", ErrMIMETypeNotAllowed
	}
	return mimeType, nil
}

// ObjectKey builds a collision free key for an uploaded image
func ObjectKey(prefix, mimeType string) string {
	key := uuid.NewString() + imageExtensions[mimeType]
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		return prefix + "/" + key
	}
	return key
}

// cleanKey rejects keys that could escape the storage root
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// AbsoluteURL resolves a storage URL without a host against origin. Images
// end up in downloaded documents, where a host relative URL does not resolve.
func AbsoluteURL(origin, raw string) string {
	ref, err := url.Parse(raw)
	if err != nil || ref.IsAbs() || origin == "" {
		return raw
	}
	base, err := url.Parse(origin)
	if err != nil || base.Host == "" {
		return raw
	}
	return base.ResolveReference(ref).String()
}

func joinURL(base, key string) string {
	if base == "" {
		return "/" + key
	}
	return strings.TrimSuffix(base, "/") + "/" + key
}
