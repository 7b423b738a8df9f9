package service

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/logger"
)

// SnapshotService writes composition snapshots to the log. Nothing is
// persisted.
type SnapshotService struct {
	logger logger.Logger
}

func NewSnapshotService(logger logger.Logger) *SnapshotService {
	return &SnapshotService{logger: logger}
}

func (s *SnapshotService) Log(ctx context.Context, raw []byte) (*domain.SnapshotAck, error) {
	if !gjson.ValidBytes(raw) {
		return nil, domain.NewValidationError("snapshot is not valid JSON")
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return nil, domain.NewValidationError("snapshot must be a JSON object")
	}

	kinds := map[string]interface{}{}
	count := 0
	doc.Get("sections").ForEach(func(_, section gjson.Result) bool {
		count++
		kind := section.Get("type").String()
		n, _ := kinds[kind].(int)
		kinds[kind] = n + 1
		return true
	})

	title := doc.Get("title").String()
	s.logger.WithFields(map[string]interface{}{
		"title":         title,
		"bg_color":      doc.Get("bgColor").String(),
		"text_color":    doc.Get("textColor").String(),
		"sections":      count,
		"section_types": kinds,
		"snapshot":      doc.Raw,
	}).Info("Composition snapshot")

	return &domain.SnapshotAck{
		Logged:   true,
		Title:    title,
		Sections: count,
	}, nil
}
