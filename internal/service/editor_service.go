package service

import (
	"context"
	"fmt"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/Notifuse/emailcomposer/pkg/tracing"
)

// EditorService applies section operations and scalar setters to the
// session composition and renders previews of it.
type EditorService struct {
	session *domain.Session
	layouts domain.LayoutSource
	logger  logger.Logger
}

func NewEditorService(session *domain.Session, layouts domain.LayoutSource, logger logger.Logger) *EditorService {
	return &EditorService{
		session: session,
		layouts: layouts,
		logger:  logger,
	}
}

func (s *EditorService) GetComposition(ctx context.Context) domain.Composition {
	return s.session.Snapshot()
}

func (s *EditorService) UpdateSettings(ctx context.Context, settings domain.CompositionSettings) (domain.Composition, error) {
	if err := settings.Validate(); err != nil {
		return s.session.Snapshot(), err
	}

	return s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		return settings.Apply(c), nil
	})
}

func (s *EditorService) Reset(ctx context.Context) domain.Composition {
	s.logger.Info("Resetting composition to defaults")
	return s.session.Reset()
}

func (s *EditorService) AddSection(ctx context.Context, kind domain.SectionKind) (domain.Composition, domain.Section, error) {
	var created domain.Section

	c, err := s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		sections, section, err := c.Sections.Add(kind)
		if err != nil {
			return c, err
		}
		created = section
		return c.WithSections(sections), nil
	})
	if err != nil {
		return c, domain.Section{}, err
	}

	s.logger.WithFields(map[string]interface{}{
		"section_id":   created.ID,
		"section_type": string(created.Type),
	}).Debug("Section added")
	return c, created, nil
}

func (s *EditorService) UpdateSection(ctx context.Context, id string, field domain.SectionField, value string) (domain.Composition, error) {
	if err := field.Validate(); err != nil {
		return s.session.Snapshot(), domain.NewValidationError(err.Error())
	}

	return s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		if c.Sections.IndexOf(id) < 0 {
			s.logger.WithField("section_id", id).Debug("Ignoring update for unknown section")
		}
		return c.WithSections(c.Sections.Update(id, field, value)), nil
	})
}

func (s *EditorService) RemoveSection(ctx context.Context, id string) (domain.Composition, error) {
	return s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		return c.WithSections(c.Sections.Remove(id)), nil
	})
}

func (s *EditorService) ReorderSections(ctx context.Context, from, to int) (domain.Composition, error) {
	return s.session.Apply(func(c domain.Composition) (domain.Composition, error) {
		sections, err := c.Sections.Reorder(from, to)
		if err != nil {
			return c, err
		}
		return c.WithSections(sections), nil
	})
}

// Preview renders the approximate document. A nil composition previews the
// session state.
func (s *EditorService) Preview(ctx context.Context, composition *domain.Composition) (string, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "EditorService", "Preview")
	defer span.End()

	c := s.session.Snapshot()
	if composition != nil {
		if err := composition.Validate(); err != nil {
			tracing.MarkSpanError(ctx, err)
			return "", err
		}
		c = *composition
	}

	layout, err := s.layouts.Layout(ctx)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		s.logger.Error(fmt.Sprintf("Failed to load layout: %v", err))
		return "", fmt.Errorf("failed to load layout: %w", err)
	}

	html, err := emailtemplate.Preview(layout, c.TemplateData())
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return "", fmt.Errorf("failed to render preview: %w", err)
	}

	tracing.AddAttribute(ctx, "preview.sections", len(c.Sections))
	return html, nil
}
