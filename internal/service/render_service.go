package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Notifuse/emailcomposer/internal/domain"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
	"github.com/Notifuse/emailcomposer/pkg/logger"
	"github.com/Notifuse/emailcomposer/pkg/tracing"
)

const DefaultMaxConcurrentRenders = 4

// RenderService produces the authoritative document from the layout source
type RenderService struct {
	layouts     domain.LayoutSource
	renderer    *emailtemplate.LiquidRenderer
	compileMJML func(ctx context.Context, source string) (string, error)
	sem         *semaphore.Weighted
	logger      logger.Logger
}

type RenderServiceOption func(*RenderService)

func WithRenderer(r *emailtemplate.LiquidRenderer) RenderServiceOption {
	return func(s *RenderService) {
		s.renderer = r
	}
}

// WithMaxConcurrentRenders caps renders running at the same time. Extra
// requests wait for a slot until their context is done.
func WithMaxConcurrentRenders(n int64) RenderServiceOption {
	return func(s *RenderService) {
		if n > 0 {
			s.sem = semaphore.NewWeighted(n)
		}
	}
}

func WithMJMLCompiler(fn func(ctx context.Context, source string) (string, error)) RenderServiceOption {
	return func(s *RenderService) {
		s.compileMJML = fn
	}
}

func NewRenderService(layouts domain.LayoutSource, logger logger.Logger, opts ...RenderServiceOption) *RenderService {
	s := &RenderService{
		layouts:     layouts,
		renderer:    emailtemplate.NewLiquidRenderer(),
		compileMJML: emailtemplate.CompileMJML,
		sem:         semaphore.NewWeighted(DefaultMaxConcurrentRenders),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RenderService) Render(ctx context.Context, composition domain.Composition) (result *domain.RenderResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "RenderService", "Render")
	start := time.Now()
	format := emailtemplate.FormatHTML
	defer func() {
		tracing.RecordRender(ctx, string(format), time.Since(start), err)
		tracing.EndSpan(span, err)
	}()

	if err := composition.Validate(); err != nil {
		return nil, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, &domain.ErrRenderFailed{Stage: "queue", Err: err}
	}
	// the slot is shared by this call and the Liquid goroutine, which can
	// outlive a timed out render
	release := releaseAfter(2, func() { s.sem.Release(1) })
	defer release()

	layout, err := s.layouts.Layout(ctx)
	if err != nil {
		release()
		s.logger.Error(fmt.Sprintf("Failed to load layout: %v", err))
		return nil, &domain.ErrRenderFailed{Stage: "layout", Err: err}
	}
	format = layout.Format

	html, err := s.renderer.RenderHolding(ctx, layout, composition.TemplateData(), release)
	if err != nil {
		s.logger.WithField("sections", len(composition.Sections)).Error(fmt.Sprintf("Failed to render layout: %v", err))
		return nil, &domain.ErrRenderFailed{Stage: "liquid", Err: err}
	}

	if layout.Format == emailtemplate.FormatMJML {
		html, err = s.compileMJML(ctx, html)
		if err != nil {
			s.logger.Error(fmt.Sprintf("Failed to compile MJML: %v", err))
			return nil, &domain.ErrRenderFailed{Stage: "mjml", Err: err}
		}
	}

	result = &domain.RenderResult{
		HTML:        html,
		Filename:    domain.RenderFilename,
		ContentType: domain.RenderContentType,
	}

	summary, inspectErr := emailtemplate.Inspect(html)
	if inspectErr != nil {
		s.logger.Warn(fmt.Sprintf("Failed to inspect rendered document: %v", inspectErr))
	} else {
		result.Images = len(summary.Images)
		result.Links = len(summary.Links)
		tracing.AddAttribute(ctx, "render.images", result.Images)
		tracing.AddAttribute(ctx, "render.links", result.Links)
	}
	tracing.AddAttribute(ctx, "render.bytes", len(html))

	s.logger.WithFields(map[string]interface{}{
		"sections":    len(composition.Sections),
		"bytes":       len(html),
		"images":      result.Images,
		"links":       result.Links,
		"format":      string(format),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Email rendered")

	return result, nil
}

// releaseAfter returns a func that runs fn on its n-th call
func releaseAfter(n int32, fn func()) func() {
	var left atomic.Int32
	left.Store(n)
	return func() {
		if left.Add(-1) == 0 {
			fn()
		}
	}
}
