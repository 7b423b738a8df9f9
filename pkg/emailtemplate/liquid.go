package emailtemplate

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osteele/liquid"
)

// Security limits for Liquid layout rendering
const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 256 * 1024 // 256KB
)

// LiquidRenderer evaluates layouts with the full Liquid language. Unknown
// placeholders render empty, like any Liquid engine without strict mode.
type LiquidRenderer struct {
	timeout time.Duration
	maxSize int
	engine  *liquid.Engine

	mu       sync.Mutex
	source   string
	compiled *liquid.Template
}

type LiquidOption func(*LiquidRenderer)

// WithRenderTimeout bounds a single render
func WithRenderTimeout(timeout time.Duration) LiquidOption {
	return func(r *LiquidRenderer) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithMaxTemplateSize bounds the layout source size in bytes
func WithMaxTemplateSize(size int) LiquidOption {
	return func(r *LiquidRenderer) {
		if size > 0 {
			r.maxSize = size
		}
	}
}

func NewLiquidRenderer(opts ...LiquidOption) *LiquidRenderer {
	engine := liquid.NewEngine()

	r := &LiquidRenderer{
		timeout: DefaultRenderTimeout,
		maxSize: DefaultMaxTemplateSize,
		engine:  engine,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.registerFilters()
	return r
}

// registerFilters exposes the fragment table to layouts:
// {{ section | section_html }} renders a section exactly like the preview does.
func (r *LiquidRenderer) registerFilters() {
	r.engine.RegisterFilter("section_html", func(value interface{}) string {
		fields, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		str := func(key string) string {
			s, _ := fields[key].(string)
			return s
		}
		return RenderFragment(Block{
			ID:      str("id"),
			Kind:    str("type"),
			Content: str("content"),
			URL:     str("url"),
		})
	})
}

func (r *LiquidRenderer) parse(source string) (*liquid.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.compiled != nil && r.source == source {
		return r.compiled, nil
	}

	tpl, err := r.engine.ParseString(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	r.source = source
	r.compiled = tpl
	return tpl, nil
}

// Render evaluates the layout for the email. Nothing is returned on error.
func (r *LiquidRenderer) Render(ctx context.Context, layout Layout, email Email) (string, error) {
	return r.RenderHolding(ctx, layout, email, nil)
}

// RenderHolding is Render with a release hook. release runs exactly once,
// when the evaluation goroutine exits. After a timeout that is later than
// the return, so a caller guarding renders with a slot keeps it until the
// work has actually stopped.
func (r *LiquidRenderer) RenderHolding(ctx context.Context, layout Layout, email Email, release func()) (string, error) {
	if release == nil {
		release = func() {}
	}

	if len(layout.Source) > r.maxSize {
		release()
		return "", fmt.Errorf("layout size (%d bytes) exceeds maximum allowed size (%d bytes)", len(layout.Source), r.maxSize)
	}
	if err := layout.Validate(); err != nil {
		release()
		return "", err
	}

	tpl, err := r.parse(layout.Source)
	if err != nil {
		release()
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer release()
		defer func() {
			if rec := recover(); rec != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", rec)
			}
		}()

		out, err := tpl.RenderString(email.Bindings())
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- out
	}()

	select {
	case out := <-resultChan:
		return out, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("liquid rendering timeout after %v", r.timeout)
		}
		return "", ctx.Err()
	}
}
