package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Notifuse/emailcomposer/internal/domain"
	domainmocks "github.com/Notifuse/emailcomposer/internal/domain/mocks"
	"github.com/Notifuse/emailcomposer/internal/service"
	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
)

func setupRenderServiceTest(t *testing.T, opts ...service.RenderServiceOption) (*service.RenderService, *domainmocks.MockLayoutSource) {
	ctrl := gomock.NewController(t)
	layouts := domainmocks.NewMockLayoutSource(ctrl)
	return service.NewRenderService(layouts, newQuietLogger(ctrl), opts...), layouts
}

func TestRenderService_Render(t *testing.T) {
	ctx := context.Background()

	t.Run("single image reference", func(t *testing.T) {
		svc, layouts := setupRenderServiceTest(t)
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatHTML), nil)

		c := domain.NewComposition().WithSections(domain.Sections{
			{ID: "img", Type: domain.SectionKindImage, URL: "https://x/y.png"},
		})

		result, err := svc.Render(ctx, c)
		require.NoError(t, err)
		assert.Equal(t, "emailTemplate.html", result.Filename)
		assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
		assert.Equal(t, 1, strings.Count(result.HTML, "https://x/y.png"))
		assert.Equal(t, 1, result.Images)
		assert.NotContains(t, result.HTML, "{%")
		assert.NotContains(t, result.HTML, "endfor")
	})

	t.Run("empty composition", func(t *testing.T) {
		svc, layouts := setupRenderServiceTest(t)
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatHTML), nil)

		result, err := svc.Render(ctx, domain.NewComposition())
		require.NoError(t, err)
		assert.Contains(t, result.HTML, "© 2025 My Company")
		assert.Equal(t, 0, result.Images)
	})

	t.Run("invalid composition is rejected before rendering", func(t *testing.T) {
		svc, _ := setupRenderServiceTest(t)
		c := domain.NewComposition().WithSections(domain.Sections{
			{ID: "a", Type: domain.SectionKindText},
			{ID: "a", Type: domain.SectionKindText},
		})

		result, err := svc.Render(ctx, c)
		assert.Nil(t, result)
		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("layout source failure", func(t *testing.T) {
		svc, layouts := setupRenderServiceTest(t)
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.Layout{}, errors.New("no such file"))

		result, err := svc.Render(ctx, domain.NewComposition())
		assert.Nil(t, result)
		var rerr *domain.ErrRenderFailed
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "layout", rerr.Stage)
	})

	t.Run("malformed layout returns no document", func(t *testing.T) {
		svc, layouts := setupRenderServiceTest(t)
		layouts.EXPECT().Layout(gomock.Any()).Return(
			emailtemplate.NewLayout(`{{ subtitle }}{% for s in sections %}{% endfor %}`, emailtemplate.FormatHTML), nil)

		result, err := svc.Render(ctx, domain.NewComposition())
		assert.Nil(t, result)
		var rerr *domain.ErrRenderFailed
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "liquid", rerr.Stage)
	})

	t.Run("mjml layouts are compiled", func(t *testing.T) {
		var compiled string
		svc, layouts := setupRenderServiceTest(t, service.WithMJMLCompiler(func(ctx context.Context, source string) (string, error) {
			compiled = source
			return "<html>compiled</html>", nil
		}))
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatMJML), nil)

		result, err := svc.Render(ctx, domain.NewComposition())
		require.NoError(t, err)
		assert.Equal(t, "<html>compiled</html>", result.HTML)
		assert.Contains(t, compiled, "<mjml>")
	})

	t.Run("mjml failure", func(t *testing.T) {
		svc, layouts := setupRenderServiceTest(t, service.WithMJMLCompiler(func(ctx context.Context, source string) (string, error) {
			return "", errors.New("mjml crashed")
		}))
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatMJML), nil)

		result, err := svc.Render(ctx, domain.NewComposition())
		assert.Nil(t, result)
		var rerr *domain.ErrRenderFailed
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, "mjml", rerr.Stage)
	})
}

func TestRenderService_ConcurrencyLimit(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	var mu sync.Mutex
	running, peak := 0, 0

	svc, layouts := setupRenderServiceTest(t,
		service.WithMaxConcurrentRenders(1),
		service.WithMJMLCompiler(func(ctx context.Context, source string) (string, error) {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()
			started <- struct{}{}
			<-release
			mu.Lock()
			running--
			mu.Unlock()
			return "<html></html>", nil
		}),
	)
	layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatMJML), nil).Times(2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Render(context.Background(), domain.NewComposition())
			assert.NoError(t, err)
		}()
	}

	<-started
	select {
	case <-started:
		t.Fatal("second render started while the first held the only slot")
	case <-time.After(50 * time.Millisecond):
	}
	release <- struct{}{}
	<-started
	release <- struct{}{}
	wg.Wait()

	assert.Equal(t, 1, peak)
}

func TestRenderService_WaitingRenderHonorsContext(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc, layouts := setupRenderServiceTest(t,
		service.WithMaxConcurrentRenders(1),
		service.WithMJMLCompiler(func(ctx context.Context, source string) (string, error) {
			close(started)
			<-release
			return "<html></html>", nil
		}),
	)
	layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.DefaultLayout(emailtemplate.FormatMJML), nil).Times(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.Render(context.Background(), domain.NewComposition())
	}()

	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	result, err := svc.Render(ctx, domain.NewComposition())
	assert.Nil(t, result)
	var rerr *domain.ErrRenderFailed
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "queue", rerr.Stage)

	close(release)
	<-done
}

func TestRenderService_TimedOutRenderKeepsSlot(t *testing.T) {
	slow := emailtemplate.NewLayout(`{% for s in sections %}{% endfor %}{% for i in (1..1000000) %}{{ i }}{% endfor %}`, emailtemplate.FormatHTML)

	svc, layouts := setupRenderServiceTest(t,
		service.WithMaxConcurrentRenders(1),
		service.WithRenderer(emailtemplate.NewLiquidRenderer(emailtemplate.WithRenderTimeout(time.Millisecond))),
	)
	gomock.InOrder(
		layouts.EXPECT().Layout(gomock.Any()).Return(slow, nil),
		layouts.EXPECT().Layout(gomock.Any()).Return(emailtemplate.NewLayout(`{% for s in sections %}{% endfor %}`, emailtemplate.FormatHTML), nil),
	)

	_, err := svc.Render(context.Background(), domain.NewComposition())
	var rerr *domain.ErrRenderFailed
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "liquid", rerr.Stage)
	assert.Contains(t, err.Error(), "timeout")

	// the abandoned evaluation is still running and owns the only slot
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = svc.Render(ctx, domain.NewComposition())
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "queue", rerr.Stage)

	// once it finishes the slot comes back
	result, err := svc.Render(context.Background(), domain.NewComposition())
	require.NoError(t, err)
	assert.NotNil(t, result)
}
