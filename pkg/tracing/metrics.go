package tracing

import (
	"context"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	RenderLatencyMs = stats.Float64("emailcomposer/render/latency", "Latency of authoritative renders", stats.UnitMilliseconds)

	KeyFormat = tag.MustNewKey("format")
	KeyStatus = tag.MustNewKey("status")

	RenderLatencyView = &view.View{
		Name:        "emailcomposer/render/latency",
		Description: "Distribution of render latencies",
		Measure:     RenderLatencyMs,
		Aggregation: view.Distribution(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
		TagKeys:     []tag.Key{KeyFormat, KeyStatus},
	}

	RenderCountView = &view.View{
		Name:        "emailcomposer/render/count",
		Description: "Number of renders by format and outcome",
		Measure:     RenderLatencyMs,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{KeyFormat, KeyStatus},
	}
)

// RegisterRenderViews registers the render metric views
func RegisterRenderViews() error {
	return view.Register(RenderLatencyView, RenderCountView)
}

// RecordRender records one render outcome. Nothing is exported until the
// views are registered.
func RecordRender(ctx context.Context, format string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyFormat, format), tag.Upsert(KeyStatus, status)},
		RenderLatencyMs.M(float64(elapsed)/float64(time.Millisecond)),
	)
}
