package tracing

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/aws"
	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/stackdriver"
	"contrib.go.opencensus.io/exporter/zipkin"
	datadog "github.com/DataDog/opencensus-go-exporter-datadog"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/Notifuse/emailcomposer/config"
)

// InitTracing initializes OpenCensus tracing with the given configuration
func InitTracing(tracingConfig *config.TracingConfig) error {
	if !tracingConfig.Enabled {
		return nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(tracingConfig.SamplingProbability),
	})

	if err := initTraceExporter(tracingConfig); err != nil {
		return err
	}

	if err := initMetricsExporters(tracingConfig); err != nil {
		return err
	}

	if err := RegisterHTTPServerViews(); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}

	log.Printf("OpenCensus initialized with trace exporter: %s, metrics exporters: %s",
		tracingConfig.TraceExporter, tracingConfig.MetricsExporter)
	return nil
}

func initTraceExporter(cfg *config.TracingConfig) error {
	switch cfg.TraceExporter {
	case "jaeger":
		return initJaegerExporter(cfg)
	case "zipkin":
		return initZipkinExporter(cfg)
	case "stackdriver":
		se, err := newStackdriverExporter(cfg)
		if err != nil {
			return err
		}
		trace.RegisterExporter(se)
		return nil
	case "datadog":
		de, err := newDatadogExporter(cfg)
		if err != nil {
			return err
		}
		trace.RegisterExporter(de)
		return nil
	case "xray":
		return initXRayExporter(cfg)
	case "none", "":
		log.Printf("No trace exporter configured")
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

// initMetricsExporters accepts a comma-separated exporter list
func initMetricsExporters(cfg *config.TracingConfig) error {
	if cfg.MetricsExporter == "none" || cfg.MetricsExporter == "" {
		log.Printf("No metrics exporter configured")
		return nil
	}

	for _, exporter := range strings.Split(cfg.MetricsExporter, ",") {
		exporter = strings.TrimSpace(exporter)
		switch exporter {
		case "":
			continue
		case "prometheus":
			if err := initPrometheusExporter(cfg); err != nil {
				return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
			}
		case "stackdriver":
			se, err := newStackdriverExporter(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
			}
			view.RegisterExporter(se)
		case "datadog":
			de, err := newDatadogExporter(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize %s metrics exporter: %w", exporter, err)
			}
			view.RegisterExporter(de)
		default:
			return fmt.Errorf("unsupported metrics exporter: %s", exporter)
		}
		log.Printf("Initialized %s metrics exporter", exporter)
	}

	if err := RegisterRenderViews(); err != nil {
		return fmt.Errorf("failed to register render views: %w", err)
	}
	return nil
}

func initJaegerExporter(cfg *config.TracingConfig) error {
	if cfg.JaegerEndpoint == "" {
		return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
	}

	je, err := jaeger.NewExporter(jaeger.Options{
		CollectorEndpoint: cfg.JaegerEndpoint,
		ServiceName:       cfg.ServiceName,
		Process: jaeger.Process{
			ServiceName: cfg.ServiceName,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	trace.RegisterExporter(je)
	log.Printf("Jaeger exporter initialized with endpoint %s", cfg.JaegerEndpoint)
	return nil
}

func initZipkinExporter(cfg *config.TracingConfig) error {
	if cfg.ZipkinEndpoint == "" {
		return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
	}

	reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
	ze := zipkin.NewExporter(reporter, nil)
	trace.RegisterExporter(ze)
	log.Printf("Zipkin exporter initialized with endpoint %s", cfg.ZipkinEndpoint)
	return nil
}

// newStackdriverExporter builds one exporter usable for both traces and views
func newStackdriverExporter(cfg *config.TracingConfig) (*stackdriver.Exporter, error) {
	if cfg.StackdriverProjectID == "" {
		return nil, fmt.Errorf("Stackdriver project ID is required for Stackdriver exporter")
	}

	se, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:    cfg.StackdriverProjectID,
		MetricPrefix: cfg.ServiceName,
		OnError: func(err error) {
			log.Printf("Stackdriver exporter error: %v", err)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Stackdriver exporter: %w", err)
	}
	log.Printf("Stackdriver exporter initialized with project ID %s", cfg.StackdriverProjectID)
	return se, nil
}

// datadogAgentAddress prefers the Datadog specific address over the shared agent
func datadogAgentAddress(cfg *config.TracingConfig) string {
	if cfg.DatadogAgentAddress != "" {
		return cfg.DatadogAgentAddress
	}
	return cfg.AgentEndpoint
}

func newDatadogExporter(cfg *config.TracingConfig) (*datadog.Exporter, error) {
	addr := datadogAgentAddress(cfg)
	if addr == "" {
		return nil, fmt.Errorf("Datadog agent address is required for Datadog exporter")
	}

	opts := datadog.Options{
		Service:   cfg.ServiceName,
		TraceAddr: addr,
		StatsAddr: addr,
		OnError: func(err error) {
			log.Printf("Datadog exporter error: %v", err)
		},
	}
	if cfg.DatadogAPIKey != "" {
		opts.GlobalTags = map[string]interface{}{"api_key": cfg.DatadogAPIKey}
	}

	de, err := datadog.NewExporter(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create Datadog exporter: %w", err)
	}
	log.Printf("Datadog exporter initialized with agent address %s", addr)
	return de, nil
}

func initXRayExporter(cfg *config.TracingConfig) error {
	if cfg.XRayRegion == "" {
		return fmt.Errorf("AWS region is required for X-Ray exporter")
	}

	xe, err := aws.NewExporter(
		aws.WithRegion(cfg.XRayRegion),
		aws.WithVersion("latest"),
	)
	if err != nil {
		return fmt.Errorf("failed to create AWS X-Ray exporter: %w", err)
	}

	trace.RegisterExporter(xe)
	log.Printf("AWS X-Ray exporter initialized with region %s", cfg.XRayRegion)
	return nil
}

func initPrometheusExporter(cfg *config.TracingConfig) error {
	pe, err := prometheus.NewExporter(prometheus.Options{
		Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		OnError: func(err error) {
			log.Printf("Prometheus exporter error: %v", err)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	view.RegisterExporter(pe)

	if cfg.PrometheusPort <= 0 {
		log.Printf("Prometheus metrics server not started (port not configured)")
		return nil
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", pe)

		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.PrometheusPort),
			Handler: mux,
		}

		log.Printf("Starting Prometheus metrics server on :%d", cfg.PrometheusPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Failed to start Prometheus metrics server: %v", err)
		}
	}()
	return nil
}

// RegisterHTTPServerViews registers views for HTTP server metrics
func RegisterHTTPServerViews() error {
	return view.Register(
		ochttp.ServerRequestCountView,
		ochttp.ServerRequestBytesView,
		ochttp.ServerResponseBytesView,
		ochttp.ServerLatencyView,
		ochttp.ServerRequestCountByMethod,
		ochttp.ServerResponseCountByStatusCode,
	)
}
