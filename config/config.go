package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Notifuse/emailcomposer/pkg/emailtemplate"
)

const VERSION = "1.0"

type Config struct {
	Server      ServerConfig
	Render      RenderConfig
	Storage     StorageConfig
	Tracing     TracingConfig
	Environment string
	APIEndpoint string
	ConsoleDir  string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port            int
	Host            string
	SSL             SSLConfig
	CORSAllowOrigin string
}

type SSLConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

type RenderConfig struct {
	LayoutPath      string // empty uses the built-in layout
	LayoutFormat    emailtemplate.Format
	Timeout         time.Duration
	MaxTemplateSize int
	MaxConcurrent   int64
}

type StorageConfig struct {
	Driver        string // "local" or "s3"
	UploadDir     string
	UploadBaseURL string
	MaxUploadSize int64
	S3            S3Config
}

type S3Config struct {
	Bucket         string
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	PublicURL      string
	ForcePathStyle bool
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter: "jaeger", "zipkin", "stackdriver", "datadog", "xray", "none"
	TraceExporter string

	JaegerEndpoint string
	ZipkinEndpoint string

	StackdriverProjectID string

	DatadogAgentAddress string
	DatadogAPIKey       string

	XRayRegion string

	// Fallback agent address for exporters that ship through a local agent
	AgentEndpoint string

	// Comma-separated: "prometheus", "stackdriver", "datadog", "none"
	MetricsExporter string
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)
	v.SetDefault("CONSOLE_DIR", "console/dist")

	// Render defaults
	v.SetDefault("LAYOUT_PATH", "")
	v.SetDefault("LAYOUT_FORMAT", "html")
	v.SetDefault("RENDER_TIMEOUT", "5s")
	v.SetDefault("RENDER_MAX_TEMPLATE_SIZE", emailtemplate.DefaultMaxTemplateSize)
	v.SetDefault("RENDER_MAX_CONCURRENT", 4)

	// Storage defaults
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_BASE_URL", "/uploads/")
	v.SetDefault("UPLOAD_MAX_SIZE", 10<<20)
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_FORCE_PATH_STYLE", false)

	// Default tracing config
	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "emailcomposer-api")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_STACKDRIVER_PROJECT_ID", "")
	v.SetDefault("TRACING_DATADOG_AGENT_ADDRESS", "localhost:8126")
	v.SetDefault("TRACING_DATADOG_API_KEY", "")
	v.SetDefault("TRACING_XRAY_REGION", "us-west-2")
	v.SetDefault("TRACING_AGENT_ENDPOINT", "localhost:8126")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	layoutFormat, err := emailtemplate.ParseFormat(v.GetString("LAYOUT_FORMAT"))
	if err != nil {
		return nil, fmt.Errorf("error parsing LAYOUT_FORMAT: %w", err)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER")))
	switch driver {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", driver)
	}
	if driver == "s3" && v.GetString("S3_BUCKET") == "" {
		return nil, fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER is s3")
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
			SSL: SSLConfig{
				Enabled:  v.GetBool("SSL_ENABLED"),
				CertFile: v.GetString("SSL_CERT_FILE"),
				KeyFile:  v.GetString("SSL_KEY_FILE"),
			},
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Render: RenderConfig{
			LayoutPath:      v.GetString("LAYOUT_PATH"),
			LayoutFormat:    layoutFormat,
			Timeout:         v.GetDuration("RENDER_TIMEOUT"),
			MaxTemplateSize: v.GetInt("RENDER_MAX_TEMPLATE_SIZE"),
			MaxConcurrent:   v.GetInt64("RENDER_MAX_CONCURRENT"),
		},
		Storage: StorageConfig{
			Driver:        driver,
			UploadDir:     v.GetString("UPLOAD_DIR"),
			UploadBaseURL: v.GetString("UPLOAD_BASE_URL"),
			MaxUploadSize: v.GetInt64("UPLOAD_MAX_SIZE"),
			S3: S3Config{
				Bucket:         v.GetString("S3_BUCKET"),
				Region:         v.GetString("S3_REGION"),
				Endpoint:       v.GetString("S3_ENDPOINT"),
				AccessKey:      v.GetString("S3_ACCESS_KEY"),
				SecretKey:      v.GetString("S3_SECRET_KEY"),
				PublicURL:      v.GetString("S3_PUBLIC_URL"),
				ForcePathStyle: v.GetBool("S3_FORCE_PATH_STYLE"),
			},
		},
		Tracing: TracingConfig{
			Enabled:              v.GetBool("TRACING_ENABLED"),
			ServiceName:          v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability:  v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:        v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:       v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:       v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			StackdriverProjectID: v.GetString("TRACING_STACKDRIVER_PROJECT_ID"),
			DatadogAgentAddress:  v.GetString("TRACING_DATADOG_AGENT_ADDRESS"),
			DatadogAPIKey:        v.GetString("TRACING_DATADOG_API_KEY"),
			XRayRegion:           v.GetString("TRACING_XRAY_REGION"),
			AgentEndpoint:        v.GetString("TRACING_AGENT_ENDPOINT"),
			MetricsExporter:      v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:       v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		APIEndpoint: v.GetString("API_ENDPOINT"),
		ConsoleDir:  v.GetString("CONSOLE_DIR"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
