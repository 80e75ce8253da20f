// Package logger wraps slog with the context plumbing the editor backend
// uses: request ids on the HTTP path and template ids on the publish path.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// contextKey is a private type so context keys cannot collide.
type contextKey string

const (
	// RequestIDKey is the context key for HTTP request ids.
	RequestIDKey contextKey = "request_id"
	// TemplateIDKey is the context key for the template a publish job or
	// playout command concerns.
	TemplateIDKey contextKey = "template_id"
)

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string
	// Format is json or text.
	Format string
	// Output defaults to os.Stdout.
	Output io.Writer
	// AddSource adds file:line to records.
	AddSource bool
	// ServiceName is attached to every record.
	ServiceName string
}

// DefaultConfig reads the logger configuration from the environment.
func DefaultConfig() Config {
	return Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "json"),
		Output:      os.Stdout,
		AddSource:   getEnv("LOG_SOURCE", "false") == "true",
		ServiceName: getEnv("SERVICE_NAME", "ograf-editor"),
	}
}

// New creates a Logger with the given configuration.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}

	if cfg.ServiceName != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", cfg.ServiceName),
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewDefault creates a logger from the environment configuration.
func NewDefault() *Logger {
	return New(DefaultConfig())
}

// WithRequestID attaches a request id.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("request_id", requestID))}
}

// WithTemplateID attaches a template id.
func (l *Logger) WithTemplateID(templateID string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("template_id", templateID))}
}

// WithComponent attaches a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With(slog.String("component", component))}
}

// WithError attaches an error; nil is a no-op.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{Logger: l.Logger.With(slog.String("error", err.Error()))}
}

// FromContext enriches the logger with the ids carried by ctx.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	out := l
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		out = out.WithRequestID(reqID)
	}
	if tplID, ok := ctx.Value(TemplateIDKey).(string); ok && tplID != "" {
		out = out.WithTemplateID(tplID)
	}
	return out
}

// LogFatal logs at error level and exits the process.
func (l *Logger) LogFatal(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Error(msg, args...)
	os.Exit(1)
}

// ContextWithRequestID stores a request id in ctx.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// ContextWithTemplateID stores a template id in ctx.
func ContextWithTemplateID(ctx context.Context, templateID string) context.Context {
	return context.WithValue(ctx, TemplateIDKey, templateID)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
