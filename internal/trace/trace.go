package trace

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	sentryotel "github.com/getsentry/sentry-go/otel"
	"github.com/pterm/pterm"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/PisklovCor/architecture-pro-bionicpro/internal/build"
)

const (
	tracerName = "github.com/PisklovCor/architecture-pro-bionicpro/trace"

	// EnvDSN holds the Sentry DSN. Tracing is disabled when it is empty.
	EnvDSN = "SENTRY_DSN"
	// EnvDNT disables tracing when set to any value.
	EnvDNT = "DO_NOT_TRACK"
)

var (
	once   sync.Once
	tracer trace.Tracer
)

func NewSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	once.Do(func() {
		tracer = otel.Tracer(tracerName)
	})
	return tracer.Start(ctx, name)
}

func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// SpanError records err on span, reports it to Sentry and returns it unchanged.
func SpanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, redact(err.Error()))
	sentry.CaptureException(err)
	return err
}

func CaptureError(ctx context.Context, err error) error {
	span := trace.SpanFromContext(ctx)
	return SpanError(span, err)
}

// DNT reports whether the user opted out of tracing.
func DNT() bool {
	_, ok := os.LookupEnv(EnvDNT)
	return ok
}

type Shutdown func()

// Init configures Sentry and installs an otel tracer provider that exports through it.
func Init(ctx context.Context, environment string) ([]Shutdown, error) {
	dsn := os.Getenv(EnvDSN)
	if DNT() {
		pterm.Debug.Println("Tracing is disabled")
		dsn = ""
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		EnableTracing:    true,
		Environment:      environment,
		Release:          build.Version,
		TracesSampleRate: 1.0,
		// ServerName can be considered PII, hardcode to N/A
		ServerName:            "N/A",
		BeforeSend:            removePII,
		BeforeSendTransaction: removePII,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to initialize sentry: %w", err)
	}

	cleanups := []Shutdown{func() { sentry.Flush(2 * time.Second) }}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			attribute.String("version", build.Version),
		),
	)
	if err != nil {
		pterm.Debug.Printfln("unable to merge trace resource: %s", err)
		r = resource.Default()
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sentryotel.NewSentrySpanProcessor()),
		sdktrace.WithResource(r),
	)
	cleanups = append(cleanups, func() { _ = tracerProvider.Shutdown(ctx) })

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(sentryotel.NewSentryPropagator())

	return cleanups, nil
}

// userHome is the redacted user home directory
const userHome = "[USER_HOME]"

func redact(s string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return s
	}
	return strings.ReplaceAll(s, home, userHome)
}

// removePII removes potentially PII information that may be contained within the trace data.
func removePII(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	event.Message = redact(event.Message)

	for i := range event.Exception {
		event.Exception[i].Value = redact(event.Exception[i].Value)
	}

	for _, span := range event.Spans {
		span.Name = redact(span.Name)
		span.Description = redact(span.Description)
	}

	return event
}
