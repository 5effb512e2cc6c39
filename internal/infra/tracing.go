package infra

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/pkg/bininfo"
)

// Tracing installs the global tracer provider. The exporter endpoint comes from
// the standard OTEL_EXPORTER_OTLP_* environment variables.
func Tracing(conf *appconfig.Config, lc fx.Lifecycle) (trace.TracerProvider, error) {
	if !conf.TracingEnabled {
		return noop.NewTracerProvider(), nil
	}

	exporter, err := otlptracegrpc.New(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "infra: tracing")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(conf.TracingSampleRate))),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("lims"),
			semconv.ServiceVersion(bininfo.Version),
			semconv.DeploymentEnvironment(conf.AppContext.Env.String()),
		)),
	)
	otel.SetTracerProvider(tp)

	log.Info().
		Str("evt.name", "infra.tracing.enabled").
		Float64("sampleRate", conf.TracingSampleRate).
		Msg("opentelemetry tracing enabled")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})

	return tp, nil
}
