// Copyright (c) 2025 IoTeX Foundation
// This source code is provided 'as is' and no warranties are given as to title or non-infringement, merchantability
// or fitness for purpose and, to the extent permitted by law, all liability for your use of the code is disclaimed.
// This source code is governed by Apache License 2.0 that can be found in the LICENSE file.

package tracer

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	_service = "sysgov-tracer"
)

// Config is the config for tracer
type Config struct {
	// ServiceName identifies this node in the collector
	ServiceName string `yaml:"serviceName"`
	// EndPoint is the jaeger collector url, tracing is disabled when empty
	EndPoint string `yaml:"endpoint"`
	// InstanceID MUST be unique for each instance of the same
	InstanceID string `yaml:"instanceID"`
	// SamplingRatio is the fraction of traces sampled, "" means always
	SamplingRatio string `yaml:"samplingRatio"`
}

type optionParams struct {
	serviceName   string
	endpoint      string
	instanceID    string
	samplingRatio string
}

// Option sets tracer parameters
type Option func(ops *optionParams) error

// WithServiceName defines service name
func WithServiceName(name string) Option {
	return func(ops *optionParams) error {
		ops.serviceName = name
		return nil
	}
}

// WithEndpoint defines the full URL to the collector
func WithEndpoint(endpoint string) Option {
	return func(ops *optionParams) error {
		ops.endpoint = endpoint
		return nil
	}
}

// WithInstanceID defines the instance id of the service
func WithInstanceID(instanceID string) Option {
	return func(ops *optionParams) error {
		ops.instanceID = instanceID
		return nil
	}
}

// WithSamplingRatio defines the sampling ratio
func WithSamplingRatio(ratio string) Option {
	return func(ops *optionParams) error {
		ops.samplingRatio = ratio
		return nil
	}
}

// NewProvider creates and registers a global tracer provider, nil if no endpoint is given
func NewProvider(opts ...Option) (*tracesdk.TracerProvider, error) {
	ops := optionParams{
		serviceName: _service,
	}
	for _, opt := range opts {
		if err := opt(&ops); err != nil {
			return nil, err
		}
	}
	if ops.endpoint == "" {
		return nil, nil
	}
	sampler := tracesdk.AlwaysSample()
	if ops.samplingRatio != "" {
		ratio, err := strconv.ParseFloat(ops.samplingRatio, 64)
		if err != nil {
			return nil, err
		}
		sampler = tracesdk.TraceIDRatioBased(ratio)
	}
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(ops.endpoint)))
	if err != nil {
		return nil, err
	}
	attrs := []attribute.KeyValue{attribute.String("service.name", ops.serviceName)}
	if ops.instanceID != "" {
		attrs = append(attrs, attribute.String("service.instance.id", ops.instanceID))
	}
	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithSampler(sampler),
		tracesdk.WithResource(resource.NewSchemaless(attrs...)),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// NewSpan returns a span from the global tracer
func NewSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(_service).Start(ctx, spanName, opts...)
}

// SpanFromContext returns the current span from ctx
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}
