// Package queries contains read-only operations of the fulfillment service.
// Queries never begin a transaction; they read through repositories obtained
// from a fresh unit of work.
package queries

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/evtolracing/STEELWISEPRIVATE-sub002/internal/core/application/usecases/queries")

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
