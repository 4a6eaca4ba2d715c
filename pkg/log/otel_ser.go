package log

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ SpanEventRecorder = &OtelSpanEventRecorder{}

const (
	// Used when a value is missing for a key in attribute pairs
	missingAttributeValue = "MISSING"
	// Used as the key when a non-string key is encountered
	invalidAttributeKey = "invalidKeysAndValues"
)

// OtelSpanEventRecorder records log events to an OpenTelemetry span.
type OtelSpanEventRecorder struct {
	span trace.Span
}

// NewOtelSpanEventRecorder creates a recorder for span.
func NewOtelSpanEventRecorder(span trace.Span) *OtelSpanEventRecorder {
	return &OtelSpanEventRecorder{
		span: span,
	}
}

func (ser *OtelSpanEventRecorder) TraceID() string {
	return ser.span.SpanContext().TraceID().String()
}

func (ser *OtelSpanEventRecorder) SpanID() string {
	return ser.span.SpanContext().SpanID().String()
}

// RecordEvent adds an event named name with keysAndValues as attributes.
func (ser *OtelSpanEventRecorder) RecordEvent(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
}

// RecordError adds an event and sets the span status to error.
func (ser *OtelSpanEventRecorder) RecordError(name string, keysAndValues ...any) {
	ser.span.AddEvent(name, trace.WithAttributes(kvToOtelAttributes(keysAndValues...)...))
	ser.span.SetStatus(codes.Error, name)
}

func kvToOtelAttributes(keysAndValues ...any) []attribute.KeyValue {
	if len(keysAndValues)%2 != 0 {
		keysAndValues = append(keysAndValues, missingAttributeValue)
	}

	attributes := make([]attribute.KeyValue, 0, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			attributes = append(attributes, attribute.String(
				invalidAttributeKey,
				fmt.Sprint(keysAndValues[i:]),
			))
			break
		}

		var kv attribute.KeyValue
		switch v := keysAndValues[i+1].(type) {
		case bool:
			kv = attribute.Bool(key, v)
		case int:
			kv = attribute.Int(key, v)
		case int8:
			kv = attribute.Int64(key, int64(v))
		case int16:
			kv = attribute.Int64(key, int64(v))
		case int32:
			kv = attribute.Int64(key, int64(v))
		case int64:
			kv = attribute.Int64(key, v)
		case uint8:
			kv = attribute.Int64(key, int64(v))
		case uint16:
			kv = attribute.Int64(key, int64(v))
		case uint32:
			kv = attribute.Int64(key, int64(v))
		case float32:
			kv = attribute.Float64(key, float64(v))
		case float64:
			kv = attribute.Float64(key, v)
		case []byte:
			// signatures and raw key bytes are logged as lengths only
			kv = attribute.Int(key+".len", len(v))
		case Redactor:
			kv = attribute.String(key, v.Redacted())
		case fmt.Stringer:
			kv = attribute.String(key, v.String())
		default:
			kv = attribute.String(key, fmt.Sprint(v))
		}

		attributes = append(attributes, kv)
	}

	return attributes
}
