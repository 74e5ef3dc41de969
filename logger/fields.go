package logger

import (
	"time"
)

// Standard field keys.
const (
	FieldService     = "service"
	FieldComponent   = "component"
	FieldTraceID     = "trace_id"
	FieldSpanID      = "span_id"
	FieldOperation   = "operation"
	FieldOperator    = "operator"
	FieldStatus      = "status"
	FieldCount       = "count"
	FieldCode        = "code"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldTraversalID = "traversal_id"
)

// Fields builds a map from alternating key-value pairs. Non-string keys and
// a trailing key without a value are dropped.
//
//	logger.Debug("sorted", logger.Fields(logger.FieldOperator, "sort", logger.FieldCount, 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return MergeWithError(Fields(FieldOperation, op), err)
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}

// MergeWithDuration adds a duration field to an existing map.
func MergeWithDuration(fields map[string]interface{}, d time.Duration) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldDuration] = d.Milliseconds()
	return fields
}
