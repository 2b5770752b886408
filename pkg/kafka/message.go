package kafka

import (
	"encoding/json"
	"time"
)

// ContentUpdatedMessage is the event published after a record's field values
// are persisted.
type ContentUpdatedMessage struct {
	// Owning record
	RecordKey string `json:"record_key"`
	ModelType string `json:"model_type,omitempty"`
	ModelKey  string `json:"model_key,omitempty"`

	// ULIDs of the fields written or deleted in this save
	FieldULIDs []string `json:"field_ulids"`

	Timestamp time.Time `json:"timestamp"`

	// Tracing
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`
}

// ToJSON serializes the message to JSON bytes
func (m *ContentUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Headers returns the Kafka headers consumers filter on without decoding the
// payload.
func (m *ContentUpdatedMessage) Headers() []Header {
	headers := make([]Header, 0, 4)

	if m.RecordKey != "" {
		headers = append(headers, Header{Key: "record_key", Value: []byte(m.RecordKey)})
	}
	if m.ModelType != "" {
		headers = append(headers, Header{Key: "model_type", Value: []byte(m.ModelType)})
	}
	if m.ModelKey != "" {
		headers = append(headers, Header{Key: "model_key", Value: []byte(m.ModelKey)})
	}
	if m.TraceID != "" {
		traceParent := "00-" + m.TraceID + "-" + m.SpanID + "-01"
		headers = append(headers, Header{Key: "traceparent", Value: []byte(traceParent)})
	}

	return headers
}

// Header represents a Kafka message header
type Header struct {
	Key   string
	Value []byte
}
