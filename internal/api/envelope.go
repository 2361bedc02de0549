// Package api defines the response envelope shared by every endpoint.
package api

// Envelope wraps every response body. Exactly one of Data and Error is
// populated; Meta always carries the correlation metadata.
type Envelope[T any] struct {
	Data  *T         `json:"data"`
	Meta  Meta       `json:"meta"`
	Error *ErrorBody `json:"error"`
}

// Meta holds cross-cutting response metadata.
type Meta struct {
	TraceID *string `json:"traceId,omitempty"`
}

// ErrorBody is the structured error payload.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldIssue `json:"details,omitempty"`
	TraceID *string      `json:"traceId,omitempty"`
}

// FieldIssue attributes an error to a specific field when one applies.
type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

// NewSuccessEnvelope wraps data in a success envelope. The value is copied so
// later mutation of the caller's struct cannot leak into the response.
func NewSuccessEnvelope[T any](traceID *string, data T) Envelope[T] {
	d := data
	return Envelope[T]{
		Data: &d,
		Meta: Meta{TraceID: traceID},
	}
}

// NewErrorEnvelope builds an error envelope with nil data. Details are
// cloned for the same reason data is copied above.
func NewErrorEnvelope[T any](traceID *string, code, msg string, details []FieldIssue) Envelope[T] {
	var cloned []FieldIssue
	if len(details) > 0 {
		cloned = make([]FieldIssue, len(details))
		copy(cloned, details)
	}
	return Envelope[T]{
		Meta: Meta{TraceID: traceID},
		Error: &ErrorBody{
			Code:    code,
			Message: msg,
			Details: cloned,
			TraceID: traceID,
		},
	}
}
