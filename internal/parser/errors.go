package parser

import "errors"

var (
	// ErrUnauthenticated means no caller identity was established.
	ErrUnauthenticated = errors.New("caller identity required")
	// ErrMalformedOutput means the model answered but its output was not
	// valid JSON after sanitization. The attempt is not retried.
	ErrMalformedOutput = errors.New("model output is not valid JSON")
)

// Error codes surfaced in HTTP responses.
const (
	CodeNoContent          = "no_content"
	CodePayloadTooLarge    = "payload_too_large"
	CodeExtractionFailed   = "extraction_failed"
	CodeUnauthenticated    = "unauthorized"
	CodeBackendUnavailable = "backend_unavailable"
	CodeEmptyCompletion    = "empty_completion"
	CodeMalformedOutput    = "malformed_model_output"
)
