package detection

import (
	"errors"
	"fmt"
)

// Kind identifies a class of detection failure. The string value doubles as
// the stable machine-readable error code sent to the boundary layer.
type Kind string

const (
	KindNoImageProvided   Kind = "NO_IMAGE_PROVIDED"
	KindInvalidImage      Kind = "INVALID_IMAGE"
	KindAnalysisFailed    Kind = "ANALYSIS_FAILED"
	KindAPIKeyMissing     Kind = "API_KEY_MISSING"
	KindModelNotAvailable Kind = "MODEL_NOT_AVAILABLE"
	KindUnexpected        Kind = "UNEXPECTED_ERROR"
)

// DetectionError is the single tagged error type used across the detection
// core. Cause, when set, preserves the originating error for diagnostics; it
// is logged but never exposed verbatim to the caller.
type DetectionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *DetectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the originating cause to errors.Is/As.
func (e *DetectionError) Unwrap() error {
	return e.Cause
}

// Code returns the stable machine-readable code for this error.
func (e *DetectionError) Code() string {
	return string(e.Kind)
}

// ErrorRecord is the failure shape sent to the boundary layer.
type ErrorRecord struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
	Success   bool   `json:"success"`
}

// Record converts the error into its transport representation.
func (e *DetectionError) Record() ErrorRecord {
	return ErrorRecord{
		Error:     e.Message,
		ErrorCode: e.Code(),
		Success:   false,
	}
}

// NoImageProvided reports that no upload payload reached the service.
func NoImageProvided(message string) *DetectionError {
	if message == "" {
		message = "no image was provided"
	}
	return &DetectionError{Kind: KindNoImageProvided, Message: message}
}

// InvalidImage reports a payload that is present but not decodable as an image.
func InvalidImage(message string, cause error) *DetectionError {
	if message == "" {
		message = "invalid or corrupted image"
	}
	return &DetectionError{Kind: KindInvalidImage, Message: message, Cause: cause}
}

// AnalysisFailed reports a failed, timed-out, or unusable external model call.
func AnalysisFailed(message string, cause error) *DetectionError {
	if message == "" {
		message = "failed to analyze image"
	}
	return &DetectionError{Kind: KindAnalysisFailed, Message: message, Cause: cause}
}

// APIKeyMissing reports that the external model credential is not configured.
func APIKeyMissing() *DetectionError {
	return &DetectionError{Kind: KindAPIKeyMissing, Message: "vision model API key is not configured"}
}

// ModelNotAvailable reports that the named external model cannot be used.
func ModelNotAvailable(model string, cause error) *DetectionError {
	return &DetectionError{
		Kind:    KindModelNotAvailable,
		Message: fmt.Sprintf("model %q is not available", model),
		Cause:   cause,
	}
}

// Unexpected wraps anything not covered by the taxonomy. Never silently
// swallowed: the cause stays attached for logging.
func Unexpected(cause error) *DetectionError {
	return &DetectionError{Kind: KindUnexpected, Message: "unexpected error while processing image", Cause: cause}
}

// AsDetectionError coerces any error into a *DetectionError so that nothing
// escapes the service boundary untyped.
func AsDetectionError(err error) *DetectionError {
	var derr *DetectionError
	if errors.As(err, &derr) {
		return derr
	}
	return Unexpected(err)
}
