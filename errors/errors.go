// Package errors provides the coded error type shared by every codec.
package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/guileen/keyguess/logger"
)

// Error codes, one per failure class a decoder can report.
const (
	ErrCodeUnknown             = "unknown_error"
	ErrCodeMalformedEncoding   = "malformed_encoding"
	ErrCodeMalformedVarint     = "malformed_varint"
	ErrCodeTruncatedInput      = "truncated_input"
	ErrCodeInvalidRecordFormat = "invalid_record_format"
	ErrCodeUnknownWriteType    = "unknown_write_type"
	ErrCodeTruncatedShortValue = "truncated_short_value"
	ErrCodeInvalidInput        = "invalid_input"
	ErrCodeValidation          = "validation_error"
	ErrCodeStorage             = "storage_error"
)

// CodecError is the error type returned by all decoders.
type CodecError struct {
	Code    string
	Message string
	Op      string
	Err     error
}

// Error implements the error interface
func (e *CodecError) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil && e.Err.Error() != e.Message {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap implements the unwrap interface for error chaining
func (e *CodecError) Unwrap() error {
	return e.Err
}

// Is matches any CodecError carrying the same code.
func (e *CodecError) Is(target error) bool {
	if t, ok := target.(*CodecError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithOp sets the operation name and returns e.
func (e *CodecError) WithOp(op string) *CodecError {
	e.Op = op
	return e
}

// Log logs the error with the package logger
func (e *CodecError) Log(ctx context.Context, level slog.Level) {
	fields := []any{
		"error_code", e.Code,
		"operation", e.Op,
		"message", e.Message,
	}
	if e.Err != nil {
		fields = append(fields, "cause", e.Err.Error())
	}

	switch level {
	case slog.LevelDebug:
		logger.DebugContext(ctx, "codec error", fields...)
	case slog.LevelInfo:
		logger.InfoContext(ctx, "codec error", fields...)
	case slog.LevelWarn:
		logger.WarnContext(ctx, "codec error", fields...)
	default:
		logger.ErrorContext(ctx, "codec error", fields...)
	}
}

// New creates a new CodecError
func New(code, message string) *CodecError {
	return &CodecError{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new CodecError with formatted message
func Errorf(code, format string, args ...interface{}) *CodecError {
	return &CodecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with context
func Wrap(err error, code, op string) *CodecError {
	return &CodecError{
		Code:    code,
		Message: err.Error(),
		Op:      op,
		Err:     err,
	}
}

// Wrapf wraps an existing error with formatted context
func Wrapf(err error, code, op, format string, args ...interface{}) *CodecError {
	return &CodecError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Op:      op,
		Err:     err,
	}
}

// Sentinels for errors.Is; matching is by code only.
var (
	ErrMalformedEncoding   = &CodecError{Code: ErrCodeMalformedEncoding, Message: "malformed memcomparable encoding"}
	ErrMalformedVarint     = &CodecError{Code: ErrCodeMalformedVarint, Message: "malformed varint"}
	ErrTruncatedInput      = &CodecError{Code: ErrCodeTruncatedInput, Message: "truncated input"}
	ErrInvalidRecordFormat = &CodecError{Code: ErrCodeInvalidRecordFormat, Message: "invalid record bytes"}
	ErrUnknownWriteType    = &CodecError{Code: ErrCodeUnknownWriteType, Message: "unknown write type"}
	ErrTruncatedShortValue = &CodecError{Code: ErrCodeTruncatedShortValue, Message: "truncated short value"}
	ErrInvalidInput        = &CodecError{Code: ErrCodeInvalidInput, Message: "cannot parse input"}
)

// Code returns the code of the first CodecError in err's chain, or ErrCodeUnknown.
func Code(err error) string {
	var e *CodecError
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeUnknown
}

func hasCode(err error, code string) bool {
	var e *CodecError
	return errors.As(err, &e) && e.Code == code
}

// IsMalformedEncoding reports whether err is a memcomparable decoding failure
func IsMalformedEncoding(err error) bool {
	return hasCode(err, ErrCodeMalformedEncoding)
}

// IsMalformedVarint reports whether err is a varint decoding failure
func IsMalformedVarint(err error) bool {
	return hasCode(err, ErrCodeMalformedVarint)
}

// IsTruncatedInput reports whether a fixed-width field ran past the input
func IsTruncatedInput(err error) bool {
	return hasCode(err, ErrCodeTruncatedInput)
}

// IsInvalidRecordFormat reports whether err is a row key structure failure
func IsInvalidRecordFormat(err error) bool {
	return hasCode(err, ErrCodeInvalidRecordFormat)
}

// IsUnknownWriteType reports whether err is an unknown write type tag
func IsUnknownWriteType(err error) bool {
	return hasCode(err, ErrCodeUnknownWriteType)
}

// IsTruncatedShortValue reports whether a short value overran the input
func IsTruncatedShortValue(err error) bool {
	return hasCode(err, ErrCodeTruncatedShortValue)
}

// IsInvalidInput reports whether err came from the text adapter
func IsInvalidInput(err error) bool {
	return hasCode(err, ErrCodeInvalidInput)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// LogError logs an error at error level
func LogError(ctx context.Context, err error) {
	var e *CodecError
	if errors.As(err, &e) {
		e.Log(ctx, slog.LevelError)
		return
	}
	logger.ErrorContext(ctx, "unexpected error", "error", err.Error())
}

// LogWarning logs an error at warning level
func LogWarning(ctx context.Context, err error) {
	var e *CodecError
	if errors.As(err, &e) {
		e.Log(ctx, slog.LevelWarn)
		return
	}
	logger.WarnContext(ctx, "unexpected error", "error", err.Error())
}
