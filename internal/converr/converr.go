// Package converr holds the error taxonomy shared by the converters.
package converr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ParseError reports a source document that is not well-formed JSON.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed json: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StructureError reports a required field that is absent or has an unexpected shape.
type StructureError struct {
	Format string
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Format, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Format, e.Path, e.Reason)
}

// UnsupportedChannelError reports an animation channel the converter does not handle.
// It never fails a conversion.
type UnsupportedChannelError struct {
	Layer   string
	Channel string
}

func (e *UnsupportedChannelError) Error() string {
	return fmt.Sprintf("layer %q: channel %q is not supported", e.Layer, e.Channel)
}

// Structure builds a StructureError with a formatted reason.
func Structure(format, path, reason string, args ...interface{}) *StructureError {
	return &StructureError{Format: format, Path: path, Reason: fmt.Sprintf(reason, args...)}
}

// Decode unmarshals data into v, classifying syntax failures as ParseError and
// type mismatches as StructureError.
func Decode(format string, data []byte, v interface{}) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var structErr *StructureError
	switch {
	case errors.As(err, &structErr):
		return structErr
	case errors.As(err, &typeErr):
		path := typeErr.Field
		if typeErr.Struct != "" && path == "" {
			path = typeErr.Struct
		}
		return Structure(format, path, "expected %s, got json %s", typeErr.Type, typeErr.Value)
	default:
		return &ParseError{Format: format, Err: err}
	}
}

func IsParse(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func IsStructure(err error) bool {
	var e *StructureError
	return errors.As(err, &e)
}

func IsUnsupported(err error) bool {
	var e *UnsupportedChannelError
	return errors.As(err, &e)
}
