// Package errs defines the error kinds the scenes report. Configuration errors
// abort the scene they belong to, resource errors degrade it, and missing targets
// disable a single page feature.
package errs

import "fmt"

// ConfigurationError reports a missing or invalid parameter.
type ConfigurationError struct {
	Scope  string // body name or settings section
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config %s: %s", e.Scope, e.Reason)
	}
	return fmt.Sprintf("config %s.%s: %s", e.Scope, e.Field, e.Reason)
}

// Config is shorthand for building a ConfigurationError.
func Config(scope, field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Scope: scope, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ResourceLoadError reports a texture or audio file that could not be read or decoded.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error { return e.Err }

// TargetNotFoundError reports a page anchor that does not exist.
type TargetNotFoundError struct {
	Target string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("target %q not found", e.Target)
}
