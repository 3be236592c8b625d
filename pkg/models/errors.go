package models

import (
	"fmt"
	"strings"
)

// FieldError describes a single validation violation at a field path
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationError reports every field-level violation found in a spec.
// A spec carrying a ValidationError must not be rendered.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid video spec (%d error(s)):", len(e.Fields))
	for _, f := range e.Fields {
		sb.WriteString("\n  ")
		sb.WriteString(f.String())
	}
	return sb.String()
}

// AssetNotFoundError indicates a required local asset path does not exist
type AssetNotFoundError struct {
	Path string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset not found: %s", e.Path)
}

// BackendError indicates a media backend invocation failed or timed out
type BackendError struct {
	Op       string
	ExitCode int
	Stderr   string // bounded diagnostic excerpt
	Timeout  bool
}

func (e *BackendError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s timed out", e.Op)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed (exit %d): %s", e.Op, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s failed (exit %d)", e.Op, e.ExitCode)
}

// ServiceUnavailableError indicates an external service could not be reached
type ServiceUnavailableError struct {
	Service string
	Reason  string
}

func (e *ServiceUnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s unavailable: %s", e.Service, e.Reason)
	}
	return fmt.Sprintf("%s unavailable", e.Service)
}

// UnsupportedError indicates a referenced capability is not implemented
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Feature)
}
