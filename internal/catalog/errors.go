package catalog

import "fmt"

// Error codes for catalog loading. They share the E0xx space used by the
// CLI's error output.
const (
	ErrCodeNotFound    = "E005" // File not found or unreadable
	ErrCodeUnsupported = "E010" // Unknown file extension
	ErrCodeParse       = "E011" // YAML or CUE syntax/evaluation error
	ErrCodeNoItems     = "E012" // No items field or empty list
	ErrCodeInvalidItem = "E013" // Item is not a non-empty string
	ErrCodeDuplicate   = "E014" // Two items share an ID after normalization
)

// LoadError describes a problem with a catalog file.
type LoadError struct {
	Code    string
	Message string
	File    string
	Line    int // 1-based; 0 when unknown
	Column  int
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.File, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
