package viewer

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrUnknownImageMode means the markup and the controller disagree on the
	// set of view modes.
	ErrUnknownImageMode = errors.New("unknown image view mode")

	// ErrUnknownTarget means an event named a report or widget that does not exist.
	ErrUnknownTarget = errors.New("unknown event target")

	// ErrInvalidEvent means an event carried a malformed type or value.
	ErrInvalidEvent = errors.New("invalid event")
)

// MarkupError reports a document that breaks the report markup contract.
type MarkupError struct {
	Code    string // Machine-readable: tab_panel_mismatch, sidebar_mismatch, ...
	Message string // Human-readable message
	Target  string // Element id the problem was found under, if any
	Cause   error
}

// Error implements the error interface.
func (e *MarkupError) Error() string {
	msg := e.Message
	if e.Target != "" {
		msg = fmt.Sprintf("%s: %s", e.Target, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *MarkupError) Unwrap() error {
	return e.Cause
}

// Markup error codes.
const (
	CodeTabPanelMismatch  = "tab_panel_mismatch"
	CodeKindPanelMismatch = "kind_panel_mismatch"
	CodeSidebarMismatch   = "sidebar_mismatch"
	CodeImageCount        = "image_count"
	CodeInvalidValue      = "invalid_value"
	CodeMissingControl    = "missing_control"
	CodeDuplicateReport   = "duplicate_report"
)

func markupErr(code, target, format string, args ...interface{}) *MarkupError {
	return &MarkupError{Code: code, Target: target, Message: fmt.Sprintf(format, args...)}
}
