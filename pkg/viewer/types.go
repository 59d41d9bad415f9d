// Package viewer binds interactive controllers to a parsed test report.
//
// A report document is produced by the test runner and already carries every
// artifact and diff. Load walks it once and builds:
//   - one Report per test case (expand/collapse, output-format tabs)
//   - one FileDiff per file that offers more than one diff representation
//   - one ImageDiff per image comparison widget
//
// The App owns these as page-lifetime registries and implements the global
// filter and broadcast operations over them. Controllers mutate only their own
// subtree; Render writes the resulting document.
package viewer

import "fmt"

// Format is an output format a test can render to.
type Format string

// Format values.
const (
	FormatRender  Format = "render"
	FormatPDF     Format = "pdf"
	FormatPDFTags Format = "pdftags"
	FormatSVG     Format = "svg"
	FormatHTML    Format = "html"
)

// Formats lists every output format in display order.
var Formats = []Format{FormatRender, FormatPDF, FormatPDFTags, FormatSVG, FormatHTML}

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFormat converts a markup value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: unknown output format %q", ErrInvalidEvent, s)
	}
	return f, nil
}

// DiffKind is a way of presenting a mismatch between actual and reference.
type DiffKind string

// DiffKind values.
const (
	DiffText  DiffKind = "text"
	DiffImage DiffKind = "image"
)

// Valid reports whether k is text or image.
func (k DiffKind) Valid() bool {
	return k == DiffText || k == DiffImage
}

// ParseDiffKind converts a markup value into a DiffKind.
func ParseDiffKind(s string) (DiffKind, error) {
	k := DiffKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown diff kind %q", ErrInvalidEvent, s)
	}
	return k, nil
}

// ImageMode is the comparison mode of an image diff widget.
type ImageMode string

// ImageMode values.
const (
	ModeSideBySide ImageMode = "side-by-side"
	ModeBlend      ImageMode = "blend"
	ModeDifference ImageMode = "difference"
)

// ImageModes lists every image view mode.
var ImageModes = []ImageMode{ModeSideBySide, ModeBlend, ModeDifference}

// Valid reports whether m is a known view mode.
func (m ImageMode) Valid() bool {
	return m == ModeSideBySide || m == ModeBlend || m == ModeDifference
}

// ParseImageMode converts a markup value into an ImageMode.
func ParseImageMode(s string) (ImageMode, error) {
	m := ImageMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownImageMode, s)
	}
	return m, nil
}

// Horizontal and vertical alignment values of an image widget.
var (
	AlignX = []string{"left", "center", "right"}
	AlignY = []string{"top", "center", "bottom"}
)

// Axis selects an alignment control group.
type Axis string

// Axis values.
const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)
