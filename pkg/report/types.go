// Package report describes test outcomes and produces the HTML report the
// viewer binds to.
//
// Architecture:
//   - manifest (YAML or JSON): one entry per test, one file per produced
//     output format, with already-computed text and image diffs
//   - GenerateHTML: lays the manifest out in the viewer's markup contract
//
// Nothing here runs tests or computes diffs; text lines arrive classified.
package report

import (
	"fmt"

	"github.com/devicelab-dev/reportview/pkg/viewer"
)

// Version is the manifest schema version.
const Version = "1.0.0"

// Manifest is the input of the report producer.
type Manifest struct {
	Version string       `yaml:"version" json:"version"`
	Title   string       `yaml:"title,omitempty" json:"title,omitempty"`
	Tests   []TestReport `yaml:"tests" json:"tests"`
}

// TestReport is the outcome of one test case.
type TestReport struct {
	Name  string       `yaml:"name" json:"name"`
	Files []FileReport `yaml:"files" json:"files"`
}

// FileReport is one output format of a test, with its diffs.
type FileReport struct {
	Output viewer.Format `yaml:"output" json:"output"`
	Left   *File         `yaml:"left,omitempty" json:"left,omitempty"`   // Reference
	Right  *File         `yaml:"right,omitempty" json:"right,omitempty"` // Actual output
	Text   *TextDiff     `yaml:"text,omitempty" json:"text,omitempty"`
	Image  *ImagePair    `yaml:"image,omitempty" json:"image,omitempty"`
}

// DiffKinds returns the diff kinds present, text first.
func (f FileReport) DiffKinds() []viewer.DiffKind {
	var kinds []viewer.DiffKind
	if f.Text != nil {
		kinds = append(kinds, viewer.DiffText)
	}
	if f.Image != nil {
		kinds = append(kinds, viewer.DiffImage)
	}
	return kinds
}

// File identifies one side of a comparison.
type File struct {
	Path string `yaml:"path" json:"path"`
	Size *int64 `yaml:"size,omitempty" json:"size,omitempty"` // nil: missing
}

// LineKind classifies a text diff line.
type LineKind string

// LineKind values.
const (
	LineNormal LineKind = "normal"
	LineAdd    LineKind = "add"
	LineDel    LineKind = "del"
	LineGap    LineKind = "gap"
	LineEnd    LineKind = "end"
)

// TextDiff holds both sides of a text comparison, row-aligned.
type TextDiff struct {
	Left  []Line `yaml:"left" json:"left"`
	Right []Line `yaml:"right" json:"right"`
}

// Line is one row of one side of a text diff.
type Line struct {
	Kind  LineKind `yaml:"kind,omitempty" json:"kind,omitempty"`
	Nr    int      `yaml:"nr,omitempty" json:"nr,omitempty"`
	Text  string   `yaml:"text,omitempty" json:"text,omitempty"`   // Shorthand for one plain span
	Spans []Span   `yaml:"spans,omitempty" json:"spans,omitempty"` // Takes precedence over Text
}

// Span is a run of text; Emph marks the changed part of an add/del line.
type Span struct {
	Text string `yaml:"text" json:"text"`
	Emph bool   `yaml:"emph,omitempty" json:"emph,omitempty"`
}

// ImagePair holds the reference (left) and actual (right) images as data
// URLs or paths relative to the asset directory.
type ImagePair struct {
	Left  string `yaml:"left" json:"left"`
	Right string `yaml:"right" json:"right"`
}

// Validate checks the manifest against what the viewer can bind.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool)
	for i, t := range m.Tests {
		if t.Name == "" {
			return fmt.Errorf("test %d: missing name", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("test %q: duplicate name", t.Name)
		}
		seen[t.Name] = true

		outputs := make(map[viewer.Format]bool)
		for _, f := range t.Files {
			if !f.Output.Valid() {
				return fmt.Errorf("test %q: unknown output format %q", t.Name, f.Output)
			}
			if outputs[f.Output] {
				return fmt.Errorf("test %q: duplicate output %q", t.Name, f.Output)
			}
			outputs[f.Output] = true

			if f.Text != nil {
				for _, l := range append(append([]Line(nil), f.Text.Left...), f.Text.Right...) {
					if !l.kind().valid() {
						return fmt.Errorf("test %q: %s: unknown line kind %q", t.Name, f.Output, l.Kind)
					}
				}
			}
		}
	}
	return nil
}

func (l Line) kind() LineKind {
	if l.Kind == "" {
		return LineNormal
	}
	return l.Kind
}

func (k LineKind) valid() bool {
	switch k {
	case LineNormal, LineAdd, LineDel, LineGap, LineEnd:
		return true
	}
	return false
}

func (l Line) spans() []Span {
	if len(l.Spans) > 0 {
		return l.Spans
	}
	if l.Text == "" {
		return nil
	}
	return []Span{{Text: l.Text}}
}
