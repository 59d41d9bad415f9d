package viewer

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/devicelab-dev/reportview/pkg/dom"
)

// reportTab ties one output-format tab to its header and body panels.
type reportTab struct {
	format Format
	tab    *html.Node
	header *html.Node
	body   *html.Node
}

// Report controls expand/collapse and the output-format tab of one test report.
type Report struct {
	name   string
	root   *html.Node
	toggle *html.Node
	body   *html.Node
	tabs   []reportTab
	files  []*ReportFile
}

// ReportFile is the rendering of one output format within a report.
type ReportFile struct {
	Format Format
	// Diff is nil unless the file offers more than one diff representation.
	Diff *FileDiff
}

// Name returns the test name (the report id without its prefix).
func (r *Report) Name() string { return r.name }

// ID returns the element id of the report root.
func (r *Report) ID() string { return ReportIDPrefix + r.name }

// Files returns the report's files in tab order.
func (r *Report) Files() []*ReportFile { return r.files }

// Formats returns the output formats this report offers, in tab order.
func (r *Report) Formats() []Format {
	out := make([]Format, len(r.tabs))
	for i, t := range r.tabs {
		out[i] = t.format
	}
	return out
}

// Supports reports whether the report has a tab for f.
func (r *Report) Supports(f Format) bool {
	for _, t := range r.tabs {
		if t.format == f {
			return true
		}
	}
	return false
}

// Expanded reports whether the report body is shown.
func (r *Report) Expanded() bool {
	return r.body == nil || !dom.IsHidden(r.body)
}

// Hidden reports whether the filter currently hides the report.
func (r *Report) Hidden() bool {
	return dom.IsHidden(r.root)
}

// ToggleExpand flips the expanded state.
func (r *Report) ToggleExpand() {
	r.SetExpanded(!r.Expanded())
}

// SetExpanded shows or hides the report body and mirrors it on the toggle.
func (r *Report) SetExpanded(expanded bool) {
	if r.body != nil {
		dom.SetHidden(r.body, !expanded)
	}
	if r.toggle != nil {
		dom.SetBool(r.toggle, "aria-expanded", expanded)
	}
}

// SelectTab makes f the active output format. Every tab is re-derived from
// the comparison with f, so a format the report lacks leaves no tab selected.
func (r *Report) SelectTab(f Format) {
	for _, t := range r.tabs {
		on := t.format == f
		dom.SetFlag(t.tab, "checked", on)
		dom.SetBool(t.tab, "aria-selected", on)
		dom.SetHidden(t.header, !on)
		dom.SetHidden(t.body, !on)
	}
}

// CurrentTab returns the checked format, or false if none is checked.
func (r *Report) CurrentTab() (Format, bool) {
	for _, t := range r.tabs {
		if dom.HasAttr(t.tab, "checked") {
			return t.format, true
		}
	}
	return "", false
}

// File returns the file for f, or nil.
func (r *Report) File(f Format) *ReportFile {
	for _, file := range r.files {
		if file.Format == f {
			return file
		}
	}
	return nil
}

func bindReport(root *html.Node) (*Report, error) {
	id := dom.GetAttr(root, "id")
	if !strings.HasPrefix(id, ReportIDPrefix) {
		return nil, markupErr(CodeInvalidValue, id, "report id must start with %q", ReportIDPrefix)
	}
	r := &Report{
		name:   strings.TrimPrefix(id, ReportIDPrefix),
		root:   root,
		toggle: dom.Find(root, dom.ByClass(ClassToggle)),
		body:   dom.Find(root, dom.ByClass(ClassBody)),
	}

	tabs := dom.FindAll(root, dom.ByClass(ClassTab))
	headers := dom.FindAll(root, dom.ByClass(ClassFileHeader))
	bodies := dom.FindAll(root, dom.ByClass(ClassFile))
	if len(tabs) != len(headers) || len(tabs) != len(bodies) {
		return nil, markupErr(CodeTabPanelMismatch, id,
			"%d tabs, %d headers, %d bodies", len(tabs), len(headers), len(bodies))
	}

	for i, tab := range tabs {
		f, err := ParseFormat(dom.GetAttr(tab, "value"))
		if err != nil {
			return nil, &MarkupError{Code: CodeInvalidValue, Target: id, Message: "bad tab value", Cause: err}
		}
		r.tabs = append(r.tabs, reportTab{format: f, tab: tab, header: headers[i], body: bodies[i]})

		file := &ReportFile{Format: f}
		if dom.Find(bodies[i], dom.ByClass(ClassKindTabs)) != nil {
			fd, err := bindFileDiff(bodies[i], id)
			if err != nil {
				return nil, err
			}
			file.Diff = fd
		}
		r.files = append(r.files, file)
	}
	return r, nil
}
