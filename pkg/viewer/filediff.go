package viewer

import (
	"golang.org/x/net/html"

	"github.com/devicelab-dev/reportview/pkg/dom"
)

type kindTab struct {
	kind  DiffKind
	tab   *html.Node
	panel *html.Node
}

// FileDiff controls which diff kind is shown for one report file.
type FileDiff struct {
	tabs []kindTab
}

// Kinds returns the diff kinds offered, in selector order.
func (d *FileDiff) Kinds() []DiffKind {
	out := make([]DiffKind, len(d.tabs))
	for i, t := range d.tabs {
		out[i] = t.kind
	}
	return out
}

// Supports reports whether the file has a diff of kind k.
func (d *FileDiff) Supports(k DiffKind) bool {
	for _, t := range d.tabs {
		if t.kind == k {
			return true
		}
	}
	return false
}

// SelectKind shows the panel for k and hides the rest. Like Report.SelectTab,
// a kind the file lacks deselects every selector.
func (d *FileDiff) SelectKind(k DiffKind) {
	for _, t := range d.tabs {
		on := t.kind == k
		dom.SetFlag(t.tab, "checked", on)
		dom.SetBool(t.tab, "aria-selected", on)
		dom.SetHidden(t.panel, !on)
	}
}

// CurrentKind returns the checked diff kind, or false if none is checked.
func (d *FileDiff) CurrentKind() (DiffKind, bool) {
	for _, t := range d.tabs {
		if dom.HasAttr(t.tab, "checked") {
			return t.kind, true
		}
	}
	return "", false
}

func bindFileDiff(file *html.Node, reportID string) (*FileDiff, error) {
	tabs := dom.FindAll(file, dom.ByClass(ClassKindTab))
	panels := dom.FindAll(file, dom.ByClass(ClassFileDiff))
	if len(tabs) != len(panels) {
		return nil, markupErr(CodeKindPanelMismatch, reportID,
			"%d diff selectors, %d diff panels", len(tabs), len(panels))
	}
	d := &FileDiff{}
	for i, tab := range tabs {
		k, err := ParseDiffKind(dom.GetAttr(tab, "value"))
		if err != nil {
			return nil, &MarkupError{Code: CodeInvalidValue, Target: reportID, Message: "bad diff selector value", Cause: err}
		}
		d.tabs = append(d.tabs, kindTab{kind: k, tab: tab, panel: panels[i]})
	}
	return d, nil
}
