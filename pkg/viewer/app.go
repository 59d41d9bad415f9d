package viewer

import (
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/devicelab-dev/reportview/pkg/dom"
	"github.com/devicelab-dev/reportview/pkg/logger"
)

// Entry pairs a report with its sidebar navigation item. The pairing is made
// once at load; filtering hides both halves together.
type Entry struct {
	Report  *Report
	Sidebar *html.Node // nil when the document has no sidebar list
}

// App owns a loaded report document and the controller registries built
// from it. Registries are fixed for the page lifetime.
type App struct {
	doc        *html.Node
	entries    []Entry
	imageDiffs []*ImageDiff
	search     *html.Node
	filters    []*html.Node
}

// BroadcastResult counts the reports a global format change touched.
type BroadcastResult struct {
	Applied int
	Skipped int
}

// Load parses a report document and binds every controller.
func Load(r io.Reader) (*App, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return Bind(doc)
}

// Bind builds the registries over an already parsed document.
func Bind(doc *html.Node) (*App, error) {
	app := &App{
		doc:     doc,
		search:  dom.Find(doc, dom.ByID(IDFilterSearch)),
		filters: dom.FindAll(doc, dom.ByClass(ClassFilterFormat)),
	}

	seen := make(map[string]bool)
	for _, root := range dom.FindAll(doc, dom.ByClass(ClassReport)) {
		rep, err := bindReport(root)
		if err != nil {
			return nil, err
		}
		if seen[rep.name] {
			return nil, markupErr(CodeDuplicateReport, rep.ID(), "duplicate report id")
		}
		seen[rep.name] = true
		app.entries = append(app.entries, Entry{Report: rep})
	}

	if list := dom.Find(doc, dom.ByClass(ClassSidebarList)); list != nil {
		items := dom.FindAll(list, dom.ByClass(ClassSidebar))
		if len(items) != len(app.entries) {
			return nil, markupErr(CodeSidebarMismatch, "",
				"%d sidebar entries for %d reports", len(items), len(app.entries))
		}
		for i, item := range items {
			if a := dom.Find(item, dom.ByTag("a")); a != nil && fragmentID(dom.GetAttr(a, "href")) != app.entries[i].Report.ID() {
				return nil, markupErr(CodeSidebarMismatch, app.entries[i].Report.ID(),
					"sidebar entry %d links to %q", i, dom.GetAttr(a, "href"))
			}
			app.entries[i].Sidebar = item
		}
	}

	for i, root := range dom.FindAll(doc, dom.ByClass(ClassImageDiff)) {
		d, err := bindImageDiff(root, i)
		if err != nil {
			return nil, err
		}
		app.imageDiffs = append(app.imageDiffs, d)
	}

	logger.Info("loaded report: %d tests, %d image diffs", len(app.entries), len(app.imageDiffs))
	return app, nil
}

// fragmentID returns the element id an in-page href points at. The fragment
// is percent-decoded the way a browser resolves it against element ids.
func fragmentID(href string) string {
	frag, ok := strings.CutPrefix(href, "#")
	if !ok {
		return ""
	}
	if id, err := url.PathUnescape(frag); err == nil {
		return id
	}
	return frag
}

// Entries returns the report/sidebar pairs in document order.
func (a *App) Entries() []Entry { return a.entries }

// ImageDiffs returns every image widget in document order.
func (a *App) ImageDiffs() []*ImageDiff { return a.imageDiffs }

// Report looks a report up by test name or by element id.
func (a *App) Report(name string) *Report {
	name = strings.TrimPrefix(name, "#")
	for _, e := range a.entries {
		if e.Report.name == name || e.Report.ID() == name {
			return e.Report
		}
	}
	return nil
}

// ImageDiff looks a widget up by element id, then by its index. An id always
// wins over an index that happens to spell the same.
func (a *App) ImageDiff(target string) *ImageDiff {
	for _, d := range a.imageDiffs {
		if d.id == target {
			return d
		}
	}
	if i, err := strconv.Atoi(target); err == nil && i >= 0 && i < len(a.imageDiffs) {
		return a.imageDiffs[i]
	}
	return nil
}

// Render writes the current document.
func (a *App) Render(w io.Writer) error {
	return dom.Render(w, a.doc)
}

// Search returns the current search text.
func (a *App) Search() string {
	if a.search == nil {
		return ""
	}
	return dom.GetAttr(a.search, "value")
}

// SetSearch updates the search input and re-filters.
func (a *App) SetSearch(query string) {
	if a.search != nil {
		dom.SetAttr(a.search, "value", query)
	}
	a.FilterDiffs()
}

// SetFormatFilter checks or unchecks the filter checkbox for f and re-filters.
// A format without a checkbox is ignored.
func (a *App) SetFormatFilter(f Format, checked bool) {
	for _, cb := range a.filters {
		if dom.GetAttr(cb, "value") == string(f) {
			dom.SetFlag(cb, "checked", checked)
		}
	}
	a.FilterDiffs()
}

// Filter is the state of the search box and format checkboxes. It is read
// from the document on every FilterDiffs and never stored.
type Filter struct {
	Query   string
	Formats map[Format]bool // checked and enabled boxes
}

// Matches reports whether r passes the filter. An empty query matches every
// name; no checked format means no format filtering.
func (f Filter) Matches(r *Report) bool {
	if f.Query != "" && !strings.Contains(r.name, f.Query) {
		return false
	}
	if len(f.Formats) == 0 {
		return true
	}
	for _, format := range r.Formats() {
		if f.Formats[format] {
			return true
		}
	}
	return false
}

// Filter reads the current filter inputs.
func (a *App) Filter() Filter {
	f := Filter{Query: a.Search(), Formats: make(map[Format]bool)}
	for _, cb := range a.filters {
		if !dom.HasAttr(cb, "checked") || dom.HasAttr(cb, "disabled") {
			continue
		}
		f.Formats[Format(dom.GetAttr(cb, "value"))] = true
	}
	return f
}

// FilterDiffs recomputes every report's visibility from the filter inputs and
// hides each sidebar entry together with its report.
func (a *App) FilterDiffs() {
	filter := a.Filter()

	visible := 0
	for _, e := range a.entries {
		hidden := !filter.Matches(e.Report)
		dom.SetHidden(e.Report.root, hidden)
		if e.Sidebar != nil {
			dom.SetHidden(e.Sidebar, hidden)
		}
		if !hidden {
			visible++
		}
	}
	logger.Debug("filter %q formats=%v: %d/%d visible", filter.Query, keys(filter.Formats), visible, len(a.entries))
}

// ChangeGlobalDiffFormat selects f on every report that offers it. Reports
// without f keep their current tab.
func (a *App) ChangeGlobalDiffFormat(f Format) BroadcastResult {
	var res BroadcastResult
	for _, e := range a.entries {
		if !e.Report.Supports(f) {
			res.Skipped++
			continue
		}
		e.Report.SelectTab(f)
		res.Applied++
	}
	logger.Info("global format %s: applied=%d skipped=%d", f, res.Applied, res.Skipped)
	return res
}

// ChangeGlobalImageMode sets mode on every image widget. The mode is checked
// before any widget changes.
func (a *App) ChangeGlobalImageMode(mode ImageMode) error {
	if !mode.Valid() {
		return fmt.Errorf("global image mode: %w: %q", ErrUnknownImageMode, mode)
	}
	for _, d := range a.imageDiffs {
		if err := d.SetMode(mode); err != nil {
			return err
		}
	}
	logger.Info("global image mode %s: %d widgets", mode, len(a.imageDiffs))
	return nil
}

func keys(m map[Format]bool) []Format {
	var out []Format
	for _, f := range Formats {
		if m[f] {
			out = append(out, f)
		}
	}
	return out
}

// ReportState is a read-only snapshot of one report.
type ReportState struct {
	Name     string   `json:"name"`
	Hidden   bool     `json:"hidden"`
	Expanded bool     `json:"expanded"`
	Tab      Format   `json:"tab,omitempty"`
	Formats  []Format `json:"formats"`
}

// State snapshots every report in document order.
func (a *App) State() []ReportState {
	out := make([]ReportState, 0, len(a.entries))
	for _, e := range a.entries {
		tab, _ := e.Report.CurrentTab()
		out = append(out, ReportState{
			Name:     e.Report.name,
			Hidden:   e.Report.Hidden(),
			Expanded: e.Report.Expanded(),
			Tab:      tab,
			Formats:  e.Report.Formats(),
		})
	}
	return out
}
