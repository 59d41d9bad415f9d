package viewer

import (
	"errors"
	"strings"
	"testing"

	"github.com/devicelab-dev/reportview/pkg/dom"
)

func TestLoad_BindsRegistries(t *testing.T) {
	app := standardFixture(t)

	entries := app.Entries()
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	wantNames := []string{"math-accent-sym-call", "bibliography-basic", "image-basic", "pdf-tags"}
	for i, e := range entries {
		if e.Report.Name() != wantNames[i] {
			t.Errorf("entry %d: expected %q, got %q", i, wantNames[i], e.Report.Name())
		}
		if e.Sidebar == nil {
			t.Errorf("entry %d: sidebar not paired", i)
		}
	}
	if len(app.ImageDiffs()) != 2 {
		t.Errorf("expected 2 image diffs, got %d", len(app.ImageDiffs()))
	}

	r := app.Report("image-basic")
	if r == nil {
		t.Fatal("report image-basic not found")
	}
	if r.File(FormatRender).Diff == nil {
		t.Error("expected a FileDiff for the render file")
	}
	if r.File(FormatSVG).Diff != nil {
		t.Error("expected no FileDiff for the svg file")
	}
}

func TestApp_ReportLookup(t *testing.T) {
	app := standardFixture(t)

	for _, key := range []string{"bibliography-basic", "r-bibliography-basic", "#r-bibliography-basic"} {
		if r := app.Report(key); r == nil || r.Name() != "bibliography-basic" {
			t.Errorf("Report(%q) did not resolve", key)
		}
	}
	if app.Report("missing") != nil {
		t.Error("expected nil for unknown report")
	}
}

func TestReport_SelectTabSingleActive(t *testing.T) {
	app := standardFixture(t)
	r := app.Report("bibliography-basic")

	for _, f := range []Format{FormatHTML, FormatRender, FormatHTML} {
		r.SelectTab(f)

		checked := 0
		for _, tab := range r.tabs {
			on := tab.format == f
			if dom.HasAttr(tab.tab, "checked") {
				checked++
			}
			if got := dom.GetAttr(tab.tab, "aria-selected"); got != map[bool]string{true: "true", false: "false"}[on] {
				t.Errorf("%s: tab %s aria-selected=%q", f, tab.format, got)
			}
			if dom.IsHidden(tab.header) == on || dom.IsHidden(tab.body) == on {
				t.Errorf("%s: tab %s panels visible=%v", f, tab.format, !on)
			}
		}
		if checked != 1 {
			t.Errorf("%s: expected 1 checked tab, got %d", f, checked)
		}
		if cur, ok := r.CurrentTab(); !ok || cur != f {
			t.Errorf("expected current tab %s, got %s (%v)", f, cur, ok)
		}
	}
}

func TestReport_SelectTabUnsupportedDeselectsAll(t *testing.T) {
	app := standardFixture(t)
	r := app.Report("image-basic")

	r.SelectTab(FormatPDF)

	if _, ok := r.CurrentTab(); ok {
		t.Error("expected no current tab")
	}
	for _, tab := range r.tabs {
		if dom.HasAttr(tab.tab, "checked") {
			t.Errorf("tab %s still checked", tab.format)
		}
		if !dom.IsHidden(tab.header) || !dom.IsHidden(tab.body) {
			t.Errorf("tab %s panels still visible", tab.format)
		}
	}

	// Selecting a supported format recovers.
	r.SelectTab(FormatSVG)
	if cur, ok := r.CurrentTab(); !ok || cur != FormatSVG {
		t.Errorf("expected svg, got %s (%v)", cur, ok)
	}
}

func TestReport_ToggleExpand(t *testing.T) {
	app := standardFixture(t)
	r := app.Report("math-accent-sym-call")

	if !r.Expanded() {
		t.Fatal("expected report to start expanded")
	}
	r.ToggleExpand()
	if r.Expanded() {
		t.Error("expected collapsed after toggle")
	}
	if got := dom.GetAttr(r.toggle, "aria-expanded"); got != "false" {
		t.Errorf("expected aria-expanded=false, got %q", got)
	}
	r.ToggleExpand()
	if !r.Expanded() || dom.GetAttr(r.toggle, "aria-expanded") != "true" {
		t.Error("expected expanded after second toggle")
	}
}

func TestFileDiff_SelectKind(t *testing.T) {
	app := standardFixture(t)
	d := app.Report("image-basic").File(FormatRender).Diff

	if k, ok := d.CurrentKind(); !ok || k != DiffText {
		t.Fatalf("expected initial kind text, got %s (%v)", k, ok)
	}

	d.SelectKind(DiffImage)
	if k, _ := d.CurrentKind(); k != DiffImage {
		t.Errorf("expected image, got %s", k)
	}
	for _, tab := range d.tabs {
		on := tab.kind == DiffImage
		if dom.IsHidden(tab.panel) == on {
			t.Errorf("panel %s visible=%v", tab.kind, !on)
		}
		if dom.HasAttr(tab.tab, "checked") != on {
			t.Errorf("selector %s checked=%v", tab.kind, !on)
		}
	}
	if got := d.Kinds(); len(got) != 2 || got[0] != DiffText || got[1] != DiffImage {
		t.Errorf("unexpected kinds %v", got)
	}
}

func TestLoad_MarkupErrors(t *testing.T) {
	base := fixtureHTML(
		fixtureReport{name: "bibliography-basic", formats: []Format{FormatRender, FormatHTML}},
		fixtureReport{name: "image-basic", formats: []Format{FormatRender}, both: FormatRender},
	)

	tests := []struct {
		name string
		doc  string
		code string
	}{
		{
			name: "missing header",
			doc:  strings.Replace(base, `<h1 class="report-file-header" hidden>html</h1>`, "", 1),
			code: CodeTabPanelMismatch,
		},
		{
			name: "sidebar href",
			doc:  strings.Replace(base, `href="#r-image-basic"`, `href="#r-other"`, 1),
			code: CodeSidebarMismatch,
		},
		{
			name: "sidebar count",
			doc:  strings.Replace(base, `<li class="sidebar-entry"><a href="#r-image-basic">image-basic</a></li>`, "", 1),
			code: CodeSidebarMismatch,
		},
		{
			name: "image count",
			doc:  strings.Replace(base, `<img src="data:image/png;base64,AQ==" alt="actual">`, "", 1),
			code: CodeImageCount,
		},
		{
			name: "unknown tab format",
			doc:  strings.Replace(base, `name="tab-0" value="html"`, `name="tab-0" value="docx"`, 1),
			code: CodeInvalidValue,
		},
		{
			name: "unknown view mode",
			doc:  strings.Replace(base, `value="difference"`, `value="onion-skin"`, 1),
			code: CodeInvalidValue,
		},
		{
			name: "bad report id",
			doc:  strings.Replace(base, `id="r-bibliography-basic"`, `id="bibliography-basic"`, 1),
			code: CodeInvalidValue,
		},
		{
			name: "duplicate report",
			doc:  strings.Replace(base, `id="r-image-basic"`, `id="r-bibliography-basic"`, 1),
			code: CodeDuplicateReport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.doc == base {
				t.Fatal("fixture replacement did not apply")
			}
			_, err := Load(strings.NewReader(tt.doc))
			var me *MarkupError
			if !errors.As(err, &me) {
				t.Fatalf("expected MarkupError, got %v", err)
			}
			if me.Code != tt.code {
				t.Errorf("expected code %s, got %s (%v)", tt.code, me.Code, err)
			}
		})
	}
}

func TestLoad_UnknownViewModeWrapsSentinel(t *testing.T) {
	doc := strings.Replace(fixtureHTML(
		fixtureReport{name: "image-basic", formats: []Format{FormatRender}, both: FormatRender},
	), `value="blend"`, `value="onion-skin"`, 1)

	_, err := Load(strings.NewReader(doc))
	if !errors.Is(err, ErrUnknownImageMode) {
		t.Errorf("expected ErrUnknownImageMode, got %v", err)
	}
}

func TestLoad_SidebarHrefIsPercentDecoded(t *testing.T) {
	tests := []struct {
		name string
		href string
	}{
		{"with space", "#r-with%20space"},
		{"unicodé", "#r-unicod%C3%A9"},
		{"a&b", "#r-a&b"},
		{"a%b", "#r-a%25b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := fixtureHTML(fixtureReport{name: tt.name, formats: []Format{FormatSVG}})
			doc = strings.Replace(doc, `href="#r-`+tt.name+`"`, `href="`+tt.href+`"`, 1)

			app, err := Load(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if app.Report(tt.name) == nil {
				t.Errorf("report %q not found", tt.name)
			}
		})
	}
}

func TestLoad_NoSidebar(t *testing.T) {
	doc := fixtureHTML(fixtureReport{name: "solo", formats: []Format{FormatSVG}})
	start := strings.Index(doc, `<ul class="sidebar-list">`)
	end := strings.Index(doc, `</ul>`) + len(`</ul>`)
	doc = doc[:start] + doc[end:]

	app, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.Entries()[0].Sidebar != nil {
		t.Error("expected nil sidebar")
	}
	app.SetSearch("nomatch")
	if !app.Report("solo").Hidden() {
		t.Error("expected report hidden by filter")
	}
}
