package viewer

import (
	"fmt"
	"strings"
	"testing"
)

// fixtureReport describes one test report section of a fixture document.
type fixtureReport struct {
	name    string
	formats []Format
	both    Format // file that offers text and image diffs, if any
}

func imageMarkup(n int) string {
	return fmt.Sprintf(`<div class="image-diff" id="image-diff-%[1]d">
<input type="radio" class="image-view-mode" name="m%[1]d" value="side-by-side" checked>
<input type="radio" class="image-view-mode" name="m%[1]d" value="blend">
<input type="radio" class="image-view-mode" name="m%[1]d" value="difference">
<input type="checkbox" class="antialiasing" checked>
<button class="image-zoom-minus">-</button><button class="image-zoom-plus">+</button>
<input type="range" class="image-zoom" min="0.5" max="8" value="1" step="0.05">
<div class="image-diff-wrapper">
<div class="image-split"><img src="data:image/png;base64,AA==" alt="reference"></div>
<div class="image-split"><img src="data:image/png;base64,AQ==" alt="actual"></div>
</div>
<fieldset class="image-align-y-control">
<input type="radio" class="image-align-y" name="y%[1]d" value="top" checked>
<input type="radio" class="image-align-y" name="y%[1]d" value="center">
<input type="radio" class="image-align-y" name="y%[1]d" value="bottom">
</fieldset>
<fieldset class="image-align-x-control">
<input type="radio" class="image-align-x" name="x%[1]d" value="left" checked>
<input type="radio" class="image-align-x" name="x%[1]d" value="center">
<input type="radio" class="image-align-x" name="x%[1]d" value="right">
</fieldset>
<fieldset class="image-blend-control"><input type="range" class="image-blend" min="0" max="1" value="0.5" step="0.01"></fieldset>
</div>`, n)
}

// fixtureHTML lays out reports the way the producer does. Image widgets are
// numbered in document order.
func fixtureHTML(reports ...fixtureReport) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>fixture</title></head><body>`)
	b.WriteString(`<input type="search" id="filter-search" value="">`)
	for _, f := range Formats {
		fmt.Fprintf(&b, `<input type="checkbox" class="filter-format" value="%s">`, f)
	}
	b.WriteString(`<ul class="sidebar-list">`)
	for _, r := range reports {
		fmt.Fprintf(&b, `<li class="sidebar-entry"><a href="#r-%s">%s</a></li>`, r.name, r.name)
	}
	b.WriteString(`</ul>`)

	images := 0
	for ri, r := range reports {
		fmt.Fprintf(&b, `<section class="test-report" id="r-%s">`, r.name)
		fmt.Fprintf(&b, `<button class="report-toggle" aria-expanded="true">%s</button>`, r.name)
		for i, f := range r.formats {
			checked := ""
			if i == 0 {
				checked = " checked"
			}
			fmt.Fprintf(&b, `<input type="radio" class="report-tab" name="tab-%d" value="%s" aria-selected="%t"%s>`, ri, f, i == 0, checked)
		}
		for i, f := range r.formats {
			fmt.Fprintf(&b, `<h1 class="report-file-header"%s>%s</h1>`, hiddenAttr(i), f)
		}
		b.WriteString(`<div class="report-body">`)
		for i, f := range r.formats {
			fmt.Fprintf(&b, `<div class="report-file"%s>`, hiddenAttr(i))
			if f == r.both {
				fmt.Fprintf(&b, `<div class="file-diff-tabs">`+
					`<input type="radio" class="file-diff-tab" name="k-%d" value="text" aria-selected="true" checked>`+
					`<input type="radio" class="file-diff-tab" name="k-%d" value="image" aria-selected="false">`+
					`</div>`, ri, ri)
				b.WriteString(`<div class="file-diff file-diff-text"><pre>text</pre></div>`)
				fmt.Fprintf(&b, `<div class="file-diff file-diff-image" hidden>%s</div>`, imageMarkup(images))
				images++
			} else {
				b.WriteString(`<div class="file-diff file-diff-text"><pre>text</pre></div>`)
			}
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div></section>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func hiddenAttr(i int) string {
	if i == 0 {
		return ""
	}
	return " hidden"
}

func loadFixture(t *testing.T, reports ...fixtureReport) *App {
	t.Helper()
	app, err := Load(strings.NewReader(fixtureHTML(reports...)))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return app
}

// standardFixture holds the reports most tests share.
func standardFixture(t *testing.T) *App {
	t.Helper()
	return loadFixture(t,
		fixtureReport{name: "math-accent-sym-call", formats: []Format{FormatRender}},
		fixtureReport{name: "bibliography-basic", formats: []Format{FormatRender, FormatHTML}},
		fixtureReport{name: "image-basic", formats: []Format{FormatRender, FormatSVG}, both: FormatRender},
		fixtureReport{name: "pdf-tags", formats: []Format{FormatPDF, FormatPDFTags}, both: FormatPDF},
	)
}
