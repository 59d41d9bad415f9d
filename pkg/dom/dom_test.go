package dom

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestAttrs(t *testing.T) {
	doc := parse(t, `<div id="a" class="x y" hidden></div>`)
	n := Find(doc, ByID("a"))
	if n == nil {
		t.Fatal("element not found")
	}

	if !HasAttr(n, "hidden") || !IsHidden(n) {
		t.Error("expected hidden")
	}
	SetHidden(n, false)
	if IsHidden(n) {
		t.Error("expected hidden removed")
	}

	SetAttr(n, "data-mode", "blend")
	SetAttr(n, "data-mode", "difference")
	if got := GetAttr(n, "data-mode"); got != "difference" {
		t.Errorf("expected difference, got %q", got)
	}
	if len(n.Attr) != 3 {
		t.Errorf("expected 3 attributes, got %d", len(n.Attr))
	}

	SetBool(n, "aria-selected", false)
	if got := GetAttr(n, "aria-selected"); got != "false" {
		t.Errorf("expected false, got %q", got)
	}
	RemoveAttr(n, "aria-selected")
	if _, ok := Attr(n, "aria-selected"); ok {
		t.Error("expected attribute removed")
	}
}

func TestHasClass(t *testing.T) {
	doc := parse(t, `<p class="report-file report-file-svg"></p>`)
	p := Find(doc, ByTag("p"))

	tests := []struct {
		class string
		want  bool
	}{
		{"report-file", true},
		{"report-file-svg", true},
		{"report", false},
		{"report-file-header", false},
	}
	for _, tt := range tests {
		if got := HasClass(p, tt.class); got != tt.want {
			t.Errorf("HasClass(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}

func TestStyle(t *testing.T) {
	doc := parse(t, `<img style="background: #fff">`)
	img := Find(doc, ByTag("img"))

	SetStyle(img, "opacity", "0.5")
	if got := GetAttr(img, "style"); got != "background: #fff; opacity: 0.5" {
		t.Errorf("unexpected style %q", got)
	}
	SetStyle(img, "opacity", "0.25")
	if v, ok := Style(img, "opacity"); !ok || v != "0.25" {
		t.Errorf("expected opacity 0.25, got %q (%v)", v, ok)
	}

	SetStyle(img, "background", "")
	SetStyle(img, "opacity", "")
	if HasAttr(img, "style") {
		t.Errorf("expected style removed, got %q", GetAttr(img, "style"))
	}
	if _, ok := Style(img, "opacity"); ok {
		t.Error("expected no opacity")
	}
}

func TestFindAll_DocumentOrder(t *testing.T) {
	doc := parse(t, `<div class="c" id="1"><div class="c" id="2"></div></div><div class="c" id="3"></div>`)
	root := Find(doc, ByID("1"))

	all := FindAll(doc, ByClass("c"))
	var ids []string
	for _, n := range all {
		ids = append(ids, GetAttr(n, "id"))
	}
	if strings.Join(ids, ",") != "1,2,3" {
		t.Errorf("expected 1,2,3, got %v", ids)
	}

	// Descendants only.
	inner := FindAll(root, ByClass("c"))
	if len(inner) != 1 || GetAttr(inner[0], "id") != "2" {
		t.Errorf("expected only #2 under #1, got %d nodes", len(inner))
	}
}

func TestTextAndRender(t *testing.T) {
	doc := parse(t, `<a href="#r-x"> x <b>y</b> </a>`)
	a := Find(doc, ByTag("a"))
	if got := Text(a); got != "x y" {
		t.Errorf("expected %q, got %q", "x y", got)
	}

	SetFlag(a, "hidden", true)
	var buf bytes.Buffer
	if err := Render(&buf, doc); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `<a href="#r-x" hidden="">`) {
		t.Errorf("rendered document missing flag: %s", buf.String())
	}
}
