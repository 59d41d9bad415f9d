package viewer

import (
	"errors"
	"testing"
)

func TestDispatch_Effects(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		check func(t *testing.T, app *App)
	}{
		{
			name:  "toggle",
			event: Event{Type: EventToggle, Target: "bibliography-basic"},
			check: func(t *testing.T, app *App) {
				if app.Report("bibliography-basic").Expanded() {
					t.Error("expected collapsed")
				}
			},
		},
		{
			name:  "select tab",
			event: Event{Type: EventSelectTab, Target: "#r-image-basic", Value: "svg"},
			check: func(t *testing.T, app *App) {
				if cur, _ := app.Report("image-basic").CurrentTab(); cur != FormatSVG {
					t.Errorf("expected svg, got %s", cur)
				}
			},
		},
		{
			name:  "select diff kind",
			event: Event{Type: EventSelectDiffKind, Target: "image-basic", Value: "render:image"},
			check: func(t *testing.T, app *App) {
				if k, _ := app.Report("image-basic").File(FormatRender).Diff.CurrentKind(); k != DiffImage {
					t.Errorf("expected image, got %s", k)
				}
			},
		},
		{
			name:  "select diff kind on single-kind file",
			event: Event{Type: EventSelectDiffKind, Target: "image-basic", Value: "svg:image"},
			check: func(t *testing.T, app *App) {},
		},
		{
			name:  "image mode",
			event: Event{Type: EventImageMode, Target: "image-diff-1", Value: "blend"},
			check: func(t *testing.T, app *App) {
				if m := app.ImageDiff("1").Mode(); m != ModeBlend {
					t.Errorf("expected blend, got %s", m)
				}
			},
		},
		{
			name:  "zoom",
			event: Event{Type: EventImageZoom, Target: "0", Value: "2"},
			check: func(t *testing.T, app *App) {
				if z := app.ImageDiff("0").Zoom(); z != 2 {
					t.Errorf("expected zoom 2, got %v", z)
				}
			},
		},
		{
			name:  "zoom in",
			event: Event{Type: EventImageZoomIn, Target: "0"},
			check: func(t *testing.T, app *App) {
				if z := app.ImageDiff("0").Zoom(); z != 1.05 {
					t.Errorf("expected zoom 1.05, got %v", z)
				}
			},
		},
		{
			name:  "zoom out",
			event: Event{Type: EventImageZoomOut, Target: "0"},
			check: func(t *testing.T, app *App) {
				if z := app.ImageDiff("0").Zoom(); z != 0.95 {
					t.Errorf("expected zoom 0.95, got %v", z)
				}
			},
		},
		{
			name:  "blend",
			event: Event{Type: EventImageBlend, Target: "0", Value: "0.25"},
			check: func(t *testing.T, app *App) {
				if b := app.ImageDiff("0").Blend(); b != 0.25 {
					t.Errorf("expected blend 0.25, got %v", b)
				}
			},
		},
		{
			name:  "pan",
			event: Event{Type: EventImagePan, Target: "0", Value: "3, 4"},
			check: func(t *testing.T, app *App) {
				d := app.ImageDiff("0")
				if d.panX != 3 || d.panY != 4 {
					t.Errorf("expected pan (3,4), got (%v,%v)", d.panX, d.panY)
				}
			},
		},
		{
			name:  "align x",
			event: Event{Type: EventImageAlignX, Target: "0", Value: "right"},
			check: func(t *testing.T, app *App) {
				if a := app.ImageDiff("0").Align(AxisX); a != "right" {
					t.Errorf("expected right, got %q", a)
				}
			},
		},
		{
			name:  "align y",
			event: Event{Type: EventImageAlignY, Target: "0", Value: "center"},
			check: func(t *testing.T, app *App) {
				if a := app.ImageDiff("0").Align(AxisY); a != "center" {
					t.Errorf("expected center, got %q", a)
				}
			},
		},
		{
			name:  "search",
			event: Event{Type: EventSearch, Value: "pdf"},
			check: func(t *testing.T, app *App) {
				if app.Report("image-basic").Hidden() == false || app.Report("pdf-tags").Hidden() {
					t.Error("unexpected filter result")
				}
			},
		},
		{
			name:  "filter format",
			event: Event{Type: EventFilterFormat, Value: "svg", Checked: true},
			check: func(t *testing.T, app *App) {
				if app.Report("image-basic").Hidden() || !app.Report("pdf-tags").Hidden() {
					t.Error("unexpected filter result")
				}
			},
		},
		{
			name:  "global format",
			event: Event{Type: EventGlobalFormat, Value: "pdftags"},
			check: func(t *testing.T, app *App) {
				if cur, _ := app.Report("pdf-tags").CurrentTab(); cur != FormatPDFTags {
					t.Errorf("expected pdftags, got %s", cur)
				}
			},
		},
		{
			name:  "global image mode",
			event: Event{Type: EventGlobalImageMode, Value: "difference"},
			check: func(t *testing.T, app *App) {
				for _, d := range app.ImageDiffs() {
					if d.Mode() != ModeDifference {
						t.Errorf("%s: expected difference", d.ID())
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := standardFixture(t)
			if err := app.Dispatch(tt.event); err != nil {
				t.Fatalf("Dispatch failed: %v", err)
			}
			tt.check(t, app)
		})
	}
}

func TestDispatch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  error
	}{
		{"unknown type", Event{Type: "drag"}, ErrInvalidEvent},
		{"unknown report", Event{Type: EventToggle, Target: "nope"}, ErrUnknownTarget},
		{"unknown widget", Event{Type: EventImageZoomIn, Target: "image-diff-9"}, ErrUnknownTarget},
		{"bad format", Event{Type: EventSelectTab, Target: "image-basic", Value: "docx"}, ErrInvalidEvent},
		{"bad diff kind value", Event{Type: EventSelectDiffKind, Target: "image-basic", Value: "render"}, ErrInvalidEvent},
		{"bad diff kind", Event{Type: EventSelectDiffKind, Target: "image-basic", Value: "render:audio"}, ErrInvalidEvent},
		{"bad zoom", Event{Type: EventImageZoom, Target: "0", Value: "big"}, ErrInvalidEvent},
		{"bad pan", Event{Type: EventImagePan, Target: "0", Value: "3"}, ErrInvalidEvent},
		{"bad align", Event{Type: EventImageAlignY, Target: "0", Value: "left"}, ErrInvalidEvent},
		{"unknown mode", Event{Type: EventImageMode, Target: "0", Value: "onion-skin"}, ErrUnknownImageMode},
		{"unknown global mode", Event{Type: EventGlobalImageMode, Value: "onion-skin"}, ErrUnknownImageMode},
		{"bad filter format", Event{Type: EventFilterFormat, Value: "docx", Checked: true}, ErrInvalidEvent},
		{"bad global format", Event{Type: EventGlobalFormat, Value: "docx"}, ErrInvalidEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := standardFixture(t)
			if err := app.Dispatch(tt.event); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
