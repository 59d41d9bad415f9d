package viewer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/devicelab-dev/reportview/pkg/logger"
)

// EventType names a user interaction.
type EventType string

// Event types. Target is a report name for report events, a widget id or
// index for image events, and unused for page-level events.
const (
	EventToggle          EventType = "toggle"
	EventSelectTab       EventType = "select-tab"
	EventSelectDiffKind  EventType = "select-diff-kind"
	EventImageMode       EventType = "image-mode"
	EventImageZoom       EventType = "image-zoom"
	EventImageZoomIn     EventType = "image-zoom-in"
	EventImageZoomOut    EventType = "image-zoom-out"
	EventImageBlend      EventType = "image-blend"
	EventImagePan        EventType = "image-pan"
	EventImageAlignX     EventType = "image-align-x"
	EventImageAlignY     EventType = "image-align-y"
	EventAntialiasing    EventType = "antialiasing"
	EventSearch          EventType = "search"
	EventFilterFormat    EventType = "filter-format"
	EventGlobalFormat    EventType = "global-format"
	EventGlobalImageMode EventType = "global-image-mode"
)

// Event is one interaction delivered to the App.
//
// For select-diff-kind, Value is "<format>:<kind>". For filter-format, Value
// is the format and Checked the new box state. For image-pan, Value is "dx,dy".
type Event struct {
	Type    EventType `json:"type"`
	Target  string    `json:"target,omitempty"`
	Value   string    `json:"value,omitempty"`
	Checked bool      `json:"checked,omitempty"`
}

// Dispatch applies ev. Unsupported selections are not errors; unknown targets,
// malformed values and unknown image modes are.
func (a *App) Dispatch(ev Event) error {
	logger.Debug("event %s target=%q value=%q", ev.Type, ev.Target, ev.Value)

	switch ev.Type {
	case EventToggle, EventSelectTab, EventSelectDiffKind:
		return a.dispatchReport(ev)

	case EventImageMode, EventImageZoom, EventImageZoomIn, EventImageZoomOut,
		EventImageBlend, EventImagePan, EventImageAlignX, EventImageAlignY, EventAntialiasing:
		return a.dispatchImage(ev)

	case EventSearch:
		a.SetSearch(ev.Value)
	case EventFilterFormat:
		f, err := ParseFormat(ev.Value)
		if err != nil {
			return err
		}
		a.SetFormatFilter(f, ev.Checked)
	case EventGlobalFormat:
		f, err := ParseFormat(ev.Value)
		if err != nil {
			return err
		}
		a.ChangeGlobalDiffFormat(f)
	case EventGlobalImageMode:
		return a.ChangeGlobalImageMode(ImageMode(ev.Value))
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, ev.Type)
	}
	return nil
}

func (a *App) dispatchReport(ev Event) error {
	r := a.Report(ev.Target)
	if r == nil {
		return fmt.Errorf("%w: report %q", ErrUnknownTarget, ev.Target)
	}

	switch ev.Type {
	case EventToggle:
		r.ToggleExpand()
	case EventSelectTab:
		f, err := ParseFormat(ev.Value)
		if err != nil {
			return err
		}
		r.SelectTab(f)
	case EventSelectDiffKind:
		fs, ks, ok := strings.Cut(ev.Value, ":")
		if !ok {
			return fmt.Errorf("%w: diff kind value %q, want <format>:<kind>", ErrInvalidEvent, ev.Value)
		}
		f, err := ParseFormat(fs)
		if err != nil {
			return err
		}
		k, err := ParseDiffKind(ks)
		if err != nil {
			return err
		}
		if file := r.File(f); file != nil && file.Diff != nil {
			file.Diff.SelectKind(k)
		}
	}
	return nil
}

func (a *App) dispatchImage(ev Event) error {
	d := a.ImageDiff(ev.Target)
	if d == nil {
		return fmt.Errorf("%w: image diff %q", ErrUnknownTarget, ev.Target)
	}

	switch ev.Type {
	case EventImageMode:
		return d.SetMode(ImageMode(ev.Value))
	case EventImageZoomIn:
		d.ZoomIn()
	case EventImageZoomOut:
		d.ZoomOut()
	case EventImageZoom, EventImageBlend:
		v, err := strconv.ParseFloat(ev.Value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s value %q", ErrInvalidEvent, ev.Type, ev.Value)
		}
		if ev.Type == EventImageZoom {
			d.SetZoom(v)
		} else {
			d.SetBlend(v)
		}
	case EventImagePan:
		xs, ys, ok := strings.Cut(ev.Value, ",")
		dx, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		dy, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if !ok || errX != nil || errY != nil {
			return fmt.Errorf("%w: pan value %q, want dx,dy", ErrInvalidEvent, ev.Value)
		}
		d.Pan(dx, dy)
	case EventImageAlignX:
		return d.SetAlign(AxisX, ev.Value)
	case EventImageAlignY:
		return d.SetAlign(AxisY, ev.Value)
	case EventAntialiasing:
		d.SetAntialiasing(ev.Checked)
	}
	return nil
}
