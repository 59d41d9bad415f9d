package viewer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/devicelab-dev/reportview/pkg/dom"
)

// Zoom slider defaults, used when the markup omits an attribute.
const (
	DefaultZoom     = 1.0
	DefaultZoomMin  = 0.5
	DefaultZoomMax  = 8.0
	DefaultZoomStep = 0.05
	DefaultBlend    = 0.5
)

type radio struct {
	value string
	node  *html.Node
}

// ImageDiff controls one image comparison widget: view mode, zoom, blend ratio
// and overlay alignment. Blend ratio and alignment are kept across mode
// switches even while their controls are disabled.
type ImageDiff struct {
	id    string
	root  *html.Node
	imgs  [2]*html.Node
	panes []*html.Node

	modes  []radio
	alignX []radio
	alignY []radio

	zoomInput    *html.Node
	blendInput   *html.Node
	alignXGroup  *html.Node
	blendGroup   *html.Node
	antialiasing *html.Node

	mode     ImageMode
	zoom     float64
	zoomMin  float64
	zoomMax  float64
	zoomStep float64
	blend    float64
	panX     float64
	panY     float64
}

// ID returns the widget's element id.
func (d *ImageDiff) ID() string { return d.id }

// Mode returns the current view mode.
func (d *ImageDiff) Mode() ImageMode { return d.mode }

// Zoom returns the current zoom factor.
func (d *ImageDiff) Zoom() float64 { return d.zoom }

// Blend returns the retained blend ratio.
func (d *ImageDiff) Blend() float64 { return d.blend }

// Opacities returns the opacity currently applied to image A and image B.
func (d *ImageDiff) Opacities() (a, b float64) {
	return opacityOf(d.imgs[0]), opacityOf(d.imgs[1])
}

// Align returns the checked alignment value for axis.
func (d *ImageDiff) Align(axis Axis) string {
	group := d.alignY
	if axis == AxisX {
		group = d.alignX
	}
	for _, r := range group {
		if dom.HasAttr(r.node, "checked") {
			return r.value
		}
	}
	return ""
}

// AlignEnabled reports whether the horizontal alignment group is usable.
func (d *ImageDiff) AlignEnabled() bool {
	return d.alignXGroup == nil || !dom.HasAttr(d.alignXGroup, "disabled")
}

// BlendEnabled reports whether the blend slider is usable.
func (d *ImageDiff) BlendEnabled() bool {
	return d.blendGroup == nil || !dom.HasAttr(d.blendGroup, "disabled")
}

// SetMode switches the view mode. An unknown mode means the markup producer
// and this controller disagree, so it fails without touching the widget.
func (d *ImageDiff) SetMode(mode ImageMode) error {
	var alignOn, blendOn bool
	switch mode {
	case ModeSideBySide:
	case ModeBlend:
		alignOn, blendOn = true, true
	case ModeDifference:
		alignOn = true
	default:
		return fmt.Errorf("%s: %w: %q", d.id, ErrUnknownImageMode, mode)
	}

	d.mode = mode
	for _, r := range d.modes {
		dom.SetFlag(r.node, "checked", r.value == string(mode))
	}
	dom.SetAttr(d.root, "data-mode", string(mode))
	if d.alignXGroup != nil {
		dom.SetFlag(d.alignXGroup, "disabled", !alignOn)
	}
	if d.blendGroup != nil {
		dom.SetFlag(d.blendGroup, "disabled", !blendOn)
	}
	d.SetBlend(d.blend)
	return nil
}

// SetBlend stores ratio and re-derives both opacities. Outside blend mode the
// images stay fully opaque.
func (d *ImageDiff) SetBlend(ratio float64) {
	d.blend = ratio
	if d.blendInput != nil {
		dom.SetAttr(d.blendInput, "value", formatFloat(ratio))
	}
	a, b := 1.0, 1.0
	if d.mode == ModeBlend {
		a, b = 1-ratio, ratio
	}
	dom.SetStyle(d.imgs[0], "opacity", formatFloat(a))
	dom.SetStyle(d.imgs[1], "opacity", formatFloat(b))
}

// SetZoom scales every pane of the widget uniformly. The scale is clamped to
// the slider range and snapped to its step grid, as a range input sanitizes
// an assigned value.
func (d *ImageDiff) SetZoom(scale float64) {
	d.zoom = d.snapZoom(scale)
	if d.zoomInput != nil {
		dom.SetAttr(d.zoomInput, "value", formatFloat(d.zoom))
	}
	d.applyTransform()
}

// ZoomIn raises the zoom by one slider step.
func (d *ImageDiff) ZoomIn() { d.SetZoom(d.zoom + d.zoomStep) }

// ZoomOut lowers the zoom by one slider step.
func (d *ImageDiff) ZoomOut() { d.SetZoom(d.zoom - d.zoomStep) }

// snapZoom returns the grid value min + k*step nearest to z within
// [min, max]. A snap that would overshoot max falls back to the last
// grid value below it.
func (d *ImageDiff) snapZoom(z float64) float64 {
	lo, hi := d.zoomMin, math.Max(d.zoomMin, d.zoomMax)
	if math.IsNaN(z) {
		z = lo + (hi-lo)/2
	}
	z = math.Min(hi, math.Max(lo, z))
	if d.zoomStep <= 0 {
		return round9(z)
	}
	k := math.Round(round9((z - lo) / d.zoomStep))
	if round9(lo+k*d.zoomStep) > hi {
		k = math.Floor(round9((hi - lo) / d.zoomStep))
	}
	return round9(lo + k*d.zoomStep)
}

func (d *ImageDiff) applyTransform() {
	transform := "scale(" + formatFloat(d.zoom) + ")"
	if d.panX != 0 || d.panY != 0 {
		transform = fmt.Sprintf("translate(%spx, %spx) %s", formatFloat(d.panX), formatFloat(d.panY), transform)
	}
	for _, p := range d.panes {
		dom.SetStyle(p, "transform", transform)
	}
}

// SetAlign checks value in the axis's radio group. The value is kept even
// while the group is disabled so it applies again on the next overlay mode.
func (d *ImageDiff) SetAlign(axis Axis, value string) error {
	group, allowed := d.alignY, AlignY
	if axis == AxisX {
		group, allowed = d.alignX, AlignX
	} else if axis != AxisY {
		return fmt.Errorf("%w: unknown alignment axis %q", ErrInvalidEvent, axis)
	}
	if !contains(allowed, value) {
		return fmt.Errorf("%w: alignment %q on axis %s", ErrInvalidEvent, value, axis)
	}
	for _, r := range group {
		dom.SetFlag(r.node, "checked", r.value == value)
	}
	dom.SetAttr(d.root, "data-align-"+string(axis), value)
	return nil
}

// SetAntialiasing switches between smooth and pixelated image scaling.
func (d *ImageDiff) SetAntialiasing(on bool) {
	if d.antialiasing != nil {
		dom.SetFlag(d.antialiasing, "checked", on)
	}
	rendering := "pixelated"
	if on {
		rendering = ""
	}
	for _, img := range d.imgs {
		dom.SetStyle(img, "image-rendering", rendering)
	}
}

func bindImageDiff(root *html.Node, index int) (*ImageDiff, error) {
	id := dom.GetAttr(root, "id")
	if id == "" {
		id = ImageDiffIDPrefix + strconv.Itoa(index)
		dom.SetAttr(root, "id", id)
	}

	d := &ImageDiff{
		id:           id,
		root:         root,
		panes:        dom.FindAll(root, dom.ByClass(ClassImageSplit)),
		zoomInput:    dom.Find(root, dom.ByClass(ClassZoom)),
		blendInput:   dom.Find(root, dom.ByClass(ClassBlend)),
		alignXGroup:  dom.Find(root, dom.ByClass(ClassAlignXGroup)),
		blendGroup:   dom.Find(root, dom.ByClass(ClassBlendGroup)),
		antialiasing: dom.Find(root, dom.ByClass(ClassAntialiasing)),
		zoom:         DefaultZoom,
		zoomMin:      DefaultZoomMin,
		zoomMax:      DefaultZoomMax,
		zoomStep:     DefaultZoomStep,
		blend:        DefaultBlend,
	}

	var imgs []*html.Node
	for _, p := range d.panes {
		imgs = append(imgs, dom.FindAll(p, dom.ByTag("img"))...)
	}
	if len(imgs) != 2 {
		return nil, markupErr(CodeImageCount, id, "expected 2 images, found %d", len(imgs))
	}
	d.imgs = [2]*html.Node{imgs[0], imgs[1]}

	d.modes = radios(root, ClassViewMode)
	d.alignX = radios(root, ClassAlignX)
	d.alignY = radios(root, ClassAlignY)
	if len(d.modes) == 0 {
		return nil, markupErr(CodeMissingControl, id, "no view-mode controls")
	}

	var err error
	if d.zoomInput != nil {
		if d.zoom, err = numAttr(d.zoomInput, "value", DefaultZoom); err == nil {
			if d.zoomMin, err = numAttr(d.zoomInput, "min", DefaultZoomMin); err == nil {
				if d.zoomMax, err = numAttr(d.zoomInput, "max", DefaultZoomMax); err == nil {
					d.zoomStep, err = numAttr(d.zoomInput, "step", DefaultZoomStep)
				}
			}
		}
		if err != nil {
			return nil, &MarkupError{Code: CodeInvalidValue, Target: id, Message: "bad zoom slider", Cause: err}
		}
	}
	if d.blendInput != nil {
		if d.blend, err = numAttr(d.blendInput, "value", DefaultBlend); err != nil {
			return nil, &MarkupError{Code: CodeInvalidValue, Target: id, Message: "bad blend slider", Cause: err}
		}
	}

	mode := ModeSideBySide
	for _, r := range d.modes {
		if _, err := ParseImageMode(r.value); err != nil {
			return nil, &MarkupError{Code: CodeInvalidValue, Target: id, Message: "bad view-mode value", Cause: err}
		}
		if dom.HasAttr(r.node, "checked") {
			mode = ImageMode(r.value)
		}
	}

	// Bring the tree in line with the initial state.
	if err := d.SetMode(mode); err != nil {
		return nil, err
	}
	d.SetZoom(d.zoom)
	if d.antialiasing != nil {
		d.SetAntialiasing(dom.HasAttr(d.antialiasing, "checked"))
	}
	return d, nil
}

func radios(root *html.Node, class string) []radio {
	var out []radio
	for _, n := range dom.FindAll(root, dom.ByClass(class)) {
		if n.Data != "input" {
			continue
		}
		out = append(out, radio{value: dom.GetAttr(n, "value"), node: n})
	}
	return out
}

func numAttr(n *html.Node, key string, def float64) (float64, error) {
	s, ok := dom.Attr(n, key)
	if !ok || strings.TrimSpace(s) == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, s, err)
	}
	return v, nil
}

func opacityOf(img *html.Node) float64 {
	s, ok := dom.Style(img, "opacity")
	if !ok {
		return 1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(round9(v), 'f', -1, 64)
}

func round9(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
