package jsengine

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/devicelab-dev/reportview/pkg/viewer"
)

// viewerObject returns the viewer global.
func (e *Engine) viewerObject() *goja.Object {
	obj := e.runtime.NewObject()
	set := func(name string, fn func(goja.FunctionCall) goja.Value) {
		if err := obj.Set(name, fn); err != nil {
			panic(e.runtime.NewTypeError(fmt.Sprintf("failed to set viewer.%s: %v", name, err)))
		}
	}

	// viewer.reports() - snapshot of every report
	set("reports", func(call goja.FunctionCall) goja.Value {
		states := e.app.State()
		out := make([]interface{}, len(states))
		for i, s := range states {
			formats := make([]interface{}, len(s.Formats))
			for j, f := range s.Formats {
				formats[j] = string(f)
			}
			out[i] = map[string]interface{}{
				"name":     s.Name,
				"hidden":   s.Hidden,
				"expanded": s.Expanded,
				"tab":      string(s.Tab),
				"formats":  formats,
			}
		}
		return e.runtime.ToValue(out)
	})

	// Report controller
	set("toggle", func(call goja.FunctionCall) goja.Value {
		e.report(call, 0).ToggleExpand()
		return goja.Undefined()
	})
	set("expanded", func(call goja.FunctionCall) goja.Value {
		return e.runtime.ToValue(e.report(call, 0).Expanded())
	})
	set("selectTab", func(call goja.FunctionCall) goja.Value {
		e.report(call, 0).SelectTab(e.format(call, 1))
		return goja.Undefined()
	})
	set("currentTab", func(call goja.FunctionCall) goja.Value {
		if f, ok := e.report(call, 0).CurrentTab(); ok {
			return e.runtime.ToValue(string(f))
		}
		return goja.Undefined()
	})

	// File-diff controller
	set("selectDiffKind", func(call goja.FunctionCall) goja.Value {
		if d := e.fileDiff(call); d != nil {
			d.SelectKind(e.diffKind(call, 2))
		}
		return goja.Undefined()
	})
	set("currentDiffKind", func(call goja.FunctionCall) goja.Value {
		if d := e.fileDiff(call); d != nil {
			if k, ok := d.CurrentKind(); ok {
				return e.runtime.ToValue(string(k))
			}
		}
		return goja.Undefined()
	})

	// Image-diff controller
	set("setImageMode", func(call goja.FunctionCall) goja.Value {
		e.check(e.image(call).SetMode(viewer.ImageMode(e.arg(call, 1).String())))
		return goja.Undefined()
	})
	set("imageMode", func(call goja.FunctionCall) goja.Value {
		return e.runtime.ToValue(string(e.image(call).Mode()))
	})
	set("setZoom", func(call goja.FunctionCall) goja.Value {
		e.image(call).SetZoom(e.arg(call, 1).ToFloat())
		return goja.Undefined()
	})
	set("zoom", func(call goja.FunctionCall) goja.Value {
		return e.runtime.ToValue(e.image(call).Zoom())
	})
	set("zoomIn", func(call goja.FunctionCall) goja.Value {
		e.image(call).ZoomIn()
		return goja.Undefined()
	})
	set("zoomOut", func(call goja.FunctionCall) goja.Value {
		e.image(call).ZoomOut()
		return goja.Undefined()
	})
	set("setBlend", func(call goja.FunctionCall) goja.Value {
		e.image(call).SetBlend(e.arg(call, 1).ToFloat())
		return goja.Undefined()
	})
	set("setAlign", func(call goja.FunctionCall) goja.Value {
		d := e.image(call)
		e.check(d.SetAlign(viewer.Axis(e.arg(call, 1).String()), e.arg(call, 2).String()))
		return goja.Undefined()
	})
	set("opacities", func(call goja.FunctionCall) goja.Value {
		a, b := e.image(call).Opacities()
		return e.runtime.ToValue([]interface{}{a, b})
	})

	// Global filter and broadcast
	set("search", func(call goja.FunctionCall) goja.Value {
		e.app.SetSearch(e.arg(call, 0).String())
		return goja.Undefined()
	})
	set("filterFormat", func(call goja.FunctionCall) goja.Value {
		e.app.SetFormatFilter(e.format(call, 0), e.arg(call, 1).ToBoolean())
		return goja.Undefined()
	})
	set("changeGlobalDiffFormat", func(call goja.FunctionCall) goja.Value {
		res := e.app.ChangeGlobalDiffFormat(e.format(call, 0))
		return e.runtime.ToValue(map[string]interface{}{"applied": res.Applied, "skipped": res.Skipped})
	})
	set("changeGlobalImageMode", func(call goja.FunctionCall) goja.Value {
		e.check(e.app.ChangeGlobalImageMode(viewer.ImageMode(e.arg(call, 0).String())))
		return goja.Undefined()
	})

	return obj
}

func (e *Engine) arg(call goja.FunctionCall, i int) goja.Value {
	if i >= len(call.Arguments) || goja.IsUndefined(call.Arguments[i]) {
		panic(e.runtime.NewTypeError(fmt.Sprintf("missing argument %d", i+1)))
	}
	return call.Arguments[i]
}

func (e *Engine) check(err error) {
	if err != nil {
		panic(e.runtime.NewGoError(err))
	}
}

func (e *Engine) report(call goja.FunctionCall, i int) *viewer.Report {
	name := e.arg(call, i).String()
	r := e.app.Report(name)
	if r == nil {
		panic(e.runtime.NewGoError(fmt.Errorf("%w: report %q", viewer.ErrUnknownTarget, name)))
	}
	return r
}

func (e *Engine) format(call goja.FunctionCall, i int) viewer.Format {
	f, err := viewer.ParseFormat(e.arg(call, i).String())
	e.check(err)
	return f
}

func (e *Engine) diffKind(call goja.FunctionCall, i int) viewer.DiffKind {
	k, err := viewer.ParseDiffKind(e.arg(call, i).String())
	e.check(err)
	return k
}

// fileDiff resolves (report, format) to the file's diff controller, or nil
// when the file has a single diff representation.
func (e *Engine) fileDiff(call goja.FunctionCall) *viewer.FileDiff {
	file := e.report(call, 0).File(e.format(call, 1))
	if file == nil {
		return nil
	}
	return file.Diff
}

func (e *Engine) image(call goja.FunctionCall) *viewer.ImageDiff {
	target := e.arg(call, 0).String()
	d := e.app.ImageDiff(target)
	if d == nil {
		panic(e.runtime.NewGoError(fmt.Errorf("%w: image diff %q", viewer.ErrUnknownTarget, target)))
	}
	return d
}
