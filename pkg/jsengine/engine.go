// Package jsengine runs JavaScript against a loaded report.
//
// Scripts see a `viewer` global whose methods map onto the viewer controllers,
// plus `console` (routed to the logger and captured) and a `json` helper.
// Scripts run synchronously on the caller's goroutine; there are no timers.
package jsengine

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dop251/goja"

	"github.com/devicelab-dev/reportview/pkg/logger"
	"github.com/devicelab-dev/reportview/pkg/viewer"
)

// Engine wraps a goja runtime bound to one viewer App.
type Engine struct {
	runtime *goja.Runtime
	app     *viewer.App
	console []string
	mu      sync.Mutex
}

// New creates an engine for app.
func New(app *viewer.App) *Engine {
	e := &Engine{
		runtime: goja.New(),
		app:     app,
	}
	e.setupBuiltins()
	return e
}

func (e *Engine) setupBuiltins() {
	e.setupConsole()
	e.runtime.Set("json", e.jsonFunc())
	e.runtime.Set("viewer", e.viewerObject())
}

// setupConsole adds console.log, console.error and console.warn.
func (e *Engine) setupConsole() {
	makeConsoleFunc := func(level string, logf func(string, ...interface{})) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = fmt.Sprint(arg.Export())
			}
			line := strings.Join(parts, " ")
			if level != "" {
				line = level + ": " + line
			}
			e.console = append(e.console, line)
			logf("script: %s", line)
			return goja.Undefined()
		}
	}

	console := e.runtime.NewObject()
	console.Set("log", makeConsoleFunc("", logger.Info))
	console.Set("error", makeConsoleFunc("ERROR", logger.Error))
	console.Set("warn", makeConsoleFunc("WARN", logger.Warn))
	e.runtime.Set("console", console)
}

// jsonFunc returns the json() helper: json(str) parses a JSON string.
func (e *Engine) jsonFunc() func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		if len(call.Arguments) < 1 {
			panic(e.runtime.NewTypeError("json requires 1 argument"))
		}

		parse, ok := goja.AssertFunction(e.runtime.Get("JSON").ToObject(e.runtime).Get("parse"))
		if !ok {
			panic(e.runtime.NewTypeError("JSON.parse unavailable"))
		}
		result, err := parse(goja.Undefined(), call.Arguments[0])
		if err != nil {
			panic(e.runtime.NewTypeError(fmt.Sprintf("invalid JSON: %v", err)))
		}
		return result
	}
}

// SetVariable sets a variable accessible in JS as a global.
func (e *Engine) SetVariable(name string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runtime.Set(name, value)
}

// Console returns the lines scripts wrote to the console, in order.
func (e *Engine) Console() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.console...)
}

// Eval evaluates a JavaScript expression and returns the result.
func (e *Engine) Eval(script string) (interface{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.runtime.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("JS eval error: %w", err)
	}
	return result.Export(), nil
}

// RunScript runs a script for its effects on the report.
func (e *Engine) RunScript(script string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.runtime.RunString(script); err != nil {
		return fmt.Errorf("JS runtime error: %w", err)
	}
	return nil
}

// Close interrupts any script still running. Safe to call multiple times.
func (e *Engine) Close() {
	e.runtime.Interrupt("engine closed")
}
