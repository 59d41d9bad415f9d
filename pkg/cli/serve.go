package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/reportview/pkg/config"
	"github.com/devicelab-dev/reportview/pkg/logger"
	"github.com/devicelab-dev/reportview/pkg/viewer"
)

var serveCommand = &cli.Command{
	Name:      "serve",
	Usage:     "Serve a report and apply viewer events posted to it",
	ArgsUsage: "<report.html>",
	Description: `Serve a report over HTTP. The page posts each interaction to /events and
reloads; state lives in the server until it exits.

Endpoints:
  GET  /         current document
  POST /events   JSON event, e.g. {"type":"select-tab","target":"r-foo","value":"svg"}
  GET  /reports  report states as JSON

Examples:
  reportview serve report.html
  reportview serve --listen 0.0.0.0:9000 report.html`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "listen",
			Usage: "Listen address (default: config listen, then " + config.DefaultListen + ")",
		},
	},
	Action: runServe,
}

func runServe(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one report file is required")
	}
	setupLogging(c, true)

	cfg, err := loadWorkspaceConfig(c)
	if err != nil {
		return err
	}
	addr := cfg.ListenAddr()
	if c.IsSet("listen") {
		addr = c.String("listen")
	}

	app, err := loadReport(c.Args().First())
	if err != nil {
		return err
	}
	if err := applyConfig(app, cfg); err != nil {
		return err
	}

	session := viewer.NewSession(app)
	defer session.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(session),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving %s on http://%s", c.Args().First(), addr)
		errCh <- srv.ListenAndServe()
	}()
	fmt.Fprintf(c.App.Writer, "Serving on http://%s (Ctrl+C to stop)\n", addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// newServer routes every request through session.
func newServer(session *viewer.Session) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := session.Render(r.Context(), &buf); err != nil {
			httpError(w, err)
			return
		}
		page := strings.Replace(buf.String(), "</body>", "<script>"+clientScript+"</script></body>", 1)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})

	mux.HandleFunc("POST /events", func(w http.ResponseWriter, r *http.Request) {
		var ev viewer.Event
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&ev); err != nil {
			http.Error(w, "invalid event: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := session.Dispatch(r.Context(), ev); err != nil {
			logger.Warn("event %s rejected: %v", ev.Type, err)
			httpError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /reports", func(w http.ResponseWriter, r *http.Request) {
		var states []viewer.ReportState
		err := session.Do(r.Context(), func(a *viewer.App) error {
			states = a.State()
			return nil
		})
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(states)
	})

	return mux
}

func httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, viewer.ErrUnknownTarget):
		status = http.StatusNotFound
	case errors.Is(err, viewer.ErrInvalidEvent), errors.Is(err, viewer.ErrUnknownImageMode):
		status = http.StatusBadRequest
	case errors.Is(err, viewer.ErrSessionClosed):
		status = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), status)
}

// clientScript posts page interactions to /events and reloads.
const clientScript = `(function () {
  function post(ev) {
    fetch('/events', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(ev)})
      .then(function (r) { if (r.ok) { location.reload(); } });
  }
  function reportOf(el) { var s = el.closest('.test-report'); return s ? s.id : ''; }
  function imageOf(el) { var d = el.closest('.image-diff'); return d ? d.id : ''; }
  function has(el, c) { return el.classList && el.classList.contains(c); }

  document.addEventListener('click', function (e) {
    var t = e.target;
    if (has(t, 'report-toggle')) { post({type: 'toggle', target: reportOf(t)}); }
    else if (has(t, 'global-diff-format')) { post({type: 'global-format', value: t.value}); }
    else if (has(t, 'global-image-view-mode')) { post({type: 'global-image-mode', value: t.value}); }
    else if (has(t, 'image-zoom-plus')) { post({type: 'image-zoom-in', target: imageOf(t)}); }
    else if (has(t, 'image-zoom-minus')) { post({type: 'image-zoom-out', target: imageOf(t)}); }
  });

  var imageEvents = {
    'image-view-mode': 'image-mode', 'image-zoom': 'image-zoom', 'image-blend': 'image-blend',
    'image-align-x': 'image-align-x', 'image-align-y': 'image-align-y', 'antialiasing': 'antialiasing'
  };
  document.addEventListener('change', function (e) {
    var t = e.target;
    if (t.id === 'filter-search') { post({type: 'search', value: t.value}); return; }
    if (has(t, 'filter-format')) { post({type: 'filter-format', value: t.value, checked: t.checked}); return; }
    if (has(t, 'report-tab')) { post({type: 'select-tab', target: reportOf(t), value: t.value}); return; }
    if (has(t, 'file-diff-tab')) {
      var m = /report-file-(\S+)/.exec(t.closest('.report-file').className);
      post({type: 'select-diff-kind', target: reportOf(t), value: (m ? m[1] : '') + ':' + t.value});
      return;
    }
    for (var c in imageEvents) {
      if (has(t, c)) { post({type: imageEvents[c], target: imageOf(t), value: t.value, checked: t.checked}); return; }
    }
  });
})();`
