package viewer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestSession_SerializesEvents(t *testing.T) {
	s := NewSession(standardFixture(t))
	defer s.Close()

	ctx := context.Background()
	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ev := Event{Type: EventImageZoomIn, Target: "0"}
			if i%2 == 1 {
				ev = Event{Type: EventToggle, Target: "bibliography-basic"}
			}
			if err := s.Dispatch(ctx, ev); err != nil {
				t.Errorf("Dispatch failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	err := s.Do(ctx, func(a *App) error {
		// 25 toggles leave the report collapsed; 25 zoom steps from 1.
		if a.Report("bibliography-basic").Expanded() {
			t.Error("expected collapsed after an odd number of toggles")
		}
		if z := a.ImageDiff("0").Zoom(); z != 2.25 {
			t.Errorf("expected zoom 2.25, got %v", z)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestSession_ReturnsHandlerError(t *testing.T) {
	s := NewSession(standardFixture(t))
	defer s.Close()

	err := s.Dispatch(context.Background(), Event{Type: EventToggle, Target: "missing"})
	if !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestSession_Render(t *testing.T) {
	s := NewSession(standardFixture(t))
	defer s.Close()

	var buf bytes.Buffer
	if err := s.Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `id="r-bibliography-basic"`) {
		t.Error("rendered document is missing a report")
	}
}

func TestSession_Closed(t *testing.T) {
	s := NewSession(standardFixture(t))
	s.Close()
	s.Close()

	err := s.Dispatch(context.Background(), Event{Type: EventToggle, Target: "bibliography-basic"})
	if !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
}

func TestSession_RecoversFromPanickingJob(t *testing.T) {
	s := NewSession(standardFixture(t))
	defer s.Close()

	ctx := context.Background()
	err := s.Do(ctx, func(*App) error { panic("boom") })
	if !errors.Is(err, ErrJobPanicked) || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected ErrJobPanicked carrying the panic value, got %v", err)
	}

	if err := s.Dispatch(ctx, Event{Type: EventToggle, Target: "bibliography-basic"}); err != nil {
		t.Fatalf("session stopped serving after a panic: %v", err)
	}
	err = s.Do(ctx, func(a *App) error {
		if a.Report("bibliography-basic").Expanded() {
			t.Error("expected the toggle to apply")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
