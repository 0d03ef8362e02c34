package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/xdg/appbridge/internal/bridge"
)

// TestRecorderInterface verifies Recorder implements bridge.Observer.
func TestRecorderInterface(_ *testing.T) {
	var _ bridge.Observer = NewRecorder()
}

func TestRecorderAttempts(t *testing.T) {
	r := NewRecorder()

	r.AttemptStarted("req", "InDesign 2025", 0)
	if got := testutil.ToFloat64(r.InFlight); got != 1 {
		t.Errorf("InFlight = %v, want 1", got)
	}

	r.AttemptFinished("req", bridge.Attempt{Identity: "InDesign 2025", Class: bridge.ClassInfrastructure, Duration: 20 * time.Millisecond})
	r.AttemptStarted("req", "InDesign 2024", 1)
	r.AttemptFinished("req", bridge.Attempt{Identity: "InDesign 2024", Class: bridge.ClassSuccess, Duration: 300 * time.Millisecond})

	if got := testutil.ToFloat64(r.InFlight); got != 0 {
		t.Errorf("InFlight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.AttemptsTotal.WithLabelValues("InDesign 2025", "infrastructure")); got != 1 {
		t.Errorf("attempts{InDesign 2025, infrastructure} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.AttemptsTotal.WithLabelValues("InDesign 2024", "success")); got != 1 {
		t.Errorf("attempts{InDesign 2024, success} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.AttemptDuration); got != 2 {
		t.Errorf("duration series = %d, want 2", got)
	}
}

func TestRecorderRequests(t *testing.T) {
	r := NewRecorder()

	r.RequestFinished("a", bridge.Result{Success: true}, time.Second)
	r.RequestFinished("b", bridge.Result{Success: true}, time.Second)
	r.RequestFinished("c", bridge.Result{}, time.Second)

	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("success")); got != 2 {
		t.Errorf("requests{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("failed")); got != 1 {
		t.Errorf("requests{failed} = %v, want 1", got)
	}
}

func TestRecorderWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RequestFinished("a", bridge.Result{Success: true}, 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "appbridge.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("os.ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), `appbridge_requests_total{status="success"} 1`) {
		t.Errorf("textfile missing request counter:\n%s", data)
	}
}

func TestRecorderRegistriesAreIndependent(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	a.RequestFinished("x", bridge.Result{Success: true}, time.Second)

	if got := testutil.ToFloat64(b.RequestsTotal.WithLabelValues("success")); got != 0 {
		t.Errorf("second recorder saw %v requests, want 0", got)
	}
}
