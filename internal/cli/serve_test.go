package cli

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/stipple/pkg/config"
	"github.com/matzehuels/stipple/pkg/observability"
	"github.com/matzehuels/stipple/pkg/pipeline"
	"github.com/matzehuels/stipple/pkg/render/capture"
	"github.com/matzehuels/stipple/pkg/tween"
)

// testServer wires a server to a manually advanced driver over a small
// session with four frames per transition.
func testServer(t *testing.T) (*httptest.Server, *tween.Driver, *tween.Manual) {
	t.Helper()
	quiet := log.New(io.Discard)
	cfg := &config.Config{
		Points:   2000,
		Width:    48,
		Height:   48,
		Duration: 200 * time.Millisecond,
		Sequence: []string{"phyllotaxis", "spiral", "random"},
	}
	ctx := context.Background()
	sess, err := pipeline.NewRunner(nil, quiet).NewSession(ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	latest := capture.NewLatest()
	clock := tween.NewManual()
	d, err := sess.NewDriver(
		&capture.Recorder{Canvas: sess.Canvas, Sink: latest, Format: "http"},
		clock,
		tween.WithHooks(metrics),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(newServer(ctx, d, latest, reg, quiet).routes())
	t.Cleanup(ts.Close)
	return ts, d, clock
}

func getStatus(t *testing.T, resp *http.Response) tween.Status {
	t.Helper()
	defer resp.Body.Close()
	var st tween.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return st
}

func post(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestServeFrame(t *testing.T) {
	ts, _, clock := testServer(t)

	resp, err := http.Get(ts.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("before first tick: status = %d, want 503", resp.StatusCode)
	}

	clock.Advance(50 * time.Millisecond)

	resp, err = http.Get(ts.URL + "/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	img, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if img.Bounds().Dx() != 48 {
		t.Errorf("frame width = %d, want 48", img.Bounds().Dx())
	}
}

func TestServeStatus(t *testing.T) {
	ts, _, clock := testServer(t)
	clock.Advance(100 * time.Millisecond)

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatal(err)
	}
	st := getStatus(t, resp)
	if st.State != "transitioning" || st.Layout != "phyllotaxis" {
		t.Errorf("status = %+v", st)
	}
	if st.Progress <= 0 || st.Progress >= 1 {
		t.Errorf("progress = %v, want mid-transition", st.Progress)
	}
}

func TestServePauseResume(t *testing.T) {
	ts, d, _ := testServer(t)

	resp := post(t, ts.URL+"/resume")
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("resume while running: status = %d, want 409", resp.StatusCode)
	}

	if st := getStatus(t, post(t, ts.URL+"/pause")); st.State != "idle" {
		t.Errorf("after pause: state = %q", st.State)
	}
	if d.State() != tween.Idle {
		t.Fatalf("driver state = %v", d.State())
	}

	resp = post(t, ts.URL+"/resume")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("resume: status = %d", resp.StatusCode)
	}
	if st := getStatus(t, resp); st.State != "transitioning" {
		t.Errorf("after resume: state = %q", st.State)
	}
}

func TestServeSkip(t *testing.T) {
	ts, _, _ := testServer(t)

	st := getStatus(t, post(t, ts.URL+"/skip"))
	if st.Layout != "spiral" || st.Index != 1 {
		t.Errorf("after skip: %+v", st)
	}
}

func TestServeMetrics(t *testing.T) {
	ts, _, clock := testServer(t)
	for range 5 {
		clock.Advance(50 * time.Millisecond)
	}

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"stipple_frames_total", "stipple_transitions_total"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestServeRejectsWrongMethod(t *testing.T) {
	ts, _, _ := testServer(t)
	resp, err := http.Get(ts.URL + "/skip")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /skip: status = %d, want 405", resp.StatusCode)
	}
}
