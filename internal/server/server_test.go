package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/pipeline"
	"github.com/matzehuels/snaker/pkg/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	runner := pipeline.NewRunner(nil, nil, nil)
	srv := New(runner, storage.NewMemoryStore(),
		WithDefaults(pipeline.Options{CellSize: 20, Spectrum: "dusk"}),
		WithInterval(time.Millisecond))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func createDrawing(t *testing.T, ts *httptest.Server, body string) storage.Record {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/drawings", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var rec storage.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatal(err)
	}
	return rec
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestCreateAndGet(t *testing.T) {
	ts := newTestServer(t)
	rec := createDrawing(t, ts, `{"width": 8, "height": 6, "seed": 3}`)

	if err := errs.ValidateDrawingID(rec.ID); err != nil {
		t.Errorf("id %q: %v", rec.ID, err)
	}
	if rec.Steps != 48 || rec.Paths == 0 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Options.CellSize != 20 || rec.Options.Spectrum != "dusk" {
		t.Errorf("defaults not applied: %+v", rec.Options)
	}

	resp, err := http.Get(ts.URL + "/api/drawings/" + rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var got storage.Record
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.ID != rec.ID || got.SceneHash != rec.SceneHash {
		t.Errorf("GET returned %+v", got)
	}
}

func TestCreate_RandomSeed(t *testing.T) {
	ts := newTestServer(t)
	a := createDrawing(t, ts, `{"width": 5, "height": 5}`)
	b := createDrawing(t, ts, `{"width": 5, "height": 5}`)
	if a.Options.Seed == 0 || a.Options.Seed == b.Options.Seed {
		t.Errorf("seeds = %d, %d", a.Options.Seed, b.Options.Seed)
	}
}

func TestCreate_Invalid(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name, body string
		code       errs.Code
	}{
		{"malformed", `{"width":`, errs.ErrCodeInvalidInput},
		{"unknown field", `{"colour": "red"}`, errs.ErrCodeInvalidInput},
		{"dimensions", `{"width": -2, "height": 3}`, errs.ErrCodeInvalidDimensions},
		{"style", `{"width": 2, "height": 3, "style": "fancy"}`, errs.ErrCodeInvalidStyle},
		{"format", `{"width": 2, "height": 3, "formats": ["gif"]}`, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/drawings", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if e := decodeError(t, resp); e.Error != tt.code {
				t.Errorf("error = %s, want %s", e.Error, tt.code)
			}
		})
	}
}

func TestArtifacts(t *testing.T) {
	ts := newTestServer(t)
	rec := createDrawing(t, ts, `{"width": 6, "height": 4, "seed": 11, "style": "handdrawn"}`)

	tests := []struct {
		format, contentType, prefix string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"json", "application/json", "{"},
		{"dot", "text/vnd.graphviz", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/api/drawings/" + rec.ID + "." + tt.format)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q", ct)
			}
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(resp.Body)
			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("body starts with %q", buf.String()[:min(20, buf.Len())])
			}
		})
	}

	resp, err := http.Get(ts.URL + "/api/drawings/" + rec.ID + ".gif")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("gif status = %d, want 400", resp.StatusCode)
	}
}

func TestArtifacts_Reproducible(t *testing.T) {
	ts := newTestServer(t)
	rec := createDrawing(t, ts, `{"width": 7, "height": 7, "seed": 5, "spectrum": "random"}`)

	fetch := func() string {
		resp, err := http.Get(ts.URL + "/api/drawings/" + rec.ID + ".json")
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return buf.String()
	}
	if a, b := fetch(), fetch(); a != b {
		t.Error("same drawing rendered differently")
	}
}

func TestNotFoundAndBadID(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		path   string
		status int
	}{
		{"/api/drawings/00000000-0000-0000-0000-000000000000", http.StatusNotFound},
		{"/api/drawings/00000000-0000-0000-0000-000000000000.svg", http.StatusNotFound},
		{"/api/drawings/not-an-id", http.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := http.Get(ts.URL + tt.path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.status {
			t.Errorf("GET %s = %d, want %d", tt.path, resp.StatusCode, tt.status)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	ts := newTestServer(t)
	a := createDrawing(t, ts, `{"width": 3, "height": 3, "seed": 1}`)
	createDrawing(t, ts, `{"width": 3, "height": 3, "seed": 2}`)

	resp, err := http.Get(ts.URL + "/api/drawings?limit=10")
	if err != nil {
		t.Fatal(err)
	}
	var list []storage.Record
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if len(list) != 2 {
		t.Errorf("list has %d records, want 2", len(list))
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/drawings/"+a.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/drawings/" + a.ID)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete = %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/drawings?limit=x")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad limit = %d", resp.StatusCode)
	}
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	rec := createDrawing(t, ts, `{"width": 4, "height": 3, "seed": 9}`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/drawings/" + rec.ID + "/stream"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.CloseNow()

	var hello StreamMessage
	if err := wsjson.Read(ctx, conn, &hello); err != nil {
		t.Fatal(err)
	}
	if hello.Type != MessageScene || hello.Width != 4 || hello.Height != 3 || hello.Steps != 12 {
		t.Fatalf("hello = %+v", hello)
	}

	seen := make(map[[2]int]bool)
	for i := range 12 {
		var msg StreamMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Type != MessageStep || msg.Step == nil || msg.Step.Index != i {
			t.Fatalf("message %d = %+v", i, msg)
		}
		seen[[2]int{msg.Step.X, msg.Step.Y}] = true
	}
	if len(seen) != 12 {
		t.Errorf("stream covered %d cells, want 12", len(seen))
	}

	var done StreamMessage
	if err := wsjson.Read(ctx, conn, &done); err != nil {
		t.Fatal(err)
	}
	if done.Type != MessageDone || done.Steps != 12 {
		t.Errorf("done = %+v", done)
	}
}

func TestStream_BadInterval(t *testing.T) {
	ts := newTestServer(t)
	rec := createDrawing(t, ts, `{"width": 2, "height": 2}`)
	resp, err := http.Get(ts.URL + "/api/drawings/" + rec.ID + "/stream?interval=soon")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.New(errs.ErrCodeInvalidStyle, "x"), http.StatusBadRequest},
		{errs.New(errs.ErrCodeDrawingNotFound, "x"), http.StatusNotFound},
		{errs.New(errs.ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{errs.New(errs.ErrCodeStorage, "x"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
