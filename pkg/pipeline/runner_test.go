package pipeline

import (
	"bytes"
	"context"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/snaker/pkg/cache"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/observability"
	"github.com/matzehuels/snaker/pkg/render/sink"
)

// memCache is an in-memory cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func testOptions() Options {
	return Options{
		Width:    12,
		Height:   9,
		CellSize: 20,
		Seed:     7,
		Spectrum: "dusk",
		Formats:  []string{FormatSVG, FormatJSON, FormatDOT},
	}
}

func TestGenerate_FillsGrid(t *testing.T) {
	scene, spectrum, err := Generate(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if spectrum != "dusk" {
		t.Errorf("spectrum = %q, want dusk", spectrum)
	}
	if len(scene.Steps) != 12*9 {
		t.Errorf("scene has %d steps, want %d", len(scene.Steps), 12*9)
	}
	if scene.Paths == 0 || scene.Steps[len(scene.Steps)-1].Path != scene.Paths-1 {
		t.Errorf("paths = %d, last step in path %d", scene.Paths, scene.Steps[len(scene.Steps)-1].Path)
	}
}

func TestGenerate_MaxPaths(t *testing.T) {
	opts := testOptions()
	opts.MaxPaths = 2
	scene, _, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	if scene.Paths > 2 {
		t.Errorf("paths = %d, want at most 2", scene.Paths)
	}
	if len(scene.Steps) == 0 {
		t.Error("scene is empty")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _, err := Generate(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, _, err := Generate(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.Steps, b.Steps) {
		t.Error("same options produced different scenes")
	}
}

func TestGenerate_SpectrumDoesNotChangeWalks(t *testing.T) {
	a, _, err := Generate(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Spectrum = "violet"
	b, _, err := Generate(opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Steps {
		if a.Steps[i].PathStep != b.Steps[i].PathStep {
			t.Fatalf("step %d differs between spectra", i)
		}
	}
}

func TestRunner_Execute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{FormatSVG, FormatJSON, FormatDOT} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Errorf("svg artifact starts with %q", res.Artifacts[FormatSVG][:min(20, len(res.Artifacts[FormatSVG]))])
	}
	if res.Stats.StepCount != 12*9 || res.Stats.PathCount != res.Scene.Paths {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.SceneHash == "" {
		t.Error("scene hash not set")
	}

	doc, err := sink.ReadJSON(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact does not read back: %v", err)
	}
	if doc.Spectrum != "dusk" || doc.Style != DefaultStyle {
		t.Errorf("json metadata = %q/%q", doc.Spectrum, doc.Style)
	}
}

func TestRunner_Caching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.GenerateHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}
	if c.sets != 4 { // scene + three artifacts
		t.Errorf("cache writes = %d, want 4", c.sets)
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.GenerateHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !slices.Equal(first.Scene.Steps, second.Scene.Steps) {
		t.Error("cached scene differs from generated scene")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	// a new format renders only what is missing
	opts := testOptions()
	opts.Formats = []string{FormatSVG, FormatDOT, FormatJSON}
	opts.Style = StyleHanddrawn
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.GenerateHit || third.CacheInfo.RenderHit {
		t.Errorf("style change: %+v", third.CacheInfo)
	}
	if bytes.Equal(first.Artifacts[FormatSVG], third.Artifacts[FormatSVG]) {
		t.Error("handdrawn svg equals simple svg")
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], third.Artifacts[FormatDOT]) {
		t.Error("dot output should not depend on style")
	}
}

func TestRunner_Refresh(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.GenerateHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh hit the cache: %+v", res.CacheInfo)
	}
}

func TestRunner_CorruptSceneIsRegenerated(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	opts := testOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	c.data[r.Keyer.DrawingKey(opts.DrawingKeyOpts())] = []byte("{not json")

	scene, _, hit, err := r.GenerateWithCacheInfo(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("corrupt entry reported as hit")
	}
	if len(scene.Steps) != 12*9 {
		t.Errorf("scene has %d steps", len(scene.Steps))
	}
}

func TestRunner_InvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := testOptions()
	opts.Formats = []string{"gif"}
	if _, err := r.Execute(context.Background(), opts); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Execute() = %v, want INVALID_FORMAT", err)
	}
}

func TestRenderFormat_Unsupported(t *testing.T) {
	scene, _, err := Generate(testOptions())
	if err != nil {
		t.Fatal(err)
	}
	_, err = RenderFormat(context.Background(), scene, "dusk", "gif", testOptions())
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("RenderFormat(gif) = %v, want UNSUPPORTED", err)
	}
}

// cacheEvents counts cache hook calls.
type cacheEvents struct {
	mu                 sync.Mutex
	hits, misses, sets int
}

func (e *cacheEvents) OnCacheHit(context.Context, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hits++
}

func (e *cacheEvents) OnCacheMiss(context.Context, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.misses++
}

func (e *cacheEvents) OnCacheSet(context.Context, string, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sets++
}

func TestRunner_DisabledCacheSkipsLookups(t *testing.T) {
	events := &cacheEvents{}
	observability.SetCacheHooks(events)
	t.Cleanup(observability.Reset)

	r := NewRunner(cache.NewNullCache("--no-cache"), nil, nil)
	res, err := r.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.GenerateHit || res.CacheInfo.RenderHit {
		t.Errorf("disabled cache reported hits: %+v", res.CacheInfo)
	}
	if res.SceneHash == "" {
		t.Error("scene hash should be computed without a cache")
	}
	if events.hits+events.misses+events.sets != 0 {
		t.Errorf("cache events with caching disabled: %d hits, %d misses, %d sets",
			events.hits, events.misses, events.sets)
	}
}

func TestGenerate_ReportsProgress(t *testing.T) {
	tests := []struct {
		name     string
		maxPaths int
	}{
		{"whole grid", 0},
		{"stops early", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			opts.MaxPaths = tt.maxPaths
			var calls, last int
			opts.Progress = func(filled, total int) {
				calls++
				if total != opts.Width*opts.Height {
					t.Errorf("total = %d, want %d", total, opts.Width*opts.Height)
				}
				if filled <= last {
					t.Errorf("filled went from %d to %d", last, filled)
				}
				last = filled
			}

			scene, _, err := Generate(opts)
			if err != nil {
				t.Fatal(err)
			}
			if calls != scene.Paths {
				t.Errorf("progress calls = %d, want one per snake (%d)", calls, scene.Paths)
			}
			if last != len(scene.Steps) {
				t.Errorf("last filled = %d, want %d", last, len(scene.Steps))
			}
		})
	}
}
