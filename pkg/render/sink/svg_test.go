package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/snaker/pkg/render/styles/handdrawn"
)

func TestRenderSVG(t *testing.T) {
	scene := testScene(t, 6, 4, 1)
	svg := string(RenderSVG(scene))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-3.0 -3.0 126.0 86.0"`) {
		t.Errorf("unexpected header: %s", svg[:min(len(svg), 120)])
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() output not closed")
	}
	if got := strings.Count(svg, `class="block"`); got != 24 {
		t.Errorf("RenderSVG() drew %d blocks, want 24", got)
	}
	if strings.Contains(svg, `class="grid"`) {
		t.Error("grid drawn without WithGridLines")
	}
}

func TestRenderSVG_Options(t *testing.T) {
	scene := testScene(t, 5, 5, 2)

	svg := string(RenderSVG(scene, WithGridLines(), WithUpTo(7), WithBackground("#fffdf5")))
	if got := strings.Count(svg, `class="block"`); got != 7 {
		t.Errorf("WithUpTo(7) drew %d blocks", got)
	}
	if !strings.Contains(svg, `class="grid"`) {
		t.Error("WithGridLines() did not draw the grid")
	}
	if !strings.Contains(svg, `fill="#fffdf5"`) {
		t.Error("WithBackground() missing")
	}

	hd := string(RenderSVG(scene, WithStyle(handdrawn.New(2))))
	if !strings.Contains(hd, `<filter id="paper"`) {
		t.Error("WithStyle(handdrawn) did not use the hand-drawn defs")
	}
	if hd != string(RenderSVG(scene, WithStyle(handdrawn.New(2)))) {
		t.Error("hand-drawn output not reproducible")
	}
}

func TestRenderSVG_SharedFills(t *testing.T) {
	scene := testScene(t, 10, 10, 3)
	svg := string(RenderSVG(scene))

	// every fill referenced by a block is defined exactly once
	blocks := buildBlocks(scene)
	for _, f := range collectFills(blocks) {
		if got := strings.Count(svg, `<pattern id="`+f.ID()+`"`); got != 1 {
			t.Errorf("pattern %s defined %d times", f.ID(), got)
		}
	}
}
