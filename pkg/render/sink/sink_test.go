package sink

import (
	"testing"

	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/render"
)

func testScene(t *testing.T, w, h int, seed uint64) render.Scene {
	t.Helper()
	s, err := grid.NewSession(w, h, grid.NewRand(seed))
	if err != nil {
		t.Fatal(err)
	}
	var paths []grid.Path
	for p, err := range s.FillAll() {
		if err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	spectrum, err := palette.New(palette.Dusk, nil)
	if err != nil {
		t.Fatal(err)
	}
	return render.BuildScene(w, h, 20, seed, paths, palette.NewCycle(spectrum.Colors(palette.DefaultSteps)))
}
