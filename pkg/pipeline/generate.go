package pipeline

import (
	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/render"
)

// paletteSalt decorrelates the colour stream from the walk stream so that
// choosing another spectrum never changes the shape of the drawing.
const paletteSalt = 0x9e3779b97f4a7c15

// Generate fills a grid with random walks and paints them. It returns the
// scene and the name of the spectrum actually used.
func Generate(opts Options) (render.Scene, string, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return render.Scene{}, "", err
	}

	session, err := grid.NewSession(opts.Width, opts.Height, grid.NewRand(opts.Seed))
	if err != nil {
		return render.Scene{}, "", err
	}
	spectrum, err := NewSpectrum(opts.Spectrum, opts.Seed)
	if err != nil {
		return render.Scene{}, "", err
	}

	var paths []grid.Path
	for p, err := range session.FillAll() {
		if err != nil {
			return render.Scene{}, "", err
		}
		paths = append(paths, p)
		if opts.Progress != nil {
			opts.Progress(session.Visited(), opts.Width*opts.Height)
		}
		if opts.MaxPaths > 0 && len(paths) == opts.MaxPaths {
			break
		}
	}

	cycle := palette.NewCycle(spectrum.Colors(palette.DefaultSteps))
	scene := render.BuildScene(opts.Width, opts.Height, opts.CellSize, opts.Seed, paths, cycle)

	opts.Logger.Debug("generated scene",
		"width", opts.Width,
		"height", opts.Height,
		"paths", scene.Paths,
		"spectrum", spectrum.Name)
	return scene, spectrum.Name, nil
}

// NewSpectrum resolves the spectrum name for a drawing seeded with seed.
// Random spectra come out the same for the same seed.
func NewSpectrum(name string, seed uint64) (palette.Spectrum, error) {
	return palette.New(name, grid.NewRand(seed^paletteSalt))
}
