// Package palette provides the colour spectra used to paint snakes.
//
// A [Spectrum] is a list of colour stops. [Spectrum.Colors] samples it into
// a ping-pong sequence (out to the last stop and back) so that a [Cycle]
// walking the sequence never jumps between the two ends of the spectrum.
// Stops are interpolated in CIE-L*a*b* space with go-colorful.
package palette

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Rand is the source used for random spectra. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Preset spectrum names.
const (
	Dusk    = "dusk"
	Violet  = "violet"
	Random3 = "random3"
	Random6 = "random6"
	Random  = "random" // one of the above, chosen uniformly
)

// DefaultSteps is the number of samples taken on the way out; a full cycle
// holds twice as many colours.
const DefaultSteps = 40

// Names lists every accepted spectrum name.
var Names = []string{Random, Dusk, Violet, Random3, Random6}

var presets = map[string][]string{
	Dusk:   {"#000000", "#327fb1", "#ffaf55"},
	Violet: {"#c39de0", "#9e62cc", "#824f8a", "#441c63", "#ff0000", "#310752", "#170326", "#f0cba3"},
}

// Spectrum is an ordered list of colour stops.
type Spectrum struct {
	Name  string
	Stops []colorful.Color
}

// New returns the spectrum called name. Random spectra draw their stops from
// rng, as does Random when choosing which spectrum to use.
func New(name string, rng Rand) (Spectrum, error) {
	switch name {
	case Random, "":
		return New([]string{Dusk, Violet, Random3, Random6}[rng.IntN(4)], rng)
	case Random3:
		return randomSpectrum(name, 3, rng), nil
	case Random6:
		return randomSpectrum(name, 6, rng), nil
	}
	hexes, ok := presets[name]
	if !ok {
		return Spectrum{}, fmt.Errorf("unknown spectrum %q (must be one of: %s)", name, strings.Join(Names, ", "))
	}
	return FromHex(name, hexes...)
}

// FromHex builds a spectrum from "#rrggbb" stops.
func FromHex(name string, hexes ...string) (Spectrum, error) {
	if len(hexes) == 0 {
		return Spectrum{}, fmt.Errorf("spectrum %q has no colours", name)
	}
	s := Spectrum{Name: name, Stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Spectrum{}, fmt.Errorf("spectrum %q: %w", name, err)
		}
		s.Stops[i] = c
	}
	return s, nil
}

func randomSpectrum(name string, n int, rng Rand) Spectrum {
	s := Spectrum{Name: name, Stops: make([]colorful.Color, n)}
	for i := range s.Stops {
		c, _ := colorful.Hex(RandomHex(rng))
		s.Stops[i] = c
	}
	return s
}

// RandomHex returns a uniformly random "#rrggbb" colour.
func RandomHex(rng Rand) string {
	return fmt.Sprintf("#%06x", rng.IntN(1<<24))
}

// At returns the colour at position t in [0, 1] along the stops.
func (s Spectrum) At(t float64) colorful.Color {
	if len(s.Stops) == 1 {
		return s.Stops[0]
	}
	t = max(0, min(1, t))
	segments := float64(len(s.Stops) - 1)
	i := min(int(t*segments), len(s.Stops)-2)
	local := t*segments - float64(i)
	return s.Stops[i].BlendLab(s.Stops[i+1], local).Clamped()
}

// Colors samples the spectrum at steps+1 evenly spaced points and returns
// them out and back: samples 0..steps-1 followed by steps..1, 2×steps
// colours in total.
func (s Spectrum) Colors(steps int) []string {
	steps = max(1, steps)
	out := make([]string, 0, 2*steps)
	for i := range steps {
		out = append(out, s.At(float64(i)/float64(steps)).Hex())
	}
	for i := steps; i > 0; i-- {
		out = append(out, s.At(float64(i)/float64(steps)).Hex())
	}
	return out
}

// ChangeLuminance scales each RGB channel of hex by (1+lum), clamping to
// the valid range. lum=-0.7 keeps 30% of each channel.
func ChangeLuminance(hex string, lum float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", err
	}
	scale := func(v float64) float64 {
		return math.Round(max(0, min(255, v*255*(1+lum)))) / 255
	}
	return colorful.Color{R: scale(c.R), G: scale(c.G), B: scale(c.B)}.Hex(), nil
}

// Stroke returns the border colour for a block filled with hex: the fill
// darkened to 30% with 50% alpha ("#rrggbb80"). Unparseable input yields
// translucent black.
func Stroke(hex string) string {
	dark, err := ChangeLuminance(hex, -0.7)
	if err != nil {
		return "#00000080"
	}
	return dark + "80"
}

// Greys returns the grey shades #000000, #323232, #646464 and #969696.
func Greys() []string {
	var out []string
	for v := 0; v < 200; v += 50 {
		out = append(out, fmt.Sprintf("#%02x%02x%02x", v, v, v))
	}
	return out
}

// Cycle hands out colours in order, wrapping at the end.
type Cycle struct {
	colors []string
	next   int
}

// NewCycle creates a cycle over colors. It panics on an empty slice.
func NewCycle(colors []string) *Cycle {
	if len(colors) == 0 {
		panic("palette: empty cycle")
	}
	return &Cycle{colors: slices.Clone(colors)}
}

// Next returns the next colour and advances.
func (c *Cycle) Next() string {
	col := c.colors[c.next]
	c.next = (c.next + 1) % len(c.colors)
	return col
}

// Len returns the cycle length.
func (c *Cycle) Len() int { return len(c.colors) }
