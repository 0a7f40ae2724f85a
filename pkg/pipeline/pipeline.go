// Package pipeline provides the generate → render pipeline for snaker.
//
// The CLI and the HTTP server both produce drawings through this package so
// that a given set of options yields the same bytes everywhere.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Generate: fill a grid with random walks and paint them into a
//     [render.Scene]
//  2. Render: turn the scene into output formats (SVG, JSON, DOT, PNG, PDF)
//
// Both stages are deterministic in their options, so the [Runner] caches
// scenes and artifacts under keys derived from them.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:    40,
//	    Height:   30,
//	    Seed:     7,
//	    Spectrum: "dusk",
//	    Formats:  []string{"svg", "json"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/snaker/pkg/cache"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/grid"
	"github.com/matzehuels/snaker/pkg/palette"
	"github.com/matzehuels/snaker/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultViewWidth is the default drawing width in pixels, used when no
	// grid width is given.
	DefaultViewWidth = 800.0

	// DefaultViewHeight is the default drawing height in pixels.
	DefaultViewHeight = 600.0

	// DefaultCellSize is the default cell edge in pixels.
	DefaultCellSize = 30.0

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0

	// DefaultStyle is the default visual style.
	DefaultStyle = StyleSimple
)

// Style names.
const (
	StyleSimple    = "simple"
	StyleHanddrawn = "handdrawn"
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatDOT   = "dot"   // Graphviz source of the node-link view
	FormatGraph = "graph" // node-link view laid out by Graphviz, as SVG
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT, FormatGraph}

// ValidStyles lists the supported visual styles.
var ValidStyles = []string{StyleSimple, StyleHanddrawn}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatGraph:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Grid options. Width and Height are in cells; when either is zero the
	// grid is sized to fit ViewWidth×ViewHeight pixels.
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	ViewWidth  float64 `json:"view_width,omitempty"`
	ViewHeight float64 `json:"view_height,omitempty"`
	CellSize   float64 `json:"cell_size,omitempty"`
	Seed       uint64  `json:"seed,omitempty"`
	MaxPaths   int     `json:"max_paths,omitempty"` // 0 fills the whole grid

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Style     string   `json:"style,omitempty"`
	Spectrum  string   `json:"spectrum,omitempty"`
	GridLines bool     `json:"grid_lines,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Detailed  bool     `json:"detailed,omitempty"` // label node-link views
	Refresh   bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" bson:"-"`

	// Progress, when set, is called after each snake with the number of
	// cells filled so far and the grid size. It is not called for scenes
	// served from cache.
	Progress func(filled, total int) `json:"-" bson:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the painted grid.
	Scene render.Scene

	// SceneHash is the content hash of the scene's JSON form.
	SceneHash string

	// Spectrum is the resolved spectrum name. It differs from the requested
	// one when "random" was asked for.
	Spectrum string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PathCount    int
	StepCount    int
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GenerateHit bool // Whether the scene came from cache
	RenderHit   bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errs.ValidateChoice(errs.ErrCodeInvalidFormat, "format", format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	return errs.ValidateChoice(errs.ErrCodeInvalidStyle, "style", style, ValidStyles)
}

// ValidateSpectrum checks that a spectrum name is valid.
func ValidateSpectrum(name string) error {
	return errs.ValidateChoice(errs.ErrCodeInvalidSpectrum, "spectrum", name, palette.Names)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate sets grid defaults and validates the grid.
func (o *Options) ValidateForGenerate() error {
	o.SetGenerateDefaults()
	if err := errs.ValidateCellSize(o.CellSize); err != nil {
		return err
	}
	if o.MaxPaths < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max paths cannot be negative, got %d", o.MaxPaths)
	}
	if err := ValidateSpectrum(o.Spectrum); err != nil {
		return err
	}
	return errs.ValidateDimensions(o.Width, o.Height)
}

// SetGenerateDefaults sets default values for scene generation.
func (o *Options) SetGenerateDefaults() {
	if o.CellSize == 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Spectrum == "" {
		o.Spectrum = palette.Random
	}
	if o.Width == 0 || o.Height == 0 {
		if o.ViewWidth == 0 {
			o.ViewWidth = DefaultViewWidth
		}
		if o.ViewHeight == 0 {
			o.ViewHeight = DefaultViewHeight
		}
		if o.CellSize > 0 {
			w, h := grid.DimensionsFor(o.ViewWidth, o.ViewHeight, o.CellSize)
			if o.Width == 0 {
				o.Width = w
			}
			if o.Height == 0 {
				o.Height = h
			}
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale cannot be negative, got %g", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// DrawingKeyOpts returns cache key options for scene generation.
func (o *Options) DrawingKeyOpts() cache.DrawingKeyOpts {
	return cache.DrawingKeyOpts{
		Width:    o.Width,
		Height:   o.Height,
		CellSize: o.CellSize,
		Seed:     o.Seed,
		Spectrum: o.Spectrum,
		MaxPaths: o.MaxPaths,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:    format,
		Style:     o.Style,
		GridLines: o.GridLines,
	}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatDOT, FormatGraph:
		// node-link views ignore style and grid lines but not labels
		opts.Style = ""
		opts.GridLines = o.Detailed
	}
	return opts
}
