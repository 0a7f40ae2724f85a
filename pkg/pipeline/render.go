package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/render"
	"github.com/matzehuels/snaker/pkg/render/sink"
	"github.com/matzehuels/snaker/pkg/render/styles"
	"github.com/matzehuels/snaker/pkg/render/styles/handdrawn"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, scene render.Scene, spectrum string, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := RenderFormat(ctx, scene, spectrum, format, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, scene render.Scene, spectrum, format string, opts Options) ([]byte, error) {
	svgOpts := BuildSVGOptions(opts)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(scene, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(ctx, scene, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, scene, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		data, err = sink.RenderJSON(scene, sink.WithJSONStyle(opts.Style), sink.WithJSONSpectrum(spectrum))
	case FormatDOT:
		data = []byte(sink.ToDOT(scene, sink.DOTOptions{Detailed: opts.Detailed}))
	case FormatGraph:
		data, err = sink.RenderDOTSVG(ctx, sink.ToDOT(scene, sink.DOTOptions{Detailed: opts.Detailed}))
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render %s", format)
	}
	return data, nil
}

// BuildSVGOptions builds SVG rendering options.
func BuildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(NewStyle(opts.Style, opts.Seed))}
	if opts.GridLines {
		svgOpts = append(svgOpts, sink.WithGridLines())
	}
	return svgOpts
}

// NewStyle returns the style called name. Unknown names get the simple
// style.
func NewStyle(name string, seed uint64) styles.Style {
	if name == StyleHanddrawn {
		if seed == 0 {
			seed = DefaultSeed
		}
		return handdrawn.New(seed)
	}
	return styles.Simple{}
}
