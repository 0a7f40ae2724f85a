package server

import (
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/pipeline"
	"github.com/matzehuels/snaker/pkg/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid limit: %q", v))
			return
		}
		limit = n
	}
	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	opts = s.withDefaults(opts)
	if opts.Seed == 0 {
		opts.Seed = rand.Uint64()
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec := storage.NewRecord(opts, res)
	rec.Options.Formats = sortedFormats(res.Artifacts)
	if err := s.store.Create(r.Context(), rec); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("created drawing", "id", rec.ID, "paths", rec.Paths, "seed", opts.Seed)

	w.Header().Set("Location", "/api/drawings/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// handleGet serves a record for {id} and an artifact for {id}.{format}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, format, hasFormat := strings.Cut(chi.URLParam(r, "ref"), ".")
	rec, err := s.lookup(r, id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !hasFormat {
		writeJSON(w, http.StatusOK, rec)
		return
	}

	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	opts := rec.Options
	opts.Formats = []string{format}
	if scale := r.URL.Query().Get("scale"); scale != "" && format == pipeline.FormatPNG {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil || v <= 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid scale: %q", scale))
			return
		}
		opts.Scale = v
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "ref")
	if err := errs.ValidateDrawingID(id); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(r *http.Request, id string) (*storage.Record, error) {
	if err := errs.ValidateDrawingID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

// withDefaults fills unset fields of opts from the server defaults.
func (s *Server) withDefaults(opts pipeline.Options) pipeline.Options {
	d := s.defaults
	if opts.Width == 0 && opts.ViewWidth == 0 {
		opts.Width = d.Width
	}
	if opts.Height == 0 && opts.ViewHeight == 0 {
		opts.Height = d.Height
	}
	if opts.CellSize == 0 {
		opts.CellSize = d.CellSize
	}
	if opts.Seed == 0 {
		opts.Seed = d.Seed
	}
	if len(opts.Formats) == 0 {
		opts.Formats = d.Formats
	}
	if opts.Style == "" {
		opts.Style = d.Style
	}
	if opts.Spectrum == "" {
		opts.Spectrum = d.Spectrum
	}
	if opts.Scale == 0 {
		opts.Scale = d.Scale
	}
	opts.GridLines = opts.GridLines || d.GridLines
	opts.Logger = nil
	return opts
}

func sortedFormats(artifacts map[string][]byte) []string {
	var out []string
	for _, f := range pipeline.ValidFormats {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
