// Package storage persists drawing records for the HTTP server.
//
// A record holds what is needed to reproduce a drawing: the pipeline
// options it was made with and a few facts about the result. Artifacts
// themselves are not stored; they are regenerated (or served from cache)
// on demand because generation is deterministic.
//
// Two backends are provided:
//   - [MemoryStore]: in-process map, for development and tests
//   - [MongoStore]: MongoDB collection, for deployments with several servers
package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/pipeline"
)

// DefaultListLimit caps List when no limit is given.
const DefaultListLimit = 50

// Record describes a stored drawing.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	Options   pipeline.Options `json:"options" bson:"options"`
	Spectrum  string           `json:"spectrum" bson:"spectrum"` // resolved spectrum
	Paths     int              `json:"paths" bson:"paths"`
	Steps     int              `json:"steps" bson:"steps"`
	SceneHash string           `json:"scene_hash" bson:"scene_hash"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NewRecord builds a record for a finished pipeline run.
func NewRecord(opts pipeline.Options, res *pipeline.Result) *Record {
	opts.Logger = nil
	opts.Progress = nil
	opts.Refresh = false
	return &Record{
		Options:   opts,
		Spectrum:  res.Spectrum,
		Paths:     res.Stats.PathCount,
		Steps:     res.Stats.StepCount,
		SceneHash: res.SceneHash,
	}
}

// Store is the interface for drawing storage backends.
type Store interface {
	// Create stores rec, assigning its ID and creation time when unset.
	Create(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. A missing record is a
	// DRAWING_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. A missing record is a DRAWING_NOT_FOUND
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// prepare fills in the generated fields of a new record.
func prepare(rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if err := errs.ValidateDrawingID(rec.ID); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func notFound(id string) error {
	return errs.New(errs.ErrCodeDrawingNotFound, "drawing %s not found", id)
}
