package grid

import (
	"iter"

	errs "github.com/matzehuels/snaker/pkg/errors"
)

// Session owns one grid and produces paths until every cell is covered.
type Session struct {
	tracker *Tracker
	rng     Rand
	epoch   uint64
	paths   int
}

// NewSession creates a session for a width×height grid drawing randomness
// from rng. It fails with INVALID_DIMENSIONS on non-positive sizes.
func NewSession(width, height int, rng Rand) (*Session, error) {
	t, err := NewTracker(width, height, rng)
	if err != nil {
		return nil, err
	}
	return &Session{tracker: t, rng: rng}, nil
}

// Reset starts over on a width×height grid. Sequences obtained from
// FillAll or Steps before the reset stop with SESSION_RESET the next time
// they are advanced. On INVALID_DIMENSIONS the session is unchanged.
func (s *Session) Reset(width, height int) error {
	if err := s.tracker.Initialize(width, height); err != nil {
		return err
	}
	s.epoch++
	s.paths = 0
	return nil
}

// FillOne generates the next path. It fails with GRID_EXHAUSTED once the
// grid is covered; callers should treat that as "nothing left to draw".
func (s *Session) FillOne() (Path, error) {
	p, err := GeneratePath(s.tracker, s.rng)
	if err != nil {
		return nil, err
	}
	s.paths++
	return p, nil
}

// FillAll returns a lazy sequence of paths that ends when the grid is
// exhausted. Breaking out of the loop early leaves the grid partially
// filled, which is a valid state; a later FillAll resumes from there.
//
// GRID_EXHAUSTED ends the sequence silently. Any other error is yielded
// once, with a nil path, and ends the sequence.
func (s *Session) FillAll() iter.Seq2[Path, error] {
	epoch := s.epoch
	return func(yield func(Path, error) bool) {
		for {
			if s.epoch != epoch {
				yield(nil, errs.New(errs.ErrCodeSessionReset, "session was reset during fill"))
				return
			}
			p, err := s.FillOne()
			if errs.IsExhausted(err) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	}
}

// Steps flattens FillAll into single steps, for consumers that draw one
// cell at a time. Error semantics match FillAll.
func (s *Session) Steps() iter.Seq2[PathStep, error] {
	paths := s.FillAll()
	return func(yield func(PathStep, error) bool) {
		for p, err := range paths {
			if err != nil {
				yield(PathStep{}, err)
				return
			}
			for _, step := range p {
				if !yield(step, nil) {
					return
				}
			}
		}
	}
}

// Width returns the grid width in cells.
func (s *Session) Width() int { return s.tracker.Width() }

// Height returns the grid height in cells.
func (s *Session) Height() int { return s.tracker.Height() }

// Visited returns how many cells have been covered.
func (s *Session) Visited() int { return s.tracker.Visited() }

// Remaining returns how many cells are still uncovered.
func (s *Session) Remaining() int { return s.tracker.Size() - s.tracker.Visited() }

// Exhausted reports whether every cell has been covered.
func (s *Session) Exhausted() bool { return s.Remaining() == 0 }

// PathCount returns the number of paths produced since the last reset.
func (s *Session) PathCount() int { return s.paths }
