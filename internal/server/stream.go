package server

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/snaker/pkg/animate"
	errs "github.com/matzehuels/snaker/pkg/errors"
	"github.com/matzehuels/snaker/pkg/observability"
	"github.com/matzehuels/snaker/pkg/render"
)

const writeTimeout = 5 * time.Second

// Stream message types.
const (
	MessageScene = "scene" // first message: grid size and cell size
	MessageStep  = "step"
	MessageDone  = "done"
)

// StreamMessage is one websocket frame of a drawing stream.
type StreamMessage struct {
	Type     string      `json:"type"`
	Width    int         `json:"width,omitempty"`
	Height   int         `json:"height,omitempty"`
	CellSize float64     `json:"cell_size,omitempty"`
	Steps    int         `json:"steps,omitempty"`
	Step     *StreamStep `json:"step,omitempty"`
}

// StreamStep is a painted step as sent to stream clients.
type StreamStep struct {
	Index   int    `json:"index"`
	Path    int    `json:"path"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Edges   uint8  `json:"edges"`
	Hachure int    `json:"hachure"`
	Color   string `json:"color"`
	Stroke  string `json:"stroke"`
}

func newStreamStep(s render.SceneStep) *StreamStep {
	return &StreamStep{
		Index:   s.Index,
		Path:    s.Path,
		X:       s.Cell.X,
		Y:       s.Cell.Y,
		Edges:   uint8(s.Edges),
		Hachure: int(s.Hachure),
		Color:   s.Color,
		Stroke:  s.Stroke,
	}
}

// handleStream replays a drawing step by step over a websocket, one step
// per interval. The interval query parameter overrides the server's.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	rec, err := s.lookup(r, chi.URLParam(r, "ref"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	interval := s.interval
	if v := r.URL.Query().Get("interval"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			s.writeError(w, errs.New(errs.ErrCodeInvalidInput, "invalid interval: %q", v))
			return
		}
		interval = d
	}

	scene, _, err := s.runner.Generate(r.Context(), rec.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		return
	}
	defer conn.CloseNow()

	// reads are not expected; CloseRead cancels ctx when the client goes away
	ctx := conn.CloseRead(r.Context())

	sent, err := s.stream(ctx, conn, scene, interval)
	observability.HTTP().OnStream(ctx, rec.ID, sent, err)
	if err != nil {
		s.logger.Debug("stream ended early", "id", rec.ID, "sent", sent, "error", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}

func (s *Server) stream(ctx context.Context, conn *websocket.Conn, scene render.Scene, interval time.Duration) (int, error) {
	hello := StreamMessage{
		Type:     MessageScene,
		Width:    scene.Width,
		Height:   scene.Height,
		CellSize: scene.CellSize,
		Steps:    len(scene.Steps),
	}
	if err := write(ctx, conn, hello); err != nil {
		return 0, err
	}

	q := animate.NewQueue()
	q.Push(scene.Steps...)
	q.Close()

	sent := 0
	err := animate.Drain(ctx, q, interval, func(step render.SceneStep) error {
		if err := write(ctx, conn, StreamMessage{Type: MessageStep, Step: newStreamStep(step)}); err != nil {
			return err
		}
		sent++
		return nil
	})
	if err != nil {
		return sent, err
	}
	return sent, write(ctx, conn, StreamMessage{Type: MessageDone, Steps: sent})
}

func write(ctx context.Context, conn *websocket.Conn, msg StreamMessage) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}
