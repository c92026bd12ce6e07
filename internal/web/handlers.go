package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/domain"
)

// ErrBadPath is returned for a path form value that is not "x,y;x,y;...".
var ErrBadPath = errors.New("malformed path")

type handlers struct {
	svc  *app.Service
	tpl  *templates
	opts Options
	log  *zap.Logger
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
	return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func (h *handlers) writeBoard(w http.ResponseWriter, gs app.GameState, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.renderBoard(gs, errMsg))
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Modes:      []string{app.PvE.String(), app.PvP.String()},
		Mode:       h.opts.DefaultMode.String(),
		Difficulty: h.opts.DefaultDifficulty.String(),
	}
	for _, d := range domain.Difficulties {
		data.Difficulties = append(data.Difficulties, d.String())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.index, "base", data))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	mode := h.opts.DefaultMode
	if v := r.Form.Get("mode"); v != "" {
		m, err := app.ParseMode(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}
	d := h.opts.DefaultDifficulty
	if v := r.Form.Get("difficulty"); v != "" {
		parsed, err := domain.ParseDifficulty(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d = parsed
	}
	gs, err := h.svc.CreateGame(mode, d)
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data := gameData{ID: gs.ID, Board: newBoardView(*gs, "")}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	var gs *app.GameState
	path, err := parsePath(r.Form.Get("path"))
	if err == nil {
		gs, err = h.svc.Play(id, path)
	}
	var errMsg string
	if err != nil {
		if errors.Is(err, app.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		errMsg = errorMessage(err)
		if g, ok := h.svc.Get(id); ok {
			gs = g
		}
	}
	if gs == nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, errMsg)
}

func (h *handlers) reset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	_ = r.ParseForm()
	mode, d := cur.Mode, cur.Difficulty
	var errMsg string
	if v := r.Form.Get("mode"); v != "" {
		if m, err := app.ParseMode(v); err == nil {
			mode = m
		} else {
			errMsg = errorMessage(err)
		}
	}
	if v := r.Form.Get("difficulty"); v != "" {
		if parsed, err := domain.ParseDifficulty(v); err == nil {
			d = parsed
		} else {
			errMsg = errorMessage(err)
		}
	}
	if errMsg != "" {
		h.writeBoard(w, *cur, errMsg)
		return
	}
	gs, err := h.svc.Reset(id, mode, d)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

func (h *handlers) difficulty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	d, err := domain.ParseDifficulty(r.Form.Get("difficulty"))
	if err != nil {
		cur, ok := h.svc.Get(id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.writeBoard(w, *cur, errorMessage(err))
		return
	}
	gs, err := h.svc.SetDifficulty(id, d)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.writeBoard(w, *gs, "")
}

// errorMessage maps service and rule errors to what the player sees.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrNotYourTurn):
		return "Not your turn"
	case errors.Is(err, app.ErrAIThinking):
		return "The computer is still thinking"
	case errors.Is(err, domain.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, domain.ErrWrongLength):
		return "Wrong number of stones for this turn"
	case errors.Is(err, domain.ErrRepeatedCell):
		return "A cell was used twice"
	case errors.Is(err, domain.ErrNotConnected):
		return "Stones must touch each other"
	case errors.Is(err, domain.ErrUnknownDifficulty):
		return "Unknown difficulty"
	case errors.Is(err, app.ErrUnknownMode):
		return "Unknown mode"
	case errors.Is(err, ErrBadPath):
		return "Could not read the drawn path"
	default:
		return "Invalid move"
	}
}

// parsePath reads "x,y;x,y;..." into coordinates. Bounds are left to the
// rules.
func parsePath(s string) ([]domain.Coord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrBadPath)
	}
	parts := strings.Split(s, ";")
	path := make([]domain.Coord, 0, len(parts))
	for _, p := range parts {
		xs, ys, ok := strings.Cut(strings.TrimSpace(p), ",")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadPath, p)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadPath, err)
		}
		path = append(path, domain.Coord{X: x, Y: y})
	}
	return path, nil
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	// In tests or non-EventSource requests, just acknowledge headers and return
	if r.Header.Get("Accept") != "text/event-stream" {
		w.WriteHeader(http.StatusOK)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	ctx := r.Context()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer unsub()
	ticker := time.NewTicker(h.opts.Heartbeat)
	defer ticker.Stop()
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = io.WriteString(w, ": ping\n\n")
			flusher.Flush()
		case ev, ok := <-ch:
			if !ok {
				return
			}
			writeSSE(w, "board", h.renderBoard(ev.State, ""))
			flusher.Flush()
		}
	}
}

// writeSSE writes one event; each line of a multi-line payload gets its own
// data field.
func writeSSE(w io.Writer, event string, payload []byte) {
	_, _ = fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(strings.TrimRight(string(payload), "\n"), "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = io.WriteString(w, "\n")
}
