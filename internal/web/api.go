package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/domain"
)

type statusPayload struct {
	ID          string            `json:"id"`
	Mode        app.Mode          `json:"mode"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	Board       [][]int           `json:"board"`
	Facing      [][]float64       `json:"facing"`
	NextPlayer  int               `json:"next_player"`
	TurnLength  int               `json:"turn_length"`
	Winner      int               `json:"winner"`
	Over        bool              `json:"over"`
	Moves       int               `json:"moves"`
	AIThinking  bool              `json:"ai_thinking"`
	WinningLine []domain.Coord    `json:"winning_line,omitempty"`
}

func statusFromState(gs app.GameState) statusPayload {
	p := statusPayload{
		ID:          gs.ID,
		Mode:        gs.Mode,
		Difficulty:  gs.Difficulty,
		Board:       make([][]int, domain.Size),
		Facing:      make([][]float64, domain.Size),
		NextPlayer:  int(gs.Game.Turn),
		TurnLength:  gs.Game.TurnLength,
		Winner:      int(gs.Game.Winner),
		Over:        gs.Game.Over,
		Moves:       gs.Game.Moves,
		AIThinking:  gs.AIThinking,
		WinningLine: gs.Game.WinningLine,
	}
	for y := range domain.Size {
		p.Board[y] = make([]int, domain.Size)
		p.Facing[y] = make([]float64, domain.Size)
		for x := range domain.Size {
			p.Board[y][x] = int(gs.Game.Board[y][x].Owner)
			p.Facing[y][x] = gs.Game.Board[y][x].Facing
		}
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (h *handlers) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handlers) apiGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !app.ValidID(id) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
		return
	}
	gs, ok := h.svc.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": app.ErrNotFound.Error()})
		return
	}
	writeJSON(w, http.StatusOK, statusFromState(*gs))
}

func (h *handlers) apiShapes(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	shapes := domain.ShapesForSize(n)
	if err != nil || shapes == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "size must be 1, 2 or 3"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"size": n, "shapes": shapes})
}
