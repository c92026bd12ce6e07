package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/domain"
)

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type eventPayload struct {
	Player int            `json:"player,omitempty"`
	Cells  []domain.Coord `json:"cells,omitempty"`
	Status statusPayload  `json:"status"`
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func encodeEvent(ev app.Event) []byte {
	payload := eventPayload{
		Player: int(ev.Player),
		Cells:  ev.Cells,
		Status: statusFromState(ev.State),
	}
	return mustMarshal(wsMessage{Type: string(ev.Kind), Payload: mustMarshal(payload)})
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ws streams game events as JSON. Client messages are read only to notice
// the connection going away.
func (h *handlers) ws(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	gs, ok := h.svc.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.String("game_id", id), zap.Error(err))
		return
	}
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	ch, unsub, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		_ = conn.Close()
		return
	}
	defer unsub()

	snapshot := mustMarshal(wsMessage{Type: "snapshot", Payload: mustMarshal(statusFromState(*gs))})
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()
		if err := writeWSWithHeartbeat(conn, snapshot, ch, h.opts.Heartbeat); err != nil {
			h.log.Debug("websocket write", zap.String("game_id", id), zap.Error(err))
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	cancel()
	<-done
}

// writeWSWithHeartbeat sends the snapshot, then every event, and a ping
// whenever the connection has been idle for a full interval.
func writeWSWithHeartbeat(conn *websocket.Conn, snapshot []byte, events <-chan app.Event, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		return err
	}
	lastWrite := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, encodeEvent(ev)); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < interval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}
