package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaminalder/neko-gomoku/internal/app"
	"github.com/jaminalder/neko-gomoku/internal/domain"
)

func dialGame(t *testing.T, srv *httptest.Server, id string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/" + id + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestWebsocketStreamsEvents(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame(app.PvP, domain.Hard)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn := dialGame(t, srv, gs.ID)
	snap := readMessage(t, conn)
	require.Equal(t, "snapshot", snap.Type)
	var status statusPayload
	require.NoError(t, json.Unmarshal(snap.Payload, &status))
	assert.Equal(t, gs.ID, status.ID)
	assert.Equal(t, 0, status.Moves)

	_, err := svc.Play(gs.ID, []domain.Coord{{X: 6, Y: 7}})
	require.NoError(t, err)

	msg := readMessage(t, conn)
	for msg.Type == "ping" {
		msg = readMessage(t, conn)
	}
	require.Equal(t, "move", msg.Type)
	var ev eventPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &ev))
	assert.Equal(t, int(domain.First), ev.Player)
	assert.Equal(t, []domain.Coord{{X: 6, Y: 7}}, ev.Cells)
	assert.Equal(t, 1, ev.Status.Moves)
	assert.Equal(t, int(domain.First), ev.Status.Board[7][6])
}

func TestWebsocketPingsWhenIdle(t *testing.T) {
	svc, h := newTestServer(t)
	gs, _ := svc.CreateGame(app.PvP, domain.Hard)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	conn := dialGame(t, srv, gs.ID)
	assert.Equal(t, "snapshot", readMessage(t, conn).Type)
	assert.Equal(t, "ping", readMessage(t, conn).Type)
}

func TestWebsocketUnknownGame(t *testing.T) {
	_, h := newTestServer(t)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/game/nope/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
