package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc, err := NewMatchService(DefaultConfig(), log.New(io.Discard), nil)
	require.NoError(t, err)
	srv := NewServer("localhost:0", svc, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, messageType MessageType, data any, requestID string) {
	t.Helper()
	msg, err := NewMessage(messageType, data, time.Now())
	require.NoError(t, err)
	msg.RequestID = requestID
	require.NoError(t, conn.WriteJSON(msg))
}

func receive(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

func decode[T any](t *testing.T, msg *Message) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(msg.Data, &out))
	return out
}

func TestServer_Health(t *testing.T) {
	ts := startTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_ListModes(t *testing.T) {
	ts := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, TypeListModes, nil, "req-1")
	msg := receive(t, conn)

	assert.Equal(t, TypeModeList, msg.Type)
	assert.Equal(t, "req-1", msg.RequestID)
	list := decode[ModeListData](t, msg)
	require.Len(t, list.Modes, 4)
	assert.Equal(t, "legs-501", list.Modes[0].Name)
}

func TestServer_CreateAndThrow(t *testing.T) {
	ts := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, TypeCreateMatch, CreateMatchData{
		Mode: "legs-501",
		Players: []PlayerInfo{
			{ID: "p1", Name: "Anna"},
			{ID: "p2", Name: "Ben"},
		},
	}, "create-1")

	msg := receive(t, conn)
	require.Equal(t, TypeMatchCreated, msg.Type)
	assert.Equal(t, "create-1", msg.RequestID)
	state := decode[MatchStateData](t, msg)
	require.NotEmpty(t, state.MatchID)
	assert.Equal(t, "p1", state.CurrentPlayer)

	send(t, conn, TypeThrow, ThrowData{
		MatchID: state.MatchID, PlayerID: "p1", Sector: 20, Multiplier: 3,
	}, "throw-1")

	msg = receive(t, conn)
	require.Equal(t, TypeThrowResult, msg.Type)
	assert.Equal(t, "throw-1", msg.RequestID)
	result := decode[ThrowResultData](t, msg)
	assert.Equal(t, "T20", result.Throw)
	assert.Equal(t, "continue", result.Outcome)
	assert.Equal(t, 441, *result.State.Scores["p1"].Remaining)
}

func TestServer_ErrorsCarryRequestID(t *testing.T) {
	ts := startTestServer(t)
	conn := dialWS(t, ts)

	send(t, conn, TypeState, StateData{MatchID: "missing"}, "state-1")
	msg := receive(t, conn)

	require.Equal(t, TypeError, msg.Type)
	assert.Equal(t, "state-1", msg.RequestID)
	errData := decode[ErrorData](t, msg)
	assert.Equal(t, "match_not_found", errData.Code)

	send(t, conn, MessageType("juggle"), nil, "odd-1")
	msg = receive(t, conn)
	require.Equal(t, TypeError, msg.Type)
	errData = decode[ErrorData](t, msg)
	assert.Equal(t, "bad_request", errData.Code)
	assert.Contains(t, errData.Message, "juggle")
}

func TestServer_BroadcastsThrowsToWatchers(t *testing.T) {
	ts := startTestServer(t)
	thrower := dialWS(t, ts)
	watcher := dialWS(t, ts)

	send(t, thrower, TypeCreateMatch, CreateMatchData{
		Mode: "cricket",
		Players: []PlayerInfo{
			{ID: "p1", Name: "Anna"},
			{ID: "p2", Name: "Ben"},
		},
	}, "create-1")
	state := decode[MatchStateData](t, receive(t, thrower))

	// The watcher subscribes by asking for the match state.
	send(t, watcher, TypeState, StateData{MatchID: state.MatchID}, "watch-1")
	watched := receive(t, watcher)
	require.Equal(t, TypeMatchState, watched.Type)

	send(t, thrower, TypeThrow, ThrowData{
		MatchID: state.MatchID, PlayerID: "p1", Sector: 19, Multiplier: 3,
	}, "throw-1")

	direct := receive(t, thrower)
	require.Equal(t, TypeThrowResult, direct.Type)
	assert.Equal(t, "throw-1", direct.RequestID)

	broadcast := receive(t, watcher)
	require.Equal(t, TypeThrowResult, broadcast.Type)
	assert.Empty(t, broadcast.RequestID)
	result := decode[ThrowResultData](t, broadcast)
	assert.Equal(t, "T19", result.Throw)
	assert.Equal(t, 3, result.State.Scores["p1"].Hits["19"])
}
