package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *Game) {
	t.Helper()

	cfg := &Config{
		masterPassword: "quiz",
		startingPoints: 5,
		flatBonus:      1,
	}
	game := NewGame(cfg, clockwork.NewFakeClock())
	hub := newLeaderboardHub()
	errs := make(chan error, 16)

	srv := httptest.NewServer(newRouter(cfg, game, hub, errs))
	t.Cleanup(srv.Close)
	return srv, game
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()

	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func registerHTTP(t *testing.T, srv *httptest.Server, name string) string {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/player/register", map[string]string{"name": name})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		PlayerID string `json:"playerId"`
		Player   Player `json:"player"`
	}
	decodeInto(t, resp, &body)
	require.NotEmpty(t, body.PlayerID)
	require.Equal(t, name, body.Player.Name)
	return body.PlayerID
}

func TestMasterLogin(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/master/login", map[string]string{"password": "quiz"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ok struct {
		Success bool `json:"success"`
	}
	decodeInto(t, resp, &ok)
	require.True(t, ok.Success)

	resp = postJSON(t, srv.URL+"/api/master/login", map[string]string{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterAndPlayerState(t *testing.T) {
	srv, _ := newTestServer(t)
	playerID := registerHTTP(t, srv, "ada")

	resp, err := http.Get(srv.URL + "/api/player/state/" + playerID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view PlayerView
	decodeInto(t, resp, &view)
	require.Equal(t, PhaseRegistration, view.Phase)
	require.Equal(t, 5, view.Player.Points)
	require.False(t, view.HasSubmittedBet)
}

func TestUnknownPlayerReturns404(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/player/state/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswerWhileLockedReturns403(t *testing.T) {
	srv, _ := newTestServer(t)
	playerID := registerHTTP(t, srv, "ada")

	resp := postJSON(t, srv.URL+"/api/master/toggle-betting", map[string]bool{"enabled": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postJSON(t, srv.URL+"/api/master/start-quiz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = postJSON(t, srv.URL+"/api/master/lock-answering", map[string]bool{"locked": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/player/submit-answer", map[string]any{
		"playerId": playerID,
		"answer":   "42",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOutOfPhaseCommandReturns409(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/master/show-results", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
	}
	decodeInto(t, resp, &body)
	require.NotEmpty(t, body.Error)
}

func TestBetOfOneReturns400(t *testing.T) {
	srv, _ := newTestServer(t)
	playerID := registerHTTP(t, srv, "ada")

	resp := postJSON(t, srv.URL+"/api/master/start-quiz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/player/submit-bet", map[string]any{
		"playerId": playerID,
		"bet":      1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMasterCommandsReturnFullState(t *testing.T) {
	srv, _ := newTestServer(t)
	playerID := registerHTTP(t, srv, "ada")

	resp := postJSON(t, srv.URL+"/api/master/start-quiz", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state State
	decodeInto(t, resp, &state)
	require.Equal(t, PhaseBetting, state.Phase)
	require.Equal(t, 1, state.CurrentRound)
	require.Contains(t, state.Players, playerID)
}

func TestLeaderboardEndpoint(t *testing.T) {
	srv, game := newTestServer(t)
	adaID := registerHTTP(t, srv, "ada")
	bobID := registerHTTP(t, srv, "bob")

	require.NoError(t, game.AdjustScore(bobID, 7))

	resp, err := http.Get(srv.URL + "/api/leaderboard")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var board Leaderboard
	decodeInto(t, resp, &board)
	require.Len(t, board.Players, 2)
	require.Equal(t, bobID, board.Players[0].ID)
	require.Equal(t, adaID, board.Players[1].ID)
	require.Equal(t, PhaseRegistration, board.Phase)
}

func TestLeaderboardStreamSendsSnapshotOnConnect(t *testing.T) {
	srv, _ := newTestServer(t)
	registerHTTP(t, srv, "ada")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/leaderboard/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	var board Leaderboard
	require.NoError(t, conn.ReadJSON(&board))
	require.Len(t, board.Players, 1)
	require.Equal(t, "ada", board.Players[0].Name)
}

func TestHealthCheckAndVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMasterStateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/master/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state State
	decodeInto(t, resp, &state)
	require.Equal(t, PhaseRegistration, state.Phase)
	require.True(t, state.BettingEnabled)
}
