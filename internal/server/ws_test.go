package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpectatorStream(t *testing.T) {
	router := newTestServer(t).Router()
	ts := httptest.NewServer(router)
	defer ts.Close()

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(map[string]string{
		"player_team_id": "starter-volt",
		"enemy_team_id":  "starter-fern",
	}))
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/battle", &body)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer ash")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var snap Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))

	wsURL := strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws/battle/" + snap.BattleID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var initial struct {
		Type string   `json:"type"`
		Data Snapshot `json:"data"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "state", initial.Type)
	assert.Equal(t, snap.BattleID, initial.Data.BattleID)
	assert.Equal(t, 1, initial.Data.Turn)

	// A submitted move must reach the spectator as a fresh snapshot.
	var moveBody bytes.Buffer
	require.NoError(t, json.NewEncoder(&moveBody).Encode(map[string]int{"move_index": 0}))
	moveReq, err := http.NewRequest(http.MethodPost, ts.URL+"/api/battle/"+snap.BattleID+"/move", &moveBody)
	require.NoError(t, err)
	moveReq.Header.Set("Authorization", "Bearer ash")
	moveResp, err := ts.Client().Do(moveReq)
	require.NoError(t, err)
	moveResp.Body.Close()
	require.Equal(t, http.StatusOK, moveResp.StatusCode)

	var update struct {
		Type string   `json:"type"`
		Data Snapshot `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "state", update.Type)
	assert.Equal(t, 2, update.Data.Turn)
}

func TestSpectatorUnknownBattle(t *testing.T) {
	router := newTestServer(t).Router()
	rec := doJSON(t, router, http.MethodGet, "/ws/battle/no-such-battle", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
