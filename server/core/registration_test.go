package core

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeMaster struct {
	mu         sync.Mutex
	registered []regRequest
	known      map[string]bool
}

func (m *fakeMaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch r.URL.Path {
	case "/servers/register":
		var req regRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		m.registered = append(m.registered, req)
		id := fmt.Sprintf("srv-%d", len(m.registered))
		m.known[id] = true
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(regResponse{ID: id})
	case "/servers/heartbeat":
		var req heartbeatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if !m.known[req.ID] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRegistration(t *testing.T) {
	master := &fakeMaster{known: make(map[string]bool)}
	hs := httptest.NewServer(master)
	defer hs.Close()

	settings := testSettings()
	settings.MasterURL = hs.URL
	settings.Address = "race.example:8080"
	s := newTestServer(t, settings)
	joinAs(s, &fakePeer{id: "a"}, "alice")

	reg := NewRegistration(settings, s, zaptest.NewLogger(t))
	ctx := context.Background()
	require.NoError(t, reg.register(ctx, "lanes"))
	assert.Equal(t, "srv-1", reg.serverID)

	master.mu.Lock()
	first := master.registered[0]
	master.mu.Unlock()
	assert.Equal(t, "test", first.Name)
	assert.Equal(t, "race.example:8080", first.Address)
	assert.Equal(t, "lanes", first.Track)
	assert.Equal(t, 1, first.Players)
	assert.Equal(t, 2, first.MaxPlayers, "grid is limited by the starting positions")

	require.NoError(t, reg.sendHeartbeat(ctx, "lanes"))

	// The master restarted and forgot us.
	master.mu.Lock()
	clear(master.known)
	master.mu.Unlock()
	require.NoError(t, reg.sendHeartbeat(ctx, "lanes"))
	assert.Equal(t, "srv-2", reg.serverID)
}

func TestRegistrationStopsWithContext(t *testing.T) {
	settings := testSettings()
	settings.MasterURL = "http://127.0.0.1:1"
	reg := NewRegistration(settings, newTestServer(t, settings), zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, reg.Run(ctx, "lanes"))
}
