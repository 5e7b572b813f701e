package core

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/automoto/hoverrace-mp/config"
	"github.com/automoto/hoverrace-mp/shared/logging"
	"go.uber.org/zap"
)

const heartbeatInterval = 30 * time.Second

// Registration lists the server on the master server and keeps the entry
// alive with heartbeats.
type Registration struct {
	masterURL  string
	serverID   string
	name       string
	address    string
	version    string
	region     string
	maxPlayers int
	players    func() int
	client     *http.Client
	log        *zap.Logger
}

type regRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers"`
	Version    string `json:"version"`
	Region     string `json:"region"`
	Track      string `json:"track"`
}

type regResponse struct {
	ID string `json:"id"`
}

type heartbeatRequest struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
}

// NewRegistration lists s under settings.MasterURL.
func NewRegistration(settings config.ServerSettings, s *Server, log *zap.Logger) *Registration {
	return &Registration{
		masterURL:  settings.MasterURL,
		name:       settings.Name,
		address:    settings.Address,
		version:    s.version(),
		region:     settings.Region,
		maxPlayers: s.gridSize(),
		players:    s.PlayerCount,
		client:     &http.Client{Timeout: 5 * time.Second},
		log:        logging.Component(log, "registration"),
	}
}

// Run registers and sends heartbeats until ctx is done. A failed
// registration is retried on the next heartbeat.
func (r *Registration) Run(ctx context.Context, track string) error {
	if err := r.register(ctx, track); err != nil {
		r.log.Warn("Initial registration failed", zap.Error(err))
	}

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			var err error
			if r.serverID == "" {
				err = r.register(ctx, track)
			} else {
				err = r.sendHeartbeat(ctx, track)
			}
			if err != nil {
				r.log.Warn("Heartbeat failed", zap.Error(err))
			}
		}
	}
}

func (r *Registration) register(ctx context.Context, track string) error {
	var result regResponse
	status, err := r.post(ctx, "/servers/register", regRequest{
		Name:       r.name,
		Address:    r.address,
		Players:    r.players(),
		MaxPlayers: r.maxPlayers,
		Version:    r.version,
		Region:     r.region,
		Track:      track,
	}, &result)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("register: unexpected status: %d", status)
	}

	r.serverID = result.ID
	r.log.Info("Registered with master", zap.String("id", r.serverID))
	return nil
}

func (r *Registration) sendHeartbeat(ctx context.Context, track string) error {
	status, err := r.post(ctx, "/servers/heartbeat", heartbeatRequest{
		ID:      r.serverID,
		Players: r.players(),
	}, nil)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		r.log.Info("Master lost our registration, re-registering")
		return r.register(ctx, track)
	default:
		return fmt.Errorf("heartbeat: unexpected status: %d", status)
	}
}

func (r *Registration) post(ctx context.Context, path string, body, out any) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.masterURL+path, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode: %w", err)
		}
	}
	return resp.StatusCode, nil
}
