// Package network is the client side of a race: the connection to the
// server and the replica of its world.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/hoverrace-mp/shared/logging"
	"github.com/automoto/hoverrace-mp/shared/messages"
	"github.com/automoto/hoverrace-mp/shared/netconfig"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var ErrNotConnected = errors.New("not connected")

// JoinInfo is what the server told us when it accepted the join.
type JoinInfo struct {
	NetworkID  esync.NetworkId
	ServerName string
	SessionID  string
	TickRate   int
	Track      string
	Options    int
	Slot       int
	HoverID    int
}

// Client manages a WebSocket connection to the race server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	log            *zap.Logger
	state          ClientState
	lastError      error
	join           JoinInfo
	reconnectToken string
	conn           *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	eventCh chan messages.RaceEvent
	stateCh chan messages.RaceStateChangeEvent
}

func NewClient(log *zap.Logger) *Client {
	return &Client{
		log:        logging.Component(log, "client"),
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		eventCh:    make(chan messages.RaceEvent, 32),
		stateCh:    make(chan messages.RaceStateChangeEvent, 4),
	}
}

// Connect dials the server in a background goroutine and initiates the join
// handshake. After a drop, calling Connect again reclaims the same craft.
func (c *Client) Connect(address, pilotName string, model int) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info("Connected to server", zap.String("address", address))
		c.mu.Lock()
		c.state = StateConnected
		token := c.reconnectToken
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:        netconfig.ProtocolVersion,
			PilotName:      pilotName,
			Model:          model,
			ReconnectToken: token,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.log.Info("Join accepted",
			zap.String("server", msg.ServerName),
			zap.String("track", msg.Track),
			zap.Int("slot", msg.Slot),
			zap.Int("tickRate", msg.TickRate),
		)
		c.mu.Lock()
		c.join = JoinInfo{
			NetworkID:  msg.NetworkID,
			ServerName: msg.ServerName,
			SessionID:  msg.SessionID,
			TickRate:   msg.TickRate,
			Track:      msg.Track,
			Options:    msg.Options,
			Slot:       msg.Slot,
			HoverID:    msg.HoverID,
		}
		c.reconnectToken = msg.ReconnectToken
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.Warn("Join rejected", zap.String("reason", msg.Reason))
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.RaceEvent) {
		select {
		case c.eventCh <- evt:
		default:
			c.log.Debug("Dropped race event", zap.Stringer("event", evt.Event))
		}
	})

	router.On(func(_ *router.NetworkClient, evt messages.RaceStateChangeEvent) {
		select {
		case c.stateCh <- evt:
		default:
		}
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info("Disconnected", zap.Error(err))
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn("Client error", zap.Error(err))
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Join returns what the server sent on acceptance.
func (c *Client) Join() JoinInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.join
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendInput sends the controls of one frame.
func (c *Client) SendInput(in messages.CraftInput) error {
	if c.State() != StateJoinedGame {
		return nil
	}
	return c.SendMessage(in)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainRaceEvents returns all pending race events, non-blocking.
func (c *Client) DrainRaceEvents() []messages.RaceEvent {
	return drainChan(c.eventCh)
}

// DrainStateChanges returns all pending race state changes, non-blocking.
func (c *Client) DrainStateChanges() []messages.RaceStateChangeEvent {
	return drainChan(c.stateCh)
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
