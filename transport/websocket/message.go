package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

var errConnectionClosed = errors.New("connection closed")

const (
	idlePingInterval = 30 * time.Second
	sendBufferSize   = 16

	actionPing = "ping"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID     string             `json:"game_id,omitempty"`
	Mark       entity.Mark        `json:"mark,omitempty"`
	Difficulty string             `json:"difficulty,omitempty"`
	Cell       *entity.Action     `json:"cell,omitempty"`
	Board      *entity.Board      `json:"board,omitempty"`
	Game       *usecase.GameState `json:"game,omitempty"`
	Analysis   *usecase.Analysis  `json:"analysis,omitempty"`
	Status     string             `json:"status,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// client is one upgraded connection. All writes go through send so that only
// the write loop touches the socket.
type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
}

func (that *client) sendMessage(action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	responseBytes, err := json.Marshal(Message{Action: action, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	select {
	case <-that.done:
		return errConnectionClosed
	default:
	}

	select {
	case that.send <- responseBytes:
		return nil
	case <-that.done:
		return errConnectionClosed
	}
}

// writeLoop - drains send and pings the peer when the connection is idle.
func (that *client) writeLoop() error {
	defer close(that.done)

	ticker := time.NewTicker(idlePingInterval)
	defer ticker.Stop()

	lastWrite := time.Now()
	ping, err := json.Marshal(Message{Action: actionPing})
	if err != nil {
		return fmt.Errorf("failed to marshal ping: %w", err)
	}

	for {
		select {
		case msg, ok := <-that.send:
			if !ok {
				return nil
			}

			if err = that.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return fmt.Errorf("failed to write message: %w", err)
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idlePingInterval {
				continue
			}

			if err = that.conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return fmt.Errorf("failed to write ping: %w", err)
			}
			lastWrite = time.Now()
		}
	}
}
