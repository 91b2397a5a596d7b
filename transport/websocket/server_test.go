package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string]entity.Game
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = *game
	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, ok := that.games[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return &game, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := &memoryGameRepo{games: make(map[string]entity.Game)}
	manager := usecase.NewGameManager(logger, repo, service.NewBotServiceWithSeed(1))

	srv := httptest.NewServer(New(logger, manager).Handler(ctx))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })

	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, action string, payload any) (string, Payload) {
	t.Helper()

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		raw = data
	}

	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))

	var resp Payload
	require.NoError(t, json.Unmarshal(msg.Payload, &resp))

	return msg.Action, resp
}

func TestServer_GameFlow(t *testing.T) {
	conn := dial(t)

	// Given: a new game where the human plays O against the hard bot
	action, resp := roundTrip(t, conn, actionGameNew, Payload{Mark: entity.PlayerO, Difficulty: entity.HardDifficulty})
	require.Equal(t, actionGameNew, action)
	require.Empty(t, resp.Error)
	require.NotNil(t, resp.Game)

	gameID := resp.GameID
	assert.Equal(t, 1, resp.Game.Board.Count(entity.PlayerX))
	assert.Equal(t, entity.PlayerO, resp.Game.Turn)

	// When: the human plays the first empty cell
	cell := firstEmpty(resp.Game.Board)
	action, resp = roundTrip(t, conn, actionGameTurn, Payload{GameID: gameID, Cell: &cell})

	// Then: the bot has answered
	require.Equal(t, actionGameTurn, action)
	require.Empty(t, resp.Error)
	assert.Equal(t, 2, resp.Game.Board.Count(entity.PlayerX))
	assert.Equal(t, 1, resp.Game.Board.Count(entity.PlayerO))

	// When: the state is requested
	_, state := roundTrip(t, conn, actionGameState, Payload{GameID: gameID})

	// Then: it matches the last turn
	assert.Equal(t, resp.Game.Board, state.Game.Board)

	// When: the player leaves
	action, resp = roundTrip(t, conn, actionGameLeave, Payload{GameID: gameID})

	// Then: the game is gone
	assert.Equal(t, actionGameLeave, action)
	assert.Equal(t, gameStatusLeave, resp.Status)

	_, resp = roundTrip(t, conn, actionGameState, Payload{GameID: gameID})
	assert.Contains(t, resp.Error, apperror.ErrGameNotFound.Error())
}

func TestServer_Errors(t *testing.T) {
	conn := dial(t)

	t.Run("Unknown action", func(t *testing.T) {
		action, resp := roundTrip(t, conn, "game:join", nil)

		assert.Equal(t, "game:join", action)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Turn without a cell", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionGameTurn, Payload{GameID: "some-id"})

		assert.Equal(t, "cell is required", resp.Error)
	})

	t.Run("Invalid mark", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionGameNew, Payload{Mark: "Z", Difficulty: entity.EasyDifficulty})

		assert.Contains(t, resp.Error, apperror.ErrInvalidMark.Error())
	})

	t.Run("Occupied cell", func(t *testing.T) {
		_, created := roundTrip(t, conn, actionGameNew, Payload{Mark: entity.PlayerO, Difficulty: entity.HardDifficulty})
		require.Empty(t, created.Error)

		taken := entity.Action{Row: 0, Col: 0}
		_, resp := roundTrip(t, conn, actionGameTurn, Payload{GameID: created.GameID, Cell: &taken})

		assert.Contains(t, resp.Error, apperror.ErrInvalidAction.Error())
	})
}

func TestServer_Analyze(t *testing.T) {
	conn := dial(t)

	t.Run("Finds the winning action", func(t *testing.T) {
		// Given
		board, ok := entity.ParseBoard("XX.", "OO.", "...")
		require.True(t, ok)

		// When
		action, resp := roundTrip(t, conn, actionAnalyze, Payload{Board: &board})

		// Then
		assert.Equal(t, actionAnalyze, action)
		require.NotNil(t, resp.Analysis)
		require.NotNil(t, resp.Analysis.Action)
		assert.Equal(t, entity.Action{Row: 0, Col: 2}, *resp.Analysis.Action)
		assert.Equal(t, 1, resp.Analysis.Value)
	})

	t.Run("Malformed board is rejected", func(t *testing.T) {
		// When: a board with a short row and a long row is sent
		_, resp := roundTrip(t, conn, actionAnalyze, json.RawMessage(`{"board":[["X","O","X","O"],["O"],["","",""]]}`))

		// Then: the reply carries an error instead of an analysis
		assert.Nil(t, resp.Analysis)
		assert.Contains(t, resp.Error, apperror.ErrInvalidBoard.Error())
	})

	t.Run("Board is required", func(t *testing.T) {
		_, resp := roundTrip(t, conn, actionAnalyze, Payload{})

		assert.Equal(t, "board is required", resp.Error)
	})
}

func TestClient_SendAfterWriteFailure(t *testing.T) {
	// Given: a client on a closed socket with a full send buffer
	conn := dial(t)
	require.NoError(t, conn.Close())

	c := newClient(conn)
	for range sendBufferSize {
		require.NoError(t, c.sendMessage(actionAnalyze, Payload{}))
	}

	// When: the write loop fails on the closed socket
	err := c.writeLoop()

	// Then: later sends report the closed connection instead of blocking
	require.Error(t, err)
	assert.ErrorIs(t, c.sendMessage(actionAnalyze, Payload{}), errConnectionClosed)
}

func firstEmpty(board entity.Board) entity.Action {
	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			if board.At(row, col) == entity.Empty {
				return entity.Action{Row: row, Col: col}
			}
		}
	}

	return entity.Action{}
}
