package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

const gameStatusLeave = "leave"

func (that *Server) handleNewGame(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq := Payload{Mark: entity.PlayerX, Difficulty: entity.HardDifficulty}
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	game, err := that.gameUseCase.NewGame(ctx, payloadReq.Mark, payloadReq.Difficulty)
	if err != nil {
		log.Warn("failed to create game", "error", err)
		return that.sendUseCaseError(c, msg.Action, err)
	}

	log.Info("game created", "gameID", game.ID)

	return c.sendMessage(msg.Action, Payload{GameID: game.ID, Game: usecase.StateOf(game)})
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, c *client) error {
	var payloadReq Payload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	game, err := that.gameUseCase.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return that.sendUseCaseError(c, msg.Action, err)
	}

	return c.sendMessage(msg.Action, Payload{GameID: game.ID, Game: usecase.StateOf(game)})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, c *client) error {
	log := that.logger.With("method", "handleGameTurn")

	var payloadReq Payload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	if payloadReq.Cell == nil {
		return that.sendErrorResponse(c, msg.Action, "cell is required")
	}

	log = log.With("gameID", payloadReq.GameID)

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.GameID, *payloadReq.Cell)
	if err != nil {
		log.Warn("failed to make turn", "error", err)
		return that.sendUseCaseError(c, msg.Action, err)
	}

	log.Debug("turn made", "row", payloadReq.Cell.Row, "col", payloadReq.Cell.Col)

	return c.sendMessage(msg.Action, Payload{GameID: game.ID, Game: usecase.StateOf(game)})
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, c *client) error {
	var payloadReq Payload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.GameID == "" {
		return that.sendErrorResponse(c, msg.Action, "game_id is required")
	}

	if err := that.gameUseCase.EndGame(ctx, payloadReq.GameID); err != nil {
		return that.sendUseCaseError(c, msg.Action, err)
	}

	return c.sendMessage(msg.Action, Payload{GameID: payloadReq.GameID, Status: gameStatusLeave})
}

func (that *Server) handleAnalyze(_ context.Context, msg *Message, c *client) error {
	var payloadReq Payload
	if err := decodePayload(msg, &payloadReq); err != nil {
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if payloadReq.Board == nil {
		return that.sendErrorResponse(c, msg.Action, "board is required")
	}

	analysis, err := that.gameUseCase.Analyze(*payloadReq.Board)
	if err != nil {
		return that.sendUseCaseError(c, msg.Action, err)
	}

	return c.sendMessage(msg.Action, Payload{Analysis: analysis})
}

func decodePayload(msg *Message, payload *Payload) error {
	if len(msg.Payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	return nil
}

// sendUseCaseError hides unexpected failures behind a generic message.
func (that *Server) sendUseCaseError(c *client, action string, err error) error {
	switch {
	case errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrGameNotFound),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return that.sendErrorResponse(c, action, err.Error())
	default:
		that.logger.Error("request failed", "action", action, "error", err)
		return that.sendErrorResponse(c, action, "internal error")
	}
}

func (that *Server) sendErrorResponse(c *client, action, errorMsg string) error {
	if err := c.sendMessage(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
