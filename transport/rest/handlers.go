package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

type newGameRequest struct {
	Mark       entity.Mark `json:"mark"`
	Difficulty string      `json:"difficulty"`
}

type minimaxRequest struct {
	Board entity.Board `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *Server) handleMinimax(w http.ResponseWriter, r *http.Request) {
	var req minimaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, apperror.ErrInvalidBoard) {
			that.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := that.gameUseCase.Analyze(req.Board)
	if err != nil {
		that.writeUseCaseError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func (that *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	req := newGameRequest{Mark: entity.PlayerX, Difficulty: entity.HardDifficulty}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.gameUseCase.NewGame(r.Context(), req.Mark, req.Difficulty)
	if err != nil {
		that.writeUseCaseError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, usecase.StateOf(game))
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeUseCaseError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, usecase.StateOf(game))
}

func (that *Server) handleGameTurn(w http.ResponseWriter, r *http.Request) {
	var action entity.Action
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		that.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "id"), action)
	if err != nil {
		that.writeUseCaseError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, usecase.StateOf(game))
}

func (that *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.EndGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeUseCaseError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) writeUseCaseError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeError(w, status, "Internal Server Error")
		return
	}

	that.writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidAction),
		errors.Is(err, apperror.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownDifficulty):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Error: message})
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
