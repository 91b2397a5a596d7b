package usecase

import (
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// GameState is a game together with the values derived from its board.
type GameState struct {
	*entity.Game
	Turn    entity.Mark    `json:"turn"`
	Winner  entity.Mark    `json:"winner"`
	Outcome entity.Outcome `json:"outcome"`
}

// StateOf derives turn, winner and outcome from the board. Turn is empty once the game is over.
func StateOf(game *entity.Game) *GameState {
	state := &GameState{
		Game:    game,
		Winner:  tictactoe.Winner(game.Board),
		Outcome: tictactoe.Outcome(game.Board),
	}

	if !state.Outcome.IsFinished() {
		state.Turn = tictactoe.Player(game.Board)
	}

	return state
}
