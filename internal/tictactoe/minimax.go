package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Minimax returns the optimal action for the player to move. X maximizes the utility and
// O minimizes it; among equally valued actions the first in row-major order is chosen.
// It reports false when the board is terminal.
//
// The whole remaining game tree is searched on every call, without pruning or caching.
func Minimax(board entity.Board) (entity.Action, bool) {
	action, _, ok := Search(board)
	return action, ok
}

// Search is Minimax that also reports the value of the chosen action. On a terminal board
// it returns the board's utility and false.
func Search(board entity.Board) (entity.Action, int, bool) {
	if Terminal(board) {
		return entity.Action{}, Utility(board), false
	}

	maximizing := Player(board) == entity.PlayerX

	var bestAction entity.Action
	bestValue := initialValue(maximizing)
	for _, action := range Actions(board) {
		v := value(place(board, action), !maximizing)
		if better(v, bestValue, maximizing) {
			bestValue = v
			bestAction = action
		}
	}

	return bestAction, bestValue, true
}

// Value is the game value of board under optimal play by both sides.
func Value(board entity.Board) int {
	return value(board, Player(board) == entity.PlayerX)
}

// value plays the role of both max-value (maximizing) and min-value (!maximizing).
func value(board entity.Board, maximizing bool) int {
	if Terminal(board) {
		return Utility(board)
	}

	best := initialValue(maximizing)
	for _, action := range Actions(board) {
		v := value(place(board, action), !maximizing)
		if better(v, best, maximizing) {
			best = v
		}
	}

	return best
}

func initialValue(maximizing bool) int {
	if maximizing {
		return math.MinInt
	}

	return math.MaxInt
}

func better(candidate, best int, maximizing bool) bool {
	if maximizing {
		return candidate > best
	}

	return candidate < best
}
