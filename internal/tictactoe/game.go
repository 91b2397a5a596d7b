package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// WinCombos lists every line of three cells: rows, then columns, then diagonals.
var WinCombos = [8][3]entity.Action{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// InitialState returns the empty board.
func InitialState() entity.Board {
	return entity.Board{}
}

// Player returns the mark to move. X always moves first, so O is to move only when X
// has placed more marks.
func Player(board entity.Board) entity.Mark {
	if board.Count(entity.PlayerX) > board.Count(entity.PlayerO) {
		return entity.PlayerO
	}

	return entity.PlayerX
}

// Actions returns every empty cell in row-major order.
func Actions(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, entity.Size*entity.Size)
	for row := range entity.Size {
		for col := range entity.Size {
			if board[row][col] == entity.Empty {
				actions = append(actions, entity.Action{Row: row, Col: col})
			}
		}
	}

	return actions
}

// Result returns the board after the player to move marks action. The given board is
// left untouched.
func Result(board entity.Board, action entity.Action) (entity.Board, error) {
	if err := validateAction(board, action); err != nil {
		return board, err
	}

	return place(board, action), nil
}

// validateAction - checks that the action points at an empty cell on the board.
func validateAction(board entity.Board, action entity.Action) error {
	if !action.InRange() {
		return fmt.Errorf("%w: cell (%d, %d) is out of range", apperror.ErrInvalidAction, action.Row, action.Col)
	}

	if board[action.Row][action.Col] != entity.Empty {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidAction, action.Row, action.Col)
	}

	return nil
}

// place marks the cell without validation; action must come from Actions(board).
func place(board entity.Board, action entity.Action) entity.Board {
	board[action.Row][action.Col] = Player(board)
	return board
}

// Winner returns the mark owning a full line, or entity.Empty.
func Winner(board entity.Board) entity.Mark {
	for _, combo := range WinCombos {
		a := board[combo[0].Row][combo[0].Col]
		b := board[combo[1].Row][combo[1].Col]
		c := board[combo[2].Row][combo[2].Col]
		if a != entity.Empty && a == b && b == c {
			return a
		}
	}

	return entity.Empty
}

// Terminal reports whether the game is over: somebody won or the board is full.
func Terminal(board entity.Board) bool {
	if Winner(board) != entity.Empty {
		return true
	}

	return board.IsFull()
}

// Utility is 1 if X has won, -1 if O has won, 0 otherwise. Only meaningful on terminal boards.
func Utility(board entity.Board) int {
	switch Winner(board) {
	case entity.PlayerX:
		return 1
	case entity.PlayerO:
		return -1
	default:
		return 0
	}
}

func Outcome(board entity.Board) entity.Outcome {
	switch Winner(board) {
	case entity.PlayerX:
		return entity.OutcomeXWins
	case entity.PlayerO:
		return entity.OutcomeOWins
	}

	if board.IsFull() {
		return entity.OutcomeDraw
	}

	return entity.OutcomeOngoing
}

// Validate checks a board received from outside: X moves first, so X has either as many
// marks as O or exactly one more.
func Validate(board entity.Board) error {
	for _, row := range board {
		for _, cell := range row {
			if cell != entity.Empty && !cell.IsPlayer() {
				return fmt.Errorf("%w: unknown mark %q", apperror.ErrInvalidBoard, cell)
			}
		}
	}

	diff := board.Count(entity.PlayerX) - board.Count(entity.PlayerO)
	if diff < 0 || diff > 1 {
		return fmt.Errorf("%w: X has %d marks, O has %d", apperror.ErrInvalidBoard,
			board.Count(entity.PlayerX), board.Count(entity.PlayerO))
	}

	return nil
}
