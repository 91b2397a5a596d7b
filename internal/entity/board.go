package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Mark string

const (
	Empty   Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

// Size is the side length of the board.
const Size = 3

// Opponent returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Board is a value type: assigning or passing it copies every cell.
type Board [Size][Size]Mark

// UnmarshalJSON accepts exactly Size rows of Size cells.
func (that *Board) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: expected %d rows, got %d", apperror.ErrInvalidBoard, Size, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", apperror.ErrInvalidBoard, i, len(row), Size)
		}
		copy(board[i][:], row)
	}

	*that = board

	return nil
}

func (that Board) At(row, col int) Mark {
	return that[row][col]
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

func (that Board) IsFull() bool {
	return that.Count(Empty) == 0
}

// String renders the board as three lines, "." for empty cells.
func (that Board) String() string {
	var sb strings.Builder
	for i, row := range that {
		for _, cell := range row {
			if cell == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(cell))
		}
		if i < Size-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// ParseBoard builds a board from three rows such as "X.O", "." or " " marking empty cells.
func ParseBoard(rows ...string) (Board, bool) {
	var board Board
	if len(rows) != Size {
		return board, false
	}

	for i, row := range rows {
		if len(row) != Size {
			return board, false
		}
		for j, ch := range row {
			switch ch {
			case 'X':
				board[i][j] = PlayerX
			case 'O':
				board[i][j] = PlayerO
			case '.', ' ':
				board[i][j] = Empty
			default:
				return Board{}, false
			}
		}
	}

	return board, true
}

type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InRange() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

type Outcome string

const (
	OutcomeOngoing Outcome = "ongoing"
	OutcomeXWins   Outcome = "x_wins"
	OutcomeOWins   Outcome = "o_wins"
	OutcomeDraw    Outcome = "draw"
)

func (that Outcome) IsFinished() bool {
	return that != OutcomeOngoing
}
