package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const (
	EasyDifficulty = "easy"
	HardDifficulty = "hard"
)

// Game is a stored match between a human and the bot. Whose turn it is, the winner and
// the outcome are always derived from Board.
type Game struct {
	ID         string    `json:"id"`
	Board      Board     `json:"board"`
	HumanMark  Mark      `json:"human_mark"`
	Difficulty string    `json:"difficulty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewGame(id string, humanMark Mark, difficulty string) *Game {
	return &Game{
		ID:         id,
		HumanMark:  humanMark,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	}
}

func (that *Game) BotMark() Mark {
	return that.HumanMark.Opponent()
}

func ValidateMark(mark Mark) error {
	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	return nil
}

func ValidateDifficulty(difficulty string) error {
	switch difficulty {
	case EasyDifficulty, HardDifficulty:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}
