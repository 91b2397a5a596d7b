package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	ChooseAction(board entity.Board, difficulty string) (entity.Action, error)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewBotService() BotService {
	return NewBotServiceWithSeed(uint64(time.Now().UnixNano()))
}

// NewBotServiceWithSeed - builds a bot whose easy moves are reproducible.
func NewBotServiceWithSeed(seed uint64) BotService {
	return &botService{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

func (that *botService) ChooseAction(board entity.Board, difficulty string) (entity.Action, error) {
	if tictactoe.Terminal(board) {
		return entity.Action{}, ErrNoAvailableMoves
	}

	switch difficulty {
	case entity.HardDifficulty:
		action, ok := tictactoe.Minimax(board)
		if !ok {
			return entity.Action{}, ErrNoAvailableMoves
		}

		return action, nil
	case entity.EasyDifficulty:
		return that.randomAction(board), nil
	default:
		return entity.Action{}, fmt.Errorf("bot failed to choose action: %w", entity.ValidateDifficulty(difficulty))
	}
}

func (that *botService) randomAction(board entity.Board) entity.Action {
	availableActions := tictactoe.Actions(board)

	that.mu.Lock()
	defer that.mu.Unlock()

	return availableActions[that.rnd.Intn(len(availableActions))]
}
