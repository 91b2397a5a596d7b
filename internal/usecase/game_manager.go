package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	ChooseAction(board entity.Board, difficulty string) (entity.Action, error)
}

// Analysis describes a board: whose turn it is, how the game stands, its minimax value
// and the optimal action (nil on a finished game).
type Analysis struct {
	Board   entity.Board   `json:"board"`
	Turn    entity.Mark    `json:"turn"`
	Outcome entity.Outcome `json:"outcome"`
	Winner  entity.Mark    `json:"winner"`
	Value   int            `json:"value"`
	Action  *entity.Action `json:"action"`
}

type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	bot      botService
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		bot:      bot,
	}
}

// NewGame - starts a game against the bot. When the human plays O the bot opens.
func (that *GameManager) NewGame(ctx context.Context, humanMark entity.Mark, difficulty string) (*entity.Game, error) {
	if err := entity.ValidateMark(humanMark); err != nil {
		return nil, err
	}

	if err := entity.ValidateDifficulty(difficulty); err != nil {
		return nil, err
	}

	game := entity.NewGame(uuid.NewString(), humanMark, difficulty)

	if tictactoe.Player(game.Board) == game.BotMark() {
		if err := that.botTurn(game); err != nil {
			return nil, err
		}
	}

	if err := that.updateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "humanMark", game.HumanMark, "difficulty", game.Difficulty)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn - plays the human's action and, unless that ends the game, the bot's answer.
func (that *GameManager) MakeTurn(ctx context.Context, id string, action entity.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if tictactoe.Terminal(game.Board) {
		return game, apperror.ErrGameFinished
	}

	if tictactoe.Player(game.Board) != game.HumanMark {
		return game, apperror.ErrNotYourTurn
	}

	board, err := tictactoe.Result(game.Board, action)
	if err != nil {
		return game, fmt.Errorf("failed make turn: %w", err)
	}
	game.Board = board

	if !tictactoe.Terminal(game.Board) {
		if err = that.botTurn(game); err != nil {
			return nil, err
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	if outcome := tictactoe.Outcome(game.Board); outcome.IsFinished() {
		log.Info("game finished", "outcome", outcome)
	}

	return game, nil
}

// EndGame - removes the game from storage.
func (that *GameManager) EndGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// Analyze - evaluates an arbitrary board without touching storage.
func (that *GameManager) Analyze(board entity.Board) (*Analysis, error) {
	if err := tictactoe.Validate(board); err != nil {
		return nil, err
	}

	action, value, ok := tictactoe.Search(board)

	analysis := &Analysis{
		Board:   board,
		Outcome: tictactoe.Outcome(board),
		Winner:  tictactoe.Winner(board),
		Value:   value,
	}

	if ok {
		analysis.Turn = tictactoe.Player(board)
		analysis.Action = &action
	}

	return analysis, nil
}

func (that *GameManager) botTurn(game *entity.Game) error {
	action, err := that.bot.ChooseAction(game.Board, game.Difficulty)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	board, err := tictactoe.Result(game.Board, action)
	if err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}
	game.Board = board

	that.logger.Debug("bot made a turn", "gameID", game.ID, "row", action.Row, "col", action.Col)

	return nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
