package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var (
	errInputClosed = errors.New("input closed before the game ended")
	errBadMove     = errors.New("expected two numbers from 1 to 3, e.g. \"2 3\"")
)

// session is one game between a human at the terminal and the bot.
type session struct {
	logger zerolog.Logger
	bot    service.BotService
	out    *termenv.Output
	in     *bufio.Scanner

	human      entity.Mark
	difficulty string
}

func newSession(logger zerolog.Logger, bot service.BotService, in io.Reader, out *termenv.Output,
	human entity.Mark, difficulty string,
) *session {
	return &session{
		logger:     logger,
		bot:        bot,
		out:        out,
		in:         bufio.NewScanner(in),
		human:      human,
		difficulty: difficulty,
	}
}

// run plays until the board is terminal and returns the outcome.
func (that *session) run() (entity.Outcome, error) {
	board := tictactoe.InitialState()

	fmt.Fprintf(that.out, "You play %s against the %s computer.\n\n", that.human, that.difficulty)

	for !tictactoe.Terminal(board) {
		var (
			action entity.Action
			err    error
		)

		player := tictactoe.Player(board)
		if player == that.human {
			fmt.Fprint(that.out, renderBoard(that.out, board))

			action, err = that.readAction(board)
			if err != nil {
				return entity.OutcomeOngoing, err
			}
		} else {
			action, err = that.bot.ChooseAction(board, that.difficulty)
			if err != nil {
				return entity.OutcomeOngoing, fmt.Errorf("bot failed to choose an action: %w", err)
			}

			fmt.Fprintf(that.out, "Computer plays %d %d\n", action.Row+1, action.Col+1)
		}

		that.logger.Debug().Str("player", string(player)).Int("row", action.Row).Int("col", action.Col).Msg("turn")

		board, err = tictactoe.Result(board, action)
		if err != nil {
			return entity.OutcomeOngoing, fmt.Errorf("failed to apply action: %w", err)
		}
	}

	outcome := tictactoe.Outcome(board)

	fmt.Fprint(that.out, "\n"+renderBoard(that.out, board))
	fmt.Fprintln(that.out, renderOutcome(that.out, outcome, that.human))

	that.logger.Info().Str("outcome", string(outcome)).Msg("game finished")

	return outcome, nil
}

// readAction prompts until the human enters a legal move.
func (that *session) readAction(board entity.Board) (entity.Action, error) {
	for {
		fmt.Fprint(that.out, "Your move (row col): ")

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return entity.Action{}, fmt.Errorf("failed to read move: %w", err)
			}

			return entity.Action{}, errInputClosed
		}

		action, err := parseAction(that.in.Text())
		if err == nil {
			_, err = tictactoe.Result(board, action)
		}

		if err != nil {
			fmt.Fprintf(that.out, "Invalid move: %v\n", err)
			continue
		}

		return action, nil
	}
}

// parseAction reads a 1-based "row col" pair.
func parseAction(line string) (entity.Action, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return entity.Action{}, errBadMove
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Action{}, errBadMove
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Action{}, errBadMove
	}

	action := entity.Action{Row: row - 1, Col: col - 1}
	if !action.InRange() {
		return entity.Action{}, errBadMove
	}

	return action, nil
}
