package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows ...string) entity.Board {
	t.Helper()

	board, ok := entity.ParseBoard(rows...)
	require.True(t, ok, "bad board %v", rows)

	return board
}

// reachableBoards walks the game tree from the empty board and returns every distinct board.
func reachableBoards() map[entity.Board]struct{} {
	seen := make(map[entity.Board]struct{})
	stack := []entity.Board{InitialState()}

	for len(stack) > 0 {
		board := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[board]; ok {
			continue
		}
		seen[board] = struct{}{}

		if Terminal(board) {
			continue
		}
		for _, action := range Actions(board) {
			stack = append(stack, place(board, action))
		}
	}

	return seen
}

func TestPlayer(t *testing.T) {
	t.Run("X moves first on the empty board", func(t *testing.T) {
		assert.Equal(t, entity.PlayerX, Player(InitialState()))
	})

	t.Run("O moves when X has one more mark", func(t *testing.T) {
		board := mustBoard(t, "X..", "...", "...")
		assert.Equal(t, entity.PlayerO, Player(board))
	})

	t.Run("X moves when counts are equal", func(t *testing.T) {
		board := mustBoard(t, "XO.", "...", "...")
		assert.Equal(t, entity.PlayerX, Player(board))
	})
}

func TestActions(t *testing.T) {
	t.Run("Empty board has nine actions in row-major order", func(t *testing.T) {
		actions := Actions(InitialState())

		require.Len(t, actions, 9)
		assert.Equal(t, entity.Action{Row: 0, Col: 0}, actions[0])
		assert.Equal(t, entity.Action{Row: 0, Col: 1}, actions[1])
		assert.Equal(t, entity.Action{Row: 2, Col: 2}, actions[8])
	})

	t.Run("Only empty cells are returned", func(t *testing.T) {
		board := mustBoard(t, "XOX", "O.X", "OX.")

		assert.Equal(t, []entity.Action{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, Actions(board))
	})

	t.Run("Full board has no actions", func(t *testing.T) {
		board := mustBoard(t, "XOX", "XOO", "OXX")

		assert.Empty(t, Actions(board))
	})
}

func TestResult(t *testing.T) {
	t.Run("Places the mark of the player to move", func(t *testing.T) {
		// Given: a board where O is to move
		board := mustBoard(t, "X..", "...", "...")

		// When: O takes the centre
		next, err := Result(board, entity.Action{Row: 1, Col: 1})

		// Then: the centre holds O
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, next.At(1, 1))
	})

	t.Run("Input board is not modified", func(t *testing.T) {
		// Given: the empty board
		board := InitialState()

		// When: X plays a corner
		_, err := Result(board, entity.Action{Row: 0, Col: 0})
		require.NoError(t, err)

		// Then: the original board is still empty
		assert.Equal(t, InitialState(), board)
	})

	t.Run("Error on occupied cell", func(t *testing.T) {
		// Given: a board with X in the corner
		board := mustBoard(t, "X..", "...", "...")

		// When: O tries to overwrite it
		next, err := Result(board, entity.Action{Row: 0, Col: 0})

		// Then: ErrInvalidAction is returned and nothing is overwritten
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
		assert.Equal(t, entity.PlayerX, next.At(0, 0))
	})

	t.Run("Error on out of range cell", func(t *testing.T) {
		_, err := Result(InitialState(), entity.Action{Row: 3, Col: 0})
		require.ErrorIs(t, err, apperror.ErrInvalidAction)

		_, err = Result(InitialState(), entity.Action{Row: 0, Col: -1})
		require.ErrorIs(t, err, apperror.ErrInvalidAction)
	})
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		rows   []string
		winner entity.Mark
	}{
		{name: "row X", rows: []string{"XXX", "OO.", "..."}, winner: entity.PlayerX},
		{name: "column O", rows: []string{"XOX", "XO.", ".O."}, winner: entity.PlayerO},
		{name: "main diagonal X", rows: []string{"XO.", ".XO", "..X"}, winner: entity.PlayerX},
		{name: "anti diagonal O", rows: []string{"XXO", "XO.", "O.."}, winner: entity.PlayerO},
		{name: "no winner", rows: []string{"XO.", ".X.", "..O"}, winner: entity.Empty},
		{name: "full board draw", rows: []string{"XOX", "XOO", "OXX"}, winner: entity.Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.winner, Winner(mustBoard(t, tt.rows...)))
		})
	}
}

func TestTerminalAndUtility(t *testing.T) {
	t.Run("Empty board is not terminal", func(t *testing.T) {
		assert.False(t, Terminal(InitialState()))
		assert.Equal(t, entity.OutcomeOngoing, Outcome(InitialState()))
	})

	t.Run("Won board is terminal", func(t *testing.T) {
		board := mustBoard(t, "XXX", "OO.", "...")

		assert.True(t, Terminal(board))
		assert.Equal(t, 1, Utility(board))
		assert.Equal(t, entity.OutcomeXWins, Outcome(board))
	})

	t.Run("O win has utility -1", func(t *testing.T) {
		board := mustBoard(t, "XX.", "OOO", "X..")

		assert.True(t, Terminal(board))
		assert.Equal(t, -1, Utility(board))
		assert.Equal(t, entity.OutcomeOWins, Outcome(board))
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		// Given: a full board with no three in a row
		board := mustBoard(t, "XOX", "XOO", "OXX")

		// Then: it is terminal, has no winner and utility 0
		assert.True(t, Terminal(board))
		assert.Equal(t, entity.Empty, Winner(board))
		assert.Equal(t, 0, Utility(board))
		assert.Equal(t, entity.OutcomeDraw, Outcome(board))
	})

	t.Run("Full and won board counts as a win", func(t *testing.T) {
		board := mustBoard(t, "XOX", "OXO", "OXX")

		assert.True(t, Terminal(board))
		assert.Equal(t, entity.PlayerX, Winner(board))
		assert.Equal(t, 1, Utility(board))
	})
}

func TestValidate(t *testing.T) {
	t.Run("Accepts reachable counts", func(t *testing.T) {
		assert.NoError(t, Validate(InitialState()))
		assert.NoError(t, Validate(mustBoard(t, "X..", "...", "...")))
		assert.NoError(t, Validate(mustBoard(t, "XO.", "...", "...")))
	})

	t.Run("Rejects O ahead of X", func(t *testing.T) {
		err := Validate(mustBoard(t, "O..", "...", "..."))
		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects X two marks ahead", func(t *testing.T) {
		err := Validate(mustBoard(t, "XX.", "...", "..."))
		assert.ErrorIs(t, err, apperror.ErrInvalidBoard)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		board := InitialState()
		board[0][0] = "Z"

		assert.ErrorIs(t, Validate(board), apperror.ErrInvalidBoard)
	})
}

func TestProperties_ReachableBoards(t *testing.T) {
	boards := reachableBoards()

	// Then: the well-known number of positions is reached
	require.Len(t, boards, 5478)

	terminal := 0
	for board := range boards {
		require.NoError(t, Validate(board))

		// read-only operations are idempotent
		require.Equal(t, Winner(board), Winner(board))
		require.Equal(t, Terminal(board), Terminal(board))
		require.Equal(t, Actions(board), Actions(board))

		if Terminal(board) {
			terminal++

			utility := Utility(board)
			switch Winner(board) {
			case entity.PlayerX:
				require.Equal(t, 1, utility)
			case entity.PlayerO:
				require.Equal(t, -1, utility)
			default:
				require.Equal(t, 0, utility)
			}

			continue
		}

		actions := Actions(board)
		for _, action := range actions {
			next, err := Result(board, action)
			require.NoError(t, err)

			// the turn alternates and exactly one empty cell is consumed
			require.NotEqual(t, Player(board), Player(next))
			require.Len(t, Actions(next), len(actions)-1)
		}
	}

	assert.Equal(t, 958, terminal)
}
