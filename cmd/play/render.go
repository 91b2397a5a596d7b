package main

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	colorX    = "#E06C75"
	colorO    = "#61AFEF"
	colorGrid = "#5C6370"
)

// renderBoard draws the board with 1-based coordinates on the edges.
func renderBoard(out *termenv.Output, board entity.Board) string {
	var sb strings.Builder

	grid := func(s string) string {
		return out.String(s).Foreground(out.Color(colorGrid)).String()
	}

	sb.WriteString("    1   2   3\n")
	for row := 0; row < entity.Size; row++ {
		if row > 0 {
			sb.WriteString("   " + grid("---+---+---") + "\n")
		}

		sb.WriteString(string(rune('1'+row)) + "  ")
		for col := 0; col < entity.Size; col++ {
			if col > 0 {
				sb.WriteString(grid("|"))
			}
			sb.WriteString(" " + renderMark(out, board.At(row, col)) + " ")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderMark(out *termenv.Output, mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return out.String("X").Foreground(out.Color(colorX)).Bold().String()
	case entity.PlayerO:
		return out.String("O").Foreground(out.Color(colorO)).Bold().String()
	default:
		return " "
	}
}

func renderOutcome(out *termenv.Output, outcome entity.Outcome, human entity.Mark) string {
	switch {
	case outcome == entity.OutcomeDraw:
		return out.String("Game over: tie.").Bold().String()
	case winnerOf(outcome) == human:
		return out.String("Game over: you win!").Bold().String()
	default:
		return out.String("Game over: the computer wins.").Bold().String()
	}
}

func winnerOf(outcome entity.Outcome) entity.Mark {
	switch outcome {
	case entity.OutcomeXWins:
		return entity.PlayerX
	case entity.OutcomeOWins:
		return entity.PlayerO
	default:
		return entity.Empty
	}
}
