package main

import (
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
)

func main() {
	mark := flag.String("mark", "X", "Mark you play with: X moves first, O second")
	difficulty := flag.String("difficulty", entity.HardDifficulty, "Computer strength: easy or hard")
	debug := flag.Bool("debug", false, "Log every turn to stderr")
	flag.Parse()

	level := zerolog.WarnLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	human, markErr := parseMark(*mark)
	if err := errors.Join(markErr, entity.ValidateDifficulty(*difficulty)); err != nil {
		logger.Error().Err(err).Msg("invalid flags")
		flag.Usage()
		os.Exit(2)
	}

	out := termenv.NewOutput(os.Stdout)
	s := newSession(logger, service.NewBotService(), os.Stdin, out, human, *difficulty)

	if _, err := s.run(); err != nil {
		logger.Error().Err(err).Msg("game aborted")
		os.Exit(1)
	}
}

// parseMark accepts x and o in either case.
func parseMark(value string) (entity.Mark, error) {
	mark := entity.Mark(strings.ToUpper(strings.TrimSpace(value)))
	if err := entity.ValidateMark(mark); err != nil {
		return entity.Empty, err
	}

	return mark, nil
}
