package apperror

import "errors"

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidBoard      = errors.New("invalid board")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)
