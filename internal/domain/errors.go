package domain

import "errors"

var (
	// ErrPlayerNotFound is returned when a player acts before logging in.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrEmptyPlayerName rejects a login with a blank name.
	ErrEmptyPlayerName = errors.New("player name must not be empty")
	// ErrNoActiveRound is returned when answering or submitting with no round started.
	ErrNoActiveRound = errors.New("no active round")
	// ErrQuestionIndex indicates an answer for a question index outside the round.
	ErrQuestionIndex = errors.New("question index out of range")
	// ErrInvalidRoundSize rejects a non-positive requested round size.
	ErrInvalidRoundSize = errors.New("round size must be positive")
)
