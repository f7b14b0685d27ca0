package domain

import "errors"

var (
	// ErrBankNotFound indicates the question bank could not be loaded.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrInvalidQuestion is returned when a question breaks the bank invariants.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrUnknownKind indicates a question kind outside single, text and multi.
	ErrUnknownKind = errors.New("unknown question kind")
	// ErrInputAborted is returned by prompts when the player cancels input.
	ErrInputAborted = errors.New("input aborted")
)
