package repository

import (
	"context"
)

// Conversation steps of the birth-data dialogue.
const (
	StepAwaitingDate   = "awaiting_date"
	StepAwaitingGender = "awaiting_gender"
)

// ConversationState holds the user's progress in the birth-data dialogue.
type ConversationState struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data"` // collected fields, e.g. "birth_date"
}

// StateRepository is the port for managing any user's conversational state.
// It replaces the per-process user dictionary of earlier bot iterations so
// a restart (or a second instance) does not lose in-flight dialogues.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}
