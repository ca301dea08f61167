package app

import "tienlen/internal/domain"

// EventKind identifies emitted game events for dispatch to the display layer.
type EventKind string

const (
	EventGameReset    EventKind = "game_reset"
	EventHandDealt    EventKind = "hand_dealt"
	EventGameStarted  EventKind = "game_started"
	EventCardPlayed   EventKind = "card_played"
	EventTurnPassed   EventKind = "turn_passed"
	EventGameEnded    EventKind = "game_ended"
	EventPauseToggled EventKind = "pause_toggled"
	EventNotification EventKind = "notification"
	EventStateChanged EventKind = "state_changed"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// NotifyLevel grades notifications for the display layer.
type NotifyLevel string

const (
	NotifyInfo    NotifyLevel = "info"
	NotifySuccess NotifyLevel = "success"
	NotifyError   NotifyLevel = "error"
)

type NotificationPayload struct {
	Level   NotifyLevel `json:"level"`
	Message string      `json:"message"`
}

type GameResetPayload struct {
	SessionID  string `json:"session_id"`
	KeepScores bool   `json:"keep_scores"`
}

type HandDealtPayload struct {
	Seat domain.Seat   `json:"seat"`
	Hand []domain.Card `json:"hand"`
}

type GameStartedPayload struct {
	FirstSeat          domain.Seat `json:"first_seat"`
	RequireOpeningCard bool        `json:"require_opening_card"`
}

type CardPlayedPayload struct {
	Seat  domain.Seat      `json:"seat"`
	Cards []domain.Card    `json:"cards"`
	Combo domain.ComboType `json:"combo"`
	Next  domain.Seat      `json:"next"`
}

type TurnPassedPayload struct {
	Seat domain.Seat `json:"seat"`
	Auto bool        `json:"auto"`
	Next domain.Seat `json:"next"`
}

type GameEndedPayload struct {
	Winner     domain.Seat    `json:"winner"`
	InstantWin bool           `json:"instant_win"`
	Scores     map[string]int `json:"scores"`
	AIHand     []domain.Card  `json:"ai_hand"` // revealed only at game end
}

type PauseToggledPayload struct {
	Paused bool `json:"paused"`
}

// Snapshot is the read-only view handed to display layers. The AI's cards
// are exposed as a count only until a winner is set.
type Snapshot struct {
	SessionID     string         `json:"session_id"`
	PlayerHand    []domain.Card  `json:"player_hand"`
	AICardCount   int            `json:"ai_card_count"`
	AIHand        []domain.Card  `json:"ai_hand,omitempty"`
	Table         []domain.Card  `json:"table"`
	Selected      []int32        `json:"selected"`
	Current       domain.Seat    `json:"current"`
	TurnRemaining int            `json:"turn_remaining"`
	Paused        bool           `json:"paused"`
	Dealing       bool           `json:"dealing"`
	Winner        *domain.Seat   `json:"winner,omitempty"`
	Scores        map[string]int `json:"scores"`
	Status        string         `json:"status"`
}
