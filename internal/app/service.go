package app

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"tienlen/internal/bot"
	"tienlen/internal/config"
	"tienlen/internal/domain"
)

var (
	ErrNoGame      = errors.New("no game in progress")
	ErrNotYourTurn = errors.New("not this seat's turn")
	ErrGameOver    = errors.New("game already decided")
	ErrPaused      = errors.New("game is paused")
)

// Service is the turn controller. It owns the authoritative game state, the
// human turn timer, the AI schedule and the cumulative scores. All mutation
// goes through its methods; callers drive Tick once per second and read
// Snapshot. Methods return the events the display layer should receive.
type Service struct {
	cfg   config.GameConfig
	rng   *rand.Rand
	brain bot.Brain

	game      *domain.Game
	sessionID string
	selection map[int32]bool

	tick          int64
	turnRemaining int
	aiActAt       int64 // tick at which the AI acts; 0 means not scheduled
	paused        bool
	dealing       bool
	status        string
	scores        map[domain.Seat]int
}

// NewService constructs a Service with the provided rng and strategy, or
// time-seeded/greedy defaults.
func NewService(rng *rand.Rand, brain bot.Brain, cfg config.GameConfig) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if brain == nil {
		brain = bot.NewGreedyBrain()
	}
	return &Service{
		rng:       rng,
		brain:     brain,
		cfg:       cfg,
		selection: make(map[int32]bool),
		scores:    map[domain.Seat]int{domain.SeatPlayer: 0, domain.SeatAI: 0},
	}
}

// ResetGame shuffles a fresh deck, deals both seats and starts the turn
// loop. Scores survive when keepScores is set. A seat dealt all four 2s wins
// instantly without a turn being played.
func (s *Service) ResetGame(keepScores bool) []Event {
	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())
	hands := domain.Deal(deck, 2, s.cfg.CardsPerPlayer)
	return s.resetWithHands(hands[0], hands[1], keepScores)
}

func (s *Service) resetWithHands(playerHand, aiHand []domain.Card, keepScores bool) []Event {
	s.sessionID = uuid.NewString()
	if !keepScores {
		s.scores = map[domain.Seat]int{domain.SeatPlayer: 0, domain.SeatAI: 0}
	}

	s.dealing = true
	s.paused = false
	s.aiActAt = 0
	s.turnRemaining = 0
	s.selection = make(map[int32]bool)
	s.game = domain.NewGame(playerHand, aiHand)

	events := []Event{
		{Kind: EventGameReset, Payload: GameResetPayload{SessionID: s.sessionID, KeepScores: keepScores}},
		{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{Seat: domain.SeatPlayer, Hand: s.game.HandOf(domain.SeatPlayer)},
			Recipients: []string{domain.SeatPlayer.String()},
		},
	}

	if w := s.game.InstantWinner(); w != nil {
		s.game.Winner = w
		s.dealing = false
		return append(events, s.finishEvents(*w, true)...)
	}

	s.dealing = false
	events = append(events, Event{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			FirstSeat:          s.game.FirstSeat,
			RequireOpeningCard: s.game.RequireOpeningCard,
		},
	})

	if s.game.Current == domain.SeatPlayer {
		s.enterPlayerTurn()
		if s.game.RequireOpeningCard {
			s.status = "Your turn: open with the 3 of Spades"
			events = append(events, notify(NotifyInfo, s.status))
		} else {
			s.status = "Your turn: open the round"
		}
	} else {
		s.enterAITurn()
		s.status = "Opponent opens the game"
	}

	return append(events, s.stateChanged())
}

// SelectCard toggles a card in the selection buffer. If the turn timer has
// already expired the click is refused and the pending auto-pass runs
// instead.
func (s *Service) SelectCard(cardID int32) ([]Event, error) {
	if err := s.guardPlayerAction(); err != nil {
		return nil, err
	}
	if s.turnRemaining <= 0 {
		return s.PassTurn(true)
	}

	held := false
	for _, c := range s.game.HandOf(domain.SeatPlayer) {
		if c.ID == cardID {
			held = true
			break
		}
	}
	if !held {
		return []Event{notify(NotifyError, "that card is not in your hand")}, nil
	}

	if s.selection[cardID] {
		delete(s.selection, cardID)
	} else {
		s.selection[cardID] = true
	}
	return []Event{s.stateChanged()}, nil
}

// PlaySelected validates and plays the selected cards. Rule violations are
// reported as error notifications and leave the state, the selection and the
// running timer untouched.
func (s *Service) PlaySelected() ([]Event, error) {
	if err := s.guardPlayerAction(); err != nil {
		return nil, err
	}
	if s.turnRemaining <= 0 {
		return s.PassTurn(true)
	}

	cards := s.selectedCards()
	if len(cards) == 0 {
		return []Event{notify(NotifyError, "select cards to play first")}, nil
	}

	combo := domain.Identify(cards)
	if combo.Type == domain.Invalid {
		return []Event{notify(NotifyError, "those cards do not form a valid combination")}, nil
	}

	if s.game.MustIncludeOpeningCard(domain.SeatPlayer) && !comboContainsThreeOfSpades(combo) {
		return []Event{notify(NotifyError, "your first play must include the 3 of Spades")}, nil
	}

	if !s.game.OpeningFor(domain.SeatPlayer) && !domain.CanBeat(*s.game.LastPlayed, combo) {
		return []Event{notify(NotifyError, "that does not beat the hand on the table")}, nil
	}

	return s.commitPlay(domain.SeatPlayer, combo), nil
}

// PlayCards replaces the selection with the given cards and plays them in one
// step. Message-based clients resend the whole play on a retry, so nothing
// from an earlier rejected attempt may survive in the buffer.
func (s *Service) PlayCards(cardIDs []int32) ([]Event, error) {
	if err := s.guardPlayerAction(); err != nil {
		return nil, err
	}
	if s.turnRemaining <= 0 {
		return s.PassTurn(true)
	}

	held := make(map[int32]bool, len(s.game.HandOf(domain.SeatPlayer)))
	for _, c := range s.game.HandOf(domain.SeatPlayer) {
		held[c.ID] = true
	}

	selection := make(map[int32]bool, len(cardIDs))
	for _, id := range cardIDs {
		if !held[id] {
			return []Event{notify(NotifyError, "that card is not in your hand")}, nil
		}
		selection[id] = true
	}

	s.selection = selection
	return s.PlaySelected()
}

// PassTurn passes for the human seat. Passing is rejected while opening a
// round with a legal move available; an auto pass (timer expiry) is a forced
// transition and bypasses that check.
func (s *Service) PassTurn(auto bool) ([]Event, error) {
	if err := s.guardPlayerAction(); err != nil {
		return nil, err
	}

	if !auto && s.game.OpeningFor(domain.SeatPlayer) {
		hand := s.game.HandOf(domain.SeatPlayer)
		must := s.game.MustIncludeOpeningCard(domain.SeatPlayer)
		if len(domain.PlayableHands(hand, domain.Combination{Type: domain.Invalid}, true, must)) > 0 {
			return []Event{notify(NotifyError, "you are opening the round and must play")}, nil
		}
	}

	s.game.ApplyPass(domain.SeatPlayer, auto)
	s.selection = make(map[int32]bool)
	s.enterAITurn()
	if auto {
		s.status = "Time ran out: turn passed"
	} else {
		s.status = "You passed"
	}

	events := []Event{
		{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: domain.SeatPlayer, Auto: auto, Next: domain.SeatAI}},
	}
	if auto {
		events = append(events, notify(NotifyInfo, "time ran out, turn passed automatically"))
	}
	return append(events, s.stateChanged()), nil
}

// TogglePause suspends or resumes the timer and the AI schedule without
// changing whose turn it is.
func (s *Service) TogglePause() ([]Event, error) {
	if s.game == nil {
		return nil, ErrNoGame
	}
	if s.game.Winner != nil {
		return nil, ErrGameOver
	}

	s.paused = !s.paused
	if s.paused {
		s.status = "Game paused"
	} else {
		s.status = "Game resumed"
	}
	return []Event{
		{Kind: EventPauseToggled, Payload: PauseToggledPayload{Paused: s.paused}},
		s.stateChanged(),
	}, nil
}

// Tick advances the controller by one second. It drives the human turn
// countdown (expiry forces an auto pass) and fires the AI once its thinking
// delay elapses. Nothing moves while paused, dealing or finished; a delay
// that expires during a pause fires on the first tick after resume.
func (s *Service) Tick() []Event {
	s.tick++
	if s.game == nil || s.game.Winner != nil || s.paused || s.dealing {
		return nil
	}

	switch s.game.Current {
	case domain.SeatPlayer:
		s.turnRemaining--
		if s.turnRemaining <= 0 {
			events, err := s.PassTurn(true)
			if err != nil {
				return nil
			}
			return events
		}
		return []Event{s.stateChanged()}

	case domain.SeatAI:
		if s.aiActAt == 0 {
			s.enterAITurn()
			return nil
		}
		if s.tick >= s.aiActAt {
			s.aiActAt = 0
			return s.runAITurn()
		}
	}
	return nil
}

// Snapshot returns the read-only view for display layers. The AI hand is
// revealed only once a winner is set.
func (s *Service) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID: s.sessionID,
		Paused:    s.paused,
		Dealing:   s.dealing,
		Status:    s.status,
		Scores:    s.scoreMap(),
	}
	if s.game == nil {
		return snap
	}

	snap.PlayerHand = append([]domain.Card(nil), s.game.HandOf(domain.SeatPlayer)...)
	snap.AICardCount = len(s.game.HandOf(domain.SeatAI))
	snap.Table = append([]domain.Card(nil), s.game.Table...)
	snap.Current = s.game.Current
	snap.TurnRemaining = s.turnRemaining
	snap.Winner = s.game.Winner
	for id := range s.selection {
		snap.Selected = append(snap.Selected, id)
	}
	if s.game.Winner != nil {
		snap.AIHand = append([]domain.Card(nil), s.game.HandOf(domain.SeatAI)...)
	}
	return snap
}

/* ---- internals ---- */

func (s *Service) guardPlayerAction() error {
	if s.game == nil {
		return ErrNoGame
	}
	if s.game.Winner != nil {
		return ErrGameOver
	}
	if s.paused || s.dealing {
		return ErrPaused
	}
	if s.game.Current != domain.SeatPlayer {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Service) selectedCards() []domain.Card {
	cards := make([]domain.Card, 0, len(s.selection))
	for _, c := range s.game.HandOf(domain.SeatPlayer) {
		if s.selection[c.ID] {
			cards = append(cards, c)
		}
	}
	return cards
}

// commitPlay applies an already validated play and emits the follow-up
// events, including the game end when the hand empties.
func (s *Service) commitPlay(seat domain.Seat, combo domain.Combination) []Event {
	s.game.ApplyPlay(seat, combo)
	if seat == domain.SeatPlayer {
		s.selection = make(map[int32]bool)
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:  seat,
			Cards: combo.Cards,
			Combo: combo.Type,
			Next:  s.game.Current,
		},
	}}

	if s.game.Winner != nil {
		return append(events, append(s.finishEvents(seat, false), s.stateChanged())...)
	}

	if seat == domain.SeatPlayer {
		s.enterAITurn()
		s.status = "Opponent is thinking"
	} else {
		s.enterPlayerTurn()
		s.status = "Your turn"
	}
	return append(events, s.stateChanged())
}

func (s *Service) runAITurn() (events []Event) {
	// The AI runs inside the tick loop with no supervisor above it; a fault
	// is absorbed into a forced pass and a paused game, never a crash.
	defer func() {
		if r := recover(); r != nil {
			events = s.aiFault(fmt.Sprintf("ai move panicked: %v", r))
		}
	}()

	move, err := s.brain.CalculateMove(s.game, domain.SeatAI)
	if err != nil {
		return s.aiFault(fmt.Sprintf("ai move failed: %v", err))
	}

	if move.Pass {
		s.game.ApplyPass(domain.SeatAI, false)
		s.enterPlayerTurn()
		s.status = "Opponent passed: the table is open"
		return []Event{
			{Kind: EventTurnPassed, Payload: TurnPassedPayload{Seat: domain.SeatAI, Next: domain.SeatPlayer}},
			notify(NotifyInfo, "opponent passed"),
			s.stateChanged(),
		}
	}

	combo := domain.Identify(move.Cards)
	if combo.Type == domain.Invalid {
		return s.aiFault("ai produced an invalid combination")
	}
	if !s.game.OpeningFor(domain.SeatAI) && !domain.CanBeat(*s.game.LastPlayed, combo) {
		return s.aiFault("ai produced an illegal play")
	}

	return s.commitPlay(domain.SeatAI, combo)
}

// aiFault converts an AI failure into a forced pass plus a paused game.
func (s *Service) aiFault(msg string) []Event {
	s.game.ApplyPass(domain.SeatAI, true)
	s.enterPlayerTurn()
	s.paused = true
	s.status = "Opponent error: game paused"
	return []Event{
		notify(NotifyError, msg),
		{Kind: EventPauseToggled, Payload: PauseToggledPayload{Paused: true}},
		s.stateChanged(),
	}
}

func (s *Service) finishEvents(winner domain.Seat, instant bool) []Event {
	s.scores[winner]++
	s.turnRemaining = 0
	s.aiActAt = 0
	if winner == domain.SeatPlayer {
		s.status = "You win!"
	} else {
		s.status = "Opponent wins"
	}

	level := NotifySuccess
	if winner == domain.SeatAI {
		level = NotifyInfo
	}
	msg := s.status
	if instant {
		msg = "instant win: all four 2s dealt to one hand"
	}

	return []Event{
		{
			Kind: EventGameEnded,
			Payload: GameEndedPayload{
				Winner:     winner,
				InstantWin: instant,
				Scores:     s.scoreMap(),
				AIHand:     s.game.HandOf(domain.SeatAI),
			},
		},
		notify(level, msg),
	}
}

// enterPlayerTurn arms the human countdown; any previously armed AI schedule
// is dropped so a stale delay cannot fire into the player's turn.
func (s *Service) enterPlayerTurn() {
	s.turnRemaining = s.cfg.TurnDurationSeconds
	s.aiActAt = 0
}

// enterAITurn stops the human countdown and schedules the AI thinking delay.
func (s *Service) enterAITurn() {
	s.turnRemaining = 0
	delay := s.cfg.BotMinDelaySeconds
	if s.cfg.BotMaxDelaySeconds > s.cfg.BotMinDelaySeconds {
		delay += s.rng.Intn(s.cfg.BotMaxDelaySeconds - s.cfg.BotMinDelaySeconds + 1)
	}
	if delay < 1 {
		delay = 1
	}
	s.aiActAt = s.tick + int64(delay)
}

func (s *Service) scoreMap() map[string]int {
	return map[string]int{
		domain.SeatPlayer.String(): s.scores[domain.SeatPlayer],
		domain.SeatAI.String():     s.scores[domain.SeatAI],
	}
}

func (s *Service) stateChanged() Event {
	return Event{Kind: EventStateChanged, Payload: s.Snapshot()}
}

func notify(level NotifyLevel, msg string) Event {
	return Event{Kind: EventNotification, Payload: NotificationPayload{Level: level, Message: msg}}
}

func comboContainsThreeOfSpades(combo domain.Combination) bool {
	for _, c := range combo.Cards {
		if c.IsThreeOfSpades() {
			return true
		}
	}
	return false
}
