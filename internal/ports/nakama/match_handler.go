package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"tienlen/internal/app"
	"tienlen/internal/bot"
	"tienlen/internal/config"
	"tienlen/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Label is the match label advertised for match listing queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

// MatchState holds the Nakama-side runtime state: one human seat, one bot
// seat, and the turn controller that owns the actual game.
type MatchState struct {
	HumanUserID string
	Presences   map[string]runtime.Presence
	Svc         *app.Service
	Agent       *bot.Agent
	Started     bool
}

func (ms *MatchState) open() bool {
	return ms.HumanUserID == ""
}

type matchHandler struct{}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

// MatchInit builds the turn controller from config plus env overrides and
// advertises an open single-seat match.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: using default game config: %v", err)
	}
	cfg := config.GetGameConfig()

	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if val, ok := env["tienlen_turn_duration_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i > 0 {
				cfg.TurnDurationSeconds = i
			}
		}
		if val, ok := env["tienlen_cards_per_player"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i > 0 && 2*i <= domain.DeckSize {
				cfg.CardsPerPlayer = i
			}
		}
		if val, ok := env["tienlen_bot_min_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i > 0 {
				cfg.BotMinDelaySeconds = i
			}
		}
		if val, ok := env["tienlen_bot_max_delay_sec"]; ok {
			if i, err := strconv.Atoi(val); err == nil && i >= cfg.BotMinDelaySeconds {
				cfg.BotMaxDelaySeconds = i
			}
		}
	}

	agent := bot.NewAgent("bot:standard", "Opponent")
	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		Svc:       app.NewService(rand.New(rand.NewSource(time.Now().UnixNano())), agent, cfg),
		Agent:     agent,
	}

	labelBytes, err := json.Marshal(Label{Open: true, Game: "tienlen", Phase: "lobby"})
	if err != nil {
		logger.Error("MatchInit: failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1 // the turn timer and AI delay advance once per second
	return state, tickRate, string(labelBytes)
}

// MatchJoinAttempt admits one human; everyone else is turned away.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	s, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if s.HumanUserID != "" && s.HumanUserID != presence.GetUserId() {
		return state, false, "match_full"
	}
	return state, true, ""
}

// MatchJoin seats the human (or restores a rejoining one) and replays the
// current snapshot to them.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s := state.(*MatchState)

	for _, p := range presences {
		uid := p.GetUserId()
		s.Presences[uid] = p
		if s.HumanUserID == "" {
			s.HumanUserID = uid
		}

		evt, _ := json.Marshal(map[string]any{"user_id": uid, "opponent": s.Agent.Name})
		_ = dispatcher.BroadcastMessage(OpPlayerJoined, evt, nil, nil, true)

		snap, _ := json.Marshal(s.Svc.Snapshot())
		_ = dispatcher.BroadcastMessage(OpStateChanged, snap, []runtime.Presence{p}, nil, true)
	}

	mh.updateLabel(s, dispatcher, logger)
	return s
}

// MatchLeave frees the seat. With no human left the match shuts down.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	s := state.(*MatchState)

	for _, p := range presences {
		uid := p.GetUserId()
		delete(s.Presences, uid)
		if s.HumanUserID == uid {
			s.HumanUserID = ""
		}

		evt, _ := json.Marshal(map[string]any{"user_id": uid})
		_ = dispatcher.BroadcastMessage(OpPlayerLeft, evt, nil, nil, true)
	}

	if s.HumanUserID == "" {
		return nil // terminate the match
	}
	return s
}

// MatchLoop routes client messages into the turn controller and advances the
// per-second tick that drives the countdown and the AI.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	s := state.(*MatchState)

	for _, msg := range messages {
		if msg.GetUserId() != s.HumanUserID {
			logger.Warn("MatchLoop: message from non-seated user %s", msg.GetUserId())
			continue
		}

		switch msg.GetOpCode() {
		case OpStartGame:
			if s.Started {
				continue
			}
			s.Started = true
			mh.broadcastEvents(s, dispatcher, logger, s.Svc.ResetGame(false))
			mh.updateLabel(s, dispatcher, logger)

		case OpRequestNewGame:
			mh.broadcastEvents(s, dispatcher, logger, s.Svc.ResetGame(true))

		case OpPlayCards:
			mh.handlePlayCards(s, dispatcher, logger, msg)

		case OpPassTurn:
			events, err := s.Svc.PassTurn(false)
			if err != nil {
				logger.Warn("MatchLoop: pass rejected: %v", err)
				continue
			}
			mh.broadcastEvents(s, dispatcher, logger, events)

		case OpTogglePause:
			events, err := s.Svc.TogglePause()
			if err != nil {
				logger.Warn("MatchLoop: pause rejected: %v", err)
				continue
			}
			mh.broadcastEvents(s, dispatcher, logger, events)
		}
	}

	if s.Started {
		mh.broadcastEvents(s, dispatcher, logger, s.Svc.Tick())
	}
	return s
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

/* ---- message handling ---- */

func (mh *matchHandler) handlePlayCards(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	var payload struct {
		CardIDs []int32 `json:"card_ids"`
	}
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("handlePlayCards: bad payload: %v", err)
		return
	}

	// Each message carries the whole play; the selection is replaced, never
	// accumulated across messages. Rejections come back as notification
	// events and are broadcast like any other.
	events, err := s.Svc.PlayCards(payload.CardIDs)
	if err != nil {
		logger.Warn("handlePlayCards: play rejected: %v", err)
		return
	}
	mh.broadcastEvents(s, dispatcher, logger, events)
}

/* ---- event fan-out ---- */

var eventOpCodes = map[app.EventKind]int64{
	app.EventGameReset:    OpGameReset,
	app.EventHandDealt:    OpHandDealt,
	app.EventGameStarted:  OpGameStarted,
	app.EventCardPlayed:   OpCardPlayed,
	app.EventTurnPassed:   OpTurnPassed,
	app.EventGameEnded:    OpGameEnded,
	app.EventPauseToggled: OpPauseToggled,
	app.EventNotification: OpNotification,
	app.EventStateChanged: OpStateChanged,
}

func (mh *matchHandler) broadcastEvents(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		opCode, ok := eventOpCodes[ev.Kind]
		if !ok {
			logger.Warn("broadcastEvents: unmapped event kind %q", ev.Kind)
			continue
		}

		data, err := json.Marshal(ev.Payload)
		if err != nil {
			logger.Error("broadcastEvents: marshal %q: %v", ev.Kind, err)
			continue
		}

		var targets []runtime.Presence
		if len(ev.Recipients) > 0 {
			// Service recipients are seat names; the only addressable seat
			// is the human's.
			for _, r := range ev.Recipients {
				if r == domain.SeatPlayer.String() {
					if p, ok := s.Presences[s.HumanUserID]; ok {
						targets = append(targets, p)
					}
				}
			}
			if len(targets) == 0 {
				continue
			}
		}

		if err := dispatcher.BroadcastMessage(opCode, data, targets, nil, true); err != nil {
			logger.Error("broadcastEvents: broadcast %q: %v", ev.Kind, err)
		}

		if ev.Kind == app.EventGameEnded {
			mh.updateLabel(s, dispatcher, logger)
		}
	}
}

func (mh *matchHandler) updateLabel(s *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if s.Started {
		phase = "playing"
		if snap := s.Svc.Snapshot(); snap.Winner != nil {
			phase = "ended"
		}
	}

	b, err := json.Marshal(Label{Open: s.open(), Game: "tienlen", Phase: phase})
	if err != nil {
		logger.Error("updateLabel: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(b)); err != nil {
		logger.Error("updateLabel: %v", err)
	}
}
