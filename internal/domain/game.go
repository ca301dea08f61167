package domain

// Seat identifies one of the two fixed seats in a game.
type Seat int

const (
	SeatPlayer Seat = iota
	SeatAI
)

func (s Seat) String() string {
	if s == SeatAI {
		return "ai"
	}
	return "player"
}

// Other returns the opposing seat.
func (s Seat) Other() Seat {
	if s == SeatPlayer {
		return SeatAI
	}
	return SeatPlayer
}

// TurnRecord is one entry of the turn history. Played is nil for a pass.
type TurnRecord struct {
	Seat     Seat
	Played   *Combination
	Passed   bool
	AutoPass bool
}

// Game holds the authoritative card state for a single two-seat game. All
// mutation happens through ApplyPlay and ApplyPass; validation lives with the
// caller. Timers, pause and scores are the turn controller's concern.
type Game struct {
	Hands      [2][]Card
	Table      []Card
	LastPlayed *Combination // nil while the table is open
	Current    Seat
	History    []TurnRecord
	Winner     *Seat

	// First-turn bookkeeping: FirstSeat opened the game and, when
	// RequireOpeningCard is set, had to include the 3 of Spades in their
	// first play. FirstTurn clears after the first successful play.
	FirstSeat          Seat
	FirstTurn          bool
	RequireOpeningCard bool
}

// NewGame builds a game from two dealt hands. The opener is whoever holds
// the 3 of Spades; if the 3 of Spades was left undealt, the holder of the
// lowest card opens and the opening-card requirement is waived.
func NewGame(playerHand, aiHand []Card) *Game {
	g := &Game{
		Hands:     [2][]Card{playerHand, aiHand},
		FirstTurn: true,
	}

	switch {
	case containsThreeOfSpades(playerHand):
		g.FirstSeat = SeatPlayer
		g.RequireOpeningCard = true
	case containsThreeOfSpades(aiHand):
		g.FirstSeat = SeatAI
		g.RequireOpeningCard = true
	default:
		g.FirstSeat = lowestCardSeat(playerHand, aiHand)
	}
	g.Current = g.FirstSeat
	return g
}

// HandOf returns the cards held at the given seat.
func (g *Game) HandOf(seat Seat) []Card {
	return g.Hands[seat]
}

// InstantWinner returns the seat dealt all four 2s, if any. Checked once at
// deal time; such a deal ends the game before any turn is played.
func (g *Game) InstantWinner() *Seat {
	for seat := SeatPlayer; seat <= SeatAI; seat++ {
		twos := 0
		for _, c := range g.Hands[seat] {
			if c.Rank == RankTwo {
				twos++
			}
		}
		if twos == 4 {
			s := seat
			return &s
		}
	}
	return nil
}

// OpeningFor reports whether the seat is opening a round: the table has been
// cleared, or the opponent's last recorded turn was a pass.
func (g *Game) OpeningFor(seat Seat) bool {
	if g.LastPlayed == nil {
		return true
	}
	if len(g.History) == 0 {
		return true
	}
	last := g.History[len(g.History)-1]
	return last.Passed && last.Seat == seat.Other()
}

// MustIncludeOpeningCard reports whether the seat's next play has to contain
// the 3 of Spades.
func (g *Game) MustIncludeOpeningCard(seat Seat) bool {
	return g.FirstTurn && g.RequireOpeningCard && seat == g.FirstSeat
}

// ApplyPlay removes the combination's cards from the seat's hand, puts them
// on the table, logs the turn and flips the current seat. If the hand is
// emptied the seat becomes the winner. The caller has already validated the
// play.
func (g *Game) ApplyPlay(seat Seat, combo Combination) {
	g.Hands[seat] = RemoveCards(g.Hands[seat], combo.Cards)
	g.Table = combo.Cards
	played := combo
	g.LastPlayed = &played
	g.History = append(g.History, TurnRecord{Seat: seat, Played: &played})
	g.FirstTurn = false
	g.Current = seat.Other()

	if len(g.Hands[seat]) == 0 {
		winner := seat
		g.Winner = &winner
	}
}

// ApplyPass logs a pass for the seat and flips the current seat. The table
// stays as-is; OpeningFor derives the reopened table from the history.
func (g *Game) ApplyPass(seat Seat, auto bool) {
	g.History = append(g.History, TurnRecord{Seat: seat, Passed: true, AutoPass: auto})
	g.Current = seat.Other()
}

// RemoveCards returns hand minus the given cards, matched by ID.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}

	removeIDs := make(map[int32]bool, len(toRemove))
	for _, c := range toRemove {
		removeIDs[c.ID] = true
	}

	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if removeIDs[c.ID] {
			continue
		}
		updated = append(updated, c)
	}
	return updated
}

func containsThreeOfSpades(cards []Card) bool {
	for _, c := range cards {
		if c.IsThreeOfSpades() {
			return true
		}
	}
	return false
}

func lowestCardSeat(playerHand, aiHand []Card) Seat {
	if len(playerHand) == 0 || len(aiHand) == 0 {
		return SeatPlayer
	}
	if Power(playerHand[0]) <= Power(aiHand[0]) {
		return SeatPlayer
	}
	return SeatAI
}
