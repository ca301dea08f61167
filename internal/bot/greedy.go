package bot

import "tienlen/internal/domain"

// GreedyBrain plays the documented heuristic: if a lone 2 is on the table and
// a chop is available, chop it; otherwise play the cheapest legal move; pass
// only when nothing can be played. No lookahead.
type GreedyBrain struct{}

// NewGreedyBrain returns the standard opponent strategy.
func NewGreedyBrain() *GreedyBrain {
	return &GreedyBrain{}
}

func (b *GreedyBrain) CalculateMove(game *domain.Game, seat domain.Seat) (Move, error) {
	hand := game.HandOf(seat)
	if len(hand) == 0 {
		return Move{Pass: true}, nil
	}

	prev := domain.Combination{Type: domain.Invalid}
	if game.LastPlayed != nil {
		prev = *game.LastPlayed
	}

	opening := game.OpeningFor(seat)
	moves := domain.PlayableHands(hand, prev, opening, game.MustIncludeOpeningCard(seat))
	if len(moves) == 0 {
		return Move{Pass: true}, nil
	}

	if !opening && loneTwoOnTable(prev) {
		for _, m := range moves {
			if m.Type == domain.Quad || m.Type == domain.ThreePairStraight {
				return Move{Cards: m.Cards}, nil
			}
		}
	}

	return Move{Cards: moves[0].Cards}, nil
}

func loneTwoOnTable(prev domain.Combination) bool {
	return prev.Type == domain.Single && prev.Cards[0].Rank == domain.RankTwo
}
