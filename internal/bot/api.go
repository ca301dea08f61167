package bot

import "tienlen/internal/domain"

// Move represents the decision made by the AI.
type Move struct {
	Pass  bool
	Cards []domain.Card
}

// Brain is the interface all bot strategies implement.
type Brain interface {
	CalculateMove(game *domain.Game, seat domain.Seat) (Move, error)
}
