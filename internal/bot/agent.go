package bot

import "tienlen/internal/domain"

// Agent represents an autonomous bot player occupying a seat.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// NewAgent builds an agent around the standard strategy.
func NewAgent(id, name string) *Agent {
	return &Agent{ID: id, Name: name, Strategy: NewGreedyBrain()}
}

// CalculateMove implements Brain by delegating to the agent's strategy, so an
// agent can be plugged straight into the turn controller.
func (a *Agent) CalculateMove(game *domain.Game, seat domain.Seat) (Move, error) {
	return a.Strategy.CalculateMove(game, seat)
}
