package domain

// ComboType represents the type of card combination. The ordinal order is the
// enumerator's type priority (cheapest first), so it is part of the contract.
type ComboType int32

const (
	Invalid ComboType = iota
	Single
	Pair
	Triple
	Straight // sequence of 3 or more cards, never containing a 2
	ThreePairStraight
	Quad
)

var comboTypeNames = map[ComboType]string{
	Invalid:           "invalid",
	Single:            "single",
	Pair:              "pair",
	Triple:            "triple",
	Straight:          "straight",
	ThreePairStraight: "three_pair_straight",
	Quad:              "quad",
}

func (t ComboType) String() string {
	if name, ok := comboTypeNames[t]; ok {
		return name
	}
	return "invalid"
}

// Combination is a classified set of cards. It is a derived value: produced
// by Identify, compared, and discarded. Value is the rank strength used for
// comparison; SuitValue breaks ties for singles; Length is set for straights.
type Combination struct {
	Type      ComboType
	Cards     []Card // sorted ascending by power
	Value     int32
	SuitValue Suit
	Length    int
}

// Identify classifies a set of cards as the Tien Len combination they form,
// or Invalid. It is pure: the input is copied and sorted, never mutated, and
// no error is ever raised.
func Identify(cards []Card) Combination {
	n := len(cards)
	if n == 0 {
		return Combination{Type: Invalid}
	}

	sorted := make([]Card, n)
	copy(sorted, cards)
	SortHand(sorted)

	if n == 1 {
		c := sorted[0]
		return Combination{Type: Single, Cards: sorted, Value: c.Value, SuitValue: c.Suit}
	}

	if allSameRank(sorted) {
		val := sorted[n-1].Value
		switch n {
		case 2:
			return Combination{Type: Pair, Cards: sorted, Value: val}
		case 3:
			return Combination{Type: Triple, Cards: sorted, Value: val}
		case 4:
			return Combination{Type: Quad, Cards: sorted, Value: val}
		}
		return Combination{Type: Invalid}
	}

	if n == 6 && isThreeConsecutivePairs(sorted) {
		return Combination{Type: ThreePairStraight, Cards: sorted, Value: sorted[n-1].Value}
	}

	if n >= 3 && isStraight(sorted) {
		return Combination{Type: Straight, Cards: sorted, Value: sorted[n-1].Value, Length: n}
	}

	return Combination{Type: Invalid}
}

// CanBeat reports whether next may legally be played over prev. A prev of
// type Invalid means the table is open and any valid combination may lead.
func CanBeat(prev, next Combination) bool {
	if next.Type == Invalid {
		return false
	}
	if prev.Type == Invalid {
		return true
	}

	// Chopping a lone 2: a quad or three-pair straight beats a single 2
	// outright. These are the only cross-type plays in the game.
	if prev.Type == Single && prev.Cards[0].Rank == RankTwo {
		if next.Type == Quad || next.Type == ThreePairStraight {
			return true
		}
	}

	if next.Type != prev.Type {
		return false
	}

	switch next.Type {
	case Single:
		if next.Value != prev.Value {
			return next.Value > prev.Value
		}
		return next.SuitValue > prev.SuitValue
	case Straight:
		return next.Length == prev.Length && next.Value > prev.Value
	default: // Pair, Triple, ThreePairStraight, Quad
		return next.Value > prev.Value
	}
}

func allSameRank(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}
	return true
}

// isStraight expects sorted input: every adjacent pair of cards must be
// exactly one rank apart, and 2s are never part of a straight.
func isStraight(cards []Card) bool {
	for i, c := range cards {
		if c.Rank == RankTwo {
			return false
		}
		if i > 0 && c.Value != cards[i-1].Value+1 {
			return false
		}
	}
	return true
}

// isThreeConsecutivePairs expects sorted input of exactly six cards: three
// same-rank pairs with consecutive pair ranks, no 2s.
func isThreeConsecutivePairs(cards []Card) bool {
	for _, c := range cards {
		if c.Rank == RankTwo {
			return false
		}
	}
	for i := 0; i < 6; i += 2 {
		if cards[i].Rank != cards[i+1].Rank {
			return false
		}
	}
	return cards[2].Value == cards[0].Value+1 && cards[4].Value == cards[2].Value+1
}
