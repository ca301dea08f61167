package domain

import (
	"fmt"
	"sort"
)

// maxEnumerableCards bounds the exhaustive subset enumeration. Hands never
// exceed 13 cards in play (8191 subsets); anything larger would need a
// constructive generator instead.
const maxEnumerableCards = 16

// PlayableHands enumerates every legal combination a hand can play against
// the table. When opening is true the table is treated as open regardless of
// prev (covers both a cleared table and an opponent who just passed). When
// mustIncludeThreeOfSpades is set, only candidates containing the 3 of
// Spades survive (first turn of the game).
//
// The result is ordered cheapest first: by type priority, then rank value,
// then straight length, then suit for singles. Index 0 is the cheapest legal
// play; both the human-move validator and the AI rely on that.
func PlayableHands(hand []Card, prev Combination, opening, mustIncludeThreeOfSpades bool) []Combination {
	n := len(hand)
	if n == 0 {
		return nil
	}
	if n > maxEnumerableCards {
		panic(fmt.Sprintf("playable hands: %d cards exceeds enumeration bound %d", n, maxEnumerableCards))
	}

	if opening {
		prev = Combination{Type: Invalid}
	}

	spadesIdx := -1
	for i, c := range hand {
		if c.IsThreeOfSpades() {
			spadesIdx = i
			break
		}
	}

	var out []Combination
	for mask := 1; mask < 1<<n; mask++ {
		if mustIncludeThreeOfSpades && (spadesIdx < 0 || mask&(1<<spadesIdx) == 0) {
			continue
		}

		subset := make([]Card, 0, 13)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, hand[i])
			}
		}

		combo := Identify(subset)
		if combo.Type == Invalid || !CanBeat(prev, combo) {
			continue
		}
		out = append(out, combo)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Value != b.Value {
			return a.Value < b.Value
		}
		if len(a.Cards) != len(b.Cards) {
			return len(a.Cards) < len(b.Cards)
		}
		return a.SuitValue < b.SuitValue
	})
	return out
}
