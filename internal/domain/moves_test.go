package domain

import "testing"

func TestPlayableHandsOpenTableOrdering(t *testing.T) {
	// Hand holds both a legal single and a legal pair; the single must come
	// first in the enumeration so index 0 is the cheapest play.
	hand := []Card{card(RankFive, Spades), card(RankFive, Clubs)}

	moves := PlayableHands(hand, Combination{Type: Invalid}, true, false)
	if len(moves) != 3 {
		t.Fatalf("got %d moves, want 3 (two singles and a pair)", len(moves))
	}
	if moves[0].Type != Single || moves[0].SuitValue != Spades {
		t.Errorf("moves[0] = %v %v, want the spade single", moves[0].Type, moves[0].SuitValue)
	}
	if moves[1].Type != Single || moves[1].SuitValue != Clubs {
		t.Errorf("moves[1] = %v %v, want the club single", moves[1].Type, moves[1].SuitValue)
	}
	if moves[2].Type != Pair {
		t.Errorf("moves[2] = %v, want the pair", moves[2].Type)
	}
}

func TestPlayableHandsSortContract(t *testing.T) {
	hand := []Card{
		card(RankThree, Spades), card(RankThree, Clubs),
		card(RankFour, Diamonds), card(RankFive, Hearts),
		card(RankSix, Spades),
	}

	moves := PlayableHands(hand, Combination{Type: Invalid}, true, false)
	typePriority := func(c Combination) int32 { return int32(c.Type) }
	for i := 1; i < len(moves); i++ {
		a, b := moves[i-1], moves[i]
		switch {
		case typePriority(a) < typePriority(b):
		case typePriority(a) > typePriority(b):
			t.Fatalf("type order violated at %d: %v before %v", i, a.Type, b.Type)
		case a.Value > b.Value:
			t.Fatalf("value order violated at %d: %d before %d", i, a.Value, b.Value)
		case a.Value == b.Value && len(a.Cards) > len(b.Cards):
			t.Fatalf("length order violated at %d", i)
		}
	}

	// The cheapest move is the lowest single.
	if moves[0].Type != Single || moves[0].Value != int32(RankThree) || moves[0].SuitValue != Spades {
		t.Errorf("cheapest move = %+v, want single 3S", moves[0])
	}
}

func TestPlayableHandsAgainstTable(t *testing.T) {
	hand := []Card{
		card(RankFour, Spades), card(RankTen, Hearts),
		card(RankKing, Clubs), card(RankKing, Diamonds),
	}
	table := Identify([]Card{card(RankTen, Clubs)})

	moves := PlayableHands(hand, table, false, false)
	for _, m := range moves {
		if m.Type != Single {
			t.Errorf("non-single %v offered against a single", m.Type)
		}
		if !CanBeat(table, m) {
			t.Errorf("move %v does not beat the table", m.Cards)
		}
	}
	// 10H (suit tie-break), KC, KD can answer a 10C; 4S cannot.
	if len(moves) != 3 {
		t.Errorf("got %d moves, want 3", len(moves))
	}
}

func TestPlayableHandsChopIncluded(t *testing.T) {
	hand := []Card{
		card(RankSix, Spades), card(RankSix, Clubs), card(RankSix, Diamonds), card(RankSix, Hearts),
		card(RankNine, Spades),
	}
	table := Identify([]Card{card(RankTwo, Hearts)})

	moves := PlayableHands(hand, table, false, false)
	if len(moves) != 1 || moves[0].Type != Quad {
		t.Fatalf("expected exactly the chopping quad, got %d moves", len(moves))
	}
}

func TestPlayableHandsThreeOfSpadesConstraint(t *testing.T) {
	hand := []Card{
		card(RankThree, Spades), card(RankFour, Spades), card(RankFive, Spades),
		card(RankNine, Hearts),
	}

	moves := PlayableHands(hand, Combination{Type: Invalid}, true, true)
	if len(moves) == 0 {
		t.Fatal("expected moves containing the 3 of spades")
	}
	for _, m := range moves {
		found := false
		for _, c := range m.Cards {
			if c.IsThreeOfSpades() {
				found = true
			}
		}
		if !found {
			t.Errorf("move %v lacks the 3 of spades", m.Cards)
		}
	}

	// Without the 3 of spades in hand, the constraint filters everything.
	noSpade := []Card{card(RankNine, Hearts), card(RankTen, Hearts)}
	if got := PlayableHands(noSpade, Combination{Type: Invalid}, true, true); len(got) != 0 {
		t.Errorf("got %d moves, want 0 when the 3 of spades is absent", len(got))
	}
}

func TestPlayableHandsEmptyHand(t *testing.T) {
	if got := PlayableHands(nil, Combination{Type: Invalid}, true, false); got != nil {
		t.Errorf("empty hand produced %d moves", len(got))
	}
}
