package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck has %d cards, want %d", len(deck), DeckSize)
	}

	seenIDs := make(map[int32]bool)
	seen := make(map[[2]int32]bool)
	for _, c := range deck {
		if seenIDs[c.ID] {
			t.Errorf("duplicate card ID %d", c.ID)
		}
		seenIDs[c.ID] = true

		key := [2]int32{int32(c.Rank), int32(c.Suit)}
		if seen[key] {
			t.Errorf("duplicate card %v", c)
		}
		seen[key] = true

		if c.Value != int32(c.Rank) {
			t.Errorf("card %v has value %d, want %d", c, c.Value, int32(c.Rank))
		}
	}
}

func TestShuffleDeckDoesNotMutate(t *testing.T) {
	deck := NewDeck()
	orig := make([]Card, len(deck))
	copy(orig, deck)

	shuffled := ShuffleDeck(rand.New(rand.NewSource(1)), deck)
	if len(shuffled) != len(deck) {
		t.Fatalf("shuffled deck has %d cards, want %d", len(shuffled), len(deck))
	}
	for i := range deck {
		if deck[i] != orig[i] {
			t.Fatalf("ShuffleDeck mutated its input at %d", i)
		}
	}

	counts := make(map[int32]int)
	for _, c := range shuffled {
		counts[c.ID]++
	}
	if len(counts) != DeckSize {
		t.Errorf("shuffle lost or duplicated cards: %d unique", len(counts))
	}
}

func TestDeal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	deck := ShuffleDeck(rng, NewDeck())

	hands := Deal(deck, 2, 13)
	if len(hands) != 2 {
		t.Fatalf("dealt %d hands, want 2", len(hands))
	}

	seen := make(map[int32]bool)
	for _, hand := range hands {
		if len(hand) != 13 {
			t.Errorf("hand has %d cards, want 13", len(hand))
		}
		for i, c := range hand {
			if seen[c.ID] {
				t.Errorf("card %v dealt twice", c)
			}
			seen[c.ID] = true
			if i > 0 && Power(hand[i-1]) > Power(c) {
				t.Errorf("hand not sorted at %d: %v > %v", i, hand[i-1], c)
			}
		}
	}
}

func TestDealShortDeckPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("dealing from a short deck should panic")
		}
	}()
	Deal(NewDeck()[:10], 2, 13)
}
