package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// DeckSize is the number of cards in a full Tien Len deck.
const DeckSize = 52

// NewDeck returns a sorted 52-card deck with unique IDs and precomputed values.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	id := int32(0)
	for r := RankThree; r <= RankTwo; r++ {
		for s := Spades; s <= Hearts; s++ {
			deck = append(deck, Card{ID: id, Rank: r, Suit: s, Value: int32(r)})
			id++
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal pops cards from the end of the deck round-robin and returns one sorted
// hand per player. The caller guarantees the deck is large enough; a short
// deck is a programming error and panics.
func Deal(deck []Card, numPlayers, cardsPerPlayer int) [][]Card {
	if numPlayers*cardsPerPlayer > len(deck) {
		panic(fmt.Sprintf("deal: deck has %d cards, need %d", len(deck), numPlayers*cardsPerPlayer))
	}

	hands := make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, cardsPerPlayer)
	}

	top := len(deck)
	for round := 0; round < cardsPerPlayer; round++ {
		for p := 0; p < numPlayers; p++ {
			top--
			hands[p] = append(hands[p], deck[top])
		}
	}

	for _, hand := range hands {
		SortHand(hand)
	}
	return hands
}

// SortHand orders a hand in place by ascending power.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return Power(cards[i]) < Power(cards[j])
	})
}
