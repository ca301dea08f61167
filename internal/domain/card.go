package domain

import "fmt"

// Suit identifies one of the four suits in ascending Tien Len order.
type Suit int32

const (
	Spades Suit = iota
	Clubs
	Diamonds
	Hearts
)

// Rank encodes card ranks in game order: 0 is Three, 11 is Ace, 12 is Two.
// Two is the highest rank but is barred from straights and consecutive pairs.
type Rank int32

const (
	RankThree Rank = iota
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
	RankTwo
)

// Card is a single playing card. Value is the precomputed rank strength used
// for all comparisons; it is fixed at deck construction and never recomputed.
type Card struct {
	ID    int32
	Rank  Rank
	Suit  Suit
	Value int32
}

var rankNames = [13]string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
var suitNames = [4]string{"S", "C", "D", "H"}

func (r Rank) String() string {
	if r < 0 || int(r) >= len(rankNames) {
		return fmt.Sprintf("Rank(%d)", int32(r))
	}
	return rankNames[r]
}

func (s Suit) String() string {
	if s < 0 || int(s) >= len(suitNames) {
		return fmt.Sprintf("Suit(%d)", int32(s))
	}
	return suitNames[s]
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Power is the total order over cards: rank strength first, suit breaks ties.
func Power(c Card) int32 {
	return c.Value*4 + int32(c.Suit)
}

// IsThreeOfSpades reports whether the card is the mandatory opening card.
func (c Card) IsThreeOfSpades() bool {
	return c.Rank == RankThree && c.Suit == Spades
}
