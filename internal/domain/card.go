package domain

import "fmt"

// Card is a single playing card in the Big Two deck.
type Card struct {
	Rank int32 `json:"rank"` // 0..12 (3=0, A=11, 2=12)
	Suit int32 `json:"suit"` // 0..3 (D=0, C=1, H=2, S=3)
}

// Suit order, weakest to strongest.
const (
	SuitDiamonds int32 = 0
	SuitClubs    int32 = 1
	SuitHearts   int32 = 2
	SuitSpades   int32 = 3
)

const (
	// RankThree is the lowest rank in the game order.
	RankThree int32 = 0
	// RankTwo is the highest rank in the game order.
	RankTwo int32 = 12
)

// ThreeOfDiamonds is the card that must appear in the opening play of match 1
// and is the lowest card in the deck.
var ThreeOfDiamonds = Card{Rank: RankThree, Suit: SuitDiamonds}

// CardPower returns the absolute strength of a card for comparison.
// Rank dominates; suit breaks ties.
func CardPower(c Card) int32 {
	return c.Rank*4 + c.Suit
}

var rankNames = []string{"3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A", "2"}
var suitNames = []string{"D", "C", "H", "S"}

// String renders the card as e.g. "3D" or "2S".
func (c Card) String() string {
	if c.Rank < 0 || c.Rank > 12 || c.Suit < 0 || c.Suit > 3 {
		return fmt.Sprintf("?(%d,%d)", c.Rank, c.Suit)
	}
	return rankNames[c.Rank] + suitNames[c.Suit]
}
