package domain

import "math/rand"

// NumSeats is the fixed number of player slots in a room.
const NumSeats = 4

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseFirstPlay is match 1's opening trick; the play must include the 3 of diamonds.
	PhaseFirstPlay Phase = "first_play"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseFinished is the state after one match's winner emptied their hand.
	PhaseFinished Phase = "finished"
	// PhaseGameOver is the terminal state once a cumulative total crosses the threshold.
	PhaseGameOver Phase = "game_over"
)

// Game holds the authoritative state for one table across matches.
type Game struct {
	Phase Phase

	Hands [4][]Card
	Pile  []Card // cards played this match

	CurrentTurn       int
	LastPlay          *Combo
	LastPlaySeat      int // seat holding the standing lead
	ConsecutivePasses int

	MatchNumber    int
	MatchWinner    int // seat that emptied their hand this match; -1 while playing
	FinalWinner    int // seat with the lowest total once the game is over; -1 before
	LastMatchScore MatchScore
	Totals         GameTotals

	GameOverThreshold int

	rng *rand.Rand
}

// NewGame deals match 1. The seat holding the 3 of diamonds leads the opening
// trick and must include it in the first play.
func NewGame(rng *rand.Rand, threshold int) *Game {
	if threshold <= 0 {
		threshold = DefaultGameOverThreshold
	}
	g := &Game{
		Phase:             PhaseFirstPlay,
		MatchNumber:       1,
		MatchWinner:       -1,
		FinalWinner:       -1,
		GameOverThreshold: threshold,
		rng:               rng,
	}
	g.deal()
	g.CurrentTurn = g.seatHolding(ThreeOfDiamonds)
	g.LastPlaySeat = g.CurrentTurn
	return g
}

func (g *Game) deal() {
	deck := ShuffleDeck(NewDeck(), g.rng)
	g.Hands = Deal(deck)
	g.Pile = nil
	g.LastPlay = nil
	g.ConsecutivePasses = 0
}

func (g *Game) seatHolding(card Card) int {
	for seat := 0; seat < NumSeats; seat++ {
		if ContainsCard(g.Hands[seat], card) {
			return seat
		}
	}
	return 0
}

// ApplyPlay validates and commits a play transition. When the play empties the
// acting hand the match score is computed and the game moves to PhaseFinished;
// AdvanceMatch then decides between a new deal and game over.
func (g *Game) ApplyPlay(seat int, cards []Card) error {
	combo, err := g.ValidatePlay(seat, cards)
	if err != nil {
		return err
	}

	g.Hands[seat] = RemoveCards(g.Hands[seat], cards)
	g.Pile = append(g.Pile, combo.Cards...)
	g.LastPlay = &combo
	g.LastPlaySeat = seat
	g.ConsecutivePasses = 0
	if g.Phase == PhaseFirstPlay {
		g.Phase = PhasePlaying
	}
	g.CurrentTurn = (seat + 1) % NumSeats

	if len(g.Hands[seat]) == 0 {
		g.finishMatch(seat)
	}
	return nil
}

// ApplyPass validates and commits a pass transition. The third consecutive
// pass clears the trick: the lead is dropped and the turn returns to the seat
// that made the standing play, which for an auto-pass cascade is the exempt seat.
func (g *Game) ApplyPass(seat int) error {
	if err := g.ValidatePass(seat); err != nil {
		return err
	}

	g.ConsecutivePasses++
	g.CurrentTurn = (seat + 1) % NumSeats

	if g.ConsecutivePasses >= NumSeats-1 {
		g.LastPlay = nil
		g.ConsecutivePasses = 0
		g.CurrentTurn = g.LastPlaySeat
	}
	return nil
}

func (g *Game) finishMatch(winner int) {
	g.Phase = PhaseFinished
	g.MatchWinner = winner

	var sizes [4]int
	for seat := 0; seat < NumSeats; seat++ {
		sizes[seat] = len(g.Hands[seat])
	}
	g.LastMatchScore = ComputeMatchScore(sizes)
	g.Totals.Add(g.LastMatchScore)
}

// AdvanceMatch moves a finished game forward: either a fresh deal with the
// previous winner leading (no required-card constraint after match 1), or the
// terminal game-over state when a total has crossed the threshold.
func (g *Game) AdvanceMatch() {
	if g.Phase != PhaseFinished {
		return
	}
	if IsGameOver(g.Totals, g.GameOverThreshold) {
		g.Phase = PhaseGameOver
		g.FinalWinner = FindFinalWinner(g.Totals)
		return
	}

	winner := g.MatchWinner
	g.MatchNumber++
	g.MatchWinner = -1
	g.deal()
	g.Phase = PhasePlaying
	g.CurrentTurn = winner
	g.LastPlaySeat = winner
}

// TurnState is a read-only snapshot of the turn machine exposed to observers.
type TurnState struct {
	Phase             Phase      `json:"phase"`
	CurrentTurn       int        `json:"current_turn"`
	LastPlay          *Combo     `json:"last_play,omitempty"`
	LastPlaySeat      int        `json:"last_play_seat"`
	ConsecutivePasses int        `json:"consecutive_passes"`
	MatchNumber       int        `json:"match_number"`
	MatchWinner       int        `json:"match_winner"`
	FinalWinner       int        `json:"final_winner"`
	HandSizes         [4]int     `json:"hand_sizes"`
	LastMatchScore    MatchScore `json:"last_match_score"`
	Totals            GameTotals `json:"totals"`
}

// Snapshot copies the observable turn state. The returned value shares no
// mutable memory with the game.
func (g *Game) Snapshot() TurnState {
	s := TurnState{
		Phase:             g.Phase,
		CurrentTurn:       g.CurrentTurn,
		LastPlaySeat:      g.LastPlaySeat,
		ConsecutivePasses: g.ConsecutivePasses,
		MatchNumber:       g.MatchNumber,
		MatchWinner:       g.MatchWinner,
		FinalWinner:       g.FinalWinner,
		LastMatchScore:    g.LastMatchScore,
		Totals:            g.Totals,
	}
	if g.LastPlay != nil {
		combo := Combo{
			Type:  g.LastPlay.Type,
			Cards: append([]Card{}, g.LastPlay.Cards...),
			Value: g.LastPlay.Value,
		}
		s.LastPlay = &combo
	}
	for seat := 0; seat < NumSeats; seat++ {
		s.HandSizes[seat] = len(g.Hands[seat])
	}
	return s
}
