package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome is the classification of a game: still running, won by a symbol, or drawn.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWonByX     Outcome = "won_x"
	OutcomeWonByO     Outcome = "won_o"
	OutcomeDraw       Outcome = "draw"
)

// WonBy - returns the outcome for a game won by symbol.
func WonBy(symbol Symbol) Outcome {
	if symbol == SymbolO {
		return OutcomeWonByO
	}
	return OutcomeWonByX
}

func (that Outcome) IsConcluded() bool {
	return that != OutcomeInProgress
}

// Winner - returns the winning symbol, or None for a draw or a running game.
func (that Outcome) Winner() Symbol {
	switch that {
	case OutcomeWonByX:
		return SymbolX
	case OutcomeWonByO:
		return SymbolO
	default:
		return None
	}
}

// Label - is the wire form of the outcome: "X", "O", "Draw" or empty while in progress.
func (that Outcome) Label() string {
	switch that {
	case OutcomeWonByX, OutcomeWonByO:
		return string(that.Winner())
	case OutcomeDraw:
		return "Draw"
	default:
		return ""
	}
}

func ParseOutcome(value string) (Outcome, error) {
	switch outcome := Outcome(value); outcome {
	case OutcomeInProgress, OutcomeWonByX, OutcomeWonByO, OutcomeDraw:
		return outcome, nil
	default:
		return "", fmt.Errorf("unknown game outcome: %q", value)
	}
}

type Game struct {
	ID         string     `json:"id"`
	PlayerX    string     `json:"player_x_id"`
	PlayerO    string     `json:"player_o_id,omitempty"`
	Board      Board      `json:"board"`
	NextTurn   Symbol     `json:"next_turn"`
	Outcome    Outcome    `json:"outcome"`
	MoveCount  int        `json:"move_count"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// gameFields is Game without its JSON methods.
type gameFields Game

// MarshalJSON - encodes next_turn as null once the game is over and adds the winner label ("X", "O", "Draw" or null).
func (that Game) MarshalJSON() ([]byte, error) {
	var winner *string
	if label := that.Outcome.Label(); label != "" {
		winner = &label
	}

	return json.Marshal(struct {
		gameFields
		NextTurn *Symbol `json:"next_turn"`
		Winner   *string `json:"winner"`
	}{
		gameFields: gameFields(that),
		NextTurn:   optionalSymbol(that.NextTurn),
		Winner:     winner,
	})
}

// UnmarshalJSON - accepts null and "" as no turn. The winner label is derived and ignored on input.
func (that *Game) UnmarshalJSON(data []byte) error {
	wire := struct {
		*gameFields
		NextTurn *Symbol `json:"next_turn"`
	}{
		gameFields: (*gameFields)(that),
	}

	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	that.NextTurn = None
	if wire.NextTurn != nil {
		that.NextTurn = *wire.NextTurn
	}

	return nil
}

func optionalSymbol(symbol Symbol) *Symbol {
	if symbol == None {
		return nil
	}
	return &symbol
}

// NewGame - creates a game in its initial state: empty board, X to move.
func NewGame(id, playerX, playerO string, createdAt time.Time) *Game {
	return &Game{
		ID:        id,
		PlayerX:   playerX,
		PlayerO:   playerO,
		Board:     NewBoard(),
		NextTurn:  SymbolX,
		Outcome:   OutcomeInProgress,
		CreatedAt: createdAt,
	}
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsConcluded()
}

func (that *Game) HasOpenSeat() bool {
	return that.PlayerO == ""
}

// SymbolOf - returns the symbol assigned to playerID, or None if the player does not sit at this game.
func (that *Game) SymbolOf(playerID string) Symbol {
	switch {
	case playerID == "":
		return None
	case playerID == that.PlayerX:
		return SymbolX
	case playerID == that.PlayerO:
		return SymbolO
	default:
		return None
	}
}

// Clone - returns a deep copy so callers never alias a stored snapshot.
func (that *Game) Clone() *Game {
	clone := *that
	if that.FinishedAt != nil {
		finishedAt := *that.FinishedAt
		clone.FinishedAt = &finishedAt
	}
	return &clone
}

// GameUpdate is one compare-and-set write of a game's mutable state. The write applies only while the
// stored game still has ExpectedTurn to move, is in progress and has ExpectedMoveCount moves.
type GameUpdate struct {
	GameID            string
	ExpectedTurn      Symbol
	ExpectedMoveCount int

	Board      Board
	NextTurn   Symbol
	Outcome    Outcome
	FinishedAt *time.Time
}

// Apply - returns the game as it looks once the update is committed.
func (that GameUpdate) Apply(game *Game) *Game {
	updated := game.Clone()
	updated.Board = that.Board
	updated.NextTurn = that.NextTurn
	updated.Outcome = that.Outcome
	updated.MoveCount = that.ExpectedMoveCount + 1
	if that.FinishedAt != nil {
		finishedAt := *that.FinishedAt
		updated.FinishedAt = &finishedAt
	}
	return updated
}
