package game

import "github.com/footyguess/gameserver/models"

// Win reasons carried by GameOver.
const (
	ReasonGuess        = "guess"
	ReasonElimination  = "elimination"
	ReasonOutOfGuesses = "out_of_guesses"
	ReasonForfeit      = "forfeit"
)

// Event is the tagged union of outbound notifications produced by the
// engine. Callers broadcast them after persisting the returned room.
type Event interface {
	eventKind() string
}

// RoomUpdated carries the full post-action room snapshot.
type RoomUpdated struct {
	Room *models.Room
}

// TurnChanged announces the player who acts next.
type TurnChanged struct {
	PlayerID string
}

// CardsEliminated lists the candidates newly ruled out for a player.
type CardsEliminated struct {
	PlayerID      string
	EliminatedIDs []string
}

// GameOver announces the winner and how the game ended.
type GameOver struct {
	WinnerID string
	Reason   string
}

// RematchStarted carries the fresh room replacing a finished one.
type RematchStarted struct {
	Room *models.Room
}

func (RoomUpdated) eventKind() string     { return "room_updated" }
func (TurnChanged) eventKind() string     { return "turn_changed" }
func (CardsEliminated) eventKind() string { return "cards_eliminated" }
func (GameOver) eventKind() string        { return "game_over" }
func (RematchStarted) eventKind() string  { return "rematch_started" }
