package game

// Action is the tagged union of every inbound move the engine accepts.
// Each variant carries only the fields relevant to its kind.
type Action interface {
	ActorID() string
	Kind() string
}

// Join attaches a second participant to a WAITING room.
type Join struct {
	PlayerID    string
	DisplayName string
	IsHuman     bool
}

// SelectSecret commits a player's hidden pick during SELECTING.
type SelectSecret struct {
	PlayerID string
	EntityID string
}

// AskQuestion opens a question from the turn holder; the room then waits
// for the opponent's AnswerQuestion.
type AskQuestion struct {
	PlayerID   string
	QuestionID string
}

// AnswerQuestion resolves the pending question with a yes/no from the
// non-turn player.
type AnswerQuestion struct {
	PlayerID string
	Answer   bool
}

// MakeGuess names the opponent's secret outright.
type MakeGuess struct {
	PlayerID string
	EntityID string
}

// RequestRematch records a player's wish to replay a FINISHED room.
type RequestRematch struct {
	PlayerID     string
	WantsRematch bool
}

// Forfeit concedes the game, used for turn timeouts and abandoned
// connections.
type Forfeit struct {
	PlayerID string
	Reason   string
}

func (a Join) ActorID() string           { return a.PlayerID }
func (a SelectSecret) ActorID() string   { return a.PlayerID }
func (a AskQuestion) ActorID() string    { return a.PlayerID }
func (a AnswerQuestion) ActorID() string { return a.PlayerID }
func (a MakeGuess) ActorID() string      { return a.PlayerID }
func (a RequestRematch) ActorID() string { return a.PlayerID }
func (a Forfeit) ActorID() string        { return a.PlayerID }

func (Join) Kind() string           { return "join" }
func (SelectSecret) Kind() string   { return "select_secret" }
func (AskQuestion) Kind() string    { return "ask_question" }
func (AnswerQuestion) Kind() string { return "answer_question" }
func (MakeGuess) Kind() string      { return "make_guess" }
func (RequestRematch) Kind() string { return "request_rematch" }
func (Forfeit) Kind() string        { return "forfeit" }
