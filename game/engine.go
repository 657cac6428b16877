package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/footyguess/gameserver/models"
)

// FootballerSource is the read-only candidate catalog the engine
// consults for elimination filtering.
type FootballerSource interface {
	GetByIDs(ids []string) ([]models.Footballer, error)
	GetRandom(n int) ([]models.Footballer, error)
}

// QuestionSource is the read-only question catalog.
type QuestionSource interface {
	GetByID(id string) (models.Question, error)
	GetAll() ([]models.Question, error)
}

// Engine is the sole authority for legal room transitions. Apply never
// performs I/O beyond catalog reads and never mutates its input: it
// clones the room, validates, mutates the clone and returns it together
// with the events to broadcast. On error the original room is untouched.
type Engine struct {
	footballers FootballerSource
	questions   QuestionSource
	rng         *rand.Rand
}

func NewEngine(footballers FootballerSource, questions QuestionSource) *Engine {
	return &Engine{
		footballers: footballers,
		questions:   questions,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Apply validates the action against the room snapshot and produces the
// next state. The returned room is a fresh copy; the caller persists it
// and dispatches the events.
func (e *Engine) Apply(room *models.Room, act Action) (*models.Room, []Event, error) {
	if room == nil {
		return nil, nil, errf(CodeNotFound, "room does not exist")
	}

	next := room.Clone()

	var (
		events []Event
		err    error
	)
	switch a := act.(type) {
	case Join:
		events, err = e.applyJoin(next, a)
	case SelectSecret:
		events, err = e.applySelectSecret(next, a)
	case AskQuestion:
		events, err = e.applyAskQuestion(next, a)
	case AnswerQuestion:
		events, err = e.applyAnswerQuestion(next, a)
	case MakeGuess:
		events, err = e.applyMakeGuess(next, a)
	case RequestRematch:
		events, err = e.applyRequestRematch(next, a)
	case Forfeit:
		events, err = e.applyForfeit(next, a)
	default:
		return nil, nil, errf(CodeInvalidAction, "unsupported action")
	}
	if err != nil {
		return nil, nil, err
	}

	next.UpdatedAt = time.Now()
	events = append(events, RoomUpdated{Room: next})
	return next, events, nil
}

func (e *Engine) applyJoin(room *models.Room, a Join) ([]Event, error) {
	if room.State != models.StateWaiting {
		return nil, errf(CodeInvalidAction, "room %s is not accepting joins", room.ID)
	}
	if len(room.Players) >= 2 {
		return nil, errf(CodeInvalidAction, "room %s is full", room.ID)
	}
	if room.Player(a.PlayerID) != nil {
		return nil, errf(CodeInvalidAction, "player %s already joined", a.PlayerID)
	}

	p := models.NewPlayerSession(a.PlayerID, a.DisplayName, a.IsHuman, room.Settings.MaxGuesses)
	room.Players = append(room.Players, p)

	var events []Event
	if len(room.Players) == 2 {
		room.State = models.StateSelecting
		events = e.autoSelectAISecrets(room)
	}
	return events, nil
}

// autoSelectAISecrets commits a random secret for any AI participant the
// moment the room enters SELECTING, so single-player rooms never wait on
// the machine side. Duplicate picks against an already chosen human
// secret are re-rolled.
func (e *Engine) autoSelectAISecrets(room *models.Room) []Event {
	var events []Event
	for _, p := range room.Players {
		if p.IsHuman || p.SecretEntityID != "" || len(room.CandidatePool) == 0 {
			continue
		}
		opp := room.Opponent(p.ID)
		for {
			pick := room.CandidatePool[e.rng.Intn(len(room.CandidatePool))]
			if opp == nil || opp.SecretEntityID != pick || len(room.CandidatePool) == 1 {
				p.SecretEntityID = pick
				break
			}
		}
		p.UpdatedAt = time.Now()
	}
	events = append(events, e.maybeStart(room)...)
	return events
}

// maybeStart flips SELECTING to IN_PROGRESS once every player has a
// secret. The room creator always takes the first turn.
func (e *Engine) maybeStart(room *models.Room) []Event {
	if room.State != models.StateSelecting || len(room.Players) != 2 {
		return nil
	}
	for _, p := range room.Players {
		if p.SecretEntityID == "" {
			return nil
		}
	}
	room.State = models.StateInProgress
	room.CurrentTurnPlayerID = room.Players[0].ID
	return []Event{TurnChanged{PlayerID: room.CurrentTurnPlayerID}}
}

func (e *Engine) applySelectSecret(room *models.Room, a SelectSecret) ([]Event, error) {
	if room.State != models.StateSelecting {
		return nil, errf(CodeInvalidAction, "room %s is not selecting", room.ID)
	}
	p := room.Player(a.PlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}
	if p.SecretEntityID != "" {
		return nil, errf(CodeInvalidAction, "player %s already selected a secret", a.PlayerID)
	}
	if !room.InPool(a.EntityID) {
		return nil, errf(CodeInvalidReference, "entity %s not in room pool", a.EntityID)
	}
	if opp := room.Opponent(a.PlayerID); opp != nil && opp.SecretEntityID == a.EntityID {
		return nil, errf(CodeDuplicateSecret, "entity %s already taken", a.EntityID)
	}

	p.SecretEntityID = a.EntityID
	p.UpdatedAt = time.Now()
	return e.maybeStart(room), nil
}

func (e *Engine) applyAskQuestion(room *models.Room, a AskQuestion) ([]Event, error) {
	if room.State != models.StateInProgress {
		return nil, errf(CodeInvalidAction, "room %s is not in progress", room.ID)
	}
	if room.CurrentTurnPlayerID != a.PlayerID {
		return nil, errf(CodeNotYourTurn, "it is not player %s's turn", a.PlayerID)
	}
	if room.PendingQuestionID != "" {
		return nil, errf(CodeInvalidAction, "a question is already awaiting an answer")
	}
	p := room.Player(a.PlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}
	if p.AskedQuestionIDs[a.QuestionID] {
		return nil, errf(CodeInvalidAction, "question %s already asked", a.QuestionID)
	}
	if _, err := e.questions.GetByID(a.QuestionID); err != nil {
		return nil, errf(CodeNotFound, "question %s unknown", a.QuestionID)
	}

	p.AskedQuestionIDs[a.QuestionID] = true
	p.UpdatedAt = time.Now()
	room.PendingQuestionID = a.QuestionID
	room.TurnHistory = append(room.TurnHistory, models.TurnRecord{
		PlayerID:   a.PlayerID,
		QuestionID: a.QuestionID,
		Timestamp:  time.Now(),
	})
	return nil, nil
}

func (e *Engine) applyAnswerQuestion(room *models.Room, a AnswerQuestion) ([]Event, error) {
	if room.State != models.StateInProgress {
		return nil, errf(CodeInvalidAction, "room %s is not in progress", room.ID)
	}
	if room.PendingQuestionID == "" {
		return nil, errf(CodeInvalidAction, "no question awaiting an answer")
	}
	if room.CurrentTurnPlayerID == a.PlayerID {
		return nil, errf(CodeNotYourTurn, "the asking player cannot answer")
	}
	answerer := room.Player(a.PlayerID)
	if answerer == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}

	question, err := e.questions.GetByID(room.PendingQuestionID)
	if err != nil {
		return nil, errf(CodeNotFound, "question %s unknown", room.PendingQuestionID)
	}

	asker := room.Opponent(a.PlayerID)
	answer := a.Answer

	// Close out the ask record with the answer given.
	for i := len(room.TurnHistory) - 1; i >= 0; i-- {
		if room.TurnHistory[i].QuestionID == room.PendingQuestionID {
			room.TurnHistory[i].Answer = &answer
			break
		}
	}
	room.PendingQuestionID = ""

	// Candidates whose evaluation disagrees with the answer drop out of
	// the asker's board.
	eliminated, err := e.eliminate(room, asker, question, answer)
	if err != nil {
		return nil, err
	}

	events := []Event{}
	if len(eliminated) > 0 {
		events = append(events, CardsEliminated{PlayerID: asker.ID, EliminatedIDs: eliminated})
	}

	// Auto-win by elimination: board narrowed to exactly the opponent's
	// real secret.
	if room.Settings.AutoWinByElimination {
		remaining := room.RemainingCandidates(asker.ID)
		if len(remaining) == 1 && remaining[0] == answerer.SecretEntityID {
			e.finish(room, asker.ID)
			events = append(events, GameOver{WinnerID: asker.ID, Reason: ReasonElimination})
			return events, nil
		}
	}

	// Turn alternates after every question cycle.
	room.CurrentTurnPlayerID = a.PlayerID
	answerer.LastActive = time.Now()
	events = append(events, TurnChanged{PlayerID: a.PlayerID})
	return events, nil
}

// eliminate grows the asker's eliminated set with every not-yet-ruled-out
// candidate whose evaluation disagrees with the answer. Returns the IDs
// newly eliminated by this call.
func (e *Engine) eliminate(room *models.Room, asker *models.PlayerSession, q models.Question, answer bool) ([]string, error) {
	candidates, err := e.footballers.GetByIDs(room.CandidatePool)
	if err != nil {
		return nil, errf(CodeNotFound, "candidate pool lookup failed: %v", err)
	}

	var newlyOut []string
	for _, f := range candidates {
		if asker.EliminatedIDs[f.ID] {
			continue
		}
		if Evaluate(q, f) != answer {
			asker.EliminatedIDs[f.ID] = true
			newlyOut = append(newlyOut, f.ID)
		}
	}
	if len(newlyOut) > 0 {
		asker.UpdatedAt = time.Now()
	}
	return newlyOut, nil
}

func (e *Engine) applyMakeGuess(room *models.Room, a MakeGuess) ([]Event, error) {
	if room.State != models.StateInProgress {
		return nil, errf(CodeInvalidAction, "room %s is not in progress", room.ID)
	}
	if room.CurrentTurnPlayerID != a.PlayerID {
		return nil, errf(CodeNotYourTurn, "it is not player %s's turn", a.PlayerID)
	}
	if room.PendingQuestionID != "" {
		return nil, errf(CodeInvalidAction, "answer the pending question before guessing")
	}
	p := room.Player(a.PlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}
	if !room.InPool(a.EntityID) {
		return nil, errf(CodeInvalidReference, "entity %s not in room pool", a.EntityID)
	}
	opp := room.Opponent(a.PlayerID)
	if opp == nil {
		return nil, errf(CodeNotFound, "room %s has no opponent", room.ID)
	}

	room.TurnHistory = append(room.TurnHistory, models.TurnRecord{
		PlayerID:  a.PlayerID,
		GuessID:   a.EntityID,
		Timestamp: time.Now(),
	})

	if a.EntityID == opp.SecretEntityID {
		e.finish(room, a.PlayerID)
		return []Event{GameOver{WinnerID: a.PlayerID, Reason: ReasonGuess}}, nil
	}

	// Wrong guess. With a guess cap, burning the last guess hands the
	// game to the opponent; otherwise play continues.
	if room.Settings.MaxGuesses > 0 {
		p.RemainingGuesses--
		p.UpdatedAt = time.Now()
		if p.RemainingGuesses <= 0 {
			e.finish(room, opp.ID)
			return []Event{GameOver{WinnerID: opp.ID, Reason: ReasonOutOfGuesses}}, nil
		}
	}

	room.CurrentTurnPlayerID = opp.ID
	return []Event{TurnChanged{PlayerID: opp.ID}}, nil
}

func (e *Engine) applyRequestRematch(room *models.Room, a RequestRematch) ([]Event, error) {
	if room.State != models.StateFinished {
		return nil, errf(CodeInvalidAction, "room %s is not finished", room.ID)
	}
	p := room.Player(a.PlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}

	p.WantsRematch = a.WantsRematch
	p.UpdatedAt = time.Now()

	for _, pl := range room.Players {
		if !pl.WantsRematch {
			return nil, nil
		}
	}

	fresh := e.rematchRoom(room)
	return []Event{RematchStarted{Room: fresh}}, nil
}

// rematchRoom builds a brand-new room from a finished one: same mode,
// settings, pool, code and participants, with fresh per-player state.
// The finished room itself is left terminal.
func (e *Engine) rematchRoom(old *models.Room) *models.Room {
	now := time.Now()
	fresh := &models.Room{
		ID:            uuid.New().String(),
		RoomCode:      old.RoomCode,
		Mode:          old.Mode,
		State:         models.StateSelecting,
		CandidatePool: append([]string(nil), old.CandidatePool...),
		Settings:      old.Settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, p := range old.Players {
		fresh.Players = append(fresh.Players,
			models.NewPlayerSession(p.ID, p.DisplayName, p.IsHuman, old.Settings.MaxGuesses))
	}
	e.autoSelectAISecrets(fresh)
	return fresh
}

func (e *Engine) applyForfeit(room *models.Room, a Forfeit) ([]Event, error) {
	if room.State == models.StateFinished {
		return nil, errf(CodeInvalidAction, "room %s already finished", room.ID)
	}
	p := room.Player(a.PlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", a.PlayerID)
	}
	opp := room.Opponent(a.PlayerID)
	if opp == nil {
		// Lone player walking away just ends the room with no winner.
		room.State = models.StateFinished
		room.CurrentTurnPlayerID = ""
		room.PendingQuestionID = ""
		return nil, nil
	}
	e.finish(room, opp.ID)
	return []Event{GameOver{WinnerID: opp.ID, Reason: ReasonForfeit}}, nil
}

// finish moves a room to its terminal state. CurrentTurnPlayerID is
// cleared because the turn invariant only holds while IN_PROGRESS.
func (e *Engine) finish(room *models.Room, winnerID string) {
	room.State = models.StateFinished
	room.WinnerID = winnerID
	room.CurrentTurnPlayerID = ""
	room.PendingQuestionID = ""
}
