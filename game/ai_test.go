package game

import (
	"testing"

	"github.com/footyguess/gameserver/catalog"
	"github.com/footyguess/gameserver/models"
)

func newTestAI() (*AIPlayer, *catalog.Footballers, *catalog.Questions) {
	footballers := catalog.NewFootballers(catalog.SeedFootballers())
	questions := catalog.NewQuestions(catalog.SeedQuestions())
	return NewAIPlayer(footballers, questions), footballers, questions
}

// aiRoom builds an IN_PROGRESS room where "cpu" plays against "alice".
func aiRoom(cpuSecret string) *models.Room {
	var pool []string
	for _, f := range catalog.SeedFootballers() {
		pool = append(pool, f.ID)
	}
	alice := models.NewPlayerSession("alice", "Alice", true, 0)
	alice.SecretEntityID = "f13"
	cpu := models.NewPlayerSession("cpu", "CPU", false, 0)
	cpu.SecretEntityID = cpuSecret

	return &models.Room{
		ID:                  "room1",
		Mode:                models.ModeSinglePlayer,
		State:               models.StateInProgress,
		Players:             []*models.PlayerSession{alice, cpu},
		CandidatePool:       pool,
		CurrentTurnPlayerID: "alice",
	}
}

func TestAIPlayer_AnswersTruthfully(t *testing.T) {
	ai, _, _ := newTestAI()

	// q01 asks for a goalkeeper; f01 is one, f13 is a forward.
	r := aiRoom("f01")
	r.PendingQuestionID = "q01"
	answer, err := ai.Answer(r, "cpu")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !answer {
		t.Error("AI with a goalkeeper secret should answer yes to q01")
	}

	r = aiRoom("f13")
	r.PendingQuestionID = "q01"
	answer, err = ai.Answer(r, "cpu")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if answer {
		t.Error("AI with a forward secret should answer no to q01")
	}
}

func TestAIPlayer_GuessesWhenBoardIsNarrow(t *testing.T) {
	ai, _, _ := newTestAI()
	r := aiRoom("f01")
	r.CurrentTurnPlayerID = "cpu"

	cpu := r.Player("cpu")
	keep := map[string]bool{"f02": true, "f03": true}
	for _, id := range r.CandidatePool {
		if !keep[id] {
			cpu.EliminatedIDs[id] = true
		}
	}

	act, err := ai.NextAction(r, "cpu")
	if err != nil {
		t.Fatalf("NextAction failed: %v", err)
	}
	guess, ok := act.(MakeGuess)
	if !ok {
		t.Fatalf("Expected MakeGuess with 2 candidates left, got %T", act)
	}
	if !keep[guess.EntityID] {
		t.Errorf("AI guessed %s, which it had already eliminated", guess.EntityID)
	}
}

func TestAIPlayer_AsksTheMostInformativeQuestion(t *testing.T) {
	ai, footballers, questions := newTestAI()
	r := aiRoom("f01")
	r.CurrentTurnPlayerID = "cpu"

	act, err := ai.NextAction(r, "cpu")
	if err != nil {
		t.Fatalf("NextAction failed: %v", err)
	}
	ask, ok := act.(AskQuestion)
	if !ok {
		t.Fatalf("Expected AskQuestion on a full board, got %T", act)
	}

	// The chosen question must split the 24-card board exactly in half;
	// the seeded bank contains at least one such question.
	q, err := questions.GetByID(ask.QuestionID)
	if err != nil {
		t.Fatalf("AI picked unknown question %s", ask.QuestionID)
	}
	matches := 0
	for _, f := range footballers.GetAll() {
		if Evaluate(q, f) {
			matches++
		}
	}
	if matches != footballers.Len()/2 {
		t.Errorf("Question %s matches %d of %d candidates, expected an even split", q.ID, matches, footballers.Len())
	}
}

func TestAIPlayer_GuessesWhenQuestionsRunOut(t *testing.T) {
	ai, _, questions := newTestAI()
	r := aiRoom("f01")
	r.CurrentTurnPlayerID = "cpu"

	cpu := r.Player("cpu")
	all, _ := questions.GetAll()
	for _, q := range all {
		cpu.AskedQuestionIDs[q.ID] = true
	}

	act, err := ai.NextAction(r, "cpu")
	if err != nil {
		t.Fatalf("NextAction failed: %v", err)
	}
	if _, ok := act.(MakeGuess); !ok {
		t.Errorf("Expected a forced guess with no questions left, got %T", act)
	}
}

func TestAIPlayer_ContradictoryBoardFallsBackToFullPool(t *testing.T) {
	ai, _, _ := newTestAI()
	r := aiRoom("f01")
	r.CurrentTurnPlayerID = "cpu"

	cpu := r.Player("cpu")
	for _, id := range r.CandidatePool {
		cpu.EliminatedIDs[id] = true
	}

	act, err := ai.NextAction(r, "cpu")
	if err != nil {
		t.Fatalf("NextAction failed: %v", err)
	}
	guess, ok := act.(MakeGuess)
	if !ok {
		t.Fatalf("Expected a blind guess on an empty board, got %T", act)
	}
	if !r.InPool(guess.EntityID) {
		t.Errorf("Blind guess %s is not in the pool", guess.EntityID)
	}
}
