package game

import (
	"math/rand"
	"time"

	"github.com/footyguess/gameserver/models"
)

// guessThreshold is the board size at which the AI stops asking and
// starts guessing.
const guessThreshold = 3

// AIPlayer decides moves for the machine participant in single-player
// rooms. It answers truthfully via the evaluator and asks the question
// that best halves its remaining board. The server drives it whenever a
// room's turn lands on a non-human session.
type AIPlayer struct {
	footballers FootballerSource
	questions   QuestionSource
	rng         *rand.Rand
}

func NewAIPlayer(footballers FootballerSource, questions QuestionSource) *AIPlayer {
	return &AIPlayer{
		footballers: footballers,
		questions:   questions,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Answer evaluates the pending question against the AI's own secret.
// The AI never bluffs.
func (ai *AIPlayer) Answer(room *models.Room, aiPlayerID string) (bool, error) {
	p := room.Player(aiPlayerID)
	if p == nil {
		return false, errf(CodeNotFound, "player %s not in room", aiPlayerID)
	}
	q, err := ai.questions.GetByID(room.PendingQuestionID)
	if err != nil {
		return false, errf(CodeNotFound, "question %s unknown", room.PendingQuestionID)
	}
	secrets, err := ai.footballers.GetByIDs([]string{p.SecretEntityID})
	if err != nil || len(secrets) == 0 {
		return false, errf(CodeNotFound, "secret %s unknown", p.SecretEntityID)
	}
	return Evaluate(q, secrets[0]), nil
}

// NextAction returns the AI's move for its turn: a guess when the board
// is narrow enough, otherwise the most informative unasked question.
func (ai *AIPlayer) NextAction(room *models.Room, aiPlayerID string) (Action, error) {
	p := room.Player(aiPlayerID)
	if p == nil {
		return nil, errf(CodeNotFound, "player %s not in room", aiPlayerID)
	}

	remaining := room.RemainingCandidates(aiPlayerID)
	if len(remaining) == 0 {
		// Answers contradicted each other (a human lied or misclicked);
		// guess blind from the full pool.
		remaining = room.CandidatePool
	}
	if len(remaining) <= guessThreshold {
		return MakeGuess{
			PlayerID: aiPlayerID,
			EntityID: remaining[ai.rng.Intn(len(remaining))],
		}, nil
	}

	q, err := ai.pickQuestion(room, p, remaining)
	if err != nil {
		return nil, err
	}
	if q == nil {
		// Question catalog exhausted; forced to guess.
		return MakeGuess{
			PlayerID: aiPlayerID,
			EntityID: remaining[ai.rng.Intn(len(remaining))],
		}, nil
	}
	return AskQuestion{PlayerID: aiPlayerID, QuestionID: q.ID}, nil
}

// pickQuestion scores every unasked question by how close its yes/no
// split comes to halving the remaining board and returns the best one.
func (ai *AIPlayer) pickQuestion(room *models.Room, p *models.PlayerSession, remaining []string) (*models.Question, error) {
	all, err := ai.questions.GetAll()
	if err != nil {
		return nil, errf(CodeNotFound, "question catalog unavailable: %v", err)
	}
	candidates, err := ai.footballers.GetByIDs(remaining)
	if err != nil {
		return nil, errf(CodeNotFound, "candidate lookup failed: %v", err)
	}

	var (
		best      *models.Question
		bestScore = len(candidates) + 1
	)
	for i := range all {
		q := all[i]
		if p.AskedQuestionIDs[q.ID] {
			continue
		}
		matches := 0
		for _, f := range candidates {
			if Evaluate(q, f) {
				matches++
			}
		}
		// Distance from an even split; a question that matches all or
		// none of the board teaches nothing and scores worst.
		score := abs(2*matches - len(candidates))
		if score < bestScore {
			bestScore = score
			best = &q
		}
	}
	return best, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
