package models

import (
	"strings"
	"time"
)

// GameMode distinguishes a solo game against the AI from a two-human room.
type GameMode string

const (
	ModeSinglePlayer GameMode = "SINGLE_PLAYER"
	ModeMultiPlayer  GameMode = "MULTI_PLAYER"
)

// RoomState is the lifecycle phase of a room. Transitions are strictly
// WAITING -> SELECTING -> IN_PROGRESS -> FINISHED.
type RoomState string

const (
	StateWaiting    RoomState = "WAITING"
	StateSelecting  RoomState = "SELECTING"
	StateInProgress RoomState = "IN_PROGRESS"
	StateFinished   RoomState = "FINISHED"
)

// Settings are per-room rule knobs, copied into rematches.
type Settings struct {
	// TurnTimeLimit of zero means untimed turns.
	TurnTimeLimit time.Duration `json:"turn_time_limit"`
	// MaxGuesses of zero means unlimited guessing.
	MaxGuesses int `json:"max_guesses"`
	// AutoWinByElimination ends the game in a player's favor when their
	// remaining candidates narrow to exactly the opponent's secret.
	AutoWinByElimination bool   `json:"auto_win_by_elimination"`
	Difficulty           string `json:"difficulty"`
}

// PlayerSession is the per-room record of one participant, human or AI.
type PlayerSession struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsHuman     bool   `json:"is_human"`

	// SecretEntityID is immutable once the room leaves SELECTING.
	SecretEntityID string `json:"secret_entity_id,omitempty"`

	// EliminatedIDs only ever grows.
	EliminatedIDs    map[string]bool `json:"eliminated_ids"`
	AskedQuestionIDs map[string]bool `json:"asked_question_ids"`

	RemainingGuesses int  `json:"remaining_guesses"`
	WantsRematch     bool `json:"wants_rematch"`

	LastActive time.Time `json:"last_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPlayerSession creates a fresh session with empty elimination and
// question sets.
func NewPlayerSession(id, displayName string, isHuman bool, maxGuesses int) *PlayerSession {
	now := time.Now()
	return &PlayerSession{
		ID:               id,
		DisplayName:      displayName,
		IsHuman:          isHuman,
		EliminatedIDs:    make(map[string]bool),
		AskedQuestionIDs: make(map[string]bool),
		RemainingGuesses: maxGuesses,
		LastActive:       now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Clone returns a deep copy of the session.
func (p *PlayerSession) Clone() *PlayerSession {
	cp := *p
	cp.EliminatedIDs = make(map[string]bool, len(p.EliminatedIDs))
	for k, v := range p.EliminatedIDs {
		cp.EliminatedIDs[k] = v
	}
	cp.AskedQuestionIDs = make(map[string]bool, len(p.AskedQuestionIDs))
	for k, v := range p.AskedQuestionIDs {
		cp.AskedQuestionIDs[k] = v
	}
	return &cp
}

// TurnRecord is one entry in a room's append-only history. Exactly one of
// QuestionID or GuessID is set.
type TurnRecord struct {
	PlayerID   string    `json:"player_id"`
	QuestionID string    `json:"question_id,omitempty"`
	GuessID    string    `json:"guess_id,omitempty"`
	Answer     *bool     `json:"answer,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Room is one game session between one or two participants.
type Room struct {
	ID       string    `json:"id"`
	RoomCode string    `json:"room_code"`
	Mode     GameMode  `json:"mode"`
	State    RoomState `json:"state"`

	// Players is ordered: the room creator is always Players[0].
	Players []*PlayerSession `json:"players"`

	// CandidatePool is the shared draw both players pick secrets from
	// and eliminate against.
	CandidatePool []string `json:"candidate_pool"`

	// CurrentTurnPlayerID is set while IN_PROGRESS and empty otherwise.
	CurrentTurnPlayerID string `json:"current_turn_player_id,omitempty"`

	// PendingQuestionID is the question awaiting an answer from the
	// non-turn player, empty when no question is outstanding.
	PendingQuestionID string `json:"pending_question_id,omitempty"`

	TurnHistory []TurnRecord `json:"turn_history"`
	WinnerID    string       `json:"winner_id,omitempty"`
	Settings    Settings     `json:"settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the room. The game engine mutates only
// clones so a failed action never leaves partial state behind.
func (r *Room) Clone() *Room {
	cp := *r
	cp.Players = make([]*PlayerSession, len(r.Players))
	for i, p := range r.Players {
		cp.Players[i] = p.Clone()
	}
	cp.CandidatePool = append([]string(nil), r.CandidatePool...)
	cp.TurnHistory = append([]TurnRecord(nil), r.TurnHistory...)
	return &cp
}

// Player returns the session with the given ID, or nil.
func (r *Room) Player(id string) *PlayerSession {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other player's session, or nil for a one-player room.
func (r *Room) Opponent(id string) *PlayerSession {
	for _, p := range r.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// InPool reports whether the entity is part of the room's candidate pool.
func (r *Room) InPool(entityID string) bool {
	for _, id := range r.CandidatePool {
		if id == entityID {
			return true
		}
	}
	return false
}

// RemainingCandidates returns the pool entries the given player has not yet
// eliminated, in pool order.
func (r *Room) RemainingCandidates(playerID string) []string {
	p := r.Player(playerID)
	if p == nil {
		return nil
	}
	var out []string
	for _, id := range r.CandidatePool {
		if !p.EliminatedIDs[id] {
			out = append(out, id)
		}
	}
	return out
}

// Question probes one trait of a footballer.
type Question struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Trait          string   `json:"trait"`
	ExpectedValues []string `json:"expected_values"`
	Category       string   `json:"category"`
}

// Footballer is one candidate entity on the board.
type Footballer struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Club       string `json:"club"`
	Nation     string `json:"nation"`
	Position   string `json:"position"`
	AgeBracket string `json:"age_bracket"`
	HairColor  string `json:"hair_color"`
	FacialHair bool   `json:"facial_hair"`
	BootsColor string `json:"boots_color"`
}

// Trait returns the values a question trait resolves to for this
// footballer. A trait may be multi-valued (none are today, but the
// evaluator treats the return as a set either way). Unknown traits
// resolve to nil.
func (f Footballer) Trait(name string) []string {
	switch strings.ToLower(name) {
	case "club":
		return []string{f.Club}
	case "nation", "nationality", "country":
		return []string{f.Nation}
	case "position":
		return []string{f.Position}
	case "age_bracket", "age":
		return []string{f.AgeBracket}
	case "hair_color", "hair":
		return []string{f.HairColor}
	case "facial_hair":
		if f.FacialHair {
			return []string{"yes"}
		}
		return []string{"no"}
	case "boots_color", "boots":
		return []string{f.BootsColor}
	case "name":
		return []string{f.Name}
	}
	return nil
}

// GameRecord is the archived summary of a finished game.
type GameRecord struct {
	RoomID    string        `json:"room_id"`
	RoomCode  string        `json:"room_code"`
	Mode      GameMode      `json:"mode"`
	PlayerIDs []string      `json:"player_ids"`
	WinnerID  string        `json:"winner_id"`
	Reason    string        `json:"reason"`
	TurnCount int           `json:"turn_count"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// PlayerStats aggregates archived results for one player.
type PlayerStats struct {
	PlayerID   string `json:"player_id"`
	TotalGames int    `json:"total_games"`
	Wins       int    `json:"wins"`
	Losses     int    `json:"losses"`
}
