package room

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/footyguess/gameserver/models"
)

var ErrRoomNotFound = errors.New("room not found")

// Store holds all active rooms in memory, keyed by room ID. Replacement
// via Put is atomic per key (last write wins); WithRoom layers per-room
// mutual exclusion on top so a full read-modify-write cycle on one room
// never interleaves with another.
type Store struct {
	rooms  map[string]*models.Room
	byCode map[string]string // roomCode -> roomID
	locks  map[string]*sync.Mutex
	mutex  sync.RWMutex
}

func NewStore() *Store {
	return &Store{
		rooms:  make(map[string]*models.Room),
		byCode: make(map[string]string),
		locks:  make(map[string]*sync.Mutex),
	}
}

// New builds a WAITING room with the creator attached, a fresh ID and a
// unique join code.
func (s *Store) New(mode models.GameMode, settings models.Settings, pool []string, creator *models.PlayerSession) *models.Room {
	now := time.Now()
	r := &models.Room{
		ID:            uuid.New().String(),
		RoomCode:      s.uniqueCode(),
		Mode:          mode,
		State:         models.StateWaiting,
		Players:       []*models.PlayerSession{creator},
		CandidatePool: append([]string(nil), pool...),
		Settings:      settings,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Put(r)
	return r
}

func (s *Store) uniqueCode() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for {
		code := GenerateCode()
		if _, taken := s.byCode[code]; !taken {
			return code
		}
	}
}

// Get returns the room with the given ID.
func (s *Store) Get(id string) (*models.Room, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// GetByCode resolves a join code to its room.
func (s *Store) GetByCode(code string) (*models.Room, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	r, ok := s.rooms[id]
	return r, ok
}

// Put upserts a room and refreshes its UpdatedAt stamp.
func (s *Store) Put(r *models.Room) *models.Room {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	r.UpdatedAt = time.Now()
	s.rooms[r.ID] = r
	s.byCode[r.RoomCode] = r.ID
	return r
}

// Remove deletes a room and its lock. Returns whether it existed.
func (s *Store) Remove(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return false
	}
	delete(s.rooms, id)
	if cur, exists := s.byCode[r.RoomCode]; exists && cur == id {
		delete(s.byCode, r.RoomCode)
	}
	delete(s.locks, id)
	return true
}

// ListActive returns every room that has not finished.
func (s *Store) ListActive() []*models.Room {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var out []*models.Room
	for _, r := range s.rooms {
		if r.State != models.StateFinished {
			out = append(out, r)
		}
	}
	return out
}

// ListIdleSince returns rooms untouched since the cutoff, for TTL
// cleanup.
func (s *Store) ListIdleSince(cutoff time.Time) []*models.Room {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	var out []*models.Room
	for _, r := range s.rooms {
		if r.UpdatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of stored rooms.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.rooms)
}

// WithRoom runs fn while holding the room's single-flight lock. All
// action handling goes through here so two concurrent actions on the
// same room serialize instead of losing an update.
func (s *Store) WithRoom(id string, fn func(r *models.Room) error) error {
	lock := s.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	r, ok := s.Get(id)
	if !ok {
		return ErrRoomNotFound
	}
	return fn(r)
}

func (s *Store) lockFor(id string) *sync.Mutex {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}
