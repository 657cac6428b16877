package room

import (
	"sync"
	"testing"
	"time"

	"github.com/footyguess/gameserver/models"
)

func newTestRoom(s *Store) *models.Room {
	creator := models.NewPlayerSession("alice", "Alice", true, 3)
	return s.New(models.ModeMultiPlayer, models.Settings{MaxGuesses: 3}, []string{"f01", "f02"}, creator)
}

func TestStore_NewAndGet(t *testing.T) {
	s := NewStore()
	r := newTestRoom(s)

	if r.State != models.StateWaiting {
		t.Errorf("New room should be WAITING, got %s", r.State)
	}
	if len(r.RoomCode) != 6 {
		t.Errorf("Expected a 6-character room code, got %q", r.RoomCode)
	}
	if len(r.Players) != 1 || r.Players[0].ID != "alice" {
		t.Error("Creator should be attached as the only player")
	}

	got, ok := s.Get(r.ID)
	if !ok {
		t.Fatal("Get should find the created room")
	}
	if got != r {
		t.Error("Get should return the stored instance")
	}

	byCode, ok := s.GetByCode(r.RoomCode)
	if !ok || byCode.ID != r.ID {
		t.Error("GetByCode should resolve the join code")
	}
}

func TestStore_PutReplaces(t *testing.T) {
	s := NewStore()
	r := newTestRoom(s)

	clone := r.Clone()
	clone.State = models.StateSelecting
	s.Put(clone)

	got, _ := s.Get(r.ID)
	if got.State != models.StateSelecting {
		t.Errorf("Put should replace the stored room, got state %s", got.State)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 stored room, got %d", s.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	r := newTestRoom(s)

	if !s.Remove(r.ID) {
		t.Fatal("Remove should report the room existed")
	}
	if _, ok := s.Get(r.ID); ok {
		t.Error("Removed room should be gone")
	}
	if _, ok := s.GetByCode(r.RoomCode); ok {
		t.Error("Removed room's code should be released")
	}
	if s.Remove(r.ID) {
		t.Error("Removing twice should report false")
	}
}

func TestStore_ListActive(t *testing.T) {
	s := NewStore()
	live := newTestRoom(s)
	done := newTestRoom(s)
	done.State = models.StateFinished
	s.Put(done)

	active := s.ListActive()
	if len(active) != 1 {
		t.Fatalf("Expected 1 active room, got %d", len(active))
	}
	if active[0].ID != live.ID {
		t.Errorf("Expected room %s active, got %s", live.ID, active[0].ID)
	}
}

func TestStore_ListIdleSince(t *testing.T) {
	s := NewStore()
	stale := newTestRoom(s)
	stale.UpdatedAt = time.Now().Add(-2 * time.Hour)
	fresh := newTestRoom(s)
	_ = fresh

	idle := s.ListIdleSince(time.Now().Add(-time.Hour))
	if len(idle) != 1 || idle[0].ID != stale.ID {
		t.Errorf("Expected only the stale room idle, got %d rooms", len(idle))
	}
}

func TestStore_WithRoom_NotFound(t *testing.T) {
	s := NewStore()
	err := s.WithRoom("missing", func(r *models.Room) error { return nil })
	if err != ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestStore_WithRoom_SerializesAccess(t *testing.T) {
	s := NewStore()
	r := newTestRoom(s)

	// Each iteration reads the history length and appends one record. If
	// WithRoom did not serialize read-modify-write cycles, updates would
	// be lost and the final length would fall short.
	const workers = 8
	const iterations = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				_ = s.WithRoom(r.ID, func(cur *models.Room) error {
					next := cur.Clone()
					next.TurnHistory = append(next.TurnHistory, models.TurnRecord{PlayerID: "alice"})
					s.Put(next)
					return nil
				})
			}
		}()
	}
	wg.Wait()

	got, _ := s.Get(r.ID)
	if len(got.TurnHistory) != workers*iterations {
		t.Errorf("Expected %d history entries, got %d", workers*iterations, len(got.TurnHistory))
	}
}

func TestStore_UniqueCodes(t *testing.T) {
	s := NewStore()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		r := newTestRoom(s)
		if seen[r.RoomCode] {
			t.Fatalf("Duplicate room code %s", r.RoomCode)
		}
		seen[r.RoomCode] = true
	}
}
