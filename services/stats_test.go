package services

import (
	"errors"
	"testing"
	"time"

	"github.com/footyguess/gameserver/models"
)

// MockStore is a test double for the persistence.Store interface.
type MockStore struct {
	records          []models.GameRecord
	deletedSnapshots []string
	saveErr          error
}

func (m *MockStore) LoadFootballers() ([]models.Footballer, error) { return nil, nil }
func (m *MockStore) LoadQuestions() ([]models.Question, error)     { return nil, nil }
func (m *MockStore) SeedCatalog(f []models.Footballer, q []models.Question) error {
	return nil
}
func (m *MockStore) SaveGameRecord(rec models.GameRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, rec)
	return nil
}
func (m *MockStore) SaveRoomSnapshot(room *models.Room) error { return nil }
func (m *MockStore) DeleteRoomSnapshot(roomID string) error {
	m.deletedSnapshots = append(m.deletedSnapshots, roomID)
	return nil
}
func (m *MockStore) GetPlayerStats(playerID string) (models.PlayerStats, error) {
	return models.PlayerStats{PlayerID: playerID, TotalGames: 7, Wins: 4, Losses: 3}, nil
}
func (m *MockStore) Close() error { return nil }

func finishedRoom() *models.Room {
	return &models.Room{
		ID:       "room1",
		RoomCode: "ABCDEF",
		Mode:     models.ModeMultiPlayer,
		State:    models.StateFinished,
		WinnerID: "alice",
		Players: []*models.PlayerSession{
			models.NewPlayerSession("alice", "Alice", true, 3),
			models.NewPlayerSession("bob", "Bob", true, 3),
		},
		TurnHistory: []models.TurnRecord{
			{PlayerID: "alice", QuestionID: "q01"},
			{PlayerID: "alice", GuessID: "f01"},
		},
		CreatedAt: time.Now().Add(-5 * time.Minute),
	}
}

func TestRecordFinishedGame(t *testing.T) {
	store := &MockStore{}
	svc := NewStatsService(store)

	if err := svc.RecordFinishedGame(finishedRoom(), "guess"); err != nil {
		t.Fatalf("RecordFinishedGame failed: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("Expected 1 archived record, got %d", len(store.records))
	}
	rec := store.records[0]
	if rec.WinnerID != "alice" || rec.Reason != "guess" {
		t.Errorf("Record carries winner %q reason %q", rec.WinnerID, rec.Reason)
	}
	if rec.TurnCount != 2 {
		t.Errorf("Expected 2 turns, got %d", rec.TurnCount)
	}
	if len(rec.PlayerIDs) != 2 {
		t.Errorf("Expected both players archived, got %v", rec.PlayerIDs)
	}
	if rec.Duration <= 0 {
		t.Error("Duration should be positive")
	}

	if len(store.deletedSnapshots) != 1 || store.deletedSnapshots[0] != "room1" {
		t.Errorf("Expected the room snapshot to be dropped, got %v", store.deletedSnapshots)
	}
}

func TestRecordFinishedGame_SaveFailureKeepsSnapshot(t *testing.T) {
	store := &MockStore{saveErr: errors.New("db down")}
	svc := NewStatsService(store)

	if err := svc.RecordFinishedGame(finishedRoom(), "guess"); err == nil {
		t.Fatal("Expected the save error to propagate")
	}
	if len(store.deletedSnapshots) != 0 {
		t.Error("Snapshot should survive a failed archive")
	}
}

func TestGetPlayerStats(t *testing.T) {
	svc := NewStatsService(&MockStore{})

	stats, err := svc.GetPlayerStats("alice")
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	if stats.TotalGames != 7 || stats.Wins != 4 || stats.Losses != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
