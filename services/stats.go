package services

import (
	"time"

	"github.com/footyguess/gameserver/models"
	"github.com/footyguess/gameserver/persistence"
)

// StatsService archives finished games and serves per-player aggregates.
type StatsService struct {
	store persistence.Store
}

func NewStatsService(store persistence.Store) *StatsService {
	return &StatsService{store: store}
}

// RecordFinishedGame archives a terminal room and drops its live
// snapshot.
func (s *StatsService) RecordFinishedGame(room *models.Room, reason string) error {
	rec := models.GameRecord{
		RoomID:    room.ID,
		RoomCode:  room.RoomCode,
		Mode:      room.Mode,
		WinnerID:  room.WinnerID,
		Reason:    reason,
		TurnCount: len(room.TurnHistory),
		Duration:  time.Since(room.CreatedAt),
		CreatedAt: time.Now(),
	}
	for _, p := range room.Players {
		rec.PlayerIDs = append(rec.PlayerIDs, p.ID)
	}

	if err := s.store.SaveGameRecord(rec); err != nil {
		return err
	}
	return s.store.DeleteRoomSnapshot(room.ID)
}

func (s *StatsService) GetPlayerStats(playerID string) (models.PlayerStats, error) {
	return s.store.GetPlayerStats(playerID)
}
