package persistence

import (
	"errors"

	"github.com/footyguess/gameserver/models"
)

var ErrRecordNotFound = errors.New("record not found")

// Store is the durable side of the server: catalog rows, archived game
// records and room snapshots. Live game state stays in the in-memory
// room store; nothing here sits on the action path's critical section.
type Store interface {
	LoadFootballers() ([]models.Footballer, error)
	LoadQuestions() ([]models.Question, error)
	SeedCatalog(footballers []models.Footballer, questions []models.Question) error

	SaveGameRecord(rec models.GameRecord) error
	SaveRoomSnapshot(room *models.Room) error
	DeleteRoomSnapshot(roomID string) error

	GetPlayerStats(playerID string) (models.PlayerStats, error)

	Close() error
}
