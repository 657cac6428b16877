package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/footyguess/gameserver/models"
)

// GormStore implements Store on GORM + PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(host string, port int, user, password, dbname string) (*GormStore, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gl := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gl})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.GormFootballer{},
		&models.GormQuestion{},
		&models.GormGameRecord{},
		&models.GormRoomSnapshot{},
	); err != nil {
		return nil, err
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) LoadFootballers() ([]models.Footballer, error) {
	var rows []models.GormFootballer
	if err := s.db.Order("entity_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Footballer, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Footballer{
			ID:         r.EntityID,
			Name:       r.Name,
			Club:       r.Club,
			Nation:     r.Nation,
			Position:   r.Position,
			AgeBracket: r.AgeBracket,
			HairColor:  r.HairColor,
			FacialHair: r.FacialHair,
			BootsColor: r.BootsColor,
		})
	}
	return out, nil
}

func (s *GormStore) LoadQuestions() ([]models.Question, error) {
	var rows []models.GormQuestion
	if err := s.db.Order("question_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.Question{
			ID:             r.QuestionID,
			Text:           r.Text,
			Trait:          r.Trait,
			ExpectedValues: r.ExpectedValues,
			Category:       r.Category,
		})
	}
	return out, nil
}

// SeedCatalog inserts any catalog rows missing from the database.
// Existing rows win; seeding never overwrites operator edits.
func (s *GormStore) SeedCatalog(footballers []models.Footballer, questions []models.Question) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, f := range footballers {
			var existing models.GormFootballer
			err := tx.Where("entity_id = ?", f.ID).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
			row := models.GormFootballer{
				EntityID:   f.ID,
				Name:       f.Name,
				Club:       f.Club,
				Nation:     f.Nation,
				Position:   f.Position,
				AgeBracket: f.AgeBracket,
				HairColor:  f.HairColor,
				FacialHair: f.FacialHair,
				BootsColor: f.BootsColor,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, q := range questions {
			var existing models.GormQuestion
			err := tx.Where("question_id = ?", q.ID).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
			row := models.GormQuestion{
				QuestionID:     q.ID,
				Text:           q.Text,
				Trait:          q.Trait,
				ExpectedValues: q.ExpectedValues,
				Category:       q.Category,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormStore) SaveGameRecord(rec models.GameRecord) error {
	row := models.GormGameRecord{
		RoomID:    rec.RoomID,
		RoomCode:  rec.RoomCode,
		Mode:      string(rec.Mode),
		PlayerIDs: rec.PlayerIDs,
		WinnerID:  rec.WinnerID,
		Reason:    rec.Reason,
		TurnCount: rec.TurnCount,
		Duration:  int(rec.Duration.Seconds()),
	}
	return s.db.Create(&row).Error
}

func (s *GormStore) SaveRoomSnapshot(room *models.Room) error {
	raw, err := json.Marshal(room)
	if err != nil {
		return err
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}

	var snap models.GormRoomSnapshot
	result := s.db.Where("room_id = ?", room.ID).First(&snap)
	if result.Error == gorm.ErrRecordNotFound {
		snap = models.GormRoomSnapshot{
			RoomID:   room.ID,
			RoomCode: room.RoomCode,
			Mode:     string(room.Mode),
			State:    string(room.State),
			Payload:  payload,
		}
		return s.db.Create(&snap).Error
	} else if result.Error != nil {
		return result.Error
	}

	snap.State = string(room.State)
	snap.Payload = payload
	return s.db.Save(&snap).Error
}

func (s *GormStore) DeleteRoomSnapshot(roomID string) error {
	return s.db.Where("room_id = ?", roomID).Delete(&models.GormRoomSnapshot{}).Error
}

func (s *GormStore) GetPlayerStats(playerID string) (models.PlayerStats, error) {
	stats := models.PlayerStats{PlayerID: playerID}

	err := s.db.Raw(`
        SELECT
            COUNT(*) AS total_games,
            COALESCE(SUM(CASE WHEN winner_id = ? THEN 1 ELSE 0 END), 0) AS wins,
            COALESCE(SUM(CASE WHEN winner_id <> ? AND winner_id <> '' THEN 1 ELSE 0 END), 0) AS losses
        FROM gorm_game_records
        WHERE player_ids @> ?`,
		playerID, playerID, fmt.Sprintf(`["%s"]`, playerID),
	).Row().Scan(&stats.TotalGames, &stats.Wins, &stats.Losses)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
