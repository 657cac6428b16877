package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/footyguess/gameserver/models"
)

// PQStore implements Store on database/sql with the lib/pq driver, for
// deployments that prefer raw SQL over GORM. Both drivers share the
// same tables apart from the catalog, which PQStore keeps in plain
// columns.
type PQStore struct {
	db *sql.DB
}

func NewPQStore(host string, port int, user, password, dbname string) (*PQStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PQStore{db: db}, nil
}

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS footballers (
            id SERIAL PRIMARY KEY,
            entity_id VARCHAR(64) UNIQUE NOT NULL,
            name VARCHAR(255) NOT NULL,
            club VARCHAR(255),
            nation VARCHAR(255),
            position VARCHAR(16),
            age_bracket VARCHAR(32),
            hair_color VARCHAR(32),
            facial_hair BOOLEAN DEFAULT FALSE,
            boots_color VARCHAR(32)
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS questions (
            id SERIAL PRIMARY KEY,
            question_id VARCHAR(64) UNIQUE NOT NULL,
            text TEXT NOT NULL,
            trait VARCHAR(64) NOT NULL,
            expected_values JSONB NOT NULL,
            category VARCHAR(64)
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS game_records (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(64) NOT NULL,
            room_code VARCHAR(16) NOT NULL,
            mode VARCHAR(32) NOT NULL,
            player_ids JSONB NOT NULL,
            winner_id VARCHAR(64),
            reason VARCHAR(32),
            turn_count INT DEFAULT 0,
            duration INT DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS room_snapshots (
            id SERIAL PRIMARY KEY,
            room_id VARCHAR(64) UNIQUE NOT NULL,
            room_code VARCHAR(16) NOT NULL,
            mode VARCHAR(32) NOT NULL,
            state VARCHAR(32) NOT NULL,
            payload JSONB NOT NULL,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_game_records_room_id ON game_records(room_id);
        CREATE INDEX IF NOT EXISTS idx_game_records_winner_id ON game_records(winner_id);
        CREATE INDEX IF NOT EXISTS idx_room_snapshots_room_code ON room_snapshots(room_code);
    `)
	return err
}

func (s *PQStore) LoadFootballers() ([]models.Footballer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
        SELECT entity_id, name, club, nation, position, age_bracket,
               hair_color, facial_hair, boots_color
        FROM footballers ORDER BY entity_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Footballer
	for rows.Next() {
		var f models.Footballer
		if err := rows.Scan(&f.ID, &f.Name, &f.Club, &f.Nation, &f.Position,
			&f.AgeBracket, &f.HairColor, &f.FacialHair, &f.BootsColor); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *PQStore) LoadQuestions() ([]models.Question, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
        SELECT question_id, text, trait, expected_values, category
        FROM questions ORDER BY question_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Question
	for rows.Next() {
		var (
			q   models.Question
			raw []byte
		)
		if err := rows.Scan(&q.ID, &q.Text, &q.Trait, &raw, &q.Category); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &q.ExpectedValues); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *PQStore) SeedCatalog(footballers []models.Footballer, questions []models.Question) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, f := range footballers {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO footballers
                (entity_id, name, club, nation, position, age_bracket,
                 hair_color, facial_hair, boots_color)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            ON CONFLICT (entity_id) DO NOTHING`,
			f.ID, f.Name, f.Club, f.Nation, f.Position, f.AgeBracket,
			f.HairColor, f.FacialHair, f.BootsColor)
		if err != nil {
			return err
		}
	}
	for _, q := range questions {
		values, err := json.Marshal(q.ExpectedValues)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
            INSERT INTO questions (question_id, text, trait, expected_values, category)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (question_id) DO NOTHING`,
			q.ID, q.Text, q.Trait, values, q.Category)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PQStore) SaveGameRecord(rec models.GameRecord) error {
	playerIDs, err := json.Marshal(rec.PlayerIDs)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO game_records
            (room_id, room_code, mode, player_ids, winner_id, reason, turn_count, duration)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.RoomID, rec.RoomCode, string(rec.Mode), playerIDs,
		rec.WinnerID, rec.Reason, rec.TurnCount, int(rec.Duration.Seconds()))
	return err
}

func (s *PQStore) SaveRoomSnapshot(room *models.Room) error {
	payload, err := json.Marshal(room)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO room_snapshots (room_id, room_code, mode, state, payload)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (room_id)
        DO UPDATE SET state = $4, payload = $5, updated_at = CURRENT_TIMESTAMP`,
		room.ID, room.RoomCode, string(room.Mode), string(room.State), payload)
	return err
}

func (s *PQStore) DeleteRoomSnapshot(roomID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `DELETE FROM room_snapshots WHERE room_id = $1`, roomID)
	return err
}

func (s *PQStore) GetPlayerStats(playerID string) (models.PlayerStats, error) {
	stats := models.PlayerStats{PlayerID: playerID}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.db.QueryRowContext(ctx, `
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN winner_id = $1 THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN winner_id <> $1 AND winner_id <> '' THEN 1 ELSE 0 END), 0)
        FROM game_records
        WHERE player_ids @> $2`,
		playerID, fmt.Sprintf(`["%s"]`, playerID),
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses)
	if err != nil {
		if err == sql.ErrNoRows {
			return stats, ErrRecordNotFound
		}
		return stats, err
	}
	return stats, nil
}

func (s *PQStore) Close() error {
	return s.db.Close()
}
