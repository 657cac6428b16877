package models

import (
	"gorm.io/gorm"
)

// GormFootballer is the catalog row backing models.Footballer.
type GormFootballer struct {
	gorm.Model
	EntityID   string `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	Club       string `gorm:"index"`
	Nation     string `gorm:"index"`
	Position   string `gorm:"index"`
	AgeBracket string
	HairColor  string
	FacialHair bool
	BootsColor string
}

// GormQuestion is the catalog row backing models.Question.
type GormQuestion struct {
	gorm.Model
	QuestionID     string   `gorm:"uniqueIndex;not null"`
	Text           string   `gorm:"not null"`
	Trait          string   `gorm:"index;not null"`
	ExpectedValues []string `gorm:"serializer:json;type:jsonb;not null"`
	Category       string   `gorm:"index"`
}

// GormGameRecord archives one finished game.
type GormGameRecord struct {
	gorm.Model
	RoomID    string   `gorm:"index;not null"`
	RoomCode  string   `gorm:"index;not null"`
	Mode      string   `gorm:"not null"`
	PlayerIDs []string `gorm:"serializer:json;type:jsonb;not null"`
	WinnerID  string   `gorm:"index"`
	Reason    string
	TurnCount int
	Duration  int `gorm:"default:0"` // seconds
}

// GormRoomSnapshot is a periodic dump of live room state, kept for
// crash inspection rather than recovery.
type GormRoomSnapshot struct {
	gorm.Model
	RoomID   string                 `gorm:"uniqueIndex;not null"`
	RoomCode string                 `gorm:"index;not null"`
	Mode     string                 `gorm:"not null"`
	State    string                 `gorm:"not null"`
	Payload  map[string]interface{} `gorm:"serializer:json;type:jsonb;not null"`
}
