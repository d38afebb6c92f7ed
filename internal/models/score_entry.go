package models

import "time"

// ScoreEntry is one row of the append-only gold ledger. Entries are never
// updated or deleted; admin events insert compensating rows instead.
type ScoreEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Score     int       `gorm:"not null" json:"score"`
	Remarks   string    `gorm:"size:255" json:"remarks"`
	IsAdmin   bool      `gorm:"column:isAdmin;not null;default:false" json:"isAdmin"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ScoreEntry) TableName() string {
	return "zo_banfoo_25_score"
}
