package models

import "time"

// Team is immutable reference data; gold is never stored here, it is always
// recomputed from the score ledger.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamName  string    `gorm:"size:100;uniqueIndex;not null" json:"team_name"`
	Color     string    `gorm:"size:20" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (Team) TableName() string {
	return "zo_banfoo_25_team"
}
