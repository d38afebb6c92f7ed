package models

import "time"

// Global state keys used as broadcast channels.
const (
	StateKeyFreeze          = "freeze"
	StateKeyNaturalDisaster = "naturalDisaster"
	StateKeyWorldPeace      = "worldPeace"
	StateKeyDisasterAid     = "disasterAid"
	StateKeyThief           = "thief"
)

// GlobalState is a singleton row per key, overwritten in place. Values are
// string-encoded: "true"/"false" or a JSON payload.
type GlobalState struct {
	Key         string    `gorm:"primaryKey;size:50" json:"key"`
	Value       string    `gorm:"size:500;not null" json:"value"`
	TimeUpdated time.Time `gorm:"column:time_updated;not null" json:"time_updated"`
}

func (GlobalState) TableName() string {
	return "zo_banfoo_25_state"
}

// BoolValue reports whether the stored value is the string "true".
func (s GlobalState) BoolValue() bool {
	return s.Value == "true"
}
