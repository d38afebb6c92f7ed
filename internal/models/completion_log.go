package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// FileURLs is a jsonb list of uploaded file URLs.
type FileURLs []string

func (f FileURLs) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(f)
}

func (f *FileURLs) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, f)
	case string:
		return json.Unmarshal([]byte(v), f)
	case nil:
		*f = nil
		return nil
	default:
		return errors.New("unsupported type for file urls")
	}
}

// CompletionLog records that a team completed a question. Append-only;
// nothing blocks a team from completing the same question twice.
type CompletionLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TeamID     uint      `gorm:"not null;index" json:"team_id"`
	QuestionID uint      `gorm:"column:qr;not null;index" json:"qr"`
	Files      FileURLs  `gorm:"type:jsonb" json:"files,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (CompletionLog) TableName() string {
	return "zo_banfoo_25_icebreaker"
}
