package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Question payload kinds. The kind decides which completion policy applies.
const (
	QuestionKindInput = "INPUT"
	QuestionKindFile  = "FILE"
	QuestionKindGift  = "GIFT"
	QuestionKindTask  = "TASK"
)

// Reward categories. Flavor categories carry bespoke display text; only the
// category plus points decide what a completion is worth.
const (
	RewardNormal     = "reward"
	RewardNone       = "noreward"
	RewardEmpty      = "empty"
	RewardTemptation = "temptation"
	RewardVirtue     = "virtue"
)

// QuestionPayload is the tagged challenge payload stored as a jsonb column.
// Answer is set for INPUT questions, Src is the storage folder for FILE
// questions.
type QuestionPayload struct {
	Kind     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer,omitempty"`
	Src      string `json:"src,omitempty"`
}

func (p QuestionPayload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *QuestionPayload) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = QuestionPayload{}
		return nil
	default:
		return errors.New("unsupported type for question payload")
	}
}

// Question is read-only reference data looked up by the scanned code suffix.
type Question struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Qn        QuestionPayload `gorm:"type:jsonb;not null" json:"qn"`
	Type      string          `gorm:"size:20;not null;default:'reward'" json:"type"`
	Points    int             `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time       `json:"created_at"`
}

func (Question) TableName() string {
	return "zo_banfoo_25_qr"
}
