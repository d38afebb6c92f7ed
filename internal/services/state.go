package services

import (
	"errors"
	"log"
	"time"

	"icebreaker-backend/internal/models"
	"icebreaker-backend/internal/ws"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StateService struct {
	db          *gorm.DB
	hub         *ws.Hub
	revertDelay time.Duration
}

func NewStateService(db *gorm.DB, hub *ws.Hub, revertDelay time.Duration) *StateService {
	return &StateService{db: db, hub: hub, revertDelay: revertDelay}
}

func (s *StateService) Get(key string) (*models.GlobalState, error) {
	var state models.GlobalState
	if err := s.db.Where("key = ?", key).First(&state).Error; err != nil {
		return nil, errors.New("state key not found")
	}
	return &state, nil
}

func (s *StateService) All() ([]models.GlobalState, error) {
	var states []models.GlobalState
	if err := s.db.Order("key ASC").Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// Set overwrites the singleton row for key with a fresh timestamp and
// broadcasts the change. This is the write half of the event channel.
func (s *StateService) Set(key, value string) (*models.GlobalState, error) {
	return s.set(key, value, nil)
}

func (s *StateService) set(key, value string, deltas map[uint]int) (*models.GlobalState, error) {
	state := models.GlobalState{
		Key:         key,
		Value:       value,
		TimeUpdated: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "time_updated"}),
	}).Create(&state).Error
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastState(ws.StateEvent{
		Key:       state.Key,
		Value:     state.Value,
		UpdatedAt: state.TimeUpdated,
		Deltas:    deltas,
	})
	return &state, nil
}

// Pulse sets a value and reverts it after the configured delay. The revert
// is skipped if the row was overwritten in the meantime, judged by its
// timestamp. The database stores time_updated at microsecond precision, so
// the read-back stamp is a rounded copy of ours; only a strictly later
// timestamp counts as an overwrite. Best effort only: a crash during the
// window leaves the value set, same as the revert-by-hand it replaces.
func (s *StateService) Pulse(key, value, revert string, deltas map[uint]int) (*models.GlobalState, error) {
	state, err := s.set(key, value, deltas)
	if err != nil {
		return nil, err
	}

	stamp := state.TimeUpdated
	time.AfterFunc(s.revertDelay, func() {
		current, err := s.Get(key)
		if err != nil {
			log.Printf("state: pulse revert read failed for %s: %v", key, err)
			return
		}
		if current.TimeUpdated.After(stamp) {
			return
		}
		if _, err := s.Set(key, revert); err != nil {
			log.Printf("state: pulse revert failed for %s: %v", key, err)
		}
	})
	return state, nil
}
