package services

import (
	"encoding/json"
	"errors"

	"icebreaker-backend/internal/models"

	"gorm.io/gorm"
)

// GameEventService implements the admin-triggered global events. Every
// effect is applied as compensating ledger rows plus one state-row flip, so
// history stays append-only and clients learn the exact deltas from the
// broadcast instead of inferring them.
type GameEventService struct {
	db     *gorm.DB
	scores *ScoreService
	state  *StateService
}

func NewGameEventService(db *gorm.DB, scores *ScoreService, state *StateService) *GameEventService {
	return &GameEventService{db: db, scores: scores, state: state}
}

// DisasterDeltas halves every team's gold, flooring, with the basis clamped
// at zero. Teams at zero or negative gold lose nothing and get no entry.
func DisasterDeltas(totals map[uint]int) map[uint]int {
	deltas := make(map[uint]int)
	for teamID, gold := range totals {
		if gold < 0 {
			gold = 0
		}
		lost := gold / 2
		if lost > 0 {
			deltas[teamID] = -lost
		}
	}
	return deltas
}

// WorldPeaceDeltas doubles every team's gold, with the basis clamped at
// zero. Teams at zero or negative gold gain nothing and get no entry.
func WorldPeaceDeltas(totals map[uint]int) map[uint]int {
	deltas := make(map[uint]int)
	for teamID, gold := range totals {
		if gold > 0 {
			deltas[teamID] = gold
		}
	}
	return deltas
}

func (s *GameEventService) applyDeltas(deltas map[uint]int, remarks string) error {
	for teamID, delta := range deltas {
		if _, err := s.scores.AddEntry(teamID, delta, remarks, true); err != nil {
			return err
		}
	}
	return nil
}

// TriggerNaturalDisaster inserts the loss entries and pulses the
// naturalDisaster flag with the applied deltas attached.
func (s *GameEventService) TriggerNaturalDisaster() (map[uint]int, error) {
	totals, err := s.scores.TotalsByTeam()
	if err != nil {
		return nil, err
	}

	deltas := DisasterDeltas(totals)
	if err := s.applyDeltas(deltas, "Natural Disaster"); err != nil {
		return nil, err
	}

	if _, err := s.state.Pulse(models.StateKeyNaturalDisaster, "true", "false", deltas); err != nil {
		return nil, err
	}
	return deltas, nil
}

// TriggerWorldPeace inserts the doubling entries and pulses the worldPeace
// flag with the applied deltas attached.
func (s *GameEventService) TriggerWorldPeace() (map[uint]int, error) {
	totals, err := s.scores.TotalsByTeam()
	if err != nil {
		return nil, err
	}

	deltas := WorldPeaceDeltas(totals)
	if err := s.applyDeltas(deltas, "World Peace"); err != nil {
		return nil, err
	}

	if _, err := s.state.Pulse(models.StateKeyWorldPeace, "true", "false", deltas); err != nil {
		return nil, err
	}
	return deltas, nil
}

// AidRound is the JSON value stored under the disasterAid key while a
// donation round is open.
type AidRound struct {
	Active bool `json:"active"`
	Goal   int  `json:"goal"`
}

// StartDisasterAid opens a donation round towards a gold goal.
func (s *GameEventService) StartDisasterAid(goal int) (*AidRound, error) {
	if goal <= 0 {
		return nil, errors.New("goal must be positive")
	}

	round := AidRound{Active: true, Goal: goal}
	value, err := json.Marshal(round)
	if err != nil {
		return nil, err
	}
	if _, err := s.state.Set(models.StateKeyDisasterAid, string(value)); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *GameEventService) currentAidRound() (*AidRound, error) {
	state, err := s.state.Get(models.StateKeyDisasterAid)
	if err != nil {
		return nil, err
	}

	var round AidRound
	if err := json.Unmarshal([]byte(state.Value), &round); err != nil || !round.Active {
		return nil, errors.New("no disaster aid round is active")
	}
	return &round, nil
}

// Donate moves gold from a team into the aid pool while a round is open.
// The amount is bounded by the team's current gold so a donation can never
// push a team negative.
func (s *GameEventService) Donate(teamID uint, amount int) (*models.ScoreEntry, error) {
	if amount <= 0 {
		return nil, errors.New("donation must be positive")
	}
	if _, err := s.currentAidRound(); err != nil {
		return nil, err
	}

	gold, err := s.scores.TeamTotal(teamID)
	if err != nil {
		return nil, err
	}
	if amount > gold {
		return nil, errors.New("donation exceeds current gold")
	}

	return s.scores.AddEntry(teamID, -amount, "Disaster Aid", false)
}

// AidPool sums all donations of the game so far.
func (s *GameEventService) AidPool() (int, error) {
	var entries []models.ScoreEntry
	if err := s.db.Where("remarks = ?", "Disaster Aid").Find(&entries).Error; err != nil {
		return 0, err
	}
	return -SumDeltas(entries), nil
}

// EndDisasterAid closes the round and reports the pool collected.
func (s *GameEventService) EndDisasterAid() (int, error) {
	if _, err := s.currentAidRound(); err != nil {
		return 0, err
	}
	if _, err := s.state.Set(models.StateKeyDisasterAid, "false"); err != nil {
		return 0, err
	}
	return s.AidPool()
}

// ThiefEvent is the JSON value pulsed under the thief key.
type ThiefEvent struct {
	VictimTeamID      uint `json:"victim_team_id"`
	BeneficiaryTeamID uint `json:"beneficiary_team_id"`
	Amount            int  `json:"amount"`
}

// TriggerThief moves a bounded amount of gold from the victim to the
// beneficiary as a compensating entry pair. The amount is capped at the
// victim's current gold, clamped at zero; a broke victim yields nothing.
func (s *GameEventService) TriggerThief(victimID, beneficiaryID uint, amount int) (*ThiefEvent, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if victimID == beneficiaryID {
		return nil, errors.New("victim and beneficiary must differ")
	}

	gold, err := s.scores.TeamTotal(victimID)
	if err != nil {
		return nil, err
	}
	if gold < 0 {
		gold = 0
	}
	if amount > gold {
		amount = gold
	}
	if amount == 0 {
		return nil, errors.New("victim has no gold to steal")
	}

	if _, err := s.scores.AddEntry(victimID, -amount, "Thief", true); err != nil {
		return nil, err
	}
	if _, err := s.scores.AddEntry(beneficiaryID, amount, "Thief", true); err != nil {
		return nil, err
	}

	event := ThiefEvent{VictimTeamID: victimID, BeneficiaryTeamID: beneficiaryID, Amount: amount}
	value, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	deltas := map[uint]int{victimID: -amount, beneficiaryID: amount}
	if _, err := s.state.Pulse(models.StateKeyThief, string(value), "false", deltas); err != nil {
		return nil, err
	}
	return &event, nil
}

// ToggleFreeze flips the freeze flag and returns the new state. The fresh
// time_updated doubles as the leaderboard snapshot moment.
func (s *GameEventService) ToggleFreeze() (*models.GlobalState, error) {
	current, err := s.state.Get(models.StateKeyFreeze)
	if err != nil {
		return nil, err
	}

	next := "true"
	if current.BoolValue() {
		next = "false"
	}
	return s.state.Set(models.StateKeyFreeze, next)
}
