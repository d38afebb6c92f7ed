package services

import (
	"errors"

	"icebreaker-backend/internal/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

func (s *TeamService) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	if err := s.db.Order("team_name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamService) GetTeam(id uint) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, id).Error; err != nil {
		return nil, errors.New("team not found")
	}
	return &team, nil
}

func (s *TeamService) CreateTeam(name, color string) (*models.Team, error) {
	var existing models.Team
	if err := s.db.Where("team_name = ?", name).First(&existing).Error; err == nil {
		return nil, errors.New("team name already taken")
	}

	team := models.Team{TeamName: name, Color: color}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}
