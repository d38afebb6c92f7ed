package services

import (
	"errors"
	"fmt"
	"strings"

	"icebreaker-backend/internal/models"

	"gorm.io/gorm"
)

// CodePrefix is the expected prefix of every scanned code.
const CodePrefix = "zocampbanfoo"

// Question 30's answer is checked by containment instead of exact match.
const containsMatchQuestionID = 30

var (
	ErrInvalidCode      = errors.New("invalid code")
	ErrQuestionNotFound = errors.New("question not found")
)

// ParseCode validates a raw scanned string of the form
// "zocampbanfoo_<id>" and returns the lookup id. Segments after the id are
// ignored.
func ParseCode(raw string) (string, error) {
	if raw == "" {
		return "", ErrInvalidCode
	}
	parts := strings.Split(raw, "_")
	if parts[0] != CodePrefix || len(parts) < 2 || parts[1] == "" {
		return "", ErrInvalidCode
	}
	return parts[1], nil
}

// AnswerMatches applies the INPUT answer policy: trim both sides, compare
// case-insensitively; the containment question accepts any answer that
// contains the stored one.
func AnswerMatches(q *models.Question, candidate string) bool {
	got := strings.TrimSpace(candidate)
	want := strings.TrimSpace(q.Qn.Answer)

	if q.ID == containsMatchQuestionID {
		return strings.Contains(got, want)
	}
	return strings.EqualFold(got, want)
}

type QuestionService struct {
	db     *gorm.DB
	scores *ScoreService
}

func NewQuestionService(db *gorm.DB, scores *ScoreService) *QuestionService {
	return &QuestionService{db: db, scores: scores}
}

// ResolveCode maps a scanned code to its question record.
func (s *QuestionService) ResolveCode(raw string) (*models.Question, error) {
	suffix, err := ParseCode(raw)
	if err != nil {
		return nil, err
	}

	var question models.Question
	if err := s.db.Where("id = ?", suffix).First(&question).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	return &question, nil
}

func (s *QuestionService) GetQuestion(id uint) (*models.Question, error) {
	var question models.Question
	if err := s.db.First(&question, id).Error; err != nil {
		return nil, ErrQuestionNotFound
	}
	return &question, nil
}

// Complete logs the completion and appends the question's points to the
// team's ledger. Flavor questions go through here too; their points may be
// zero. Nothing guards against a repeat completion of the same question.
func (s *QuestionService) Complete(q *models.Question, teamID uint, files []string) error {
	entry := models.CompletionLog{
		TeamID:     teamID,
		QuestionID: q.ID,
		Files:      files,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return err
	}

	_, err := s.scores.AddEntry(teamID, q.Points, fmt.Sprintf("Question %d", q.ID), false)
	return err
}

// SubmitAnswer applies the INPUT policy. A wrong answer mutates nothing; the
// caller may retry indefinitely.
func (s *QuestionService) SubmitAnswer(q *models.Question, teamID uint, answer string) (bool, error) {
	if q.Qn.Kind != models.QuestionKindInput {
		return false, errors.New("question does not take a text answer")
	}
	if !AnswerMatches(q, answer) {
		return false, nil
	}
	if err := s.Complete(q, teamID, nil); err != nil {
		return false, err
	}
	return true, nil
}

// CompleteTask applies the acknowledge-only policy.
func (s *QuestionService) CompleteTask(q *models.Question, teamID uint) error {
	if q.Qn.Kind != models.QuestionKindTask {
		return errors.New("question is not a task")
	}
	return s.Complete(q, teamID, nil)
}

// ClaimTemptation applies the temptation claim policy.
func (s *QuestionService) ClaimTemptation(q *models.Question, teamID uint) error {
	if q.Type != models.RewardTemptation {
		return errors.New("question is not a temptation")
	}
	return s.Complete(q, teamID, nil)
}

// CompleteWithFiles applies the FILE policy; urls are the stored upload
// locations, at least one is required.
func (s *QuestionService) CompleteWithFiles(q *models.Question, teamID uint, urls []string) error {
	if q.Qn.Kind != models.QuestionKindFile {
		return errors.New("question does not take file uploads")
	}
	if len(urls) == 0 {
		return errors.New("at least one file is required")
	}
	return s.Complete(q, teamID, urls)
}

// Admin question management.

type QuestionInput struct {
	Kind     string `json:"kind"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Src      string `json:"src"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
}

func (s *QuestionService) CreateQuestion(input QuestionInput) (*models.Question, error) {
	switch input.Kind {
	case models.QuestionKindInput, models.QuestionKindFile, models.QuestionKindGift, models.QuestionKindTask:
	default:
		return nil, errors.New("unknown question kind")
	}
	if input.Type == "" {
		input.Type = models.RewardNormal
	}

	question := models.Question{
		Qn: models.QuestionPayload{
			Kind:     input.Kind,
			Question: input.Question,
			Answer:   input.Answer,
			Src:      input.Src,
		},
		Type:   input.Type,
		Points: input.Points,
	}
	if err := s.db.Create(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (s *QuestionService) ListQuestions() ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.Order("id ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	result := s.db.Delete(&models.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}
