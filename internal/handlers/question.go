package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"icebreaker-backend/internal/models"
	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
	storage         *services.StorageService
}

func NewQuestionHandler(questionService *services.QuestionService, storage *services.StorageService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService, storage: storage}
}

// QuestionResponse is the question as shown to players. The stored answer
// never leaves the server; matching happens here.
type QuestionResponse struct {
	ID       uint   `json:"id"`
	Kind     string `json:"kind"`
	Question string `json:"question"`
	Src      string `json:"src,omitempty"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
}

func toQuestionResponse(q *models.Question) QuestionResponse {
	return QuestionResponse{
		ID:       q.ID,
		Kind:     q.Qn.Kind,
		Question: q.Qn.Question,
		Src:      q.Qn.Src,
		Type:     q.Type,
		Points:   q.Points,
	}
}

// ScanRequest carries the raw scanned string. Resolution is
// team-independent; the team only enters the picture on completion.
type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

// Scan godoc
// @Summary      Resolve a scanned QR code to its question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        request body ScanRequest true "Scanned code"
// @Success      200 {object} QuestionResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/scan [post]
func (h *QuestionHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.ResolveCode(req.Code)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toQuestionResponse(question))
}

func (h *QuestionHandler) questionFromParam(c *gin.Context) (*models.Question, bool) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return nil, false
	}

	question, err := h.questionService.GetQuestion(uint(questionID))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	return question, true
}

type AnswerRequest struct {
	TeamID uint   `json:"team_id" binding:"required"`
	Answer string `json:"answer" binding:"required"`
}

type AnswerResponse struct {
	Correct bool `json:"correct"`
	Points  int  `json:"points,omitempty"`
}

// SubmitAnswer godoc
// @Summary      Submit a text answer for an INPUT question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body AnswerRequest true "Candidate answer"
// @Success      200 {object} AnswerResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/answer [post]
func (h *QuestionHandler) SubmitAnswer(c *gin.Context) {
	question, ok := h.questionFromParam(c)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	correct, err := h.questionService.SubmitAnswer(question, req.TeamID, req.Answer)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if !correct {
		c.JSON(http.StatusOK, AnswerResponse{Correct: false})
		return
	}
	c.JSON(http.StatusOK, AnswerResponse{Correct: true, Points: question.Points})
}

type TeamActionRequest struct {
	TeamID uint `json:"team_id" binding:"required"`
}

// CompleteTask godoc
// @Summary      Acknowledge completion of a TASK question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body TeamActionRequest true "Completing team"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/task [post]
func (h *QuestionHandler) CompleteTask(c *gin.Context) {
	question, ok := h.questionFromParam(c)
	if !ok {
		return
	}

	var req TeamActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.questionService.CompleteTask(question, req.TeamID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "task completed"})
}

// ClaimTemptation godoc
// @Summary      Claim a temptation question
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        request body TeamActionRequest true "Claiming team"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/claim [post]
func (h *QuestionHandler) ClaimTemptation(c *gin.Context) {
	question, ok := h.questionFromParam(c)
	if !ok {
		return
	}

	var req TeamActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.questionService.ClaimTemptation(question, req.TeamID); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "treasure claimed"})
}

// UploadFiles godoc
// @Summary      Complete a FILE question by uploading photos
// @Tags         questions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "Question ID"
// @Param        team_id formData int true "Completing team"
// @Param        files formData file true "Uploaded files"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/questions/{id}/files [post]
func (h *QuestionHandler) UploadFiles(c *gin.Context) {
	question, ok := h.questionFromParam(c)
	if !ok {
		return
	}

	teamID, err := strconv.ParseUint(c.PostForm("team_id"), 10, 64)
	if err != nil || teamID == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid team id"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "at least one file is required"})
		return
	}

	var urls []string
	for _, file := range files {
		objectPath := h.storage.ObjectPath(question.Qn.Src, uint(teamID), question.ID, file.Filename)
		dst, err := h.storage.DiskPath(objectPath)
		if err != nil {
			log.Printf("upload: mkdir failed: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save file"})
			return
		}
		if err := c.SaveUploadedFile(file, dst); err != nil {
			log.Printf("upload: save failed: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save file"})
			return
		}
		urls = append(urls, h.storage.PublicURL(objectPath))
	}

	if err := h.questionService.CompleteWithFiles(question, uint(teamID), urls); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "files uploaded", "files": urls, "points": question.Points})
}
