package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"icebreaker-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateQuestionRequest struct {
	Kind     string `json:"kind" binding:"required"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
	Src      string `json:"src"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
}

// CreateQuestion godoc
// @Summary      Add a question to the bank
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateQuestionRequest true "Question data"
// @Success      201 {object} Question
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(services.QuestionInput{
		Kind:     req.Kind,
		Question: req.Question,
		Answer:   req.Answer,
		Src:      req.Src,
		Type:     req.Type,
		Points:   req.Points,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// ListQuestions godoc
// @Summary      List the full question bank (answers included)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Question
// @Router       /api/v1/admin/questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list questions"})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// DeleteQuestion godoc
// @Summary      Delete a question
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Question ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id"})
		return
	}

	if err := h.questionService.DeleteQuestion(uint(questionID)); err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to delete question"})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "question deleted"})
}
