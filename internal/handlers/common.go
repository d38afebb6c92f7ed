package handlers

import "icebreaker-backend/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Team = models.Team
type Question = models.Question
type ScoreEntry = models.ScoreEntry
type GlobalState = models.GlobalState
