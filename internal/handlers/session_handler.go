package handlers

import (
	"github.com/gofiber/fiber/v2"

	"interview-analyzer/internal/models"
	"interview-analyzer/internal/services"
)

type SessionHandler struct {
	session *services.AnalysisSession
}

func NewSessionHandler(session *services.AnalysisSession) *SessionHandler {
	return &SessionHandler{
		session: session,
	}
}

// HandleGetAnalysis handles GET /analysis
func (h *SessionHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	snap := h.session.Snapshot()

	response := models.SessionResponse{
		State: string(snap.State),
	}

	if snap.State != models.StateIdle {
		response.ID = snap.ID.String()
	}
	if snap.State == models.StateSucceeded {
		response.Analysis = snap.Report
	}
	if snap.State == models.StateFailed {
		response.Error = snap.Err
	}

	return c.JSON(response)
}

// HandleReset handles DELETE /analysis. Resetting does not abort an
// in-flight call; its result is discarded when it lands.
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	h.session.Reset()

	return c.JSON(fiber.Map{
		"message": "analysis state cleared",
	})
}
