package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/engine"
	"github.com/stretford-end/fpl-optimizer/internal/fpl"
)

// TeamHandler serves a user's current squad state
type TeamHandler struct {
	squads engine.SquadStateProvider
	logger *logrus.Logger
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(squads engine.SquadStateProvider, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{squads: squads, logger: logger}
}

// GetTeam returns the squad, bank and XI for an FPL entry ID
func (h *TeamHandler) GetTeam(c *gin.Context) {
	entryID, err := strconv.Atoi(c.Param("id"))
	if err != nil || entryID < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid entry ID",
			Code:  "INVALID_ENTRY_ID",
		})
		return
	}

	freeTransfers := 1
	if raw := c.Query("free_transfers"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 && v <= 5 {
			freeTransfers = v
		}
	}

	state, err := h.squads.SquadState(c.Request.Context(), entryID, freeTransfers)
	if err != nil {
		if errors.Is(err, fpl.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "FPL entry not found",
				Code:  "ENTRY_NOT_FOUND",
			})
			return
		}
		h.logger.WithError(err).WithField("entry_id", entryID).Error("Failed to load squad state")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Failed to load squad from FPL API",
			Code:  "SQUAD_FETCH_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, state)
}
