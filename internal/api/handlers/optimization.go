package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/engine"
	"github.com/stretford-end/fpl-optimizer/internal/fpl"
	fplsync "github.com/stretford-end/fpl-optimizer/internal/sync"
	"github.com/stretford-end/fpl-optimizer/pkg/cache"
	"github.com/stretford-end/fpl-optimizer/pkg/config"
)

// OptimizationRequest is the body for POST /api/v1/optimize. FreeTransfers
// is supplied by the caller because the upstream API does not expose it.
type OptimizationRequest struct {
	EntryID       int  `json:"entry_id" binding:"required,min=1"`
	FreeTransfers *int `json:"free_transfers" binding:"omitempty,min=0,max=5"`
}

// OptimizationHandler handles transfer recommendation requests
type OptimizationHandler struct {
	engine    *engine.Engine
	snapshots engine.SnapshotProvider
	squads    engine.SquadStateProvider
	cache     *cache.RecommendationCacheService
	sync      *fplsync.Service
	config    *config.Config
	logger    *logrus.Logger
}

// NewOptimizationHandler creates a new optimization handler
func NewOptimizationHandler(
	eng *engine.Engine,
	snapshots engine.SnapshotProvider,
	squads engine.SquadStateProvider,
	cacheService *cache.RecommendationCacheService,
	syncService *fplsync.Service,
	cfg *config.Config,
	logger *logrus.Logger,
) *OptimizationHandler {
	return &OptimizationHandler{
		engine:    eng,
		snapshots: snapshots,
		squads:    squads,
		cache:     cacheService,
		sync:      syncService,
		config:    cfg,
		logger:    logger,
	}
}

// Optimize handles transfer recommendation requests
func (h *OptimizationHandler) Optimize(c *gin.Context) {
	var req OptimizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request format",
			Code:  "INVALID_REQUEST",
			Details: map[string]string{
				"validation_error": err.Error(),
			},
		})
		return
	}

	freeTransfers := 1
	if req.FreeTransfers != nil {
		freeTransfers = *req.FreeTransfers
	}

	cacheKey := cache.Key(req.EntryID, freeTransfers)
	if cached, err := h.cache.GetRecommendation(c.Request.Context(), cacheKey); err == nil && cached != nil {
		h.logger.WithField("cache_key", cacheKey).Info("Returning cached recommendation")
		c.JSON(http.StatusOK, cached)
		return
	}

	h.ensureFreshData(c.Request.Context())

	snap, err := h.snapshots.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build player snapshot")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to load player data",
			Code:  "SNAPSHOT_ERROR",
		})
		return
	}

	state, err := h.squads.SquadState(c.Request.Context(), req.EntryID, freeTransfers)
	if err != nil {
		if errors.Is(err, fpl.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "FPL entry not found",
				Code:  "ENTRY_NOT_FOUND",
			})
			return
		}
		h.logger.WithError(err).WithField("entry_id", req.EntryID).Error("Failed to load squad state")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Failed to load squad from FPL API",
			Code:  "SQUAD_FETCH_ERROR",
		})
		return
	}

	searchCtx, cancel := context.WithTimeout(c.Request.Context(), h.config.SearchTimeout)
	defer cancel()

	result, err := h.engine.Recommend(searchCtx, snap, *state)
	if err != nil {
		var invalidErr *engine.InvalidSquadError
		if errors.As(err, &invalidErr) {
			violations := make([]string, len(invalidErr.Violations))
			for i, v := range invalidErr.Violations {
				violations[i] = string(v)
			}
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
				Error: "Current squad violates league rules",
				Code:  "INVALID_SQUAD",
				Details: map[string]string{
					"violations": strings.Join(violations, ","),
				},
			})
			return
		}
		var dataErr *engine.InsufficientDataError
		if errors.As(err, &dataErr) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error: "Player data is incomplete; try again after a sync",
				Code:  "INSUFFICIENT_DATA",
				Details: map[string]string{
					"reason": dataErr.Reason,
				},
			})
			return
		}
		h.logger.WithError(err).Error("Optimization failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Optimization failed",
			Code:  "OPTIMIZATION_ERROR",
		})
		return
	}

	if err := h.cache.SetRecommendation(c.Request.Context(), cacheKey, result, h.config.ResultCacheTTL); err != nil {
		h.logger.WithError(err).Warn("Failed to cache recommendation result")
	}

	c.JSON(http.StatusOK, result)
}

// ensureFreshData re-syncs stale bootstrap or fixture data before
// recommending. Sync failures are logged and the request proceeds on the
// existing data.
func (h *OptimizationHandler) ensureFreshData(ctx context.Context) {
	if h.sync.ShouldSync(fplsync.TypeBootstrap, h.config.SyncMaxAge) {
		if _, err := h.sync.SyncBootstrap(ctx); err != nil {
			h.logger.WithError(err).Warn("Bootstrap refresh failed; using existing data")
		}
	}
	if h.sync.ShouldSync(fplsync.TypeFixtures, h.config.SyncMaxAge) {
		if _, err := h.sync.SyncFixtures(ctx); err != nil {
			h.logger.WithError(err).Warn("Fixtures refresh failed; using existing data")
		}
	}
}
