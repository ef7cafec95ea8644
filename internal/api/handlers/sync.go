package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	fplsync "github.com/stretford-end/fpl-optimizer/internal/sync"
	"github.com/stretford-end/fpl-optimizer/pkg/cache"
)

// SyncHandler triggers FPL data syncs on demand
type SyncHandler struct {
	sync   *fplsync.Service
	cache  *cache.RecommendationCacheService
	logger *logrus.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService *fplsync.Service, cacheService *cache.RecommendationCacheService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{sync: syncService, cache: cacheService, logger: logger}
}

// TriggerSync runs a full bootstrap plus fixtures sync and invalidates the
// recommendation cache
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	start := time.Now()

	playersSynced, err := h.sync.SyncBootstrap(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Bootstrap sync failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Bootstrap sync failed",
			Code:  "SYNC_ERROR",
			Details: map[string]string{
				"stage": "bootstrap",
			},
		})
		return
	}

	fixturesSynced, err := h.sync.SyncFixtures(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Fixtures sync failed")
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: "Fixtures sync failed",
			Code:  "SYNC_ERROR",
			Details: map[string]string{
				"stage": "fixtures",
			},
		})
		return
	}

	if err := h.cache.FlushRecommendationCache(c.Request.Context()); err != nil {
		h.logger.WithError(err).Warn("Failed to flush recommendation cache after sync")
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "completed",
		"bootstrap_synced": playersSynced,
		"fixtures_synced":  fixturesSynced,
		"elapsed_ms":       time.Since(start).Milliseconds(),
	})
}
