// Package providers adapts persisted and upstream FPL data into the
// engine's snapshot and squad-state inputs.
package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/engine"
	"github.com/stretford-end/fpl-optimizer/internal/models"
	"github.com/stretford-end/fpl-optimizer/pkg/database"
)

// DBSnapshotProvider builds engine snapshots from the synced database. The
// fixture context covers the next Horizon gameweeks starting at the upcoming
// one.
type DBSnapshotProvider struct {
	db      *database.DB
	horizon int
	logger  *logrus.Logger
}

// NewDBSnapshotProvider creates a snapshot provider over the synced tables.
func NewDBSnapshotProvider(db *database.DB, horizon int, logger *logrus.Logger) *DBSnapshotProvider {
	return &DBSnapshotProvider{db: db, horizon: horizon, logger: logger}
}

// Snapshot loads the full player pool and computes per-club mean fixture
// difficulty over the upcoming horizon.
func (p *DBSnapshotProvider) Snapshot(ctx context.Context) (*engine.Snapshot, error) {
	var players []models.Player
	if err := p.db.WithContext(ctx).Find(&players).Error; err != nil {
		return nil, fmt.Errorf("failed to load player pool: %w", err)
	}

	pool := make([]engine.Player, 0, len(players))
	for _, m := range players {
		pool = append(pool, MapPlayer(m))
	}

	fixtures, err := p.upcomingFixtures(ctx)
	if err != nil {
		return nil, err
	}

	snap := &engine.Snapshot{
		Players:  pool,
		Fixtures: BuildFixtureContext(fixtures, p.horizon),
		TakenAt:  time.Now().UTC(),
	}

	p.logger.WithFields(logrus.Fields{
		"pool_size": len(pool),
		"fixtures":  len(fixtures),
		"horizon":   p.horizon,
	}).Debug("Snapshot built")

	return snap, nil
}

func (p *DBSnapshotProvider) upcomingFixtures(ctx context.Context) ([]models.Fixture, error) {
	var next models.Gameweek
	err := p.db.WithContext(ctx).Where("is_next = ?", true).First(&next).Error
	if err != nil {
		// End of season or stale sync: no upcoming gameweek, so every club
		// falls back to neutral difficulty.
		p.logger.Warn("No upcoming gameweek found; fixture context will be neutral")
		return nil, nil
	}

	var fixtures []models.Fixture
	err = p.db.WithContext(ctx).
		Where("event >= ? AND event < ? AND finished = ?", next.ID, next.ID+p.horizon, false).
		Find(&fixtures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load upcoming fixtures: %w", err)
	}
	return fixtures, nil
}

// MapPlayer converts a persisted player into the engine's pool record.
func MapPlayer(m models.Player) engine.Player {
	return engine.Player{
		ID:              m.ID,
		Name:            m.WebName,
		Position:        engine.ParsePosition(m.Position),
		ClubID:          m.ClubID,
		Club:            m.ClubName,
		Cost:            m.NowCost,
		TotalPoints:     m.TotalPoints,
		PointsPerGame:   m.PointsPerGame,
		Form:            m.Form,
		Minutes:         m.Minutes,
		Availability:    engine.ParseAvailability(m.Status),
		ChanceOfPlaying: float64(m.ChanceOfPlaying) / 100.0,
		SelectedBy:      m.SelectedByPercent,
	}
}

// BuildFixtureContext averages each club's fixture difficulty over the given
// horizon. Each fixture contributes the home side's difficulty to the home
// club and the away side's to the away club.
func BuildFixtureContext(fixtures []models.Fixture, horizon int) engine.FixtureContext {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, f := range fixtures {
		sums[f.HomeClubID] += float64(f.HomeDifficulty)
		counts[f.HomeClubID]++
		sums[f.AwayClubID] += float64(f.AwayDifficulty)
		counts[f.AwayClubID]++
	}

	difficulty := make(map[int]float64, len(sums))
	for clubID, sum := range sums {
		difficulty[clubID] = sum / float64(counts[clubID])
	}

	return engine.FixtureContext{
		Horizon:    horizon,
		Difficulty: difficulty,
	}
}
