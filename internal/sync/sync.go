// Package sync mirrors FPL API data into the local database.
package sync

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm/clause"

	"github.com/stretford-end/fpl-optimizer/internal/fpl"
	"github.com/stretford-end/fpl-optimizer/internal/models"
	"github.com/stretford-end/fpl-optimizer/pkg/database"
)

const (
	TypeBootstrap = "bootstrap"
	TypeFixtures  = "fixtures"

	statusSuccess = "success"
	statusFailed  = "failed"
)

// Service synchronizes bootstrap and fixture data from the FPL API into the
// database, recording the outcome of each run in SyncMetadata.
type Service struct {
	db     *database.DB
	client *fpl.Client
	logger *logrus.Logger
}

// NewService creates a sync service.
func NewService(db *database.DB, client *fpl.Client, logger *logrus.Logger) *Service {
	return &Service{db: db, client: client, logger: logger}
}

// SyncBootstrap fetches bootstrap-static and upserts clubs, players and
// gameweeks. Returns the number of records synced.
func (s *Service) SyncBootstrap(ctx context.Context) (int, error) {
	log := s.logger.WithField("sync_type", TypeBootstrap)
	log.Info("Starting bootstrap data sync")

	bootstrap, err := s.client.Bootstrap(ctx)
	if err != nil {
		s.recordSync(TypeBootstrap, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to fetch bootstrap data: %w", err)
	}

	clubNames := make(map[int]string, len(bootstrap.Teams))
	clubs := make([]models.Club, 0, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		clubNames[t.ID] = t.ShortName
		clubs = append(clubs, MapTeam(t))
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&clubs).Error; err != nil {
		s.recordSync(TypeBootstrap, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to upsert clubs: %w", err)
	}

	players := make([]models.Player, 0, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		players = append(players, MapElement(e, clubNames))
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&players, 200).Error; err != nil {
		s.recordSync(TypeBootstrap, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to upsert players: %w", err)
	}

	gameweeks := make([]models.Gameweek, 0, len(bootstrap.Events))
	for _, e := range bootstrap.Events {
		gameweeks = append(gameweeks, MapEvent(e))
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&gameweeks).Error; err != nil {
		s.recordSync(TypeBootstrap, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to upsert gameweeks: %w", err)
	}

	synced := len(clubs) + len(players) + len(gameweeks)
	s.recordSync(TypeBootstrap, statusSuccess, synced, nil)

	log.WithFields(logrus.Fields{
		"clubs":     len(clubs),
		"players":   len(players),
		"gameweeks": len(gameweeks),
	}).Info("Bootstrap data sync completed")

	return synced, nil
}

// SyncFixtures fetches the full fixture list and upserts it.
func (s *Service) SyncFixtures(ctx context.Context) (int, error) {
	log := s.logger.WithField("sync_type", TypeFixtures)
	log.Info("Starting fixtures sync")

	raw, err := s.client.Fixtures(ctx, 0)
	if err != nil {
		s.recordSync(TypeFixtures, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	fixtures := make([]models.Fixture, 0, len(raw))
	for _, f := range raw {
		if f.Event == 0 {
			// Unscheduled fixtures have no gameweek yet.
			continue
		}
		fixtures = append(fixtures, MapFixture(f))
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(&fixtures, 200).Error; err != nil {
		s.recordSync(TypeFixtures, statusFailed, 0, err)
		return 0, fmt.Errorf("failed to upsert fixtures: %w", err)
	}

	s.recordSync(TypeFixtures, statusSuccess, len(fixtures), nil)
	log.WithField("fixtures", len(fixtures)).Info("Fixtures sync completed")

	return len(fixtures), nil
}

// ShouldSync reports whether the given sync type is stale. Never-synced data
// is always stale.
func (s *Service) ShouldSync(syncType string, maxAge time.Duration) bool {
	var meta models.SyncMetadata
	err := s.db.Where("sync_type = ? AND last_sync_status = ?", syncType, statusSuccess).First(&meta).Error
	if err != nil {
		return true
	}
	return time.Since(meta.LastSyncTime) >= maxAge
}

func (s *Service) recordSync(syncType, status string, records int, syncErr error) {
	meta := models.SyncMetadata{
		SyncType:       syncType,
		LastSyncTime:   time.Now().UTC(),
		LastSyncStatus: status,
		RecordsSynced:  records,
	}
	if syncErr != nil {
		meta.ErrorMessage = syncErr.Error()
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sync_type"}},
		UpdateAll: true,
	}).Create(&meta).Error
	if err != nil {
		s.logger.WithError(err).Warn("Failed to record sync metadata")
	}
}

// MapElement converts an API player record into the persisted model.
func MapElement(e fpl.Element, clubNames map[int]string) models.Player {
	chance := 100
	if e.ChanceOfPlayingNextRound != nil {
		chance = *e.ChanceOfPlayingNextRound
	}
	clubName := clubNames[e.Team]
	if clubName == "" {
		clubName = "Unknown"
	}
	return models.Player{
		ID:                e.ID,
		WebName:           e.WebName,
		FirstName:         e.FirstName,
		SecondName:        e.SecondName,
		Position:          e.ElementType,
		ClubID:            e.Team,
		ClubName:          clubName,
		NowCost:           e.NowCost,
		TotalPoints:       e.TotalPoints,
		PointsPerGame:     parseFloat(e.PointsPerGame),
		Form:              parseFloat(e.Form),
		SelectedByPercent: parseFloat(e.SelectedByPercent),
		Minutes:           e.Minutes,
		GoalsScored:       e.GoalsScored,
		Assists:           e.Assists,
		CleanSheets:       e.CleanSheets,
		Bonus:             e.Bonus,
		Influence:         parseFloat(e.Influence),
		Creativity:        parseFloat(e.Creativity),
		Threat:            parseFloat(e.Threat),
		ICTIndex:          parseFloat(e.ICTIndex),
		Status:            e.Status,
		ChanceOfPlaying:   chance,
	}
}

// MapTeam converts an API club record into the persisted model.
func MapTeam(t fpl.Team) models.Club {
	return models.Club{
		ID:                  t.ID,
		Name:                t.Name,
		ShortName:           t.ShortName,
		Code:                t.Code,
		Strength:            t.Strength,
		StrengthOverallHome: t.StrengthOverallHome,
		StrengthOverallAway: t.StrengthOverallAway,
		StrengthAttackHome:  t.StrengthAttackHome,
		StrengthAttackAway:  t.StrengthAttackAway,
		StrengthDefenceHome: t.StrengthDefenceHome,
		StrengthDefenceAway: t.StrengthDefenceAway,
	}
}

// MapEvent converts an API gameweek record into the persisted model.
func MapEvent(e fpl.Event) models.Gameweek {
	gw := models.Gameweek{
		ID:         e.ID,
		Name:       e.Name,
		IsCurrent:  e.IsCurrent,
		IsNext:     e.IsNext,
		IsPrevious: e.IsPrevious,
		Finished:   e.Finished,
	}
	if e.DeadlineTime != "" {
		if t, err := time.Parse(time.RFC3339, e.DeadlineTime); err == nil {
			gw.DeadlineTime = &t
		}
	}
	return gw
}

// MapFixture converts an API fixture record into the persisted model.
func MapFixture(f fpl.Fixture) models.Fixture {
	return models.Fixture{
		ID:             f.ID,
		Code:           f.Code,
		Event:          f.Event,
		Finished:       f.Finished,
		HomeClubID:     f.TeamH,
		AwayClubID:     f.TeamA,
		HomeDifficulty: f.TeamHDifficulty,
		AwayDifficulty: f.TeamADifficulty,
	}
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
