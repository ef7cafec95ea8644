// Package models holds the persisted snapshot of FPL data.
package models

import (
	"time"
)

// Player stores one player record from the bootstrap-static sync.
type Player struct {
	ID                int       `gorm:"primaryKey" json:"id"`
	WebName           string    `gorm:"not null;index" json:"web_name"`
	FirstName         string    `json:"first_name"`
	SecondName        string    `json:"second_name"`
	Position          int       `gorm:"not null" json:"position"` // 1=GK, 2=DEF, 3=MID, 4=FWD
	ClubID            int       `gorm:"not null;index" json:"club_id"`
	ClubName          string    `gorm:"not null" json:"club_name"`
	NowCost           int       `gorm:"not null" json:"now_cost"` // tenths (85 = £8.5m)
	TotalPoints       int       `gorm:"default:0" json:"total_points"`
	PointsPerGame     float64   `gorm:"default:0" json:"points_per_game"`
	Form              float64   `gorm:"default:0" json:"form"`
	SelectedByPercent float64   `gorm:"default:0" json:"selected_by_percent"`
	Minutes           int       `gorm:"default:0" json:"minutes"`
	GoalsScored       int       `gorm:"default:0" json:"goals_scored"`
	Assists           int       `gorm:"default:0" json:"assists"`
	CleanSheets       int       `gorm:"default:0" json:"clean_sheets"`
	Bonus             int       `gorm:"default:0" json:"bonus"`
	Influence         float64   `gorm:"default:0" json:"influence"`
	Creativity        float64   `gorm:"default:0" json:"creativity"`
	Threat            float64   `gorm:"default:0" json:"threat"`
	ICTIndex          float64   `gorm:"default:0" json:"ict_index"`
	Status            string    `gorm:"default:'a'" json:"status"` // a/d/i/s/u/n
	ChanceOfPlaying   int       `gorm:"default:100" json:"chance_of_playing"`
	LastUpdated       time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// Club stores one Premier League club with its strength ratings.
type Club struct {
	ID                  int       `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	ShortName           string    `gorm:"not null" json:"short_name"`
	Code                int       `gorm:"uniqueIndex" json:"code"`
	Strength            int       `gorm:"default:0" json:"strength"`
	StrengthOverallHome int       `gorm:"default:0" json:"strength_overall_home"`
	StrengthOverallAway int       `gorm:"default:0" json:"strength_overall_away"`
	StrengthAttackHome  int       `gorm:"default:0" json:"strength_attack_home"`
	StrengthAttackAway  int       `gorm:"default:0" json:"strength_attack_away"`
	StrengthDefenceHome int       `gorm:"default:0" json:"strength_defence_home"`
	StrengthDefenceAway int       `gorm:"default:0" json:"strength_defence_away"`
	LastUpdated         time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// Gameweek stores one event from the bootstrap sync.
type Gameweek struct {
	ID           int        `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	DeadlineTime *time.Time `json:"deadline_time"`
	IsCurrent    bool       `gorm:"default:false" json:"is_current"`
	IsNext       bool       `gorm:"default:false" json:"is_next"`
	IsPrevious   bool       `gorm:"default:false" json:"is_previous"`
	Finished     bool       `gorm:"default:false" json:"finished"`
	LastUpdated  time.Time  `gorm:"autoUpdateTime" json:"last_updated"`
}

// Fixture stores one scheduled match with per-side difficulty ratings,
// used to build the fixture-difficulty context for valuation.
type Fixture struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Code            int       `gorm:"index" json:"code"`
	Event           int       `gorm:"index" json:"event"`
	Finished        bool      `gorm:"default:false" json:"finished"`
	HomeClubID      int       `gorm:"not null" json:"home_club_id"`
	AwayClubID      int       `gorm:"not null" json:"away_club_id"`
	HomeDifficulty  int       `gorm:"default:3" json:"home_difficulty"`
	AwayDifficulty  int       `gorm:"default:3" json:"away_difficulty"`
	LastUpdated     time.Time `gorm:"autoUpdateTime" json:"last_updated"`
}

// SyncMetadata tracks the outcome of each sync type against the FPL API.
type SyncMetadata struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SyncType       string    `gorm:"not null;uniqueIndex" json:"sync_type"` // "bootstrap", "fixtures"
	LastSyncTime   time.Time `gorm:"not null" json:"last_sync_time"`
	LastSyncStatus string    `gorm:"not null" json:"last_sync_status"` // "success", "failed"
	ErrorMessage   string    `json:"error_message"`
	RecordsSynced  int       `gorm:"default:0" json:"records_synced"`
}
