package providers

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/internal/engine"
	"github.com/stretford-end/fpl-optimizer/internal/fpl"
	"github.com/stretford-end/fpl-optimizer/internal/models"
	"github.com/stretford-end/fpl-optimizer/pkg/database"
)

// APISquadProvider builds squad state from the FPL API (entry profile and
// current picks) with player details resolved from the synced database. The
// API does not expose the free-transfer count, so the caller supplies it.
type APISquadProvider struct {
	client *fpl.Client
	db     *database.DB
	logger *logrus.Logger
}

// NewAPISquadProvider creates a squad-state provider.
func NewAPISquadProvider(client *fpl.Client, db *database.DB, logger *logrus.Logger) *APISquadProvider {
	return &APISquadProvider{client: client, db: db, logger: logger}
}

// SquadState fetches the entry's current 15-player squad and bank balance.
func (p *APISquadProvider) SquadState(ctx context.Context, entryID, freeTransfers int) (*engine.SquadState, error) {
	entry, err := p.client.Entry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry %d: %w", entryID, err)
	}
	if entry.CurrentEvent == 0 {
		return nil, fmt.Errorf("entry %d has no current gameweek", entryID)
	}

	picks, err := p.client.EntryPicks(ctx, entryID, entry.CurrentEvent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch picks for entry %d: %w", entryID, err)
	}

	squad, err := p.buildSquad(ctx, picks.Picks)
	if err != nil {
		return nil, err
	}

	state := &engine.SquadState{
		Squad:         *squad,
		Bank:          picks.EntryHistory.Bank,
		FreeTransfers: freeTransfers,
	}

	p.logger.WithFields(logrus.Fields{
		"entry_id":       entryID,
		"gameweek":       entry.CurrentEvent,
		"squad_value":    squad.TotalCost(),
		"bank":           state.Bank,
		"free_transfers": freeTransfers,
	}).Debug("Squad state built")

	return state, nil
}

// buildSquad resolves pick element IDs against the synced player table and
// splits the 15 slots into starting XI (1-11) and bench (12-15).
func (p *APISquadProvider) buildSquad(ctx context.Context, picks []fpl.Pick) (*engine.Squad, error) {
	ids := make([]int, 0, len(picks))
	for _, pick := range picks {
		ids = append(ids, pick.Element)
	}

	var records []models.Player
	if err := p.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load squad players: %w", err)
	}
	byID := make(map[int]models.Player, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	squad := &engine.Squad{
		Players:    make([]engine.Player, 0, len(picks)),
		StartingXI: make([]int, 0, 11),
		Bench:      make([]int, 0, 4),
	}
	for _, pick := range picks {
		record, ok := byID[pick.Element]
		if !ok {
			return nil, fmt.Errorf("player %d not found in local data; sync may be stale", pick.Element)
		}
		squad.Players = append(squad.Players, MapPlayer(record))

		if pick.Position <= 11 {
			squad.StartingXI = append(squad.StartingXI, pick.Element)
		} else {
			squad.Bench = append(squad.Bench, pick.Element)
		}
		if pick.IsCaptain {
			squad.Captain = pick.Element
		}
		if pick.IsViceCaptain {
			squad.ViceCaptain = pick.Element
		}
	}

	return squad, nil
}
