package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSearch(freeOverrides ...func(*GreedySearch)) *GreedySearch {
	g := NewGreedySearch(DefaultRules(), WeightedModel{}, 4.0, 3, 10000, nil)
	for _, fn := range freeOverrides {
		fn(g)
	}
	return g
}

func runSearch(t *testing.T, g *GreedySearch, snap *Snapshot, state SquadState) ([]TransferSet, bool) {
	t.Helper()
	sctx := NewScoringContext(snap, DefaultWeights())
	sets, truncated, err := g.Search(context.Background(), snap, state, sctx)
	require.NoError(t, err)
	return sets, truncated
}

func TestGreedySearch_NoImprovingMove(t *testing.T) {
	squad := legalSquad()
	snap := snapshotWith(squad) // pool is exactly the squad
	state := defaultState(squad, 20, 1)

	sets, truncated := runSearch(t, newTestSearch(), snap, state)

	assert.Empty(t, sets, "an already-optimal squad should yield no recommendations")
	assert.False(t, truncated)
}

func TestGreedySearch_UpgradesWorstDefender(t *testing.T) {
	squad := legalSquad()
	// Branthwaite (205) becomes injured and out of form.
	for i := range squad.Players {
		if squad.Players[i].ID == 205 {
			squad.Players[i].Form = 0.5
			squad.Players[i].Availability = AvailabilityInjured
			squad.Players[i].ChanceOfPlaying = 0.0
		}
	}

	upgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, upgrade)
	state := defaultState(squad, 20, 1)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	require.NotEmpty(t, sets)
	top := sets[0]
	require.Len(t, top.Transfers, 1)
	assert.Equal(t, 205, top.Transfers[0].Out.ID, "the injured, out-of-form defender should go first")
	assert.Equal(t, 210, top.Transfers[0].In.ID)
	assert.Greater(t, top.NetGain, 0.0)
	assert.Equal(t, 0.0, top.HitCost, "one transfer with one free transfer carries no hit")
}

func TestGreedySearch_ZeroBankSameCostTierSwap(t *testing.T) {
	squad := legalSquad()
	for i := range squad.Players {
		if squad.Players[i].ID == 205 {
			squad.Players[i].Form = 0.5
			squad.Players[i].Availability = AvailabilityInjured
			squad.Players[i].ChanceOfPlaying = 0.0
		}
	}
	// Same cost as the injured defender, so the swap funds itself.
	upgrade := Player{ID: 212, Name: "Murillo", Position: PositionDEF, ClubID: 12, Club: "NFO", Cost: 45, TotalPoints: 85, PointsPerGame: 4.3, Form: 5.0, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, upgrade)
	state := defaultState(squad, 0, 1)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	require.NotEmpty(t, sets)
	top := sets[0]
	require.Len(t, top.Transfers, 1)
	assert.Equal(t, 205, top.Transfers[0].Out.ID)
	assert.Equal(t, 212, top.Transfers[0].In.ID)
	assert.Greater(t, top.NetGain, 0.0)
}

func TestGreedySearch_ZeroFreeTransfersChargesHit(t *testing.T) {
	squad := legalSquad()
	for i := range squad.Players {
		if squad.Players[i].ID == 205 {
			squad.Players[i].Form = 0.5
			squad.Players[i].Availability = AvailabilityInjured
			squad.Players[i].ChanceOfPlaying = 0.0
		}
	}
	upgrade := Player{ID: 212, Name: "Murillo", Position: PositionDEF, ClubID: 12, Club: "NFO", Cost: 45, TotalPoints: 85, PointsPerGame: 4.3, Form: 5.0, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, upgrade)
	state := defaultState(squad, 0, 0)

	// A modest penalty: the swap survives with the hit subtracted.
	g := newTestSearch(func(g *GreedySearch) { g.HitPenalty = 0.5 })
	sets, _ := runSearch(t, g, snap, state)

	require.NotEmpty(t, sets)
	top := sets[0]
	assert.InDelta(t, 0.5, top.HitCost, 1e-9)
	assert.InDelta(t, top.ProjectedGain-0.5, top.NetGain, 1e-9)

	// A penalty exceeding the raw gain suppresses the swap entirely.
	g = newTestSearch(func(g *GreedySearch) { g.HitPenalty = 1000 })
	sets, _ = runSearch(t, g, snap, state)
	assert.Empty(t, sets)
}

func TestGreedySearch_RespectsBudget(t *testing.T) {
	squad := legalSquad()
	// Salah is a clear upgrade on every midfielder but unaffordable: max
	// budget is bank 10 + most expensive outgoing midfielder 90 = 100 < 130.
	salah := Player{ID: 310, Name: "Salah", Position: PositionMID, ClubID: 3, Club: "LIV", Cost: 130, TotalPoints: 200, PointsPerGame: 8.5, Form: 8.0, Minutes: 1800, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, salah)
	state := defaultState(squad, 10, 1)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	for _, set := range sets {
		for _, tr := range set.Transfers {
			assert.NotEqual(t, 310, tr.In.ID, "unaffordable player must never be recommended")
		}
	}
}

func TestGreedySearch_RespectsClubLimit(t *testing.T) {
	squad := legalSquad()
	// Squad already holds three Newcastle players (203, 304, 403); a fourth
	// must be rejected no matter how strong.
	fourth := Player{ID: 220, Name: "Hall", Position: PositionDEF, ClubID: 4, Club: "NEW", Cost: 50, TotalPoints: 150, PointsPerGame: 7.5, Form: 8.0, Minutes: 1800, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, fourth)
	state := defaultState(squad, 20, 1)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	for _, set := range sets {
		for _, tr := range set.Transfers {
			if tr.In.ID == 220 {
				// Only legal if a Newcastle player goes out in the same set.
				outIsNewcastle := false
				for _, other := range set.Transfers {
					if other.Out.ClubID == 4 {
						outIsNewcastle = true
					}
				}
				assert.True(t, outIsNewcastle, "a fourth Newcastle player requires one to leave")
			}
		}
	}
}

func TestGreedySearch_Deterministic(t *testing.T) {
	squad := legalSquad()
	extras := []Player{
		{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 410, Name: "Wood", Position: PositionFWD, ClubID: 12, Club: "NFO", Cost: 65, TotalPoints: 105, PointsPerGame: 5.4, Form: 5.8, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
	}
	snap := snapshotWith(squad, extras...)
	state := defaultState(squad, 15, 2)

	first, _ := runSearch(t, newTestSearch(), snap, state)
	second, _ := runSearch(t, newTestSearch(), snap, state)

	assert.Equal(t, first, second, "identical inputs must produce an identical ordered result")
}

func TestGreedySearch_CombinesNonConflictingSingles(t *testing.T) {
	squad := legalSquad()
	defUpgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	midUpgrade := Player{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, defUpgrade, midUpgrade)
	state := defaultState(squad, 30, 2)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	var pair *TransferSet
	for i := range sets {
		if len(sets[i].Transfers) == 2 {
			pair = &sets[i]
			break
		}
	}
	require.NotNil(t, pair, "two free transfers and two improving swaps should produce a pair set")
	assert.Equal(t, 0.0, pair.HitCost)
	assert.InDelta(t, pair.Transfers[0].ScoreDelta+pair.Transfers[1].ScoreDelta, pair.ProjectedGain, 1e-9)
	assert.InDelta(t, pair.ProjectedGain, pair.NetGain, 1e-9)
}

func TestGreedySearch_HitPenaltyChargedBeyondFreeTransfers(t *testing.T) {
	squad := legalSquad()
	defUpgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	midUpgrade := Player{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, defUpgrade, midUpgrade)
	state := defaultState(squad, 30, 1)

	// A small hit penalty keeps pair sets viable so the charge is observable.
	g := newTestSearch(func(g *GreedySearch) { g.HitPenalty = 0.1 })
	sets, _ := runSearch(t, g, snap, state)

	foundPair := false
	for _, set := range sets {
		if len(set.Transfers) == 2 {
			foundPair = true
			assert.InDelta(t, 0.1, set.HitCost, 1e-9, "one transfer beyond the allowance costs one hit")
			assert.InDelta(t, set.ProjectedGain-set.HitCost, set.NetGain, 1e-9)
		}
	}
	assert.True(t, foundPair)
}

func TestGreedySearch_ProhibitiveHitPenaltySuppressesExtras(t *testing.T) {
	squad := legalSquad()
	defUpgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	midUpgrade := Player{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, defUpgrade, midUpgrade)
	state := defaultState(squad, 30, 1)

	g := newTestSearch(func(g *GreedySearch) { g.HitPenalty = 1000 })
	sets, _ := runSearch(t, g, snap, state)

	for _, set := range sets {
		assert.Len(t, set.Transfers, 1, "a prohibitive hit penalty should leave only free-transfer sets")
	}
}

func TestGreedySearch_InvalidSquad(t *testing.T) {
	squad := legalSquad()
	squad.Players = squad.Players[:14]
	snap := snapshotWith(squad)
	state := defaultState(squad, 20, 1)

	g := newTestSearch()
	sctx := NewScoringContext(snap, DefaultWeights())
	_, _, err := g.Search(context.Background(), snap, state, sctx)

	var invalidErr *InvalidSquadError
	require.ErrorAs(t, err, &invalidErr)
	assert.Contains(t, invalidErr.Violations, ViolationSquadSize)
}

func TestGreedySearch_EmptyPool(t *testing.T) {
	squad := legalSquad()
	snap := &Snapshot{Players: nil, Fixtures: FixtureContext{Horizon: 5}}
	state := defaultState(squad, 20, 1)

	g := newTestSearch()
	sctx := NewScoringContext(snap, DefaultWeights())
	_, _, err := g.Search(context.Background(), snap, state, sctx)

	var dataErr *InsufficientDataError
	require.ErrorAs(t, err, &dataErr)
}

func TestGreedySearch_ZeroCostPlayer(t *testing.T) {
	squad := legalSquad()
	broken := Player{ID: 999, Name: "Ghost", Position: PositionMID, ClubID: 13, Cost: 0, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, broken)
	state := defaultState(squad, 20, 1)

	g := newTestSearch()
	sctx := NewScoringContext(snap, DefaultWeights())
	_, _, err := g.Search(context.Background(), snap, state, sctx)

	var dataErr *InsufficientDataError
	require.ErrorAs(t, err, &dataErr)
}

func TestGreedySearch_ExpiredDeadlineDegradesToBestFound(t *testing.T) {
	squad := legalSquad()
	defUpgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	midUpgrade := Player{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, defUpgrade, midUpgrade)
	state := defaultState(squad, 30, 2)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	g := newTestSearch()
	sctx := NewScoringContext(snap, DefaultWeights())
	sets, truncated, err := g.Search(ctx, snap, state, sctx)

	require.NoError(t, err, "deadline expiry must degrade the result, not fail it")
	assert.True(t, truncated)
	assert.NotEmpty(t, sets, "single-swap sets found before the deadline are still returned")
}

func TestGreedySearch_CombinationCapTruncates(t *testing.T) {
	squad := legalSquad()
	defUpgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	midUpgrade := Player{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, defUpgrade, midUpgrade)
	state := defaultState(squad, 30, 2)

	g := newTestSearch(func(g *GreedySearch) { g.MaxCombinations = 0 })
	sctx := NewScoringContext(snap, DefaultWeights())
	sets, truncated, err := g.Search(context.Background(), snap, state, sctx)

	require.NoError(t, err)
	assert.True(t, truncated)
	assert.NotEmpty(t, sets)
}

func TestGreedySearch_ResultsOrderedByNetGain(t *testing.T) {
	squad := legalSquad()
	extras := []Player{
		{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 410, Name: "Wood", Position: PositionFWD, ClubID: 12, Club: "NFO", Cost: 65, TotalPoints: 105, PointsPerGame: 5.4, Form: 5.8, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
	}
	snap := snapshotWith(squad, extras...)
	state := defaultState(squad, 20, 2)

	sets, _ := runSearch(t, newTestSearch(), snap, state)

	for i := 1; i < len(sets); i++ {
		assert.GreaterOrEqual(t, sets[i-1].NetGain, sets[i].NetGain, "sets must be ordered by net gain descending")
	}
}

func BenchmarkGreedySearch(b *testing.B) {
	squad := legalSquad()
	extras := make([]Player, 0, 200)
	for i := 0; i < 200; i++ {
		extras = append(extras, Player{
			ID:              1000 + i,
			Name:            "Pool",
			Position:        []Position{PositionGK, PositionDEF, PositionMID, PositionFWD}[i%4],
			ClubID:          13 + i%7,
			Cost:            40 + (i % 11 * 5),
			TotalPoints:     30 + (i % 17 * 7),
			PointsPerGame:   2.0 + float64(i%9)*0.5,
			Form:            1.0 + float64(i%13)*0.4,
			Minutes:         900 + i*3,
			Availability:    AvailabilityAvailable,
			ChanceOfPlaying: 1.0,
		})
	}
	snap := snapshotWith(squad, extras...)
	state := defaultState(squad, 25, 2)
	sctx := NewScoringContext(snap, DefaultWeights())
	g := NewGreedySearch(DefaultRules(), WeightedModel{}, 4.0, 3, 10000, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := g.Search(context.Background(), snap, state, sctx)
		if err != nil {
			b.Fatal(err)
		}
	}
}
