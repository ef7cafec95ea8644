package engine

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Recommend_EndToEnd(t *testing.T) {
	squad := legalSquad()
	for i := range squad.Players {
		if squad.Players[i].ID == 205 {
			squad.Players[i].Form = 0.5
			squad.Players[i].Availability = AvailabilityInjured
			squad.Players[i].ChanceOfPlaying = 0.0
		}
	}
	upgrade := Player{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0}
	snap := snapshotWith(squad, upgrade)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	eng := New(DefaultOptions(), log)

	result, err := eng.Recommend(context.Background(), snap, defaultState(squad, 20, 1))
	require.NoError(t, err)
	require.NotEmpty(t, result.TransferSets)

	top := result.TransferSets[0]
	require.Len(t, top.Transfers, 1)
	assert.Equal(t, 205, top.Transfers[0].Out.ID)
	assert.Equal(t, 210, top.Transfers[0].In.ID)
	assert.NotEmpty(t, top.Transfers[0].Rationale)
	assert.False(t, result.Truncated)
	assert.GreaterOrEqual(t, result.ComputationTime, int64(0))
}

func TestEngine_Recommend_OptimalSquadYieldsEmptyResult(t *testing.T) {
	squad := legalSquad()
	snap := snapshotWith(squad)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	eng := New(DefaultOptions(), log)

	result, err := eng.Recommend(context.Background(), snap, defaultState(squad, 20, 1))
	require.NoError(t, err)
	assert.Empty(t, result.TransferSets, "no improving move is a normal empty result, not an error")
}

func TestEngine_Recommend_CapsRecommendationsAtTopN(t *testing.T) {
	squad := legalSquad()
	extras := []Player{
		{ID: 210, Name: "Gvardiol", Position: PositionDEF, ClubID: 7, Club: "MCI", Cost: 60, TotalPoints: 95, PointsPerGame: 4.8, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 211, Name: "Milenkovic", Position: PositionDEF, ClubID: 12, Club: "NFO", Cost: 50, TotalPoints: 90, PointsPerGame: 4.6, Form: 5.2, Minutes: 1650, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 310, Name: "Mbeumo", Position: PositionMID, ClubID: 11, Club: "BRE", Cost: 70, TotalPoints: 110, PointsPerGame: 5.6, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 311, Name: "Semenyo", Position: PositionMID, ClubID: 10, Club: "BOU", Cost: 60, TotalPoints: 100, PointsPerGame: 5.2, Form: 5.6, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		{ID: 410, Name: "Wood", Position: PositionFWD, ClubID: 12, Club: "NFO", Cost: 65, TotalPoints: 105, PointsPerGame: 5.4, Form: 5.8, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
	}
	snap := snapshotWith(squad, extras...)

	opts := DefaultOptions()
	opts.TopN = 3
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	eng := New(opts, log)

	result, err := eng.Recommend(context.Background(), snap, defaultState(squad, 30, 2))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.TransferSets), 3)
}
