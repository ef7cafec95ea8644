package engine

import (
	"time"
)

// legalSquad builds a rules-compliant 15-player squad in a 4-4-2 with a
// spread of clubs and 880 total cost.
func legalSquad() Squad {
	return Squad{
		Players: []Player{
			// Goalkeepers
			{ID: 101, Name: "Raya", Position: PositionGK, ClubID: 1, Club: "ARS", Cost: 50, TotalPoints: 90, PointsPerGame: 4.5, Form: 4.0, Minutes: 1800, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 102, Name: "Pickford", Position: PositionGK, ClubID: 2, Club: "EVE", Cost: 40, TotalPoints: 70, PointsPerGame: 3.5, Form: 3.0, Minutes: 1800, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			// Defenders
			{ID: 201, Name: "Gabriel", Position: PositionDEF, ClubID: 1, Club: "ARS", Cost: 55, TotalPoints: 85, PointsPerGame: 4.2, Form: 4.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 202, Name: "Van Dijk", Position: PositionDEF, ClubID: 3, Club: "LIV", Cost: 60, TotalPoints: 80, PointsPerGame: 4.0, Form: 4.0, Minutes: 1800, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 203, Name: "Trippier", Position: PositionDEF, ClubID: 4, Club: "NEW", Cost: 55, TotalPoints: 75, PointsPerGame: 3.8, Form: 3.5, Minutes: 1600, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 204, Name: "Romero", Position: PositionDEF, ClubID: 5, Club: "TOT", Cost: 50, TotalPoints: 70, PointsPerGame: 3.6, Form: 3.2, Minutes: 1500, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 205, Name: "Branthwaite", Position: PositionDEF, ClubID: 2, Club: "EVE", Cost: 45, TotalPoints: 55, PointsPerGame: 2.8, Form: 2.5, Minutes: 1400, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			// Midfielders
			{ID: 301, Name: "Saka", Position: PositionMID, ClubID: 1, Club: "ARS", Cost: 90, TotalPoints: 130, PointsPerGame: 6.5, Form: 6.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 302, Name: "Palmer", Position: PositionMID, ClubID: 6, Club: "CHE", Cost: 80, TotalPoints: 120, PointsPerGame: 6.0, Form: 5.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 303, Name: "Foden", Position: PositionMID, ClubID: 7, Club: "MCI", Cost: 75, TotalPoints: 100, PointsPerGame: 5.0, Form: 4.5, Minutes: 1600, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 304, Name: "Gordon", Position: PositionMID, ClubID: 4, Club: "NEW", Cost: 60, TotalPoints: 85, PointsPerGame: 4.2, Form: 4.0, Minutes: 1650, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 305, Name: "Bowen", Position: PositionMID, ClubID: 8, Club: "WHU", Cost: 55, TotalPoints: 75, PointsPerGame: 3.8, Form: 3.5, Minutes: 1600, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			// Forwards
			{ID: 401, Name: "Haaland", Position: PositionFWD, ClubID: 7, Club: "MCI", Cost: 95, TotalPoints: 140, PointsPerGame: 7.0, Form: 6.5, Minutes: 1700, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 402, Name: "Watkins", Position: PositionFWD, ClubID: 9, Club: "AVL", Cost: 75, TotalPoints: 110, PointsPerGame: 5.5, Form: 5.0, Minutes: 1750, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
			{ID: 403, Name: "Isak", Position: PositionFWD, ClubID: 4, Club: "NEW", Cost: 60, TotalPoints: 80, PointsPerGame: 4.8, Form: 4.0, Minutes: 1400, Availability: AvailabilityAvailable, ChanceOfPlaying: 1.0},
		},
		StartingXI:  []int{101, 201, 202, 203, 204, 301, 302, 303, 304, 401, 402},
		Captain:     401,
		ViceCaptain: 301,
		Bench:       []int{102, 205, 305, 403},
	}
}

// snapshotWith builds a snapshot over the squad plus extra pool candidates,
// with a neutral fixture context.
func snapshotWith(squad Squad, extra ...Player) *Snapshot {
	players := make([]Player, 0, len(squad.Players)+len(extra))
	players = append(players, squad.Players...)
	players = append(players, extra...)
	return &Snapshot{
		Players:  players,
		Fixtures: FixtureContext{Horizon: 5, Difficulty: map[int]float64{}},
		TakenAt:  time.Now(),
	}
}

func defaultState(squad Squad, bank, freeTransfers int) SquadState {
	return SquadState{Squad: squad, Bank: bank, FreeTransfers: freeTransfers}
}
