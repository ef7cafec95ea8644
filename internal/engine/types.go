package engine

import (
	"time"
)

// Position is a squad position in the 1..4 element_type encoding used by the
// upstream API (1=GK, 2=DEF, 3=MID, 4=FWD).
type Position string

const (
	PositionGK  Position = "GK"
	PositionDEF Position = "DEF"
	PositionMID Position = "MID"
	PositionFWD Position = "FWD"
)

// ParsePosition maps the API element_type to a Position.
func ParsePosition(elementType int) Position {
	switch elementType {
	case 1:
		return PositionGK
	case 2:
		return PositionDEF
	case 3:
		return PositionMID
	case 4:
		return PositionFWD
	default:
		return Position("UNK")
	}
}

// Availability is a player's selection status for the upcoming gameweek.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityDoubtful    Availability = "doubtful"
	AvailabilityInjured     Availability = "injured"
	AvailabilitySuspended   Availability = "suspended"
	AvailabilityUnavailable Availability = "unavailable"
)

// ParseAvailability maps the API status code (a/d/i/s/u/n) to an Availability.
func ParseAvailability(status string) Availability {
	switch status {
	case "a":
		return AvailabilityAvailable
	case "d":
		return AvailabilityDoubtful
	case "i":
		return AvailabilityInjured
	case "s":
		return AvailabilitySuspended
	default:
		return AvailabilityUnavailable
	}
}

// Player represents one pool player for a single optimization run. Values are
// concrete, not pointers; the engine never mutates provider-owned records.
type Player struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Position        Position     `json:"position"`
	ClubID          int          `json:"club_id"`
	Club            string       `json:"club"`
	Cost            int          `json:"cost"` // tenths of a million (85 = 8.5m)
	TotalPoints     int          `json:"total_points"`
	PointsPerGame   float64      `json:"points_per_game"`
	Form            float64      `json:"form"`
	Minutes         int          `json:"minutes"`
	Availability    Availability `json:"availability"`
	ChanceOfPlaying float64      `json:"chance_of_playing"` // 0.0 - 1.0
	SelectedBy      float64      `json:"selected_by"`
}

// CostMillions returns the player cost in millions.
func (p Player) CostMillions() float64 {
	return float64(p.Cost) / 10.0
}

// Squad is a 15-player squad with a designated starting XI, captaincy and
// bench order. StartingXI and Bench hold player IDs.
type Squad struct {
	Players     []Player `json:"players"`
	StartingXI  []int    `json:"starting_xi"`
	Captain     int      `json:"captain"`
	ViceCaptain int      `json:"vice_captain"`
	Bench       []int    `json:"bench"`
}

// TotalCost returns the combined cost of all squad players, in tenths.
func (s Squad) TotalCost() int {
	total := 0
	for _, p := range s.Players {
		total += p.Cost
	}
	return total
}

// ClubCounts returns the number of squad players per club.
func (s Squad) ClubCounts() map[int]int {
	counts := make(map[int]int)
	for _, p := range s.Players {
		counts[p.ClubID]++
	}
	return counts
}

// PositionCounts returns the number of squad players per position.
func (s Squad) PositionCounts() map[Position]int {
	counts := make(map[Position]int)
	for _, p := range s.Players {
		counts[p.Position]++
	}
	return counts
}

// Contains reports whether the squad holds the given player ID.
func (s Squad) Contains(playerID int) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// PlayerByID looks up a squad player by ID.
func (s Squad) PlayerByID(playerID int) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}

// WithTransfer returns an independent copy of the squad with out replaced by
// in. The replacement inherits out's slot in the starting XI or bench, and the
// captaincy if out held it. Same-position swaps keep the formation intact.
func (s Squad) WithTransfer(out, in Player) Squad {
	next := Squad{
		Players:     make([]Player, len(s.Players)),
		StartingXI:  make([]int, len(s.StartingXI)),
		Captain:     s.Captain,
		ViceCaptain: s.ViceCaptain,
		Bench:       make([]int, len(s.Bench)),
	}
	for i, p := range s.Players {
		if p.ID == out.ID {
			next.Players[i] = in
		} else {
			next.Players[i] = p
		}
	}
	for i, id := range s.StartingXI {
		if id == out.ID {
			next.StartingXI[i] = in.ID
		} else {
			next.StartingXI[i] = id
		}
	}
	for i, id := range s.Bench {
		if id == out.ID {
			next.Bench[i] = in.ID
		} else {
			next.Bench[i] = id
		}
	}
	if s.Captain == out.ID {
		next.Captain = in.ID
	}
	if s.ViceCaptain == out.ID {
		next.ViceCaptain = in.ID
	}
	return next
}

// FixtureContext carries per-club fixture difficulty over an upcoming horizon.
// Difficulty uses the API's 1 (easiest) to 5 (hardest) scale, averaged.
type FixtureContext struct {
	Horizon    int             `json:"horizon"`
	Difficulty map[int]float64 `json:"difficulty"` // club ID -> mean difficulty
}

// ClubDifficulty returns the mean upcoming difficulty for a club, defaulting
// to the neutral midpoint when the club has no scheduled fixtures.
func (fc FixtureContext) ClubDifficulty(clubID int) float64 {
	if d, ok := fc.Difficulty[clubID]; ok {
		return d
	}
	return 3.0
}

// Snapshot is an immutable view of the player pool and fixture context as of
// TakenAt. The engine treats it as valid for the duration of one invocation.
type Snapshot struct {
	Players  []Player       `json:"players"`
	Fixtures FixtureContext `json:"fixtures"`
	TakenAt  time.Time      `json:"taken_at"`
}

// SquadState is the user's squad plus the transfer resources available for
// the upcoming gameweek. Bank is in tenths and read-only to the engine.
type SquadState struct {
	Squad         Squad `json:"squad"`
	Bank          int   `json:"bank"`
	FreeTransfers int   `json:"free_transfers"`
}

// Transfer is a single out/in swap.
type Transfer struct {
	Out        Player  `json:"player_out"`
	In         Player  `json:"player_in"`
	CostChange int     `json:"cost_change"` // tenths; positive means more expensive
	ScoreDelta float64 `json:"score_delta"`
	Rationale  string  `json:"rationale"`
}

// TransferSet is one candidate set of simultaneous transfers.
type TransferSet struct {
	Transfers     []Transfer `json:"transfers"`
	ProjectedGain float64    `json:"projected_gain"`
	HitCost       float64    `json:"hit_cost"`
	NetGain       float64    `json:"net_gain"`
}

// RecommendationResult is the ordered recommendation output. An empty
// TransferSets slice is the normal outcome when no improving legal transfer
// exists.
type RecommendationResult struct {
	TransferSets    []TransferSet `json:"transfer_sets"`
	Truncated       bool          `json:"truncated"` // search cap or deadline hit; best found returned
	ComputationTime int64         `json:"computation_time_ms"`
}
