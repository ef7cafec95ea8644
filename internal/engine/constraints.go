package engine

import "fmt"

// ViolationKind identifies one squad-legality rule.
type ViolationKind string

const (
	ViolationSquadSize     ViolationKind = "squad_size"
	ViolationPositionCount ViolationKind = "position_count"
	ViolationClubLimit     ViolationKind = "club_limit"
	ViolationBudget        ViolationKind = "budget"
	ViolationFormation     ViolationKind = "formation"
)

// Formation describes a starting XI shape. The goalkeeper count is always 1.
type Formation struct {
	DEF int
	MID int
	FWD int
}

func (f Formation) String() string {
	return fmt.Sprintf("%d-%d-%d", f.DEF, f.MID, f.FWD)
}

// Rules encodes squad-legality policy: budget cap, club limit, squad
// composition by position and the allowed starting-XI formations. All values
// are explicit so league-rule changes are config edits, not code changes.
type Rules struct {
	BudgetCap   int // tenths; total cost of all 15 must not exceed this
	MaxPerClub  int
	Composition map[Position]int
	Formations  []Formation
}

// DefaultRules returns the standard league rules: 100.0m cap, max 3 per club,
// 2 GK / 5 DEF / 5 MID / 3 FWD, and the legal formations (min 3 DEF, min 2
// FWD, exactly 1 GK).
func DefaultRules() Rules {
	return Rules{
		BudgetCap:  1000,
		MaxPerClub: 3,
		Composition: map[Position]int{
			PositionGK:  2,
			PositionDEF: 5,
			PositionMID: 5,
			PositionFWD: 3,
		},
		Formations: []Formation{
			{DEF: 3, MID: 4, FWD: 3},
			{DEF: 3, MID: 5, FWD: 2},
			{DEF: 4, MID: 3, FWD: 3},
			{DEF: 4, MID: 4, FWD: 2},
			{DEF: 4, MID: 5, FWD: 1},
			{DEF: 5, MID: 3, FWD: 2},
			{DEF: 5, MID: 4, FWD: 1},
		},
	}
}

// WithBudgetCap returns a copy of the rules with the budget cap replaced.
// The search uses this to set the cap to current squad cost plus bank.
func (r Rules) WithBudgetCap(cap int) Rules {
	next := r
	next.BudgetCap = cap
	return next
}

// IsLegal reports whether the squad passes every rule.
func (r Rules) IsLegal(s Squad) bool {
	return len(r.Violations(s)) == 0
}

// Violations returns the full set of rules the squad breaks, in check order:
// size, position counts, club limit, budget, formation. No short-circuiting;
// the complete set is always computed.
func (r Rules) Violations(s Squad) []ViolationKind {
	var violations []ViolationKind

	if len(s.Players) != 15 {
		violations = append(violations, ViolationSquadSize)
	}

	counts := s.PositionCounts()
	for pos, required := range r.Composition {
		if counts[pos] != required {
			violations = append(violations, ViolationPositionCount)
			break
		}
	}

	for _, count := range s.ClubCounts() {
		if count > r.MaxPerClub {
			violations = append(violations, ViolationClubLimit)
			break
		}
	}

	if s.TotalCost() > r.BudgetCap {
		violations = append(violations, ViolationBudget)
	}

	if !r.validFormation(s) {
		violations = append(violations, ViolationFormation)
	}

	return violations
}

// validFormation checks the starting XI: exactly 11 players, exactly 1 GK,
// and a DEF/MID/FWD split matching one of the allowed formation templates.
func (r Rules) validFormation(s Squad) bool {
	if len(s.StartingXI) != 11 {
		return false
	}

	xiCounts := make(map[Position]int)
	for _, id := range s.StartingXI {
		p, ok := s.PlayerByID(id)
		if !ok {
			return false
		}
		xiCounts[p.Position]++
	}

	if xiCounts[PositionGK] != 1 {
		return false
	}

	for _, f := range r.Formations {
		if xiCounts[PositionDEF] == f.DEF && xiCounts[PositionMID] == f.MID && xiCounts[PositionFWD] == f.FWD {
			return true
		}
	}
	return false
}

// fitsClubLimit is the incremental check used during search: whether swapping
// out for in keeps every club at or under the limit without building the full
// squad copy.
func (r Rules) fitsClubLimit(s Squad, out, in Player) bool {
	if out.ClubID == in.ClubID {
		return true
	}
	count := 0
	for _, p := range s.Players {
		if p.ID != out.ID && p.ClubID == in.ClubID {
			count++
		}
	}
	return count+1 <= r.MaxPerClub
}
