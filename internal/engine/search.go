package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// SearchStrategy explores transfer sets from the current squad toward a
// higher-valuation legal squad. Implementations must return an identical
// ordered result for identical inputs. The returned bool reports whether the
// search budget (combination cap or deadline) was exhausted and the result is
// best-found-so-far.
type SearchStrategy interface {
	Search(ctx context.Context, snap *Snapshot, state SquadState, sctx ScoringContext) ([]TransferSet, bool, error)
}

// GreedySearch is the default strategy: exact greedy enumeration of
// single-transfer moves, then combination of individually-improving,
// non-conflicting singles into multi-transfer sets. Transfers beyond the free
// allowance are charged the hit penalty before ranking.
type GreedySearch struct {
	Rules           Rules
	Model           ValuationModel
	HitPenalty      float64
	MaxTransfers    int // depth cap on transfer-set size
	MaxCombinations int // cap on explored multi-transfer combinations
	UpgradesPerSlot int // candidate replacements kept per squad player
	Logger          *logrus.Entry
}

// NewGreedySearch returns a GreedySearch with the given policy.
func NewGreedySearch(rules Rules, model ValuationModel, hitPenalty float64, maxTransfers, maxCombinations int, log *logrus.Entry) *GreedySearch {
	return &GreedySearch{
		Rules:           rules,
		Model:           model,
		HitPenalty:      hitPenalty,
		MaxTransfers:    maxTransfers,
		MaxCombinations: maxCombinations,
		UpgradesPerSlot: 3,
		Logger:          log,
	}
}

// singleSwap is one individually-improving, individually-legal transfer.
type singleSwap struct {
	out   Player
	in    Player
	delta float64
}

// Search enumerates transfer sets of size 1..min(freeTransfers+1,
// MaxTransfers). Illegal sets are discarded, not repaired. An empty result
// means no improving legal transfer exists.
func (g *GreedySearch) Search(ctx context.Context, snap *Snapshot, state SquadState, sctx ScoringContext) ([]TransferSet, bool, error) {
	if len(snap.Players) == 0 {
		return nil, false, &InsufficientDataError{Reason: "candidate pool is empty"}
	}
	for _, p := range snap.Players {
		if p.Cost <= 0 {
			return nil, false, &InsufficientDataError{Reason: fmt.Sprintf("player %d (%s) has no cost", p.ID, p.Name)}
		}
	}

	// The cap for any candidate squad is what the user can actually afford:
	// current squad value plus bank.
	rules := g.Rules.WithBudgetCap(state.Squad.TotalCost() + state.Bank)

	if violations := rules.Violations(state.Squad); len(violations) > 0 {
		return nil, false, &InvalidSquadError{Violations: violations}
	}

	scores := make(map[int]float64, len(snap.Players))
	for _, p := range snap.Players {
		scores[p.ID] = g.Model.Score(p, sctx)
	}
	for _, p := range state.Squad.Players {
		if _, ok := scores[p.ID]; !ok {
			scores[p.ID] = g.Model.Score(p, sctx)
		}
	}

	candidates := g.candidatesByPosition(snap, state.Squad, scores)

	singles := g.enumerateSingles(state, candidates, scores, rules)

	g.logf(logrus.Fields{
		"pool_size":        len(snap.Players),
		"improving_swaps":  len(singles),
		"free_transfers":   state.FreeTransfers,
		"available_budget": state.Bank,
	}, "Single-swap enumeration complete")

	sets, truncated := g.combine(ctx, singles, state, rules)

	// Deterministic final ordering: net gain descending, then fewer
	// transfers, then the smaller first out-ID.
	sort.SliceStable(sets, func(i, j int) bool {
		if sets[i].NetGain != sets[j].NetGain {
			return sets[i].NetGain > sets[j].NetGain
		}
		if len(sets[i].Transfers) != len(sets[j].Transfers) {
			return len(sets[i].Transfers) < len(sets[j].Transfers)
		}
		return sets[i].Transfers[0].Out.ID < sets[j].Transfers[0].Out.ID
	})

	return sets, truncated, nil
}

// candidatesByPosition groups pool players not already in the squad by
// position, each group in deterministic rank order.
func (g *GreedySearch) candidatesByPosition(snap *Snapshot, squad Squad, scores map[int]float64) map[Position][]Player {
	byPosition := make(map[Position][]Player)
	for _, p := range snap.Players {
		if squad.Contains(p.ID) {
			continue
		}
		byPosition[p.Position] = append(byPosition[p.Position], p)
	}
	for pos := range byPosition {
		players := byPosition[pos]
		sort.SliceStable(players, func(i, j int) bool {
			return rankLess(players[i], players[j], scores[players[i].ID], scores[players[j].ID])
		})
	}
	return byPosition
}

// enumerateSingles is the exact greedy pass: for every squad player, the best
// same-position replacements whose cost fits bank plus sale value and whose
// swap keeps the squad legal. Only positive-delta swaps are kept; the
// per-slot cap bounds the combination stage on large pools.
func (g *GreedySearch) enumerateSingles(state SquadState, candidates map[Position][]Player, scores map[int]float64, rules Rules) []singleSwap {
	var singles []singleSwap

	for _, out := range state.Squad.Players {
		budget := state.Bank + out.Cost
		kept := 0
		for _, in := range candidates[out.Position] {
			if in.Cost > budget {
				continue
			}
			delta := scores[in.ID] - scores[out.ID]
			if delta <= 0 {
				// Candidates are rank-ordered; later ones only score lower.
				break
			}
			if !rules.fitsClubLimit(state.Squad, out, in) {
				continue
			}
			if !rules.IsLegal(state.Squad.WithTransfer(out, in)) {
				continue
			}
			singles = append(singles, singleSwap{out: out, in: in, delta: delta})
			kept++
			if kept >= g.UpgradesPerSlot {
				break
			}
		}
	}

	sort.SliceStable(singles, func(i, j int) bool {
		if singles[i].delta != singles[j].delta {
			return singles[i].delta > singles[j].delta
		}
		if singles[i].out.ID != singles[j].out.ID {
			return singles[i].out.ID < singles[j].out.ID
		}
		return singles[i].in.ID < singles[j].in.ID
	})

	return singles
}

// combine builds transfer sets from the improving singles: the best single
// per outgoing player as size-1 sets, then non-conflicting combinations up to
// the depth cap. Every combined squad is re-validated before being offered.
// Returns early with best-found when the combination cap or the context
// deadline is hit.
func (g *GreedySearch) combine(ctx context.Context, singles []singleSwap, state SquadState, rules Rules) ([]TransferSet, bool) {
	var sets []TransferSet
	truncated := false

	// Size-1 sets: best swap per outgoing player only, so the same player is
	// not recommended out twice.
	seenOut := make(map[int]bool)
	for _, s := range singles {
		if seenOut[s.out.ID] {
			continue
		}
		seenOut[s.out.ID] = true
		if set, ok := g.buildSet(state, rules, []singleSwap{s}); ok {
			sets = append(sets, set)
		}
	}

	maxSize := state.FreeTransfers + 1 // the +1 models one paid hit
	if maxSize > g.MaxTransfers {
		maxSize = g.MaxTransfers
	}

	if maxSize < 2 || len(singles) < 2 {
		return sets, truncated
	}

	explored := 0
	var stack []singleSwap

	var grow func(start int)
	grow = func(start int) {
		if truncated {
			return
		}
		for i := start; i < len(singles); i++ {
			if explored >= g.MaxCombinations {
				truncated = true
				return
			}
			if err := ctx.Err(); err != nil {
				// Deadline is advisory: degrade to best-found-so-far.
				truncated = true
				return
			}
			explored++

			s := singles[i]
			if conflicts(stack, s) {
				continue
			}
			stack = append(stack, s)
			if len(stack) >= 2 {
				if set, ok := g.buildSet(state, rules, stack); ok {
					sets = append(sets, set)
				}
			}
			if len(stack) < maxSize {
				grow(i + 1)
			}
			stack = stack[:len(stack)-1]
		}
	}
	grow(0)

	if truncated {
		g.logf(logrus.Fields{
			"explored_combinations": explored,
			"max_combinations":      g.MaxCombinations,
		}, "Search budget exhausted, returning best found")
	}

	return sets, truncated
}

// conflicts reports whether the swap shares a removed or added player with
// any swap already in the combination.
func conflicts(stack []singleSwap, s singleSwap) bool {
	for _, other := range stack {
		if other.out.ID == s.out.ID || other.in.ID == s.in.ID {
			return true
		}
	}
	return false
}

// buildSet applies the swaps to an independent squad copy, validates the
// result, charges any hit penalty, and drops sets that do not improve net
// value. Illegal sets are discarded, never repaired.
func (g *GreedySearch) buildSet(state SquadState, rules Rules, swaps []singleSwap) (TransferSet, bool) {
	costChange := 0
	gain := 0.0
	squad := state.Squad
	transfers := make([]Transfer, 0, len(swaps))

	for _, s := range swaps {
		costChange += s.in.Cost - s.out.Cost
		gain += s.delta
		squad = squad.WithTransfer(s.out, s.in)
		transfers = append(transfers, Transfer{
			Out:        s.out,
			In:         s.in,
			CostChange: s.in.Cost - s.out.Cost,
			ScoreDelta: s.delta,
		})
	}

	if costChange > state.Bank {
		return TransferSet{}, false
	}
	if len(rules.Violations(squad)) > 0 {
		return TransferSet{}, false
	}

	hit := 0.0
	if extra := len(swaps) - state.FreeTransfers; extra > 0 {
		hit = g.HitPenalty * float64(extra)
	}
	net := gain - hit
	if net <= 0 {
		return TransferSet{}, false
	}

	// Deterministic in-set ordering by outgoing player ID.
	sort.SliceStable(transfers, func(i, j int) bool {
		return transfers[i].Out.ID < transfers[j].Out.ID
	})

	return TransferSet{
		Transfers:     transfers,
		ProjectedGain: gain,
		HitCost:       hit,
		NetGain:       net,
	}, true
}

func (g *GreedySearch) logf(fields logrus.Fields, msg string) {
	if g.Logger != nil {
		g.Logger.WithFields(fields).Debug(msg)
	}
}
