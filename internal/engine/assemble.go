package engine

import (
	"fmt"
)

// Assembler ranks candidate transfer sets, truncates to the configured top-N
// and attaches a human-readable rationale to every swap.
type Assembler struct {
	TopN int
}

// Assemble packages the search output. Empty input yields an empty result;
// that is the normal outcome when no improving legal transfer exists, never a
// failure.
func (a Assembler) Assemble(sets []TransferSet) RecommendationResult {
	limit := a.TopN
	if limit <= 0 || limit > len(sets) {
		limit = len(sets)
	}

	out := make([]TransferSet, limit)
	for i := 0; i < limit; i++ {
		set := sets[i]
		transfers := make([]Transfer, len(set.Transfers))
		for j, t := range set.Transfers {
			t.Rationale = buildRationale(t.Out, t.In)
			transfers[j] = t
		}
		set.Transfers = transfers
		out[i] = set
	}

	return RecommendationResult{TransferSets: out}
}

// buildRationale produces a short data-backed explanation for a swap.
// Priority order: points, form, cost, points per game.
func buildRationale(out, in Player) string {
	pointsDiff := in.TotalPoints - out.TotalPoints
	formDiff := in.Form - out.Form
	costDiff := in.Cost - out.Cost
	ppgDiff := in.PointsPerGame - out.PointsPerGame

	switch {
	case pointsDiff > 50 && formDiff > 2:
		return fmt.Sprintf("Much better form, +%d points", pointsDiff)
	case pointsDiff > 30 && formDiff > 1:
		return fmt.Sprintf("Better form, +%d points", pointsDiff)
	case costDiff < 0 && pointsDiff > 20:
		return fmt.Sprintf("Great value, +%d pts, saves £%.1fm", pointsDiff, float64(-costDiff)/10.0)
	case costDiff < 0 && formDiff > 1.5:
		return fmt.Sprintf("Budget-friendly, better form, -£%.1fm", float64(-costDiff)/10.0)
	case pointsDiff > 50:
		return fmt.Sprintf("Much better season (+%d points)", pointsDiff)
	case pointsDiff > 20:
		return fmt.Sprintf("Higher season total (+%d points)", pointsDiff)
	case pointsDiff > 10:
		return fmt.Sprintf("Better performance (+%d points)", pointsDiff)
	case formDiff > 2.5:
		return fmt.Sprintf("Excellent recent form (+%.1f)", formDiff)
	case formDiff > 1.5:
		return fmt.Sprintf("Better recent form (+%.1f)", formDiff)
	case formDiff > 0.5:
		return fmt.Sprintf("Improved form (+%.1f)", formDiff)
	case ppgDiff > 1.5 && pointsDiff > 5:
		return fmt.Sprintf("More consistent, +%.1f pts/game", ppgDiff)
	case costDiff < 0:
		return fmt.Sprintf("Budget option, frees up £%.1fm", float64(-costDiff)/10.0)
	case costDiff == 0 && pointsDiff > 0:
		return fmt.Sprintf("Equal price, +%d points", pointsDiff)
	case costDiff > 0 && pointsDiff > 30:
		return fmt.Sprintf("Premium upgrade, +£%.1fm for +%d pts", float64(costDiff)/10.0, pointsDiff)
	case pointsDiff > 0:
		return fmt.Sprintf("+%d points this season", pointsDiff)
	default:
		return "Recommended upgrade"
	}
}
