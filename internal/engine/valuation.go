package engine

import (
	"gonum.org/v1/gonum/stat"
)

// Weights holds the valuation policy constants. The exact magnitudes are
// tunable configuration, not hard-coded behavior.
type Weights struct {
	Form               float64 `json:"form"`
	Value              float64 `json:"value"` // points per million
	Fixture            float64 `json:"fixture"`
	DoubtfulPenalty    float64 `json:"doubtful_penalty"`
	UnavailablePenalty float64 `json:"unavailable_penalty"`
}

// DefaultWeights returns the default scoring policy.
func DefaultWeights() Weights {
	return Weights{
		Form:               0.45,
		Value:              0.35,
		Fixture:            0.20,
		DoubtfulPenalty:    0.5,
		UnavailablePenalty: 2.0,
	}
}

// ScoringContext carries the per-run inputs a valuation model needs beyond
// the player itself: fixture difficulty and pool statistics for
// normalization. Precomputed once per snapshot so Score stays a pure function.
type ScoringContext struct {
	Fixtures  FixtureContext
	FormMean  float64
	FormStd   float64
	ValueMean float64
	ValueStd  float64
	Weights   Weights
}

// NewScoringContext computes pool statistics over the snapshot.
func NewScoringContext(snap *Snapshot, w Weights) ScoringContext {
	forms := make([]float64, 0, len(snap.Players))
	values := make([]float64, 0, len(snap.Players))
	for _, p := range snap.Players {
		forms = append(forms, p.Form)
		values = append(values, pointsPerMillion(p))
	}

	formMean, formStd := stat.MeanStdDev(forms, nil)
	valueMean, valueStd := stat.MeanStdDev(values, nil)

	return ScoringContext{
		Fixtures:  snap.Fixtures,
		FormMean:  formMean,
		FormStd:   formStd,
		ValueMean: valueMean,
		ValueStd:  valueStd,
		Weights:   w,
	}
}

// ValuationModel scores a player; higher is better. Implementations must be
// pure functions of their inputs and monotonic in form and points-per-cost
// with everything else held fixed.
type ValuationModel interface {
	Score(p Player, ctx ScoringContext) float64
}

// WeightedModel is the default valuation: a weighted sum of pool-normalized
// form, pool-normalized points per million, and a fixture-difficulty
// adjustment, minus an availability penalty scaled by expected missed
// playing time. Unavailable players are penalized, never excluded; keeping an
// injured player can still be the best legal option.
type WeightedModel struct{}

func (WeightedModel) Score(p Player, ctx ScoringContext) float64 {
	w := ctx.Weights

	score := w.Form*zscore(p.Form, ctx.FormMean, ctx.FormStd) +
		w.Value*zscore(pointsPerMillion(p), ctx.ValueMean, ctx.ValueStd) +
		w.Fixture*fixtureAdjustment(ctx.Fixtures.ClubDifficulty(p.ClubID))

	missed := 1.0 - p.ChanceOfPlaying
	switch p.Availability {
	case AvailabilityDoubtful:
		score -= w.DoubtfulPenalty * missed
	case AvailabilityInjured, AvailabilitySuspended, AvailabilityUnavailable:
		score -= w.UnavailablePenalty * missed
	}

	return score
}

func pointsPerMillion(p Player) float64 {
	if p.Cost <= 0 {
		return 0
	}
	return float64(p.TotalPoints) / p.CostMillions()
}

func zscore(x, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (x - mean) / std
}

// fixtureAdjustment maps difficulty 1..5 onto +1..-1 so easier runs score
// higher.
func fixtureAdjustment(difficulty float64) float64 {
	return (3.0 - difficulty) / 2.0
}

// rankLess is the deterministic candidate ordering: higher score first, ties
// broken by lower cost, then by smaller ID. Reproducible across runs.
func rankLess(a, b Player, scoreA, scoreB float64) bool {
	if scoreA != scoreB {
		return scoreA > scoreB
	}
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	return a.ID < b.ID
}
