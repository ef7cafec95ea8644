// Package engine implements the transfer recommendation engine: player
// valuation, squad-legality validation, transfer search and recommendation
// assembly. The engine is a pure, synchronous computation over an immutable
// snapshot; it performs no I/O and is safe for concurrent invocations as long
// as each receives its own snapshot and squad state.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stretford-end/fpl-optimizer/pkg/logger"
)

// SnapshotProvider supplies the player pool and fixture context. Freshness
// and caching are the provider's concern; the engine treats the snapshot as
// valid for one invocation.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
}

// SquadStateProvider supplies the user's current squad, bank balance and
// free-transfer count for the upcoming gameweek.
type SquadStateProvider interface {
	SquadState(ctx context.Context, entryID, freeTransfers int) (*SquadState, error)
}

// Engine wires a valuation model, rules, a search strategy and an assembler
// behind one entry point. Both the model and the strategy are swappable
// capabilities.
type Engine struct {
	Rules     Rules
	Weights   Weights
	Model     ValuationModel
	Strategy  SearchStrategy
	Assembler Assembler
	Logger    *logrus.Logger
}

// Options carries the policy knobs for a default engine.
type Options struct {
	Rules           Rules
	Weights         Weights
	HitPenalty      float64
	MaxTransfers    int
	MaxCombinations int
	TopN            int
}

// DefaultOptions returns the standard policy.
func DefaultOptions() Options {
	return Options{
		Rules:           DefaultRules(),
		Weights:         DefaultWeights(),
		HitPenalty:      4.0,
		MaxTransfers:    3,
		MaxCombinations: 10000,
		TopN:            5,
	}
}

// New builds an engine with the default weighted model and greedy search.
func New(opts Options, log *logrus.Logger) *Engine {
	model := WeightedModel{}
	var entry *logrus.Entry
	if log != nil {
		entry = log.WithField("component", "transfer_search")
	}
	return &Engine{
		Rules:     opts.Rules,
		Weights:   opts.Weights,
		Model:     model,
		Strategy:  NewGreedySearch(opts.Rules, model, opts.HitPenalty, opts.MaxTransfers, opts.MaxCombinations, entry),
		Assembler: Assembler{TopN: opts.TopN},
		Logger:    log,
	}
}

// Recommend runs one optimization: scores the pool, searches legal transfer
// sets from the current squad, and assembles the ranked recommendation. An
// empty result is a normal outcome. A context deadline degrades the search to
// best-found-so-far; it never surfaces as an error.
func (e *Engine) Recommend(ctx context.Context, snap *Snapshot, state SquadState) (*RecommendationResult, error) {
	runID := uuid.New().String()
	start := time.Now()

	log := logger.WithRunID(runID)
	if e.Logger != nil {
		log = e.Logger.WithField("run_id", runID)
	}
	log.WithFields(logrus.Fields{
		"pool_size":      len(snap.Players),
		"squad_value":    state.Squad.TotalCost(),
		"bank":           state.Bank,
		"free_transfers": state.FreeTransfers,
		"snapshot_at":    snap.TakenAt,
	}).Info("Starting transfer optimization")

	sctx := NewScoringContext(snap, e.Weights)

	sets, truncated, err := e.Strategy.Search(ctx, snap, state, sctx)
	if err != nil {
		return nil, err
	}

	result := e.Assembler.Assemble(sets)
	result.Truncated = truncated
	result.ComputationTime = time.Since(start).Milliseconds()

	log.WithFields(logrus.Fields{
		"candidate_sets":  len(sets),
		"recommendations": len(result.TransferSets),
		"truncated":       truncated,
		"elapsed_ms":      result.ComputationTime,
	}).Info("Transfer optimization completed")

	return &result, nil
}
