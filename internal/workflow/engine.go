package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/draftd/internal/llm"
)

// Engine executes the workflow graph: edit once, fan out to both platform
// writers, evaluate the gate, and loop through critique/write cycles until
// both platforms meet the draft target.
type Engine struct {
	client  llm.Client
	logger  *zap.Logger
	metrics *Metrics
}

// NewEngine creates an engine backed by the given generation client.
func NewEngine(client llm.Client, logger *zap.Logger) (*Engine, error) {
	if client == nil {
		return nil, fmt.Errorf("llm client is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		client:  client,
		logger:  logger,
		metrics: NewMetrics(logger),
	}, nil
}

// Run executes one workflow from request to terminal state. It is a pure
// function of its inputs: no state survives between calls, and it is safe to
// call repeatedly or from concurrent goroutines.
//
// Guarantees: the edit stage runs before any writer; both writers for a
// round complete before the gate evaluates; the gate either terminates or
// routes both platforms through a critique/write cycle. Any generation
// failure aborts the run and no partial state is returned.
func (e *Engine) Run(ctx context.Context, req Request) (*State, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	state := NewState(req)
	state.RunID = uuid.NewString()
	start := time.Now()

	e.logger.Info("workflow started",
		zap.String("run_id", state.RunID),
		zap.Int("draft_target", state.DraftTarget),
		zap.Int("text_len", len(state.UserText)),
	)

	round := 0
	for stage := StageEdit; stage != StageDone; {
		select {
		case <-ctx.Done():
			e.metrics.RecordRun(ctx, false)
			return nil, ctx.Err()
		default:
		}

		var err error
		switch stage {
		case StageEdit:
			err = e.runEditor(ctx, state)
			stage = transitions[stage]
		case StageWrite:
			round++
			err = e.fanOut(ctx, state, e.runWriter)
			stage = transitions[stage]
		case StageGate:
			if EvaluateGate(state) == DecisionTerminate {
				stage = StageDone
			} else {
				stage = StageCritique
			}
		case StageCritique:
			err = e.fanOut(ctx, state, e.runCritique)
			stage = transitions[stage]
		default:
			err = fmt.Errorf("unknown stage: %s", stage)
		}

		if err != nil {
			e.metrics.RecordRun(ctx, false)
			e.logger.Error("workflow aborted",
				zap.String("run_id", state.RunID),
				zap.Int("round", round),
				zap.Error(err),
			)
			return nil, err
		}
	}

	e.metrics.RecordRun(ctx, true)
	e.logger.Info("workflow completed",
		zap.String("run_id", state.RunID),
		zap.Int("rounds", round),
		zap.Duration("duration", time.Since(start)),
	)
	return state, nil
}
