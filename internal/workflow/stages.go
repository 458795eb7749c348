package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Stage identifies a node in the workflow graph.
type Stage string

const (
	// StageEdit rewrites the raw input text into the edited baseline.
	StageEdit Stage = "edit"

	// StageWrite fans out to both platform writers and joins.
	StageWrite Stage = "write"

	// StageGate evaluates the convergence condition.
	StageGate Stage = "gate"

	// StageCritique fans out to both platform critics and joins.
	StageCritique Stage = "critique"

	// StageDone is the terminal stage.
	StageDone Stage = "done"
)

// transitions is the static edge table for the non-branching stages. The
// gate is the only branch point; its two outcomes are resolved by the engine.
var transitions = map[Stage]Stage{
	StageEdit:     StageWrite,
	StageWrite:    StageGate,
	StageCritique: StageWrite,
}

// runEditor invokes the generation service once with the editor persona and
// records the result as the edited baseline. Runs exactly once per run,
// before any writer activity.
func (e *Engine) runEditor(ctx context.Context, s *State) error {
	start := time.Now()

	text, err := e.client.Generate(ctx, editorPrompt(s.UserText))
	if err != nil {
		return fmt.Errorf("edit stage: %w", err)
	}
	s.EditText = text

	e.metrics.RecordStage(ctx, StageEdit, "", time.Since(start))
	e.logger.Debug("edit stage completed",
		zap.String("run_id", s.RunID),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// runWriter produces one draft for the platform and appends it to the
// workspace. When feedback from a prior critique is present, the prompt
// frames the latest draft plus that feedback as a revision task. This is the
// only stage that grows the draft sequence.
func (e *Engine) runWriter(ctx context.Context, s *State, spec PlatformSpec) error {
	start := time.Now()
	ws := s.Workspace(spec.Platform)

	text, err := e.client.Generate(ctx, writerPrompt(spec, s, ws))
	if err != nil {
		return fmt.Errorf("write stage (%s): %w", spec.Platform, err)
	}
	ws.Drafts = append(ws.Drafts, text)

	e.metrics.RecordStage(ctx, StageWrite, spec.Platform, time.Since(start))
	e.metrics.RecordDraft(ctx, spec.Platform)
	e.logger.Debug("write stage completed",
		zap.String("run_id", s.RunID),
		zap.String("platform", string(spec.Platform)),
		zap.Int("drafts", len(ws.Drafts)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// runCritique evaluates the platform's latest draft and overwrites the
// workspace feedback. Feedback is a single current value, not a history.
func (e *Engine) runCritique(ctx context.Context, s *State, spec PlatformSpec) error {
	start := time.Now()
	ws := s.Workspace(spec.Platform)

	text, err := e.client.Generate(ctx, critiquePrompt(spec, s, ws))
	if err != nil {
		return fmt.Errorf("critique stage (%s): %w", spec.Platform, err)
	}
	ws.Feedback = text

	e.metrics.RecordStage(ctx, StageCritique, spec.Platform, time.Since(start))
	e.logger.Debug("critique stage completed",
		zap.String("run_id", s.RunID),
		zap.String("platform", string(spec.Platform)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// fanOut runs one stage function for every platform concurrently and waits
// for both. The workspaces are disjoint, so the only synchronization needed
// is this join barrier before the gate evaluates.
func (e *Engine) fanOut(ctx context.Context, s *State, fn func(context.Context, *State, PlatformSpec) error) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range Platforms() {
		spec := platformSpecs[p]
		g.Go(func() error {
			return fn(ctx, s, spec)
		})
	}
	return g.Wait()
}
