package pipeline

import (
	"context"
	"fmt"

	"github.com/dshills/quill/internal/state"
	"go.uber.org/zap"
)

// Stage is one step of the commit pipeline. Process mutates the shared state
// in place; a returned error is recorded but does not abort the run.
type Stage interface {
	Name() string
	Process(ctx context.Context, st *state.State) error
}

// Pipeline runs stages sequentially over a shared state.
type Pipeline struct {
	stages []Stage
	log    *zap.Logger
}

// New assembles a pipeline from stages in execution order.
func New(log *zap.Logger, stages ...Stage) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{stages: stages, log: log}
}

// Run executes every stage in order. Before each stage it checks the state's
// readiness table; a stage whose input is missing halts the run, since every
// later stage depends on the missing output. Stage errors and panics are
// recorded on the state and execution continues to the readiness check of
// the next stage.
func (p *Pipeline) Run(ctx context.Context, st *state.State) error {
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			st.AddError(stage.Name(), fmt.Sprintf("canceled: %v", err))
			return err
		}

		if err := st.ReadyFor(stage.Name()); err != nil {
			p.log.Warn("stage input missing, halting",
				zap.String("stage", stage.Name()),
				zap.Error(err))
			st.AddError(stage.Name(), err.Error())
			break
		}

		p.log.Debug("running stage", zap.String("stage", stage.Name()))
		if err := p.runStage(ctx, stage, st); err != nil {
			p.log.Warn("stage failed",
				zap.String("stage", stage.Name()),
				zap.Error(err))
			st.AddError(stage.Name(), err.Error())
		}
	}
	return nil
}

// runStage invokes one stage, converting panics into recorded errors so a
// misbehaving stage cannot take down the whole run.
func (p *Pipeline) runStage(ctx context.Context, stage Stage, st *state.State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stage panicked: %v", r)
		}
	}()
	return stage.Process(ctx, st)
}
