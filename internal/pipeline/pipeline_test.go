package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/quill/internal/compose"
	"github.com/dshills/quill/internal/diffparse"
	"github.com/dshills/quill/internal/providers"
	"github.com/dshills/quill/internal/state"
	"github.com/dshills/quill/internal/summarize"
)

type failingGen struct{}

func (f *failingGen) Generate(_ context.Context, _ providers.GenerateRequest) (providers.GenerateResponse, error) {
	return providers.GenerateResponse{}, errors.New("backend down")
}

func (f *failingGen) Available(_ context.Context) bool { return true }
func (f *failingGen) Name() string                     { return "failing" }

const sampleDiff = `diff --git a/utils/math.py b/utils/math.py
new file mode 100644
index 0000000..abc1234
--- /dev/null
+++ b/utils/math.py
@@ -0,0 +1,2 @@
+def calculate_total(items):
+    return sum(items)
`

func fullPipeline() *Pipeline {
	return New(nil,
		diffparse.NewStage(nil, nil),
		summarize.NewStage(nil, nil, 0),
		compose.NewStage(nil, nil, compose.StyleConventional),
	)
}

func TestRun_EndToEndDeterministic(t *testing.T) {
	st := state.NewWithDiff(sampleDiff)

	if err := fullPipeline().Run(context.Background(), st); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if st.BulletPoints == nil || len(st.BulletPoints) != 1 {
		t.Fatalf("BulletPoints = %v", st.BulletPoints)
	}
	if st.BulletPoints[0] != "Added calculate_total in utils/math.py" {
		t.Errorf("Bullet = %q", st.BulletPoints[0])
	}
	if st.Summary == nil || !strings.Contains(*st.Summary, "calculate_total") {
		t.Errorf("Summary = %v", st.Summary)
	}
	if st.CommitMessage == nil {
		t.Fatal("CommitMessage not set")
	}
	if err := compose.Validate(*st.CommitMessage, compose.StyleConventional); err != nil {
		t.Errorf("Message %q invalid: %v", *st.CommitMessage, err)
	}
	if !strings.HasPrefix(*st.CommitMessage, "feat") {
		t.Errorf("Message = %q, want feat type", *st.CommitMessage)
	}
	if st.HasErrors() {
		t.Errorf("Errors = %v, want none", st.Errors)
	}
}

func TestRun_AlwaysFailingBackendStillProducesValidMessage(t *testing.T) {
	gen := &failingGen{}
	st := state.NewWithDiff(sampleDiff)
	p := New(nil,
		diffparse.NewStage(nil, gen),
		summarize.NewStage(nil, gen, 0),
		compose.NewStage(nil, gen, compose.StyleConventional),
	)

	if err := p.Run(context.Background(), st); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if st.CommitMessage == nil || *st.CommitMessage == "" {
		t.Fatal("CommitMessage not set despite fallback chain")
	}
	if err := compose.Validate(*st.CommitMessage, compose.StyleConventional); err != nil {
		t.Errorf("Message %q invalid: %v", *st.CommitMessage, err)
	}

	failures := 0
	for _, e := range st.Errors {
		if strings.Contains(e.Message, "generation failure") {
			failures++
		}
	}
	if failures == 0 {
		t.Errorf("Errors = %v, want recorded generation failures", st.Errors)
	}
}

func TestRun_HaltsWhenFirstInputMissing(t *testing.T) {
	st := state.New() // no diff

	if err := fullPipeline().Run(context.Background(), st); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if !st.HasErrors() {
		t.Fatal("Expected a recorded readiness error")
	}
	if st.Errors[0].Stage != state.StageDiff {
		t.Errorf("Error stage = %q, want %q", st.Errors[0].Stage, state.StageDiff)
	}
	if len(st.Errors) != 1 {
		t.Errorf("Errors = %v, want the halt to stop further checks", st.Errors)
	}
	if st.BulletPoints != nil || st.Summary != nil || st.CommitMessage != nil {
		t.Error("No stage output should be set after an immediate halt")
	}
}

type haltStage struct {
	name string
	err  error
}

func (h *haltStage) Name() string { return h.name }
func (h *haltStage) Process(_ context.Context, _ *state.State) error {
	return h.err
}

type panicStage struct{ name string }

func (p *panicStage) Name() string { return p.name }
func (p *panicStage) Process(_ context.Context, _ *state.State) error {
	panic("stage exploded")
}

func TestRun_StageErrorIsRecordedAndDownstreamHalts(t *testing.T) {
	st := state.NewWithDiff(sampleDiff)
	// The failing diff stage writes nothing, so the summary stage's
	// readiness check halts the run.
	p := New(nil,
		&haltStage{name: state.StageDiff, err: errors.New("boom")},
		summarize.NewStage(nil, nil, 0),
		compose.NewStage(nil, nil, compose.StyleConventional),
	)

	if err := p.Run(context.Background(), st); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(st.Errors) != 2 {
		t.Fatalf("Errors = %v, want stage failure plus readiness halt", st.Errors)
	}
	if st.Errors[0].Message != "boom" {
		t.Errorf("Errors[0] = %v", st.Errors[0])
	}
	if st.Errors[1].Stage != state.StageSummary {
		t.Errorf("Errors[1] = %v", st.Errors[1])
	}
	if st.CommitMessage != nil {
		t.Error("CommitMessage should not be set")
	}
}

func TestRun_PanicIsContained(t *testing.T) {
	st := state.NewWithDiff(sampleDiff)
	p := New(nil, &panicStage{name: state.StageDiff})

	if err := p.Run(context.Background(), st); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !st.HasErrors() {
		t.Fatal("Expected a recorded panic error")
	}
	if !strings.Contains(st.Errors[0].Message, "stage panicked") {
		t.Errorf("Errors[0] = %v", st.Errors[0])
	}
}

func TestRun_CanceledContext(t *testing.T) {
	st := state.NewWithDiff(sampleDiff)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fullPipeline().Run(ctx, st)
	if err == nil {
		t.Fatal("Expected context error")
	}
	if !st.HasErrors() {
		t.Error("Cancellation should be recorded on the state")
	}
}
