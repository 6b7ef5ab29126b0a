package diffparse

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/providers"
	"github.com/dshills/quill/internal/state"
	"go.uber.org/zap"
)

const bulletSystemPrompt = `You convert unified git diffs into a concise bullet list of changes.

Rules:
1. One line per meaningful change, starting with "- ".
2. Use the form "<Added|Modified|Removed|Renamed> <symbol or file> in <path>" where possible.
3. Mention function, class, and type names when the diff shows them.
4. No commentary, no headings, no code fences. Only the bullet lines.`

// Stage is the diff-parsing pipeline stage. When a generation backend is
// supplied it is tried first for bullet extraction; the rule-based parser is
// the always-available fallback.
type Stage struct {
	gen providers.Generator
	log *zap.Logger
}

// NewStage creates the diff stage. gen may be nil to disable the
// generation-backed enhancement path.
func NewStage(log *zap.Logger, gen providers.Generator) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{gen: gen, log: log}
}

// Name identifies the stage for readiness checks and error attribution.
func (s *Stage) Name() string { return state.StageDiff }

// Process parses the staged diff into bullet points.
func (s *Stage) Process(ctx context.Context, st *state.State) error {
	var raw string
	if st.StagedDiff != nil {
		raw = *st.StagedDiff
	}

	res := Parse(raw)
	for _, msg := range res.Skipped {
		s.log.Warn("diff segment skipped", zap.String("reason", msg))
		st.AddError(s.Name(), msg)
	}
	st.SetMeta("filesChanged", len(res.Changes))

	bullets := res.Bullets
	if s.gen != nil && s.gen.Available(ctx) {
		enhanced, err := s.generateBullets(ctx, raw)
		switch {
		case err != nil:
			s.log.Warn("bullet generation failed, using rule-based parse", zap.Error(err))
			st.AddError(s.Name(), fmt.Sprintf("generation failure: %v", err))
		case len(enhanced) > 0:
			bullets = enhanced
			st.SetMeta("bulletSource", s.gen.Name())
		}
	}

	s.log.Info("diff parsed",
		zap.Int("files", len(res.Changes)),
		zap.Int("bullets", len(bullets)),
	)
	return st.SetBulletPoints(bullets)
}

// generateBullets asks the backend for a bullet list and parses it. A
// response with no recognizable bullet lines is treated as malformed.
func (s *Stage) generateBullets(ctx context.Context, raw string) ([]string, error) {
	resp, err := s.gen.Generate(ctx, providers.GenerateRequest{
		SystemPrompt: bulletSystemPrompt,
		UserPrompt:   "Summarize this diff as bullets:\n\n" + raw,
	})
	if err != nil {
		return nil, err
	}

	var bullets []string
	for _, line := range strings.Split(resp.Content, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, "- "); ok {
			line = rest
		} else if rest, ok := strings.CutPrefix(line, "* "); ok {
			line = rest
		} else {
			continue
		}
		if line = strings.TrimSpace(line); line != "" {
			bullets = append(bullets, line)
		}
	}
	if len(bullets) == 0 {
		return nil, fmt.Errorf("malformed response: no bullet list found")
	}
	return bullets, nil
}
