package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/providers"
	"github.com/dshills/quill/internal/state"
	"go.uber.org/zap"
)

// defaultMaxLength matches the historical summary cap.
const defaultMaxLength = 500

const summarySystemPrompt = `You summarize code changes for a commit message.

Rules:
1. Write one concise natural-language paragraph, plain prose.
2. Cover every change group you are given; lead with the most significant.
3. No bullet lists, no headings, no code fences, no preamble.
4. Stay strictly under the character limit you are given.`

// Stage is the change-summarization pipeline stage: filter noise, bucket the
// rest, and produce a short prose summary with a deterministic fallback.
type Stage struct {
	gen       providers.Generator
	log       *zap.Logger
	maxLength int
	filter    FilterOptions
}

// NewStage creates the summary stage. gen may be nil to force the
// deterministic fallback path; maxLength <= 0 selects the default cap.
func NewStage(log *zap.Logger, gen providers.Generator, maxLength int) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	return &Stage{
		gen:       gen,
		log:       log,
		maxLength: maxLength,
		filter:    DefaultFilterOptions(),
	}
}

// Name identifies the stage for readiness checks and error attribution.
func (s *Stage) Name() string { return state.StageSummary }

// Process summarizes the state's bullet points. It always records a
// non-empty summary; generation failures become soft errors.
func (s *Stage) Process(ctx context.Context, st *state.State) error {
	filtered := Filter(st.BulletPoints, s.filter)
	buckets := Categorize(filtered)
	st.SetMeta("bulletsFiltered", len(st.BulletPoints)-len(filtered))

	var summary string
	if len(filtered) > 0 && s.gen != nil && s.gen.Available(ctx) {
		summary = s.generateSummary(ctx, st, buckets)
	}
	if summary == "" {
		summary = FallbackSummary(buckets, s.maxLength)
		s.log.Debug("using fallback summary")
	}

	s.log.Info("summary produced", zap.Int("length", len(summary)))
	return st.SetSummary(summary)
}

// generateSummary asks the backend for a summary paragraph. Empty or
// oversized output counts as a failure; the caller falls back.
func (s *Stage) generateSummary(ctx context.Context, st *state.State, buckets map[Bucket][]string) string {
	resp, err := s.gen.Generate(ctx, providers.GenerateRequest{
		SystemPrompt: summarySystemPrompt,
		UserPrompt:   buildSummaryPrompt(buckets, s.maxLength),
	})
	if err != nil {
		s.log.Warn("summary generation failed", zap.Error(err))
		st.AddError(s.Name(), fmt.Sprintf("generation failure: %v", err))
		return ""
	}

	candidate := strings.TrimSpace(resp.Content)
	if candidate == "" || len([]rune(candidate)) > s.maxLength {
		st.AddError(s.Name(), fmt.Sprintf("generation failure: response empty or over %d chars", s.maxLength))
		return ""
	}
	return candidate
}

// buildSummaryPrompt lists the bucketed bullets in fixed order.
func buildSummaryPrompt(buckets map[Bucket][]string, maxLength int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the following changes in one paragraph of at most %d characters.\n", maxLength)
	for _, bucket := range bucketOrder {
		items := buckets[bucket]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", bucketLeads[bucket])
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	return b.String()
}
