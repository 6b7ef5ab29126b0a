package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/quill/internal/providers"
	"github.com/dshills/quill/internal/state"
	"go.uber.org/zap"
)

const composeSystemPrompt = `You write git commit messages.

Rules:
1. Output ONLY the commit message, nothing else. No quotes, no code fences.
2. The first line is "type(scope): description" in the requested style.
3. The description is imperative mood, lowercase, at most 72 characters.
4. An optional body follows after exactly one blank line.
5. Never invent changes that are not in the summary.`

// Stage is the message-composition pipeline stage. It infers a commit type
// and scope from the summary, drafts a message, and walks the draft through
// validate, repair, and synthesize until something valid comes out.
type Stage struct {
	gen   providers.Generator
	log   *zap.Logger
	style Style
}

// NewStage creates the compose stage. gen may be nil to force deterministic
// synthesis.
func NewStage(log *zap.Logger, gen providers.Generator, style Style) *Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stage{gen: gen, log: log, style: style}
}

// Name identifies the stage for readiness checks and error attribution.
func (s *Stage) Name() string { return state.StageCommit }

// Process composes the final commit message from the state's summary. It
// always records a valid message; draft and validation problems become soft
// errors and the synthesized fallback takes over.
func (s *Stage) Process(ctx context.Context, st *state.State) error {
	summary := ""
	if st.Summary != nil {
		summary = *st.Summary
	}

	typ := InferType(summary)
	scope := InferScope(summary)
	st.SetMeta("commitType", typ)
	if scope != "" {
		st.SetMeta("commitScope", scope)
	}

	// path records which terminal branch produced the message: a draft that
	// validated cleanly, a repaired draft, or the synthesized fallback.
	var path Status
	msg := s.draft(ctx, st, typ, scope, summary)
	if msg != "" {
		if err := Validate(msg, s.style); err != nil {
			s.log.Debug("draft failed validation", zap.Error(err))
			st.AddError(s.Name(), fmt.Sprintf("validation failure: %v", err))
			repaired, ok := Repair(msg, s.style)
			if ok {
				msg = repaired
				path = StatusRepaired
			} else {
				msg = ""
			}
		} else {
			path = StatusValidated
		}
	}

	if msg == "" {
		msg = Synthesize(typ, scope, summary, s.style)
		path = StatusSynthesized
		s.log.Debug("using synthesized message")
	}

	st.SetMeta("composePath", string(path))
	st.SetMeta("composeStatus", string(StatusFinal))
	s.log.Info("commit message composed",
		zap.String("style", string(s.style)),
		zap.String("type", typ))
	return st.SetCommitMessage(msg)
}

// draft asks the backend for a message. Any failure returns "" after
// recording a soft error; the caller falls through to repair or synthesis.
func (s *Stage) draft(ctx context.Context, st *state.State, typ, scope, summary string) string {
	if s.gen == nil || !s.gen.Available(ctx) {
		return ""
	}

	resp, err := s.gen.Generate(ctx, providers.GenerateRequest{
		SystemPrompt: composeSystemPrompt,
		UserPrompt:   buildComposePrompt(typ, scope, summary, s.style),
	})
	if err != nil {
		s.log.Warn("message generation failed", zap.Error(err))
		st.AddError(s.Name(), fmt.Sprintf("generation failure: %v", err))
		return ""
	}

	draft := strings.TrimSpace(resp.Content)
	if draft == "" {
		st.AddError(s.Name(), "generation failure: empty response")
		return ""
	}
	return draft
}

func buildComposePrompt(typ, scope, summary string, style Style) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Style: %s\n", style)
	if style == StyleGitmoji {
		fmt.Fprintf(&b, "Use the emoji %s in place of the type token.\n", gitmojiFor[normalizeType(typ, style)])
	}
	fmt.Fprintf(&b, "Suggested type: %s\n", normalizeType(typ, style))
	if scope != "" {
		fmt.Fprintf(&b, "Suggested scope: %s\n", scope)
	}
	fmt.Fprintf(&b, "\nChange summary:\n%s\n", summary)
	return b.String()
}
