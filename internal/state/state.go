package state

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stage names used for readiness checks and error attribution.
const (
	StageDiff    = "diff"
	StageSummary = "summary"
	StageCommit  = "commit"
)

// StageError is one recorded failure, attributed to the stage that hit it.
type StageError struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (e StageError) String() string {
	return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
}

// State is the record passed through the pipeline. Each stage reads the
// fields it needs and writes exactly one output field; errors are append-only.
// String fields are pointers so "not yet computed" is distinguishable from
// "computed as empty". BulletPoints follows the same rule via nil vs empty.
type State struct {
	StagedDiff    *string        `json:"stagedDiff"`
	BulletPoints  []string       `json:"bulletPoints"`
	Summary       *string        `json:"summary"`
	CommitMessage *string        `json:"commitMessage"`
	Errors        []StageError   `json:"errors"`
	Metadata      map[string]any `json:"metadata"`
}

// New creates an empty State stamped with a run ID and creation time.
func New() *State {
	return &State{
		Metadata: map[string]any{
			"runId":     uuid.NewString(),
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// NewWithDiff creates a State seeded with collected diff text.
func NewWithDiff(diff string) *State {
	st := New()
	st.StagedDiff = &diff
	return st
}

// SetStagedDiff records the raw diff text. Returns an error on double-write.
func (s *State) SetStagedDiff(diff string) error {
	if s.StagedDiff != nil {
		return fmt.Errorf("staged diff already set")
	}
	s.StagedDiff = &diff
	return nil
}

// SetBulletPoints records the parsed bullets. An empty (non-nil) slice is a
// valid write: it means the parser ran and found nothing.
func (s *State) SetBulletPoints(bullets []string) error {
	if s.BulletPoints != nil {
		return fmt.Errorf("bullet points already set")
	}
	if bullets == nil {
		bullets = []string{}
	}
	s.BulletPoints = bullets
	return nil
}

// SetSummary records the summarizer output.
func (s *State) SetSummary(summary string) error {
	if s.Summary != nil {
		return fmt.Errorf("summary already set")
	}
	s.Summary = &summary
	return nil
}

// SetCommitMessage records the final composed message.
func (s *State) SetCommitMessage(msg string) error {
	if s.CommitMessage != nil {
		return fmt.Errorf("commit message already set")
	}
	s.CommitMessage = &msg
	return nil
}

// AddError appends a stage-attributed error. Errors are never removed.
func (s *State) AddError(stage, message string) {
	s.Errors = append(s.Errors, StageError{Stage: stage, Message: message})
}

// HasErrors reports whether any stage recorded an error.
func (s *State) HasErrors() bool { return len(s.Errors) > 0 }

// SetMeta stores a diagnostic key/value pair.
func (s *State) SetMeta(key string, value any) {
	if s.Metadata == nil {
		s.Metadata = make(map[string]any)
	}
	s.Metadata[key] = value
}

// NotReadyError reports that a stage's declared input field is unset.
type NotReadyError struct {
	Stage   string
	Missing string
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("stage %q not ready: missing %s", e.Stage, e.Missing)
}

// ReadyFor checks whether the state carries the input the named stage needs.
// Unknown stage names are never ready.
func (s *State) ReadyFor(stage string) error {
	switch stage {
	case StageDiff:
		if s.StagedDiff == nil || strings.TrimSpace(*s.StagedDiff) == "" {
			return &NotReadyError{Stage: stage, Missing: "staged diff"}
		}
	case StageSummary:
		if s.BulletPoints == nil {
			return &NotReadyError{Stage: stage, Missing: "bullet points"}
		}
	case StageCommit:
		if s.Summary == nil || strings.TrimSpace(*s.Summary) == "" {
			return &NotReadyError{Stage: stage, Missing: "summary"}
		}
	default:
		return &NotReadyError{Stage: stage, Missing: "known stage definition"}
	}
	return nil
}

// ToJSON serializes the state for inspection or later reload.
func (s *State) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling state: %w", err)
	}
	return data, nil
}

// FromJSON reconstructs a State previously produced by ToJSON. All set
// fields and the error list come back exactly as written.
func FromJSON(data []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parsing state: %w", err)
	}
	return &st, nil
}
