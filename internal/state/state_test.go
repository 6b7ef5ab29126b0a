package state

import (
	"strings"
	"testing"
)

func TestNew_StampsRunMetadata(t *testing.T) {
	st := New()
	if st.Metadata["runId"] == "" {
		t.Error("Expected runId in metadata")
	}
	if st.Metadata["createdAt"] == "" {
		t.Error("Expected createdAt in metadata")
	}
}

func TestSetters_RejectDoubleWrite(t *testing.T) {
	st := New()

	if err := st.SetStagedDiff("diff"); err != nil {
		t.Fatalf("SetStagedDiff error: %v", err)
	}
	if err := st.SetStagedDiff("again"); err == nil {
		t.Error("Expected error on second SetStagedDiff")
	}

	if err := st.SetBulletPoints([]string{"a"}); err != nil {
		t.Fatalf("SetBulletPoints error: %v", err)
	}
	if err := st.SetBulletPoints([]string{"b"}); err == nil {
		t.Error("Expected error on second SetBulletPoints")
	}

	if err := st.SetSummary("s"); err != nil {
		t.Fatalf("SetSummary error: %v", err)
	}
	if err := st.SetSummary("t"); err == nil {
		t.Error("Expected error on second SetSummary")
	}

	if err := st.SetCommitMessage("m"); err != nil {
		t.Fatalf("SetCommitMessage error: %v", err)
	}
	if err := st.SetCommitMessage("n"); err == nil {
		t.Error("Expected error on second SetCommitMessage")
	}
}

func TestSetBulletPoints_EmptyIsAValidWrite(t *testing.T) {
	st := New()
	if err := st.SetBulletPoints(nil); err != nil {
		t.Fatalf("SetBulletPoints error: %v", err)
	}
	if st.BulletPoints == nil {
		t.Fatal("Expected non-nil bullet slice after write")
	}
	if len(st.BulletPoints) != 0 {
		t.Errorf("len = %d, want 0", len(st.BulletPoints))
	}
	// Empty counts as set: the summary stage is now ready.
	if err := st.ReadyFor(StageSummary); err != nil {
		t.Errorf("ReadyFor(summary) = %v, want nil", err)
	}
}

func TestReadyFor(t *testing.T) {
	diff := "diff --git a/x b/x"
	blank := "   "
	summary := "Added things."

	tests := []struct {
		name  string
		state *State
		stage string
		ready bool
	}{
		{"diff stage without diff", New(), StageDiff, false},
		{"diff stage with blank diff", &State{StagedDiff: &blank}, StageDiff, false},
		{"diff stage with diff", &State{StagedDiff: &diff}, StageDiff, true},
		{"summary stage without bullets", New(), StageSummary, false},
		{"summary stage with bullets", &State{BulletPoints: []string{"x"}}, StageSummary, true},
		{"commit stage without summary", New(), StageCommit, false},
		{"commit stage with summary", &State{Summary: &summary}, StageCommit, true},
		{"unknown stage never ready", &State{StagedDiff: &diff}, "deploy", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.ReadyFor(tt.stage)
			if tt.ready && err != nil {
				t.Errorf("ReadyFor(%s) = %v, want nil", tt.stage, err)
			}
			if !tt.ready && err == nil {
				t.Errorf("ReadyFor(%s) = nil, want error", tt.stage)
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	st := NewWithDiff("diff --git a/f b/f")
	if err := st.SetBulletPoints([]string{"Added f"}); err != nil {
		t.Fatal(err)
	}
	if err := st.SetSummary("New features: Added f."); err != nil {
		t.Fatal(err)
	}
	st.AddError("summary", "generation failure: timeout")
	st.SetMeta("filesChanged", 1)

	data, err := st.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	got, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON error: %v", err)
	}

	if got.StagedDiff == nil || *got.StagedDiff != *st.StagedDiff {
		t.Error("StagedDiff did not survive round trip")
	}
	if len(got.BulletPoints) != 1 || got.BulletPoints[0] != "Added f" {
		t.Errorf("BulletPoints = %v", got.BulletPoints)
	}
	if got.Summary == nil || *got.Summary != *st.Summary {
		t.Error("Summary did not survive round trip")
	}
	if got.CommitMessage != nil {
		t.Error("Unset CommitMessage came back set")
	}
	if len(got.Errors) != 1 || got.Errors[0].Stage != "summary" {
		t.Errorf("Errors = %v", got.Errors)
	}
}

func TestJSONRoundTrip_PreservesUnsetVsEmpty(t *testing.T) {
	unset := New()
	data, err := unset.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.BulletPoints != nil {
		t.Error("Unset bullets came back non-nil")
	}

	set := New()
	if err := set.SetBulletPoints([]string{}); err != nil {
		t.Fatal(err)
	}
	data, err = set.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err = FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.BulletPoints == nil {
		t.Error("Set-but-empty bullets came back nil")
	}
}

func TestNotReadyError_NamesTheMissingInput(t *testing.T) {
	err := New().ReadyFor(StageCommit)
	if err == nil {
		t.Fatal("Expected error")
	}
	if !strings.Contains(err.Error(), "summary") {
		t.Errorf("Error %q should name the missing input", err)
	}
}
