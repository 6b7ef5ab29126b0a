package cli

import (
	"strings"
	"testing"
)

func TestGenerateHookScript(t *testing.T) {
	script := generateHookScript("", "")

	if !strings.Contains(script, hookMarkerStart) {
		t.Error("Script missing start marker")
	}
	if !strings.Contains(script, hookMarkerEnd) {
		t.Error("Script missing end marker")
	}
	if !strings.Contains(script, `quill generate --format message --out "$1"`) {
		t.Error("Script missing quill command")
	}
	if !strings.Contains(script, "|| true") {
		t.Error("Hook failures must not block the commit")
	}
	if !strings.Contains(script, `case "$2" in`) {
		t.Error("Script should check the message source")
	}
}

func TestGenerateHookScript_CustomFlags(t *testing.T) {
	script := generateHookScript("gitmoji", "ollama")

	if !strings.Contains(script, "--style gitmoji") {
		t.Error("Script doesn't use custom style")
	}
	if !strings.Contains(script, "--provider ollama") {
		t.Error("Script doesn't use custom provider")
	}
}

func TestReplaceQuillSection_NoExisting(t *testing.T) {
	existing := "#!/bin/sh\nsome-other-hook\n"
	section := generateHookScript("", "")

	result := replaceQuillSection(existing, section)

	if !strings.HasPrefix(result, "#!/bin/sh\nsome-other-hook\n") {
		t.Error("Existing content should be preserved")
	}
	if !strings.Contains(result, hookMarkerStart) {
		t.Error("New section should be appended")
	}
}

func TestReplaceQuillSection_ExistingSection(t *testing.T) {
	oldSection := generateHookScript("angular", "")
	existing := "#!/bin/sh\nbefore\n" + oldSection + "after\n"
	newSection := generateHookScript("gitmoji", "")

	result := replaceQuillSection(existing, newSection)

	if !strings.Contains(result, "before") {
		t.Error("Content before quill section should be preserved")
	}
	if !strings.Contains(result, "after") {
		t.Error("Content after quill section should be preserved")
	}
	if !strings.Contains(result, "--style gitmoji") {
		t.Error("New section should have updated flags")
	}
	if strings.Contains(result, "--style angular") {
		t.Error("Old section should be replaced")
	}
}

func TestRemoveQuillSection(t *testing.T) {
	section := generateHookScript("", "")
	existing := "#!/bin/sh\nbefore\n" + section + "after\n"

	result := removeQuillSection(existing)

	if strings.Contains(result, hookMarkerStart) {
		t.Error("Quill section should be removed")
	}
	if !strings.Contains(result, "before") {
		t.Error("Content before should be preserved")
	}
	if !strings.Contains(result, "after") {
		t.Error("Content after should be preserved")
	}
}

func TestRemoveQuillSection_NoSection(t *testing.T) {
	existing := "#!/bin/sh\nunrelated\n"
	if got := removeQuillSection(existing); got != existing {
		t.Errorf("Unrelated hook content changed: %q", got)
	}
}

func TestSplitComma(t *testing.T) {
	got := splitComma(" a.go , b.go ,, ")
	want := []string{"a.go", "b.go"}
	if len(got) != len(want) {
		t.Fatalf("splitComma = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitComma[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
