package diffparse

import (
	"fmt"
	"regexp"
	"strings"
)

// ChangeKind classifies what happened to a file in a diff.
type ChangeKind string

const (
	KindAdded    ChangeKind = "added"
	KindModified ChangeKind = "modified"
	KindDeleted  ChangeKind = "deleted"
	KindRenamed  ChangeKind = "renamed"
)

// FileChange is the structured record for one file touched by the diff. It is
// built during a single Parse call and consumed immediately for bullets.
type FileChange struct {
	Path    string
	OldPath string
	Kind    ChangeKind
	Added   int
	Removed int
	Symbols []string
	Binary  bool
}

// Result holds everything a parse produced. Skipped carries soft-error
// messages for segments that could not be understood; parsing never fails
// outright on malformed input.
type Result struct {
	Bullets []string
	Changes []FileChange
	Skipped []string
}

var (
	headerRe = regexp.MustCompile(`^diff --git (?:"?a/(.+?)"?) (?:"?b/(.+?)"?)$`)
	hunkRe   = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+\d+(?:,\d+)? @@`)
)

// Parse turns raw unified-diff text into bullets and per-file change records.
// An empty diff yields an empty Result, not an error.
func Parse(raw string) Result {
	var res Result
	if strings.TrimSpace(raw) == "" {
		res.Bullets = []string{}
		return res
	}

	for _, segment := range splitSegments(raw) {
		fc, skips, ok := parseSegment(segment)
		res.Skipped = append(res.Skipped, skips...)
		if !ok {
			continue
		}
		res.Changes = append(res.Changes, fc)
		res.Bullets = append(res.Bullets, renderBullet(fc))
	}
	if res.Bullets == nil {
		res.Bullets = []string{}
	}
	return res
}

// splitSegments cuts the diff into per-file sections on "diff --git" markers.
func splitSegments(diff string) []string {
	var segments []string
	var current strings.Builder
	for _, line := range strings.Split(diff, "\n") {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			segments = append(segments, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

func parseSegment(segment string) (FileChange, []string, bool) {
	lines := strings.Split(segment, "\n")
	if len(lines) == 0 {
		return FileChange{}, nil, false
	}

	m := headerRe.FindStringSubmatch(strings.TrimRight(lines[0], "\r"))
	if m == nil {
		// Leading junk before the first real header, or a mangled header.
		return FileChange{}, []string{fmt.Sprintf("skipping malformed diff segment: %q", firstLine(segment))}, false
	}

	fc := FileChange{OldPath: m[1], Path: m[2]}

	var (
		skips      []string
		newFile    bool
		deleted    bool
		renamed    bool
		hunks      int
		inHunk     bool
		seenSymbol = make(map[string]bool)
	)

	for _, line := range lines[1:] {
		switch {
		case strings.HasPrefix(line, "new file mode"):
			newFile = true
		case strings.HasPrefix(line, "deleted file mode"):
			deleted = true
		case strings.HasPrefix(line, "rename from "):
			renamed = true
			fc.OldPath = strings.TrimPrefix(line, "rename from ")
		case strings.HasPrefix(line, "rename to "):
			renamed = true
			fc.Path = strings.TrimPrefix(line, "rename to ")
		case strings.HasPrefix(line, "Binary files ") || strings.HasPrefix(line, "GIT binary patch"):
			fc.Binary = true
		case strings.HasPrefix(line, "@@"):
			if !hunkRe.MatchString(line) {
				skips = append(skips, fmt.Sprintf("skipping malformed hunk in %s: %q", fc.Path, line))
				inHunk = false
				continue
			}
			hunks++
			inHunk = true
		case inHunk && strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			fc.Added++
			collectSymbol(line[1:], &fc, seenSymbol)
		case inHunk && strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			fc.Removed++
			collectSymbol(line[1:], &fc, seenSymbol)
		}
	}

	switch {
	case newFile:
		fc.Kind = KindAdded
	case deleted:
		fc.Kind = KindDeleted
	case renamed && hunks == 0:
		fc.Kind = KindRenamed
	default:
		fc.Kind = KindModified
	}

	// Binary segments carry no parsable hunks; symbol extraction is skipped.
	if fc.Binary {
		fc.Symbols = nil
	}

	return fc, skips, true
}

func collectSymbol(line string, fc *FileChange, seen map[string]bool) {
	name, ok := ExtractSymbol(line)
	if !ok || seen[name] {
		return
	}
	seen[name] = true
	fc.Symbols = append(fc.Symbols, name)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
