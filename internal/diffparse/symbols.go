package diffparse

import "regexp"

// symbolPatterns are language-agnostic heuristics for declaration lines.
// Evaluated in order; the first capture group is the symbol name.
var symbolPatterns = []*regexp.Regexp{
	// Go functions and methods
	regexp.MustCompile(`^func\s+(?:\([^)]+\)\s*)?([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
	// Go named struct/interface types
	regexp.MustCompile(`^type\s+([A-Za-z_][A-Za-z0-9_]*)\s+(?:struct|interface)\b`),
	// Python / Ruby style defs
	regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_][A-Za-z0-9_]*)`),
	// Class declarations (Python, JS/TS, Java, C#, ...)
	regexp.MustCompile(`^\s*(?:export\s+)?(?:public\s+|private\s+|protected\s+|abstract\s+|final\s+)*class\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
	// JS/TS/PHP function declarations
	regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+([A-Za-z_$][A-Za-z0-9_$]*)`),
	// JS/TS arrow functions bound to const/let/var
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*(?:async\s*)?\(`),
	// Rust functions
	regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+([A-Za-z_][A-Za-z0-9_]*)`),
	// Java/C-like methods with visibility modifiers
	regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?[A-Za-z_<>\[\]]+\s+([A-Za-z_][A-Za-z0-9_]*)\s*\(`),
}

// ExtractSymbol reports the declared symbol name on a changed line, if any.
func ExtractSymbol(line string) (string, bool) {
	for _, pat := range symbolPatterns {
		if m := pat.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
