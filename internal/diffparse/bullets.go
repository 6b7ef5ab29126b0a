package diffparse

import (
	"fmt"
	"strings"
)

// maxBulletSymbols caps how many symbol names one bullet lists.
const maxBulletSymbols = 3

// renderBullet produces the one-line human-readable description of a change.
func renderBullet(fc FileChange) string {
	if fc.Binary {
		return fmt.Sprintf("Updated binary file %s", fc.Path)
	}

	switch fc.Kind {
	case KindAdded:
		if len(fc.Symbols) > 0 {
			return fmt.Sprintf("Added %s in %s", symbolList(fc.Symbols), fc.Path)
		}
		return fmt.Sprintf("Added %s", fc.Path)
	case KindDeleted:
		return fmt.Sprintf("Removed %s", fc.Path)
	case KindRenamed:
		return fmt.Sprintf("Renamed %s to %s", fc.OldPath, fc.Path)
	default:
		if len(fc.Symbols) > 0 {
			return fmt.Sprintf("Modified %s in %s", symbolList(fc.Symbols), fc.Path)
		}
		return fmt.Sprintf("Updated %s", fc.Path)
	}
}

func symbolList(symbols []string) string {
	if len(symbols) > maxBulletSymbols {
		symbols = symbols[:maxBulletSymbols]
	}
	return strings.Join(symbols, ", ")
}
