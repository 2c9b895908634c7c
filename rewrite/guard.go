package rewrite

import "strings"

// temporalKeywords drives family selection for comparison repairs. The test
// is a case-sensitive substring match over the whole line: an identifier that
// merely contains one of these words is classified temporal even when it
// holds a number. That blind spot is accepted; the repaired sources carry no
// type information to do better with.
var temporalKeywords = []string{"DateTime", "Date", "Time"}

// isTemporal reports whether a line gets date/time assertion vocabulary
// (BeAfter, BeBefore, ...) instead of numeric vocabulary (BeGreaterThan,
// BeLessThan, ...). Exactly one of the two families applies to any line.
func isTemporal(line string) bool {
	for _, kw := range temporalKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
