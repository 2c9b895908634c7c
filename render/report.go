// Package render prints fixer run reports and live progress to the terminal.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"assertfix/scanner"
)

// Summary renders the outcome of one fixer run to stdout: a header panel with
// the run totals, then one line per modified or failed file.
func Summary(r scanner.Report) {
	projectName := filepath.Base(r.Root)

	statsLine := fmt.Sprintf("Files: %d | Modified: %d", len(r.Results), r.Modified)
	if r.Failed > 0 {
		statsLine += fmt.Sprintf(" | Failed: %d", r.Failed)
	}
	if r.DryRun {
		statsLine += " | dry run"
	}
	if r.DiffRef != "" {
		statsLine += " | vs " + r.DiffRef
	}
	familiesLine := "Families: " + strings.Join(r.Families, ", ")

	// Title in top border line (rich-panel style)
	innerWidth := 64
	if len(statsLine)+4 > innerWidth {
		innerWidth = len(statsLine) + 4
	}
	if len(familiesLine)+4 > innerWidth {
		innerWidth = len(familiesLine) + 4
	}

	titleLine := fmt.Sprintf(" %s ", projectName)
	padding := innerWidth - len(titleLine)
	leftPad := padding / 2
	rightPad := padding - leftPad
	fmt.Printf("╭%s%s%s╮\n", strings.Repeat("─", leftPad), titleLine, strings.Repeat("─", rightPad))
	fmt.Printf("│ %-*s │\n", innerWidth-2, statsLine)
	fmt.Printf("│ %-*s │\n", innerWidth-2, familiesLine)
	fmt.Printf("╰%s╯\n", strings.Repeat("─", innerWidth))

	width := GetTerminalWidth()
	for _, res := range r.Results {
		switch {
		case res.Error != "":
			fmt.Printf("  %s✗ %s%s %s(%s)%s\n", Red, truncate(res.Path, width-20), Reset, Dim, res.Error, Reset)
		case res.Changed && res.Written:
			fmt.Printf("  %s✎ %s%s\n", Yellow, truncate(res.Path, width-6), Reset)
		case res.Changed:
			fmt.Printf("  %s✎ %s%s %s(not written)%s\n", Yellow, truncate(res.Path, width-20), Reset, Dim, Reset)
		}
	}

	clean := len(r.Results) - r.Modified - r.Failed
	if clean > 0 {
		fmt.Printf("  %s%d file(s) already clean%s\n", Dim, clean, Reset)
	}
	if len(r.Results) == 0 {
		fmt.Printf("  %sno matching files%s\n", Dim, Reset)
	}
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}
