package render

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"assertfix/scanner"
)

type resultMsg scanner.FixResult

type doneMsg struct{}

type progressModel struct {
	total    int
	done     int
	modified int
	failed   int
	current  string
	finished bool
}

func (m progressModel) Init() tea.Cmd { return nil }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		m.done++
		m.current = msg.Path
		if msg.Error != "" {
			m.failed++
		} else if msg.Changed {
			m.modified++
		}
		return m, nil
	case doneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.finished {
		return ""
	}
	head := fmt.Sprintf("Fixing %d/%d ", m.done, m.total)
	stats := fmt.Sprintf("(%d modified)", m.modified)
	var failed string
	if m.failed > 0 {
		failed = fmt.Sprintf(" %d failed", m.failed)
	}

	// The escape codes carry no visible width, so budget the plain parts and
	// trim only the path, by runes, rather than slicing the styled line.
	path := m.current
	budget := GetTerminalWidth() - len(head) - len(stats) - len(failed) - 1
	if r := []rune(path); budget > 0 && len(r) > budget {
		path = string(r[len(r)-budget:])
	}

	line := head + Yellow + stats + Reset + " " + path
	if failed != "" {
		line += Red + failed + Reset
	}
	return line + "\n"
}

// Progress shows a live status line while fn fixes files. fn runs on its own
// goroutine and reports each result through the callback it receives.
// Progress returns only once fn has finished, even when the user quits the
// display early, so the caller never reads results that are still arriving.
func Progress(total int, fn func(report func(scanner.FixResult)), opts ...tea.ProgramOption) error {
	p := tea.NewProgram(progressModel{total: total}, opts...)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(func(r scanner.FixResult) { p.Send(resultMsg(r)) })
		p.Send(doneMsg{})
	}()
	_, err := p.Run()
	<-done
	return err
}
