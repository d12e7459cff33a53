package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// stopRequestedMsg asks the wait screen to shut down from outside the
// terminal, e.g. on SIGINT.
type stopRequestedMsg struct{}

// waitModel shows the streaming status until the operator hits a stop key.
type waitModel struct {
	stopped bool
}

func (m waitModel) Init() tea.Cmd {
	return nil
}

func (m waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace", "ctrl+c":
			m.stopped = true
			return m, tea.Quit
		}
	case stopRequestedMsg:
		m.stopped = true
		return m, tea.Quit
	}
	return m, nil
}

func (m waitModel) View() string {
	if m.stopped {
		return ""
	}
	var b strings.Builder
	b.WriteString(promptStyle.Render("Playing microphone through output device...") + "\n")
	b.WriteString(helpStyle.Render("Press esc, q or backspace to stop") + "\n")
	return b.String()
}

// WaitForStop blocks until the operator presses a stop key or stop is
// closed (the signal handler path). The streams keep running in their own
// callback contexts the whole time.
func WaitForStop(stop <-chan struct{}) error {
	p := tea.NewProgram(waitModel{})

	if stop != nil {
		go func() {
			<-stop
			p.Send(stopRequestedMsg{})
		}()
	}

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
