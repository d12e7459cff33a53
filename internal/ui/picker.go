// Package ui implements the terminal surfaces of the tool: the device
// picker, the streaming wait screen, and the stream info banner.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miccheck/miccheck/internal/device"
)

// ErrAborted is returned when the operator backs out of the picker.
var ErrAborted = fmt.Errorf("selection aborted")

var (
	promptStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// pickerModel is the Bubble Tea model for selecting one device from a
// list. The default device is listed first.
type pickerModel struct {
	prompt  string
	devices []device.Device
	cursor  int
	chosen  bool
	aborted bool
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.chosen || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt) + "\n\n")
	for i, d := range m.devices {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(d.Name) + "\n")
		} else {
			b.WriteString("  " + d.Name + "\n")
		}
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓ move · enter select · esc cancel") + "\n")
	return b.String()
}

// Choose prompts the operator to pick one of the given devices.
func Choose(prompt string, devices []device.Device) (device.Device, error) {
	if len(devices) == 0 {
		return device.Device{}, fmt.Errorf("no devices available")
	}

	p := tea.NewProgram(pickerModel{prompt: prompt, devices: devices})
	final, err := p.Run()
	if err != nil {
		return device.Device{}, fmt.Errorf("failed to run device picker: %w", err)
	}

	m := final.(pickerModel)
	if m.aborted {
		return device.Device{}, ErrAborted
	}
	return m.devices[m.cursor], nil
}
