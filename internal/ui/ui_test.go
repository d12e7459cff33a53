package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miccheck/miccheck/internal/device"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testDevices() []device.Device {
	return []device.Device{
		{Name: "Default (Built-in)"},
		{Name: "Built-in"},
		{Name: "USB Mic"},
	}
}

func TestPickerCursorMovesAndSelects(t *testing.T) {
	var m tea.Model = pickerModel{prompt: "Select input device", devices: testDevices()}

	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down")) // past the end, must clamp
	m, _ = m.Update(keyMsg("enter"))

	pm := m.(pickerModel)
	if !pm.chosen {
		t.Fatal("expected a selection after enter")
	}
	if pm.cursor != 2 {
		t.Fatalf("expected cursor clamped at 2, got %d", pm.cursor)
	}
}

func TestPickerCursorClampsAtTop(t *testing.T) {
	var m tea.Model = pickerModel{prompt: "p", devices: testDevices()}

	m, _ = m.Update(keyMsg("up"))
	if m.(pickerModel).cursor != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", m.(pickerModel).cursor)
	}
}

func TestPickerEscAborts(t *testing.T) {
	var m tea.Model = pickerModel{prompt: "p", devices: testDevices()}

	m, _ = m.Update(keyMsg("esc"))
	if !m.(pickerModel).aborted {
		t.Fatal("expected esc to abort the picker")
	}
}

func TestPickerViewMarksCursor(t *testing.T) {
	m := pickerModel{prompt: "Select input device", devices: testDevices(), cursor: 1}

	view := m.View()
	if !strings.Contains(view, "Select input device") {
		t.Fatalf("expected prompt in view, got %q", view)
	}
	for _, d := range testDevices() {
		if !strings.Contains(view, d.Name) {
			t.Fatalf("expected device %q in view", d.Name)
		}
	}
}

func TestWaitModelStopsOnStopKeys(t *testing.T) {
	for _, key := range []string{"esc", "q", "backspace"} {
		var m tea.Model = waitModel{}
		m, _ = m.Update(keyMsg(key))
		if !m.(waitModel).stopped {
			t.Fatalf("expected %q to stop streaming", key)
		}
	}
}

func TestWaitModelIgnoresOtherKeys(t *testing.T) {
	var m tea.Model = waitModel{}
	m, _ = m.Update(keyMsg("x"))
	if m.(waitModel).stopped {
		t.Fatal("unrelated key must not stop streaming")
	}
}

func TestWaitModelStopsOnExternalRequest(t *testing.T) {
	var m tea.Model = waitModel{}
	m, _ = m.Update(stopRequestedMsg{})
	if !m.(waitModel).stopped {
		t.Fatal("expected external stop request to stop streaming")
	}
}

func TestBannerShowsResolvedConfig(t *testing.T) {
	d := device.Device{Name: "Default (USB Mic)"}
	cfg := device.StreamConfig{Channels: 2, SampleRate: 48000}

	banner := Banner("Input Device", d, cfg)
	for _, want := range []string{"Input Device", "Default (USB Mic)", "48000Hz"} {
		if !strings.Contains(banner, want) {
			t.Fatalf("expected banner to contain %q, got %q", want, banner)
		}
	}
}
