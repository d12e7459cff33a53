package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/miccheck/miccheck/internal/device"
)

var bannerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("205")).
	Padding(0, 1)

// Banner renders the resolved stream configuration of one device for
// operator confirmation before streaming begins.
func Banner(title string, d device.Device, cfg device.StreamConfig) string {
	body := fmt.Sprintf("%s\n\nName       : %s\nChannels   : %d\nSample Rate: %dHz",
		promptStyle.Render(title), d.Name, cfg.Channels, cfg.SampleRate)
	return bannerStyle.Render(body)
}
