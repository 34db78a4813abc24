package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/alexanderramin/scoutline/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SetColorEnabled switches lipgloss between the environment's color profile
// and plain ASCII output.
func SetColorEnabled(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// UrgencyColor returns the style for a suggestion urgency.
func UrgencyColor(u domain.Urgency) lipgloss.Style {
	switch u {
	case domain.UrgencyCritical, domain.UrgencyHigh:
		return StyleRed
	case domain.UrgencyMedium:
		return StyleYellow
	case domain.UrgencyLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// UrgencyIndicator returns a colored marker such as "● HIGH".
func UrgencyIndicator(u domain.Urgency) string {
	if u == "" {
		return StyleDim.Render("● UNKNOWN")
	}
	return UrgencyColor(u).Render("● " + strings.ToUpper(string(u)))
}

// TierBadge colors a fit tier.
func TierBadge(tier domain.FitTier) string {
	switch tier {
	case domain.FitMatch:
		return StyleGreen.Render(string(tier))
	case domain.FitReach:
		return StyleYellow.Render(string(tier))
	default:
		return StyleRed.Render(string(tier))
	}
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
