package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/examplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RunStatusPill returns a colored indicator for a generation run status.
func RunStatusPill(status domain.RunStatus) string {
	switch status {
	case domain.RunRunning:
		return StyleYellow.Render("● RUNNING")
	case domain.RunSucceeded:
		return StyleGreen.Render("● SUCCEEDED")
	case domain.RunFailed:
		return StyleRed.Render("● FAILED")
	case domain.RunCancelled:
		return StyleDim.Render("● CANCELLED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// SessionStatusStyle returns the style used for a session status cell.
func SessionStatusStyle(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.SessionCompleted:
		return StyleGreen
	case domain.SessionInProgress:
		return StyleYellow
	case domain.SessionSkipped:
		return StyleDim
	default:
		return StyleFg
	}
}

// KindStyle returns the style used for a session kind cell.
func KindStyle(kind domain.SessionKind) lipgloss.Style {
	switch kind {
	case domain.KindStudy:
		return StyleBlue
	case domain.KindReview:
		return StyleGreen
	case domain.KindTest:
		return StyleYellow
	case domain.KindSimulation:
		return StylePurple
	default:
		return StyleFg
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
