package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/examplan/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func examplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}

func validateShortIDInput(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("short ID is required")
	}
	return nil
}

func validateHoursInput(value string) error {
	_, err := parseWeeklyHours(value)
	return err
}

// runPlanForm collects the plan fields interactively.
func runPlanForm(shortID, name, start, exam, hours *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Short ID").
				Placeholder("BAR25").
				Value(shortID).
				Validate(validateShortIDInput),
			huh.NewInput().
				Title("Plan name").
				Placeholder("Bar Exam 2025").
				Value(name),
			huh.NewInput().
				Title("Start date (YYYY-MM-DD)").
				Placeholder("2025-01-06").
				Value(start).
				Validate(validateDate),
			huh.NewInput().
				Title("Exam date (YYYY-MM-DD)").
				Placeholder("2025-06-01").
				Value(exam).
				Validate(validateDate),
			huh.NewInput().
				Title("Hours per weekday, Monday first").
				Placeholder("2,2,2,2,2,4,0").
				Value(hours).
				Validate(validateHoursInput),
		),
	).WithTheme(examplanHuhTheme()).WithShowHelp(false)

	return form.Run()
}
