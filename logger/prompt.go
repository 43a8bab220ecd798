package logger

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Confirm asks a yes/no question with def preselected.
func Confirm(title string, def bool) (bool, error) {
	confirm := def

	err := huh.NewConfirm().
		Title(title).
		Affirmative("yes").
		Negative("no").
		Value(&confirm).
		WithTheme(
			promptTheme(),
		).
		Run()

	return confirm, err
}

// Select asks for exactly one of options and returns its index.
func Select(title string, options []string, def int) (int, error) {
	choice := def

	opts := make([]huh.Option[int], 0, len(options))
	for i, o := range options {
		opts = append(opts, huh.NewOption(o, i))
	}

	err := huh.NewSelect[int]().
		Title(title).
		Options(opts...).
		Value(&choice).
		WithTheme(promptTheme()).
		Run()

	return choice, err
}

// MultiSelect asks for any subset of options, all preselected, and returns
// the chosen indexes in option order.
func MultiSelect(title string, options []string) ([]int, error) {
	var chosen []int

	opts := make([]huh.Option[int], 0, len(options))
	for i, o := range options {
		opts = append(opts, huh.NewOption(o, i).Selected(true))
	}

	err := huh.NewMultiSelect[int]().
		Title(title).
		Options(opts...).
		Value(&chosen).
		WithTheme(promptTheme()).
		Run()

	return chosen, err
}

func promptTheme() *huh.Theme {
	t := huh.ThemeBase()

	var (
		neutral = lipgloss.Color(Neutral90)
		purple  = lipgloss.Color(Purple70)
		green   = lipgloss.Color(Green70)
	)

	t.Focused.Base = t.Focused.Base.BorderForeground(purple).PaddingTop(1) // sideline
	t.Focused.Title = t.Focused.Title.Foreground(purple)                   // description

	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(purple).Bold(true) // selected tile
	t.Focused.BlurredButton = t.Focused.BlurredButton.Background(neutral)           // unselected tile

	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(purple)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(purple)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(green)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
