package generate

import (
	"errors"
	"fmt"

	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/apexcov/internal/models"
	"github.com/jakoblorz/apexcov/internal/tui"
)

// Flow drives the interactive unit selection before a generation run
type Flow struct {
	theme *huh.Theme
}

// NewFlow constructs a Flow with the shared huh theme
func NewFlow() *Flow {
	return &Flow{
		theme: tui.NewHuhTheme(),
	}
}

// Run asks which uncovered units to generate tests for, then confirms.
// A nil slice with nil error means the user aborted.
func (f *Flow) Run(units []models.SourceUnit) ([]models.SourceUnit, error) {
	if len(units) == 0 {
		return nil, nil
	}

	selected, err := f.selectUnits(units)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	if len(selected) == 0 {
		return nil, nil
	}

	confirmed, err := f.confirm(len(selected))
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	if !confirmed {
		return nil, nil
	}

	return selected, nil
}

func (f *Flow) selectUnits(units []models.SourceUnit) ([]models.SourceUnit, error) {
	byName := make(map[string]models.SourceUnit, len(units))
	selected := make([]string, 0, len(units))
	opts := make([]huh.Option[string], 0, len(units))
	for _, unit := range units {
		byName[unit.Name] = unit
		selected = append(selected, unit.Name)
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", unit.Name, unit.Path), unit.Name).Selected(true))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle selection")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Uncovered Classes").
			Description("Select the classes to generate test classes for."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return nil, err
	}

	result := make([]models.SourceUnit, 0, len(selected))
	for _, name := range selected {
		if unit, ok := byName[name]; ok {
			result = append(result, unit)
		}
	}
	return result, nil
}

func (f *Flow) confirm(count int) (bool, error) {
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Generate %d test class(es)?", count)).
				Description("Each class is sent to the completion service; generated tests are written beside their subjects.").
				Value(&confirmed),
		),
	).
		WithTheme(f.theme).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}
