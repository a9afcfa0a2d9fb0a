package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/excusedex/internal/constants"
	"github.com/julianstephens/excusedex/internal/models"
)

func newExcuseFormModel() *ExcuseFormModel {
	return &ExcuseFormModel{
		Category: constants.DefaultCategory,
		Score:    constants.DefaultScore,
	}
}

func notBlank(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " cannot be empty")
		}
		return nil
	}
}

// NewExcuseForm builds the add form bound to fm.
func NewExcuseForm(fm *ExcuseFormModel, date string) *huh.Form {
	categories := make([]huh.Option[constants.Category], 0, len(constants.Categories))
	for _, c := range constants.Categories {
		categories = append(categories, huh.NewOption(models.CategoryLabel(c), c))
	}

	scores := make([]huh.Option[int], 0, constants.MaxScore)
	for s := constants.MaxScore; s >= constants.MinScore; s-- {
		scores = append(scores, huh.NewOption(strings.Repeat("★", s)+" "+strconv.Itoa(s), s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What didn't get done?").
				Description(date).
				Value(&fm.Task).
				Validate(notBlank("task")),
			huh.NewText().
				Title("Why not?").
				Value(&fm.Reason).
				Validate(notBlank("reason")),
			huh.NewSelect[constants.Category]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewSelect[int]().
				Title("Candor score").
				Options(scores...).
				Value(&fm.Score),
		),
	)
}
