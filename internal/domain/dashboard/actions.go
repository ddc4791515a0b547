package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
	"github.com/yanqian/healthdash/pkg/util"
)

const monthLayout = "2006-01"

// SaveSteps records steps for date (today when empty) and refreshes the steps section.
func (a *Aggregator) SaveSteps(ctx context.Context, date string, steps int) error {
	if err := a.saveSteps(ctx, date, steps); err != nil {
		return err
	}
	_ = a.LoadSteps(ctx)
	return nil
}

// SaveQuickSteps records today's steps from the dashboard card.
func (a *Aggregator) SaveQuickSteps(ctx context.Context, steps int) error {
	if err := a.saveSteps(ctx, "", steps); err != nil {
		return err
	}
	_ = a.LoadDashboard(ctx)
	return nil
}

// SaveMeal appends a meal for date (today when empty) and refreshes the calories section.
func (a *Aggregator) SaveMeal(ctx context.Context, date, name string, calories int) error {
	if err := a.saveMeal(ctx, date, name, calories); err != nil {
		return err
	}
	_ = a.LoadCalories(ctx)
	return nil
}

// SaveQuickMeal appends a meal for today from the dashboard card.
func (a *Aggregator) SaveQuickMeal(ctx context.Context, name string, calories int) error {
	if err := a.saveMeal(ctx, "", name, calories); err != nil {
		return err
	}
	_ = a.LoadDashboard(ctx)
	return nil
}

// UpdateTargets stores new goals and reloads the dashboard.
func (a *Aggregator) UpdateTargets(ctx context.Context, targets health.Targets) error {
	if targets.DailyStepsGoal < 0 || targets.WeeklyStepsGoal < 0 ||
		targets.DailyCaloriesGoal < 0 || targets.WeeklyCaloriesGoal < 0 {
		return a.fail(apperrors.Invalid("Goals must be positive numbers"))
	}
	if err := a.api.UpdateTargets(ctx, targets); err != nil {
		return a.fail(err)
	}
	a.notifier.Notify(notify.LevelSuccess, "Goals updated successfully!")
	_ = a.LoadDashboard(ctx)
	return nil
}

func (a *Aggregator) saveSteps(ctx context.Context, date string, steps int) error {
	if steps <= 0 {
		return a.fail(apperrors.Invalid("Please enter valid steps"))
	}
	date, err := a.resolveDate(date)
	if err != nil {
		return a.fail(err)
	}
	if err := a.api.SaveEntry(ctx, health.EntryRequest{Date: date, Steps: steps}); err != nil {
		return a.fail(err)
	}
	a.notifier.Notify(notify.LevelSuccess, "Steps saved successfully!")
	return nil
}

func (a *Aggregator) saveMeal(ctx context.Context, date, name string, calories int) error {
	name = strings.TrimSpace(name)
	if name == "" || calories <= 0 {
		return a.fail(apperrors.Invalid("Please enter valid meal information"))
	}
	date, err := a.resolveDate(date)
	if err != nil {
		return a.fail(err)
	}
	if err := a.api.SaveMeal(ctx, health.MealRequest{Date: date, Name: name, Calories: calories}); err != nil {
		return a.fail(err)
	}
	a.notifier.Notify(notify.LevelSuccess, "Meal added successfully!")
	return nil
}

func (a *Aggregator) resolveDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return a.today(), nil
	}
	if _, err := time.Parse(util.DateLayout, date); err != nil {
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	return date, nil
}

// ParseMonth splits a YYYY-MM month picker value.
func ParseMonth(value string) (year, month int, err error) {
	ts, err := time.Parse(monthLayout, strings.TrimSpace(value))
	if err != nil {
		return 0, 0, apperrors.Wrap(apperrors.CodeInvalidInput, "month must be formatted as YYYY-MM", err)
	}
	return ts.Year(), int(ts.Month()), nil
}
