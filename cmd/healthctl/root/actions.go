package root

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
)

func newLogStepsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log-steps <steps>",
		Short: "Record steps for today or --date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := parseCount(args[0])
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if date == "" {
					return core.Aggregator.SaveQuickSteps(ctx, steps)
				}
				return core.Aggregator.SaveSteps(ctx, date, steps)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to record (YYYY-MM-DD, default today)")
	return cmd
}

func newLogMealCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log-meal <name> <calories>",
		Short: "Add a meal for today or --date",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			calories := parseCount(args[1])
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if date == "" {
					return core.Aggregator.SaveQuickMeal(ctx, name, calories)
				}
				return core.Aggregator.SaveMeal(ctx, date, name, calories)
			})
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day of the meal (YYYY-MM-DD, default today)")
	return cmd
}

func newTargetsCmd() *cobra.Command {
	var dailySteps, weeklySteps, dailyCalories, weeklyCalories int

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Update step and calorie goals; unset flags keep their current value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Aggregator.LoadDashboard(ctx); err != nil {
					return err
				}
				view, _ := core.Aggregator.Views().Dashboard()
				goals := view.Goals
				flags := cmd.Flags()
				if flags.Changed("daily-steps") {
					goals.DailyStepsGoal = dailySteps
				}
				if flags.Changed("weekly-steps") {
					goals.WeeklyStepsGoal = weeklySteps
				}
				if flags.Changed("daily-calories") {
					goals.DailyCaloriesGoal = dailyCalories
				}
				if flags.Changed("weekly-calories") {
					goals.WeeklyCaloriesGoal = weeklyCalories
				}
				// The reload after the update raises the reminder again if it is still due.
				core.Notices.Drain()
				return core.Aggregator.UpdateTargets(ctx, goals)
			})
		},
	}

	cmd.Flags().IntVar(&dailySteps, "daily-steps", 0, "Daily steps goal")
	cmd.Flags().IntVar(&weeklySteps, "weekly-steps", 0, "Weekly steps goal")
	cmd.Flags().IntVar(&dailyCalories, "daily-calories", 0, "Daily calories goal")
	cmd.Flags().IntVar(&weeklyCalories, "weekly-calories", 0, "Weekly calories goal")
	return cmd
}

// parseCount reads a whole number; anything unparsable becomes 0 and fails validation.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
