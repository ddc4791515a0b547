package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/domain/chart"
	"github.com/yanqian/healthdash/internal/domain/dashboard"
	"github.com/yanqian/healthdash/internal/interface/cli"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's stats, meals and goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Aggregator.LoadDashboard(ctx); err != nil {
					return err
				}
				view, _ := core.Aggregator.Views().Dashboard()
				show(cmd, cli.Dashboard(view, core.Sessions.CurrentIdentity().DisplayName))
				return nil
			})
		},
	}
}

// newTrendCmd builds the steps and calories commands, which differ only in metric.
func newTrendCmd(name, short string) *cobra.Command {
	section := dashboard.Section(name)
	metric := chart.Metric(name)
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Aggregator.LoadSection(ctx, section); err != nil {
					return err
				}
				view, _ := core.Aggregator.Views().Trend(metric)
				show(cmd, cli.Trend(view))
				return nil
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent daily entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Aggregator.LoadHistory(ctx); err != nil {
					return err
				}
				view, _ := core.Aggregator.Views().History()
				show(cmd, cli.History(view))
				return nil
			})
		},
	}
}

func newFriendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "friends",
		Short: "Show the leaderboard and friend activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Aggregator.LoadLeaderboard(ctx); err != nil {
					return err
				}
				view, _ := core.Aggregator.Views().Friends()
				show(cmd, cli.Friends(view))
				return nil
			})
		},
	}
}
