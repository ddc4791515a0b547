package root

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/interface/cli"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find users to add as friends",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if _, err := core.Search.Search(ctx, query); err != nil {
					return err
				}
				show(cmd, cli.Search(core.Search.State()))
				return nil
			})
		},
	}
}

func newAddFriendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-friend <username>",
		Short: "Add a user as a friend and show the updated leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, true, func(ctx context.Context, core *bootstrap.Core) error {
				if err := core.Search.Select(ctx, args[0]); err != nil {
					return err
				}
				if view, ok := core.Aggregator.Views().Friends(); ok {
					show(cmd, cli.Friends(view))
				}
				return nil
			})
		},
	}
}
