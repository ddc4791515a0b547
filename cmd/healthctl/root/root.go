package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/domain/notify"
	"github.com/yanqian/healthdash/internal/interface/cli"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

const Version = "0.1.0"

// errReported marks a failure the user has already seen as a notification.
var errReported = errors.New("reported")

// NewRootCommand builds the healthctl command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "healthctl",
		Short:         "Terminal front end for the health dashboard",
		Long:          "healthctl signs in to the health backend and renders the dashboard, trends, friends and monthly reports.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newDashboardCmd(),
		newTrendCmd("steps", "Show the steps trend and forecast"),
		newTrendCmd("calories", "Show the calories trend and forecast"),
		newHistoryCmd(),
		newFriendsCmd(),
		newSearchCmd(),
		newAddFriendCmd(),
		newLogStepsCmd(),
		newLogMealCmd(),
		newTargetsCmd(),
		newReportCmd(),
	)
	return cmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, cli.Bad.Render(cli.IconError+" "+apperrors.Message(err)))
		}
		os.Exit(1)
	}
}

// action is the body of a command once the shell is wired and the session restored.
type action func(ctx context.Context, core *bootstrap.Core) error

// withCore wires the shell, restores the saved session and runs fn. Notifications raised
// along the way are printed after fn returns, whether or not it failed.
func withCore(cmd *cobra.Command, needSession bool, fn action) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	core, err := initializeCore()
	if err != nil {
		return err
	}
	if _, err := core.Sessions.Restore(ctx); err != nil {
		return err
	}
	core.Logger.Debug("command started", "command", cmd.Name(), "view", core.Sessions.View())
	if needSession && !core.Sessions.Authenticated() {
		return apperrors.Wrap(apperrors.CodeNotAuthenticated, "Please log in first", nil)
	}

	runErr := fn(ctx, core)
	notices := core.Notices.Drain()
	if out := cli.Notifications(notices); out != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	if runErr != nil && reported(notices) {
		return fmt.Errorf("%w: %w", errReported, runErr)
	}
	return runErr
}

func reported(notices []notify.Notification) bool {
	for _, n := range notices {
		if n.Level == notify.LevelError {
			return true
		}
	}
	return false
}

func show(cmd *cobra.Command, text string) {
	fmt.Fprintln(cmd.OutOrStdout(), text)
}
