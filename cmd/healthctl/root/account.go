package root

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yanqian/healthdash/internal/bootstrap"
	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/interface/cli"
)

// passwordEnv lets scripts avoid putting the password on the command line.
const passwordEnv = "HEALTHCTL_PASSWORD"

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, false, func(ctx context.Context, core *bootstrap.Core) error {
				identity, err := core.Accounts.Login(ctx, health.LoginRequest{
					Username: username,
					Password: passwordOrEnv(password),
				})
				if err != nil {
					return err
				}
				show(cmd, cli.LabelValue("Signed in as", identity.DisplayName))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (or set "+passwordEnv+")")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var req health.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, false, func(ctx context.Context, core *bootstrap.Core) error {
				req.Password = passwordOrEnv(req.Password)
				identity, err := core.Accounts.Register(ctx, req)
				if err != nil {
					return err
				}
				show(cmd, cli.LabelValue("Signed in as", identity.DisplayName))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Email address")
	cmd.Flags().StringVarP(&req.DisplayName, "display-name", "n", "", "Name shown to friends")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Account password (or set "+passwordEnv+")")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCore(cmd, false, func(ctx context.Context, core *bootstrap.Core) error {
				return core.Accounts.Logout(ctx)
			})
		},
	}
}

func passwordOrEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passwordEnv)
}
