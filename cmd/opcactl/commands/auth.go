package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
	"github.com/ihoflaz/opca-admin-dashboard/internal/session"
	"github.com/ihoflaz/opca-admin-dashboard/internal/tokenstore"
)

func loginCmd() *cobra.Command {
	var email, password, returnURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the OPCA backend and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var loginErr error
			controller.Login(rootCtx, session.LoginParams{
				Email:     email,
				Password:  password,
				ReturnURL: returnURL,
			}, func(err error) { loginErr = err })

			if loginErr != nil {
				return apiError(loginErr)
			}

			user := controller.CurrentUser()
			fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&returnURL, "return-url", "", "dashboard path to land on after login")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd() *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the OPCA backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := client.Register(rootCtx, domain.RegisterRequest{
				FullName: name,
				Email:    email,
				Password: password,
				Role:     domain.Role(role),
			})
			if err != nil {
				return apiError(err)
			}
			fmt.Printf("Registered %s (%s); run 'opcactl login' to start a session\n",
				data.User.Email, data.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "full name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "account role (user, veterinarian, admin)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for fresh credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			refreshToken, ok := store.Get(tokenstore.KindRefreshToken)
			if !ok {
				return fmt.Errorf("no refresh token stored; run 'opcactl login' first")
			}

			data, err := client.RefreshToken(rootCtx, refreshToken)
			if err != nil {
				return apiError(err)
			}

			store.Save(tokenstore.KindAccessToken, data.Token)
			store.Save(tokenstore.KindRefreshToken, data.RefreshToken)
			tokenstore.SaveUser(store, data.User)
			fmt.Println("Session refreshed")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if refresh {
				if err := controller.RefreshProfile(rootCtx); err != nil {
					return apiError(err)
				}
			}
			return printJSON(controller.CurrentUser())
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-fetch the profile from the backend")
	return cmd
}
