package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ihoflaz/opca-admin-dashboard/internal/api"
	"github.com/ihoflaz/opca-admin-dashboard/internal/domain"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}
	cmd.AddCommand(
		usersListCmd(),
		usersGetCmd(),
		usersCreateCmd(),
		usersUpdateCmd(),
		usersDeleteCmd(),
		usersStatsCmd(),
	)
	return cmd
}

func usersListCmd() *cobra.Command {
	var p api.ListUsersParams
	var role string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			p.Role = domain.Role(role)
			page, err := client.Users(rootCtx, p)
			if err != nil {
				return apiError(err)
			}
			return printJSON(page)
		},
	}

	cmd.Flags().IntVar(&p.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "page size")
	cmd.Flags().StringVar(&role, "role", "", "filter by role (user, veterinarian, admin)")
	cmd.Flags().StringVar(&p.Search, "search", "", "match against name and email")
	cmd.Flags().StringVar(&p.SortBy, "sort-by", "", "sort field")
	cmd.Flags().StringVar(&p.SortOrder, "sort-order", "", "asc or desc")
	return cmd
}

func usersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			user, err := client.UserByID(rootCtx, args[0])
			if err != nil {
				return apiError(err)
			}
			return printJSON(user)
		},
	}
}

func usersCreateCmd() *cobra.Command {
	var req domain.CreateUserRequest
	var role string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			req.Role = domain.Role(role)
			user, err := client.CreateUser(rootCtx, req)
			if err != nil {
				return apiError(err)
			}
			return printJSON(user)
		},
	}

	cmd.Flags().StringVar(&req.FullName, "name", "", "full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "email address")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleUser), "account role (user, veterinarian, admin)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func usersUpdateCmd() *cobra.Command {
	var req domain.UpdateUserRequest
	var role string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			req.Role = domain.Role(role)
			user, err := client.UpdateUser(rootCtx, args[0], req)
			if err != nil {
				return apiError(err)
			}
			return printJSON(user)
		},
	}

	cmd.Flags().StringVar(&req.FullName, "name", "", "new full name")
	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "new email address")
	cmd.Flags().StringVar(&role, "role", "", "new role (user, veterinarian, admin)")
	return cmd
}

func usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if err := client.DeleteUser(rootCtx, args[0]); err != nil {
				return apiError(err)
			}
			fmt.Printf("Deleted user %s\n", args[0])
			return nil
		},
	}
}

func usersStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate user statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			stats, err := client.UserStats(rootCtx)
			if err != nil {
				return apiError(err)
			}
			return printJSON(stats)
		},
	}
}
