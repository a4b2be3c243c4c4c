package main

import (
	"github.com/spf13/cobra"

	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/pkg/clients/api"
)

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage operator accounts"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			return c.emit(users, func() { c.userTable(users...) })
		}),
	}

	var req models.SignUpRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, _ []string) error {
			user, err := client.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			return c.emit(user, func() { c.userTable(user) })
		}),
	}
	create.Flags().StringVar(&req.Username, "username", "", "login name")
	create.Flags().StringVar(&req.Email, "email", "", "e-mail address")
	create.Flags().StringVar(&req.Password, "password", "", "initial password")
	create.Flags().StringSliceVar(&req.Roles, "role", nil, "admin, vendedor or almacenista (repeatable)")
	create.Flags().Int64SliceVar(&req.Branches, "branch", nil, "branch id (repeatable)")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, client *api.Client, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.DeleteUser(cmd.Context(), userID); err != nil {
				return err
			}
			c.println("user %d deleted", userID)
			return nil
		}),
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func (c *cli) userTable(users ...models.User) {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		roles := make([]string, 0, len(u.Roles))
		for _, r := range u.Roles {
			roles = append(roles, string(r))
		}
		branches := make([]string, 0, len(u.BranchIDs))
		for _, b := range u.BranchIDs {
			branches = append(branches, id(b))
		}
		rows = append(rows, []string{id(u.ID), u.Username, u.Email, join(roles), join(branches)})
	}
	c.table([]string{"ID", "Username", "Email", "Roles", "Branches"}, rows)
}
