package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bwc/pos/pkg/clients/api"
)

const envPassword = "POSCTL_PASSWORD"

func (c *cli) loginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv(envPassword)
			}
			if username == "" || password == "" {
				return errors.New("both --username and --password (or $" + envPassword + ") are required")
			}

			store, err := c.sessions()
			if err != nil {
				return err
			}
			previous, err := store.Load()
			if err != nil {
				return err
			}
			baseURL := c.baseURL(previous)

			resp, err := api.NewClient(baseURL, nil, api.WithTimeout(c.timeout)).Signin(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			session := api.Session{BaseURL: baseURL, AccessToken: resp.Token, Username: resp.Username, Roles: resp.Roles}
			if err := store.Save(session); err != nil {
				return err
			}
			c.println("logged in as %s (%s)", resp.Username, join(resp.Roles))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (or $"+envPassword+")")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(*cobra.Command, []string) error {
			store, err := c.sessions()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			c.println("logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(*cobra.Command, []string) error {
			store, err := c.sessions()
			if err != nil {
				return err
			}
			session, err := store.Load()
			if err != nil {
				return err
			}
			if !session.LoggedIn() {
				return errNotLoggedIn
			}
			c.println("%s @ %s (%s)", session.Username, c.baseURL(session), join(session.Roles))
			return nil
		},
	}
}
