package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bwc/pos/pkg/clients/api"
)

// envServer overrides the API base URL when no flag is given.
const envServer = "POSCTL_SERVER"

var errNotLoggedIn = errors.New("not logged in, run 'posctl login' first")

// cli holds the state shared by every subcommand.
type cli struct {
	out         io.Writer
	server      string
	sessionPath string
	jsonOutput  bool
	timeout     time.Duration
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Operate the shoe store point of sale from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.server, "server", "", "API base URL (default from session, $"+envServer+" or "+api.DefaultBaseURL+")")
	flags.StringVar(&c.sessionPath, "session", "", "session file (default $XDG_CONFIG_HOME/bwc/session.yaml)")
	flags.BoolVar(&c.jsonOutput, "json", false, "print raw JSON instead of tables")
	flags.DurationVar(&c.timeout, "timeout", 15*time.Second, "per-request timeout")

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.branchesCmd(),
		c.productsCmd(),
		c.lookupCmd("brands"),
		c.lookupCmd("categories"),
		c.lookupCmd("sizes"),
		c.usersCmd(),
		c.stockCmd(),
		c.movementsCmd(),
		c.salesCmd(),
		c.purchasesCmd(),
		c.dashboardCmd(),
	)
	return root
}

func (c *cli) sessions() (*api.SessionStore, error) {
	return api.NewSessionStore(c.sessionPath)
}

// baseURL resolves the server from the flag, the session, the environment
// and finally the default, in that order.
func (c *cli) baseURL(session api.Session) string {
	switch {
	case c.server != "":
		return c.server
	case session.BaseURL != "":
		return session.BaseURL
	case os.Getenv(envServer) != "":
		return os.Getenv(envServer)
	default:
		return api.DefaultBaseURL
	}
}

// client returns an authenticated client built from the stored session.
func (c *cli) client() (*api.Client, error) {
	store, err := c.sessions()
	if err != nil {
		return nil, err
	}
	session, err := store.Load()
	if err != nil {
		return nil, err
	}
	if !session.LoggedIn() {
		return nil, errNotLoggedIn
	}
	return api.NewClient(c.baseURL(session), session, api.WithTimeout(c.timeout)), nil
}

// run wraps a command body that needs an authenticated client.
func (c *cli) run(fn func(cmd *cobra.Command, client *api.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, err := c.client()
		if err != nil {
			return err
		}
		if err := fn(cmd, client, args); err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
				return fmt.Errorf("%w (session expired? run 'posctl login')", err)
			}
			return err
		}
		return nil
	}
}
