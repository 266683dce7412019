package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grayops-hq/grayctl/pkg/audit"
	"github.com/grayops-hq/grayctl/pkg/graylog"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts and their permissions",
	}

	cmd.AddCommand(
		newUsersListCommand(globalOpts),
		newUsersGetCommand(globalOpts),
		newUsersRemoveCommand(globalOpts),
		newUsersGrantCommand(globalOpts),
	)

	return cmd
}

func newUsersListCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List user accounts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			users, ok, err := rt.client.Users(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			if !ok {
				return fmt.Errorf("list users: server returned no result")
			}
			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
			printUserTable(users)
			return nil
		},
	}
}

func newUsersGetCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <username>",
		Short: "Show one user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			user, ok, err := rt.client.User(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get user: %w", err)
			}
			if !ok {
				return fmt.Errorf("user %q not found", args[0])
			}

			printUserTable([]graylog.User{user})
			return nil
		},
	}
}

func newUsersRemoveCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <user-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a user account by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			accepted, err := rt.client.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete user: %w", err)
			}

			rt.recordAudit(cmd.Context(), audit.NewEvent("user.delete", args[0], accepted))

			if !accepted {
				return fmt.Errorf("server rejected deletion of user %q", args[0])
			}
			fmt.Printf("User %s deleted.\n", args[0])
			return nil
		},
	}
}

func newUsersGrantCommand(globalOpts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "grant <username> <permission>...",
		Short: "Replace a user's permission set",
		Example: `  # Grant read access to all streams
  grayctl users grant alice streams:read`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), globalOpts)
			if err != nil {
				return err
			}
			defer rt.close()

			username, perms := args[0], args[1:]
			accepted, err := rt.client.SetUserPermissions(cmd.Context(), username, perms)
			if err != nil {
				return fmt.Errorf("set permissions: %w", err)
			}

			evt := audit.NewEvent("user.permissions.update", username, accepted)
			evt.Username = username
			rt.recordAudit(cmd.Context(), evt)

			if !accepted {
				return fmt.Errorf("server rejected permission update for %q", username)
			}
			fmt.Printf("Permissions for %s set to [%s].\n", username, strings.Join(perms, ", "))
			return nil
		},
	}
}

func printUserTable(users []graylog.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tFULL NAME\tEMAIL\tPERMISSIONS")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.FullName, u.Email, strings.Join(u.Permissions, ","))
	}
	w.Flush()
}
