package main

import (
	"bufio"
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/remote"
	"github.com/heartmarshall/donorbase/internal/client/store"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage operator accounts (admin only)",
	}
	cmd.AddCommand(newUsersListCmd(e), newUsersCreateCmd(e), newUsersUpdateCmd(e), newUsersDeleteCmd(e))
	return cmd
}

func newUsersListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operators",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users := store.NewUsers(e.client)
			if err := users.List(cmd.Context()); err != nil {
				return errors.New(users.Err())
			}
			items := users.Items()
			if len(items) == 0 {
				printf(cmd, "no users\n")
				return nil
			}
			rows := make([][]string, len(items))
			for i, u := range items {
				rows[i] = []string{u.ID, u.Email, u.Name, u.Role}
			}
			printf(cmd, "%s\n", table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "EMAIL", "NAME", "ROLE").
				Rows(rows...).
				String())
			return nil
		},
	}
}

// readPassword takes the first line of stdin when the flag was left empty.
func readPassword(cmd *cobra.Command, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("password is required (use --password or pipe it on stdin)")
	}
	return strings.TrimSpace(line), nil
}

func newUsersCreateCmd(e *env) *cobra.Command {
	var in dto.UserInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := readPassword(cmd, in.Password)
			if err != nil {
				return err
			}
			in.Password = password

			u, err := store.NewUsers(e.client).Create(cmd.Context(), in)
			if err != nil {
				return userError(err)
			}
			printf(cmd, "created user %s (%s, %s)\n", u.Email, u.Role, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "login email")
	cmd.Flags().StringVarP(&in.Name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&in.Role, "role", "r", "user", "user or admin")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "initial password (read from stdin when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUsersUpdateCmd(e *env) *cobra.Command {
	var (
		name, role, password string
		resetPassword        bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename an operator, change its role or reset its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch dto.UserPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("role") {
				patch.Role = &role
			}
			if resetPassword || password != "" {
				p, err := readPassword(cmd, password)
				if err != nil {
					return err
				}
				patch.Password = &p
			}
			if patch == (dto.UserPatch{}) {
				return errors.New("nothing to update: pass --name, --role or --reset-password")
			}

			u, err := store.NewUsers(e.client).Update(cmd.Context(), args[0], patch)
			if err != nil {
				return userError(err)
			}
			printf(cmd, "updated user %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "new display name")
	cmd.Flags().StringVarP(&role, "role", "r", "", "new role: user or admin")
	cmd.Flags().StringVarP(&password, "password", "p", "", "new password")
	cmd.Flags().BoolVar(&resetPassword, "reset-password", false, "read a new password from stdin")
	return cmd
}

func newUsersDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.NewUsers(e.client).Delete(cmd.Context(), args[0]); err != nil {
				return userError(err)
			}
			printf(cmd, "deleted user %s\n", args[0])
			return nil
		},
	}
}

// userError renders server field errors like the donor commands do.
func userError(err error) error {
	if errs := apiFields(err); len(errs) > 0 {
		return fieldErrors(errs)
	}
	return errors.New(remote.Message(err))
}
