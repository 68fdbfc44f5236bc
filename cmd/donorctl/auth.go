package main

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/remote"
)

func newLoginCmd(e *env) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("password is required (use --password or pipe it on stdin)")
				}
				password = strings.TrimSpace(line)
			}

			res, err := e.client.Login(cmd.Context(), email, password)
			if err != nil {
				return errors.New(remote.Message(err))
			}
			printf(cmd, "logged in as %s (%s), token valid until %s\n",
				res.User.Email, res.User.Role, res.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin when empty)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := e.client.Logout(); err != nil {
				return err
			}
			printf(cmd, "logged out\n")
			return nil
		},
	}
}
