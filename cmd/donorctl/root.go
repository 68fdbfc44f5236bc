package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/app"
	"github.com/heartmarshall/donorbase/internal/client/api"
	"github.com/heartmarshall/donorbase/internal/config"
)

// env is what every subcommand needs, built once before it runs.
type env struct {
	cfg    *config.ClientConfig
	client *api.Client
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	var verbose bool

	root := &cobra.Command{
		Use:           "donorctl",
		Short:         "Manage donor records from the terminal",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			var logOut io.Writer = io.Discard
			if verbose {
				logOut = cmd.ErrOrStderr()
			}
			e.cfg = cfg
			e.logger = app.NewLoggerTo(logOut, cfg.Log)
			e.client = api.New(cfg.BaseURL,
				&http.Client{Timeout: cfg.RequestTimeout},
				api.FileTokenStore{Path: cfg.TokenPath},
			)
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newLoginCmd(e),
		newLogoutCmd(e),
		newDonorsCmd(e),
		newUsersCmd(e),
		newSettingsCmd(e),
		newUICmd(e),
		newChatCmd(e),
	)
	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
