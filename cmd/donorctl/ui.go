package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/chat"
	"github.com/heartmarshall/donorbase/internal/client/enrich"
	"github.com/heartmarshall/donorbase/internal/client/store"
	"github.com/heartmarshall/donorbase/internal/client/tui"
)

func newUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive donor table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), tui.Deps{
				Donors:   store.NewDonors(e.client),
				Enricher: enrich.New(e.client, e.logger),
				Details:  e.client,
				Chat:     chatOptions(e),
				Logger:   e.logger,
			})
		},
	}
}

// chatOptions builds sequencer options from config. donorctl ships without
// a speech recognizer, so voice input is reported as unavailable.
func chatOptions(e *env) chat.Options {
	return chat.Options{
		WelcomeInterval: e.cfg.Chat.WelcomeInterval,
		ReplyDelay:      e.cfg.Chat.ReplyDelay,
	}
}
