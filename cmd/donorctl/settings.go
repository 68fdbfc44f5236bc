package main

import (
	"errors"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/remote"
	"github.com/heartmarshall/donorbase/internal/client/store"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

func newSettingsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "List and change service settings",
	}
	cmd.AddCommand(newSettingsListCmd(e), newSettingsCreateCmd(e), newSettingsUpdateCmd(e), newSettingsDeleteCmd(e))
	return cmd
}

func newSettingsListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := store.NewSettings(e.client)
			if err := settings.List(cmd.Context()); err != nil {
				return errors.New(settings.Err())
			}
			items := settings.Items()
			if len(items) == 0 {
				printf(cmd, "no settings\n")
				return nil
			}
			rows := make([][]string, len(items))
			for i, s := range items {
				desc := ""
				if s.Description != nil {
					desc = *s.Description
				}
				rows[i] = []string{s.ID, s.Key, s.Value, desc}
			}
			printf(cmd, "%s\n", table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "KEY", "VALUE", "DESCRIPTION").
				Rows(rows...).
				String())
			return nil
		},
	}
}

func newSettingsCreateCmd(e *env) *cobra.Command {
	var (
		in   dto.SettingInput
		desc string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a setting",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if desc != "" {
				in.Description = &desc
			}
			s, err := store.NewSettings(e.client).Create(cmd.Context(), in)
			if err != nil {
				return settingError(err)
			}
			printf(cmd, "created setting %s=%s (%s)\n", s.Key, s.Value, s.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in.Key, "key", "k", "", "setting key")
	cmd.Flags().StringVar(&in.Value, "value", "", "setting value")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "what the setting controls")
	_ = cmd.MarkFlagRequired("key")
	return cmd
}

func newSettingsUpdateCmd(e *env) *cobra.Command {
	var value, desc string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the value or description of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch dto.SettingPatch
			if cmd.Flags().Changed("value") {
				patch.Value = &value
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &desc
			}
			if patch == (dto.SettingPatch{}) {
				return errors.New("nothing to update: pass --value or --description")
			}

			s, err := store.NewSettings(e.client).Update(cmd.Context(), args[0], patch)
			if err != nil {
				return settingError(err)
			}
			printf(cmd, "updated setting %s=%s\n", s.Key, s.Value)
			return nil
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "new description")
	return cmd
}

func newSettingsDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.NewSettings(e.client).Delete(cmd.Context(), args[0]); err != nil {
				return settingError(err)
			}
			printf(cmd, "deleted setting %s\n", args[0])
			return nil
		},
	}
}

func settingError(err error) error {
	if errs := apiFields(err); len(errs) > 0 {
		return fieldErrors(errs)
	}
	return errors.New(remote.Message(err))
}
