package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/api"
	"github.com/heartmarshall/donorbase/internal/client/form"
	"github.com/heartmarshall/donorbase/internal/client/remote"
	"github.com/heartmarshall/donorbase/internal/client/store"
	"github.com/heartmarshall/donorbase/internal/domain"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

func newDonorsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donors",
		Short: "List, create, update and delete donors",
	}
	cmd.AddCommand(newDonorsListCmd(e), newDonorsCreateCmd(e), newDonorsUpdateCmd(e), newDonorsDeleteCmd(e))
	return cmd
}

func newDonorsListCmd(e *env) *cobra.Command {
	var (
		q        api.DonorQuery
		priority bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List donors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("priority") {
				q.Priority = &priority
			}
			donors, errText := remote.Do(cmd.Context(), func(ctx context.Context) ([]dto.Donor, error) {
				return e.client.SearchDonors(ctx, q)
			})
			if errText != "" {
				return errors.New(errText)
			}
			if len(donors) == 0 {
				printf(cmd, "no donors\n")
				return nil
			}
			printf(cmd, "%s\n", donorTable(donors, time.Now()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "match name or donor id")
	cmd.Flags().StringVarP(&q.Gender, "gender", "g", "", "male, female or other")
	cmd.Flags().BoolVar(&priority, "priority", false, "only priority donors (or --priority=false for the rest)")
	cmd.Flags().IntVar(&q.Limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "page offset")
	return cmd
}

func donorTable(donors []dto.Donor, now time.Time) string {
	rows := make([][]string, len(donors))
	for i, d := range donors {
		age := ""
		if n, ok := form.DonorAge(d, now); ok {
			age = fmt.Sprint(n)
		}
		dob := ""
		if d.DateOfBirth != nil {
			dob = *d.DateOfBirth
		}
		priority := ""
		if d.IsPriority {
			priority = "yes"
		}
		rows[i] = []string{d.ID, d.UniqueDonorID, d.Name, d.Gender, age, dob, priority}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "DONOR ID", "NAME", "GENDER", "AGE", "BORN", "PRIORITY").
		Rows(rows...).
		String()
}

func newDonorsCreateCmd(e *env) *cobra.Command {
	draft := form.New()
	flagFields := map[string]*string{}
	var priority bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a donor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for field, v := range flagFields {
				if *v != "" {
					draft.Set(field, *v)
				}
			}
			draft.SetBool(form.FieldIsPriority, priority)

			donors := store.NewDonors(e.client)
			d, err := form.SubmitDonor(cmd.Context(), draft, donors, time.Now())
			if err != nil {
				if errs := draft.Errors(); len(errs) > 0 {
					return fieldErrors(errs)
				}
				return errors.New(remote.Message(err))
			}
			printf(cmd, "created donor %s (%s)\n", d.UniqueDonorID, d.ID)
			return nil
		},
	}

	for _, f := range donorFlags {
		v := new(string)
		flagFields[f.field] = v
		cmd.Flags().StringVar(v, f.name, "", f.usage)
	}
	cmd.Flags().BoolVar(&priority, "priority", false, "mark as priority donor")
	return cmd
}

// donorFlags maps donor form fields to command-line flags.
var donorFlags = []struct {
	field, name, usage string
}{
	{domain.FieldUniqueDonorID, "id", "unique donor id"},
	{domain.FieldName, "name", "full name"},
	{domain.FieldGender, "gender", "male, female or other"},
	{domain.FieldAge, "age", "age in years (0-120)"},
	{domain.FieldDateOfBirth, "dob", "date of birth, YYYY-MM-DD"},
	{form.FieldEthnicity, "ethnicity", "ethnicity"},
	{form.FieldNotes, "notes", "free-form notes"},
}

func newDonorsUpdateCmd(e *env) *cobra.Command {
	values := map[string]*string{}
	var priority bool

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a donor; flags not given are left as they are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, errs := donorPatchFromFlags(cmd, values)
			if cmd.Flags().Changed("priority") {
				patch.IsPriority = &priority
			}
			if len(errs) == 0 {
				errs = form.ValidateDonorPatch(patch, time.Now())
			}
			if len(errs) > 0 {
				return fieldErrors(errs)
			}
			if patch == (dto.DonorPatch{}) {
				return errors.New("nothing to update: pass at least one field flag")
			}

			d, err := store.NewDonors(e.client).Update(cmd.Context(), args[0], patch)
			if err != nil {
				if errs := apiFields(err); len(errs) > 0 {
					return fieldErrors(errs)
				}
				return errors.New(remote.Message(err))
			}
			printf(cmd, "updated donor %s (%s)\n", d.UniqueDonorID, d.ID)
			return nil
		},
	}
	for _, f := range donorFlags {
		v := new(string)
		values[f.field] = v
		cmd.Flags().StringVar(v, f.name, "", f.usage)
	}
	cmd.Flags().BoolVar(&priority, "priority", false, "priority donor (--priority=false to clear)")
	return cmd
}

// donorPatchFromFlags builds a patch from the flags given on the command line.
func donorPatchFromFlags(cmd *cobra.Command, values map[string]*string) (dto.DonorPatch, map[string]string) {
	var p dto.DonorPatch
	errs := map[string]string{}
	for _, f := range donorFlags {
		if !cmd.Flags().Changed(f.name) {
			continue
		}
		v := strings.TrimSpace(*values[f.field])
		switch f.field {
		case domain.FieldUniqueDonorID:
			p.UniqueDonorID = &v
		case domain.FieldName:
			p.Name = &v
		case domain.FieldGender:
			g := strings.ToLower(v)
			p.Gender = &g
		case domain.FieldAge:
			age, err := strconv.Atoi(v)
			if err != nil {
				errs[domain.FieldAge] = form.MsgAgeNotNumber
				continue
			}
			p.Age = &age
		case domain.FieldDateOfBirth:
			p.DateOfBirth = &v
		case form.FieldEthnicity:
			p.Ethnicity = &v
		case form.FieldNotes:
			p.Notes = &v
		}
	}
	return p, errs
}

// apiFields returns the per-field errors of a server response, if any.
func apiFields(err error) map[string]string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// fieldErrors renders draft errors as one error, sorted by field.
func fieldErrors(errs map[string]string) error {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = fmt.Sprintf("  %s: %s", f, errs[f])
	}
	return fmt.Errorf("invalid fields:\n%s", strings.Join(lines, "\n"))
}

func newDonorsDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a donor and its documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.client.Donors().Delete(cmd.Context(), args[0]); err != nil {
				return errors.New(remote.Message(err))
			}
			printf(cmd, "deleted donor %s\n", args[0])
			return nil
		},
	}
}
