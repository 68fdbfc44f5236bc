package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/donorbase/internal/client/chat"
	"github.com/heartmarshall/donorbase/internal/client/remote"
	dto "github.com/heartmarshall/donorbase/pkg/api"
)

func newChatCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <donor-id>",
		Short: "Ask the record assistant about a donor",
		Long:  "Reads questions line by line from stdin. Type /quit or send EOF to leave.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			donorID := args[0]

			docs, errText := remote.Do(ctx, func(ctx context.Context) ([]dto.Document, error) {
				return e.client.Documents(ctx, donorID)
			})
			if errText != "" {
				return errors.New(errText)
			}

			opts := chatOptions(e)
			if len(docs) > 0 {
				opts.DocumentID = docs[0].ID
			}
			seq := chat.NewSequencer(opts)
			defer seq.Shutdown()

			names := make(map[string]string, len(docs))
			for _, d := range docs {
				names[d.ID] = d.FileName
			}

			printed := make(chan struct{})
			go func() {
				defer close(printed)
				printEvents(cmd.OutOrStdout(), seq.Events(), names)
			}()

			seq.Open()
			err := readQuestions(ctx, cmd.InOrStdin(), seq)
			if err == nil {
				err = seq.Drain(ctx)
			}
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			seq.Close()
			seq.Shutdown()
			<-printed
			return err
		},
	}
}

func readQuestions(ctx context.Context, in io.Reader, seq *chat.Sequencer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		}
		if err := seq.Send(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printEvents(w io.Writer, events <-chan chat.Event, names map[string]string) {
	for ev := range events {
		if ev.Kind != chat.EventMessage || ev.Message.Role != chat.RoleAssistant {
			continue
		}
		fmt.Fprintf(w, "assistant: %s", ev.Message.Text)
		for _, c := range ev.Message.Citations {
			name := names[c.DocumentID]
			if name == "" {
				name = c.DocumentID
			}
			fmt.Fprintf(w, " [%s p.%d]", name, c.Page)
		}
		fmt.Fprintln(w)
	}
}
