package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the collections assistant",
	}

	cmd.AddCommand(newChatAskCmd())
	cmd.AddCommand(newChatHistoryCmd())
	cmd.AddCommand(newChatSessionsCmd())

	return cmd
}

func newChatAskCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask the assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")

			reply, err := apiClient.Chat().Send(context.Background(), sessionID, message)
			if err != nil {
				return fmt.Errorf("message failed: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(reply)
			}

			fmt.Println(reply.Reply)
			fmt.Printf("\n(session %s)\n", reply.SessionID)
			return nil
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "continue an existing session")

	return cmd
}

func newChatHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <session-id>",
		Short: "Show the messages of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			messages, err := apiClient.Chat().History(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get history: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(messages)
			}

			for _, m := range messages {
				fmt.Printf("[%s] %s: %s\n",
					m.CreatedAt.Format("2006-01-02 15:04"),
					m.Sender,
					m.Body,
				)
			}
			return nil
		},
	}
}

func newChatSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List chat sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := apiClient.Chat().Sessions(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(sessions)
			}

			if len(sessions) == 0 {
				fmt.Println("No chat sessions yet")
				return nil
			}
			for _, s := range sessions {
				fmt.Println(s)
			}
			return nil
		},
	}
}
