package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vasool/vasool/pkg/client"
)

func newIntegrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "integration",
		Aliases: []string{"integrations"},
		Short:   "Manage the accounting integration",
	}

	cmd.AddCommand(newIntegrationStatusCmd())
	cmd.AddCommand(newIntegrationConnectDemoCmd())
	cmd.AddCommand(newIntegrationSetupCmd())
	cmd.AddCommand(newIntegrationCallbackCmd())
	cmd.AddCommand(newIntegrationDisconnectCmd())

	return cmd
}

func newIntegrationStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the accounting connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.Integrations().Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get integration status: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(status)
			}

			if !status.Connected {
				fmt.Println("Not connected")
				fmt.Println("Run 'vasool integration connect-demo' or 'vasool integration setup' to connect")
				return nil
			}

			fmt.Printf("Provider:     %s\n", status.Provider)
			fmt.Printf("Mode:         %s\n", status.Mode)
			if status.OrganizationID != "" {
				fmt.Printf("Organization: %s\n", status.OrganizationID)
			}
			if status.ConnectedAt != nil {
				fmt.Printf("Connected:    %s\n", *status.ConnectedAt)
			}
			if status.LastSync != nil {
				fmt.Printf("Last sync:    %s\n", *status.LastSync)
			}
			return nil
		},
	}
}

func newIntegrationConnectDemoCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "connect-demo",
		Short: "Connect in demo mode with curated sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := apiClient.Integrations().ConnectDemo(context.Background(), email)
			if err != nil {
				return fmt.Errorf("demo connect failed: %w", err)
			}

			fmt.Printf("Connected to %s in %s mode\n", rec.Provider, rec.Mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email to associate with the demo connection")

	return cmd
}

func newIntegrationSetupCmd() *cobra.Command {
	var clientID, clientSecret, orgID string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Start the Zoho Books OAuth flow with your own OAuth app",
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID == "" {
				clientID = promptInput("Zoho client ID: ")
			}
			if clientSecret == "" {
				clientSecret = promptPassword("Zoho client secret: ")
			}
			if orgID == "" {
				orgID = promptInput("Organization ID: ")
			}

			start, err := apiClient.Integrations().BeginOAuth(context.Background(), client.OAuthSetupRequest{
				ClientID:       clientID,
				ClientSecret:   clientSecret,
				OrganizationID: orgID,
			})
			if err != nil {
				return fmt.Errorf("OAuth setup failed: %w", err)
			}

			fmt.Println("Open this URL in your browser to authorize Vasool:")
			fmt.Println()
			fmt.Printf("  %s\n", start.AuthURL)
			fmt.Println()
			fmt.Println("After approving, finish with:")
			fmt.Printf("  vasool integration callback --code <grant-code> --state %s\n", start.State)
			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "Zoho OAuth client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "Zoho OAuth client secret")
	cmd.Flags().StringVar(&orgID, "org", "", "Zoho Books organization ID")

	return cmd
}

func newIntegrationCallbackCmd() *cobra.Command {
	var code, state string

	cmd := &cobra.Command{
		Use:   "callback",
		Short: "Complete the OAuth flow with the grant code",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := apiClient.Integrations().CompleteOAuth(context.Background(), code, state)
			if err != nil {
				return fmt.Errorf("OAuth callback failed: %w", err)
			}

			fmt.Printf("Zoho Books connected (%s mode)\n", rec.Mode)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "grant code from the Zoho redirect")
	cmd.Flags().StringVar(&state, "state", "", "state token from setup")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}

func newIntegrationDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect the accounting integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Integrations().Disconnect(context.Background()); err != nil {
				return fmt.Errorf("disconnect failed: %w", err)
			}

			fmt.Println("Zoho Books disconnected")
			return nil
		},
	}
}
