package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show account and collection summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			format := getOutputFormat()
			if format != "table" {
				summary := map[string]interface{}{}

				if status, err := apiClient.Integrations().Status(ctx); err == nil {
					summary["integration"] = status
				}
				if overview, err := apiClient.Dashboard().Overview(ctx); err == nil {
					summary["overview"] = overview
				}
				return printOutput(summary)
			}

			fmt.Println("Vasool Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			// Integration
			status, err := apiClient.Integrations().Status(ctx)
			if err != nil {
				fmt.Printf("  Accounting:   (error: %v)\n", err)
			} else if status.Connected {
				fmt.Printf("  Accounting:   %s connected (%s mode)\n", status.Provider, status.Mode)
				if status.LastSync != nil {
					fmt.Printf("  Last sync:    %s\n", *status.LastSync)
				}
			} else {
				fmt.Println("  Accounting:   not connected")
			}

			// Headline figures
			overview, err := apiClient.Dashboard().Overview(ctx)
			if err != nil {
				fmt.Printf("  Outstanding:  (error: %v)\n", err)
			} else {
				fmt.Printf("  Outstanding:  %.2f\n", overview.TotalOutstanding)
				fmt.Printf("  Recovery:     %.1f%%\n", overview.RecoveryRate)
				fmt.Printf("  Accounts:     %d\n", overview.ActiveAccounts)
				if overview.Notice != "" {
					fmt.Printf("  Note:         %s\n", overview.Notice)
				}
			}

			return nil
		},
	}
}
