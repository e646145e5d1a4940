package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Collection analytics views",
	}

	cmd.AddCommand(newDashboardOverviewCmd())
	cmd.AddCommand(newDashboardCollectionsCmd())
	cmd.AddCommand(newDashboardAnalyticsCmd())
	cmd.AddCommand(newDashboardReconciliationCmd())

	return cmd
}

func newDashboardOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Headline collection figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := apiClient.Dashboard().Overview(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get overview: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(view)
			}

			fmt.Printf("Total outstanding: %.2f\n", view.TotalOutstanding)
			fmt.Printf("Recovery rate:     %.1f%%\n", view.RecoveryRate)
			fmt.Printf("Active accounts:   %d\n", view.ActiveAccounts)
			fmt.Printf("Data source:       %s\n", view.Provenance)
			if view.Notice != "" {
				fmt.Println(view.Notice)
			}
			return nil
		},
	}
}

func newDashboardCollectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "Unpaid and overdue invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := apiClient.Dashboard().Collections(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get collections: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(view)
			}

			table := NewTable("INVOICE", "CUSTOMER", "AMOUNT", "STATUS", "DAYS OVERDUE")
			for _, inv := range view.OverdueInvoices {
				table.AddRow(
					inv.Number,
					truncate(inv.Customer, 30),
					fmt.Sprintf("%.2f", inv.Amount),
					formatStatus(inv.Status),
					strconv.Itoa(inv.DaysOverdue),
				)
			}
			for _, inv := range view.RecentInvoices {
				if inv.DaysOverdue > 0 {
					continue // already listed above
				}
				table.AddRow(
					inv.Number,
					truncate(inv.Customer, 30),
					fmt.Sprintf("%.2f", inv.Amount),
					formatStatus(inv.Status),
					"-",
				)
			}
			table.Render()

			fmt.Printf("\nTotal unpaid:  %.2f\n", view.TotalUnpaid)
			fmt.Printf("Total overdue: %.2f\n", view.TotalOverdue)
			if view.Notice != "" {
				fmt.Println(view.Notice)
			}
			return nil
		},
	}
}

func newDashboardAnalyticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analytics",
		Short: "Six-month collection trend",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := apiClient.Dashboard().Analytics(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get analytics: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(view)
			}

			table := NewTable("MONTH", "COLLECTED", "OUTSTANDING")
			for _, pt := range view.Trend {
				table.AddRow(
					pt.Month,
					fmt.Sprintf("%.2f", pt.Collected),
					fmt.Sprintf("%.2f", pt.Outstanding),
				)
			}
			table.Render()

			fmt.Printf("\nTotal collected:       %.2f\n", view.TotalCollected)
			fmt.Printf("Total outstanding:     %.2f\n", view.TotalOutstanding)
			fmt.Printf("Collection efficiency: %.1f%%\n", view.Efficiency)
			fmt.Printf("Avg collection days:   %d\n", view.AvgCollectionDays)
			if view.Notice != "" {
				fmt.Println(view.Notice)
			}
			return nil
		},
	}
}

func newDashboardReconciliationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconciliation",
		Short: "Payment matching summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := apiClient.Dashboard().Reconciliation(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get reconciliation: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(view)
			}

			fmt.Printf("Payments:  %d\n", view.TotalPayments)
			fmt.Printf("Matched:   %d\n", view.Matched)
			fmt.Printf("Unmatched: %d\n", view.Unmatched)
			if view.Notice != "" {
				fmt.Println(view.Notice)
			}
			return nil
		},
	}
}
