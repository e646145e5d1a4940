package client_test

import (
	"context"
	"fmt"
	"log"

	"github.com/vasool/vasool/pkg/client"
)

// Example demonstrates basic usage of the Vasool client
func Example() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	ctx := context.Background()

	// Login
	resp, err := c.Login(ctx, "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Logged in as: %s\n", resp.User.Email)

	// Fetch the collections dashboard
	collections, err := c.Dashboard().Collections(ctx)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Unpaid: %.2f across %d invoices\n",
		collections.TotalUnpaid, len(collections.RecentInvoices))
}

// ExampleClient_Login demonstrates user authentication
func ExampleClient_Login() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	resp, err := c.Login(context.Background(), "user@example.com", "password")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Token: %s\n", resp.AccessToken)
}

// ExampleIntegrationService_BeginOAuth demonstrates connecting Zoho Books
// with the user's own OAuth app
func ExampleIntegrationService_BeginOAuth() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	ctx := context.Background()
	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	start, err := c.Integrations().BeginOAuth(ctx, client.OAuthSetupRequest{
		ClientID:       "1000.XXXX",
		ClientSecret:   "shhh",
		OrganizationID: "60001234567",
	})
	if err != nil {
		log.Fatal(err)
	}

	// Send the user to start.AuthURL, then complete the flow with the
	// grant code Zoho redirects back with.
	fmt.Printf("Visit: %s\n", start.AuthURL)

	rec, err := c.Integrations().CompleteOAuth(ctx, "grant-code-from-redirect", start.State)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Connected: %s (%s)\n", rec.Provider, rec.Mode)
}

// ExampleChatService_Send demonstrates asking the collections assistant
func ExampleChatService_Send() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	ctx := context.Background()
	if _, err := c.Login(ctx, "user@example.com", "password"); err != nil {
		log.Fatal(err)
	}

	reply, err := c.Chat().Send(ctx, "", "Which invoices are overdue?")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("[%s] %s\n", reply.Provenance, reply.Reply)

	// Continue the same session
	followUp, err := c.Chat().Send(ctx, reply.SessionID, "And my total receivables?")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(followUp.Reply)
}

// ExampleLeadService_ScheduleDemo demonstrates the public demo form
func ExampleLeadService_ScheduleDemo() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	lead, err := c.Leads().ScheduleDemo(context.Background(), client.ScheduleDemoRequest{
		Name:    "Priya Sharma",
		Email:   "priya@acme.example",
		Company: "Acme Lending",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Captured lead %d (%s)\n", lead.ID, lead.Status)
}

// ExampleClient_Health demonstrates checking API health
func ExampleClient_Health() {
	c := client.NewClient(client.Config{
		BaseURL: "https://api.vasool.io",
	})

	health, err := c.Health(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("API Status: %s\n", health.Status)
}
