package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corebank-cli",
		Short: "CoreBank CLI tool",
		Long:  `A command line interface for interacting with the CoreBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CoreBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COREBANK_TOKEN"), "JWT for authenticated requests")

	// Auth commands
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication operations",
	}

	registerCmd := &cobra.Command{
		Use:   "register <email> <first-name> <last-name> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(4),
		Run: func(cmd *cobra.Command, args []string) {
			register(args[0], args[1], args[2], args[3])
		},
	}

	loginCmd := &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and print a JWT",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			login(args[0], args[1])
		},
	}

	meCmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user's details",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/users/me", nil)
		},
	}

	authCmd.AddCommand(registerCmd, loginCmd, meCmd)
	rootCmd.AddCommand(authCmd)

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	accountCreateCmd := &cobra.Command{
		Use:   "create [opening-balance]",
		Short: "Open the authenticated user's account",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			opening := "0"
			if len(args) == 1 {
				opening = args[0]
			}
			doJSON(http.MethodPost, "/api/v1/accounts/", map[string]any{"opening_balance": opening})
		},
	}

	accountShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the authenticated user's account",
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/me", nil)
		},
	}

	accountEntriesCmd := &cobra.Command{
		Use:   "entries <account-id>",
		Short: "List entries for an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0]+"/entries", nil)
		},
	}

	accountAuditCmd := &cobra.Command{
		Use:   "audit <account-id>",
		Short: "Reconcile an account against its entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0]+"/audit", nil)
		},
	}

	accountCmd.AddCommand(accountCreateCmd, accountShowCmd, accountEntriesCmd, accountAuditCmd)
	rootCmd.AddCommand(accountCmd)

	// Transaction commands
	fundCmd := &cobra.Command{
		Use:   "fund <amount>",
		Short: "Credit the authenticated user's account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts/fund", map[string]any{"amount": args[0]})
		},
	}

	withdrawCmd := &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Debit the authenticated user's account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/accounts/withdraw", map[string]any{"amount": args[0]})
		},
	}

	rootCmd.AddCommand(fundCmd, withdrawCmd)

	// Transfer commands
	transferCmd := &cobra.Command{
		Use:   "transfer <recipient-id> <amount>",
		Short: "Transfer funds to another user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1])
		},
	}

	rootCmd.AddCommand(transferCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func register(email, firstName, lastName, password string) {
	doJSON(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
		"password":   password,
	})
}

func login(email, password string) {
	body := request(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Token: %s\n", result.Token)
	fmt.Println("Export it with: export COREBANK_TOKEN=<token>")
}

func transfer(recipientID, amount string) {
	var recipient int64
	if _, err := fmt.Sscanf(recipientID, "%d", &recipient); err != nil {
		fmt.Printf("Invalid recipient ID: %s\n", recipientID)
		os.Exit(1)
	}

	doJSON(http.MethodPost, "/api/v1/transfers/", map[string]any{
		"recipient_id": recipient,
		"amount":       amount,
	})
}

func checkConsistency() {
	body := request(http.MethodGet, "/api/v1/ledger/consistency", nil)

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
	fmt.Printf("Balance drift: %v\n", result["balance_drift"])
	fmt.Printf("Entry total: %v\n", result["entry_total"])
	fmt.Printf("Accounts: %v\n", result["accounts"])
	fmt.Printf("Transfers: %v\n", result["transfers"])
}

// doJSON performs a request and pretty-prints the JSON response.
func doJSON(method, path string, payload map[string]any) {
	body := request(method, path, payload)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}

	fmt.Println(pretty.String())
}

func request(method, path string, payload map[string]any) []byte {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
