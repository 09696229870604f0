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
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletctl",
		Short: "Wallet service CLI tool",
		Long:  `A command line interface for interacting with the wallet service API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authentication")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	creditCmd := &cobra.Command{
		Use:   "credit <amount>",
		Short: "Add funds to your wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createTransaction("CREDIT", args[0])
		},
	}

	debitCmd := &cobra.Command{
		Use:   "debit <amount>",
		Short: "Spend funds from your wallet",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			createTransaction("DEBIT", args[0])
		},
	}

	var kindFilter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your transactions",
		Run: func(cmd *cobra.Command, args []string) {
			listTransactions(kindFilter)
		},
	}
	listCmd.Flags().StringVar(&kindFilter, "kind", "", "Filter by kind (CREDIT or DEBIT)")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show your wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			getBalance()
		},
	}

	rootCmd.AddCommand(creditCmd, debitCmd, listCmd, balanceCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createTransaction(kind, amount string) {
	body, err := json.Marshal(map[string]any{
		"amount": amount,
		"kind":   kind,
	})
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	doRequest(http.MethodPost, "/api/v1/transactions", body, http.StatusCreated)
}

func listTransactions(kind string) {
	path := "/api/v1/transactions"
	if kind != "" {
		path += "?kind=" + kind
	}

	doRequest(http.MethodGet, path, nil, http.StatusOK)
}

func getBalance() {
	doRequest(http.MethodGet, "/api/v1/balance", nil, http.StatusOK)
}

func doRequest(method, path string, body []byte, wantStatus int) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(respBody))
		os.Exit(1)
	}

	var parsed any
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		fmt.Printf("%s\n", string(respBody))
		return
	}

	printJSON(parsed)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
