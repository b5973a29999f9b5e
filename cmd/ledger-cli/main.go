package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Interactive client for the ledger server. Thin glue: it only marshals
// prompts into service requests and prints the results.

var baseURL string

func main() {
	flag.StringVar(&baseURL, "addr", "http://localhost:8080", "ledger server base URL")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("====== Bank Ledger Client ======")
		fmt.Println("1. Get balance")
		fmt.Println("2. Update balance (deposit/withdraw)")
		fmt.Println("3. Initiate transfer")
		fmt.Println("4. Get transaction history")
		fmt.Println("5. Exit")

		switch prompt(in, "Enter choice: ") {
		case "1":
			getBalance(client, in)
		case "2":
			updateBalance(client, in)
		case "3":
			initiateTransfer(client, in)
		case "4":
			getHistory(client, in)
		case "5":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("\nInvalid choice")
			fmt.Println()
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		os.Exit(0)
	}
	return strings.TrimSpace(in.Text())
}

func getBalance(client *http.Client, in *bufio.Scanner) {
	userID := prompt(in, "Enter user ID: ")

	var resp struct {
		UserID  string `json:"user_id"`
		Balance string `json:"balance"`
		Message string `json:"message"`
	}
	if !do(client, http.MethodGet, "/accounts/"+userID+"/balance", nil, &resp) {
		return
	}
	fmt.Printf("\nBalance for %s: %s\n", resp.UserID, resp.Balance)
	fmt.Printf("Message: %s\n\n", resp.Message)
}

func updateBalance(client *http.Client, in *bufio.Scanner) {
	userID := prompt(in, "Enter user ID: ")
	amount := prompt(in, "Enter amount (+ for deposit, - for withdrawal): ")

	body := map[string]string{"amount": amount}
	var resp struct {
		UserID  string `json:"user_id"`
		Balance string `json:"balance"`
		Message string `json:"message"`
	}
	if !do(client, http.MethodPost, "/accounts/"+userID+"/balance", body, &resp) {
		return
	}
	fmt.Printf("\nNew balance for %s: %s\n", resp.UserID, resp.Balance)
	fmt.Printf("Message: %s\n\n", resp.Message)
}

func initiateTransfer(client *http.Client, in *bufio.Scanner) {
	body := map[string]string{
		"from_user_id": prompt(in, "From user ID: "),
		"to_user_id":   prompt(in, "To user ID: "),
		"amount":       prompt(in, "Amount to transfer: "),
		"description":  prompt(in, "Description (optional): "),
	}

	var resp struct {
		Success        bool   `json:"success"`
		Message        string `json:"message"`
		FromUserID     string `json:"from_user_id"`
		FromNewBalance string `json:"from_new_balance"`
		ToUserID       string `json:"to_user_id"`
		ToNewBalance   string `json:"to_new_balance"`
	}
	if !do(client, http.MethodPost, "/transfers", body, &resp) {
		return
	}
	fmt.Println("\nTransfer result:")
	fmt.Printf("Success: %v\n", resp.Success)
	fmt.Printf("Message: %s\n", resp.Message)
	fmt.Printf("From (%s) new balance: %s\n", resp.FromUserID, resp.FromNewBalance)
	fmt.Printf("To (%s) new balance: %s\n\n", resp.ToUserID, resp.ToNewBalance)
}

func getHistory(client *http.Client, in *bufio.Scanner) {
	userID := prompt(in, "Enter user ID: ")

	var resp struct {
		UserID       string `json:"user_id"`
		Transactions []struct {
			TransactionID string `json:"transaction_id"`
			FromUserID    string `json:"from_user_id"`
			ToUserID      string `json:"to_user_id"`
			Amount        string `json:"amount"`
			Description   string `json:"description"`
			Timestamp     string `json:"timestamp"`
		} `json:"transactions"`
	}
	if !do(client, http.MethodGet, "/accounts/"+userID+"/transactions", nil, &resp) {
		return
	}

	fmt.Printf("\nTransaction history for %s:\n", userID)
	if len(resp.Transactions) == 0 {
		fmt.Println("No transactions found.")
		fmt.Println()
		return
	}
	for _, tx := range resp.Transactions {
		fmt.Println("------------------------------")
		fmt.Printf("Transaction ID: %s\n", tx.TransactionID)
		fmt.Printf("From: %s\n", tx.FromUserID)
		fmt.Printf("To: %s\n", tx.ToUserID)
		fmt.Printf("Amount: %s\n", tx.Amount)
		fmt.Printf("Description: %s\n", tx.Description)
		fmt.Printf("Timestamp: %s\n", tx.Timestamp)
	}
	fmt.Println("------------------------------")
	fmt.Println()
}

// do performs the request and decodes a success body into out. On a non-2xx
// response it prints the server's error code and message and returns false.
func do(client *http.Client, method, path string, body any, out any) bool {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("\nError: %v\n\n", err)
			return false
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		fmt.Printf("\nError: %v\n\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("\nError: %v\n\n", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			fmt.Printf("\nError: HTTP %d\n\n", resp.StatusCode)
			return false
		}
		fmt.Printf("\nError: %s - %s\n\n", strings.ToUpper(apiErr.Code), apiErr.Message)
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fmt.Printf("\nError: %v\n\n", err)
		return false
	}
	return true
}
