// Command chat is a terminal client for the PartDesk API, useful for
// smoke-testing a running server. It keeps conversation history across
// turns and prints any product results alongside the answer.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PartDeskAI/partdesk-mvp/engine/chat"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func main() {
	apiURL := envOr("PARTDESK_API", "http://localhost:8080") + "/api/chat"
	client := &http.Client{Timeout: 45 * time.Second}

	fmt.Println("PartDesk chat. Type a question, or 'quit' to exit.")

	var history []chat.Message
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		history = append(history, chat.Message{
			Role:      "user",
			Content:   line,
			Timestamp: time.Now().UnixMilli(),
		})

		resp, err := send(client, apiURL, chat.Request{Messages: history})
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}

		history = append(history, resp.Message)
		fmt.Println()
		fmt.Println(resp.Message.Content)
		for _, p := range resp.ProductResults {
			fmt.Printf("  [%s] %s - $%.2f\n", p.PartNumber, p.Name, p.Price)
		}
		fmt.Println()
	}
}

func send(client *http.Client, url string, req chat.Request) (chat.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return chat.Response{}, err
	}
	httpResp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return chat.Response{}, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error   string       `json:"error"`
			Message chat.Message `json:"message"`
		}
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err == nil && apiErr.Message.Content != "" {
			return chat.Response{Message: apiErr.Message}, nil
		}
		return chat.Response{}, fmt.Errorf("status %d", httpResp.StatusCode)
	}

	var resp chat.Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return chat.Response{}, err
	}
	return resp, nil
}
