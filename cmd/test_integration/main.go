package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	baseURL = "http://localhost:8080/api/v1"
)

// Smoke test against a running server: create a session, filter, select a
// node, chat, and read the reply back.
func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	// 1. Create a session
	fmt.Println("1. Creating session...")
	created, ok := sendRequest("POST", "/sessions", map[string]string{}, http.StatusCreated)
	if !ok {
		fmt.Println("FAILED: Create session")
		os.Exit(1)
	}
	var state struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(created, &state); err != nil || state.ID == "" {
		fmt.Println("FAILED: Session id missing")
		os.Exit(1)
	}
	fmt.Println("PASSED: Create session")

	// 2. Filter to genes
	fmt.Println("2. Setting filter...")
	if _, ok := sendRequest("PUT", "/sessions/"+state.ID+"/filter",
		map[string]string{"type": "gene"}, http.StatusOK); !ok {
		fmt.Println("FAILED: Set filter")
		os.Exit(1)
	}
	fmt.Println("PASSED: Set filter")

	// 3. Select a node
	fmt.Println("3. Selecting node...")
	if _, ok := sendRequest("PUT", "/sessions/"+state.ID+"/selection",
		map[string]string{"node_id": "sirt1"}, http.StatusOK); !ok {
		fmt.Println("FAILED: Select node")
		os.Exit(1)
	}
	fmt.Println("PASSED: Select node")

	// 4. Chat
	fmt.Println("4. Sending message...")
	if _, ok := sendRequest("POST", "/sessions/"+state.ID+"/messages",
		map[string]string{"text": "Tell me about this gene"}, http.StatusAccepted); !ok {
		fmt.Println("FAILED: Send message")
		os.Exit(1)
	}
	fmt.Println("PASSED: Send message")

	// Allow the mock assistant's reply delay to elapse
	time.Sleep(2 * time.Second)

	fmt.Println("5. Reading messages...")
	if _, ok := sendRequest("GET", "/sessions/"+state.ID+"/messages", nil, http.StatusOK); !ok {
		fmt.Println("FAILED: Read messages")
		os.Exit(1)
	}
	fmt.Println("PASSED: Read messages")
}

func sendRequest(method, endpoint string, payload interface{}, wantStatus int) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return respBody, true
}
