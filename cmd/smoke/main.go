// Smoke tester for a running persona-generator server: drives the health
// and generation endpoints end to end with a small built-in questionnaire.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

const sampleQuestionnaire = `Client Name,Acme Corp
Product Name,Widget Pro
Section,Question,Answer
Persona,Who is the target audience?,"Busy professionals aged 30-50 who value their time"
Persona,What do users value most?,Speed and reliability
General,What problem does the product solve?,Manual reporting takes hours every week
General,What is the price point?,49 USD per month
`

type SmokeClient struct {
	baseURL string
	client  *http.Client
}

func NewSmokeClient(baseURL string) *SmokeClient {
	return &SmokeClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, generate, file")
	inputPath := flag.String("input", "", "Questionnaire CSV to upload (for file test)")
	flag.Parse()

	client := NewSmokeClient(*baseURL)

	printHeader("Persona Generator - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "generate":
		client.testGenerate([]byte(sampleQuestionnaire), "sample.csv")
	case "file":
		if *inputPath == "" {
			printError("Input file is required for file test. Use -input flag")
			os.Exit(1)
		}
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			printError(fmt.Sprintf("Cannot read %s: %v", *inputPath, err))
			os.Exit(1)
		}
		client.testGenerate(data, *inputPath)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, generate, file")
		os.Exit(1)
	}
}

func (sc *SmokeClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", sc.testHealthCheck},
		{"Persona Generation", func() bool {
			return sc.testGenerate([]byte(sampleQuestionnaire), "sample.csv")
		}},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (sc *SmokeClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", sc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := sc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (sc *SmokeClient) testGenerate(csvData []byte, filename string) bool {
	printTestHeader("Testing Persona Generation")

	url := fmt.Sprintf("%s/api/personas", sc.baseURL)
	fmt.Printf("POST %s (%s, %d bytes)\n\n", url, filename, len(csvData))

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		printError(fmt.Sprintf("Building upload: %v", err))
		return false
	}
	if _, err := part.Write(csvData); err != nil {
		printError(fmt.Sprintf("Building upload: %v", err))
		return false
	}
	writer.Close()

	resp, err := sc.client.Post(url, writer.FormDataContentType(), &buf)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) < 2 {
		printError("Response CSV has no persona rows")
		return false
	}
	if !strings.HasPrefix(lines[0], "Client Name,Product Name,Persona Name") {
		printError(fmt.Sprintf("Unexpected CSV header: %s", lines[0]))
		return false
	}

	printSuccess(fmt.Sprintf("Generation completed: %d persona row(s)", len(lines)-1))
	fmt.Printf("QA counts: total=%s persona=%s\n", resp.Header.Get("X-QA-Count"), resp.Header.Get("X-Persona-QA-Count"))

	fmt.Printf("\n%sGenerated CSV:%s\n", colorYellow, colorReset)
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(string(body))
	fmt.Println(strings.Repeat("=", 80))

	return true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}
