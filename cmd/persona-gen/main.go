package main

import (
	"fmt"
	"os"

	"github.com/BerylCAtieno/persona-generator/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// Pick up GEMINI_API_KEY / GEMINI_MODEL from a local .env if present.
	_ = godotenv.Load()

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
