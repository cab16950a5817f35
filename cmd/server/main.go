package main

import (
	"context"
	"log"
	"os"

	"github.com/BerylCAtieno/persona-generator/internal/generator"
	"github.com/BerylCAtieno/persona-generator/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	client, err := generator.New(context.Background(), apiKey, os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}
	defer client.Close()

	router := gin.Default()
	router.Use(server.RequestLoggingMiddleware())

	handler := server.NewHandler(client)
	handler.Register(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Persona Generator starting on port %s", port)
	log.Printf("Upload endpoint available at: http://localhost:%s/api/personas", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
