// One-shot credential check for the secondary flight-status provider:
// exchanges the configured client credentials for an access token and prints
// it. Useful when rotating API credentials.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

func main() {
	config := &clientcredentials.Config{
		ClientID:     os.Getenv("LUFTHANSA_CLIENT_ID"),
		ClientSecret: os.Getenv("LUFTHANSA_CLIENT_SECRET"),
		TokenURL:     getenvDefault("LUFTHANSA_TOKEN_URL", "https://api.lufthansa.com/v1/oauth/token"),
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		log.Fatal("LUFTHANSA_CLIENT_ID and LUFTHANSA_CLIENT_SECRET must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	token, err := config.Token(ctx)
	if err != nil {
		log.Fatalf("Failed to obtain token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\nExpires: %s\n\n", token.AccessToken, token.Expiry.Format(time.RFC3339))
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
