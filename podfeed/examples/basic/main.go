// ABOUTME: Basic example showing feed fetching with the podfeed library
// ABOUTME: Demonstrates minimal configuration, pagination and error classification

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"podfeed-api/podfeed"
)

func main() {
	feedURL := "https://wavlake.com/feed/music/d677db67-0310-4813-970e-e65927c689f1"
	if len(os.Args) > 1 {
		feedURL = os.Args[1]
	}

	client, err := podfeed.NewClient(podfeed.WithDefaultLogger())
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	fmt.Println("=== Fetching Feed ===")
	feed, err := client.FetchAndParseFeed(ctx, feedURL, podfeed.WithPagination(1, 5))
	switch {
	case podfeed.IsValidationError(err):
		log.Fatalf("Bad feed URL: %v", err)
	case podfeed.IsParsingError(err):
		log.Fatalf("Not an RSS feed: %v", err)
	case err != nil:
		log.Fatalf("Fetch failed: %v", err)
	}

	if feed.Placeholder {
		fmt.Printf("%s: %s\n", feed.Title, feed.Description)
		return
	}

	fmt.Printf("Feed: %s by %s\n", feed.Title, feed.Author)
	for _, ep := range feed.Episodes {
		fmt.Printf("- %s (%s)\n", ep.Title, ep.Duration)
	}

	if feed.Value != nil {
		fmt.Println("\n=== Value Recipients ===")
		for _, r := range feed.Value.PaymentRecipients() {
			fmt.Printf("- %s: %d%%\n", r.Name, r.Split)
		}
	}

	if len(feed.Podroll) > 0 {
		fmt.Println("\n=== Podroll ===")
		for _, item := range feed.Podroll {
			fmt.Printf("- %s\n", item.Title)
		}
	}
}
