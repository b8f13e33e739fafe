package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/filter"
	"github.com/rajendar38/dice2/internal/registry"
	"github.com/rajendar38/dice2/internal/scraper/dice"
)

// Dry run: scrape and list what a real run would apply to, no browser.
func main() {
	fmt.Println("📋 Testing Dice scrape (dry run, no browser)...")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	jobs, err := dice.NewDiceScraper(cfg).Scrape(ctx)
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}

	reg, err := registry.Open(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("Failed to open registry: %v", err)
	}
	defer reg.Close()

	fresh := reg.FilterNew(jobs)
	fmt.Printf("✅ %d scraped, %d new\n", len(jobs), len(fresh))

	for _, job := range fresh {
		marker := "  "
		if !filter.ShouldIncludeJob(cfg, job) {
			marker = "🚫"
		}
		fmt.Printf("%s %s  %s\n", marker, job.ID, job.Title)
	}
}
