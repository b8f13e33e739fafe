package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/rajendar38/dice2/internal/applier"
	"github.com/rajendar38/dice2/internal/browser"
	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/filter"
	"github.com/rajendar38/dice2/internal/registry"
	"github.com/rajendar38/dice2/internal/reporter"
	"github.com/rajendar38/dice2/internal/scraper"
	"github.com/rajendar38/dice2/internal/scraper/dice"
	"github.com/rajendar38/dice2/internal/tracker"

	"github.com/playwright-community/playwright-go"
)

func main() {
	//load config
	cfg := config.Load()
	log.Printf("🔧 Config loaded. Query: %q, resume: %s", cfg.Search.Query, cfg.ResumePath)

	//init telegram reporter (nil when not configured)
	report, err := reporter.NewTelegramReporter(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to init Telegram reporter: %v", err)
	}
	if report != nil {
		log.Println("🤖 Telegram reporting enabled.")
	}

	//setup context with run timeout
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Minute)
	defer cancel()

	log.Println("🚀 Starting Dice auto-apply...")

	//scrape search results
	diceScraper := dice.NewDiceScraper(cfg)
	jobs, err := diceScraper.Scrape(ctx)
	if err != nil {
		report.SendError(err)
		log.Fatalf("❌ Scrape failed: %v", err)
	}

	//keyword filter
	var matched []scraper.Job
	for _, job := range jobs {
		if filter.ShouldIncludeJob(cfg, job) {
			matched = append(matched, job)
		}
	}
	log.Printf("Filtered: %d/%d jobs", len(matched), len(jobs))

	//dedup against the applied-job registry
	reg, err := registry.Open(cfg.RegistryPath)
	if err != nil {
		log.Fatalf("❌ Failed to open registry: %v", err)
	}
	defer reg.Close()

	fresh := reg.FilterNew(matched)
	log.Printf("🔍 Deduplication: %d matched -> %d new jobs (%d already applied)",
		len(matched), len(fresh), reg.Len())
	if len(fresh) == 0 {
		log.Println("ℹ️ Nothing new. Exiting.")
		return
	}

	//init playwright manager
	pwManager, err := browser.NewPlaywright(*cfg.Headless)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	//close playwright manager when application stops
	defer pwManager.Close()

	//load cookies (session reuse; login still runs when they are stale)
	var cookies []playwright.OptionalCookie
	cookieFile := filepath.Join(cfg.CookiesPath, "cookies-dice.json")
	if loaded, err := browser.LoadCookies(cookieFile); err != nil {
		log.Printf("⚠️ Could not load dice cookies: %v. Continuing.", err)
	} else {
		cookies = loaded
		log.Printf("🍪 Loaded dice cookies (%d)", len(cookies))
	}

	//create new browser context with cookies
	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	//create new page
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//login once per session
	app := applier.NewApplier(cfg)
	if err := app.Login(page); err != nil {
		report.SendError(err)
		log.Fatalf("❌ Login failed: %v", err)
	}

	//apply loop: per-job failures never abort the batch
	track := tracker.New(reg, time.Duration(cfg.PerJobWaitSeconds)*time.Second)
	var applied, skipped, failed int
	for i, job := range fresh {
		log.Printf("[%d/%d] %s", i+1, len(fresh), job.URL)

		res := app.Apply(page, job)
		switch res.Status {
		case applier.StatusApplied:
			applied++
		case applier.StatusSkipped:
			skipped++
		default:
			failed++
			log.Printf("  ❌ Failed: %s", res.Reason)
		}
		report.SendResult(job, res)

		//registry write errors are fatal: a lost record risks re-applying
		if err := track.Record(ctx, job, res); err != nil {
			report.SendError(err)
			log.Fatalf("❌ Tracking failed: %v", err)
		}
	}

	log.Printf("🏁 Done. Applied: %d, Skipped: %d, Failed: %d (of %d new)",
		applied, skipped, failed, len(fresh))
	report.SendSummary(applied, skipped, failed)
}
