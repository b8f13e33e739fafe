package dice

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/139.0.0.0 Safari/537.36"

type DiceScraper struct {
	cfg     *config.Config
	client  *resty.Client
	limiter *rate.Limiter
}

func NewDiceScraper(cfg *config.Config) *DiceScraper {
	client := resty.New().
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", userAgent)
	return &DiceScraper{
		cfg:    cfg,
		client: client,
		//polite pacing between page requests
		limiter: rate.NewLimiter(rate.Every(400*time.Millisecond), 1),
	}
}

func (s *DiceScraper) Name() string {
	return "Dice"
}

func (s *DiceScraper) Scrape(ctx context.Context) ([]scraper.Job, error) {
	log.Println("📋 Searching Dice.com...")

	//first page decides the pagination; failure here is fatal for the run
	firstPage, err := s.fetchPage(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("fetch first results page: %w", err)
	}

	totalPages := TotalPages(firstPage)
	log.Printf("  📄 Detected %d result pages", totalPages)

	allJobs := ParseListings(firstPage)
	for p := 2; p <= totalPages; p++ {
		log.Printf("  🔍 Scraping job list (page %d/%d)...", p, totalPages)
		html, err := s.fetchPage(ctx, p)
		if err != nil {
			log.Printf("⚠️ Failed to load page %d: %v", p, err)
			continue
		}
		allJobs = append(allJobs, ParseListings(html)...)
	}

	unique := dedupeByID(allJobs)
	if len(unique) == 0 {
		log.Println("⚠️ No job links found — page structure may have changed")
	}
	log.Printf("📦 Found %d unique jobs", len(unique))
	return unique, nil
}

func (s *DiceScraper) fetchPage(ctx context.Context, page int) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := s.cfg.SearchURL(page)
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("status %d for %s", resp.StatusCode(), url)
	}
	return resp.String(), nil
}

// TotalPages reads the result-page count from the pagination section label
// ("Page 1 of 12"). Anything unexpected means a single page.
func TotalPages(html string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 1
	}

	label, ok := doc.Find(`section[aria-label*="Page"]`).First().Attr("aria-label")
	if !ok {
		return 1
	}

	label = strings.ReplaceAll(label, "Page", "")
	label = strings.ReplaceAll(label, "of", "")
	fields := strings.Fields(label)
	if len(fields) != 2 {
		return 1
	}

	total, err := strconv.Atoi(fields[1])
	if err != nil || total < 1 {
		return 1
	}
	return total
}

// ParseListings extracts job candidates from one search-results page,
// collapsed by id so a single parse never yields duplicates. An
// unrecognized page yields an empty slice, never an error.
func ParseListings(html string) []scraper.Job {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("⚠️ Failed to parse results page: %v", err)
		return nil
	}

	var jobs []scraper.Job
	seen := mapset.NewSet[string]()
	doc.Find(`a[data-testid="job-search-job-detail-link"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		jobURL := CanonicalJobURL(href)
		id := JobIDFromURL(jobURL)
		if id == "" || !seen.Add(id) {
			return
		}

		jobs = append(jobs, scraper.Job{
			ID:     id,
			Title:  cleanText(a.Text()),
			URL:    jobURL,
			Source: "Dice",
		})
	})
	return jobs
}

func dedupeByID(jobs []scraper.Job) []scraper.Job {
	seen := mapset.NewSet[string]()
	unique := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		if seen.Add(job.ID) {
			unique = append(unique, job)
		}
	}
	return unique
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
