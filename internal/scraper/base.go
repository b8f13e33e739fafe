// Define an interface for all scrapers
// Ensure consistency

package scraper

import "context"

type Job struct {
	ID     string
	Title  string
	URL    string
	Source string
}

//Scraper defines the interface that all job-board scrapers must implement
type Scraper interface {
	//Scrape job listings from the board
	Scrape(ctx context.Context) ([]Job, error)

	//Name is the board name (Dice, ...)
	Name() string
}
