package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger captures full-page screenshots when an apply attempt
// goes sideways, named after the job so failures can be matched to listings.
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(outputDir string) *ScreenShotDebugger {
	if outputDir == "" {
		outputDir = filepath.Join("logs", "screenshots")
	}
	os.MkdirAll(outputDir, 0755)
	return &ScreenShotDebugger{
		outputDir: outputDir,
	}
}

func shotFilename(jobID, name string, ts time.Time) string {
	timestamp := ts.Format("2006-01-02_15-04-05")
	if jobID == "" {
		return fmt.Sprintf("%s_%s.png", name, timestamp)
	}
	return fmt.Sprintf("%s_%s_%s.png", jobID, name, timestamp)
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, jobID, name, message string) error {
	path := filepath.Join(s.outputDir, shotFilename(jobID, name, time.Now()))
	log.Printf("📸 %s", message)

	//Take screenshot
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
