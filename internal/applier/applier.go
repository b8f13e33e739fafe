package applier

import (
	"fmt"
	"log"
	"strings"

	"github.com/rajendar38/dice2/internal/browser"
	"github.com/rajendar38/dice2/internal/config"
	"github.com/rajendar38/dice2/internal/scraper"
	"github.com/rajendar38/dice2/utils"

	"github.com/playwright-community/playwright-go"
)

const loginURL = "https://www.dice.com/dashboard/login"

// maxFormSteps bounds the Easy Apply wizard walk; Dice forms are 2-3 steps.
const maxFormSteps = 6

type Status int

const (
	StatusApplied Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "Applied"
	case StatusSkipped:
		return "Skipped"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is the per-job outcome. A Failed result never aborts the batch;
// the caller moves on to the next listing.
type Result struct {
	Status Status
	Reason string
}

type Applier struct {
	cfg   *config.Config
	shots *utils.ScreenShotDebugger
}

func NewApplier(cfg *config.Config) *Applier {
	return &Applier{
		cfg:   cfg,
		shots: utils.NewScreenShotDebugger(cfg.ScreenshotsDir),
	}
}

// Login drives the Dice sign-in flow. A failure here is fatal for the run.
func (a *Applier) Login(page playwright.Page) error {
	log.Println("🔐 Logging in to Dice...")

	if _, err := page.Goto(loginURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("load login page: %w", err)
	}

	if err := page.Locator(`input[name="email"]`).Fill(a.cfg.DiceEmail); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}
	if err := page.Locator(`[data-testid="sign-in-button"]`).Click(); err != nil {
		return fmt.Errorf("click sign-in: %w", err)
	}

	//password field appears on a second step
	if _, err := page.WaitForSelector(`input[name="password"]`, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(60000),
	}); err != nil {
		return fmt.Errorf("password field never appeared: %w", err)
	}
	if err := page.Locator(`input[name="password"]`).Fill(a.cfg.DicePassword); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := page.Locator(`[data-testid="submit-password"]`).Click(); err != nil {
		return fmt.Errorf("submit password: %w", err)
	}

	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(120000),
	}); err != nil {
		return fmt.Errorf("post-login load: %w", err)
	}

	log.Println("✅ Logged in successfully.")
	return nil
}

// Apply opens a job page and completes the Easy Apply flow if available.
func (a *Applier) Apply(page playwright.Page, job scraper.Job) Result {
	if _, err := page.Goto(job.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return Result{StatusFailed, fmt.Sprintf("navigation: %v", err)}
	}

	//human behavior before poking the apply widget
	browser.RandomDelay(500, 1500)
	browser.MouseJiggle(page)
	browser.SmoothScroll(page)

	easyBtn, ok := a.findEasyApply(page)
	if !ok {
		log.Printf("  ⏭️ Skipping (no Easy apply): %s", job.URL)
		return Result{StatusSkipped, "no Easy Apply option present"}
	}

	log.Printf("  🖱️ Clicking Easy apply on: %s", job.URL)
	if err := easyBtn.Click(); err != nil {
		return a.failWithShot(page, job, "easy-apply-click", fmt.Sprintf("click easy apply: %v", err))
	}

	if err := a.attachResume(page); err != nil {
		return a.failWithShot(page, job, "resume-upload", fmt.Sprintf("resume upload: %v", err))
	}

	//walk the wizard steps until the Submit button shows up
	for i := 0; i < maxFormSteps; i++ {
		submitBtn := page.Locator("button.btn-next", playwright.PageLocatorOptions{
			HasText: "Submit",
		})
		if visible, _ := submitBtn.IsVisible(); visible {
			if err := submitBtn.Click(); err != nil {
				return a.failWithShot(page, job, "submit-click", fmt.Sprintf("click submit: %v", err))
			}
			page.WaitForTimeout(1200)
			log.Println("  ✔ Submitted")
			return Result{Status: StatusApplied}
		}

		nextBtn := page.Locator("button.btn-next")
		if visible, _ := nextBtn.IsVisible(); visible {
			nextBtn.Click()
			page.WaitForTimeout(1000)
		} else {
			break
		}
	}

	return a.failWithShot(page, job, "no-submit-step", "could not reach the Submit step")
}

// findEasyApply waits for the apply web component and looks for an
// Easy Apply control inside it.
func (a *Applier) findEasyApply(page playwright.Page) (playwright.Locator, bool) {
	if _, err := page.WaitForSelector("apply-button-wc", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(30000),
	}); err != nil {
		return nil, false
	}

	//give the web component time to hydrate
	page.WaitForTimeout(1000)

	host := page.Locator("apply-button-wc")
	easy := host.Locator("button.btn-primary", playwright.LocatorLocatorOptions{
		HasText: "Easy apply",
	})
	if count, _ := easy.Count(); count > 0 {
		if visible, _ := easy.First().IsVisible(); visible {
			return easy.First(), true
		}
	}

	//fallback: any primary button inside the host whose label mentions apply
	fallback := host.Locator("button.btn-primary")
	count, _ := fallback.Count()
	if count > 3 {
		count = 3
	}
	for i := 0; i < count; i++ {
		text, err := fallback.Nth(i).InnerText(playwright.LocatorInnerTextOptions{
			Timeout: playwright.Float(1000),
		})
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(text), "apply") {
			return fallback.Nth(i), true
		}
	}
	return nil, false
}

// attachResume replaces the stored resume with the configured file and
// confirms the upload.
func (a *Applier) attachResume(page playwright.Page) error {
	if _, err := page.WaitForSelector("button.file-remove", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("replace control: %w", err)
	}
	if err := page.Locator("button.file-remove", playwright.PageLocatorOptions{
		HasText: "Replace",
	}).Click(); err != nil {
		return fmt.Errorf("click replace: %w", err)
	}

	if _, err := page.WaitForSelector("input#fsp-fileUpload", playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("file input: %w", err)
	}
	if err := page.Locator("input#fsp-fileUpload").SetInputFiles(a.cfg.ResumePath); err != nil {
		return fmt.Errorf("set resume file: %w", err)
	}
	page.WaitForTimeout(1200)

	if _, err := page.WaitForSelector(`span[data-e2e="upload"]`, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("upload control: %w", err)
	}
	if err := page.Locator(`span[data-e2e="upload"]`).Click(); err != nil {
		return fmt.Errorf("click upload: %w", err)
	}
	page.WaitForTimeout(1200)
	return nil
}

func (a *Applier) failWithShot(page playwright.Page, job scraper.Job, name, reason string) Result {
	a.shots.CaptureAndLog(page, job.ID, name, "🚨 Apply failed: "+reason)
	return Result{StatusFailed, reason}
}
