package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rajendar38/dice2/internal/applier"
	"github.com/rajendar38/dice2/internal/registry"
	"github.com/rajendar38/dice2/internal/scraper"
)

// Tracker records applied jobs and pauses between consecutive submissions
// to keep the interaction cadence human-like.
type Tracker struct {
	registry   *registry.Registry
	perJobWait time.Duration
}

func New(reg *registry.Registry, perJobWait time.Duration) *Tracker {
	return &Tracker{
		registry:   reg,
		perJobWait: perJobWait,
	}
}

// Record persists the job id when the application went through, then sleeps
// the full pacing delay before returning control to the pipeline, however
// long the browser interaction itself took. Only Applied results are
// written; a Failed or Skipped job stays eligible for the next run. A
// registry write error is fatal for the run.
func (t *Tracker) Record(ctx context.Context, job scraper.Job, res applier.Result) error {
	if res.Status == applier.StatusApplied {
		if err := t.registry.Append(job.ID); err != nil {
			return fmt.Errorf("record applied job %s: %w", job.ID, err)
		}
		log.Printf("  💾 Recorded %s in registry", job.ID)
	}

	//pacing delay between browser interactions
	select {
	case <-time.After(t.perJobWait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
