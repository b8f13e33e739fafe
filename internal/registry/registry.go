package registry

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/rajendar38/dice2/internal/scraper"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gofrs/flock"
)

// Registry tracks job ids that were already applied to. The backing store is
// a flat file with one id per line, appended to as applications succeed, so
// a rerun never re-applies. Appends are synced to disk before the id is
// considered recorded.
type Registry struct {
	mu       sync.Mutex
	filePath string
	fileLock *flock.Flock
	applied  mapset.Set[string]
}

// Open loads the registry file and takes an exclusive file lock so two runs
// cannot append concurrently.
func Open(path string) (*Registry, error) {
	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock registry: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("registry %s is in use by another run", path)
	}

	r := &Registry{
		filePath: path,
		fileLock: fileLock,
		applied:  mapset.NewSet[string](),
	}
	if err := r.load(); err != nil {
		fileLock.Unlock()
		return nil, err
	}
	return r, nil
}

func (r *Registry) Close() error {
	return r.fileLock.Unlock()
}

func (r *Registry) load() error {
	f, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read registry: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id != "" {
			r.applied.Add(id)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read registry: %w", err)
	}

	log.Printf("📋 Loaded %d previously applied jobs", r.applied.Cardinality())
	return nil
}

// Contains reports whether the id was applied to in a previous run.
func (r *Registry) Contains(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applied.Contains(id)
}

// Len is the number of recorded ids.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.applied.Cardinality()
}

// FilterNew returns the subsequence of jobs whose ids are not recorded.
// Pure filter, no side effects.
func (r *Registry) FilterNew(jobs []scraper.Job) []scraper.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	fresh := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		if !r.applied.Contains(job.ID) {
			fresh = append(fresh, job)
		}
	}
	return fresh
}

// Append durably records an applied id. Already-recorded ids are a no-op so
// no id ever appears twice in the file. A write error must be treated as
// fatal by the caller: losing the record risks a duplicate application.
func (r *Registry) Append(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.applied.Contains(id) {
		return nil
	}

	f, err := os.OpenFile(r.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	if _, err := f.WriteString(id + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("append to registry: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync registry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close registry: %w", err)
	}

	r.applied.Add(id)
	return nil
}
