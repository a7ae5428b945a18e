// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/funkybooboo/library/pkg/types"
)

// DefaultConcurrency bounds simultaneous downloads when no bound is configured.
const DefaultConcurrency = 6

// Fetcher executes the strategy chain for one work item. The error is
// informational: it explains a failed outcome for the status log and never
// aborts the run.
type Fetcher interface {
	Fetch(ctx context.Context, item types.WorkItem) (types.Outcome, error)
}

// BatchResult holds the outcome log of one download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Outcomes   []types.Outcome
}

// Total returns the number of work items processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any item exhausted every strategy.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Successes returns the outcomes whose PDF is on disk.
func (r BatchResult) Successes() []types.Outcome {
	return r.filter(true)
}

// Failures returns the outcomes that need manual follow-up.
func (r BatchResult) Failures() []types.Outcome {
	return r.filter(false)
}

func (r BatchResult) filter(succeeded bool) []types.Outcome {
	var out []types.Outcome
	for _, o := range r.Outcomes {
		if o.Succeeded() == succeeded {
			out = append(out, o)
		}
	}
	return out
}

// Run fans items out over a fixed pool of workers, each running the full
// strategy chain for one item before taking the next. Items are fully
// isolated: one item's failure never cancels or blocks another. A single
// aggregator goroutine receives outcomes over a channel, so the outcome log
// and the per-item status lines on w never interleave mid-record.
func Run(ctx context.Context, items []types.WorkItem, fetcher Fetcher, concurrency int, w io.Writer) BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	type report struct {
		outcome types.Outcome
		err     error
	}

	queue := make(chan types.WorkItem)
	reports := make(chan report)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				outcome, err := fetcher.Fetch(ctx, item)
				reports <- report{outcome: outcome, err: err}
			}
		}()
	}

	go func() {
		for _, item := range items {
			queue <- item
		}
		close(queue)
		wg.Wait()
		close(reports)
	}()

	var result BatchResult
	for rep := range reports {
		result.Outcomes = append(result.Outcomes, rep.outcome)
		switch rep.outcome.Status {
		case types.StatusDownloaded:
			result.Downloaded++
			fmt.Fprintf(w, "downloaded: %s/%s\n", rep.outcome.TopicSlug, rep.outcome.TitleSlug)
		case types.StatusSkipped:
			result.Skipped++
			fmt.Fprintf(w, "skipped: %s/%s (already exists)\n", rep.outcome.TopicSlug, rep.outcome.TitleSlug)
		case types.StatusFailed:
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", rep.outcome.Link, rep.err)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}
