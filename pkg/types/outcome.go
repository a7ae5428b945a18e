// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutcomeStatus classifies how a work item finished.
type OutcomeStatus string

const (
	// StatusDownloaded means a strategy fetched the PDF in this run.
	StatusDownloaded OutcomeStatus = "downloaded"

	// StatusSkipped means the PDF was already on disk; no network call
	// was made. Skipped items count as successes in reports.
	StatusSkipped OutcomeStatus = "skipped"

	// StatusFailed means every strategy was exhausted without producing
	// the PDF.
	StatusFailed OutcomeStatus = "failed"
)

// Outcome is one append-only log entry for a processed work item. Outcomes
// are never mutated once recorded; the report stage sorts them itself.
type Outcome struct {
	// Status classifies the result.
	Status OutcomeStatus `json:"status" yaml:"status"`

	// TopicSlug is the filesystem-safe topic directory name.
	TopicSlug string `json:"topic_slug" yaml:"topic_slug"`

	// TitleSlug is the filesystem-safe PDF filename stem.
	TitleSlug string `json:"title_slug" yaml:"title_slug"`

	// Title is the display title for report entries.
	Title string `json:"title" yaml:"title"`

	// Link is the original URL. Always set so failures can be retried
	// by hand.
	Link string `json:"link" yaml:"link"`
}

// Succeeded reports whether the item's PDF is on disk, whether it was
// fetched in this run or found already present.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusDownloaded || o.Status == StatusSkipped
}
