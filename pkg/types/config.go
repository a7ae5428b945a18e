package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent on primary download attempts.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DownloadConfig holds settings for the download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Concurrency bounds the number of simultaneous downloads (default 6).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// PapersDir is the store root; PDFs land at PapersDir/<topic>/<title>.pdf.
	PapersDir string `json:"papers_dir" yaml:"papers_dir"`

	// CookieFile is an optional Netscape-format cookies.txt whose session
	// cookies are attached to primary download attempts.
	CookieFile string `json:"cookie_file,omitempty" yaml:"cookie_file,omitempty"`

	// SearchReferer is the fixed Referer sent by the first fallback attempt,
	// simulating traffic arriving from a search engine.
	SearchReferer string `json:"search_referer,omitempty" yaml:"search_referer,omitempty"`

	// FallbackUserAgent is the User-Agent of the second fallback client.
	FallbackUserAgent string `json:"fallback_user_agent,omitempty" yaml:"fallback_user_agent,omitempty"`

	// PublisherReferer is the fixed Referer sent by the second fallback
	// client, pointing at a known publisher domain.
	PublisherReferer string `json:"publisher_referer,omitempty" yaml:"publisher_referer,omitempty"`

	// RequestsPerSecond caps requests per host across all workers.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
}

// ProgressConfig holds settings for the reading-progress tracker.
type ProgressConfig struct {
	// ProgressDir is the directory holding progress.db.
	ProgressDir string `json:"progress_dir" yaml:"progress_dir"`
}

// ReportConfig holds the output paths for the run report indexes.
type ReportConfig struct {
	// DownloadedPath is the Markdown index of papers present on disk.
	DownloadedPath string `json:"downloaded_path" yaml:"downloaded_path"`

	// FailedPath is the Markdown index of papers that could not be fetched.
	FailedPath string `json:"failed_path" yaml:"failed_path"`
}
