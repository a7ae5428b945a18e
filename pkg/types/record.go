// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data types shared across pipeline stages.
package types

// Record is one catalog entry as it appears in papers.yml. A record may
// carry related papers one level deep; related entries reuse the parent's
// primary topic and are never nested further.
type Record struct {
	// Title is the paper title as written in the catalog.
	Title string `json:"title" yaml:"title"`

	// Link is the source URL of the paper's PDF. It is the canonical
	// identity of the paper: two records sharing a link are the same paper.
	Link string `json:"link" yaml:"link"`

	// Topics lists the topics the paper belongs to. The first entry is the
	// primary topic and decides where the PDF is stored.
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`

	// Related lists papers attached to this one. Related entries carry no
	// topics of their own; they inherit the parent's primary topic.
	Related []Record `json:"related,omitempty" yaml:"related,omitempty"`
}

// PrimaryTopic returns the record's first topic, or "" when none is set.
func (r Record) PrimaryTopic() string {
	if len(r.Topics) == 0 {
		return ""
	}
	return r.Topics[0]
}

// WorkItem is one deduplicated download target. Within one flatten pass no
// two work items share a Link.
type WorkItem struct {
	// Title is the display title, used to derive the PDF filename.
	Title string `json:"title" yaml:"title"`

	// Link is the URL to fetch.
	Link string `json:"link" yaml:"link"`

	// Topic is the owning primary topic: the record's own for top-level
	// entries, the parent's for related entries.
	Topic string `json:"topic" yaml:"topic"`
}
