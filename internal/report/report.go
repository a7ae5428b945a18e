// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders the Markdown indexes produced at the end of a
// download run: one listing the PDFs on disk, one listing the papers that
// need manual retrieval.
package report

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/funkybooboo/library/pkg/types"
)

// WriteDownloaded writes the success index: outcomes grouped by topic,
// sorted by topic then title, each entry linking to its PDF relative to
// the report's location.
func WriteDownloaded(outPath string, outcomes []types.Outcome, papersDir string) error {
	var b strings.Builder
	b.WriteString("# Downloaded papers\n")

	forEachTopic(outcomes, func(topic string, group []types.Outcome) {
		fmt.Fprintf(&b, "\n## %s\n\n", topic)
		for _, o := range group {
			pdf := path.Join(papersDir, o.TopicSlug, o.TitleSlug+".pdf")
			fmt.Fprintf(&b, "- [%s](%s)\n", o.Title, pdf)
		}
	})

	return writeFile(outPath, b.String())
}

// WriteFailed writes the failure index. Every entry keeps the original URL
// so a failed paper can be fetched by hand; nothing is silently dropped.
func WriteFailed(outPath string, outcomes []types.Outcome) error {
	var b strings.Builder
	b.WriteString("# Failed downloads\n")

	forEachTopic(outcomes, func(topic string, group []types.Outcome) {
		fmt.Fprintf(&b, "\n## %s\n\n", topic)
		for _, o := range group {
			fmt.Fprintf(&b, "- [%s](%s)\n", o.Title, o.Link)
		}
	})

	return writeFile(outPath, b.String())
}

// forEachTopic visits outcome groups in sorted topic order, each group
// sorted by title. The outcome log arrives in completion order; sorting
// here keeps the reports deterministic across runs.
func forEachTopic(outcomes []types.Outcome, visit func(topic string, group []types.Outcome)) {
	byTopic := make(map[string][]types.Outcome)
	for _, o := range outcomes {
		byTopic[o.TopicSlug] = append(byTopic[o.TopicSlug], o)
	}

	topics := make([]string, 0, len(byTopic))
	for topic := range byTopic {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		group := byTopic[topic]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Title < group[j].Title
		})
		visit(topic, group)
	}
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
