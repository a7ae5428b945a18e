// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog reads the papers.yml catalog and flattens its nested
// records into a deduplicated download work list.
package catalog

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/funkybooboo/library/pkg/types"
)

// Load reads and parses the catalog file. Any read or parse error is fatal
// to the run: without a readable catalog there is no work to do.
func Load(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var records []types.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return records, nil
}

// Flatten walks records in input order and emits one work item per unique
// link: first the top-level record, then each of its related entries under
// the parent's primary topic. The link, not the title, is the dedup key; a
// record whose link was already seen is dropped entirely. Records missing a
// title, link, or topic are skipped without touching the seen set.
func Flatten(records []types.Record) []types.WorkItem {
	seen := make(map[string]struct{})
	var items []types.WorkItem

	add := func(title, link, topic string) {
		if title == "" || link == "" || topic == "" {
			return
		}
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		items = append(items, types.WorkItem{Title: title, Link: link, Topic: topic})
	}

	for _, r := range records {
		topic := r.PrimaryTopic()
		add(r.Title, r.Link, topic)
		for _, rel := range r.Related {
			add(rel.Title, rel.Link, topic)
		}
	}
	return items
}
