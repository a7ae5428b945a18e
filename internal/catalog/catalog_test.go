// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/funkybooboo/library/pkg/types"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "papers.yml")
	data := `- title: Attention Is All You Need
  link: https://arxiv.org/pdf/1706.03762
  topics:
    - transformers
    - nlp
  related:
    - title: BERT
      link: https://arxiv.org/pdf/1810.04805
- title: MapReduce
  link: https://example.com/mapreduce.pdf
  topics:
    - systems
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", records[0].Title)
	}
	if records[0].PrimaryTopic() != "transformers" {
		t.Errorf("PrimaryTopic = %q, want %q", records[0].PrimaryTopic(), "transformers")
	}
	if len(records[0].Related) != 1 {
		t.Fatalf("len(Related) = %d, want 1", len(records[0].Related))
	}
	if records[0].Related[0].Link != "https://arxiv.org/pdf/1810.04805" {
		t.Errorf("related link = %q", records[0].Related[0].Link)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing catalog")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "papers.yml")
	if err := os.WriteFile(path, []byte("title: not-a-list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed catalog")
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Record
		want    []types.WorkItem
	}{
		{
			name: "parent then related, duplicate top-level dropped",
			records: []types.Record{
				{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
					{Title: "B", Link: "u2"},
				}},
				{Title: "C", Link: "u1", Topics: []string{"T2"}},
			},
			want: []types.WorkItem{
				{Title: "A", Link: "u1", Topic: "T1"},
				{Title: "B", Link: "u2", Topic: "T1"},
			},
		},
		{
			name: "related inherits parent primary topic",
			records: []types.Record{
				{Title: "A", Link: "u1", Topics: []string{"T1", "T2"}, Related: []types.Record{
					{Title: "B", Link: "u2"},
					{Title: "C", Link: "u3"},
				}},
			},
			want: []types.WorkItem{
				{Title: "A", Link: "u1", Topic: "T1"},
				{Title: "B", Link: "u2", Topic: "T1"},
				{Title: "C", Link: "u3", Topic: "T1"},
			},
		},
		{
			name: "related duplicating its own parent is dropped",
			records: []types.Record{
				{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
					{Title: "A again", Link: "u1"},
				}},
			},
			want: []types.WorkItem{
				{Title: "A", Link: "u1", Topic: "T1"},
			},
		},
		{
			name: "empty title or link skipped without marking seen",
			records: []types.Record{
				{Title: "", Link: "u1", Topics: []string{"T1"}},
				{Title: "B", Link: "", Topics: []string{"T1"}},
				{Title: "C", Link: "u1", Topics: []string{"T2"}},
			},
			want: []types.WorkItem{
				{Title: "C", Link: "u1", Topic: "T2"},
			},
		},
		{
			name: "record without topics skipped, related skipped with it",
			records: []types.Record{
				{Title: "A", Link: "u1", Related: []types.Record{
					{Title: "B", Link: "u2"},
				}},
			},
			want: nil,
		},
		{
			name: "duplicate related across parents kept once",
			records: []types.Record{
				{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
					{Title: "X", Link: "ux"},
				}},
				{Title: "B", Link: "u2", Topics: []string{"T2"}, Related: []types.Record{
					{Title: "X", Link: "ux"},
				}},
			},
			want: []types.WorkItem{
				{Title: "A", Link: "u1", Topic: "T1"},
				{Title: "X", Link: "ux", Topic: "T1"},
				{Title: "B", Link: "u2", Topic: "T2"},
			},
		},
		{
			name:    "empty input",
			records: nil,
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.records)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Flatten() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestFlattenDeterministic(t *testing.T) {
	records := []types.Record{
		{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
			{Title: "B", Link: "u2"},
			{Title: "C", Link: "u3"},
		}},
		{Title: "D", Link: "u4", Topics: []string{"T2"}},
	}

	first := Flatten(records)
	second := Flatten(records)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Flatten is not deterministic: %#v vs %#v", first, second)
	}
}

func TestFlattenUniqueLinks(t *testing.T) {
	records := []types.Record{
		{Title: "A", Link: "u1", Topics: []string{"T1"}, Related: []types.Record{
			{Title: "B", Link: "u2"},
			{Title: "B mirror", Link: "u2"},
		}},
		{Title: "C", Link: "u2", Topics: []string{"T2"}},
		{Title: "D", Link: "u3", Topics: []string{"T3"}},
	}

	items := Flatten(records)
	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.Link] {
			t.Errorf("duplicate link %q in output", item.Link)
		}
		seen[item.Link] = true
	}
}
