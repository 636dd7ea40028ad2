package importfile

import (
	"testing"

	"github.com/revisitly/revisitly/internal/domain"
)

func TestMapDrafts(t *testing.T) {
	mapper := NewMapper()
	file := &File{
		Bookmarks: []Entry{
			{
				URL:      "  https://go.dev/blog/generics  ",
				Title:    " Go generics ",
				Tags:     []string{"go", "reading"},
				RemindAt: "2026-09-15T10:00",
				Repeat:   "weekly",
			},
			{
				URL: "https://example.com/recipe",
			},
		},
	}

	drafts, err := mapper.MapDrafts(file)
	if err != nil {
		t.Fatalf("MapDrafts() error = %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("MapDrafts() produced %d drafts, want 2", len(drafts))
	}

	first := drafts[0]
	if first.URL != "https://go.dev/blog/generics" {
		t.Errorf("url = %q, want trimmed url", first.URL)
	}
	if first.Title != "Go generics" {
		t.Errorf("title = %q, want trimmed title", first.Title)
	}
	if first.Tags != "go,reading" {
		t.Errorf("tags = %q, want comma-joined", first.Tags)
	}
	if first.RepeatType != domain.RepeatWeekly {
		t.Errorf("repeat = %q, want weekly", first.RepeatType)
	}
	if first.SmartFollowUpDays != domain.DefaultFollowUpDays {
		t.Errorf("smart follow-up days = %d, want default %d", first.SmartFollowUpDays, domain.DefaultFollowUpDays)
	}

	second := drafts[1]
	if second.RepeatType != domain.RepeatNone {
		t.Errorf("missing repeat = %q, want none", second.RepeatType)
	}
}

func TestMapDraftsSkipsEntriesWithoutURL(t *testing.T) {
	mapper := NewMapper()
	file := &File{
		Bookmarks: []Entry{
			{Title: "no url at all"},
			{URL: "   "},
			{URL: "https://example.com"},
		},
	}

	drafts, err := mapper.MapDrafts(file)
	if err != nil {
		t.Fatalf("MapDrafts() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Errorf("MapDrafts() produced %d drafts, want 1", len(drafts))
	}
}

func TestMapDraftsAllInvalidIsAnError(t *testing.T) {
	mapper := NewMapper()
	file := &File{
		Bookmarks: []Entry{
			{Title: "no url"},
			{URL: ""},
		},
	}

	if _, err := mapper.MapDrafts(file); err == nil {
		t.Fatal("MapDrafts() should fail when no entry is usable")
	}
}
