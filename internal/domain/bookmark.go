package domain

import (
	"strings"
	"time"
)

// RepeatType controls how often a reminder re-fires after delivery.
type RepeatType string

const (
	RepeatNone   RepeatType = "none"
	RepeatDaily  RepeatType = "daily"
	RepeatWeekly RepeatType = "weekly"
)

// ParseRepeatType maps a wire value to a known repeat type.
// Unknown values degrade to RepeatNone.
func ParseRepeatType(s string) RepeatType {
	switch RepeatType(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatDaily:
		return RepeatDaily
	case RepeatWeekly:
		return RepeatWeekly
	default:
		return RepeatNone
	}
}

const (
	// MinFollowUpDays / MaxFollowUpDays bound the smart follow-up delay.
	MinFollowUpDays = 1
	MaxFollowUpDays = 30
	// DefaultFollowUpDays is used when no delay was chosen.
	DefaultFollowUpDays = 3
)

// SmartFollowUp schedules an automatic follow-up reminder a few days
// after a bookmark reminder fires.
type SmartFollowUp struct {
	Enabled   bool `json:"enabled"`
	DaysDelay int  `json:"daysDelay"`
}

// ClampFollowUpDays forces the delay into [MinFollowUpDays, MaxFollowUpDays].
// Zero (unset) becomes the default.
func ClampFollowUpDays(days int) int {
	if days == 0 {
		return DefaultFollowUpDays
	}
	if days < MinFollowUpDays {
		return MinFollowUpDays
	}
	if days > MaxFollowUpDays {
		return MaxFollowUpDays
	}
	return days
}

// Bookmark is a saved URL as the remote service returns it.
// RemindAt is an absolute timestamp; nil means no reminder is set.
type Bookmark struct {
	ID            string        `json:"id"`
	URL           string        `json:"url"`
	Title         string        `json:"title"`
	Tags          []string      `json:"tag"`
	RemindAt      *time.Time    `json:"remindAt,omitempty"`
	RepeatType    RepeatType    `json:"repeatType"`
	SmartFollowUp SmartFollowUp `json:"smartFollowUp"`
	Reminded      bool          `json:"reminded"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Draft is an in-progress bookmark as held by the form controller.
// RemindAt is a local wall-clock value; empty means no reminder.
type Draft struct {
	URL                  string     `json:"url"`
	Title                string     `json:"title"`
	Tags                 string     `json:"tags"` // comma-separated, as entered
	RemindAt             string     `json:"remindAt"`
	RepeatType           RepeatType `json:"repeatType"`
	SmartFollowUpEnabled bool       `json:"smartFollowUpEnabled"`
	SmartFollowUpDays    int        `json:"smartFollowUpDays"`
}

// NormalizeTags splits a comma-separated tag string into trimmed,
// deduplicated, non-empty tags. Order of first appearance is kept.
func NormalizeTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, tag)
	}
	return tags
}

// User is the current-session view of whoever is signed in.
// Token is the bearer credential; its origin (identity provider or
// persisted record) is tracked by the session gate, not here.
type User struct {
	Token           string `json:"token"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}
