package api

import "github.com/revisitly/revisitly/internal/domain"

// BookmarkPayload is the full editable draft on the wire. RemindAt is
// an absolute RFC 3339 timestamp; empty means no reminder.
type BookmarkPayload struct {
	URL           string               `json:"url"`
	Title         string               `json:"title"`
	Tags          []string             `json:"tag"`
	RemindAt      string               `json:"remindAt"`
	RepeatType    domain.RepeatType    `json:"repeatType"`
	SmartFollowUp domain.SmartFollowUp `json:"smartFollowUp"`
}

// ReminderPatch is the partial update used by reschedule modes. Only
// the reminder time travels; everything else stays untouched.
type ReminderPatch struct {
	RemindAt string `json:"remindAt"`
}

type credentialsPayload struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type socialLoginPayload struct {
	IDToken string `json:"idToken"`
}

type reminderTokenPayload struct {
	Token string `json:"token"`
}

type remindByEmailPayload struct {
	Token    string `json:"token"`
	RemindAt string `json:"remindAt"`
}

// envelope is the part every response shares.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type bookmarkResponse struct {
	envelope
	Bookmark *domain.Bookmark `json:"bookmark"`
}

type bookmarksResponse struct {
	envelope
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
}

type authUser struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl"`
}

type authResponse struct {
	envelope
	Token string    `json:"token"`
	User  *authUser `json:"user"`
}

type verifyTokenResponse struct {
	envelope
	OwnerEmail string `json:"ownerEmail"`
}
