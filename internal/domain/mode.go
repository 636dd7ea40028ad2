package domain

import "fmt"

// Mode is the closed set of form modes. Each variant carries only the
// reference fields that are valid for it, so an impossible combination
// (say, an email-link token together with a bookmark id) cannot be
// represented.
type Mode interface {
	formMode()
}

// Create builds a brand new bookmark. All fields are editable.
type Create struct{}

// Edit replaces every editable field of an existing bookmark.
type Edit struct {
	ID string
}

// RescheduleDashboard changes only the reminder time of an existing
// bookmark, reached from the dashboard while signed in.
type RescheduleDashboard struct {
	ID string
}

// RescheduleEmailLink changes only the reminder time via an opaque
// emailed token. No authenticated session is required.
type RescheduleEmailLink struct {
	Token string
}

func (Create) formMode()              {}
func (Edit) formMode()                {}
func (RescheduleDashboard) formMode() {}
func (RescheduleEmailLink) formMode() {}

// DetectMode resolves the form mode from the draft-reference
// parameters. A reminder token always wins; without an id the form is
// a create; with an id the mode parameter picks edit vs reschedule.
func DetectMode(id, mode, reminderToken string) (Mode, error) {
	if reminderToken != "" {
		return RescheduleEmailLink{Token: reminderToken}, nil
	}
	if id == "" {
		return Create{}, nil
	}
	switch mode {
	case "remind":
		return RescheduleDashboard{ID: id}, nil
	case "edit", "":
		return Edit{ID: id}, nil
	default:
		return nil, fmt.Errorf("unknown form mode %q", mode)
	}
}
