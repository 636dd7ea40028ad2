package form

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/timecodec"
)

// DashboardRedirectDelay is how long a confirmation stays visible
// before the dashboard transition.
const DashboardRedirectDelay = 1500 * time.Millisecond

// Prefill carries draft parameters handed in by a deep link or share
// target. RemindAt is an absolute RFC 3339 value, as links carry it.
type Prefill struct {
	URL      string
	Title    string
	Tags     string
	RemindAt string
}

// Outcome describes a successful submission.
type Outcome struct {
	Message       string        `json:"message"`
	DraftCleared  bool          `json:"draftCleared"`
	Redirect      string        `json:"redirect"`
	RedirectAfter time.Duration `json:"redirectAfterMs"`
}

// Controller drives the bookmark form across its four modes. It keeps
// the latest prepared draft; a slow prefetch that loses the race to a
// newer Prepare call is discarded rather than written back.
type Controller struct {
	client *api.Client
	codec  *timecodec.Codec
	logger logger.Logger

	mu      sync.Mutex
	gen     uint64
	current domain.Draft
	mode    domain.Mode
}

// NewController builds a form controller.
func NewController(client *api.Client, codec *timecodec.Codec, log logger.Logger) *Controller {
	return &Controller{client: client, codec: codec, logger: log, mode: domain.Create{}}
}

// Prepare builds the draft for a mode. Edit and dashboard-reschedule
// prefetch the target bookmark and repopulate from it, converting the
// stored absolute reminder to local wall-clock. Email-link mode starts
// empty: the server validates the token at verification and submit
// time instead.
func (c *Controller) Prepare(ctx context.Context, mode domain.Mode, prefill Prefill) (domain.Draft, error) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	draft := c.draftFromPrefill(prefill)

	var id string
	switch m := mode.(type) {
	case domain.Edit:
		id = m.ID
	case domain.RescheduleDashboard:
		id = m.ID
	case domain.Create, domain.RescheduleEmailLink:
		c.commit(gen, mode, draft)
		return draft, nil
	default:
		return domain.Draft{}, fmt.Errorf("unsupported form mode %T", mode)
	}

	bookmark, err := c.client.GetByID(ctx, id)
	if err != nil {
		return domain.Draft{}, fmt.Errorf("load bookmark %s: %w", id, err)
	}
	draft = c.draftFromBookmark(bookmark)
	c.commit(gen, mode, draft)
	return draft, nil
}

// commit stores the prepared draft unless a newer Prepare has started
// since; last-started wins and the stale result is dropped.
func (c *Controller) commit(gen uint64, mode domain.Mode, draft domain.Draft) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Debug("discarding stale form prefetch result")
		return
	}
	c.current = draft
	c.mode = mode
}

// Current returns the most recently prepared draft and its mode.
func (c *Controller) Current() (domain.Draft, domain.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.mode
}

// Submit validates the draft and dispatches the operation the mode
// calls for. Validation failures never reach the network. On success
// the draft is cleared only in create mode and a dashboard transition
// is scheduled after a short fixed delay; on failure the draft is left
// untouched for the caller to re-render.
func (c *Controller) Submit(ctx context.Context, mode domain.Mode, draft domain.Draft) (Outcome, error) {
	remindAt, err := c.validate(mode, draft)
	if err != nil {
		return Outcome{}, err
	}

	remindAtWire := c.codec.ToWire(remindAt)

	switch m := mode.(type) {
	case domain.Create:
		if _, err := c.client.Create(ctx, c.payload(draft, remindAtWire)); err != nil {
			return Outcome{}, err
		}
		c.clear()
		return c.outcome("Bookmark added successfully!", true), nil

	case domain.Edit:
		if _, err := c.client.Update(ctx, m.ID, c.payload(draft, remindAtWire)); err != nil {
			return Outcome{}, err
		}
		return c.outcome("Bookmark updated successfully!", false), nil

	case domain.RescheduleDashboard:
		// Partial update: only the reminder travels
		if _, err := c.client.UpdateReminder(ctx, m.ID, remindAtWire); err != nil {
			return Outcome{}, err
		}
		return c.outcome("Reminder updated successfully!", false), nil

	case domain.RescheduleEmailLink:
		if err := c.client.UpdateReminderByToken(ctx, m.Token, remindAtWire); err != nil {
			return Outcome{}, err
		}
		return c.outcome("Reminder updated successfully!", false), nil

	default:
		return Outcome{}, fmt.Errorf("unsupported form mode %T", mode)
	}
}

// SubmitImported runs a create outside the interactive draft slot. The
// import runner uses it so a background import never clears a form the
// user is filling in. Validation is the same as for typed drafts.
func (c *Controller) SubmitImported(ctx context.Context, draft domain.Draft) error {
	remindAt, err := c.validate(domain.Create{}, draft)
	if err != nil {
		return err
	}
	_, err = c.client.Create(ctx, c.payload(draft, c.codec.ToWire(remindAt)))
	return err
}

// VerifyEmailLink checks an emailed reminder token and returns the
// owner's email for the account-match hint.
func (c *Controller) VerifyEmailLink(ctx context.Context, token string) (string, error) {
	return c.client.VerifyReminderToken(ctx, token)
}

// validate applies the pre-network rules and returns the parsed
// absolute reminder time (zero = none).
func (c *Controller) validate(mode domain.Mode, draft domain.Draft) (time.Time, error) {
	_, emailLink := mode.(domain.RescheduleEmailLink)
	_, dashboardReschedule := mode.(domain.RescheduleDashboard)
	rescheduleOnly := emailLink || dashboardReschedule

	if !rescheduleOnly && draft.URL == "" {
		return time.Time{}, domain.NewValidationError("url", "a URL is required")
	}
	if emailLink && draft.RemindAt == "" {
		return time.Time{}, domain.NewValidationError("remindAt", "a reminder time is required")
	}

	remindAt, err := c.codec.ToAbsolute(draft.RemindAt)
	if err != nil {
		// Parse failures are user input problems, not transport ones
		return time.Time{}, domain.NewValidationError("remindAt", err.Error())
	}
	if !remindAt.IsZero() && !remindAt.After(c.codec.Now()) {
		return time.Time{}, domain.NewValidationError("remindAt", "reminder time must be in the future")
	}
	return remindAt, nil
}

func (c *Controller) payload(draft domain.Draft, remindAtWire string) api.BookmarkPayload {
	return api.BookmarkPayload{
		URL:        draft.URL,
		Title:      draft.Title,
		Tags:       domain.NormalizeTags(draft.Tags),
		RemindAt:   remindAtWire,
		RepeatType: domain.ParseRepeatType(string(draft.RepeatType)),
		SmartFollowUp: domain.SmartFollowUp{
			Enabled:   draft.SmartFollowUpEnabled,
			DaysDelay: domain.ClampFollowUpDays(draft.SmartFollowUpDays),
		},
	}
}

func (c *Controller) outcome(message string, cleared bool) Outcome {
	return Outcome{
		Message:       message,
		DraftCleared:  cleared,
		Redirect:      "/dashboard",
		RedirectAfter: DashboardRedirectDelay,
	}
}

func (c *Controller) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = domain.Draft{}
	c.mode = domain.Create{}
}

func (c *Controller) draftFromPrefill(p Prefill) domain.Draft {
	draft := domain.Draft{
		URL:               p.URL,
		Title:             p.Title,
		Tags:              p.Tags,
		RepeatType:        domain.RepeatNone,
		SmartFollowUpDays: domain.DefaultFollowUpDays,
	}
	if p.RemindAt != "" {
		// Deep links carry the absolute form; show it as local time
		if abs, err := c.codec.FromWire(p.RemindAt); err == nil {
			draft.RemindAt = c.codec.ToLocalWallClock(abs)
		} else {
			c.logger.Warn("ignoring unparseable remindAt prefill", logger.String("value", p.RemindAt))
		}
	}
	return draft
}

func (c *Controller) draftFromBookmark(b *domain.Bookmark) domain.Draft {
	draft := domain.Draft{
		URL:                  b.URL,
		Title:                b.Title,
		Tags:                 joinTags(b.Tags),
		RepeatType:           b.RepeatType,
		SmartFollowUpEnabled: b.SmartFollowUp.Enabled,
		SmartFollowUpDays:    domain.ClampFollowUpDays(b.SmartFollowUp.DaysDelay),
	}
	if draft.RepeatType == "" {
		draft.RepeatType = domain.RepeatNone
	}
	if b.RemindAt != nil {
		draft.RemindAt = c.codec.ToLocalWallClock(*b.RemindAt)
	}
	return draft
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}
