package dashboard

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/revisitly/revisitly/internal/domain"
)

// View is the in-memory dashboard state: the last successfully fetched
// bookmark list. Updates are replace-all, so whichever refresh
// completes last owns the whole slice and a stale response can never
// interleave with a newer one.
type View struct {
	mu          sync.RWMutex
	bookmarks   map[string]*domain.Bookmark // ID -> Bookmark
	lastRefresh time.Time
}

// NewView creates an empty dashboard view.
func NewView() *View {
	return &View{
		bookmarks: make(map[string]*domain.Bookmark),
	}
}

// ReplaceAll swaps in a freshly fetched list.
func (v *View) ReplaceAll(bookmarks []*domain.Bookmark) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.bookmarks = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, b := range bookmarks {
		v.bookmarks[b.ID] = b
	}
	v.lastRefresh = time.Now()
}

// Get retrieves a bookmark by ID.
func (v *View) Get(id string) (*domain.Bookmark, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	b, ok := v.bookmarks[id]
	return b, ok
}

// All returns every bookmark, newest first.
func (v *View) All() []*domain.Bookmark {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.sortedLocked()
}

// Remove drops a bookmark from the view after a successful delete.
func (v *View) Remove(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.bookmarks, id)
}

// Clear empties the view. Logout calls it so the next sign-in never
// sees the previous account's list.
func (v *View) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.bookmarks = make(map[string]*domain.Bookmark)
	v.lastRefresh = time.Time{}
}

// Count returns the number of bookmarks in the view.
func (v *View) Count() int {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return len(v.bookmarks)
}

// Tags returns the unique tags across all bookmarks, sorted.
func (v *View) Tags() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, b := range v.bookmarks {
		for _, tag := range b.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// Filter returns bookmarks matching a case-insensitive search over
// title and URL, restricted to one tag when tag is not empty or "all".
func (v *View) Filter(search, tag string) []*domain.Bookmark {
	v.mu.RLock()
	defer v.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	matchAllTags := tag == "" || tag == "all"

	out := make([]*domain.Bookmark, 0, len(v.bookmarks))
	for _, b := range v.sortedLocked() {
		if search != "" &&
			!strings.Contains(strings.ToLower(b.Title), search) &&
			!strings.Contains(strings.ToLower(b.URL), search) {
			continue
		}
		if !matchAllTags && !hasTag(b, tag) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// LastRefresh returns when the view last got a full list.
func (v *View) LastRefresh() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.lastRefresh
}

func (v *View) sortedLocked() []*domain.Bookmark {
	bookmarks := make([]*domain.Bookmark, 0, len(v.bookmarks))
	for _, b := range v.bookmarks {
		bookmarks = append(bookmarks, b)
	}
	sort.Slice(bookmarks, func(i, j int) bool {
		if bookmarks[i].CreatedAt.Equal(bookmarks[j].CreatedAt) {
			return bookmarks[i].ID < bookmarks[j].ID
		}
		return bookmarks[i].CreatedAt.After(bookmarks[j].CreatedAt)
	})
	return bookmarks
}

func hasTag(b *domain.Bookmark, tag string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
