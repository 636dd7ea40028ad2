package importfile

import (
	"fmt"
	"strings"

	"github.com/revisitly/revisitly/internal/domain"
)

// Mapper converts import file entries to form drafts. Drafts go
// through the same validation as interactive submissions, so the
// mapper only shapes data and skips entries that cannot become drafts
// at all.
type Mapper struct{}

// NewMapper creates a new import mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapDrafts converts the file to a draft per entry. Entries without a
// URL are dropped; everything else is left for draft validation.
func (m *Mapper) MapDrafts(file *File) ([]domain.Draft, error) {
	drafts := make([]domain.Draft, 0, len(file.Bookmarks))

	for _, entry := range file.Bookmarks {
		if strings.TrimSpace(entry.URL) == "" {
			continue
		}
		drafts = append(drafts, domain.Draft{
			URL:               strings.TrimSpace(entry.URL),
			Title:             strings.TrimSpace(entry.Title),
			Tags:              strings.Join(entry.Tags, ","),
			RemindAt:          strings.TrimSpace(entry.RemindAt),
			RepeatType:        domain.ParseRepeatType(entry.Repeat),
			SmartFollowUpDays: domain.DefaultFollowUpDays,
		})
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in import file")
	}

	return drafts, nil
}
