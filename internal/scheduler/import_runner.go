package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/form"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/sources/importfile"
)

// ImportRunner bulk-creates bookmarks from a local yaml file. Import
// is a mutating operation, so it only runs on explicit trigger and
// never on a timer.
type ImportRunner struct {
	loader     *importfile.Loader
	mapper     *importfile.Mapper
	controller *form.Controller
	logger     logger.Logger
	stopCh     chan struct{}
	trigger    chan struct{}
}

// NewImportRunner creates a new import runner
func NewImportRunner(
	importFile string,
	controller *form.Controller,
	log logger.Logger,
	trigger chan struct{},
) *ImportRunner {
	return &ImportRunner{
		loader:     importfile.NewLoader(importFile),
		mapper:     importfile.NewMapper(),
		controller: controller,
		logger:     log,
		stopCh:     make(chan struct{}),
		trigger:    trigger,
	}
}

// Start begins waiting for import triggers.
func (ir *ImportRunner) Start(ctx context.Context) error {
	go func() {
		for {
			select {
			case <-ir.trigger:
				ir.logger.Info("manual import triggered")
				if err := ir.Run(ctx); err != nil {
					ir.logger.Error("import failed", logger.Error(err))
				}
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the runner
func (ir *ImportRunner) Stop() {
	close(ir.stopCh)
}

// Run loads the file and creates each draft through the controller's
// import path, which shares validation with typed drafts but leaves
// the interactive form alone. Individually invalid entries are
// skipped, not fatal.
func (ir *ImportRunner) Run(ctx context.Context) error {
	file, err := ir.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load import file: %w", err)
	}

	drafts, err := ir.mapper.MapDrafts(file)
	if err != nil {
		return fmt.Errorf("failed to map import entries: %w", err)
	}

	ir.logger.Info("importing bookmarks", logger.Int("count", len(drafts)))

	created := 0
	skipped := 0
	for _, draft := range drafts {
		if err := ir.controller.SubmitImported(ctx, draft); err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				ir.logger.Warn("skipping invalid import entry",
					logger.String("url", draft.URL),
					logger.Error(err))
				skipped++
				continue
			}
			return fmt.Errorf("import %s: %w", draft.URL, err)
		}
		created++
	}

	ir.logger.Info("import finished",
		logger.Int("created", created),
		logger.Int("skipped", skipped))

	return nil
}
