package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
)

// Batch is the transformed output of one ranking page.
type Batch struct {
	Stamp       domain.RunStamp
	Fragments   int
	Records     domain.RecordSet
	Diagnostics []domain.Diagnostic
}

// RecordTransformer implements Transformer: it stamps the run, extracts
// records, and resolves boat ids.
type RecordTransformer struct {
	ids     *domain.NameIDTable
	display *domain.NameIDTable
	logger  *slog.Logger
}

// NewTransformer creates a RecordTransformer. ids resolves scraped names;
// display must reverse-resolve every id before any file is written.
func NewTransformer(ids, display *domain.NameIDTable, logger *slog.Logger) *RecordTransformer {
	return &RecordTransformer{
		ids:     ids,
		display: display,
		logger:  logger,
	}
}

func (t *RecordTransformer) Transform(ctx context.Context, page domain.Page) (Batch, error) {
	stamp, err := domain.ParseRunStamp(page.ReportTimeText)
	if err != nil {
		return Batch{}, fmt.Errorf("report time: %w", err)
	}

	set, diags := domain.Extract(page.Fragments, stamp)
	for _, d := range diags {
		t.logger.WarnContext(ctx, "fragment dropped",
			"index", d.Index,
			"reason", d.Reason,
			"error", d.Err,
		)
	}

	set, err = domain.Resolve(set, t.ids)
	if err != nil {
		return Batch{}, err
	}
	if t.display != nil {
		if err := domain.CheckReverse(set, t.display); err != nil {
			return Batch{}, err
		}
	}

	return Batch{
		Stamp:       stamp,
		Fragments:   len(page.Fragments),
		Records:     set,
		Diagnostics: diags,
	}, nil
}
