package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/race-positions-etl/internal/domain"
	"github.com/couchcryptid/race-positions-etl/internal/observability"
)

// Source returns the raw markup of the ranking page.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// PageParser locates the report time and competitor fragments in markup.
type PageParser interface {
	Parse(markup string) (domain.Page, error)
}

// Transformer converts a parsed page into a resolved record batch.
type Transformer interface {
	Transform(ctx context.Context, page domain.Page) (Batch, error)
}

// Exporter writes a record set to one output file and returns its path.
type Exporter interface {
	Name() string
	Export(ctx context.Context, set domain.RecordSet, stamp domain.RunStamp) (string, error)
}

// Report summarises one run.
type Report struct {
	RunID       string
	Stamp       domain.RunStamp
	Fragments   int
	Records     int
	Diagnostics []domain.Diagnostic
	Files       []string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Pipeline orchestrates a single fetch-extract-export snapshot.
type Pipeline struct {
	source      Source
	parser      PageParser
	transformer Transformer
	exporters   []Exporter
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// New creates a Pipeline. Exporters run in the given order.
func New(s Source, p PageParser, t Transformer, exporters []Exporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:      s,
		parser:      p,
		transformer: t,
		exporters:   exporters,
		logger:      logger,
		metrics:     metrics,
	}
}

// Run performs one snapshot. Any returned error is fatal for the run;
// dropped fragments are reported, not returned.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString(), StartedAt: domain.Now()}
	logger := p.logger.With("run_id", report.RunID)
	logger.InfoContext(ctx, "run started")

	markup, err := p.source.Fetch(ctx)
	if err != nil {
		return p.fail(ctx, logger, report, "fetch", err)
	}

	page, err := p.parser.Parse(markup)
	if err != nil {
		return p.fail(ctx, logger, report, "parse", err)
	}

	batch, err := p.transformer.Transform(ctx, page)
	if err != nil {
		return p.fail(ctx, logger, report, transformStage(err), err)
	}
	report.Stamp = batch.Stamp
	report.Fragments = batch.Fragments
	report.Records = len(batch.Records)
	report.Diagnostics = batch.Diagnostics

	p.metrics.FragmentsSeen.Add(float64(batch.Fragments))
	p.metrics.RecordsExtracted.Add(float64(len(batch.Records)))
	for _, d := range batch.Diagnostics {
		p.metrics.RecordsDropped.WithLabelValues(d.Reason).Inc()
	}

	for _, e := range p.exporters {
		path, err := e.Export(ctx, batch.Records, batch.Stamp)
		if err != nil {
			return p.fail(ctx, logger, report, "export_"+e.Name(), err)
		}
		p.metrics.FilesWritten.WithLabelValues(e.Name()).Inc()
		report.Files = append(report.Files, path)
		logger.InfoContext(ctx, "file written", "exporter", e.Name(), "path", path, "records", len(batch.Records))
	}

	report.FinishedAt = domain.Now()
	p.metrics.RunDuration.Observe(report.FinishedAt.Sub(report.StartedAt).Seconds())
	p.metrics.LastSuccessSeconds.Set(float64(report.FinishedAt.Unix()))
	p.metrics.LastRecordCount.Set(float64(report.Records))

	logger.InfoContext(ctx, "run finished",
		"report_time", batch.Stamp.Canonical(),
		"fragments", report.Fragments,
		"records", report.Records,
		"dropped", len(report.Diagnostics),
	)
	return report, nil
}

func (p *Pipeline) fail(ctx context.Context, logger *slog.Logger, report Report, stage string, err error) (Report, error) {
	report.FinishedAt = domain.Now()
	p.metrics.RunFailures.WithLabelValues(stage).Inc()
	logger.ErrorContext(ctx, "run failed", "stage", stage, "error", err)
	return report, fmt.Errorf("%s: %w", stage, err)
}

// transformStage labels a transform failure for metrics.
func transformStage(err error) string {
	var fe *domain.FormatError
	if errors.As(err, &fe) {
		return "report_time"
	}
	var le *domain.LookupError
	if errors.As(err, &le) {
		return "identity"
	}
	return "transform"
}
