package report

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yanqian/healthdash/internal/domain/health"
	"github.com/yanqian/healthdash/internal/domain/notify"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// Source yields the last generated report.
type Source interface {
	LastReport() (health.MonthlyReport, bool)
}

// Sink keeps a copy of each exported artifact and returns where it went.
type Sink interface {
	Save(ctx context.Context, artifact Artifact) (string, error)
}

// Exporter renders artifacts from the last report without touching the backend.
type Exporter struct {
	source   Source
	sink     Sink
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewExporter wires the export pipeline. sink may be nil.
func NewExporter(source Source, sink Sink, notifier notify.Notifier, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		source:   source,
		sink:     sink,
		notifier: notifier,
		logger:   logger.With("component", "report.exporter"),
	}
}

// Export renders the last report in format.
func (e *Exporter) Export(ctx context.Context, format Format) (Artifact, error) {
	r, ok := e.source.LastReport()
	if !ok {
		return Artifact{}, e.fail(apperrors.Wrap(apperrors.CodeNoReport, "no report generated", nil))
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatPDF:
		data, err = ToDocument(r)
	case FormatCSV:
		data, err = ToTable(r)
	default:
		return Artifact{}, e.fail(apperrors.Invalid("unsupported export format " + string(format)))
	}
	if err != nil {
		return Artifact{}, e.fail(apperrors.Wrap(apperrors.CodeExportFailed, "failed to render report", err))
	}

	artifact := Artifact{
		Name:        FileName(r, string(format)),
		Format:      format,
		ContentType: format.ContentType(),
		Data:        data,
	}
	if e.sink != nil {
		location, err := e.sink.Save(ctx, artifact)
		if err != nil {
			return Artifact{}, e.fail(apperrors.Wrap(apperrors.CodeExportFailed, "failed to store report", err))
		}
		e.logger.Info("report stored", "name", artifact.Name, "location", location, "bytes", len(data))
	}
	e.notifier.Notify(notify.LevelSuccess, strings.ToUpper(string(format))+" downloaded successfully!")
	return artifact, nil
}

func (e *Exporter) fail(err error) error {
	e.logger.Warn("report export failed", "error", err)
	e.notifier.Notify(notify.LevelError, apperrors.Message(err))
	return err
}
