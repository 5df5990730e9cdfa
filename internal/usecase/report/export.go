package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/metrics"
	"github.com/BruksfildServices01/clinic-ledger/internal/report"
)

// Archive keeps a copy of rendered reports. Optional.
type Archive interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type File struct {
	Name        string
	ContentType string
	Body        []byte
}

type ExportReport struct {
	build     *BuildReport
	renderers map[string]report.Renderer
	archive   Archive
}

func NewExportReport(
	build *BuildReport,
	renderers map[string]report.Renderer,
	archive Archive,
) *ExportReport {
	return &ExportReport{
		build:     build,
		renderers: renderers,
		archive:   archive,
	}
}

// Execute renders the report as kind. Business errors come back untouched;
// anything else is a rendering or storage failure.
func (uc *ExportReport) Execute(
	ctx context.Context,
	kind string,
	start string,
	end string,
	period string,
) (*File, error) {

	renderer, ok := uc.renderers[kind]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_report_kind")
	}

	rep, err := uc.build.Execute(ctx, start, end, period)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(rep)
	if err != nil {
		metrics.ReportsRendered.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("render %s report: %w", kind, err)
	}
	metrics.ReportsRendered.WithLabelValues(kind, "ok").Inc()

	file := &File{
		Name:        fmt.Sprintf("report_%s_%s_%s.%s", rep.Start, rep.End, rep.Period, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}

	if uc.archive != nil {
		key := fmt.Sprintf("reports/%s/%s_%s_%s.%s", kind, rep.Start, rep.End, rep.Period, renderer.Extension())
		if err := uc.archive.Put(ctx, key, file.ContentType, body); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("report archive upload failed")
		}
	}

	return file, nil
}
