package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var csvHeader = []string{"id", "title", "summary", "iocs", "mitreTags", "createdAt"}

// ExportCSV writes all reports as CSV, newest first. Indicator and technique
// lists are flattened into comma-separated cells.
func (uc *ReportUseCase) ExportCSV(ctx context.Context, w io.Writer) error {
	reports, err := uc.repo.Report().List(ctx)
	if err != nil {
		return goerr.Wrap(ErrPersistence, "failed to list reports for export", goerr.V("cause", err.Error()))
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	for _, report := range reports {
		record := []string{
			report.ID.String(),
			report.Title,
			report.Summary,
			strings.Join(report.IOCs, ", "),
			strings.Join(report.MitreTags, ", "),
			report.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return goerr.Wrap(err, "failed to write CSV record", goerr.V(ReportIDKey, report.ID))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV output")
	}

	return nil
}
