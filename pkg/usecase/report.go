package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

// ListReports returns all reports, newest first
func (uc *ReportUseCase) ListReports(ctx context.Context) ([]*model.Report, error) {
	reports, err := uc.repo.Report().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrPersistence, "failed to list reports", goerr.V("cause", err.Error()))
	}
	return reports, nil
}

// GetReport returns a single report by ID
func (uc *ReportUseCase) GetReport(ctx context.Context, id types.ReportID) (*model.Report, error) {
	report, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, id))
	}
	return report, nil
}

// TechniqueAnnotation pairs a report's MITRE tag with its catalog name,
// empty when the catalog does not know the technique.
type TechniqueAnnotation struct {
	Tag  string
	Name string
}

// AnnotateMitre resolves a report's MITRE tags against the technique
// catalog. Without a catalog all names are empty.
func (uc *ReportUseCase) AnnotateMitre(report *model.Report) []TechniqueAnnotation {
	annotations := make([]TechniqueAnnotation, 0, len(report.MitreTags))
	for _, tag := range report.MitreTags {
		annotation := TechniqueAnnotation{Tag: tag}
		if uc.catalog != nil {
			if name, ok := uc.catalog.Describe(types.MitreTag(tag)); ok {
				annotation.Name = name
			}
		}
		annotations = append(annotations, annotation)
	}
	return annotations
}

// UpdateReportInput is a wholesale replacement of a report's mutable fields
type UpdateReportInput struct {
	Title     string
	Summary   string
	Content   string
	IOCs      []string
	MitreTags []string
}

// UpdateReport replaces the report's fields including the full IOC and MITRE
// tag sets. Only the owning user may update a report.
func (uc *ReportUseCase) UpdateReport(ctx context.Context, userID types.UserID, id types.ReportID, input UpdateReportInput) (*model.Report, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "report update requires an authenticated user")
	}

	existing, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, id))
	}

	if existing.UserID != userID {
		return nil, goerr.Wrap(ErrAccessDenied, "report belongs to another user",
			goerr.V(ReportIDKey, id),
			goerr.V(UserIDKey, userID),
		)
	}

	modified := existing.Clone()
	modified.Title = input.Title
	modified.Summary = input.Summary
	modified.Content = input.Content
	modified.IOCs = input.IOCs
	modified.MitreTags = normalizeMitreTags(input.MitreTags)

	if err := modified.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid report update",
			goerr.V(ReportIDKey, id),
			goerr.V("cause", err.Error()),
		)
	}

	updated, err := uc.repo.Report().Update(ctx, modified)
	if err != nil {
		return nil, goerr.Wrap(ErrPersistence, "failed to update report",
			goerr.V(ReportIDKey, id),
			goerr.V("cause", err.Error()),
		)
	}

	uc.notify(ctx, updated, model.ReportEventUpdated)

	return updated, nil
}

// DeleteReport removes a report. Only the owning user may delete it.
func (uc *ReportUseCase) DeleteReport(ctx context.Context, userID types.UserID, id types.ReportID) error {
	if err := userID.Validate(); err != nil {
		return goerr.Wrap(ErrUnauthorized, "report deletion requires an authenticated user")
	}

	existing, err := uc.repo.Report().Get(ctx, id)
	if err != nil {
		return goerr.Wrap(ErrReportNotFound, "report not found", goerr.V(ReportIDKey, id))
	}

	if existing.UserID != userID {
		return goerr.Wrap(ErrAccessDenied, "report belongs to another user",
			goerr.V(ReportIDKey, id),
			goerr.V(UserIDKey, userID),
		)
	}

	if err := uc.repo.Report().Delete(ctx, id); err != nil {
		return goerr.Wrap(ErrPersistence, "failed to delete report",
			goerr.V(ReportIDKey, id),
			goerr.V("cause", err.Error()),
		)
	}

	uc.notify(ctx, existing, model.ReportEventDeleted)

	return nil
}

// SearchReports queries the full-text index and resolves hits to reports.
// Reports deleted since indexing are skipped.
func (uc *ReportUseCase) SearchReports(ctx context.Context, query string, limit int) ([]*model.Report, error) {
	if uc.index == nil {
		return nil, goerr.Wrap(ErrInvalidInput, "search is not enabled")
	}
	if query == "" {
		return nil, goerr.Wrap(ErrInvalidInput, "search query is required")
	}

	ids, err := uc.index.Search(ctx, query, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "search query failed", goerr.V("query", query))
	}

	// Resolve hits concurrently, keeping the index's relevance order.
	resolved := make([]*model.Report, len(ids))
	grp, grpCtx := errgroup.WithContext(ctx)
	for i, id := range ids {
		grp.Go(func() error {
			report, err := uc.repo.Report().Get(grpCtx, id)
			if err != nil {
				// The report may have been deleted since indexing
				return nil
			}
			resolved[i] = report
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to resolve search hits", goerr.V("query", query))
	}

	reports := make([]*model.Report, 0, len(ids))
	for _, report := range resolved {
		if report != nil {
			reports = append(reports, report)
		}
	}

	return reports, nil
}
