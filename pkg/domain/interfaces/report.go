package interfaces

import (
	"context"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

// ReportRepository defines the interface for Report data access
type ReportRepository interface {
	// Create persists a new report. A missing ID is generated; CreatedAt and
	// UpdatedAt are set by the repository.
	Create(ctx context.Context, report *model.Report) (*model.Report, error)

	// Get retrieves a report by ID
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)

	// List retrieves all reports ordered by creation time, newest first
	List(ctx context.Context) ([]*model.Report, error)

	// Update replaces the stored report wholesale, including the full IOC and
	// MITRE tag sets. UpdatedAt is refreshed by the repository.
	Update(ctx context.Context, report *model.Report) (*model.Report, error)

	// Delete deletes a report by ID
	Delete(ctx context.Context, id types.ReportID) error
}
