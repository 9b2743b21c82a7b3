package interfaces

import (
	"context"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

// ReportIndex is a full-text index over reports
type ReportIndex interface {
	// Index inserts or replaces the report in the index
	Index(ctx context.Context, report *model.Report) error

	// Delete removes the report from the index
	Delete(ctx context.Context, id types.ReportID) error

	// Search returns IDs of reports matching the query, best match first
	Search(ctx context.Context, query string, limit int) ([]types.ReportID, error)

	Close() error
}
