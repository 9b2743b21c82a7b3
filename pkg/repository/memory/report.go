package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.ReportID]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.ReportID]*model.Report),
	}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := report.Clone()
	if created.ID == "" {
		created.ID = types.NewReportID()
	}
	now := time.Now().UTC()
	created.CreatedAt = now
	created.UpdatedAt = now

	if err := created.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report")
	}

	r.reports[created.ID] = created
	return created.Clone(), nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	return report.Clone(), nil
}

func (r *reportRepository) List(ctx context.Context) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Report, 0, len(r.reports))
	for _, report := range r.reports {
		result = append(result, report.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) (*model.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.reports[report.ID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", report.ID))
	}

	updated := report.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report")
	}

	r.reports[updated.ID] = updated
	return updated.Clone(), nil
}

func (r *reportRepository) Delete(ctx context.Context, id types.ReportID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	delete(r.reports, id)
	return nil
}
