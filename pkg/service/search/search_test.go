package search_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/service/search"
)

func newReport(title, summary string) *model.Report {
	return &model.Report{
		ID:        types.NewReportID(),
		Title:     title,
		Summary:   summary,
		Content:   summary,
		UserID:    types.UserID("analyst-1"),
		IOCs:      []string{"198.51.100.7"},
		MitreTags: []string{"T1566"},
	}
}

func TestIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("indexed report is found by content words", func(t *testing.T) {
		idx, err := search.NewMemOnly()
		gt.NoError(t, err).Required()
		defer idx.Close()

		report := newReport("Emotet Resurgence", "Emotet loaders returned via phishing waves.")
		gt.NoError(t, idx.Index(ctx, report)).Required()

		ids, err := idx.Search(ctx, "phishing", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Has(report.ID)
	})

	t.Run("deleted report disappears from results", func(t *testing.T) {
		idx, err := search.NewMemOnly()
		gt.NoError(t, err).Required()
		defer idx.Close()

		report := newReport("Removable", "Campaign against manufacturing targets.")
		gt.NoError(t, idx.Index(ctx, report)).Required()
		gt.NoError(t, idx.Delete(ctx, report.ID)).Required()

		ids, err := idx.Search(ctx, "manufacturing", 10)
		gt.NoError(t, err).Required()
		gt.Number(t, len(ids)).Equal(0)
	})

	t.Run("limit caps hit count", func(t *testing.T) {
		idx, err := search.NewMemOnly()
		gt.NoError(t, err).Required()
		defer idx.Close()

		for i := 0; i < 5; i++ {
			gt.NoError(t, idx.Index(ctx, newReport("Wave", "ransomware wave hit retailers"))).Required()
		}

		ids, err := idx.Search(ctx, "ransomware", 2)
		gt.NoError(t, err).Required()
		gt.Number(t, len(ids)).Equal(2)
	})
}
