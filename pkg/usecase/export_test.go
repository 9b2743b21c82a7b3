package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/memory"
	"github.com/argus-sec/argus/pkg/usecase"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("exports header and flattened records", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, &mockLLMClient{})
		seeded := seedReport(t, repo, types.UserID("owner-1"))

		var buf bytes.Buffer
		gt.NoError(t, uc.Report.ExportCSV(ctx, &buf)).Required()

		records, err := csv.NewReader(&buf).ReadAll()
		gt.NoError(t, err).Required()
		gt.Number(t, len(records)).Equal(2)
		gt.Array(t, records[0]).Equal([]string{"id", "title", "summary", "iocs", "mitreTags", "createdAt"})
		gt.Value(t, records[1][0]).Equal(seeded.ID.String())
		gt.Value(t, records[1][1]).Equal("Seeded Report")
		gt.Value(t, records[1][3]).Equal("198.51.100.7")
		gt.Value(t, records[1][4]).Equal("T1566")
	})

	t.Run("empty store yields header only", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo, &mockLLMClient{})

		var buf bytes.Buffer
		gt.NoError(t, uc.Report.ExportCSV(ctx, &buf)).Required()

		records, err := csv.NewReader(&buf).ReadAll()
		gt.NoError(t, err).Required()
		gt.Number(t, len(records)).Equal(1)
	})
}
