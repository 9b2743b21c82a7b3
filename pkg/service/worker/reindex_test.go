package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/memory"
	"github.com/argus-sec/argus/pkg/service/search"
	"github.com/argus-sec/argus/pkg/service/worker"
)

func TestReindexWorker(t *testing.T) {
	t.Run("initial cycle indexes existing reports", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		idx, err := search.NewMemOnly()
		gt.NoError(t, err).Required()
		defer idx.Close()

		created, err := repo.Report().Create(ctx, &model.Report{
			Title:   "Stored before worker start",
			Summary: "A ransomware wave hit retailers.",
			Content: "A ransomware wave hit retailers.",
			UserID:  types.UserID("analyst-1"),
		})
		gt.NoError(t, err).Required()

		w := worker.NewReindexWorker(repo, idx, time.Hour)
		gt.NoError(t, w.Start(ctx)).Required()
		defer w.Stop()

		var ids []types.ReportID
		for i := 0; i < 50; i++ {
			ids, err = idx.Search(ctx, "ransomware", 10)
			gt.NoError(t, err).Required()
			if len(ids) > 0 {
				break
			}
			time.Sleep(20 * time.Millisecond)
		}
		gt.Array(t, ids).Has(created.ID)
	})

	t.Run("Stop waits for the loop to finish", func(t *testing.T) {
		ctx := context.Background()
		repo := memory.New()
		idx, err := search.NewMemOnly()
		gt.NoError(t, err).Required()
		defer idx.Close()

		w := worker.NewReindexWorker(repo, idx, time.Hour)
		gt.NoError(t, w.Start(ctx)).Required()

		done := make(chan struct{})
		go func() {
			w.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("worker did not stop in time")
		}
	})
}
