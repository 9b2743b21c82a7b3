package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/repository/firestore"
	"github.com/argus-sec/argus/pkg/repository/memory"
)

func newTestReport(title string) *model.Report {
	return &model.Report{
		Title:     title,
		Summary:   "APT28 phishing campaign against energy sector",
		Content:   "Full report body with enough detail to matter.",
		UserID:    types.UserID("user-1"),
		IOCs:      []string{"45.77.21.99", "evil-domain.com"},
		MitreTags: []string{"T1059.001", "T1566"},
	}
}

func runReportRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport("Create assigns ID")
		created, err := repo.Report().Create(ctx, report)
		gt.NoError(t, err).Required()

		gt.NoError(t, created.ID.Validate())
		gt.Value(t, created.Title).Equal(report.Title)
		gt.Value(t, created.Summary).Equal(report.Summary)
		gt.Value(t, created.Content).Equal(report.Content)
		gt.Value(t, created.UserID).Equal(report.UserID)
		gt.Array(t, created.IOCs).Equal(report.IOCs)
		gt.Array(t, created.MitreTags).Equal(report.MitreTags)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()
	})

	t.Run("Create rejects report without owner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport("No owner")
		report.UserID = ""
		_, err := repo.Report().Create(ctx, report)
		gt.Error(t, err)
	})

	t.Run("Get returns stored report", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Report().Create(ctx, newTestReport("Get roundtrip"))
		gt.NoError(t, err).Required()

		got, err := repo.Report().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(created.ID)
		gt.Value(t, got.Title).Equal(created.Title)
		gt.Array(t, got.IOCs).Equal(created.IOCs)
		gt.Array(t, got.MitreTags).Equal(created.MitreTags)
	})

	t.Run("Get unknown ID returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Report().Get(ctx, types.NewReportID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("List returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Report().Create(ctx, newTestReport("older report"))
		gt.NoError(t, err).Required()
		time.Sleep(10 * time.Millisecond)
		second, err := repo.Report().Create(ctx, newTestReport("newer report"))
		gt.NoError(t, err).Required()

		reports, err := repo.Report().List(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(reports)).GreaterOrEqual(2)

		var firstIdx, secondIdx int = -1, -1
		for i, r := range reports {
			switch r.ID {
			case first.ID:
				firstIdx = i
			case second.ID:
				secondIdx = i
			}
		}
		gt.Number(t, firstIdx).GreaterOrEqual(0)
		gt.Number(t, secondIdx).GreaterOrEqual(0)
		gt.Bool(t, secondIdx < firstIdx).True()
	})

	t.Run("Update replaces child sets wholesale", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Report().Create(ctx, newTestReport("Update wholesale"))
		gt.NoError(t, err).Required()

		modified := created.Clone()
		modified.Title = "Renamed report"
		modified.IOCs = []string{"10.0.0.1"}
		modified.MitreTags = nil

		updated, err := repo.Report().Update(ctx, modified)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal("Renamed report")
		gt.Array(t, updated.IOCs).Equal([]string{"10.0.0.1"})
		gt.Number(t, len(updated.MitreTags)).Equal(0)
		gt.Value(t, updated.CreatedAt.Unix()).Equal(created.CreatedAt.Unix())

		got, err := repo.Report().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, got.IOCs).Equal([]string{"10.0.0.1"})
		gt.Number(t, len(got.MitreTags)).Equal(0)
	})

	t.Run("Update unknown ID returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		report := newTestReport("Ghost")
		report.ID = types.NewReportID()
		_, err := repo.Report().Update(ctx, report)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})

	t.Run("Delete removes report", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Report().Create(ctx, newTestReport("Delete me"))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Report().Delete(ctx, created.ID)).Required()

		_, err = repo.Report().Get(ctx, created.ID)
		gt.Error(t, err)
	})

	t.Run("Delete unknown ID returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Report().Delete(ctx, types.NewReportID())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})
}

func TestMemoryReportRepository(t *testing.T) {
	runReportRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreReportRepository(t *testing.T) {
	runReportRepositoryTest(t, newFirestoreRepo)
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}

	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})

	return repo
}
