package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

type reportDocument struct {
	ID        string    `firestore:"id"`
	Title     string    `firestore:"title"`
	Summary   string    `firestore:"summary"`
	Content   string    `firestore:"content"`
	UserID    string    `firestore:"user_id"`
	IOCs      []string  `firestore:"iocs"`
	MitreTags []string  `firestore:"mitre_tags"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func reportToDocument(report *model.Report) *reportDocument {
	return &reportDocument{
		ID:        string(report.ID),
		Title:     report.Title,
		Summary:   report.Summary,
		Content:   report.Content,
		UserID:    string(report.UserID),
		IOCs:      report.IOCs,
		MitreTags: report.MitreTags,
		CreatedAt: report.CreatedAt,
		UpdatedAt: report.UpdatedAt,
	}
}

func reportToModel(doc *reportDocument) *model.Report {
	return &model.Report{
		ID:        types.ReportID(doc.ID),
		Title:     doc.Title,
		Summary:   doc.Summary,
		Content:   doc.Content,
		UserID:    types.UserID(doc.UserID),
		IOCs:      doc.IOCs,
		MitreTags: doc.MitreTags,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{
		client: client,
	}
}

func (r *reportRepository) reportsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_reports"
	}
	return "reports"
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) (*model.Report, error) {
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

	doc := reportToDocument(created)
	docRef := r.client.Collection(r.reportsCollection()).Doc(string(created.ID))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create report", goerr.V("id", created.ID))
	}

	return reportToModel(doc), nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	docRef := r.client.Collection(r.reportsCollection()).Doc(string(id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	var repDoc reportDocument
	if err := doc.DataTo(&repDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}

	return reportToModel(&repDoc), nil
}

func (r *reportRepository) List(ctx context.Context) ([]*model.Report, error) {
	iter := r.client.Collection(r.reportsCollection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var reports []*model.Report
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports")
		}

		var repDoc reportDocument
		if err := doc.DataTo(&repDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report")
		}

		reports = append(reports, reportToModel(&repDoc))
	}

	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) (*model.Report, error) {
	docRef := r.client.Collection(r.reportsCollection()).Doc(string(report.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", report.ID))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", report.ID))
	}

	var existing reportDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", report.ID))
	}

	updated := report.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := updated.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid report")
	}

	updatedDoc := reportToDocument(updated)
	if _, err := docRef.Set(ctx, updatedDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to update report", goerr.V("id", report.ID))
	}

	return reportToModel(updatedDoc), nil
}

func (r *reportRepository) Delete(ctx context.Context, id types.ReportID) error {
	docRef := r.client.Collection(r.reportsCollection()).Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete report", goerr.V("id", id))
	}

	return nil
}
