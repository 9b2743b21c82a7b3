package search

import (
	"context"
	"errors"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/types"
)

const defaultLimit = 20

// reportDocument is the shape stored in the bleve index
type reportDocument struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	IOCs      []string `json:"iocs"`
	MitreTags []string `json:"mitre_tags"`
}

// Index is a bleve-backed full-text index over reports
type Index struct {
	index bleve.Index
}

var _ interfaces.ReportIndex = &Index{}

func newMapping() *mapping.IndexMappingImpl {
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	textFieldMapping := bleve.NewTextFieldMapping()

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("summary", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("iocs", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("mitre_tags", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// New opens or creates a disk-backed index at the given path
func New(path string) (*Index, error) {
	index, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) || errors.Is(err, os.ErrNotExist) {
		index, err = bleve.New(path, newMapping())
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open search index", goerr.V("path", path))
	}

	return &Index{index: index}, nil
}

// NewMemOnly creates an in-memory index for development and tests
func NewMemOnly() (*Index, error) {
	index, err := bleve.NewMemOnly(newMapping())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create in-memory search index")
	}

	return &Index{index: index}, nil
}

func (x *Index) Index(ctx context.Context, report *model.Report) error {
	doc := reportDocument{
		Title:     report.Title,
		Summary:   report.Summary,
		Content:   report.Content,
		IOCs:      report.IOCs,
		MitreTags: report.MitreTags,
	}

	if err := x.index.Index(report.ID.String(), doc); err != nil {
		return goerr.Wrap(err, "failed to index report", goerr.V("report_id", report.ID))
	}
	return nil
}

func (x *Index) Delete(ctx context.Context, id types.ReportID) error {
	if err := x.index.Delete(id.String()); err != nil {
		return goerr.Wrap(err, "failed to delete report from index", goerr.V("report_id", id))
	}
	return nil
}

func (x *Index) Search(ctx context.Context, query string, limit int) ([]types.ReportID, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit

	result, err := x.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, goerr.Wrap(err, "search request failed", goerr.V("query", query))
	}

	ids := make([]types.ReportID, 0, len(result.Hits))
	for _, hit := range result.Hits {
		ids = append(ids, types.ReportID(hit.ID))
	}

	return ids, nil
}

func (x *Index) Close() error {
	return x.index.Close()
}
