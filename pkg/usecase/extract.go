package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/model/config"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/extract"
	"github.com/argus-sec/argus/pkg/utils/async"
)

const (
	minContentLength    = 50
	defaultModelTimeout = 15 * time.Second

	defaultTitle   = "Untitled Report"
	defaultSummary = "No summary available."

	// noneFoundSentinel is the literal a model emits for an empty list
	noneFoundSentinel = "None Found"
)

const promptTemplate = `You are a precise cybersecurity analyst. Analyze the following threat report text and extract ONLY the following information:

Title: <Title>
Summary: <Summary>
IOCs:
- <ioc>
MITRE:
- <Txxxx>

Report Text:
"""
%s
"""`

// ReportUseCase handles report extraction and lifecycle operations
type ReportUseCase struct {
	repo      interfaces.Repository
	llm       gollem.LLMClient
	timeout   time.Duration
	index     interfaces.ReportIndex
	publisher interfaces.EventPublisher
	catalog   *config.MitreCatalog
}

func NewReportUseCase(repo interfaces.Repository, llm gollem.LLMClient, timeout time.Duration, index interfaces.ReportIndex, publisher interfaces.EventPublisher, catalog *config.MitreCatalog) *ReportUseCase {
	if timeout <= 0 {
		timeout = defaultModelTimeout
	}
	return &ReportUseCase{
		repo:      repo,
		llm:       llm,
		timeout:   timeout,
		index:     index,
		publisher: publisher,
		catalog:   catalog,
	}
}

// ExtractResult is the outcome of a successful extraction
type ExtractResult struct {
	ReportID types.ReportID
	Summary  string
}

// Extract runs the full pipeline: validate input, invoke the model, parse
// the labeled sections with regex fallback for indicators and techniques,
// and persist exactly one report. No report is stored on any failure path.
func (uc *ReportUseCase) Extract(ctx context.Context, userID types.UserID, content string) (*ExtractResult, error) {
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrUnauthorized, "extraction requires an authenticated user")
	}

	trimmed := strings.TrimSpace(content)
	if len(trimmed) < minContentLength {
		return nil, goerr.Wrap(ErrInvalidInput, "report content is too short or empty",
			goerr.V("length", len(trimmed)),
			goerr.V("min_length", minContentLength),
		)
	}

	output, err := uc.invokeModel(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	report := buildReport(userID, trimmed, output)

	created, err := uc.repo.Report().Create(ctx, report)
	if err != nil {
		return nil, goerr.Wrap(ErrPersistence, "failed to store extracted report",
			goerr.V("cause", err.Error()),
		)
	}

	uc.notify(ctx, created, model.ReportEventCreated)

	return &ExtractResult{
		ReportID: created.ID,
		Summary:  created.Summary,
	}, nil
}

func (uc *ReportUseCase) invokeModel(ctx context.Context, content string) (string, error) {
	modelCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	ssn, err := uc.llm.NewSession(modelCtx)
	if err != nil {
		return "", classifyUpstreamError(err, uc.timeout)
	}

	prompt := fmt.Sprintf(promptTemplate, content)
	resp, err := ssn.GenerateContent(modelCtx, gollem.Text(prompt))
	if err != nil {
		return "", classifyUpstreamError(err, uc.timeout)
	}

	output := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if output == "" {
		return "", goerr.Wrap(ErrEmptyModelResponse, "model produced no usable text")
	}

	return output, nil
}

func classifyUpstreamError(err error, timeout time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return goerr.Wrap(ErrUpstreamTimeout, "model did not respond in time",
			goerr.V("timeout", timeout.String()),
		)
	}
	return goerr.Wrap(ErrUpstream, "model invocation failed",
		goerr.V("cause", err.Error()),
	)
}

// buildReport assembles a report from the model output, applying defaults
// for missing title and summary and regex fallback for indicator and
// technique lists that came back empty or as the sentinel literal.
func buildReport(userID types.UserID, content, output string) *model.Report {
	sections := extract.ParseSections(output)

	title := sections.Title
	if title == "" {
		title = defaultTitle
	}
	summary := sections.Summary
	if summary == "" {
		summary = defaultSummary
	}

	iocs := extract.CleanListItems(sections.IOCs, nil)
	if needsFallback(iocs) {
		iocs = extract.FallbackIOCs(content)
	}

	mitreTags := normalizeMitreTags(extract.CleanListItems(sections.Mitre, extract.IsMitreLine))
	if needsFallback(mitreTags) {
		mitreTags = extract.ScanMitreTags(content)
	}

	return &model.Report{
		Title:     title,
		Summary:   summary,
		Content:   content,
		UserID:    userID,
		IOCs:      iocs,
		MitreTags: mitreTags,
	}
}

// needsFallback reports whether a parsed list must be replaced by a regex
// scan of the original content. The trigger is deliberately narrow: an empty
// list or the exact sentinel literal, nothing fuzzier.
func needsFallback(items []string) bool {
	if len(items) == 0 {
		return true
	}
	for _, item := range items {
		if item == noneFoundSentinel {
			return true
		}
	}
	return false
}

func normalizeMitreTags(items []string) []string {
	var tags []string
	for _, item := range items {
		tag, err := types.ParseMitreTag(item)
		if err != nil {
			continue
		}
		tags = append(tags, tag.String())
	}
	return tags
}

// notify pushes best-effort side effects off the request path. Failures are
// logged and never surface to the caller.
func (uc *ReportUseCase) notify(ctx context.Context, report *model.Report, eventType model.ReportEventType) {
	if uc.index != nil {
		indexed := report.Clone()
		async.Dispatch(ctx, func(ctx context.Context) error {
			if eventType == model.ReportEventDeleted {
				if err := uc.index.Delete(ctx, indexed.ID); err != nil {
					return goerr.Wrap(err, "failed to remove report from index", goerr.V(ReportIDKey, indexed.ID))
				}
				return nil
			}
			if err := uc.index.Index(ctx, indexed); err != nil {
				return goerr.Wrap(err, "failed to index report", goerr.V(ReportIDKey, indexed.ID))
			}
			return nil
		})
	}

	if uc.publisher != nil {
		event := model.NewReportEvent(eventType, report.ID, report.UserID)
		async.Dispatch(ctx, func(ctx context.Context) error {
			if err := uc.publisher.Publish(ctx, event); err != nil {
				return goerr.Wrap(err, "failed to publish report event", goerr.V(ReportIDKey, event.ReportID))
			}
			return nil
		})
	}
}
