package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/model"
	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/usecase"
	"github.com/argus-sec/argus/pkg/utils/errutil"
)

type reportResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	IOCs      []string `json:"iocs"`
	MitreTags []string `json:"mitreTags"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type techniqueResponse struct {
	Tag  string `json:"tag"`
	Name string `json:"name,omitempty"`
}

type reportDetailResponse struct {
	reportResponse
	MitreTechniques []techniqueResponse `json:"mitreTechniques"`
}

func toReportResponse(report *model.Report) reportResponse {
	iocs := report.IOCs
	if iocs == nil {
		iocs = []string{}
	}
	tags := report.MitreTags
	if tags == nil {
		tags = []string{}
	}

	return reportResponse{
		ID:        report.ID.String(),
		Title:     report.Title,
		Summary:   report.Summary,
		Content:   report.Content,
		IOCs:      iocs,
		MitreTags: tags,
		CreatedAt: report.CreatedAt.Format(time.RFC3339),
		UpdatedAt: report.UpdatedAt.Format(time.RFC3339),
	}
}

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		errutil.Handle(ctx, err, "failed to encode response")
	}
}

func reportIDFromRequest(r *http.Request) (types.ReportID, error) {
	id := types.ReportID(chi.URLParam(r, "id"))
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(usecase.ErrInvalidInput, "invalid report ID", goerr.V("id", id))
	}
	return id, nil
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reports, err := s.uc.Report.ListReports(ctx)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	resp := make([]reportResponse, len(reports))
	for i, report := range reports {
		resp[i] = toReportResponse(report)
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	report, err := s.uc.Report.GetReport(ctx, id)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	annotations := s.uc.Report.AnnotateMitre(report)
	techniques := make([]techniqueResponse, len(annotations))
	for i, a := range annotations {
		techniques[i] = techniqueResponse{Tag: a.Tag, Name: a.Name}
	}

	respondJSON(ctx, w, http.StatusOK, reportDetailResponse{
		reportResponse:  toReportResponse(report),
		MitreTechniques: techniques,
	})
}

type updateReportRequest struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	IOCs      []string `json:"iocs"`
	MitreTags []string `json:"mitreTags"`
}

func (s *Server) handleUpdateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	var req updateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	userID := auth.UserFromContext(ctx)
	updated, err := s.uc.Report.UpdateReport(ctx, userID, id, usecase.UpdateReportInput{
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		IOCs:      req.IOCs,
		MitreTags: req.MitreTags,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toReportResponse(updated))
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := reportIDFromRequest(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	userID := auth.UserFromContext(ctx)
	if err := s.uc.Report.DeleteReport(ctx, userID, id); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSearchReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid limit", goerr.V("limit", raw)))
			return
		}
		limit = parsed
	}

	reports, err := s.uc.Report.SearchReports(ctx, query, limit)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	resp := make([]reportResponse, len(reports))
	for i, report := range reports {
		resp[i] = toReportResponse(report)
	}

	respondJSON(ctx, w, http.StatusOK, resp)
}
