package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/model/auth"
	"github.com/argus-sec/argus/pkg/usecase"
)

type parseRequest struct {
	Content string `json:"content"`
}

type parseResponse struct {
	ReportID string `json:"reportId"`
	Summary  string `json:"summary"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, goerr.Wrap(usecase.ErrInvalidInput, "invalid request body"))
		return
	}

	userID := auth.UserFromContext(ctx)
	result, err := s.uc.Report.Extract(ctx, userID, req.Content)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, parseResponse{
		ReportID: result.ReportID.String(),
		Summary:  result.Summary,
	})
}
