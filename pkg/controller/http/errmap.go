package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/argus-sec/argus/pkg/usecase"
	"github.com/argus-sec/argus/pkg/utils/errutil"
)

// statusAndKind maps use case sentinel errors to an HTTP status and a
// stable machine-checkable kind for the JSON error body.
func statusAndKind(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, usecase.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, usecase.ErrAccessDenied):
		return http.StatusForbidden, "access_denied"
	case errors.Is(err, usecase.ErrReportNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, usecase.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "upstream_timeout"
	case errors.Is(err, usecase.ErrEmptyModelResponse):
		return http.StatusBadGateway, "empty_model_response"
	case errors.Is(err, usecase.ErrUpstream):
		return http.StatusBadGateway, "upstream_error"
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError, "persistence"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	status, kind := statusAndKind(err)
	errutil.HandleHTTP(ctx, w, err, status, kind)
}
