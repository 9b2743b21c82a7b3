package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/utils/logging"
)

// Handle logs the error with a message and returns it unchanged so callers can
// propagate it. goerr values and stack traces are included when available.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// HandleHTTP logs the error and writes a JSON error response carrying a stable
// machine-checkable kind. 5xx responses are always logged with full context.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int, kind string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"kind", kind,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"kind", kind,
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(errorBody{Error: err.Error(), Kind: kind}); encodeErr != nil {
		logger.Error("failed to encode error response", "error", encodeErr.Error())
	}
}
