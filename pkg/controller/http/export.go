package http

import (
	"bytes"
	"net/http"

	"github.com/argus-sec/argus/pkg/utils/safe"
)

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Buffer the document so a mid-export failure still yields a JSON error
	var buf bytes.Buffer
	if err := s.uc.Report.ExportCSV(ctx, &buf); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="threat-reports.csv"`)
	safe.Write(ctx, w, buf.Bytes())
}
