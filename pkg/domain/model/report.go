package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/types"
)

// Report is the persisted aggregate produced by one extraction. IOCs and
// MitreTags are replaced wholesale on update, never patched entry by entry.
type Report struct {
	ID        types.ReportID
	Title     string
	Summary   string
	Content   string
	UserID    types.UserID
	IOCs      []string
	MitreTags []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the aggregate invariants before persistence
func (r *Report) Validate() error {
	if r.Title == "" {
		return goerr.New("report title is required")
	}
	if r.Content == "" {
		return goerr.New("report content is required")
	}
	if err := r.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "report owner is required")
	}
	for _, tag := range r.MitreTags {
		if err := types.MitreTag(tag).Validate(); err != nil {
			return goerr.Wrap(err, "invalid MITRE tag in report", goerr.V("reportID", r.ID))
		}
	}
	return nil
}

// Clone returns a deep copy of the report
func (r *Report) Clone() *Report {
	copied := *r
	if r.IOCs != nil {
		copied.IOCs = make([]string, len(r.IOCs))
		copy(copied.IOCs, r.IOCs)
	}
	if r.MitreTags != nil {
		copied.MitreTags = make([]string, len(r.MitreTags))
		copy(copied.MitreTags, r.MitreTags)
	}
	return &copied
}
