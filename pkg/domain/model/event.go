package model

import (
	"time"

	"github.com/argus-sec/argus/pkg/domain/types"
)

// ReportEventType classifies report lifecycle events
type ReportEventType string

const (
	ReportEventCreated ReportEventType = "report.created"
	ReportEventUpdated ReportEventType = "report.updated"
	ReportEventDeleted ReportEventType = "report.deleted"
)

// ReportEvent is a report lifecycle notification
type ReportEvent struct {
	Type       ReportEventType `json:"type"`
	ReportID   types.ReportID  `json:"report_id"`
	UserID     types.UserID    `json:"user_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewReportEvent builds an event stamped with the current time
func NewReportEvent(eventType ReportEventType, reportID types.ReportID, userID types.UserID) *ReportEvent {
	return &ReportEvent{
		Type:       eventType,
		ReportID:   reportID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}
