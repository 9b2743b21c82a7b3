package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ReportID is a UUID-based identifier for a Report aggregate
type ReportID string

// NewReportID generates a new UUID v4 ReportID
func NewReportID() ReportID {
	return ReportID(uuid.New().String())
}

// Validate checks if the ReportID is a well-formed UUID
func (r ReportID) Validate() error {
	if r == "" {
		return goerr.New("report ID cannot be empty")
	}
	if _, err := uuid.Parse(string(r)); err != nil {
		return goerr.Wrap(err, "report ID must be a UUID", goerr.V("id", r))
	}
	return nil
}

// String returns the string representation of ReportID
func (r ReportID) String() string {
	return string(r)
}

// UserID is an opaque identifier issued by the authentication provider
type UserID string

// Validate checks if the UserID is present
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}
