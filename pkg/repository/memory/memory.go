package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is an in-memory repository for development and tests
type Memory struct {
	report *reportRepository
	tokens *tokenStore
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		report: newReportRepository(),
		tokens: newTokenStore(),
	}
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Close() error {
	return nil
}
