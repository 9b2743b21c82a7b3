package usecase

import (
	"time"

	"github.com/m-mizutani/gollem"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/domain/model/config"
)

type UseCases struct {
	repo      interfaces.Repository
	llm       gollem.LLMClient
	index     interfaces.ReportIndex
	publisher interfaces.EventPublisher
	catalog   *config.MitreCatalog
	timeout   time.Duration

	Report *ReportUseCase
	Auth   AuthUseCaseInterface
}

type Option func(*UseCases)

// WithAuth sets the authentication use case
func WithAuth(auth AuthUseCaseInterface) Option {
	return func(uc *UseCases) {
		uc.Auth = auth
	}
}

// WithIndex enables full-text indexing of persisted reports
func WithIndex(index interfaces.ReportIndex) Option {
	return func(uc *UseCases) {
		uc.index = index
	}
}

// WithPublisher enables report lifecycle event publishing
func WithPublisher(publisher interfaces.EventPublisher) Option {
	return func(uc *UseCases) {
		uc.publisher = publisher
	}
}

// WithMitreCatalog sets the technique catalog used to annotate reports
func WithMitreCatalog(catalog *config.MitreCatalog) Option {
	return func(uc *UseCases) {
		uc.catalog = catalog
	}
}

// WithModelTimeout overrides the model invocation deadline
func WithModelTimeout(timeout time.Duration) Option {
	return func(uc *UseCases) {
		uc.timeout = timeout
	}
}

func New(repo interfaces.Repository, llm gollem.LLMClient, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		llm:     llm,
		timeout: defaultModelTimeout,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Report = NewReportUseCase(repo, llm, uc.timeout, uc.index, uc.publisher, uc.catalog)

	return uc
}
