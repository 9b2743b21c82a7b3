package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/service/search"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

// Search holds CLI flags for full-text index configuration
type Search struct {
	enabled         bool
	indexPath       string
	reindexInterval time.Duration
}

// Flags returns CLI flags for search configuration
func (s *Search) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "search-enable",
			Usage:       "Enable full-text search over reports",
			Sources:     cli.EnvVars("ARGUS_SEARCH_ENABLE"),
			Destination: &s.enabled,
		},
		&cli.StringFlag{
			Name:        "search-index-path",
			Usage:       "Path for the on-disk search index (in-memory when unset)",
			Sources:     cli.EnvVars("ARGUS_SEARCH_INDEX_PATH"),
			Destination: &s.indexPath,
		},
		&cli.DurationFlag{
			Name:        "search-reindex-interval",
			Usage:       "Interval for the periodic full reindex",
			Value:       time.Hour,
			Sources:     cli.EnvVars("ARGUS_SEARCH_REINDEX_INTERVAL"),
			Destination: &s.reindexInterval,
		},
	}
}

// ReindexInterval returns the configured full reindex interval
func (s *Search) ReindexInterval() time.Duration {
	return s.reindexInterval
}

// Configure returns a report index, or nil when search is disabled
func (s *Search) Configure() (interfaces.ReportIndex, error) {
	if !s.enabled {
		return nil, nil
	}

	if s.indexPath == "" {
		idx, err := search.NewMemOnly()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create in-memory search index")
		}
		logging.Default().Info("Search enabled with in-memory index")
		return idx, nil
	}

	idx, err := search.New(s.indexPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open search index")
	}
	logging.Default().Info("Search enabled", "index_path", s.indexPath)
	return idx, nil
}
