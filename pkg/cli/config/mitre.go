package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	domainConfig "github.com/argus-sec/argus/pkg/domain/model/config"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

// Mitre holds CLI flags for the MITRE technique catalog
type Mitre struct {
	catalogPath string
}

// mitreFile is the TOML shape of the catalog file
type mitreFile struct {
	Techniques []struct {
		ID   string `toml:"id"`
		Name string `toml:"name"`
	} `toml:"technique"`
}

// Flags returns CLI flags for the technique catalog
func (m *Mitre) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "mitre-catalog",
			Usage:       "Path to a TOML file mapping MITRE technique IDs to names",
			Sources:     cli.EnvVars("ARGUS_MITRE_CATALOG"),
			Destination: &m.catalogPath,
		},
	}
}

// Configure loads and validates the technique catalog, or returns nil when
// no catalog path is configured.
func (m *Mitre) Configure() (*domainConfig.MitreCatalog, error) {
	if m.catalogPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(m.catalogPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "MITRE catalog file not found",
				goerr.V(ConfigPathKey, m.catalogPath))
		}
		return nil, goerr.Wrap(err, "failed to read MITRE catalog",
			goerr.V(ConfigPathKey, m.catalogPath))
	}

	var file mitreFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse MITRE catalog",
			goerr.V(ConfigPathKey, m.catalogPath),
			goerr.V("cause", err.Error()),
		)
	}

	techniques := make([]domainConfig.Technique, len(file.Techniques))
	for i, t := range file.Techniques {
		tag, err := types.ParseMitreTag(t.ID)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidConfig, "invalid technique ID in MITRE catalog",
				goerr.V(ConfigPathKey, m.catalogPath),
				goerr.V(TechniqueKey, t.ID),
			)
		}
		techniques[i] = domainConfig.Technique{ID: tag, Name: t.Name}
	}

	catalog, err := domainConfig.NewMitreCatalog(techniques)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid MITRE catalog",
			goerr.V(ConfigPathKey, m.catalogPath))
	}

	logging.Default().Info("MITRE catalog loaded",
		"path", m.catalogPath,
		"techniques", catalog.Len(),
	)

	return catalog, nil
}
