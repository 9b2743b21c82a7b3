package config

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/types"
)

// Technique is one entry of the MITRE ATT&CK technique catalog
type Technique struct {
	ID   types.MitreTag
	Name string
}

// MitreCatalog maps technique IDs to human readable names, used to annotate
// report tags in API responses. An empty catalog is valid; lookups just miss.
type MitreCatalog struct {
	techniques map[types.MitreTag]string
}

// NewMitreCatalog builds a catalog from validated technique entries
func NewMitreCatalog(techniques []Technique) (*MitreCatalog, error) {
	byID := make(map[types.MitreTag]string, len(techniques))
	for _, tech := range techniques {
		if err := tech.ID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid technique in catalog")
		}
		if tech.Name == "" {
			return nil, goerr.New("technique name is required", goerr.V("id", tech.ID))
		}
		if _, exists := byID[tech.ID]; exists {
			return nil, goerr.New("duplicate technique ID", goerr.V("id", tech.ID))
		}
		byID[tech.ID] = tech.Name
	}
	return &MitreCatalog{techniques: byID}, nil
}

// Describe returns the technique name for a tag, if cataloged
func (c *MitreCatalog) Describe(tag types.MitreTag) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.techniques[tag]
	return name, ok
}

// Len returns the number of cataloged techniques
func (c *MitreCatalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.techniques)
}
