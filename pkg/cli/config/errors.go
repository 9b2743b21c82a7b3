package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound   = goerr.New("configuration file not found")
	ErrInvalidConfig    = goerr.New("invalid configuration")
	ErrNoCredential     = goerr.New("missing credential for selected provider")
	ErrDuplicateTechnique = goerr.New("duplicate technique ID")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	ProviderKey   = "provider"
	TechniqueKey  = "technique_id"
)
