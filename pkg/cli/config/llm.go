package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/service/openrouter"
)

// LLM holds configuration for the model provider used by extraction
type LLM struct {
	provider string

	openRouterAPIKey string `masq:"secret"`
	openRouterModel  string

	geminiProjectID string
	geminiLocation  string
}

// Flags returns CLI flags for LLM provider configuration
func (l *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "Model provider (openrouter or gemini)",
			Value:       "openrouter",
			Sources:     cli.EnvVars("ARGUS_LLM_PROVIDER"),
			Destination: &l.provider,
		},
		&cli.StringFlag{
			Name:        "openrouter-api-key",
			Usage:       "OpenRouter API key (required when using openrouter provider)",
			Sources:     cli.EnvVars("ARGUS_OPENROUTER_API_KEY"),
			Destination: &l.openRouterAPIKey,
		},
		&cli.StringFlag{
			Name:        "openrouter-model",
			Usage:       "OpenRouter model slug",
			Value:       openrouter.DefaultModel,
			Sources:     cli.EnvVars("ARGUS_OPENROUTER_MODEL"),
			Destination: &l.openRouterModel,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("ARGUS_GEMINI_PROJECT"),
			Destination: &l.geminiProjectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("ARGUS_GEMINI_LOCATION"),
			Destination: &l.geminiLocation,
		},
	}
}

// LogAttrs returns log attributes for the LLM configuration
func (l *LLM) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("provider", l.provider),
		slog.String("openrouter_model", l.openRouterModel),
		slog.String("gemini_project", l.geminiProjectID),
	}
}

// Configure creates the model client for the selected provider. A missing
// credential for the selected provider is a startup failure, not a runtime one.
func (l *LLM) Configure(ctx context.Context) (gollem.LLMClient, error) {
	switch l.provider {
	case "openrouter":
		if l.openRouterAPIKey == "" {
			return nil, goerr.Wrap(ErrNoCredential, "openrouter-api-key is required",
				goerr.V(ProviderKey, l.provider))
		}
		client, err := openrouter.New(l.openRouterAPIKey, openrouter.WithModel(l.openRouterModel))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create OpenRouter client")
		}
		return client, nil

	case "gemini":
		if l.geminiProjectID == "" {
			return nil, goerr.Wrap(ErrNoCredential, "gemini-project is required",
				goerr.V(ProviderKey, l.provider))
		}
		client, err := gemini.New(ctx, l.geminiProjectID, l.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return client, nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid LLM provider", goerr.V(ProviderKey, l.provider))
	}
}
