package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/cli/config"
)

func configureLLM(t *testing.T, args ...string) (gollem.LLMClient, error) {
	t.Helper()

	var cfg config.LLM
	var client gollem.LLMClient
	var cfgErr error

	cmd := &cli.Command{
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			client, cfgErr = cfg.Configure(ctx)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...))).Required()

	return client, cfgErr
}

func TestLLMConfig(t *testing.T) {
	t.Run("openrouter without key fails fast", func(t *testing.T) {
		_, err := configureLLM(t)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrNoCredential)).True()
	})

	t.Run("openrouter with key builds a client", func(t *testing.T) {
		client, err := configureLLM(t, "--openrouter-api-key", "test-key")
		gt.NoError(t, err).Required()
		gt.Bool(t, client == nil).False()
	})

	t.Run("gemini without project fails fast", func(t *testing.T) {
		_, err := configureLLM(t, "--llm-provider", "gemini")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrNoCredential)).True()
	})

	t.Run("unknown provider is rejected", func(t *testing.T) {
		_, err := configureLLM(t, "--llm-provider", "whisper")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}
