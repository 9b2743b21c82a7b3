package cli

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/cli/config"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryDSN string
	var closer func()

	flags := loggerCfg.Flags()
	flags = append(flags, &cli.StringFlag{
		Name:        "sentry-dsn",
		Usage:       "Sentry DSN for error reporting (disabled when unset)",
		Sources:     cli.EnvVars("ARGUS_SENTRY_DSN"),
		Destination: &sentryDSN,
	})

	app := &cli.Command{
		Name:    "argus",
		Usage:   "Argus threat report extraction service",
		Version: version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			if sentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     sentryDSN,
					Release: version,
				}); err != nil {
					return ctx, err
				}
				logging.Default().Info("Sentry error reporting enabled")
			}

			logging.Default().Info("Starting argus", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdExtract(),
			cmdToken(),
			cmdMigrate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		if sentryDSN != "" {
			sentry.CaptureException(err)
			sentry.Flush(2 * time.Second)
		}
		return err
	}

	return nil
}
