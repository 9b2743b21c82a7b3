package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/cli/config"
	httpctrl "github.com/argus-sec/argus/pkg/controller/http"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/service/worker"
	"github.com/argus-sec/argus/pkg/usecase"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuthUID string
	var corsOrigins []string
	var repoCfg config.Repository
	var llmCfg config.LLM
	var kafkaCfg config.Kafka
	var searchCfg config.Search
	var mitreCfg config.Mitre

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("ARGUS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and run as the specified user ID (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("ARGUS_NO_AUTH"),
			Destination: &noAuthUID,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin (repeatable)",
			Sources:     cli.EnvVars("ARGUS_CORS_ORIGIN"),
			Destination: &corsOrigins,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, kafkaCfg.Flags()...)
	flags = append(flags, searchCfg.Flags()...)
	flags = append(flags, mitreCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := llmCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure LLM provider")
			}

			catalog, err := mitreCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load MITRE catalog")
			}

			var authUC usecase.AuthUseCaseInterface
			if noAuthUID != "" {
				authUC = usecase.NewNoAuthnUseCase(types.UserID(noAuthUID))
				logging.Default().Warn("Running in no-auth mode (development only)", "user_id", noAuthUID)
			} else {
				authUC = usecase.NewAuthUseCase(repo)
			}

			ucOpts := []usecase.Option{
				usecase.WithAuth(authUC),
			}
			if catalog != nil {
				ucOpts = append(ucOpts, usecase.WithMitreCatalog(catalog))
			}

			index, err := searchCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure search index")
			}
			if index != nil {
				defer func() {
					if err := index.Close(); err != nil {
						logging.Default().Error("failed to close search index", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithIndex(index))
			}

			pub, err := kafkaCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure event publisher")
			}
			if pub != nil {
				defer func() {
					if err := pub.Close(); err != nil {
						logging.Default().Error("failed to close event publisher", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithPublisher(pub))
			}

			uc := usecase.New(repo, llmClient, ucOpts...)

			var reindexWorker *worker.ReindexWorker
			if index != nil {
				reindexWorker = worker.NewReindexWorker(repo, index, searchCfg.ReindexInterval())
				if err := reindexWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reindex worker")
				}
			}

			httpOpts := []httpctrl.Options{
				httpctrl.WithAuth(authUC),
			}
			if len(corsOrigins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithCORSOrigins(corsOrigins))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reindexWorker != nil {
					reindexWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
