package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/worklane/worklane/pkg/cli/config"
	httpctrl "github.com/worklane/worklane/pkg/controller/http"
	"github.com/worklane/worklane/pkg/service/worker"
	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var cleanupInterval time.Duration
	var retentionDays int64
	var repoCfg config.Repository
	var channelCfg config.Channel
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("WORKLANE_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "cleanup-interval",
			Usage:       "Interval between notification cleanup sweeps",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("WORKLANE_CLEANUP_INTERVAL"),
			Destination: &cleanupInterval,
		},
		&cli.Int64Flag{
			Name:        "notification-retention-days",
			Usage:       "Notifications older than this many days are purged",
			Value:       30,
			Sources:     cli.EnvVars("WORKLANE_NOTIFICATION_RETENTION_DAYS"),
			Destination: &retentionDays,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, channelCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

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

			channel, err := channelCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize push channel")
			}
			defer func() {
				if err := channel.Close(); err != nil {
					logging.Default().Error("failed to close push channel", "error", err.Error())
				}
			}()

			ucOpts := []usecase.Option{
				usecase.WithChannel(channel),
			}

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSlack(slackSvc))
			}

			uc := usecase.New(repo, ucOpts...)

			cleanupWorker := worker.NewNotificationCleanupWorker(uc.Notification, cleanupInterval, int(retentionDays))
			if err := cleanupWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start notification cleanup worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(sigCtx)

			g.Go(func() error {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server")
				}
				return nil
			})

			g.Go(func() error {
				<-gctx.Done()
				logging.Default().Info("Shutting down")

				cleanupWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return err
			}

			logging.Default().Info("Server shutdown completed")
			return nil
		},
	}
}
