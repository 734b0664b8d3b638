package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/worklane/worklane/pkg/cli/config"
	"github.com/worklane/worklane/pkg/usecase"
	"github.com/worklane/worklane/pkg/utils/logging"
)

func cmdCleanup() *cli.Command {
	var daysToKeep int64
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "days-to-keep",
			Usage:       "Notifications older than this many days are purged",
			Value:       30,
			Sources:     cli.EnvVars("WORKLANE_DAYS_TO_KEEP"),
			Destination: &daysToKeep,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "cleanup",
		Usage: "Purge notifications older than the retention window",
		Flags: flags,
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

			uc := usecase.New(repo)

			deleted, err := uc.Notification.CleanupOldNotifications(ctx, int(daysToKeep))
			if err != nil {
				return err
			}

			logging.Default().Info("cleanup completed",
				"deleted", deleted,
				"daysToKeep", daysToKeep,
			)
			return nil
		},
	}
}
