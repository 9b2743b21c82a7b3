package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/argus-sec/argus/pkg/cli/config"
	"github.com/argus-sec/argus/pkg/domain/types"
	"github.com/argus-sec/argus/pkg/usecase"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

func cmdToken() *cli.Command {
	var userID string
	var ttl time.Duration
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user",
			Aliases:     []string{"u"},
			Usage:       "User ID the token authenticates as (required)",
			Required:    true,
			Destination: &userID,
		},
		&cli.DurationFlag{
			Name:        "ttl",
			Usage:       "Token lifetime",
			Value:       90 * 24 * time.Hour,
			Destination: &ttl,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "token",
		Usage: "Provision an API token for a user",
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

			authUC := usecase.NewAuthUseCase(repo)
			token, secret, err := authUC.IssueToken(ctx, types.UserID(userID), ttl)
			if err != nil {
				return goerr.Wrap(err, "failed to issue token")
			}

			// The secret is not stored anywhere; this is the only time it is shown
			color.New(color.FgGreen, color.Bold).Println("Token issued")
			fmt.Printf("  user:    %s\n", token.UserID)
			fmt.Printf("  expires: %s\n", token.ExpiresAt.Format(time.RFC3339))
			fmt.Printf("  credential (pass as 'Authorization: Bearer <credential>'):\n")
			color.New(color.FgYellow).Printf("    %s:%s\n", token.ID, secret)

			return nil
		},
	}
}
