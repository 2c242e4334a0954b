package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/qainfo/pkg/cli/config"
	"github.com/secmon-lab/qainfo/pkg/domain/model"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	"github.com/secmon-lab/qainfo/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdUsers() *cli.Command {
	var repoCfg config.Repository
	var teamID string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "team",
			Usage:       "Only list users of the workspace, most recently updated first",
			Destination: &teamID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "users",
		Aliases: []string{"u"},
		Usage:   "List users who granted a user token",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Debug("Users configuration", "repository", repoCfg, "team", teamID)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			var users []*model.UserRecord
			if teamID != "" {
				users, err = repo.User().ListByTeam(ctx, teamID)
			} else {
				users, err = repo.User().List(ctx)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to list users")
			}

			return printUsers(os.Stdout, users)
		},
	}
}

// printUsers writes one row per user. Tokens are never printed. The colored
// token cell is the last column so escape sequences do not skew padding.
func printUsers(w io.Writer, users []*model.UserRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintln(tw, "USER_ID\tREAL_NAME\tTEAM\tUPDATED_AT\tTOKEN"); err != nil {
		return goerr.Wrap(err, "failed to write header")
	}

	for _, u := range users {
		token := color.RedString("no")
		if u.Authorized() {
			token = color.GreenString("yes")
		}

		updatedAt := "-"
		if !u.UpdatedAt.IsZero() {
			updatedAt = u.UpdatedAt.Format(time.RFC3339)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.UserID, u.RealName, u.Team, updatedAt, token); err != nil {
			return goerr.Wrap(err, "failed to write user", goerr.V("user_id", u.UserID))
		}
	}

	if err := tw.Flush(); err != nil {
		return goerr.Wrap(err, "failed to flush output")
	}
	return nil
}
