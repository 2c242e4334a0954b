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
	"github.com/secmon-lab/qainfo/pkg/cli/config"
	httpctrl "github.com/secmon-lab/qainfo/pkg/controller/http"
	"github.com/secmon-lab/qainfo/pkg/usecase"
	"github.com/secmon-lab/qainfo/pkg/utils/logging"
	"github.com/secmon-lab/qainfo/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var requestLog bool
	var repoCfg config.Repository
	var slackCfg config.Slack
	var botCfg config.Bot

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8686",
			Sources:     cli.EnvVars("QAINFO_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "request-log",
			Usage:       "Dump verified Slack request payloads at debug level",
			Sources:     cli.EnvVars("QAINFO_REQUEST_LOG"),
			Destination: &requestLog,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, botCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server receiving Slack requests",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("Serve configuration",
				"addr", addr,
				"request_log", requestLog,
				"repository", repoCfg,
				"slack", slackCfg,
			)

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack")
			}

			botOpts, err := botCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load bot settings")
			}

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			ucOpts := append(slackCfg.UseCaseOptions(), botOpts...)
			uc := usecase.New(repo, slackSvc, ucOpts...)

			server := &http.Server{
				Addr: addr,
				Handler: httpctrl.New(
					httpctrl.WithSlack(uc, slackCfg.SigningSecret()),
					httpctrl.WithOAuth(uc),
					httpctrl.WithRequestLog(requestLog),
				),
				ReadHeaderTimeout: 30 * time.Second,
			}

			return runServer(ctx, server)
		},
	}
}

// runServer serves until ctx is canceled or SIGINT/SIGTERM arrives, then
// shuts the server down gracefully
func runServer(ctx context.Context, server *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logging.Default().Info("Starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return goerr.Wrap(err, "failed to start server", goerr.V("addr", server.Addr))
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		logging.Default().Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return goerr.Wrap(err, "failed to shutdown server gracefully")
		}

		logging.Default().Info("Server shutdown completed")
		return nil
	})

	return eg.Wait()
}
