package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Peter3Khalil/DocTalker-Backend/pkg/server"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/service/broadcast"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/chat"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/query"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/usecase/user"
	"github.com/Peter3Khalil/DocTalker-Backend/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, llmFlags(&cfg)...)
	flags = append(flags, serverFlags(&cfg)...)

	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg.setupLogger()

			repo, err := cfg.newRepository(ctx)
			if err != nil {
				return err
			}

			storage, err := cfg.newStorage(ctx)
			if err != nil {
				return err
			}

			gemini, err := cfg.newGemini(ctx)
			if err != nil {
				return err
			}

			issuer, err := cfg.newIssuer()
			if err != nil {
				return err
			}

			hub := broadcast.NewHub()
			chats := chat.New(repo)
			users := user.New(repo, issuer)
			queries := query.New(repo, chats, storage, gemini, hub)

			api := server.New(users, chats, queries, hub, issuer)
			httpServer := &http.Server{
				Addr:    cfg.addr,
				Handler: api.Router(),
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()

			logging.From(ctx).Info("server started", "addr", cfg.addr)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "server failed")
				}
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shut down server")
				}
			}

			logging.From(ctx).Info("server stopped")
			return nil
		},
	}
}
