package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vedran77/chirp/internal/config"
	"github.com/vedran77/chirp/internal/database"
	"github.com/vedran77/chirp/internal/seed"
	"github.com/vedran77/chirp/internal/transport/http/handlers"
	"github.com/vedran77/chirp/internal/transport/http/middleware"
	"github.com/vedran77/chirp/internal/transport/ws"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	serveCmd.Flags().String("server-port", "8080", "port to listen on")
	serveCmd.Flags().String("cors-origin", "*", "allowed CORS origin")
	serveCmd.Flags().Bool("seed", false, "insert the demo accounts on startup")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		panic(err)
	}
}

func serve(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.pool != nil {
		if err := database.Migrate(ctx, a.pool); err != nil {
			return fmt.Errorf("migrating database: %w", err)
		}
	}
	// the memory store starts empty, give it something to show
	if viper.GetBool("seed") || a.cfg.Store == config.StoreMemory {
		if _, err := seed.Run(ctx, a.auth, a.posts); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	hub := ws.NewHub()
	a.notifications.SetNotifier(ws.NewHubNotifier(hub))

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:          a.auth,
		Users:         a.users,
		Posts:         a.posts,
		Interactions:  a.interactions,
		Notifications: a.notifications,
		Explore:       a.explore,
		Sessions:      middleware.NewSessions(a.cfg.SessionSecret, a.cfg.SecureCookies),
		CORSOrigin:    a.cfg.CORSOrigin,
		WS:            ws.ServeWS(hub, a.auth),
	})

	srv := &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return hub.Run(gctx)
	})

	g.Go(func() error {
		logrus.WithField("addr", srv.Addr).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
