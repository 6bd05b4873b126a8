package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sgpj-client/internal/alerts"
	"sgpj-client/internal/api"
	"sgpj-client/internal/services"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Agenda server for dashboards",
}

var agendaServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the agenda over HTTP and WebSocket",
	Long: `Serve upcoming hearings, deadlines and review alerts over HTTP and
push hearing countdowns over /ws.

When AUTO_NOTIFICATIONS_ENABLED is set the reminder scheduler runs in the
same process and its reminders are broadcast to connected sockets.`,
	Args: cobra.NoArgs,
	RunE: runAgendaServe,
}

var agendaAddr string

func init() {
	rootCmd.AddCommand(agendaCmd)
	agendaCmd.AddCommand(agendaServeCmd)

	agendaServeCmd.Flags().StringVar(&agendaAddr, "addr", "", "Listen address (default API_PORT or :9191)")
}

func runAgendaServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := agendaAddr
	if addr == "" {
		addr = sgpj.cfg.Agenda.Port
	}
	if sgpj.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	hub := services.NewHub(sgpj.logger)
	logger := sgpj.logger
	source := services.Source(services.ClientSource{Clients: sgpj.clients})

	if sgpj.cfg.Reminders.Enabled {
		d, err := sgpj.newDaemon(ctx, hub)
		if err != nil {
			return err
		}
		logger = d.logger
		source = d.source
		d.start(ctx)
		defer d.stop()
		go d.service.Run(ctx, d.scanner, sgpj.cfg.CheckInterval())
	}

	handler := api.NewHandler(source, hub, logger)
	go handler.PushCountdowns(ctx, alerts.CountdownRefresh)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handler, logger, sgpj.cfg.Agenda.BasePath),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting agenda server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Errorf("Agenda server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Agenda server shutdown failed: %v", err)
		return err
	}
	logger.Infof("Agenda server stopped")
	return nil
}
