package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-concordance/api"
)

const shutdownTimeout = 10 * time.Second

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().IntP("port", "p", 0, "Port to listen on (default: $PORT or 8080)")
	cmd.Flags().Bool("warm", false, "Load every corpus in the background at startup")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	settings := loadSettings()
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		settings.Port = port
	}
	settings.WarmOnStart, _ = cmd.Flags().GetBool("warm")

	eng, err := openEngine(settings)
	if err != nil {
		return err
	}
	defer eng.Close()

	if parseLevel(settings.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := slog.Default()
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(settings.Port),
		Handler:           api.NewRouter(eng, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", server.Addr, "samples_dir", settings.SamplesDir)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
