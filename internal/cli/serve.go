package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bramblekit/bramble/internal/config"
	httpAdapter "github.com/bramblekit/bramble/pkg/adapters/http"
)

// ServeOptions configures the serve command.
type ServeOptions struct {
	ConfigPath string
	Port       string
	Debug      bool
}

// RunServe starts the storyline HTTP API and blocks until shutdown.
func RunServe(opts ServeOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := createLogger(cfg, opts.Debug)

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	if err := httpAdapter.VerifySpec(context.Background()); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + opts.Port,
		Handler: httpAdapter.NewHandler(store, logger),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		fmt.Printf("Starting Bramble Server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt or terminate signals.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Println("Bramble Server stopped gracefully")
		return nil
	}
}
