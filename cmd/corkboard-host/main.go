// Corkboard-host serves the privileged side of the corkboard bridge: it
// reads the system clipboard and computes window moves for canvases that
// connect over a websocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phanxgames/corkboard"
	"github.com/phanxgames/corkboard/hostlink"
	"github.com/phanxgames/corkboard/internal/config"
	"github.com/phanxgames/corkboard/internal/log"
)

const defaultAddr = "127.0.0.1:7878"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "corkboard-host:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	addr := flag.String("addr", defaultAddr, "listen address")
	flag.Parse()

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger := log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer log.Close()

	srv := hostlink.NewServer(nil, log.WithComponent("hostlink"))
	host := corkboard.NewLocalHost(srv, log.WithComponent("host"))
	host.OnContextMenu = func() { logger.Info("context menu requested") }
	srv.SetHost(host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe(*addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
