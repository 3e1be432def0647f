// Corkboard opens a pinboard canvas window. Paths given as arguments are
// dropped onto the board at startup.
//
// Without a host address the clipboard and window requests are served in
// process. With one (config host.address or CORKBOARD_HOST_ADDRESS) they go
// to a corkboard-host over a websocket.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/corkboard"
	"github.com/phanxgames/corkboard/hostlink"
	"github.com/phanxgames/corkboard/internal/config"
	"github.com/phanxgames/corkboard/internal/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "corkboard:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	scriptPath := flag.String("script", "", "JSON input script to replay")
	debug := flag.Bool("debug", false, "show the debug overlay")
	writeConfig := flag.Bool("write-config", false, "write the effective config and exit")
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
	if *writeConfig {
		return config.Save(path, cfg)
	}

	logger := log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	defer log.Close()

	opts := cfg.BoardOptions()
	opts.Logger = log.WithComponent("board")
	board := corkboard.NewBoard(opts)
	board.SetDebugMode(*debug)

	if cfg.Host.Address == "" {
		board.SetHost(corkboard.NewLocalHost(board.Bridge(), log.WithComponent("host")))
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := hostlink.Dial(ctx, cfg.Host.Address, board.Bridge(), log.WithComponent("hostlink"))
		cancel()
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = client.Close(ctx)
		}()
		board.SetHost(client)
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := corkboard.LoadScript(data)
		if err != nil {
			return err
		}
		board.SetScript(script)
	}

	if args := flag.Args(); len(args) > 0 {
		board.DropPaths(args...)
	}

	logger.Info("starting", "config", path, "host", cfg.Host.Address)
	return corkboard.Run(board, corkboard.RunConfig{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Resizable: true,
	})
}
