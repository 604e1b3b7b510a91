package main

import (
	"github.com/mver/oche/cmd/oche/shared"
	"github.com/mver/oche/internal/server"
)

type ServeCmd struct {
	Config   string `short:"c" default:"oche.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Listen address (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
}

func (cmd *ServeCmd) Run() error {
	cfg, err := server.LoadConfig(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.LogLevel != "" {
		cfg.Server.LogLevel = cmd.LogLevel
	}
	logger := shared.SetupLogger(cfg.Server.LogLevel)

	addr := cfg.Server.Addr()
	if cmd.Addr != "" {
		addr = cmd.Addr
	}

	service, err := server.NewMatchService(cfg, logger, nil)
	if err != nil {
		return err
	}
	srv := server.NewServer(addr, service, logger)

	ctx := shared.SetupSignalHandler(logger)
	logger.Info("Starting match server", "addr", addr, "modes", len(cfg.Modes))
	return srv.Run(ctx)
}
