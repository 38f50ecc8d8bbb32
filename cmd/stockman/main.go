package main

import (
	"fmt"
	"os"

	"stock-manager/internal/cli"
	"stock-manager/internal/config"
	"stock-manager/internal/logging"
)

func main() {
	cfg, err := config.Load(os.Getenv("STOCKMAN_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Debug().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
