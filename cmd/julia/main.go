package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	_ "github.com/Xinecraft/swat-julia/internal/pkg/bot/commands"
	_ "github.com/Xinecraft/swat-julia/internal/pkg/bot/permissions"
	_ "github.com/Xinecraft/swat-julia/internal/pkg/relay/console"

	"github.com/Xinecraft/swat-julia/internal/pkg/logger"
	"github.com/Xinecraft/swat-julia/pkg/bot"
	botConfig "github.com/Xinecraft/swat-julia/pkg/config/bot"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "julia",
		Short:        "In-game chat command bot",
		SilenceUsage: true,
		RunE:         run,
	}
	cmd.Flags().StringP("config", "c", "", "Path to the YAML config file")
	cmd.Flags().String("log-level", "", "Log level (debug, info, warn, error), overrides the config")
	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using the process environment")
	}
	path, _ := cmd.Flags().GetString("config")
	config, err := botConfig.Load(path)
	if err != nil {
		return err
	}
	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = config.Log.Level
	}
	if err := logger.SetLevel(level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	b, err := bot.NewBot(config)
	if err != nil {
		return err
	}
	if err := b.Start(ctx); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case s := <-sig:
		logger.InfoCF("main", "Received signal, shutting down", map[string]any{"signal": s.String()})
		cancel()
		<-b.Done()
	case <-b.Done():
	}
	return b.Err()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
