package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"postdesk/internal/mockapi"
)

// mockAPICmd serves an in-memory posts API
var mockAPICmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Serve an in-memory posts API for development",
	Long: `Serves GET and POST /api/v1/posts from memory. Ids are assigned
sequentially from 1; nothing is persisted.`,
	Args: cobra.NoArgs,
	RunE: runMockAPI,
}

func runMockAPI(cmd *cobra.Command, args []string) error {
	gin.SetMode(gin.ReleaseMode)
	if verbose {
		gin.SetMode(gin.DebugMode)
	}

	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := mockapi.New(mockapi.Options{Seed: cfg.MockAPI.Seed, Delay: delay})
	logger.Info("mock posts API listening",
		zap.String("addr", cfg.MockAPI.Addr),
		zap.Int("posts", len(srv.Posts())),
		zap.Duration("delay", delay))
	fmt.Fprintf(cmd.OutOrStdout(), "Serving posts API on %s (ctrl+c to stop)\n", cfg.MockAPI.Addr)

	if err := srv.Run(ctx, cfg.MockAPI.Addr); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mock API stopped: %w", err)
	}
	logger.Info("mock posts API stopped")
	return nil
}
