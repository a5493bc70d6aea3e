// Package main 运维命令：数据库迁移与开发 Token 签发
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"seo-flow-api/internal/config"
	"seo-flow-api/internal/wire"
	"seo-flow-api/pkg/logger"
	"seo-flow-api/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "SEO-Flow maintenance commands",
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func configFrom(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey{}).(*config.Config)
	return cfg
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and install row level security policies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			data, cleanup, err := wire.InitializePostgresOnly(ctx, configFrom(ctx))
			if err != nil {
				return fmt.Errorf("failed to initialize data layer: %w", err)
			}
			defer cleanup()

			if err := data.PgClient.Migrate(ctx); err != nil {
				return err
			}
			logger.Info(ctx, "migration completed")
			return nil
		},
	}
}

func tokenCommand() *cobra.Command {
	var (
		userID string
		email  string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with the configured secret",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			if cfg.Security.JWT.Secret == "" {
				return fmt.Errorf("security.jwt.secret is empty")
			}
			if ttl <= 0 {
				ttl = cfg.Security.JWT.Expiration
			}
			if ttl <= 0 {
				ttl = time.Hour
			}

			jwtManager := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer, cfg.Security.JWT.Audience)
			token, err := jwtManager.GenerateToken(userID, email, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the sub claim")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default security.jwt.expiration)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func main() {
	_ = godotenv.Load()

	rootCmd.AddCommand(migrateCommand(), tokenCommand())
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
