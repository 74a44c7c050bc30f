package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/repository"
	"police-personnel/internal/service"
	"police-personnel/pkg/database"
	applogger "police-personnel/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile  string
		username string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:          "create-admin",
		Short:        "Create an admin account, or promote an existing one",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.RunMigrations(sqlDB, logger); err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			created, err := service.EnsureAdmin(ctx, repository.NewRepository(db), cfg.Auth.BcryptCost, username, password, name)
			if err != nil {
				return err
			}

			if created {
				logger.Info("admin account created", zap.String("username", username))
			} else {
				logger.Info("existing account promoted to admin", zap.String("username", username))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config/config.yaml)")
	cmd.Flags().StringVarP(&username, "username", "u", "admin", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	cmd.Flags().StringVarP(&name, "name", "n", "Administrator", "display name")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
