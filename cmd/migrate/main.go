// Command migrate applies the database schema and optionally seeds the
// first administrator account so a fresh deployment can log in.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retailpos/backend/internal/domain/identity"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel      string
		seedAdmin     bool
		adminUsername string
		adminPassword string
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&seedAdmin, "seed-admin", false, "Create an administrator account if none exists")
	flag.StringVar(&adminUsername, "admin-username", "admin", "Username for the seeded administrator")
	flag.StringVar(&adminPassword, "admin-password", "", "Password for the seeded administrator (required with -seed-admin)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Schema migrated successfully")

	if !seedAdmin {
		return
	}
	if adminPassword == "" {
		log.Fatal("-admin-password is required with -seed-admin")
	}

	if err := seedAdministrator(context.Background(), db, adminUsername, adminPassword); err != nil {
		log.Fatal("Failed to seed administrator", zap.Error(err))
	}
	log.Info("Administrator account ready", zap.String("username", adminUsername))
}

// seedAdministrator creates the account only when the username is free, so
// re-running the tool never resets an existing password.
func seedAdministrator(ctx context.Context, db *persistence.Database, username, password string) error {
	userRepo := persistence.NewGormUserRepository(db.DB)

	_, err := userRepo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	user, err := identity.NewUser(username, password, identity.RoleAdministrator)
	if err != nil {
		return err
	}
	return userRepo.Save(ctx, user)
}
