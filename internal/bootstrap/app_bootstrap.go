package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/utils"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"
)

type BootstrapApp struct {
	config  config.Config
	context struct {
		uuid  string
		users []config.User
	}
	services Services
}

func NewBootstrapApp(config config.Config) *BootstrapApp {
	return &BootstrapApp{
		config: config,
	}
}

func (app *BootstrapApp) Setup() error {
	// Parse users
	users, err := utils.GetUsers(app.config.Auth.Users, app.config.Auth.UsersFile)

	if err != nil {
		return err
	}

	app.context.users = users

	// Instance id, stable for a given app url
	app.context.uuid = utils.GenerateUUID(app.config.AppURL)
	tlog.App = tlog.App.With().Str("instance", app.context.uuid).Logger()

	// Dumps
	tlog.App.Trace().Interface("config", app.config).Msg("Config dump")
	tlog.App.Trace().Int("users", len(app.context.users)).Msg("Users loaded")

	// Database
	db, err := app.SetupDatabase(app.config.DatabasePath)

	if err != nil {
		return fmt.Errorf("failed to setup database: %w", err)
	}

	// Store
	store := repository.NewStore(db)

	// Services
	services, err := app.initServices(store)

	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	app.services = services

	if !services.identityService.UsersConfigured() {
		tlog.App.Warn().Msg("No users configured, interactive endpoints will reject every request")
	}

	// Setup router
	router, err := app.setupRouter()

	if err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	// Start db cleanup routine
	if app.config.Database.CleanupInterval > 0 {
		tlog.App.Debug().Msg("Starting database cleanup routine")
		go app.dbCleanup(store)
	}

	// If we have an socket path, bind to it
	if app.config.Server.SocketPath != "" {
		if _, err := os.Stat(app.config.Server.SocketPath); err == nil {
			tlog.App.Info().Msgf("Removing existing socket file %s", app.config.Server.SocketPath)
			err := os.Remove(app.config.Server.SocketPath)
			if err != nil {
				return fmt.Errorf("failed to remove existing socket file: %w", err)
			}
		}

		tlog.App.Info().Msgf("Starting server on unix socket %s", app.config.Server.SocketPath)
		if err := router.RunUnix(app.config.Server.SocketPath); err != nil {
			tlog.App.Fatal().Err(err).Msg("Failed to start server")
		}

		return nil
	}

	// Start server
	address := fmt.Sprintf("%s:%d", app.config.Server.Address, app.config.Server.Port)
	tlog.App.Info().Msgf("Starting server on %s", address)
	if err := router.Run(address); err != nil {
		tlog.App.Fatal().Err(err).Msg("Failed to start server")
	}

	return nil
}

func (app *BootstrapApp) dbCleanup(store repository.Store) {
	ticker := time.NewTicker(time.Duration(app.config.Database.CleanupInterval) * time.Minute)
	defer ticker.Stop()
	ctx := context.Background()

	for ; true; <-ticker.C {
		tlog.App.Debug().Msg("Cleaning up expired authorization codes and access tokens")
		codes, tokens, err := CleanupExpired(ctx, store, time.Now())
		if err != nil {
			tlog.App.Error().Err(err).Msg("Failed to clean up expired grants")
			continue
		}
		tlog.App.Debug().Int64("codes", codes).Int64("tokens", tokens).Msg("Expired grants removed")
	}
}

// CleanupExpired removes codes and tokens that expired strictly before now.
func CleanupExpired(ctx context.Context, store repository.Store, now time.Time) (int64, int64, error) {
	var codes, tokens int64

	err := store.ExecTx(ctx, func(q repository.Querier) error {
		var err error

		codes, err = q.DeleteExpiredAuthorizationCodes(ctx, now.Unix())

		if err != nil {
			return fmt.Errorf("failed to delete expired authorization codes: %w", err)
		}

		tokens, err = q.DeleteExpiredAccessTokens(ctx, now.Unix())

		if err != nil {
			return fmt.Errorf("failed to delete expired access tokens: %w", err)
		}

		return nil
	})

	return codes, tokens, err
}

// OpenStore opens the database and wraps it in a store, used by the CLI.
func (app *BootstrapApp) OpenStore() (repository.Store, *sql.DB, error) {
	db, err := app.SetupDatabase(app.config.DatabasePath)

	if err != nil {
		return nil, nil, err
	}

	return repository.NewStore(db), db, nil
}
