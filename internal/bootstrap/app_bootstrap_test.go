package bootstrap_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/bootstrap"
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/repository"

	"gotest.tools/v3/assert"
)

func TestCleanupExpired(t *testing.T) {
	app := bootstrap.NewBootstrapApp(config.Config{})

	db, err := app.SetupDatabase(":memory:")
	assert.NilError(t, err)
	defer db.Close()

	ctx := context.Background()
	store := repository.NewStore(db)
	now := time.Unix(1700000000, 0)

	for code, expiresAt := range map[string]int64{
		"expired": now.Unix() - 1,
		"edge":    now.Unix(),
		"fresh":   now.Unix() + 600,
	} {
		_, err := store.CreateAuthorizationCode(ctx, repository.CreateAuthorizationCodeParams{
			Code:        code,
			ClientID:    "client",
			RedirectUri: "https://app.example.com/callback",
			IdentityID:  1,
			ExpiresAt:   expiresAt,
			CreatedAt:   now.Unix() - 600,
		})
		assert.NilError(t, err)

		_, err = store.CreateAccessToken(ctx, repository.CreateAccessTokenParams{
			Token:      code,
			ClientID:   "client",
			IdentityID: 1,
			ExpiresAt:  expiresAt,
			CreatedAt:  now.Unix() - 600,
		})
		assert.NilError(t, err)
	}

	// Redeemed codes are authorization history and outlive their expiry
	_, err = store.CreateAuthorizationCode(ctx, repository.CreateAuthorizationCodeParams{
		Code:        "redeemed",
		ClientID:    "client",
		RedirectUri: "https://app.example.com/callback",
		IdentityID:  1,
		ExpiresAt:   now.Unix() - 1,
		CreatedAt:   now.Unix() - 600,
	})
	assert.NilError(t, err)

	affected, err := store.MarkAuthorizationCodeUsed(ctx, repository.MarkAuthorizationCodeUsedParams{
		Code:     "redeemed",
		ClientID: "client",
	})
	assert.NilError(t, err)
	assert.Equal(t, int64(1), affected)

	codes, tokens, err := bootstrap.CleanupExpired(ctx, store, now)
	assert.NilError(t, err)
	assert.Equal(t, int64(1), codes)
	assert.Equal(t, int64(1), tokens)

	_, err = store.GetAccessToken(ctx, "expired")
	assert.Assert(t, errors.Is(err, sql.ErrNoRows))

	// A token expiring exactly now is still valid and must survive
	_, err = store.GetAccessToken(ctx, "edge")
	assert.NilError(t, err)

	_, err = store.GetAccessToken(ctx, "fresh")
	assert.NilError(t, err)

	history, err := store.ListAuthorizationHistory(ctx, repository.ListAuthorizationHistoryParams{
		ClientID:   "client",
		IdentityID: 1,
		Limit:      10,
	})
	assert.NilError(t, err)

	remaining := map[string]bool{}
	for _, code := range history {
		remaining[code.Code] = true
	}

	assert.DeepEqual(t, map[string]bool{"redeemed": true, "edge": true, "fresh": true}, remaining)
}

func TestSetupDatabaseIsRepeatable(t *testing.T) {
	path := t.TempDir() + "/data/tinyoauth.db"

	app := bootstrap.NewBootstrapApp(config.Config{})

	db, err := app.SetupDatabase(path)
	assert.NilError(t, err)
	assert.NilError(t, db.Close())

	// Migrations are already applied the second time around
	db, err = app.SetupDatabase(path)
	assert.NilError(t, err)
	assert.NilError(t, db.Close())
}
