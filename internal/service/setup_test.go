package service_test

import (
	"testing"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/bootstrap"
	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/service"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"

	"gotest.tools/v3/assert"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testServices struct {
	clock          *testClock
	store          *repository.SQLStore
	clients        *service.ClientService
	grants         *service.GrantService
	tokens         *service.TokenService
	data           *service.DataService
	authorizedApps *service.AuthorizedAppsService
}

func setupServices(t *testing.T, maxClients int) testServices {
	t.Helper()

	tlog.NewSimpleLogger().Init()

	app := bootstrap.NewBootstrapApp(config.Config{})

	db, err := app.SetupDatabase(":memory:")
	assert.NilError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := &testClock{now: time.Unix(1700000000, 0)}
	store := repository.NewStore(db)

	clients := service.NewClientService(service.ClientServiceConfig{
		MaxClientsPerOwner: maxClients,
		Now:                clock.Now,
	}, store, nil)
	assert.NilError(t, clients.Init())

	grants := service.NewGrantService(service.GrantServiceConfig{
		CodeExpiry: 600,
		Now:        clock.Now,
	}, store, clients, nil)
	assert.NilError(t, grants.Init())

	tokens := service.NewTokenService(service.TokenServiceConfig{
		TokenExpiryDays: 30,
		Now:             clock.Now,
	}, store, clients, nil)
	assert.NilError(t, tokens.Init())

	data := service.NewDataService(service.DataServiceConfig{
		Now: clock.Now,
	}, store, clients, nil)
	assert.NilError(t, data.Init())

	authorizedApps := service.NewAuthorizedAppsService(service.AuthorizedAppsServiceConfig{
		Now: clock.Now,
	}, store, clients, data, nil)
	assert.NilError(t, authorizedApps.Init())

	return testServices{
		clock:          clock,
		store:          store,
		clients:        clients,
		grants:         grants,
		tokens:         tokens,
		data:           data,
		authorizedApps: authorizedApps,
	}
}

func assertOAuthError(t *testing.T, err error, code string, status int) {
	t.Helper()
	oauthErr, ok := service.AsOAuthError(err)
	assert.Assert(t, ok, "expected an oauth error, got %v", err)
	assert.Equal(t, code, oauthErr.Code)
	assert.Equal(t, status, oauthErr.Status)
}
