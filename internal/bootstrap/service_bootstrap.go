package bootstrap

import (
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/service"
)

type Services struct {
	metricsService        *service.MetricsService
	identityService       *service.IdentityService
	clientService         *service.ClientService
	grantService          *service.GrantService
	tokenService          *service.TokenService
	dataService           *service.DataService
	authorizedAppsService *service.AuthorizedAppsService
}

func (app *BootstrapApp) initServices(store repository.Store) (Services, error) {
	services := Services{}

	// Counters are only collected when they can be scraped
	if app.config.Metrics.Enabled {
		metricsService := service.NewMetricsService(service.MetricsServiceConfig{})

		err := metricsService.Init()

		if err != nil {
			return Services{}, err
		}

		services.metricsService = metricsService
	}

	identityService := service.NewIdentityService(service.IdentityServiceConfig{
		Users: app.context.users,
	})

	err := identityService.Init()

	if err != nil {
		return Services{}, err
	}

	services.identityService = identityService

	clientService := service.NewClientService(service.ClientServiceConfig{
		MaxClientsPerOwner: app.config.OAuth.MaxClientsPerOwner,
	}, store, services.metricsService)

	err = clientService.Init()

	if err != nil {
		return Services{}, err
	}

	services.clientService = clientService

	grantService := service.NewGrantService(service.GrantServiceConfig{
		CodeExpiry: app.config.OAuth.CodeExpiry,
	}, store, clientService, services.metricsService)

	err = grantService.Init()

	if err != nil {
		return Services{}, err
	}

	services.grantService = grantService

	tokenService := service.NewTokenService(service.TokenServiceConfig{
		TokenExpiryDays: app.config.OAuth.TokenExpiryDays,
	}, store, clientService, services.metricsService)

	err = tokenService.Init()

	if err != nil {
		return Services{}, err
	}

	services.tokenService = tokenService

	dataService := service.NewDataService(service.DataServiceConfig{}, store, clientService, services.metricsService)

	err = dataService.Init()

	if err != nil {
		return Services{}, err
	}

	services.dataService = dataService

	authorizedAppsService := service.NewAuthorizedAppsService(service.AuthorizedAppsServiceConfig{}, store, clientService, dataService, services.metricsService)

	err = authorizedAppsService.Init()

	if err != nil {
		return Services{}, err
	}

	services.authorizedAppsService = authorizedAppsService

	return services, nil
}
