package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/repository"
)

const authorizationHistoryLimit = 10

type AuthorizedApp struct {
	ClientID     string     `json:"client_id"`
	ClientName   string     `json:"client_name"`
	AuthorizedAt *time.Time `json:"authorized_at"`
	IsActive     bool       `json:"is_active"`
	Scope        *string    `json:"scope"`
}

type AuthorizedClientInfo struct {
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type CurrentAuthorization struct {
	HasActiveToken bool       `json:"has_active_token"`
	Scope          *string    `json:"scope"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type AuthorizationHistoryEntry struct {
	AuthorizedAt time.Time `json:"authorized_at"`
	Scope        string    `json:"scope"`
	Used         bool      `json:"used"`
	Expired      bool      `json:"expired"`
}

type StoredDataSummary struct {
	Count int      `json:"count"`
	Keys  []string `json:"keys"`
}

type AuthorizationDetails struct {
	ClientInfo           AuthorizedClientInfo        `json:"client_info"`
	CurrentAuthorization CurrentAuthorization        `json:"current_authorization"`
	AuthHistory          []AuthorizationHistoryEntry `json:"auth_history"`
	StoredData           StoredDataSummary           `json:"stored_data"`
}

type RevokedApp struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
}

type FailedRevocation struct {
	ClientID string `json:"client_id"`
	Error    string `json:"error"`
}

type BatchRevokeResult struct {
	RevokedApps  []RevokedApp       `json:"revoked_apps"`
	FailedApps   []FailedRevocation `json:"failed_apps"`
	RevokedCount int                `json:"revoked_count"`
	FailedCount  int                `json:"failed_count"`
}

type AuthorizedAppsServiceConfig struct {
	Now func() time.Time
}

// AuthorizedAppsService is the end-user view of the clients holding grants for them.
type AuthorizedAppsService struct {
	config  AuthorizedAppsServiceConfig
	store   repository.Store
	clients *ClientService
	data    *DataService
	metrics *MetricsService
}

func NewAuthorizedAppsService(config AuthorizedAppsServiceConfig, store repository.Store, clients *ClientService, data *DataService, metrics *MetricsService) *AuthorizedAppsService {
	return &AuthorizedAppsService{
		config:  config,
		store:   store,
		clients: clients,
		data:    data,
		metrics: metrics,
	}
}

func (as *AuthorizedAppsService) Init() error {
	if as.config.Now == nil {
		as.config.Now = time.Now
	}
	return nil
}

func (as *AuthorizedAppsService) List(ctx context.Context, identityID int64) ([]AuthorizedApp, error) {
	clientIDs, err := as.store.ListAuthorizedClientIDs(ctx, identityID)

	if err != nil {
		return nil, fmt.Errorf("failed to list authorized clients: %w", err)
	}

	apps := make([]AuthorizedApp, 0, len(clientIDs))

	for _, clientID := range clientIDs {
		client, err := as.clients.Get(ctx, clientID)

		if err != nil {
			if IsOAuthError(err, ErrCodeNotFound) {
				continue
			}
			return nil, err
		}

		app := AuthorizedApp{
			ClientID:   client.ClientID,
			ClientName: client.Name,
		}

		active, err := as.activeToken(ctx, clientID, identityID)

		if err != nil {
			return nil, err
		}

		if active != nil {
			app.IsActive = true
			app.Scope = &active.Scope
		}

		history, err := as.store.ListAuthorizationHistory(ctx, repository.ListAuthorizationHistoryParams{
			ClientID:   clientID,
			IdentityID: identityID,
			Limit:      1,
		})

		if err != nil {
			return nil, fmt.Errorf("failed to get authorization history: %w", err)
		}

		if len(history) > 0 {
			authorizedAt := time.Unix(history[0].CreatedAt, 0).UTC()
			app.AuthorizedAt = &authorizedAt
		}

		apps = append(apps, app)
	}

	return apps, nil
}

func (as *AuthorizedAppsService) Details(ctx context.Context, clientID string, identityID int64) (AuthorizationDetails, error) {
	client, err := as.clients.Get(ctx, clientID)

	if err != nil {
		return AuthorizationDetails{}, err
	}

	details := AuthorizationDetails{
		ClientInfo: AuthorizedClientInfo{
			ClientID:   client.ClientID,
			ClientName: client.Name,
			CreatedAt:  client.CreatedAt,
		},
		AuthHistory: make([]AuthorizationHistoryEntry, 0),
	}

	active, err := as.activeToken(ctx, clientID, identityID)

	if err != nil {
		return AuthorizationDetails{}, err
	}

	if active != nil {
		details.CurrentAuthorization = CurrentAuthorization{
			HasActiveToken: true,
			Scope:          &active.Scope,
			ExpiresAt:      &active.ExpiresAt,
		}
	}

	history, err := as.store.ListAuthorizationHistory(ctx, repository.ListAuthorizationHistoryParams{
		ClientID:   clientID,
		IdentityID: identityID,
		Limit:      authorizationHistoryLimit,
	})

	if err != nil {
		return AuthorizationDetails{}, fmt.Errorf("failed to get authorization history: %w", err)
	}

	now := as.config.Now()

	for _, code := range history {
		details.AuthHistory = append(details.AuthHistory, AuthorizationHistoryEntry{
			AuthorizedAt: time.Unix(code.CreatedAt, 0).UTC(),
			Scope:        code.Scope,
			Used:         code.Used,
			Expired:      isExpired(code.ExpiresAt, now),
		})
	}

	keys, err := as.data.KeysFor(ctx, clientID, identityID)

	if err != nil {
		return AuthorizationDetails{}, err
	}

	details.StoredData = StoredDataSummary{
		Count: len(keys),
		Keys:  keys,
	}

	return details, nil
}

// Revoke deletes the end-user's tokens for the client and burns unused codes. Stored data is kept.
func (as *AuthorizedAppsService) Revoke(ctx context.Context, clientID string, identityID int64) (Client, error) {
	client, err := as.clients.Get(ctx, clientID)

	if err != nil {
		return Client{}, err
	}

	err = as.store.ExecTx(ctx, func(q repository.Querier) error {
		if _, err := q.DeleteIdentityAccessTokens(ctx, repository.DeleteIdentityAccessTokensParams{
			ClientID:   clientID,
			IdentityID: identityID,
		}); err != nil {
			return fmt.Errorf("failed to delete access tokens: %w", err)
		}

		if _, err := q.BurnAuthorizationCodes(ctx, repository.BurnAuthorizationCodesParams{
			ClientID:   clientID,
			IdentityID: identityID,
		}); err != nil {
			return fmt.Errorf("failed to burn authorization codes: %w", err)
		}

		return nil
	})

	if err != nil {
		return Client{}, err
	}

	as.metrics.ObserveRevocation("authorization")

	return client.Public(), nil
}

// BatchRevoke revokes each app in its own transaction, so one failure leaves the others revoked.
func (as *AuthorizedAppsService) BatchRevoke(ctx context.Context, clientIDs []string, identityID int64) BatchRevokeResult {
	result := BatchRevokeResult{
		RevokedApps: make([]RevokedApp, 0),
		FailedApps:  make([]FailedRevocation, 0),
	}

	for _, clientID := range clientIDs {
		client, err := as.Revoke(ctx, clientID, identityID)

		if err != nil {
			description := err.Error()
			if oauthErr, ok := AsOAuthError(err); ok {
				description = oauthErr.Description
			}
			result.FailedApps = append(result.FailedApps, FailedRevocation{
				ClientID: clientID,
				Error:    description,
			})
			continue
		}

		result.RevokedApps = append(result.RevokedApps, RevokedApp{
			ClientID:   client.ClientID,
			ClientName: client.Name,
		})
	}

	result.RevokedCount = len(result.RevokedApps)
	result.FailedCount = len(result.FailedApps)

	return result
}

func (as *AuthorizedAppsService) activeToken(ctx context.Context, clientID string, identityID int64) (*AccessToken, error) {
	row, err := as.store.GetActiveAccessToken(ctx, repository.GetActiveAccessTokenParams{
		ClientID:   clientID,
		IdentityID: identityID,
		ExpiresAt:  unixCeil(as.config.Now()),
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active access token: %w", err)
	}

	token := toAccessToken(row)

	return &token, nil
}
