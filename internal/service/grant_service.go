package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/utils"

	"github.com/google/go-querystring/query"
)

const authorizationCodeBytes = 30

type AuthorizationRequest struct {
	ClientID     string
	RedirectURI  string
	ResponseType string
	Scope        string
	State        string
}

// ConsentRequest is what the end-user is asked to approve.
type ConsentRequest struct {
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	RedirectURI string `json:"redirect_uri"`
	Scope       string `json:"scope"`
	State       string `json:"state,omitempty"`
}

type GrantServiceConfig struct {
	CodeExpiry int
	Now        func() time.Time
}

type GrantService struct {
	config  GrantServiceConfig
	store   repository.Store
	clients *ClientService
	metrics *MetricsService
}

func NewGrantService(config GrantServiceConfig, store repository.Store, clients *ClientService, metrics *MetricsService) *GrantService {
	return &GrantService{
		config:  config,
		store:   store,
		clients: clients,
		metrics: metrics,
	}
}

func (gs *GrantService) Init() error {
	if gs.config.Now == nil {
		gs.config.Now = time.Now
	}
	if gs.config.CodeExpiry <= 0 {
		gs.config.CodeExpiry = 600
	}
	return nil
}

// Begin validates an authorization request. Errors are answered directly, never redirected.
func (gs *GrantService) Begin(ctx context.Context, req AuthorizationRequest) (ConsentRequest, error) {
	client, err := gs.clients.Get(ctx, req.ClientID)

	if err != nil {
		if IsOAuthError(err, ErrCodeNotFound) {
			gs.metrics.ObserveGrant("invalid_client")
			return ConsentRequest{}, ErrInvalidClient("unknown client").WithStatus(http.StatusBadRequest)
		}
		return ConsentRequest{}, err
	}

	if !client.HasRedirectURI(req.RedirectURI) {
		gs.metrics.ObserveGrant("invalid_redirect_uri")
		return ConsentRequest{}, ErrInvalidRedirectURI("redirect uri is not registered for this client")
	}

	if req.ResponseType != config.ResponseTypeCode {
		gs.metrics.ObserveGrant("unsupported_response_type")
		return ConsentRequest{}, ErrUnsupportedResponseType("only the code response type is supported")
	}

	return ConsentRequest{
		ClientID:    client.ClientID,
		ClientName:  client.Name,
		RedirectURI: req.RedirectURI,
		Scope:       req.Scope,
		State:       req.State,
	}, nil
}

// Grant issues a one-time code for identityID and returns the client redirect location.
func (gs *GrantService) Grant(ctx context.Context, req AuthorizationRequest, identityID int64) (string, error) {
	consent, err := gs.Begin(ctx, req)

	if err != nil {
		return "", err
	}

	code, err := utils.GenerateToken(authorizationCodeBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate authorization code: %w", err)
	}

	now := gs.config.Now()

	_, err = gs.store.CreateAuthorizationCode(ctx, repository.CreateAuthorizationCodeParams{
		Code:        code,
		ClientID:    consent.ClientID,
		RedirectUri: consent.RedirectURI,
		Scope:       consent.Scope,
		IdentityID:  identityID,
		ExpiresAt:   now.Add(time.Duration(gs.config.CodeExpiry) * time.Second).Unix(),
		CreatedAt:   now.Unix(),
	})

	if err != nil {
		return "", fmt.Errorf("failed to store authorization code: %w", err)
	}

	location, err := buildRedirect(consent.RedirectURI, config.AuthorizeRedirectQuery{
		Code:  code,
		State: consent.State,
	})

	if err != nil {
		return "", err
	}

	gs.metrics.ObserveGrant("granted")

	return location, nil
}

// Deny validates the request and reports access_denied, nothing is stored.
func (gs *GrantService) Deny(ctx context.Context, req AuthorizationRequest) error {
	if _, err := gs.Begin(ctx, req); err != nil {
		return err
	}

	gs.metrics.ObserveGrant("denied")

	return ErrAccessDenied("the user denied the authorization request")
}

func buildRedirect(redirectURI string, params config.AuthorizeRedirectQuery) (string, error) {
	target, err := url.Parse(redirectURI)

	if err != nil {
		return "", fmt.Errorf("failed to parse redirect uri: %w", err)
	}

	values, err := query.Values(params)

	if err != nil {
		return "", fmt.Errorf("failed to encode redirect query: %w", err)
	}

	// The registered query is kept byte for byte
	if target.RawQuery == "" {
		target.RawQuery = values.Encode()
	} else {
		target.RawQuery = target.RawQuery + "&" + values.Encode()
	}

	return target.String(), nil
}
