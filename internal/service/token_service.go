package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/config"
	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/utils"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"
)

const (
	accessTokenBytes  = 40
	refreshTokenBytes = 40
)

type ExchangeRequest struct {
	GrantType    string
	ClientID     string
	ClientSecret string
	Code         string
	RedirectURI  string
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
}

type AccessToken struct {
	Token      string
	ClientID   string
	Scope      string
	IdentityID int64
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

type TokenServiceConfig struct {
	TokenExpiryDays int
	Now             func() time.Time
}

type TokenService struct {
	config  TokenServiceConfig
	store   repository.Store
	clients *ClientService
	metrics *MetricsService
}

func NewTokenService(config TokenServiceConfig, store repository.Store, clients *ClientService, metrics *MetricsService) *TokenService {
	return &TokenService{
		config:  config,
		store:   store,
		clients: clients,
		metrics: metrics,
	}
}

func (ts *TokenService) Init() error {
	if ts.config.Now == nil {
		ts.config.Now = time.Now
	}
	if ts.config.TokenExpiryDays <= 0 {
		ts.config.TokenExpiryDays = 30
	}
	return nil
}

func (ts *TokenService) tokenLifetime() time.Duration {
	return time.Duration(ts.config.TokenExpiryDays) * 24 * time.Hour
}

// Exchange redeems an authorization code. The code is consumed and the token minted in one transaction.
func (ts *TokenService) Exchange(ctx context.Context, req ExchangeRequest) (TokenResponse, AccessToken, error) {
	if _, err := ts.clients.Authenticate(ctx, req.ClientID, req.ClientSecret); err != nil {
		ts.metrics.ObserveExchange("invalid_client")
		return TokenResponse{}, AccessToken{}, err
	}

	if req.GrantType != config.GrantTypeAuthorizationCode {
		ts.metrics.ObserveExchange("unsupported_grant_type")
		return TokenResponse{}, AccessToken{}, ErrUnsupportedGrantType("only the authorization_code grant type is supported")
	}

	accessToken, err := utils.GenerateToken(accessTokenBytes)
	if err != nil {
		return TokenResponse{}, AccessToken{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateToken(refreshTokenBytes)
	if err != nil {
		return TokenResponse{}, AccessToken{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := ts.config.Now()
	var issued repository.OauthAccessToken

	err = ts.store.ExecTx(ctx, func(q repository.Querier) error {
		code, err := q.GetUnusedAuthorizationCode(ctx, repository.GetUnusedAuthorizationCodeParams{
			Code:     req.Code,
			ClientID: req.ClientID,
		})

		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidGrant("invalid authorization code")
			}
			return fmt.Errorf("failed to get authorization code: %w", err)
		}

		if isExpired(code.ExpiresAt, now) {
			return ErrInvalidGrant("authorization code has expired")
		}

		if code.RedirectUri != req.RedirectURI {
			return ErrInvalidGrant("redirect uri does not match")
		}

		affected, err := q.MarkAuthorizationCodeUsed(ctx, repository.MarkAuthorizationCodeUsedParams{
			Code:     req.Code,
			ClientID: req.ClientID,
		})

		if err != nil {
			return fmt.Errorf("failed to mark authorization code as used: %w", err)
		}

		if affected != 1 {
			return ErrInvalidGrant("invalid authorization code")
		}

		issued, err = q.CreateAccessToken(ctx, repository.CreateAccessTokenParams{
			Token:      accessToken,
			ClientID:   req.ClientID,
			Scope:      code.Scope,
			IdentityID: code.IdentityID,
			ExpiresAt:  now.Add(ts.tokenLifetime()).Unix(),
			CreatedAt:  now.Unix(),
		})

		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}

		return nil
	})

	if err != nil {
		if oauthErr, ok := AsOAuthError(err); ok {
			ts.metrics.ObserveExchange(oauthErr.Code)
		}
		return TokenResponse{}, AccessToken{}, err
	}

	ts.metrics.ObserveExchange("success")
	tlog.App.Debug().Str("clientId", req.ClientID).Int64("identityId", issued.IdentityID).Msg("Issued access token")

	return TokenResponse{
		AccessToken:  accessToken,
		TokenType:    config.TokenTypeBearer,
		ExpiresIn:    int64(ts.tokenLifetime().Seconds()),
		RefreshToken: refreshToken,
		Scope:        issued.Scope,
	}, toAccessToken(issued), nil
}

// Validate resolves a bearer token. A token is valid up to and including its expiry instant.
func (ts *TokenService) Validate(ctx context.Context, token string) (AccessToken, error) {
	if token == "" {
		return AccessToken{}, ErrInvalidToken("missing access token")
	}

	row, err := ts.store.GetAccessToken(ctx, token)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AccessToken{}, ErrInvalidToken("invalid access token")
		}
		return AccessToken{}, fmt.Errorf("failed to get access token: %w", err)
	}

	if isExpired(row.ExpiresAt, ts.config.Now()) {
		return AccessToken{}, ErrInvalidToken("access token has expired")
	}

	return toAccessToken(row), nil
}

// Revoke deletes the token if it exists. It never reports whether it did.
func (ts *TokenService) Revoke(ctx context.Context, token string, hint string) error {
	if token == "" {
		return nil
	}

	affected, err := ts.store.DeleteAccessToken(ctx, token)

	if err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}

	if affected > 0 {
		ts.metrics.ObserveRevocation("token")
	}

	tlog.App.Debug().Str("hint", hint).Int64("deleted", affected).Msg("Processed token revocation")

	return nil
}

// isExpired reports whether a stored unix-second expiry lies strictly before now.
func isExpired(expiresAt int64, now time.Time) bool {
	return time.Unix(expiresAt, 0).Before(now)
}

// unixCeil rounds now up to whole seconds, so "expires_at >= unixCeil(now)" matches isExpired.
func unixCeil(now time.Time) int64 {
	if now.Nanosecond() > 0 {
		return now.Unix() + 1
	}
	return now.Unix()
}

func toAccessToken(row repository.OauthAccessToken) AccessToken {
	return AccessToken{
		Token:      row.Token,
		ClientID:   row.ClientID,
		Scope:      row.Scope,
		IdentityID: row.IdentityID,
		ExpiresAt:  time.Unix(row.ExpiresAt, 0).UTC(),
		CreatedAt:  time.Unix(row.CreatedAt, 0).UTC(),
	}
}
