package service_test

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/service"

	"gotest.tools/v3/assert"
)

func grantCode(t *testing.T, svc testServices, client service.Client, identityID int64, scope string) string {
	t.Helper()

	location, err := svc.grants.Grant(context.Background(), service.AuthorizationRequest{
		ClientID:     client.ClientID,
		RedirectURI:  client.RedirectURIs[0],
		ResponseType: "code",
		Scope:        scope,
	}, identityID)
	assert.NilError(t, err)

	parsed, err := url.Parse(location)
	assert.NilError(t, err)

	return parsed.Query().Get("code")
}

func issueToken(t *testing.T, svc testServices, client service.Client, identityID int64, scope string) service.AccessToken {
	t.Helper()

	code := grantCode(t, svc, client, identityID, scope)

	_, token, err := svc.tokens.Exchange(context.Background(), service.ExchangeRequest{
		GrantType:    "authorization_code",
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		Code:         code,
		RedirectURI:  client.RedirectURIs[0],
	})
	assert.NilError(t, err)

	return token
}

func TestTokenExchange(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb"}, 1)
	assert.NilError(t, err)

	code := grantCode(t, svc, client, 9, "profile")

	req := service.ExchangeRequest{
		GrantType:    "authorization_code",
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		Code:         code,
		RedirectURI:  "https://app.example.com/cb",
	}

	// Normal case
	res, token, err := svc.tokens.Exchange(ctx, req)
	assert.NilError(t, err)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(30*24*3600), res.ExpiresIn)
	assert.Equal(t, "profile", res.Scope)
	assert.Assert(t, len(res.AccessToken) >= 53)
	assert.Assert(t, res.RefreshToken != "")
	assert.Assert(t, res.RefreshToken != res.AccessToken)
	assert.Equal(t, res.AccessToken, token.Token)
	assert.Equal(t, int64(9), token.IdentityID)

	validated, err := svc.tokens.Validate(ctx, res.AccessToken)
	assert.NilError(t, err)
	assert.Equal(t, client.ClientID, validated.ClientID)
	assert.Equal(t, int64(9), validated.IdentityID)
	assert.Equal(t, "profile", validated.Scope)

	// Replay
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)

	// Refresh tokens are not redeemable
	req.Code = res.RefreshToken
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)
}

func TestTokenExchangeErrors(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb", "https://app.example.com/other"}, 1)
	assert.NilError(t, err)

	other, err := svc.clients.Register(ctx, "Other", []string{"https://other.example.com/cb"}, 1)
	assert.NilError(t, err)

	code := grantCode(t, svc, client, 9, "")

	valid := service.ExchangeRequest{
		GrantType:    "authorization_code",
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		Code:         code,
		RedirectURI:  "https://app.example.com/cb",
	}

	// Bad secret, checked before grant type
	req := valid
	req.ClientSecret = "wrong"
	req.GrantType = "password"
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidClient, 401)

	// Unsupported grant type
	req = valid
	req.GrantType = "client_credentials"
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeUnsupportedGrantType, 400)

	// Code belongs to another client
	req = valid
	req.ClientID = other.ClientID
	req.ClientSecret = other.ClientSecret
	req.RedirectURI = "https://other.example.com/cb"
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)

	// Another registered redirect uri is still a mismatch
	req = valid
	req.RedirectURI = "https://app.example.com/other"
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)

	// Failed attempts do not consume the code
	_, _, err = svc.tokens.Exchange(ctx, valid)
	assert.NilError(t, err)
}

func TestTokenExchangeExpiry(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb"}, 1)
	assert.NilError(t, err)

	req := service.ExchangeRequest{
		GrantType:    "authorization_code",
		ClientID:     client.ClientID,
		ClientSecret: client.ClientSecret,
		RedirectURI:  "https://app.example.com/cb",
	}

	// Exactly at expiry is still valid
	req.Code = grantCode(t, svc, client, 9, "")
	svc.clock.Advance(10 * time.Minute)
	_, _, err = svc.tokens.Exchange(ctx, req)
	assert.NilError(t, err)

	// Half a second after expiry
	req.Code = grantCode(t, svc, client, 9, "")
	svc.clock.Advance(10*time.Minute + 500*time.Millisecond)
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)

	// One second after expiry
	req.Code = grantCode(t, svc, client, 9, "")
	svc.clock.Advance(10*time.Minute + time.Second)
	_, _, err = svc.tokens.Exchange(ctx, req)
	assertOAuthError(t, err, service.ErrCodeInvalidGrant, 400)
}

func TestTokenExchangeConcurrent(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb"}, 1)
	assert.NilError(t, err)

	code := grantCode(t, svc, client, 9, "")

	const attempts = 8

	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.tokens.Exchange(ctx, service.ExchangeRequest{
				GrantType:    "authorization_code",
				ClientID:     client.ClientID,
				ClientSecret: client.ClientSecret,
				Code:         code,
				RedirectURI:  "https://app.example.com/cb",
			})
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.Assert(t, service.IsOAuthError(err, service.ErrCodeInvalidGrant), "unexpected error %v", err)
	}

	assert.Equal(t, 1, successes)
}

func TestTokenValidate(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb"}, 1)
	assert.NilError(t, err)

	token := issueToken(t, svc, client, 9, "")

	// Unknown token
	_, err = svc.tokens.Validate(ctx, "unknown")
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)

	// Empty token
	_, err = svc.tokens.Validate(ctx, "")
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)

	// Exactly at expiry
	svc.clock.Advance(30 * 24 * time.Hour)
	_, err = svc.tokens.Validate(ctx, token.Token)
	assert.NilError(t, err)

	// Within the second after expiry
	svc.clock.Advance(900 * time.Millisecond)
	_, err = svc.tokens.Validate(ctx, token.Token)
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)

	// Well after expiry
	svc.clock.Advance(time.Second)
	_, err = svc.tokens.Validate(ctx, token.Token)
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)
}

func TestTokenRevoke(t *testing.T) {
	svc := setupServices(t, -1)
	ctx := context.Background()

	client, err := svc.clients.Register(ctx, "App", []string{"https://app.example.com/cb"}, 1)
	assert.NilError(t, err)

	token := issueToken(t, svc, client, 9, "")

	// Revoke
	err = svc.tokens.Revoke(ctx, token.Token, "access_token")
	assert.NilError(t, err)

	_, err = svc.tokens.Validate(ctx, token.Token)
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)

	// Idempotent
	err = svc.tokens.Revoke(ctx, token.Token, "access_token")
	assert.NilError(t, err)

	// Unknown and empty tokens
	assert.NilError(t, svc.tokens.Revoke(ctx, "unknown", ""))
	assert.NilError(t, svc.tokens.Revoke(ctx, "", ""))

	// Any hint deletes the token
	token = issueToken(t, svc, client, 9, "")
	err = svc.tokens.Revoke(ctx, token.Token, "refresh_token")
	assert.NilError(t, err)

	_, err = svc.tokens.Validate(ctx, token.Token)
	assertOAuthError(t, err, service.ErrCodeInvalidToken, 401)
}
