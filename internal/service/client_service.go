package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/repository"
	"github.com/steveiliop56/tinyoauth/internal/utils"
	"github.com/steveiliop56/tinyoauth/internal/utils/tlog"
)

const (
	clientIDBytes     = 20
	clientSecretBytes = 30
)

type Client struct {
	ClientID     string    `json:"client_id"`
	ClientSecret string    `json:"client_secret,omitempty"`
	Name         string    `json:"name"`
	RedirectURIs []string  `json:"redirect_uris"`
	OwnerID      int64     `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRedirectURI matches by exact string equality.
func (c Client) HasRedirectURI(uri string) bool {
	return slices.Contains(c.RedirectURIs, uri)
}

// Public strips the secret.
func (c Client) Public() Client {
	c.ClientSecret = ""
	return c
}

type ClientUpdate struct {
	Name         *string
	RedirectURIs []string
}

type ClientServiceConfig struct {
	MaxClientsPerOwner int
	Now                func() time.Time
}

type ClientService struct {
	config  ClientServiceConfig
	store   repository.Store
	metrics *MetricsService
}

func NewClientService(config ClientServiceConfig, store repository.Store, metrics *MetricsService) *ClientService {
	return &ClientService{
		config:  config,
		store:   store,
		metrics: metrics,
	}
}

func (cs *ClientService) Init() error {
	if cs.config.Now == nil {
		cs.config.Now = time.Now
	}
	return nil
}

func (cs *ClientService) Register(ctx context.Context, name string, redirectURIs []string, ownerID int64) (Client, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return Client{}, ErrInvalidRequest("client name is required")
	}

	if err := validateRedirectURIs(redirectURIs); err != nil {
		return Client{}, err
	}

	clientID, err := utils.GenerateToken(clientIDBytes)
	if err != nil {
		return Client{}, fmt.Errorf("failed to generate client id: %w", err)
	}

	clientSecret, err := utils.GenerateToken(clientSecretBytes)
	if err != nil {
		return Client{}, fmt.Errorf("failed to generate client secret: %w", err)
	}

	encodedURIs, err := json.Marshal(redirectURIs)
	if err != nil {
		return Client{}, fmt.Errorf("failed to encode redirect uris: %w", err)
	}

	now := cs.config.Now().Unix()
	var created repository.OauthClient

	err = cs.store.ExecTx(ctx, func(q repository.Querier) error {
		if cs.config.MaxClientsPerOwner >= 0 {
			count, err := q.CountClientsByOwner(ctx, ownerID)
			if err != nil {
				return fmt.Errorf("failed to count clients: %w", err)
			}
			if count >= int64(cs.config.MaxClientsPerOwner) {
				return ErrClientLimitReached(fmt.Sprintf("each owner may register at most %d clients", cs.config.MaxClientsPerOwner))
			}
		}

		created, err = q.CreateClient(ctx, repository.CreateClientParams{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Name:         name,
			RedirectUris: string(encodedURIs),
			OwnerID:      ownerID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		return nil
	})

	if err != nil {
		return Client{}, err
	}

	cs.metrics.ObserveClientOperation("register")
	tlog.App.Debug().Str("clientId", clientID).Int64("ownerId", ownerID).Msg("Registered client")

	return toClient(created)
}

func (cs *ClientService) Get(ctx context.Context, clientID string) (Client, error) {
	if clientID == "" {
		return Client{}, ErrNotFound("client not found")
	}

	row, err := cs.store.GetClient(ctx, clientID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound("client not found")
		}
		return Client{}, fmt.Errorf("failed to get client: %w", err)
	}

	return toClient(row)
}

// Authenticate checks client credentials, any failure is invalid_client.
func (cs *ClientService) Authenticate(ctx context.Context, clientID, clientSecret string) (Client, error) {
	client, err := cs.Get(ctx, clientID)

	if err != nil {
		if IsOAuthError(err, ErrCodeNotFound) {
			return Client{}, ErrInvalidClient("invalid client credentials")
		}
		return Client{}, err
	}

	if subtle.ConstantTimeCompare([]byte(client.ClientSecret), []byte(clientSecret)) != 1 {
		return Client{}, ErrInvalidClient("invalid client credentials")
	}

	return client, nil
}

// GetOwned returns the client only if ownerID owns it.
func (cs *ClientService) GetOwned(ctx context.Context, clientID string, ownerID int64) (Client, error) {
	client, err := cs.Get(ctx, clientID)

	if err != nil {
		return Client{}, err
	}

	if client.OwnerID != ownerID {
		return Client{}, ErrForbidden("you do not own this client")
	}

	return client, nil
}

func (cs *ClientService) List(ctx context.Context, ownerID int64) ([]Client, error) {
	rows, err := cs.store.ListClientsByOwner(ctx, ownerID)

	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]Client, 0, len(rows))

	for _, row := range rows {
		client, err := toClient(row)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, nil
}

func (cs *ClientService) Update(ctx context.Context, clientID string, ownerID int64, update ClientUpdate) (Client, error) {
	client, err := cs.GetOwned(ctx, clientID, ownerID)

	if err != nil {
		return Client{}, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return Client{}, ErrInvalidRequest("client name is required")
		}
		client.Name = name
	}

	if update.RedirectURIs != nil {
		if err := validateRedirectURIs(update.RedirectURIs); err != nil {
			return Client{}, err
		}
		client.RedirectURIs = update.RedirectURIs
	}

	encodedURIs, err := json.Marshal(client.RedirectURIs)
	if err != nil {
		return Client{}, fmt.Errorf("failed to encode redirect uris: %w", err)
	}

	row, err := cs.store.UpdateClient(ctx, repository.UpdateClientParams{
		Name:         client.Name,
		RedirectUris: string(encodedURIs),
		UpdatedAt:    cs.config.Now().Unix(),
		ClientID:     clientID,
	})

	if err != nil {
		return Client{}, fmt.Errorf("failed to update client: %w", err)
	}

	cs.metrics.ObserveClientOperation("update")

	return toClient(row)
}

// Delete removes the client together with its codes, tokens and scoped data.
func (cs *ClientService) Delete(ctx context.Context, clientID string, ownerID int64) error {
	if _, err := cs.GetOwned(ctx, clientID, ownerID); err != nil {
		return err
	}

	err := cs.store.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.DeleteClientAuthorizationCodes(ctx, clientID); err != nil {
			return fmt.Errorf("failed to delete authorization codes: %w", err)
		}
		if err := q.DeleteClientAccessTokens(ctx, clientID); err != nil {
			return fmt.Errorf("failed to delete access tokens: %w", err)
		}
		if _, err := q.DeleteAllClientData(ctx, clientID); err != nil {
			return fmt.Errorf("failed to delete client data: %w", err)
		}
		if _, err := q.DeleteClient(ctx, clientID); err != nil {
			return fmt.Errorf("failed to delete client: %w", err)
		}
		return nil
	})

	if err != nil {
		return err
	}

	cs.metrics.ObserveClientOperation("delete")
	tlog.App.Debug().Str("clientId", clientID).Msg("Deleted client")

	return nil
}

func validateRedirectURIs(uris []string) error {
	if len(uris) == 0 {
		return ErrInvalidRequest("at least one redirect uri is required")
	}

	for _, uri := range uris {
		if !utils.IsAbsoluteURI(uri) {
			return ErrInvalidRequest(fmt.Sprintf("redirect uri %q is not an absolute uri", uri))
		}
	}

	return nil
}

func toClient(row repository.OauthClient) (Client, error) {
	var redirectURIs []string

	if err := json.Unmarshal([]byte(row.RedirectUris), &redirectURIs); err != nil {
		return Client{}, fmt.Errorf("failed to decode redirect uris: %w", err)
	}

	return Client{
		ClientID:     row.ClientID,
		ClientSecret: row.ClientSecret,
		Name:         row.Name,
		RedirectURIs: redirectURIs,
		OwnerID:      row.OwnerID,
		CreatedAt:    time.Unix(row.CreatedAt, 0).UTC(),
		UpdatedAt:    time.Unix(row.UpdatedAt, 0).UTC(),
	}, nil
}
