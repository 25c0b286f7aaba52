package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/steveiliop56/tinyoauth/internal/repository"
)

type DataItem struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Type      DataType        `json:"type"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// OwnerDataItem is a DataItem as seen by the client owner, tagged with the end-user it belongs to.
type OwnerDataItem struct {
	DataItem
	IdentityID int64     `json:"identity_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type DataServiceConfig struct {
	Now func() time.Time
}

// DataService is the per (client, end-user) key/value store. The pair always comes from a verified token.
type DataService struct {
	config  DataServiceConfig
	store   repository.Store
	clients *ClientService
	metrics *MetricsService
}

func NewDataService(config DataServiceConfig, store repository.Store, clients *ClientService, metrics *MetricsService) *DataService {
	return &DataService{
		config:  config,
		store:   store,
		clients: clients,
		metrics: metrics,
	}
}

func (ds *DataService) Init() error {
	if ds.config.Now == nil {
		ds.config.Now = time.Now
	}
	return nil
}

func (ds *DataService) Put(ctx context.Context, token AccessToken, key string, value DataValue) (DataItem, error) {
	if key == "" {
		return DataItem{}, ErrInvalidRequest("key is required")
	}

	now := ds.config.Now().Unix()

	row, err := ds.store.UpsertClientData(ctx, repository.UpsertClientDataParams{
		ClientID:   token.ClientID,
		IdentityID: token.IdentityID,
		DataKey:    key,
		DataValue:  string(value.Raw),
		DataType:   string(value.Type),
		CreatedAt:  now,
		UpdatedAt:  now,
	})

	if err != nil {
		return DataItem{}, fmt.Errorf("failed to store client data: %w", err)
	}

	ds.metrics.ObserveDataOperation("put")

	return toDataItem(row), nil
}

func (ds *DataService) Get(ctx context.Context, token AccessToken, key string) (DataItem, error) {
	row, err := ds.store.GetClientData(ctx, repository.GetClientDataParams{
		ClientID:   token.ClientID,
		IdentityID: token.IdentityID,
		DataKey:    key,
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DataItem{}, ErrNotFound("data not found")
		}
		return DataItem{}, fmt.Errorf("failed to get client data: %w", err)
	}

	ds.metrics.ObserveDataOperation("get")

	return toDataItem(row), nil
}

func (ds *DataService) List(ctx context.Context, token AccessToken) ([]DataItem, error) {
	rows, err := ds.store.ListClientData(ctx, repository.ListClientDataParams{
		ClientID:   token.ClientID,
		IdentityID: token.IdentityID,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list client data: %w", err)
	}

	items := make([]DataItem, 0, len(rows))

	for _, row := range rows {
		items = append(items, toDataItem(row))
	}

	ds.metrics.ObserveDataOperation("list")

	return items, nil
}

func (ds *DataService) Delete(ctx context.Context, token AccessToken, key string) error {
	if key == "" {
		return ErrInvalidRequest("key is required")
	}

	affected, err := ds.store.DeleteClientData(ctx, repository.DeleteClientDataParams{
		ClientID:   token.ClientID,
		IdentityID: token.IdentityID,
		DataKey:    key,
	})

	if err != nil {
		return fmt.Errorf("failed to delete client data: %w", err)
	}

	if affected == 0 {
		return ErrNotFound("data not found")
	}

	ds.metrics.ObserveDataOperation("delete")

	return nil
}

// ListForOwner returns every item stored under the client, for all end-users.
func (ds *DataService) ListForOwner(ctx context.Context, clientID string, ownerID int64) ([]OwnerDataItem, error) {
	if _, err := ds.clients.GetOwned(ctx, clientID, ownerID); err != nil {
		return nil, err
	}

	rows, err := ds.store.ListAllClientData(ctx, clientID)

	if err != nil {
		return nil, fmt.Errorf("failed to list client data: %w", err)
	}

	items := make([]OwnerDataItem, 0, len(rows))

	for _, row := range rows {
		items = append(items, OwnerDataItem{
			DataItem:   toDataItem(row),
			IdentityID: row.IdentityID,
			CreatedAt:  time.Unix(row.CreatedAt, 0).UTC(),
		})
	}

	return items, nil
}

func (ds *DataService) DeleteAllForOwner(ctx context.Context, clientID string, ownerID int64) (int64, error) {
	if _, err := ds.clients.GetOwned(ctx, clientID, ownerID); err != nil {
		return 0, err
	}

	affected, err := ds.store.DeleteAllClientData(ctx, clientID)

	if err != nil {
		return 0, fmt.Errorf("failed to delete client data: %w", err)
	}

	ds.metrics.ObserveDataOperation("owner_delete_all")

	return affected, nil
}

func (ds *DataService) DeleteItemForOwner(ctx context.Context, clientID string, ownerID int64, identityID int64, key string) error {
	if key == "" {
		return ErrInvalidRequest("key is required")
	}

	if _, err := ds.clients.GetOwned(ctx, clientID, ownerID); err != nil {
		return err
	}

	affected, err := ds.store.DeleteClientData(ctx, repository.DeleteClientDataParams{
		ClientID:   clientID,
		IdentityID: identityID,
		DataKey:    key,
	})

	if err != nil {
		return fmt.Errorf("failed to delete client data: %w", err)
	}

	if affected == 0 {
		return ErrNotFound("data not found")
	}

	ds.metrics.ObserveDataOperation("owner_delete")

	return nil
}

// KeysFor lists the keys stored for one end-user under a client.
func (ds *DataService) KeysFor(ctx context.Context, clientID string, identityID int64) ([]string, error) {
	rows, err := ds.store.ListClientData(ctx, repository.ListClientDataParams{
		ClientID:   clientID,
		IdentityID: identityID,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list client data: %w", err)
	}

	keys := make([]string, 0, len(rows))

	for _, row := range rows {
		keys = append(keys, row.DataKey)
	}

	return keys, nil
}

func toDataItem(row repository.OauthClientDatum) DataItem {
	return DataItem{
		Key:       row.DataKey,
		Value:     json.RawMessage(row.DataValue),
		Type:      DataType(row.DataType),
		UpdatedAt: time.Unix(row.UpdatedAt, 0).UTC(),
	}
}
