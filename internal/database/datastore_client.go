package database

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"
)

// KeyValueKind is the Datastore kind holding persisted key-value pairs.
const KeyValueKind = "KeyValue"

// KeyValue is one persisted entry; the entity key name is the key.
type KeyValue struct {
	Value string `datastore:"Value,noindex"`
}

// DatastoreClient wraps the cloud datastore client as a key-value store.
type DatastoreClient struct {
	client *datastore.Client
}

// NewDatastoreClient connects to the given project.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}
	return &DatastoreClient{client: client}, nil
}

// Get reads the value stored under key. A missing entity is not an error.
func (dc *DatastoreClient) Get(ctx context.Context, key string) (string, bool, error) {
	if dc == nil || dc.client == nil {
		return "", false, fmt.Errorf("datastore client is nil")
	}

	var kv KeyValue
	err := dc.client.Get(ctx, datastore.NameKey(KeyValueKind, key, nil), &kv)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}
	return kv.Value, true, nil
}

// Put stores value under key, replacing any previous value.
func (dc *DatastoreClient) Put(ctx context.Context, key, value string) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	_, err := dc.client.Put(ctx, datastore.NameKey(KeyValueKind, key, nil), &KeyValue{Value: value})
	if err != nil {
		return fmt.Errorf("failed to put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key succeeds.
func (dc *DatastoreClient) Delete(ctx context.Context, key string) error {
	if dc == nil || dc.client == nil {
		return fmt.Errorf("datastore client is nil")
	}

	if err := dc.client.Delete(ctx, datastore.NameKey(KeyValueKind, key, nil)); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection.
func (dc *DatastoreClient) Close() error {
	if dc == nil || dc.client == nil {
		return nil
	}
	return dc.client.Close()
}
