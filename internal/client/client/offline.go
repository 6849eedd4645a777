package client

import (
	"context"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
)

// OfflineClient stands in for a remote that was never configured.
type OfflineClient struct{}

var _ Client = OfflineClient{}

func (OfflineClient) Close() error { return nil }

func (OfflineClient) Ping(context.Context) error { return ErrNotConfigured }

func (OfflineClient) FetchContacts(_ context.Context, userID string) ([]models.Contact, error) {
	requireUser(userID)
	return nil, ErrNotConfigured
}

func (OfflineClient) InsertContact(_ context.Context, userID string, _ models.Contact) error {
	requireUser(userID)
	return ErrNotConfigured
}

func (OfflineClient) UpdateContact(_ context.Context, userID string, _ models.Contact) error {
	requireUser(userID)
	return ErrNotConfigured
}

func (OfflineClient) DeleteContact(_ context.Context, userID, _ string) error {
	requireUser(userID)
	return ErrNotConfigured
}

func (OfflineClient) FetchProfile(_ context.Context, userID string) (models.Profile, error) {
	requireUser(userID)
	return models.Profile{}, ErrNotConfigured
}

func (OfflineClient) UpsertProfile(_ context.Context, userID string, _ models.Profile) error {
	requireUser(userID)
	return ErrNotConfigured
}

func (OfflineClient) FetchSettings(_ context.Context, userID string) (models.QRSettings, error) {
	requireUser(userID)
	return models.QRSettings{}, ErrNotConfigured
}

func (OfflineClient) UpsertSettings(_ context.Context, userID string, _ models.QRSettings) error {
	requireUser(userID)
	return ErrNotConfigured
}
