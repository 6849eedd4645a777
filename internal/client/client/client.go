package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/logging"
)

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	FetchContacts(ctx context.Context, userID string) ([]models.Contact, error)
	InsertContact(ctx context.Context, userID string, c models.Contact) error
	UpdateContact(ctx context.Context, userID string, c models.Contact) error
	DeleteContact(ctx context.Context, userID, contactID string) error

	FetchProfile(ctx context.Context, userID string) (models.Profile, error)
	UpsertProfile(ctx context.Context, userID string, p models.Profile) error

	FetchSettings(ctx context.Context, userID string) (models.QRSettings, error)
	UpsertSettings(ctx context.Context, userID string, s models.QRSettings) error
}

// New returns a PostgresClient for dsn, or an OfflineClient when dsn is empty.
func New(dsn string, timeout time.Duration, log logging.Logger) (Client, error) {
	if dsn == "" {
		log.Info(context.Background(), "remote store not configured, running cache-only")
		return OfflineClient{}, nil
	}
	c, err := OpenPostgres(dsn, timeout)
	if err != nil {
		return nil, err
	}
	return c, nil
}
