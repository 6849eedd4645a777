package services

import (
	"context"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
)

// SettingsService manages how the user's QR card is rendered.
type SettingsService interface {
	Load(ctx context.Context)
	Ready() <-chan struct{}
	Sync(ctx context.Context) error

	Get() models.QRSettings
	Replace(ctx context.Context, st models.QRSettings) (models.QRSettings, error)
	Update(ctx context.Context, patch models.SettingsPatch) (models.QRSettings, error)
}

type settingsService struct {
	rec    *record[models.QRSettings]
	remote client.Client
}

func NewSettingsService(deps Deps) SettingsService {
	return &settingsService{
		remote: deps.Remote,
		rec: newRecord(cache.KindQRSettings, deps,
			models.DefaultQRSettings,
			func(st models.QRSettings) models.QRSettings { return st },
			deps.Remote.FetchSettings,
		),
	}
}

func (s *settingsService) Load(ctx context.Context) { s.rec.Load(ctx) }

func (s *settingsService) Ready() <-chan struct{} { return s.rec.Ready() }

func (s *settingsService) Sync(ctx context.Context) error {
	if s.rec.userID == "" {
		return ErrSignedOut
	}
	return s.rec.reconcile(ctx)
}

func (s *settingsService) Get() models.QRSettings {
	return s.rec.Get()
}

func (s *settingsService) Replace(ctx context.Context, st models.QRSettings) (models.QRSettings, error) {
	return s.rec.mutate(ctx, func(models.QRSettings) (models.QRSettings, []remoteOp, error) {
		return st, []remoteOp{s.upsert(st)}, nil
	})
}

// Update applies a partial change on top of the current settings.
func (s *settingsService) Update(ctx context.Context, patch models.SettingsPatch) (models.QRSettings, error) {
	return s.rec.mutate(ctx, func(cur models.QRSettings) (models.QRSettings, []remoteOp, error) {
		next := patch.Apply(cur)
		return next, []remoteOp{s.upsert(next)}, nil
	})
}

func (s *settingsService) upsert(st models.QRSettings) remoteOp {
	return remoteOp{name: "upsert settings", run: func(ctx context.Context, userID string) error {
		return s.remote.UpsertSettings(ctx, userID, st)
	}}
}
