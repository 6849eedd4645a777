package services

import (
	"context"

	"github.com/dmitrijs2005/qrcontacts/internal/client/client"
	"github.com/dmitrijs2005/qrcontacts/internal/client/models"
	"github.com/dmitrijs2005/qrcontacts/internal/client/repositories/cache"
)

// ProfileService manages the user's own profile.
type ProfileService interface {
	Load(ctx context.Context)
	Ready() <-chan struct{}
	Sync(ctx context.Context) error

	Get() models.Profile
	Replace(ctx context.Context, p models.Profile) (models.Profile, error)
	Patch(ctx context.Context, patch models.ProfilePatch) (models.Profile, error)
}

type profileService struct {
	rec    *record[models.Profile]
	remote client.Client
}

func NewProfileService(deps Deps) ProfileService {
	return &profileService{
		remote: deps.Remote,
		rec: newRecord(cache.KindProfile, deps,
			models.DefaultProfile,
			models.Profile.Clone,
			deps.Remote.FetchProfile,
		),
	}
}

func (s *profileService) Load(ctx context.Context) { s.rec.Load(ctx) }

func (s *profileService) Ready() <-chan struct{} { return s.rec.Ready() }

func (s *profileService) Sync(ctx context.Context) error {
	if s.rec.userID == "" {
		return ErrSignedOut
	}
	return s.rec.reconcile(ctx)
}

func (s *profileService) Get() models.Profile {
	return s.rec.Get()
}

func (s *profileService) Replace(ctx context.Context, p models.Profile) (models.Profile, error) {
	p = p.Clone()
	p.Socials = models.NormalizeSocials(p.Socials)
	if p.Socials == nil {
		p.Socials = map[string]string{}
	}
	return s.rec.mutate(ctx, func(models.Profile) (models.Profile, []remoteOp, error) {
		return p, []remoteOp{s.upsert(p)}, nil
	})
}

// Patch merges the non-nil fields of patch into the current profile.
func (s *profileService) Patch(ctx context.Context, patch models.ProfilePatch) (models.Profile, error) {
	return s.rec.mutate(ctx, func(cur models.Profile) (models.Profile, []remoteOp, error) {
		next := patch.Apply(cur)
		return next, []remoteOp{s.upsert(next.Clone())}, nil
	})
}

func (s *profileService) upsert(p models.Profile) remoteOp {
	return remoteOp{name: "upsert profile", run: func(ctx context.Context, userID string) error {
		return s.remote.UpsertProfile(ctx, userID, p)
	}}
}
